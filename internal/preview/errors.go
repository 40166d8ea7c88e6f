package preview

import "fmt"

// Error represents a failure building a preview.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("preview error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("preview error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
