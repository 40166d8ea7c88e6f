package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "indent_size", Message: "must be at most 8"}
	assert.Equal(t, "validation error: indent_size - must be at most 8", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	bare := &ErrValidation{Message: "malformed JSON"}
	assert.Equal(t, "validation error: malformed JSON", bare.Error())
}

func TestErrPayloadTooLarge(t *testing.T) {
	err := &ErrPayloadTooLarge{Limit: 1024}
	assert.Equal(t, "request body exceeds 1024 bytes", err.Error())
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "ErrValidation", err: &ErrValidation{Message: "x"}, expected: http.StatusBadRequest},
		{name: "wrapped ErrValidation", err: fmt.Errorf("decode: %w", &ErrValidation{Message: "x"}), expected: http.StatusBadRequest},
		{name: "ErrPayloadTooLarge", err: &ErrPayloadTooLarge{Limit: 1}, expected: http.StatusRequestEntityTooLarge},
		{name: "unknown error", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
