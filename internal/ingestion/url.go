package ingestion

import (
	"context"
	"time"

	"github.com/jonathan/markup-validator/internal/fetch"
	"go.uber.org/zap"
)

// URLOptions controls how LoadURL retrieves a page.
type URLOptions struct {
	// UseBrowser renders the page in headless Chrome and validates the
	// resulting DOM instead of the raw response.
	UseBrowser bool
	Timeout    time.Duration
	Logger     *zap.Logger
}

// LoadURL retrieves the markup served at urlStr.
func LoadURL(ctx context.Context, urlStr string, opts URLOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = fetch.DefaultTimeout
	}

	if opts.UseBrowser {
		html, err := fetch.WithBrowser(ctx, urlStr, timeout, logger)
		if err != nil {
			return "", &Error{Source: urlStr, Message: "browser fetch failed", Cause: err}
		}
		return normalize(html), nil
	}

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.Timeout = timeout

	result, err := fetch.URL(ctx, urlStr, fetchOpts)
	if err != nil {
		return "", &Error{Source: urlStr, Message: "HTTP fetch failed", Cause: err}
	}
	logger.Debug("fetched markup",
		zap.String("url", urlStr),
		zap.Int("status", result.StatusCode),
		zap.Int("bytes", len(result.HTML)),
	)

	return normalize(result.HTML), nil
}

func normalize(s string) string {
	text, err := Decode([]byte(s))
	if err != nil {
		return s
	}
	return text
}
