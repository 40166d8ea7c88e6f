package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/markup-validator/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadURL_InvalidURL(t *testing.T) {
	tests := []struct {
		name   string
		urlStr string
	}{
		{"empty URL", ""},
		{"malformed URL", "not-a-url"},
		{"no scheme", "example.com"},
		{"no host", "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadURL(context.Background(), tt.urlStr, URLOptions{})
			require.Error(t, err)

			var fetchErr *fetch.Error
			assert.ErrorAs(t, err, &fetchErr)
		})
	}
}

func TestLoadURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<!DOCTYPE html>\r\n<html><body><p>Hi</p></body></html>"))
	}))
	defer server.Close()

	got, err := LoadURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html>\n<html><body><p>Hi</p></body></html>", got)
}

func TestLoadURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := LoadURL(context.Background(), server.URL, URLOptions{})
	require.Error(t, err)

	var ingestErr *Error
	require.ErrorAs(t, err, &ingestErr)
	assert.Equal(t, server.URL, ingestErr.Source)
	assert.Contains(t, err.Error(), "500")
}
