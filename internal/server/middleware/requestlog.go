// Package middleware provides HTTP middleware for request tracing and logging.
package middleware

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// requestIDKey is the context key for the per-request ID.
const requestIDKey ContextKey = "requestID"

// RequestIDHeader carries the request ID on responses.
const RequestIDHeader = "X-Request-ID"

// DefaultMaxLoggedBody caps how much of a request body is copied into the log.
const DefaultMaxLoggedBody = 4096

// Placeholders written when a field has no value.
const (
	notAvailable   = "N/A"
	noBodyMethod   = "N/A (GET/DELETE request)"
	noBodyProvided = "No body provided"
	noQueryParams  = "No query parameters"
)

// RequestID returns the ID assigned to the request by RequestLog, or "" if
// the request did not pass through it.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ClientIP returns the originating client address: the first entry of
// X-Forwarded-For, then X-Real-IP, then the connection's remote host.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "Unknown"
}

// RequestLog assigns each request an ID and writes one structured entry per
// request to logger once the response is complete. Bodies of POST, PUT and
// PATCH requests are logged up to maxBody bytes; the handler still sees the
// full body.
func RequestLog(logger *zap.Logger, maxBody int) func(http.Handler) http.Handler {
	if maxBody <= 0 {
		maxBody = DefaultMaxLoggedBody
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)

			body := noBodyMethod
			if hasBody(r.Method) {
				body = captureBody(r, maxBody)
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))

			logger.Info("request",
				zap.String("request_id", id),
				zap.Time("received_at", start.UTC()),
				zap.String("method", r.Method),
				zap.String("url", r.URL.RequestURI()),
				zap.String("endpoint", r.URL.Path),
				zap.String("client_ip", ClientIP(r)),
				zap.String("user_agent", headerOr(r, "User-Agent")),
				zap.String("authorization", maskAuthorization(r)),
				zap.String("content_type", headerOr(r, "Content-Type")),
				zap.String("accept", headerOr(r, "Accept")),
				zap.String("host", hostOr(r)),
				zap.Any("query", queryParams(r)),
				zap.String("body", body),
				zap.Int("status", rec.status),
				zap.Int64("response_time_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// captureBody reads up to limit+1 bytes for the log and splices them back in
// front of the unread remainder.
func captureBody(r *http.Request, limit int) string {
	if r.Body == nil || r.Body == http.NoBody {
		return noBodyProvided
	}
	head, err := io.ReadAll(io.LimitReader(r.Body, int64(limit)+1))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
	if err != nil {
		return fmt.Sprintf("(unreadable body: %v)", err)
	}

	switch {
	case len(head) == 0:
		return noBodyProvided
	case len(head) > limit:
		return string(head[:limit]) + "...(truncated)"
	default:
		return string(head)
	}
}

func headerOr(r *http.Request, name string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	return notAvailable
}

func hostOr(r *http.Request) string {
	if r.Host != "" {
		return r.Host
	}
	return notAvailable
}

func maskAuthorization(r *http.Request) string {
	if r.Header.Get("Authorization") != "" {
		return "***"
	}
	return notAvailable
}

func queryParams(r *http.Request) any {
	q := r.URL.Query()
	if len(q) == 0 {
		return noQueryParams
	}
	flat := make(map[string]any, len(q))
	for k, v := range q {
		if len(v) == 1 {
			flat[k] = v[0]
		} else {
			flat[k] = v
		}
	}
	return flat
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// Hijack lets websocket upgrades pass through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	r.wroteHeader = true
	return hj.Hijack()
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap supports http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
