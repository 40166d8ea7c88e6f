package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/markup-validator/internal/formatting"
	"github.com/jonathan/markup-validator/internal/preview"
	"github.com/jonathan/markup-validator/internal/types"
)

// endpoint describes one route for the index and 404 responses.
type endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var endpoints = []endpoint{
	{Method: http.MethodGet, Path: "/", Description: "Welcome message"},
	{Method: http.MethodGet, Path: "/about", Description: "Service version and features"},
	{Method: http.MethodGet, Path: "/health", Description: "Health check"},
	{Method: http.MethodPost, Path: "/validate", Description: "Validate markup and return a report"},
	{Method: http.MethodPost, Path: "/format", Description: "Re-indent markup"},
	{Method: http.MethodPost, Path: "/preview", Description: "Sanitized preview and document outline"},
	{Method: http.MethodGet, Path: "/live", Description: "WebSocket: validate each text frame"},
}

var features = []string{
	"Tag balance and nesting checks",
	"Attribute and accessibility checks",
	"Markup formatting",
	"Sanitized live preview",
	"Structured request logging",
}

// endpointPaths lists each path once, in table order.
func endpointPaths() []string {
	var paths []string
	for _, e := range endpoints {
		if !slices.Contains(paths, e.Path) {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// allowedMethods returns the methods registered for path, or nil if the path
// is unknown.
func allowedMethods(path string) []string {
	var methods []string
	for _, e := range endpoints {
		if e.Path == path {
			methods = append(methods, e.Method)
		}
	}
	return methods
}

// handleRoot returns the welcome message
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":     "Welcome to the markup validator!",
		"description": "Submit HTML to /validate to check its tag structure.",
		"endpoints":   endpoints,
	})
}

// handleAbout returns version and feature information
func (s *Server) handleAbout(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":     "About the markup validator",
		"description": "A structural HTML checker with formatting and preview.",
		"version":     s.version,
		"features":    features,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleNotFound answers every path without a registered route, and known
// paths requested with the wrong method.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if methods := allowedMethods(r.URL.Path); methods != nil {
		w.Header().Set("Allow", strings.Join(methods, ", "))
		s.jsonResponse(w, http.StatusMethodNotAllowed, map[string]any{
			"error":   "Method Not Allowed",
			"message": fmt.Sprintf("The endpoint '%s' does not support %s.", r.URL.Path, r.Method),
			"allowed": methods,
		})
		return
	}

	s.jsonResponse(w, http.StatusNotFound, map[string]any{
		"error":               "Not Found",
		"message":             fmt.Sprintf("The endpoint '%s' does not exist.", r.URL.Path),
		"available_endpoints": endpointPaths(),
	})
}

// handleValidate validates the submitted markup
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req types.ValidateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.validator.Validate(req.Markup))
}

// handleFormat re-indents the submitted markup
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req types.FormatRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	indent := req.IndentSize
	if indent == 0 {
		indent = s.indentSize
	}

	s.jsonResponse(w, http.StatusOK, types.FormatResponse{
		Formatted: formatting.Format(req.Markup, indent),
	})
}

// handlePreview builds a sanitized preview of the submitted markup
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req types.PreviewRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	pv, err := preview.Build(req.Markup)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, pv)
}

// validatable is implemented by the request types.
type validatable interface {
	Validate() error
}

// decodeJSON reads a size-limited JSON body into dst and validates it.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst validatable) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &ErrPayloadTooLarge{Limit: maxErr.Limit}
		}
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}

	if err := dst.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ErrValidation{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			}
		}
		return &ErrValidation{Message: err.Error()}
	}
	return nil
}
