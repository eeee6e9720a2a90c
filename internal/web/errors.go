package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as translated messages with action suggestions
//   - Formatted appropriately based on request type (JSON or HTML)
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusFor(err))
//  3. Error is mapped via core.MapError to get the message and code
//  4. Technical error + context is logged with request ID for correlation
//  5. Message is translated and rendered for the client

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/utiming/internal/core"
	"github.com/JonMunkholm/utiming/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// errPageNotFound is reported for unknown routes.
var errPageNotFound = errors.New("page not found")

var notFoundMessage = core.UserMessage{
	Message: "Page not found",
	Action:  "Go back to the race list",
	Code:    "NOTFOUND",
}

// statusFor picks the HTTP status for an error from the service.
func statusFor(err error) int {
	var du *core.DataUnavailableError
	switch {
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrInvalidDate), errors.Is(err, core.ErrInvalidSort):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTooManyFetches), errors.Is(err, core.ErrIndexUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrMalformedCSV):
		return http.StatusBadGateway
	case errors.Is(err, core.ErrNoResults), errors.Is(err, core.ErrNoRaces), errors.Is(err, errPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &du):
		if du.NotFound() {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// userMessage maps err and translates the result for the request.
func (s *Server) userMessage(r *http.Request, err error) core.UserMessage {
	msg := core.MapError(err)
	if errors.Is(err, errPageNotFound) {
		msg = notFoundMessage
	}
	return s.localizerFrom(r.Context()).Error(msg)
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns an appropriate response
// based on the request type (JSON or HTML).
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := s.userMessage(r, err)

	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	}
	if statusCode >= http.StatusInternalServerError {
		slog.Error("request error", attrs...)
	} else {
		slog.Warn("request error", attrs...)
	}

	if wantsJSON(r) {
		respondErrorJSON(w, r, userMsg, statusCode)
		return
	}
	s.respondErrorHTML(w, r, userMsg, statusCode)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	writeJSON(w, r, statusCode, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorHTML renders the error page.
func (s *Server) respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	l := s.localizerFrom(r.Context())
	title := l.T("error.title")

	s.render(w, r, statusCode, templates.ErrorPage(templates.ErrorData{
		Page:    s.page(l, title, templates.Crumb{Label: title}),
		Heading: msg.Message,
		Notice:  notice(l, msg),
		Back:    templates.Crumb{Label: l.T("error.back"), Href: withLang(r, "/races", nil)},
	}))
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	// API routes default to JSON
	if isAPI(r) {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, r, errPageNotFound, http.StatusNotFound)
}
