package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the envelope every endpoint answers with. Data is null for
// error responses; internal error details never appear in the body.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// RespondWithJSON writes an enveloped JSON response with the given status,
// message and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{Message: message, Data: data}); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes an enveloped JSON error response carrying only the
// sanitized message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, message, nil)
}

// RespondWithErrorAndLog writes a sanitized JSON error response and logs the
// underlying error with full request context. Server errors log at ERROR,
// rate limiting at WARN, other client errors at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status == http.StatusTooManyRequests:
		level = slog.LevelWarn
	}

	attrs := []any{
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method,
		"status_code", status,
		"user_message", userMessage,
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	slog.Log(r.Context(), level, "API error response", attrs...)

	RespondWithJSON(w, r, status, userMessage, nil)
}
