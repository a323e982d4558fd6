package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dnwandana/todo-api/internal/api/shared"
)

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// Trace attaches a fresh trace ID to every request's context so logs and
// error responses can be correlated.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(shared.SetTraceID(r.Context())))
	})
}

// RequestLogger logs one structured entry per request with the elapsed
// handling time, measured explicitly around the handler call.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"trace_id", shared.GetTraceID(r.Context()))
	})
}
