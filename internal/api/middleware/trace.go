package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/anime-api/internal/api/shared"
	"github.com/phrazzld/anime-api/internal/platform/logger"
)

// TraceIDHeader carries the request's trace ID back to the client.
const TraceIDHeader = "X-Request-Id"

// Trace assigns every request a trace ID, echoes it in the X-Request-Id response
// header and stores both the ID and a logger carrying it in the request context.
// It should be applied before any middleware that logs or writes errors.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := shared.NewTraceID()
			w.Header().Set(TraceIDHeader, traceID)

			parent := base
			if parent == nil {
				parent = slog.Default()
			}
			log := parent.With(slog.String("trace_id", traceID))

			ctx := shared.WithTraceID(r.Context(), traceID)
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
