package handler

import (
	"log/slog"
	"net/http"

	"github.com/stevemurr/simple-items-server/middleware"
)

// Recovery turns a panic into a 500 envelope.
func Recovery(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered",
						"panic", err,
						"request_id", middleware.RequestIDFromContext(r.Context()),
					)
					writeError(w, http.StatusInternalServerError, msgInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
