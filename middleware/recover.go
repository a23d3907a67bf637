package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/AdolfoCB/almapac-gateway/response"
)

// Recover converts a panic in next into a 500 envelope and logs the stack. A nil logger
// uses slog.Default(). http.ErrAbortHandler is re-raised.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "handler panic",
					"event", "handler_panic",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				_ = response.Write(w, response.InternalError())
			}()
			next.ServeHTTP(w, r)
		})
	}
}
