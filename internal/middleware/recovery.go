package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// recoveredBody matches the relay error shape so browsers always get JSON.
const recoveredBody = `{"success":false,"error":"Server error"}`

// Recoverer is a middleware that recovers from panics.
// It logs the panic and returns a 500 with a JSON error body.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(recoveredBody + "\n"))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
