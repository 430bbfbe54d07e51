package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Recovery turns handler panics into a generic 500 so internals never leak
// to the client.
func Recovery(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Errorw("panic recovered",
						"request_id", RequestID(r.Context()),
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"message": "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
