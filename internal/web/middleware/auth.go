package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

// APIKey rejects requests whose X-API-Key header is not one of keys
func APIKey(keys []string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			for _, k := range keys {
				if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(k)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.WarnContext(r.Context(), "rejected request without valid API key",
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized","message":"missing or invalid API key"}`))
		})
	}
}
