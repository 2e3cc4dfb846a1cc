package middlewares

import (
	"net/http"
	"os"
	"strings"
)

// NewCorsMiddleware builds a CORS middleware from a comma-separated origin
// allowlist, typically the ALLOWED_ORIGINS environment variable.
func NewCorsMiddleware(origins string) func(http.Handler) http.Handler {
	var allowed []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed = append(allowed, origin)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			for _, o := range allowed {
				if o == origin {
					w.Header().Set("Access-Control-Allow-Origin", o)
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					break
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CorsFromEnv reads ALLOWED_ORIGINS at call time.
func CorsFromEnv() func(http.Handler) http.Handler {
	return NewCorsMiddleware(os.Getenv("ALLOWED_ORIGINS"))
}
