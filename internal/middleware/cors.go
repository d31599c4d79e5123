package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/JaimeStill/listing-lab/internal/config"
)

// CORS returns middleware that applies the configured cross-origin policy.
// Preflight OPTIONS requests are answered directly; everything else passes
// through with the response headers set.
func CORS(cfg *config.CORSConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			if origin := allowOrigin(cfg, r.Header.Get("Origin")); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			if len(cfg.AllowedMethods) > 0 {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
			}
			if len(cfg.AllowedHeaders) > 0 {
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))
			}
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if cfg.MaxAge > 0 {
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// allowOrigin resolves the Allow-Origin value for a request origin. A
// configured "*" admits any origin; with credentials enabled the origin is
// echoed back instead, since browsers reject the wildcard form.
func allowOrigin(cfg *config.CORSConfig, origin string) string {
	if origin == "" || len(cfg.Origins) == 0 {
		return ""
	}

	if slices.Contains(cfg.Origins, origin) {
		return origin
	}
	if slices.Contains(cfg.Origins, "*") {
		if cfg.AllowCredentials {
			return origin
		}
		return "*"
	}
	return ""
}
