package middleware

import (
	"net/http"
)

// APIContentSecurityPolicy is applied to JSON responses; nothing may load from them.
const APIContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

// SiteContentSecurityPolicy is applied to the static landing pages. Forms post
// back to the same origin, so connect-src stays at 'self'.
const SiteContentSecurityPolicy = "default-src 'self'; img-src 'self' data: https:; style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; font-src 'self' https://fonts.gstatic.com; connect-src 'self'; frame-ancestors 'none'"

// SecurityConfig holds configuration for security headers.
type SecurityConfig struct {
	// IsDevelopment disables HSTS in dev environments.
	IsDevelopment bool
	// ContentSecurityPolicy is the CSP header value. Empty uses APIContentSecurityPolicy.
	ContentSecurityPolicy string
	// Cacheable leaves Cache-Control to the wrapped handler instead of forcing no-store.
	Cacheable bool
}

// DefaultSecurityConfig returns the policy for the JSON relay endpoints.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		ContentSecurityPolicy: APIContentSecurityPolicy,
	}
}

// SiteSecurityConfig returns the policy for static pages.
func SiteSecurityConfig(isDevelopment bool) SecurityConfig {
	return SecurityConfig{
		IsDevelopment:         isDevelopment,
		ContentSecurityPolicy: SiteContentSecurityPolicy,
		Cacheable:             true,
	}
}

// Security returns a middleware that applies security headers to all responses.
//
// Headers applied:
//   - Strict-Transport-Security (HSTS), outside development only
//   - X-Content-Type-Options: nosniff
//   - X-Frame-Options: DENY
//   - X-XSS-Protection: 0
//   - Referrer-Policy: strict-origin-when-cross-origin
//   - Content-Security-Policy from the config
//   - Permissions-Policy: restrictive policy
//   - Cache-Control: no-store unless Cacheable
func Security(cfg SecurityConfig) func(http.Handler) http.Handler {
	csp := cfg.ContentSecurityPolicy
	if csp == "" {
		csp = APIContentSecurityPolicy
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			// CSP replaces the legacy filter; "0" avoids its false positives.
			h.Set("X-XSS-Protection", "0")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Content-Security-Policy", csp)
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=(), usb=()")

			if !cfg.IsDevelopment {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
			}

			if !cfg.Cacheable {
				h.Set("Cache-Control", "no-store")
			}

			h.Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}

// MaxBodySize returns a middleware that limits request body size.
// Oversized declared lengths are rejected up front; streamed bodies are cut
// off by http.MaxBytesReader and surface as a read error in the handler.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"success":false,"error":"Request body too large"}`))
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}

			next.ServeHTTP(w, r)
		})
	}
}
