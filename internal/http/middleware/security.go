package middleware

import (
	"fmt"
	"net/http"

	"github.com/axo-networks/marketplace-api/internal/config"
)

type header struct {
	name, value string
}

// securityHeaders resolves the configured header set once
func securityHeaders(cfg *config.SecurityConfig) []header {
	var hs []header
	if cfg.ContentTypeNosniff {
		hs = append(hs, header{"X-Content-Type-Options", "nosniff"})
	}
	if cfg.FrameOptions != "" {
		hs = append(hs, header{"X-Frame-Options", cfg.FrameOptions})
	}
	if cfg.ContentSecurityPolicy != "" {
		hs = append(hs, header{"Content-Security-Policy", cfg.ContentSecurityPolicy})
	}
	if cfg.ReferrerPolicy != "" {
		hs = append(hs, header{"Referrer-Policy", cfg.ReferrerPolicy})
	}
	if cfg.EnableHSTS {
		hsts := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		hs = append(hs, header{"Strict-Transport-Security", hsts})
	}
	return hs
}

// SecurityHeaders sets the response headers configured in SecurityConfig
func SecurityHeaders(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	hs := securityHeaders(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range hs {
				w.Header().Set(h.name, h.value)
			}
			// Remove headers that leak server information
			w.Header().Del("X-Powered-By")
			w.Header().Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}
