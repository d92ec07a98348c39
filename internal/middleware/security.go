// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
)

// captchaOrigin serves the verification widget script and iframe.
const captchaOrigin = "https://challenges.cloudflare.com"

// SecureHeaders returns a middleware that sets the site's security headers.
// Script and style sources stay open because section markup comes from the
// content backend; only framing is restricted, with the verification widget
// allowed in. hsts adds Strict-Transport-Security for TLS deployments.
func SecureHeaders(hsts bool) func(http.Handler) http.Handler {
	csp := strings.Join([]string{
		"frame-ancestors 'self'",
		"frame-src 'self' " + captchaOrigin,
	}, "; ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "SAMEORIGIN")
			h.Set("Content-Security-Policy", csp)
			h.Set("X-XSS-Protection", "0")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			if hsts {
				h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
