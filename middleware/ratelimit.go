// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/natemartinsf/auto-bean/ratelimit"
)

// RateLimit rejects requests over the per-IP budget with 429
func RateLimit(limiter *ratelimit.KeyedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetClientIP(r)
			if !limiter.Allow(ip) {
				slog.Warn("rate limited", "path", r.URL.Path, "ip", ip)
				w.Header().Set("Retry-After", "1")
				ErrorResponse(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
