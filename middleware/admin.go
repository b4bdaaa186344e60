// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/natemartinsf/auto-bean/auth"
	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/scope"
)

type contextKey string

const scopeKey contextKey = "scope"

// RequireAdmin authenticates the bearer token and computes the caller's
// scope once per request. Handlers read it with ScopeFrom.
func RequireAdmin(authz *scope.Authorizer, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r)
			if err != nil {
				WriteError(w, r, errs.Unauthorized("missing bearer token"))
				return
			}

			principal, err := auth.ParsePrincipal(token, jwtSecret)
			if err != nil {
				WriteError(w, r, errs.Unauthorized("invalid token"))
				return
			}

			s, err := authz.Compute(r.Context(), principal)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithScope(r.Context(), s)))
		})
	}
}

// WithScope stores a scope in the context
func WithScope(ctx context.Context, s scope.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, s)
}

// ScopeFrom returns the scope computed by RequireAdmin
func ScopeFrom(ctx context.Context) (scope.Scope, bool) {
	s, ok := ctx.Value(scopeKey).(scope.Scope)
	return s, ok
}
