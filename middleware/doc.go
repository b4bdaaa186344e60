// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap a chi router with request logging:

	r.Use(middleware.WithLogging)

Logs request start (method, path, remote) at debug level and completion
(status, duration_ms, request_id) at info level.

# Admin Authentication

RequireAdmin validates the bearer JWT, computes the caller's scope and
stores it in the request context:

	r.With(middleware.RequireAdmin(authz, cfg.JWTSecret)).Get("/api/me", h.Me)

	s, _ := middleware.ScopeFrom(r.Context())

A missing or invalid token is 401. A valid token for someone who is not an
admin is 403.

# Rate Limiting

RateLimit applies a per-IP token bucket and answers 429 when exhausted:

	r.With(middleware.RateLimit(limiter)).Put("/vote/{eventID}/{voterID}/{beerID}", h.CastVote)

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Map any error to its status and error code:

	middleware.WriteError(w, r, err)

Parse JSON request bodies (capped at 1 MiB):

	var req models.AddBeerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the client IP. Mount chi's RealIP first so proxy headers are honored:

	ip := middleware.GetClientIP(r)

Used as the key for vote rate limiting.
*/
package middleware
