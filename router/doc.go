// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the auto-bean API.

# Route Registration

NewRouter builds a chi router with all endpoints:

	limiter := ratelimit.New(cfg.VoteRateLimit, cfg.VoteRateBurst)
	defer limiter.Stop()
	handler := router.NewRouter(db, cfg, limiter)

Every request passes through chi's RequestID, RealIP and Recoverer,
middleware.WithLogging, and go-chi/cors.

# Endpoints

Health:

	GET /health - 200 "OK", or 503 when the database is unreachable

Public links (short codes):

	GET  /e/{code}         - Event and beer list
	GET  /e/{code}/results - Rankings revealed so far (403 before the ceremony)
	GET  /m/{code}         - Manage view
	POST /m/{code}/beers   - Add a beer
	GET  /b/{code}         - Shared feedback for one beer
	GET  /brewer/{token}   - Same, by brewer token

Voting (anonymous; writes are rate limited per client IP):

	GET /v/{code}                                         - Redirect to the ballot
	GET /vote/{eventID}/{voterID}                         - Ballot (creates the voter)
	PUT /vote/{eventID}/{voterID}/beers/{beerID}          - Set points
	PUT /vote/{eventID}/{voterID}/beers/{beerID}/feedback - Save notes

	POST /access-requests - Ask for an organizer account

Admin (Authorization: Bearer <jwt>):

	GET    /admin/me
	GET    /admin/access-requests
	GET    /admin/organizations
	POST   /admin/organizations
	DELETE /admin/organizations/{id}
	GET    /admin/admins
	POST   /admin/admins
	DELETE /admin/admins/{id}
	PUT    /admin/admins/{id}/organization
	GET    /admin/events
	POST   /admin/events
	GET    /admin/events/{id}
	DELETE /admin/events/{id}
	PUT    /admin/events/{id}/blind-tasting
	POST   /admin/events/{id}/beers
	DELETE /admin/events/{id}/beers/{beerID}
	POST   /admin/events/{id}/voters
	POST   /admin/events/{id}/test-voter
	GET    /admin/events/{id}/admins
	POST   /admin/events/{id}/admins
	DELETE /admin/events/{id}/admins/{adminID}
	POST   /admin/events/{id}/reveal/advance
	POST   /admin/events/{id}/reveal/reset

Handlers read path parameters with r.PathValue, which chi populates.
*/
package router
