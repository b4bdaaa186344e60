// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the auto-bean API.

# Handler Types

Each handler is a struct holding the store and whatever else it needs:

  - EventHandler: organizer dashboard, beers, voter provisioning, event admins
  - ManageHandler: the unauthenticated manage link for adding beers
  - VotingHandler: anonymous ballot, votes and feedback
  - ResultsHandler: public event page, staged results, brewer feedback
  - RevealHandler: advancing and resetting the reveal ceremony
  - AdminHandler: organizations, admins, access request review
  - AccessRequestHandler: public "request access" form

Handlers are created via constructor functions:

	events := handlers.NewEventHandler(st, authz, codes, cfg)

# Admin Routes

Admin handlers read the scope stored by middleware.RequireAdmin and pass it
to the scope.Authorizer, which decides Forbidden versus NotFound:

	POST /admin/events                       → CreateEvent (event + manage codes)
	GET  /admin/events/{id}                  → GetEvent (full rankings)
	POST /admin/events/{id}/voters           → ProvisionVoters (printed cards)
	POST /admin/events/{id}/reveal/advance   → Advance

# Public Routes

Public routes are keyed by 8-character short codes or UUIDs:

	GET /e/{code}                 → event and beer list
	GET /e/{code}/results         → rankings disclosed at the current stage
	GET /v/{code}                 → redirect to the voter's ballot
	GET /vote/{eventID}/{voterID} → ballot (creates the voter on first visit)
	PUT /vote/{eventID}/{voterID}/beers/{beerID} → CastVote

Voting closes as soon as the ceremony starts. Blind tastings hide brewer
names everywhere public until the final stage.
*/
package handlers
