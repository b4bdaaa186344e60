// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scope decides what an authenticated admin may act on.

A Scope is one of three variants:

  - Super: every organization, event and admin
  - Org(id): events and admins of one organization
  - Events(ids): only the listed events (assignment model)

The deployment picks one model for non-super admins (organization or
assignment); the two are never mixed.

	authz := scope.NewAuthorizer(st, scope.ModelOrganization)
	s, err := authz.Compute(ctx, principal)
	event, err := authz.AuthorizeEvent(ctx, s, eventID)

Every admin-side mutation goes through an Authorizer method. Targets that
do not exist fail with errs.NotFound, targets outside the scope fail with
errs.Forbidden, and removals that would leave an organization or event
without an admin fail with errs.LastAdmin.

# Invites

CreateAdmin records an email with no user ID. The first time a principal
with that email signs in, Compute links the row to the principal's user ID.
*/
package scope
