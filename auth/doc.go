// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies admin bearer tokens.

Admins sign in with an external identity provider that issues HS256 JWTs
signed with the shared JWT_SECRET. The token subject is the user ID and the
email claim is used to link invited admins on first sign-in.

	token, err := auth.BearerToken(r)
	principal, err := auth.ParsePrincipal(token, cfg.JWTSecret)

IssueToken mints tokens with the same shape for tests.

Voters and brewers never authenticate; they hold short codes or UUID links
instead.
*/
package auth
