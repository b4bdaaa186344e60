// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package errs defines the typed errors returned by the voting core.

Services return *Error values built from a Code:

	return errs.Forbidden("you do not have access to this event")

Callers test with errors.Is against the sentinels, which match by code:

	if errors.Is(err, errs.ErrLastAdmin) { ... }

Handlers never inspect codes themselves; middleware.WriteError maps the
code to an HTTP status via Code.HTTPStatus.
*/
package errs
