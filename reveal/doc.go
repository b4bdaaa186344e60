// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reveal implements the per-event reveal ceremony.

The stage is an integer on the event row:

	0  hidden, voting open
	1  first reveal step, voting closed
	2
	3
	4  fully revealed

Advance is a single conditional UPDATE, so two concurrent advances from
stage 3 produce one success and one CeremonyComplete. Reset sets the
stage back to 0 unconditionally. Both require the event to be in the
caller's scope. What each stage discloses is decided by tally.Disclose.
*/
package reveal
