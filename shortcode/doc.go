// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package shortcode maps public 8-character codes to entity IDs.

Codes are drawn from [a-z0-9] with a crypto-backed nanoid generator.
Every code is tagged with a target type (event, voter, manage, brewer) and
is unique across all types. Resolution always names the expected type, so
a manage code never resolves on a voter endpoint.

	r := shortcode.New(st)
	code, err := r.Reserve(ctx, models.TargetBrewer, token.ID)
	id, ok, err := r.Resolve(ctx, "AB12CD34", models.TargetEvent)

Reserve retries up to MaxAttempts times on collision and then fails with
errs.ErrCodeSpaceExhausted. Resolve lowercases its input and reports
absence through ok, never through err.
*/
package shortcode
