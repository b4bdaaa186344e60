// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tally turns raw votes into ranked results and event statistics.
// It does no I/O; callers load beers and votes from the store.
package tally
