// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ratelimit provides a per-key token bucket limiter built on
// golang.org/x/time/rate. It guards the public voting, feedback and
// access-request endpoints per client IP.
package ratelimit
