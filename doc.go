// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the auto-bean API server.

auto-bean runs anonymous audience voting for homebrew tasting events.
Voters spread a small point budget across the beers on a printed or shared
ballot link, and organizers reveal the rankings in stages during a closing
ceremony.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run .

Or with flags, against a local SQLite file:

	go run . -p 3318 -t sqlite -d auto-bean.db -jwt-secret dev

A .env file in the working directory is loaded first (override with
-env-file) and never replaces variables that are already set.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite file path
  - JWT_SECRET (--jwt-secret): HS256 secret of the identity provider's tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres (default) or sqlite
  - AUTH_MODEL (--auth-model): organization (default) or assignment
  - BASE_URL (--base-url): Public origin used in voter links
  - CORS_ORIGINS (--cors-origins): Comma-separated origins (default: *)
  - LOG_LEVEL, LOG_FORMAT: slog level and json/text output
  - VOTE_RATE_LIMIT, VOTE_RATE_BURST: Per-IP budget for public writes
  - BOOTSTRAP_ADMIN_EMAIL, BOOTSTRAP_ORG_NAME: Invite the first super admin

# Architecture

  - handlers: HTTP request handlers (events, admins, voting, results, reveal)
  - router: chi routes and middleware stack
  - middleware: logging, admin auth, rate limiting, JSON helpers
  - scope: admin authorization (super, organization, event set)
  - shortcode: 8-character public codes
  - reveal: staged reveal ceremony
  - tally: point totals and competition ranking
  - store: SQL queries and transactions
  - db: connection setup and schema
  - auth, cliparse, logger, validation, ratelimit, errs, models

See package documentation for each component.
*/
package main
