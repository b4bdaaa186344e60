// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open accepts "postgres" (github.com/lib/pq) or "sqlite" (modernc.org/sqlite):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections get foreign_keys and busy_timeout pragmas and a pool of one.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - organizations: tenant boundary, unique name
  - admins: operators, unique email, optional is_super
  - events: tasting sessions with max_points and reveal_stage (0-4)
  - event_admins: admin assignment per event
  - beers: entries per event
  - brewer_tokens: one feedback capability per beer
  - voters: externally issued voter UUIDs per event
  - votes: one row per (voter, beer)
  - feedback: one note per (voter, beer)
  - short_codes: public codes, unique across all target types
  - access_requests: sign-up requests from clubs

# Relationships

	organization 1──* admin
	organization 1──* event
	event *──* admin (via event_admins)
	event 1──* beer 1──1 brewer_token
	event 1──* voter 1──* vote *──1 beer
	voter 1──* feedback *──1 beer

Everything below an event uses ON DELETE CASCADE. Organizations are
never cascaded; they must be empty before deletion. Short codes carry no
foreign key since target_id points at different tables per target_type,
so the store removes them explicitly.
*/
package db
