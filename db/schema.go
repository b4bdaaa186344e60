// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is written to run unchanged on both PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Tables lists every table in dependency order, children last.
var Tables = []string{
	"organizations",
	"admins",
	"events",
	"event_admins",
	"beers",
	"brewer_tokens",
	"voters",
	"votes",
	"feedback",
	"short_codes",
	"access_requests",
}

const schema = `
-- Organizations
CREATE TABLE IF NOT EXISTS organizations (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Admins (user_id is NULL until an invited admin first signs in)
CREATE TABLE IF NOT EXISTS admins (
    id TEXT PRIMARY KEY,
    user_id TEXT UNIQUE,
    email TEXT NOT NULL UNIQUE,
    organization_id TEXT NOT NULL REFERENCES organizations(id),
    is_super BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_admins_organization_id ON admins(organization_id);

-- Events
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    organization_id TEXT NOT NULL REFERENCES organizations(id),
    name TEXT NOT NULL,
    date TEXT,
    max_points INTEGER NOT NULL DEFAULT 5 CHECK (max_points >= 1),
    blind_tasting BOOLEAN NOT NULL DEFAULT FALSE,
    reveal_stage INTEGER NOT NULL DEFAULT 0 CHECK (reveal_stage >= 0 AND reveal_stage <= 4),
    created_by TEXT REFERENCES admins(id) ON DELETE SET NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_events_organization_id ON events(organization_id);

-- Event admin assignments
CREATE TABLE IF NOT EXISTS event_admins (
    event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    admin_id TEXT NOT NULL REFERENCES admins(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (event_id, admin_id)
);

CREATE INDEX IF NOT EXISTS idx_event_admins_admin_id ON event_admins(admin_id);

-- Beers
CREATE TABLE IF NOT EXISTS beers (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    brewer TEXT NOT NULL,
    style TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_beers_event_id ON beers(event_id);

-- Brewer tokens (exactly one per beer)
CREATE TABLE IF NOT EXISTS brewer_tokens (
    id TEXT PRIMARY KEY,
    beer_id TEXT NOT NULL UNIQUE REFERENCES beers(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Voters (id is the externally issued UUID)
CREATE TABLE IF NOT EXISTS voters (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_seen_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_voters_event_id ON voters(event_id);

-- Votes
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voters(id) ON DELETE CASCADE,
    beer_id TEXT NOT NULL REFERENCES beers(id) ON DELETE CASCADE,
    points INTEGER NOT NULL CHECK (points >= 0),
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (voter_id, beer_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_beer_id ON votes(beer_id);

-- Feedback
CREATE TABLE IF NOT EXISTS feedback (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voters(id) ON DELETE CASCADE,
    beer_id TEXT NOT NULL REFERENCES beers(id) ON DELETE CASCADE,
    notes TEXT NOT NULL CHECK (length(notes) <= 2000),
    share_with_brewer BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (voter_id, beer_id)
);

CREATE INDEX IF NOT EXISTS idx_feedback_beer_id ON feedback(beer_id);

-- Short codes (code is unique across every target type)
CREATE TABLE IF NOT EXISTS short_codes (
    code TEXT PRIMARY KEY,
    target_type TEXT NOT NULL CHECK (target_type IN ('event', 'voter', 'manage', 'brewer')),
    target_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_short_codes_target ON short_codes(target_type, target_id);

-- Access requests
CREATE TABLE IF NOT EXISTS access_requests (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    club_name TEXT NOT NULL,
    message TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
