// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Organization: tenant boundary
  - Admin: operator identity, linked to an auth principal on first login
  - Event: a tasting session with a per-voter point budget and reveal stage
  - EventAdmin: assignment of an admin to one event
  - Beer, BrewerToken: entries and the brewer's feedback capability
  - Voter, Vote, Feedback: anonymous voting records
  - ShortCode: public 8-character code for an event, manage link, voter or brewer

# Tally Types

  - RankedBeer: per-beer totals with a shared-on-tie rank
  - EventStats: beer count, distinct voters, total points cast

# Constants

Short code targets:

	TargetEvent  = "event"
	TargetVoter  = "voter"
	TargetManage = "manage"
	TargetBrewer = "brewer"

Limits:

	DefaultMaxPoints  = 5
	MaxRevealStage    = 4
	MaxFeedbackLength = 2000
	MaxVoterBatch     = 500

Request types carry validate tags consumed by the validation package.
*/
package models
