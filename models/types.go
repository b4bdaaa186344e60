// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Short code target types
type TargetType string

const (
	TargetEvent  TargetType = "event"
	TargetVoter  TargetType = "voter"
	TargetManage TargetType = "manage"
	TargetBrewer TargetType = "brewer"
)

// Valid reports whether t is one of the four known target types.
func (t TargetType) Valid() bool {
	switch t {
	case TargetEvent, TargetVoter, TargetManage, TargetBrewer:
		return true
	}
	return false
}

// Event defaults and limits
const (
	DefaultMaxPoints  = 5
	MaxRevealStage    = 4
	MaxFeedbackLength = 2000
	MaxVoterBatch     = 500
)

// Domain types

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Admin struct {
	ID             string    `json:"id"`
	UserID         *string   `json:"user_id,omitempty"` // nil until the invite is linked
	Email          string    `json:"email"`
	OrganizationID string    `json:"organization_id"`
	IsSuper        bool      `json:"is_super"`
	CreatedAt      time.Time `json:"created_at"`
}

type Event struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Date           *string   `json:"date,omitempty"`
	MaxPoints      int       `json:"max_points"`
	BlindTasting   bool      `json:"blind_tasting"`
	RevealStage    int       `json:"reveal_stage"`
	CreatedBy      *string   `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type EventAdmin struct {
	EventID   string    `json:"event_id"`
	AdminID   string    `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Beer struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Brewer    string    `json:"brewer"`
	Style     *string   `json:"style,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BrewerToken is a capability letting a brewer read shared feedback for one beer.
type BrewerToken struct {
	ID        string    `json:"id"`
	BeerID    string    `json:"beer_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Voter struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Vote struct {
	ID        string    `json:"id"`
	VoterID   string    `json:"voter_id"`
	BeerID    string    `json:"beer_id"`
	Points    int       `json:"points"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Feedback struct {
	ID              string    `json:"id"`
	VoterID         string    `json:"-"` // Never expose in JSON
	BeerID          string    `json:"beer_id"`
	Notes           string    `json:"notes"`
	ShareWithBrewer bool      `json:"share_with_brewer"`
	CreatedAt       time.Time `json:"created_at"`
}

type ShortCode struct {
	Code       string     `json:"code"`
	TargetType TargetType `json:"target_type"`
	TargetID   string     `json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

type AccessRequest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ClubName  string    `json:"club_name"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Tally types

type RankedBeer struct {
	Beer        Beer `json:"beer"`
	TotalPoints int  `json:"total_points"`
	VoterCount  int  `json:"voter_count"`
	Rank        int  `json:"rank"` // 1-indexed, ties share a rank
}

type EventStats struct {
	BeerCount       int `json:"beer_count"`
	VoterCount      int `json:"voter_count"`
	TotalPointsCast int `json:"total_points_cast"`
}

// Request types

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CreateAdminRequest invites an admin by email. The principal is linked on
// first sign-in, never at invite time.
type CreateAdminRequest struct {
	Email          string `json:"email" validate:"required,email,max=320"`
	OrganizationID string `json:"organization_id" validate:"omitempty,uuid"`
	IsSuper        bool   `json:"is_super"`
}

type ReassignAdminRequest struct {
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
}

type CreateEventRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Date           *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	MaxPoints      *int    `json:"max_points" validate:"omitempty,max_points"`
	OrganizationID string  `json:"organization_id" validate:"omitempty,uuid"`
}

type BlindTastingRequest struct {
	Enabled bool `json:"enabled"`
}

type AddBeerRequest struct {
	Name   string  `json:"name" validate:"required,max=200"`
	Brewer string  `json:"brewer" validate:"required,max=200"`
	Style  *string `json:"style" validate:"omitempty,max=100"`
}

type CastVoteRequest struct {
	Points *int `json:"points" validate:"required,points"`
}

type FeedbackRequest struct {
	Notes           string `json:"notes" validate:"max=2000"`
	ShareWithBrewer bool   `json:"share_with_brewer"`
}

type ProvisionVotersRequest struct {
	Count int `json:"count" validate:"voters"`
}

type AssignAdminRequest struct {
	AdminID string `json:"admin_id" validate:"required,uuid"`
}

type AccessRequestRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	ClubName string `json:"club_name" validate:"required,max=200"`
	Message  string `json:"message" validate:"max=2000"`
	Website  string `json:"website"` // honeypot, humans leave it empty
}

// Response types

type CreateEventResponse struct {
	Event      Event  `json:"event"`
	EventCode  string `json:"event_code,omitempty"`
	ManageCode string `json:"manage_code,omitempty"`
}

type AddBeerResponse struct {
	Beer          Beer   `json:"beer"`
	BrewerTokenID string `json:"brewer_token_id"`
	BrewerCode    string `json:"brewer_code,omitempty"`
}

type AdminEventResponse struct {
	Event          Event             `json:"event"`
	EventCode      string            `json:"event_code"`
	ManageCode     string            `json:"manage_code,omitempty"`
	BrewerCodes    map[string]string `json:"brewer_codes"`
	Rankings       []RankedBeer      `json:"rankings"`
	Stats          EventStats        `json:"stats"`
	AssignedAdmins []Admin           `json:"assigned_admins,omitempty"`
}

type PublicEventResponse struct {
	Event Event  `json:"event"`
	Beers []Beer `json:"beers"`
}

type ResultsResponse struct {
	Event       Event        `json:"event"`
	RevealStage int          `json:"reveal_stage"`
	Rankings    []RankedBeer `json:"rankings"`
	Stats       EventStats   `json:"stats"`
}

type BallotResponse struct {
	Event      Event      `json:"event"`
	Voter      Voter      `json:"voter"`
	Beers      []Beer     `json:"beers"`
	Votes      []Vote     `json:"votes"`
	Feedback   []Feedback `json:"feedback"`
	VotingOpen bool       `json:"voting_open"`
}

type BrewerResponse struct {
	Beer     Beer       `json:"beer"`
	Feedback []Feedback `json:"feedback"`
}

type RevealResponse struct {
	RevealStage int `json:"reveal_stage"`
}

type ProvisionVotersResponse struct {
	VoterCodes []string `json:"voter_codes"`
	Links      []string `json:"links"`
}

type TestVoterResponse struct {
	VoterID   string `json:"voter_id"`
	VoterCode string `json:"voter_code,omitempty"`
	VoteURL   string `json:"vote_url"`
}

type MeResponse struct {
	Admin    Admin    `json:"admin"`
	Scope    string   `json:"scope"`
	EventIDs []string `json:"event_ids,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}
