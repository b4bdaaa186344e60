// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/middleware"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/reveal"
	"github.com/natemartinsf/auto-bean/shortcode"
	"github.com/natemartinsf/auto-bean/store"
)

// VotingHandler serves the anonymous ballot. A voter is identified only by
// the UUID in the path; the first visit creates the voter row.
type VotingHandler struct {
	st    *store.Store
	codes *shortcode.Resolver
}

func NewVotingHandler(st *store.Store, codes *shortcode.Resolver) *VotingHandler {
	return &VotingHandler{st: st, codes: codes}
}

// voterPath reads and canonicalizes {eventID} and {voterID}
func voterPath(r *http.Request) (eventID, voterID string, err error) {
	if eventID, err = parseUUID(r.PathValue("eventID"), "event"); err != nil {
		return "", "", err
	}
	if voterID, err = parseUUID(r.PathValue("voterID"), "voter"); err != nil {
		return "", "", err
	}
	return eventID, voterID, nil
}

// ensureVoter loads the event and creates the voter on first visit
func (h *VotingHandler) ensureVoter(ctx context.Context, eventID, voterID string) (models.Event, models.Voter, error) {
	event, err := h.st.GetEvent(ctx, eventID)
	if err != nil {
		return models.Event{}, models.Voter{}, err
	}
	voter, err := h.st.EnsureVoter(ctx, event.ID, voterID)
	if err != nil {
		return models.Event{}, models.Voter{}, err
	}
	return event, voter, nil
}

// GetBallot handles GET /vote/{eventID}/{voterID}
func (h *VotingHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID, voterID, err := voterPath(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	event, voter, err := h.ensureVoter(ctx, eventID, voterID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	beers, err := h.st.ListBeers(ctx, event.ID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	votes, err := h.st.ListVotesByVoter(ctx, voter.ID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	feedback, err := h.st.ListFeedbackByVoter(ctx, voter.ID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotResponse{
		Event:      event,
		Voter:      voter,
		Beers:      publicBeers(event, beers),
		Votes:      votes,
		Feedback:   feedback,
		VotingOpen: reveal.VotingOpen(event.RevealStage),
	})
}

// ResolveVoterCode handles GET /v/{code}
// Redirects a printed voter code to its ballot.
func (h *VotingHandler) ResolveVoterCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	voterID, ok, err := h.codes.Resolve(ctx, r.PathValue("code"), models.TargetVoter)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !ok {
		middleware.WriteError(w, r, errs.NotFound("voter not found"))
		return
	}

	voter, err := h.st.GetVoter(ctx, voterID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	http.Redirect(w, r, "/vote/"+voter.EventID+"/"+voter.ID, http.StatusFound)
}

// CastVote handles PUT /vote/{eventID}/{voterID}/beers/{beerID}
// Sets (or replaces) this voter's points for one beer.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID, voterID, err := voterPath(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	beerID, err := parseUUID(r.PathValue("beerID"), "beer")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.CastVoteRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if _, _, err := h.ensureVoter(ctx, eventID, voterID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	vote, err := h.st.CastVote(ctx, eventID, voterID, beerID, *req.Points)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Debug("vote cast", "event_id", eventID, "beer_id", beerID, "points", vote.Points)
	middleware.JSONResponse(w, http.StatusOK, vote)
}

// SaveFeedback handles PUT /vote/{eventID}/{voterID}/beers/{beerID}/feedback
func (h *VotingHandler) SaveFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID, voterID, err := voterPath(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	beerID, err := parseUUID(r.PathValue("beerID"), "beer")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.FeedbackRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if _, _, err := h.ensureVoter(ctx, eventID, voterID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	feedback, err := h.st.SaveFeedback(ctx, eventID, models.Feedback{
		VoterID:         voterID,
		BeerID:          beerID,
		Notes:           req.Notes,
		ShareWithBrewer: req.ShareWithBrewer,
	})
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, feedback)
}
