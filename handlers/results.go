// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/middleware"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/reveal"
	"github.com/natemartinsf/auto-bean/shortcode"
	"github.com/natemartinsf/auto-bean/store"
	"github.com/natemartinsf/auto-bean/tally"
)

// ResultsHandler serves everything reachable through an event or brewer link.
type ResultsHandler struct {
	st    *store.Store
	codes *shortcode.Resolver
}

func NewResultsHandler(st *store.Store, codes *shortcode.Resolver) *ResultsHandler {
	return &ResultsHandler{st: st, codes: codes}
}

func (h *ResultsHandler) resolveEvent(ctx context.Context, code string) (models.Event, error) {
	eventID, ok, err := h.codes.Resolve(ctx, code, models.TargetEvent)
	if err != nil {
		return models.Event{}, err
	}
	if !ok {
		return models.Event{}, errs.NotFound("event not found")
	}
	return h.st.GetEvent(ctx, eventID)
}

// GetEvent handles GET /e/{code}
// Returns the event and its beer list.
func (h *ResultsHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.resolveEvent(r.Context(), r.PathValue("code"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	beers, err := h.st.ListBeers(r.Context(), event.ID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PublicEventResponse{
		Event: event,
		Beers: publicBeers(event, beers),
	})
}

// GetResults handles GET /e/{code}/results
// Returns only the rankings revealed so far. Before the ceremony starts
// the results answer 404 like any other unresolvable public path.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	event, err := h.resolveEvent(ctx, r.PathValue("code"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if reveal.VotingOpen(event.RevealStage) {
		middleware.WriteError(w, r, errs.NotFound("results have not been revealed"))
		return
	}

	beers, err := h.st.ListBeers(ctx, event.ID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	votes, err := h.st.ListVotesByEvent(ctx, event.ID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	result := tally.Tally(beers, votes)
	rankings := tally.Disclose(result.Rankings, event.RevealStage)
	if hideBrewers(event) {
		rankings = tally.HideBrewers(rankings)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Event:       event,
		RevealStage: event.RevealStage,
		Rankings:    rankings,
		Stats:       result.Stats,
	})
}

// GetBrewerByCode handles GET /b/{code}
func (h *ResultsHandler) GetBrewerByCode(w http.ResponseWriter, r *http.Request) {
	tokenID, ok, err := h.codes.Resolve(r.Context(), r.PathValue("code"), models.TargetBrewer)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !ok {
		middleware.WriteError(w, r, errs.NotFound("brewer link not found"))
		return
	}
	h.writeBrewer(w, r, tokenID)
}

// GetBrewerByToken handles GET /brewer/{token}
func (h *ResultsHandler) GetBrewerByToken(w http.ResponseWriter, r *http.Request) {
	tokenID, err := parseUUID(r.PathValue("token"), "brewer link")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	h.writeBrewer(w, r, tokenID)
}

// writeBrewer returns a beer with the feedback voters chose to share
func (h *ResultsHandler) writeBrewer(w http.ResponseWriter, r *http.Request, tokenID string) {
	ctx := r.Context()
	token, err := h.st.GetBrewerToken(ctx, tokenID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	beer, err := h.st.GetBeer(ctx, token.BeerID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	feedback, err := h.st.ListSharedFeedback(ctx, beer.ID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BrewerResponse{
		Beer:     beer,
		Feedback: feedback,
	})
}
