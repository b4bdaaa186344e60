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
	"github.com/natemartinsf/auto-bean/shortcode"
	"github.com/natemartinsf/auto-bean/store"
)

// ManageHandler serves the unauthenticated manage link. Holding the
// manage code is enough to add beers to its event.
type ManageHandler struct {
	st    *store.Store
	codes *shortcode.Resolver
}

func NewManageHandler(st *store.Store, codes *shortcode.Resolver) *ManageHandler {
	return &ManageHandler{st: st, codes: codes}
}

func (h *ManageHandler) resolveEvent(ctx context.Context, code string) (models.Event, error) {
	eventID, ok, err := h.codes.Resolve(ctx, code, models.TargetManage)
	if err != nil {
		return models.Event{}, err
	}
	if !ok {
		return models.Event{}, errs.NotFound("event not found")
	}
	return h.st.GetEvent(ctx, eventID)
}

// GetManage handles GET /m/{code}
func (h *ManageHandler) GetManage(w http.ResponseWriter, r *http.Request) {
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
		Beers: beers,
	})
}

// AddBeer handles POST /m/{code}/beers
func (h *ManageHandler) AddBeer(w http.ResponseWriter, r *http.Request) {
	event, err := h.resolveEvent(r.Context(), r.PathValue("code"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.AddBeerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resp, err := addBeer(r.Context(), h.st, h.codes, event.ID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// addBeer creates the beer and its brewer token, then reserves the brewer
// code. A failed reservation is logged and leaves the beer in place.
func addBeer(ctx context.Context, st *store.Store, codes *shortcode.Resolver, eventID string, req models.AddBeerRequest) (models.AddBeerResponse, error) {
	beer, token, err := st.AddBeer(ctx, models.Beer{
		EventID: eventID,
		Name:    req.Name,
		Brewer:  req.Brewer,
		Style:   req.Style,
	})
	if err != nil {
		return models.AddBeerResponse{}, err
	}

	resp := models.AddBeerResponse{Beer: beer, BrewerTokenID: token.ID}
	if resp.BrewerCode, err = codes.Reserve(ctx, models.TargetBrewer, token.ID); err != nil {
		slog.Error("failed to reserve brewer code", "beer_id", beer.ID, "error", err)
	}

	slog.Info("beer added", "event_id", eventID, "beer_id", beer.ID)
	return resp, nil
}
