// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/natemartinsf/auto-bean/cliparse"
	"github.com/natemartinsf/auto-bean/middleware"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/scope"
	"github.com/natemartinsf/auto-bean/shortcode"
	"github.com/natemartinsf/auto-bean/store"
	"github.com/natemartinsf/auto-bean/tally"
)

type EventHandler struct {
	st    *store.Store
	authz *scope.Authorizer
	codes *shortcode.Resolver
	cfg   cliparse.Config
}

func NewEventHandler(st *store.Store, authz *scope.Authorizer, codes *shortcode.Resolver, cfg cliparse.Config) *EventHandler {
	return &EventHandler{st: st, authz: authz, codes: codes, cfg: cfg}
}

// CreateEvent handles POST /admin/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	event, err := h.authz.CreateEvent(r.Context(), s, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	// The event exists from here on; missing codes can be regenerated later
	resp := models.CreateEventResponse{Event: event}
	if resp.EventCode, err = h.codes.Reserve(r.Context(), models.TargetEvent, event.ID); err != nil {
		slog.Error("failed to reserve event code", "event_id", event.ID, "error", err)
	}
	if resp.ManageCode, err = h.codes.Reserve(r.Context(), models.TargetManage, event.ID); err != nil {
		slog.Error("failed to reserve manage code", "event_id", event.ID, "error", err)
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// ListEvents handles GET /admin/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	events, err := h.authz.ListEvents(r.Context(), s)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, events)
}

// GetEvent handles GET /admin/events/{id}
// Returns the organizer dashboard: codes, full rankings and stats.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	event, err := h.authz.AuthorizeEvent(ctx, s, r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	resp, err := h.dashboard(ctx, event)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

func (h *EventHandler) dashboard(ctx context.Context, event models.Event) (models.AdminEventResponse, error) {
	resp := models.AdminEventResponse{Event: event}

	beers, err := h.st.ListBeers(ctx, event.ID)
	if err != nil {
		return resp, err
	}
	votes, err := h.st.ListVotesByEvent(ctx, event.ID)
	if err != nil {
		return resp, err
	}
	result := tally.Tally(beers, votes)
	resp.Rankings = result.Rankings
	resp.Stats = result.Stats

	if resp.EventCode, err = shortCodeOrEmpty(ctx, h.st, models.TargetEvent, event.ID); err != nil {
		return resp, err
	}
	if resp.ManageCode, err = shortCodeOrEmpty(ctx, h.st, models.TargetManage, event.ID); err != nil {
		return resp, err
	}
	if resp.BrewerCodes, err = h.st.ListBrewerCodes(ctx, event.ID); err != nil {
		return resp, err
	}
	if resp.AssignedAdmins, err = h.st.ListEventAdmins(ctx, event.ID); err != nil {
		return resp, err
	}
	return resp, nil
}

// DeleteEvent handles DELETE /admin/events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	if err := h.authz.DeleteEvent(r.Context(), s, r.PathValue("id")); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetBlindTasting handles PUT /admin/events/{id}/blind-tasting
func (h *EventHandler) SetBlindTasting(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	var req models.BlindTastingRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	event, err := h.authz.SetBlindTasting(r.Context(), s, r.PathValue("id"), req.Enabled)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, event)
}

// AddBeer handles POST /admin/events/{id}/beers
func (h *EventHandler) AddBeer(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	event, err := h.authz.AuthorizeEvent(r.Context(), s, r.PathValue("id"))
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

// DeleteBeer handles DELETE /admin/events/{id}/beers/{beerID}
func (h *EventHandler) DeleteBeer(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	if err := h.authz.DeleteBeer(r.Context(), s, r.PathValue("id"), r.PathValue("beerID")); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProvisionVoters handles POST /admin/events/{id}/voters
// Creates count voters up front, each with its own voter code for printed cards.
func (h *EventHandler) ProvisionVoters(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	event, err := h.authz.AuthorizeEvent(ctx, s, r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.ProvisionVotersRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	ids := make([]string, req.Count)
	err = h.st.WithTx(ctx, func(q *store.Queries) error {
		for i := range ids {
			ids[i] = uuid.NewString()
			if _, err := q.CreateVoter(ctx, event.ID, ids[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	codes, err := h.codes.ReserveBatch(ctx, models.TargetVoter, ids)
	if err != nil {
		slog.Error("voter code reservation incomplete",
			"event_id", event.ID,
			"requested", req.Count,
			"reserved", len(codes),
			"error", err,
		)
		middleware.WriteError(w, r, err)
		return
	}

	resp := models.ProvisionVotersResponse{VoterCodes: codes, Links: make([]string, len(codes))}
	for i, code := range codes {
		resp.Links[i] = h.cfg.BaseURL + "/v/" + code
	}

	slog.Info("voters provisioned", "event_id", event.ID, "count", len(codes), "admin_id", s.Admin.ID)
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// CreateTestVoter handles POST /admin/events/{id}/test-voter
// Creates a single voter so organizers can try the ballot themselves.
func (h *EventHandler) CreateTestVoter(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	event, err := h.authz.AuthorizeEvent(ctx, s, r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	voter, err := h.st.CreateVoter(ctx, event.ID, uuid.NewString())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	resp := models.TestVoterResponse{
		VoterID: voter.ID,
		VoteURL: h.cfg.BaseURL + "/vote/" + event.ID + "/" + voter.ID,
	}
	if resp.VoterCode, err = h.codes.Reserve(ctx, models.TargetVoter, voter.ID); err != nil {
		slog.Error("failed to reserve test voter code", "event_id", event.ID, "error", err)
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// ListEventAdmins handles GET /admin/events/{id}/admins
func (h *EventHandler) ListEventAdmins(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	admins, err := h.authz.ListEventAdmins(r.Context(), s, r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, admins)
}

// AssignEventAdmin handles POST /admin/events/{id}/admins
func (h *EventHandler) AssignEventAdmin(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	var req models.AssignAdminRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.authz.AssignEventAdmin(r.Context(), s, r.PathValue("id"), req.AdminID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnassignEventAdmin handles DELETE /admin/events/{id}/admins/{adminID}
func (h *EventHandler) UnassignEventAdmin(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	if err := h.authz.UnassignEventAdmin(r.Context(), s, r.PathValue("id"), r.PathValue("adminID")); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
