// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/natemartinsf/auto-bean/middleware"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/store"
)

type AccessRequestHandler struct {
	st *store.Store
}

func NewAccessRequestHandler(st *store.Store) *AccessRequestHandler {
	return &AccessRequestHandler{st: st}
}

// Create handles POST /access-requests
// A filled-in honeypot field gets the same answer but nothing is stored.
func (h *AccessRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AccessRequestRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if req.Website != "" {
		slog.Warn("access request honeypot triggered", "ip", middleware.GetClientIP(r))
		middleware.JSONResponse(w, http.StatusAccepted, map[string]string{"status": "received"})
		return
	}

	ar := models.AccessRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    store.NormalizeEmail(req.Email),
		ClubName: strings.TrimSpace(req.ClubName),
	}
	if msg := strings.TrimSpace(req.Message); msg != "" {
		ar.Message = &msg
	}

	created, err := h.st.CreateAccessRequest(r.Context(), ar)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("access request received", "access_request_id", created.ID)
	middleware.JSONResponse(w, http.StatusAccepted, map[string]string{"status": "received"})
}
