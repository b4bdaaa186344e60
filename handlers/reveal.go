// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/natemartinsf/auto-bean/middleware"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/reveal"
)

type RevealHandler struct {
	machine *reveal.Machine
}

func NewRevealHandler(machine *reveal.Machine) *RevealHandler {
	return &RevealHandler{machine: machine}
}

// Advance handles POST /admin/events/{id}/reveal/advance
func (h *RevealHandler) Advance(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	stage, err := h.machine.Advance(r.Context(), s, r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.RevealResponse{RevealStage: stage})
}

// Reset handles POST /admin/events/{id}/reveal/reset
func (h *RevealHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	stage, err := h.machine.Reset(r.Context(), s, r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.RevealResponse{RevealStage: stage})
}
