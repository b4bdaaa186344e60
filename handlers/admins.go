// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/natemartinsf/auto-bean/middleware"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/scope"
	"github.com/natemartinsf/auto-bean/store"
)

// AdminHandler serves the caller's identity, organizations and admins.
type AdminHandler struct {
	st    *store.Store
	authz *scope.Authorizer
}

func NewAdminHandler(st *store.Store, authz *scope.Authorizer) *AdminHandler {
	return &AdminHandler{st: st, authz: authz}
}

// Me handles GET /admin/me
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		Admin:    s.Admin,
		Scope:    s.Kind.String(),
		EventIDs: s.EventIDs,
	})
}

// ListOrganizations handles GET /admin/organizations
func (h *AdminHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	orgs, err := h.authz.ListOrganizations(r.Context(), s)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, orgs)
}

// CreateOrganization handles POST /admin/organizations
func (h *AdminHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	var req models.CreateOrganizationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	org, err := h.authz.CreateOrganization(r.Context(), s, req.Name)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, org)
}

// DeleteOrganization handles DELETE /admin/organizations/{id}
func (h *AdminHandler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	if err := h.authz.DeleteOrganization(r.Context(), s, r.PathValue("id")); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAdmins handles GET /admin/admins
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	admins, err := h.authz.ListAdmins(r.Context(), s)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, admins)
}

// CreateAdmin handles POST /admin/admins
// Invites an admin by email; the row links to a user on their first sign-in.
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	var req models.CreateAdminRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	admin, err := h.authz.CreateAdmin(r.Context(), s, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, admin)
}

// DeleteAdmin handles DELETE /admin/admins/{id}
func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	if err := h.authz.RemoveAdmin(r.Context(), s, r.PathValue("id")); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReassignAdmin handles PUT /admin/admins/{id}/organization
func (h *AdminHandler) ReassignAdmin(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}

	var req models.ReassignAdminRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	admin, err := h.authz.ReassignAdmin(r.Context(), s, r.PathValue("id"), req.OrganizationID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, admin)
}

// ListAccessRequests handles GET /admin/access-requests
func (h *AdminHandler) ListAccessRequests(w http.ResponseWriter, r *http.Request) {
	s, ok := adminScope(w, r)
	if !ok {
		return
	}
	if err := scope.RequireSuper(s); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	requests, err := h.st.ListAccessRequests(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, requests)
}
