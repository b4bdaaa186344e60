// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/middleware"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/scope"
	"github.com/natemartinsf/auto-bean/store"
	"github.com/natemartinsf/auto-bean/validation"
)

var validate = validation.New()

// decodeRequest parses and validates a JSON body. It writes the error
// response itself and reports whether the handler should continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := middleware.ParseJSONBody(r, dst); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	if err := validate.Validate(dst); err != nil {
		middleware.WriteError(w, r, err)
		return false
	}
	return true
}

// adminScope returns the scope set by middleware.RequireAdmin
func adminScope(w http.ResponseWriter, r *http.Request) (scope.Scope, bool) {
	s, ok := middleware.ScopeFrom(r.Context())
	if !ok {
		middleware.WriteError(w, r, errs.Unauthorized("authentication required"))
		return scope.Scope{}, false
	}
	return s, true
}

// parseUUID canonicalizes a path UUID. Malformed IDs are reported as
// not found so unauthenticated callers learn nothing.
func parseUUID(raw, what string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", errs.NotFound(what + " not found")
	}
	return id.String(), nil
}

// shortCodeOrEmpty returns the code for a target, or "" if none was reserved.
func shortCodeOrEmpty(ctx context.Context, st *store.Store, t models.TargetType, id string) (string, error) {
	code, err := st.ShortCodeFor(ctx, t, id)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s short code: %w", t, err)
	}
	return code, nil
}

// publicBeers strips brewer names while a blind tasting is not fully revealed.
func publicBeers(event models.Event, beers []models.Beer) []models.Beer {
	if !hideBrewers(event) {
		return beers
	}
	out := make([]models.Beer, len(beers))
	for i, b := range beers {
		b.Brewer = ""
		out[i] = b
	}
	return out
}

func hideBrewers(event models.Event) bool {
	return event.BlindTasting && event.RevealStage < models.MaxRevealStage
}
