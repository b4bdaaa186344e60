// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reveal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/scope"
	"github.com/natemartinsf/auto-bean/store"
)

const (
	StageHidden = 0
	StageFull   = models.MaxRevealStage
)

// VotingOpen reports whether votes and feedback are accepted at a stage.
func VotingOpen(stage int) bool {
	return stage == StageHidden
}

// Machine drives an event's reveal stage through 0..4.
type Machine struct {
	st    *store.Store
	authz *scope.Authorizer
}

func New(st *store.Store, authz *scope.Authorizer) *Machine {
	return &Machine{st: st, authz: authz}
}

// Advance moves the event one stage forward. At the final stage it fails
// with CeremonyComplete and leaves the stage unchanged.
func (m *Machine) Advance(ctx context.Context, s scope.Scope, eventID string) (int, error) {
	if _, err := m.authz.AuthorizeEvent(ctx, s, eventID); err != nil {
		return 0, err
	}

	stage, ok, err := m.st.AdvanceRevealStage(ctx, eventID, StageFull)
	if err != nil {
		return 0, fmt.Errorf("advance reveal stage: %w", err)
	}
	if !ok {
		// Either deleted since authorization or already at the final stage
		if _, err := m.st.GetEvent(ctx, eventID); errors.Is(err, store.ErrNotFound) {
			return 0, errs.NotFound("event not found")
		}
		return StageFull, errs.ErrCeremonyComplete
	}

	slog.Info("reveal advanced", "event_id", eventID, "stage", stage, "admin_id", s.Admin.ID)
	return stage, nil
}

// Reset returns the event to stage 0, reopening voting.
func (m *Machine) Reset(ctx context.Context, s scope.Scope, eventID string) (int, error) {
	if _, err := m.authz.AuthorizeEvent(ctx, s, eventID); err != nil {
		return 0, err
	}

	if err := m.st.ResetRevealStage(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, errs.NotFound("event not found")
		}
		return 0, fmt.Errorf("reset reveal stage: %w", err)
	}

	slog.Info("reveal reset", "event_id", eventID, "admin_id", s.Admin.ID)
	return StageHidden, nil
}
