// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/natemartinsf/auto-bean/auth"
	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/store"
)

// Authorizer computes scopes and gates every admin-side read and write.
type Authorizer struct {
	st    *store.Store
	model Model
}

func NewAuthorizer(st *store.Store, model Model) *Authorizer {
	if model == "" {
		model = ModelOrganization
	}
	return &Authorizer{st: st, model: model}
}

func (a *Authorizer) Model() Model {
	return a.model
}

// Compute resolves a principal to exactly one scope. A principal with no
// admin row is linked to an invited admin with the same email, if any.
func (a *Authorizer) Compute(ctx context.Context, p auth.Principal) (Scope, error) {
	admin, err := a.adminFor(ctx, p)
	if err != nil {
		return Scope{}, err
	}

	if admin.IsSuper {
		return Super(admin), nil
	}

	switch a.model {
	case ModelAssignment:
		ids, err := a.st.ListAssignedEventIDs(ctx, admin.ID)
		if err != nil {
			return Scope{}, fmt.Errorf("list assigned events: %w", err)
		}
		return Events(admin, ids), nil
	default:
		return Org(admin, admin.OrganizationID), nil
	}
}

func (a *Authorizer) adminFor(ctx context.Context, p auth.Principal) (models.Admin, error) {
	admin, err := a.st.GetAdminByUserID(ctx, p.UserID)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Admin{}, fmt.Errorf("get admin: %w", err)
	}

	invited, err := a.st.GetAdminByEmail(ctx, p.Email)
	if errors.Is(err, store.ErrNotFound) || (err == nil && invited.UserID != nil) {
		return models.Admin{}, errs.Forbidden("not an administrator")
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("get admin by email: %w", err)
	}

	err = a.st.LinkAdminUser(ctx, invited.ID, p.UserID)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrAlreadyExists) {
		// Another request linked it first
		admin, err := a.st.GetAdminByUserID(ctx, p.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return models.Admin{}, errs.Forbidden("not an administrator")
		}
		return admin, err
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("link admin: %w", err)
	}

	slog.Info("admin invite linked", "admin_id", invited.ID)
	invited.UserID = &p.UserID
	return invited, nil
}

// RequireSuper fails with Forbidden unless the scope is super.
func RequireSuper(s Scope) error {
	if !s.IsSuper() {
		return errs.Forbidden("super admin required")
	}
	return nil
}

// AuthorizeEvent loads an event and checks it is in scope.
// A missing event is NotFound; an out-of-scope event is Forbidden.
func (a *Authorizer) AuthorizeEvent(ctx context.Context, s Scope, eventID string) (models.Event, error) {
	event, err := a.st.GetEvent(ctx, eventID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Event{}, errs.NotFound("event not found")
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("get event: %w", err)
	}
	if !s.CoversEvent(event) {
		return models.Event{}, errs.Forbidden("event is outside your scope")
	}
	return event, nil
}

// AuthorizeAdmin loads another admin and checks it is in scope.
func (a *Authorizer) AuthorizeAdmin(ctx context.Context, s Scope, adminID string) (models.Admin, error) {
	target, err := a.st.GetAdmin(ctx, adminID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Admin{}, errs.NotFound("admin not found")
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("get admin: %w", err)
	}
	if !s.CoversAdmin(target) {
		return models.Admin{}, errs.Forbidden("admin is outside your scope")
	}
	return target, nil
}

// OrganizationFor picks the organization a new event or admin lands in.
// Super admins may name any organization and default to their own.
func (a *Authorizer) OrganizationFor(ctx context.Context, s Scope, requested string) (string, error) {
	switch s.Kind {
	case KindSuper:
		if requested == "" {
			return s.Admin.OrganizationID, nil
		}
		if _, err := a.st.GetOrganization(ctx, requested); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return "", errs.Invalid("organization does not exist")
			}
			return "", fmt.Errorf("get organization: %w", err)
		}
		return requested, nil
	case KindOrganization:
		if requested != "" && requested != s.OrgID {
			return "", errs.Forbidden("organization is outside your scope")
		}
		return s.OrgID, nil
	case KindEvents:
		if requested != "" && requested != s.Admin.OrganizationID {
			return "", errs.Forbidden("organization is outside your scope")
		}
		return s.Admin.OrganizationID, nil
	default:
		return "", errs.Forbidden("no scope")
	}
}

// ListEvents returns the events visible to a scope.
func (a *Authorizer) ListEvents(ctx context.Context, s Scope) ([]models.Event, error) {
	switch s.Kind {
	case KindSuper:
		return a.st.ListAllEvents(ctx)
	case KindOrganization:
		return a.st.ListEventsByOrganization(ctx, s.OrgID)
	case KindEvents:
		return a.st.ListEventsByIDs(ctx, s.EventIDs)
	default:
		return nil, errs.Forbidden("no scope")
	}
}

// ListAdmins returns the admins visible to a scope. Event scopes see only themselves.
func (a *Authorizer) ListAdmins(ctx context.Context, s Scope) ([]models.Admin, error) {
	switch s.Kind {
	case KindSuper:
		return a.st.ListAdmins(ctx, "")
	case KindOrganization:
		return a.st.ListAdmins(ctx, s.OrgID)
	default:
		return []models.Admin{s.Admin}, nil
	}
}

// DeleteEvent removes an in-scope event and everything under it.
func (a *Authorizer) DeleteEvent(ctx context.Context, s Scope, eventID string) error {
	if _, err := a.AuthorizeEvent(ctx, s, eventID); err != nil {
		return err
	}
	if err := a.st.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errs.NotFound("event not found")
		}
		return fmt.Errorf("delete event: %w", err)
	}
	slog.Info("event deleted", "event_id", eventID, "admin_id", s.Admin.ID)
	return nil
}
