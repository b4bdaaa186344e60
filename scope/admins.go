// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/store"
)

// Organizations

func (a *Authorizer) CreateOrganization(ctx context.Context, s Scope, name string) (models.Organization, error) {
	if err := RequireSuper(s); err != nil {
		return models.Organization{}, err
	}
	org, err := a.st.CreateOrganization(ctx, name)
	if errors.Is(err, store.ErrAlreadyExists) {
		return models.Organization{}, errs.Conflict("an organization with this name already exists")
	}
	if err != nil {
		return models.Organization{}, fmt.Errorf("create organization: %w", err)
	}
	slog.Info("organization created", "organization_id", org.ID, "admin_id", s.Admin.ID)
	return org, nil
}

func (a *Authorizer) ListOrganizations(ctx context.Context, s Scope) ([]models.Organization, error) {
	if s.IsSuper() {
		return a.st.ListOrganizations(ctx)
	}
	org, err := a.st.GetOrganization(ctx, s.Admin.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return []models.Organization{org}, nil
}

// DeleteOrganization removes an organization that owns no events and no admins.
func (a *Authorizer) DeleteOrganization(ctx context.Context, s Scope, orgID string) error {
	if err := RequireSuper(s); err != nil {
		return err
	}

	err := a.st.WithTx(ctx, func(q *store.Queries) error {
		if err := q.LockOrganization(ctx, orgID); err != nil {
			return err
		}
		events, admins, err := q.OrganizationUsage(ctx, orgID)
		if err != nil {
			return err
		}
		if events > 0 || admins > 0 {
			return errs.Conflict("organization still has events or admins").
				WithDetails(map[string]int{"events": events, "admins": admins})
		}
		return q.DeleteOrganization(ctx, orgID)
	})
	if errors.Is(err, store.ErrNotFound) {
		return errs.NotFound("organization not found")
	}
	if err != nil {
		return err
	}
	slog.Info("organization deleted", "organization_id", orgID, "admin_id", s.Admin.ID)
	return nil
}

// Admins

// CreateAdmin invites an admin by email. Event-scoped admins cannot create
// admins and only super admins can grant super.
func (a *Authorizer) CreateAdmin(ctx context.Context, s Scope, req models.CreateAdminRequest) (models.Admin, error) {
	if s.Kind == KindEvents {
		return models.Admin{}, errs.Forbidden("event admins cannot create admins")
	}
	if req.IsSuper && !s.IsSuper() {
		return models.Admin{}, errs.Forbidden("super admin required")
	}

	orgID, err := a.OrganizationFor(ctx, s, req.OrganizationID)
	if err != nil {
		return models.Admin{}, err
	}

	admin, err := a.st.CreateAdmin(ctx, models.Admin{
		Email:          req.Email,
		OrganizationID: orgID,
		IsSuper:        req.IsSuper,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return models.Admin{}, errs.Conflict("an admin with this email already exists")
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("create admin: %w", err)
	}

	slog.Info("admin created", "admin_id", admin.ID, "organization_id", orgID, "by", s.Admin.ID)
	return admin, nil
}

// RemoveAdmin deletes an admin. Removing yourself as the last admin of an
// organization, or removing the only admin assigned to an event, fails with
// LastAdmin. Another organization's sole admin may be removed so the
// organization can then be deleted.
func (a *Authorizer) RemoveAdmin(ctx context.Context, s Scope, adminID string) error {
	var target models.Admin
	if s.Kind == KindEvents {
		// Event admins may only remove themselves
		if adminID != s.Admin.ID {
			return errs.Forbidden("event admins cannot remove other admins")
		}
		target = s.Admin
	} else {
		var err error
		if target, err = a.AuthorizeAdmin(ctx, s, adminID); err != nil {
			return err
		}
	}

	err := a.st.WithTx(ctx, func(q *store.Queries) error {
		if err := q.LockOrganization(ctx, target.OrganizationID); err != nil {
			return err
		}
		if target.ID == s.Admin.ID {
			n, err := q.CountOrganizationAdmins(ctx, target.OrganizationID)
			if err != nil {
				return err
			}
			if n <= 1 {
				return errs.LastAdmin("cannot remove yourself as the only admin of an organization")
			}
		}

		sole, err := q.ListSoleAssignedEventIDs(ctx, target.ID)
		if err != nil {
			return err
		}
		if len(sole) > 0 {
			return errs.LastAdmin("admin is the only one assigned to an event").
				WithDetails(map[string][]string{"event_ids": sole})
		}

		return q.DeleteAdmin(ctx, target.ID)
	})
	if errors.Is(err, store.ErrNotFound) {
		return errs.NotFound("admin not found")
	}
	if err != nil {
		return err
	}

	slog.Info("admin removed", "admin_id", target.ID, "by", s.Admin.ID)
	return nil
}

// ReassignAdmin moves an admin to another organization. Super only. A super
// admin cannot move themselves out of an organization they alone administer.
func (a *Authorizer) ReassignAdmin(ctx context.Context, s Scope, adminID, orgID string) (models.Admin, error) {
	if err := RequireSuper(s); err != nil {
		return models.Admin{}, err
	}
	target, err := a.AuthorizeAdmin(ctx, s, adminID)
	if err != nil {
		return models.Admin{}, err
	}
	if target.OrganizationID == orgID {
		return target, nil
	}
	if _, err := a.st.GetOrganization(ctx, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Admin{}, errs.Invalid("organization does not exist")
		}
		return models.Admin{}, fmt.Errorf("get organization: %w", err)
	}

	err = a.st.WithTx(ctx, func(q *store.Queries) error {
		if err := q.LockOrganization(ctx, target.OrganizationID); err != nil {
			return err
		}
		if target.ID == s.Admin.ID {
			n, err := q.CountOrganizationAdmins(ctx, target.OrganizationID)
			if err != nil {
				return err
			}
			if n <= 1 {
				return errs.LastAdmin("cannot move yourself out as the only admin of an organization")
			}
		}
		return q.SetAdminOrganization(ctx, target.ID, orgID)
	})
	if err != nil {
		return models.Admin{}, err
	}

	target.OrganizationID = orgID
	slog.Info("admin reassigned", "admin_id", target.ID, "organization_id", orgID, "by", s.Admin.ID)
	return target, nil
}

// Event assignments

func (a *Authorizer) ListEventAdmins(ctx context.Context, s Scope, eventID string) ([]models.Admin, error) {
	if _, err := a.AuthorizeEvent(ctx, s, eventID); err != nil {
		return nil, err
	}
	return a.st.ListEventAdmins(ctx, eventID)
}

// AssignEventAdmin assigns an admin from the event's organization to the event.
func (a *Authorizer) AssignEventAdmin(ctx context.Context, s Scope, eventID, adminID string) error {
	event, err := a.AuthorizeEvent(ctx, s, eventID)
	if err != nil {
		return err
	}
	target, err := a.st.GetAdmin(ctx, adminID)
	if errors.Is(err, store.ErrNotFound) {
		return errs.NotFound("admin not found")
	}
	if err != nil {
		return fmt.Errorf("get admin: %w", err)
	}
	if target.OrganizationID != event.OrganizationID && !target.IsSuper {
		return errs.Invalid("admin belongs to a different organization")
	}

	if err := a.st.AssignEventAdmin(ctx, eventID, adminID); err != nil {
		return fmt.Errorf("assign event admin: %w", err)
	}
	slog.Info("event admin assigned", "event_id", eventID, "admin_id", adminID, "by", s.Admin.ID)
	return nil
}

// UnassignEventAdmin removes an assignment. The last assigned admin of an
// event cannot be removed.
func (a *Authorizer) UnassignEventAdmin(ctx context.Context, s Scope, eventID, adminID string) error {
	if _, err := a.AuthorizeEvent(ctx, s, eventID); err != nil {
		return err
	}

	err := a.st.WithTx(ctx, func(q *store.Queries) error {
		if err := q.LockEvent(ctx, eventID); err != nil {
			return err
		}
		n, err := q.CountEventAdmins(ctx, eventID)
		if err != nil {
			return err
		}
		if n <= 1 {
			// Only reject when the target really is the assigned admin
			assigned, err := q.ListAssignedEventIDs(ctx, adminID)
			if err != nil {
				return err
			}
			for _, id := range assigned {
				if id == eventID {
					return errs.LastAdmin("cannot remove the only admin assigned to this event")
				}
			}
		}
		return q.UnassignEventAdmin(ctx, eventID, adminID)
	})
	if errors.Is(err, store.ErrNotFound) {
		return errs.NotFound("assignment not found")
	}
	if err != nil {
		return err
	}
	slog.Info("event admin unassigned", "event_id", eventID, "admin_id", adminID, "by", s.Admin.ID)
	return nil
}

// Events

// CreateEvent creates an event in the scope's organization. Under the
// assignment model the creator is assigned to the new event.
func (a *Authorizer) CreateEvent(ctx context.Context, s Scope, req models.CreateEventRequest) (models.Event, error) {
	orgID, err := a.OrganizationFor(ctx, s, req.OrganizationID)
	if err != nil {
		return models.Event{}, err
	}

	maxPoints := models.DefaultMaxPoints
	if req.MaxPoints != nil {
		if *req.MaxPoints < 1 {
			return models.Event{}, errs.Invalid("max_points must be at least 1")
		}
		maxPoints = *req.MaxPoints
	}

	var event models.Event
	err = a.st.WithTx(ctx, func(q *store.Queries) error {
		created, err := q.CreateEvent(ctx, models.Event{
			OrganizationID: orgID,
			Name:           req.Name,
			Date:           req.Date,
			MaxPoints:      maxPoints,
			CreatedBy:      &s.Admin.ID,
		})
		if err != nil {
			return err
		}
		event = created
		if a.model == ModelAssignment {
			return q.AssignEventAdmin(ctx, event.ID, s.Admin.ID)
		}
		return nil
	})
	if err != nil {
		return models.Event{}, fmt.Errorf("create event: %w", err)
	}

	slog.Info("event created", "event_id", event.ID, "organization_id", orgID, "admin_id", s.Admin.ID)
	return event, nil
}

// SetBlindTasting toggles whether brewer names are hidden until the final reveal.
func (a *Authorizer) SetBlindTasting(ctx context.Context, s Scope, eventID string, enabled bool) (models.Event, error) {
	event, err := a.AuthorizeEvent(ctx, s, eventID)
	if err != nil {
		return models.Event{}, err
	}
	if err := a.st.SetBlindTasting(ctx, eventID, enabled); err != nil {
		return models.Event{}, fmt.Errorf("set blind tasting: %w", err)
	}
	event.BlindTasting = enabled
	return event, nil
}

// DeleteBeer removes a beer from an in-scope event.
func (a *Authorizer) DeleteBeer(ctx context.Context, s Scope, eventID, beerID string) error {
	if _, err := a.AuthorizeEvent(ctx, s, eventID); err != nil {
		return err
	}
	beer, err := a.st.GetBeer(ctx, beerID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && beer.EventID != eventID) {
		return errs.NotFound("beer not found")
	}
	if err != nil {
		return fmt.Errorf("get beer: %w", err)
	}
	if err := a.st.DeleteBeer(ctx, beerID); err != nil {
		return fmt.Errorf("delete beer: %w", err)
	}
	slog.Info("beer deleted", "event_id", eventID, "beer_id", beerID, "admin_id", s.Admin.ID)
	return nil
}
