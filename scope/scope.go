// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scope

import (
	"slices"

	"github.com/natemartinsf/auto-bean/models"
)

// Kind tags which variant a Scope holds.
type Kind int

const (
	KindSuper Kind = iota + 1
	KindOrganization
	KindEvents
)

func (k Kind) String() string {
	switch k {
	case KindSuper:
		return "super"
	case KindOrganization:
		return "organization"
	case KindEvents:
		return "event"
	default:
		return "none"
	}
}

// Model selects how non-super admins are scoped in a deployment.
type Model string

const (
	ModelOrganization Model = "organization"
	ModelAssignment   Model = "assignment"
)

// Scope is what an authenticated admin may act on: everything, one
// organization, or an explicit set of events.
type Scope struct {
	Kind     Kind
	Admin    models.Admin
	OrgID    string
	EventIDs []string
}

func Super(admin models.Admin) Scope {
	return Scope{Kind: KindSuper, Admin: admin}
}

func Org(admin models.Admin, orgID string) Scope {
	return Scope{Kind: KindOrganization, Admin: admin, OrgID: orgID}
}

func Events(admin models.Admin, eventIDs []string) Scope {
	ids := slices.Clone(eventIDs)
	slices.Sort(ids)
	return Scope{Kind: KindEvents, Admin: admin, EventIDs: ids}
}

func (s Scope) IsSuper() bool {
	return s.Kind == KindSuper
}

// CoversOrg reports whether the scope may manage an organization's admins.
// Event scopes never cover a whole organization.
func (s Scope) CoversOrg(orgID string) bool {
	switch s.Kind {
	case KindSuper:
		return true
	case KindOrganization:
		return s.OrgID == orgID
	default:
		return false
	}
}

// CoversEvent reports whether the scope may act on an event.
func (s Scope) CoversEvent(e models.Event) bool {
	switch s.Kind {
	case KindSuper:
		return true
	case KindOrganization:
		return e.OrganizationID == s.OrgID
	case KindEvents:
		_, found := slices.BinarySearch(s.EventIDs, e.ID)
		return found
	default:
		return false
	}
}

// CoversAdmin reports whether the scope may manage another admin.
// Only super admins manage super admins.
func (s Scope) CoversAdmin(a models.Admin) bool {
	if a.IsSuper && !s.IsSuper() {
		return false
	}
	return s.CoversOrg(a.OrganizationID)
}
