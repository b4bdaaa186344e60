// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scope

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/store"
)

// Bootstrap invites a super admin when the deployment has no admins yet.
// The invite links on that user's first authenticated request. It reports
// whether an invite was created.
func Bootstrap(ctx context.Context, st *store.Store, email, orgName string) (bool, error) {
	if email == "" {
		return false, nil
	}

	created := false
	err := st.WithTx(ctx, func(q *store.Queries) error {
		n, err := q.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if n > 0 {
			return nil
		}

		org, err := organizationByName(ctx, q, orgName)
		if err != nil {
			return err
		}

		admin, err := q.CreateAdmin(ctx, models.Admin{
			Email:          email,
			OrganizationID: org.ID,
			IsSuper:        true,
		})
		if err != nil {
			return fmt.Errorf("create bootstrap admin: %w", err)
		}
		created = true
		slog.Info("bootstrap super admin invited", "admin_id", admin.ID, "organization_id", org.ID)
		return nil
	})
	return created, err
}

func organizationByName(ctx context.Context, q *store.Queries, name string) (models.Organization, error) {
	orgs, err := q.ListOrganizations(ctx)
	if err != nil {
		return models.Organization{}, fmt.Errorf("list organizations: %w", err)
	}
	for _, o := range orgs {
		if o.Name == name {
			return o, nil
		}
	}

	org, err := q.CreateOrganization(ctx, name)
	if err != nil {
		return models.Organization{}, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}
