// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/natemartinsf/auto-bean/models"
)

func (q *Queries) CreateOrganization(ctx context.Context, name string) (models.Organization, error) {
	org := models.Organization{ID: NewID(), Name: name, CreatedAt: now()}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO organizations (id, name, created_at)
		VALUES ($1, $2, $3)
	`, org.ID, org.Name, org.CreatedAt)
	if err != nil {
		return models.Organization{}, mapWriteErr(err)
	}
	return org, nil
}

func (q *Queries) GetOrganization(ctx context.Context, id string) (models.Organization, error) {
	var org models.Organization
	err := q.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM organizations WHERE id = $1
	`, id).Scan(&org.ID, &org.Name, &org.CreatedAt)
	if err != nil {
		return models.Organization{}, mapReadErr(err)
	}
	return org, nil
}

func (q *Queries) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM organizations ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := []models.Organization{}
	for rows.Next() {
		var org models.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.CreatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

// OrganizationUsage counts the events and admins still owned by an organization.
func (q *Queries) OrganizationUsage(ctx context.Context, id string) (events, admins int, err error) {
	err = q.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM events WHERE organization_id = $1),
			(SELECT COUNT(*) FROM admins WHERE organization_id = $1)
	`, id).Scan(&events, &admins)
	return events, admins, err
}

func (q *Queries) DeleteOrganization(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// LockOrganization takes a row lock on the organization for the rest of
// the transaction. It is a no-op write so it works on both drivers.
func (q *Queries) LockOrganization(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `UPDATE organizations SET name = name WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
