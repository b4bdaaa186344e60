// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/natemartinsf/auto-bean/models"
)

const adminColumns = `id, user_id, email, organization_id, is_super, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row rowScanner) (models.Admin, error) {
	var (
		a      models.Admin
		userID sql.NullString
	)
	if err := row.Scan(&a.ID, &userID, &a.Email, &a.OrganizationID, &a.IsSuper, &a.CreatedAt); err != nil {
		return models.Admin{}, err
	}
	a.UserID = stringPtr(userID)
	return a, nil
}

func (q *Queries) listAdmins(ctx context.Context, query string, args ...any) ([]models.Admin, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []models.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAdmin inserts an admin. A nil UserID records an invite that is linked on first sign-in.
func (q *Queries) CreateAdmin(ctx context.Context, a models.Admin) (models.Admin, error) {
	if a.ID == "" {
		a.ID = NewID()
	}
	a.Email = NormalizeEmail(a.Email)
	a.CreatedAt = now()

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO admins (id, user_id, email, organization_id, is_super, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, nullString(a.UserID), a.Email, a.OrganizationID, a.IsSuper, a.CreatedAt)
	if err != nil {
		return models.Admin{}, mapWriteErr(err)
	}
	return a, nil
}

func (q *Queries) GetAdmin(ctx context.Context, id string) (models.Admin, error) {
	a, err := scanAdmin(q.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
	return a, mapReadErr(err)
}

func (q *Queries) GetAdminByUserID(ctx context.Context, userID string) (models.Admin, error) {
	a, err := scanAdmin(q.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE user_id = $1`, userID))
	return a, mapReadErr(err)
}

func (q *Queries) GetAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	a, err := scanAdmin(q.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = $1`, NormalizeEmail(email)))
	return a, mapReadErr(err)
}

// LinkAdminUser binds an invited admin to an auth principal.
// Returns ErrNotFound if the admin does not exist or is already linked.
func (q *Queries) LinkAdminUser(ctx context.Context, adminID, userID string) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE admins SET user_id = $2 WHERE id = $1 AND user_id IS NULL
	`, adminID, userID)
	if err != nil {
		return mapWriteErr(err)
	}
	return requireAffected(res)
}

// ListAdmins returns admins of one organization, or all admins when orgID is empty.
func (q *Queries) ListAdmins(ctx context.Context, orgID string) ([]models.Admin, error) {
	if orgID == "" {
		return q.listAdmins(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY email`)
	}
	return q.listAdmins(ctx, `
		SELECT `+adminColumns+` FROM admins WHERE organization_id = $1 ORDER BY email
	`, orgID)
}

func (q *Queries) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

func (q *Queries) CountOrganizationAdmins(ctx context.Context, orgID string) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM admins WHERE organization_id = $1
	`, orgID).Scan(&n)
	return n, err
}

func (q *Queries) SetAdminOrganization(ctx context.Context, adminID, orgID string) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE admins SET organization_id = $2 WHERE id = $1
	`, adminID, orgID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (q *Queries) DeleteAdmin(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Event assignments

func (q *Queries) AssignEventAdmin(ctx context.Context, eventID, adminID string) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO event_admins (event_id, admin_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, admin_id) DO NOTHING
	`, eventID, adminID, now())
	return mapWriteErr(err)
}

func (q *Queries) UnassignEventAdmin(ctx context.Context, eventID, adminID string) error {
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM event_admins WHERE event_id = $1 AND admin_id = $2
	`, eventID, adminID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (q *Queries) ListEventAdmins(ctx context.Context, eventID string) ([]models.Admin, error) {
	return q.listAdmins(ctx, `
		SELECT a.id, a.user_id, a.email, a.organization_id, a.is_super, a.created_at
		FROM admins a
		JOIN event_admins ea ON ea.admin_id = a.id
		WHERE ea.event_id = $1
		ORDER BY a.email
	`, eventID)
}

func (q *Queries) CountEventAdmins(ctx context.Context, eventID string) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM event_admins WHERE event_id = $1
	`, eventID).Scan(&n)
	return n, err
}

// ListAssignedEventIDs returns the events an admin is assigned to.
func (q *Queries) ListAssignedEventIDs(ctx context.Context, adminID string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT event_id FROM event_admins WHERE admin_id = $1 ORDER BY event_id
	`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListSoleAssignedEventIDs returns events where adminID is the only assigned admin.
func (q *Queries) ListSoleAssignedEventIDs(ctx context.Context, adminID string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT ea.event_id
		FROM event_admins ea
		WHERE ea.admin_id = $1
		  AND (SELECT COUNT(*) FROM event_admins other WHERE other.event_id = ea.event_id) = 1
		ORDER BY ea.event_id
	`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
