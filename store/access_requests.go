// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"

	"github.com/natemartinsf/auto-bean/models"
)

func (q *Queries) CreateAccessRequest(ctx context.Context, r models.AccessRequest) (models.AccessRequest, error) {
	r.ID = NewID()
	r.CreatedAt = now()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO access_requests (id, name, email, club_name, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.ID, r.Name, r.Email, r.ClubName, nullString(r.Message), r.CreatedAt)
	if err != nil {
		return models.AccessRequest{}, mapWriteErr(err)
	}
	return r, nil
}

func (q *Queries) ListAccessRequests(ctx context.Context) ([]models.AccessRequest, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, email, club_name, message, created_at
		FROM access_requests ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []models.AccessRequest{}
	for rows.Next() {
		var (
			r       models.AccessRequest
			message sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.ClubName, &message, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Message = stringPtr(message)
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
