// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/natemartinsf/auto-bean/models"
)

// InsertShortCode persists a code. A taken code yields ErrAlreadyExists.
func (q *Queries) InsertShortCode(ctx context.Context, sc models.ShortCode) (models.ShortCode, error) {
	sc.CreatedAt = now()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO short_codes (code, target_type, target_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, sc.Code, string(sc.TargetType), sc.TargetID, sc.CreatedAt)
	if err != nil {
		return models.ShortCode{}, mapWriteErr(err)
	}
	return sc, nil
}

// ShortCodeExists checks a code against every target type.
func (q *Queries) ShortCodeExists(ctx context.Context, code string) (bool, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM short_codes WHERE code = $1
	`, code).Scan(&n)
	return n > 0, err
}

// LookupShortCode returns the target ID for a (code, type) pair.
func (q *Queries) LookupShortCode(ctx context.Context, code string, targetType models.TargetType) (string, error) {
	var id string
	err := q.db.QueryRowContext(ctx, `
		SELECT target_id FROM short_codes WHERE code = $1 AND target_type = $2
	`, code, string(targetType)).Scan(&id)
	return id, mapReadErr(err)
}

// ShortCodeFor returns the oldest code minted for a target.
func (q *Queries) ShortCodeFor(ctx context.Context, targetType models.TargetType, targetID string) (string, error) {
	var code string
	err := q.db.QueryRowContext(ctx, `
		SELECT code FROM short_codes
		WHERE target_type = $1 AND target_id = $2
		ORDER BY created_at, code
		LIMIT 1
	`, string(targetType), targetID).Scan(&code)
	return code, mapReadErr(err)
}
