// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/natemartinsf/auto-bean/models"
)

const beerColumns = `id, event_id, name, brewer, style, created_at`

func scanBeer(row rowScanner) (models.Beer, error) {
	var (
		b     models.Beer
		style sql.NullString
	)
	if err := row.Scan(&b.ID, &b.EventID, &b.Name, &b.Brewer, &style, &b.CreatedAt); err != nil {
		return models.Beer{}, err
	}
	b.Style = stringPtr(style)
	return b, nil
}

// AddBeer inserts a beer together with its brewer token.
func (s *Store) AddBeer(ctx context.Context, b models.Beer) (models.Beer, models.BrewerToken, error) {
	b.ID = NewID()
	b.CreatedAt = now()
	token := models.BrewerToken{ID: NewID(), BeerID: b.ID, CreatedAt: b.CreatedAt}

	err := s.WithTx(ctx, func(q *Queries) error {
		_, err := q.db.ExecContext(ctx, `
			INSERT INTO beers (id, event_id, name, brewer, style, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, b.ID, b.EventID, b.Name, b.Brewer, nullString(b.Style), b.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert beer: %w", mapWriteErr(err))
		}

		_, err = q.db.ExecContext(ctx, `
			INSERT INTO brewer_tokens (id, beer_id, created_at)
			VALUES ($1, $2, $3)
		`, token.ID, token.BeerID, token.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert brewer token: %w", mapWriteErr(err))
		}
		return nil
	})
	if err != nil {
		return models.Beer{}, models.BrewerToken{}, err
	}
	return b, token, nil
}

func (q *Queries) GetBeer(ctx context.Context, id string) (models.Beer, error) {
	b, err := scanBeer(q.db.QueryRowContext(ctx,
		`SELECT `+beerColumns+` FROM beers WHERE id = $1`, id))
	return b, mapReadErr(err)
}

func (q *Queries) ListBeers(ctx context.Context, eventID string) ([]models.Beer, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+beerColumns+` FROM beers WHERE event_id = $1 ORDER BY created_at, name, id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	beers := []models.Beer{}
	for rows.Next() {
		b, err := scanBeer(rows)
		if err != nil {
			return nil, err
		}
		beers = append(beers, b)
	}
	return beers, rows.Err()
}

// DeleteBeer removes a beer, its brewer token and the brewer's short code.
func (s *Store) DeleteBeer(ctx context.Context, beerID string) error {
	return s.WithTx(ctx, func(q *Queries) error {
		_, err := q.db.ExecContext(ctx, `
			DELETE FROM short_codes
			WHERE target_type = 'brewer'
			  AND target_id IN (SELECT id FROM brewer_tokens WHERE beer_id = $1)
		`, beerID)
		if err != nil {
			return fmt.Errorf("delete brewer short code: %w", err)
		}

		res, err := q.db.ExecContext(ctx, `DELETE FROM beers WHERE id = $1`, beerID)
		if err != nil {
			return fmt.Errorf("delete beer: %w", err)
		}
		return requireAffected(res)
	})
}

func (q *Queries) GetBrewerToken(ctx context.Context, id string) (models.BrewerToken, error) {
	var t models.BrewerToken
	err := q.db.QueryRowContext(ctx, `
		SELECT id, beer_id, created_at FROM brewer_tokens WHERE id = $1
	`, id).Scan(&t.ID, &t.BeerID, &t.CreatedAt)
	return t, mapReadErr(err)
}

func (q *Queries) GetBrewerTokenByBeer(ctx context.Context, beerID string) (models.BrewerToken, error) {
	var t models.BrewerToken
	err := q.db.QueryRowContext(ctx, `
		SELECT id, beer_id, created_at FROM brewer_tokens WHERE beer_id = $1
	`, beerID).Scan(&t.ID, &t.BeerID, &t.CreatedAt)
	return t, mapReadErr(err)
}

// ListBrewerCodes maps beer ID to the brewer short code for every beer in an event.
func (q *Queries) ListBrewerCodes(ctx context.Context, eventID string) (map[string]string, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT b.id, sc.code
		FROM short_codes sc
		JOIN brewer_tokens bt ON bt.id = sc.target_id
		JOIN beers b ON b.id = bt.beer_id
		WHERE sc.target_type = 'brewer' AND b.event_id = $1
		ORDER BY sc.created_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := map[string]string{}
	for rows.Next() {
		var beerID, code string
		if err := rows.Scan(&beerID, &code); err != nil {
			return nil, err
		}
		if _, ok := codes[beerID]; !ok {
			codes[beerID] = code
		}
	}
	return codes, rows.Err()
}
