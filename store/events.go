// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/natemartinsf/auto-bean/models"
)

const eventColumns = `id, organization_id, name, date, max_points, blind_tasting, reveal_stage, created_by, created_at`

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		e         models.Event
		date      sql.NullString
		createdBy sql.NullString
	)
	err := row.Scan(&e.ID, &e.OrganizationID, &e.Name, &date, &e.MaxPoints,
		&e.BlindTasting, &e.RevealStage, &createdBy, &e.CreatedAt)
	if err != nil {
		return models.Event{}, err
	}
	e.Date = stringPtr(date)
	e.CreatedBy = stringPtr(createdBy)
	return e, nil
}

func (q *Queries) listEvents(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (q *Queries) CreateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.MaxPoints == 0 {
		e.MaxPoints = models.DefaultMaxPoints
	}
	e.RevealStage = 0
	e.CreatedAt = now()

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO events (id, organization_id, name, date, max_points, blind_tasting, reveal_stage, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.OrganizationID, e.Name, nullString(e.Date), e.MaxPoints,
		e.BlindTasting, e.RevealStage, nullString(e.CreatedBy), e.CreatedAt)
	if err != nil {
		return models.Event{}, mapWriteErr(err)
	}
	return e, nil
}

func (q *Queries) GetEvent(ctx context.Context, id string) (models.Event, error) {
	e, err := scanEvent(q.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	return e, mapReadErr(err)
}

func (q *Queries) ListAllEvents(ctx context.Context) ([]models.Event, error) {
	return q.listEvents(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id`)
}

func (q *Queries) ListEventsByOrganization(ctx context.Context, orgID string) ([]models.Event, error) {
	return q.listEvents(ctx, `
		SELECT `+eventColumns+` FROM events WHERE organization_id = $1 ORDER BY created_at DESC, id
	`, orgID)
}

func (q *Queries) ListEventsByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	if len(ids) == 0 {
		return []models.Event{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return q.listEvents(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id IN (`+placeholders(1, len(ids))+`) ORDER BY created_at DESC, id
	`, args...)
}

func (q *Queries) SetBlindTasting(ctx context.Context, eventID string, enabled bool) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE events SET blind_tasting = $2 WHERE id = $1
	`, eventID, enabled)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// AdvanceRevealStage increments reveal_stage when it is below max.
// ok is false when no row was updated, either because the event is
// missing or because the stage is already at max.
func (q *Queries) AdvanceRevealStage(ctx context.Context, eventID string, max int) (stage int, ok bool, err error) {
	err = q.db.QueryRowContext(ctx, `
		UPDATE events SET reveal_stage = reveal_stage + 1
		WHERE id = $1 AND reveal_stage < $2
		RETURNING reveal_stage
	`, eventID, max).Scan(&stage)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return stage, true, nil
}

func (q *Queries) ResetRevealStage(ctx context.Context, eventID string) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE events SET reveal_stage = 0 WHERE id = $1
	`, eventID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// deleteEventShortCodes removes every code pointing at the event, its
// voters, or its beers' brewer tokens.
func (q *Queries) deleteEventShortCodes(ctx context.Context, eventID string) error {
	_, err := q.db.ExecContext(ctx, `
		DELETE FROM short_codes
		WHERE (target_type IN ('event', 'manage') AND target_id = $1)
		   OR (target_type = 'voter' AND target_id IN (SELECT id FROM voters WHERE event_id = $1))
		   OR (target_type = 'brewer' AND target_id IN (
				SELECT bt.id FROM brewer_tokens bt JOIN beers b ON b.id = bt.beer_id WHERE b.event_id = $1))
	`, eventID)
	return err
}

// DeleteEvent removes an event, cascading to beers, voters, votes,
// feedback, brewer tokens, assignments and all short codes.
func (s *Store) DeleteEvent(ctx context.Context, eventID string) error {
	return s.WithTx(ctx, func(q *Queries) error {
		if err := q.deleteEventShortCodes(ctx, eventID); err != nil {
			return fmt.Errorf("delete event short codes: %w", err)
		}
		res, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return requireAffected(res)
	})
}

// LockEvent takes a row lock on the event for the rest of the transaction.
func (q *Queries) LockEvent(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `UPDATE events SET reveal_stage = reveal_stage WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
