// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/natemartinsf/auto-bean/models"
)

var (
	// ErrVotingClosed is returned when the reveal ceremony has started.
	ErrVotingClosed = errors.New("voting is closed")
	// ErrBudgetExceeded is returned when a vote would push a voter past max_points.
	ErrBudgetExceeded = errors.New("point budget exceeded")
)

func (q *Queries) GetVoter(ctx context.Context, id string) (models.Voter, error) {
	var v models.Voter
	err := q.db.QueryRowContext(ctx, `
		SELECT id, event_id, created_at FROM voters WHERE id = $1
	`, id).Scan(&v.ID, &v.EventID, &v.CreatedAt)
	return v, mapReadErr(err)
}

// CreateVoter inserts a provisioned voter. Fails with ErrAlreadyExists if the ID is taken.
func (q *Queries) CreateVoter(ctx context.Context, eventID, voterID string) (models.Voter, error) {
	v := models.Voter{ID: voterID, EventID: eventID, CreatedAt: now()}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO voters (id, event_id, created_at, last_seen_at)
		VALUES ($1, $2, $3, $3)
	`, v.ID, v.EventID, v.CreatedAt)
	if err != nil {
		return models.Voter{}, mapWriteErr(err)
	}
	return v, nil
}

// EnsureVoter returns the voter row for voterID, creating it on first visit.
// Concurrent first visits all observe the same row. A voter ID already bound
// to another event yields ErrNotFound.
func (q *Queries) EnsureVoter(ctx context.Context, eventID, voterID string) (models.Voter, error) {
	for attempt := 0; attempt < 2; attempt++ {
		_, err := q.db.ExecContext(ctx, `
			INSERT INTO voters (id, event_id, created_at, last_seen_at)
			VALUES ($1, $2, $3, $3)
			ON CONFLICT (id) DO NOTHING
		`, voterID, eventID, now())
		if err != nil {
			return models.Voter{}, fmt.Errorf("upsert voter: %w", err)
		}

		v, err := q.GetVoter(ctx, voterID)
		if errors.Is(err, ErrNotFound) {
			// Deleted between insert and select; retry once.
			continue
		}
		if err != nil {
			return models.Voter{}, err
		}
		if v.EventID != eventID {
			return models.Voter{}, ErrNotFound
		}
		return v, nil
	}
	return models.Voter{}, ErrNotFound
}

func (q *Queries) listVotes(ctx context.Context, query string, args ...any) ([]models.Vote, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.VoterID, &v.BeerID, &v.Points, &v.UpdatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// ListVotesByEvent returns every vote cast in an event.
func (q *Queries) ListVotesByEvent(ctx context.Context, eventID string) ([]models.Vote, error) {
	return q.listVotes(ctx, `
		SELECT v.id, v.voter_id, v.beer_id, v.points, v.updated_at
		FROM votes v
		JOIN beers b ON b.id = v.beer_id
		WHERE b.event_id = $1
		ORDER BY v.updated_at, v.id
	`, eventID)
}

func (q *Queries) ListVotesByVoter(ctx context.Context, voterID string) ([]models.Vote, error) {
	return q.listVotes(ctx, `
		SELECT id, voter_id, beer_id, points, updated_at
		FROM votes WHERE voter_id = $1
		ORDER BY updated_at, id
	`, voterID)
}

// CastVote sets a voter's points for one beer. The voter row is updated
// first so concurrent votes by the same voter serialize on it and the
// budget check sees committed totals.
func (s *Store) CastVote(ctx context.Context, eventID, voterID, beerID string, points int) (models.Vote, error) {
	vote := models.Vote{VoterID: voterID, BeerID: beerID, Points: points, UpdatedAt: now()}

	err := s.WithTx(ctx, func(q *Queries) error {
		res, err := q.db.ExecContext(ctx, `
			UPDATE voters SET last_seen_at = $3 WHERE id = $1 AND event_id = $2
		`, voterID, eventID, vote.UpdatedAt)
		if err != nil {
			return fmt.Errorf("touch voter: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}

		event, err := q.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if event.RevealStage > 0 {
			return ErrVotingClosed
		}

		beer, err := q.GetBeer(ctx, beerID)
		if err != nil {
			return err
		}
		if beer.EventID != eventID {
			return ErrNotFound
		}

		var spentElsewhere int
		err = q.db.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(points), 0) FROM votes WHERE voter_id = $1 AND beer_id <> $2
		`, voterID, beerID).Scan(&spentElsewhere)
		if err != nil {
			return fmt.Errorf("sum votes: %w", err)
		}
		if points > event.MaxPoints || spentElsewhere+points > event.MaxPoints {
			return fmt.Errorf("%w: %d already spent of %d", ErrBudgetExceeded, spentElsewhere, event.MaxPoints)
		}

		return q.db.QueryRowContext(ctx, `
			INSERT INTO votes (id, voter_id, beer_id, points, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (voter_id, beer_id) DO UPDATE
				SET points = excluded.points, updated_at = excluded.updated_at
			RETURNING id
		`, NewID(), voterID, beerID, points, vote.UpdatedAt).Scan(&vote.ID)
	})
	if err != nil {
		return models.Vote{}, err
	}
	return vote, nil
}

// Feedback

// SaveFeedback upserts a voter's note for a beer.
func (s *Store) SaveFeedback(ctx context.Context, eventID string, f models.Feedback) (models.Feedback, error) {
	f.CreatedAt = now()

	err := s.WithTx(ctx, func(q *Queries) error {
		event, err := q.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if event.RevealStage > 0 {
			return ErrVotingClosed
		}

		voter, err := q.GetVoter(ctx, f.VoterID)
		if err != nil {
			return err
		}
		beer, err := q.GetBeer(ctx, f.BeerID)
		if err != nil {
			return err
		}
		if voter.EventID != eventID || beer.EventID != eventID {
			return ErrNotFound
		}

		return q.db.QueryRowContext(ctx, `
			INSERT INTO feedback (id, voter_id, beer_id, notes, share_with_brewer, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (voter_id, beer_id) DO UPDATE
				SET notes = excluded.notes, share_with_brewer = excluded.share_with_brewer
			RETURNING id
		`, NewID(), f.VoterID, f.BeerID, f.Notes, f.ShareWithBrewer, f.CreatedAt).Scan(&f.ID)
	})
	if err != nil {
		return models.Feedback{}, err
	}
	return f, nil
}

func (q *Queries) listFeedback(ctx context.Context, query string, args ...any) ([]models.Feedback, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedback := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.VoterID, &f.BeerID, &f.Notes, &f.ShareWithBrewer, &f.CreatedAt); err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

func (q *Queries) ListFeedbackByVoter(ctx context.Context, voterID string) ([]models.Feedback, error) {
	return q.listFeedback(ctx, `
		SELECT id, voter_id, beer_id, notes, share_with_brewer, created_at
		FROM feedback WHERE voter_id = $1
		ORDER BY created_at, id
	`, voterID)
}

// ListSharedFeedback returns only the notes voters chose to share with the brewer.
func (q *Queries) ListSharedFeedback(ctx context.Context, beerID string) ([]models.Feedback, error) {
	return q.listFeedback(ctx, `
		SELECT id, voter_id, beer_id, notes, share_with_brewer, created_at
		FROM feedback WHERE beer_id = $1 AND share_with_brewer = $2 AND notes <> ''
		ORDER BY created_at, id
	`, beerID, true)
}
