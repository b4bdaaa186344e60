// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store wraps all SQL access.

Queries runs single statements against a DBTX (a *sql.DB or *sql.Tx).
Store embeds Queries over the pool and adds multi-statement operations
that run in one transaction:

	st := store.New(conn)
	beer, token, err := st.AddBeer(ctx, models.Beer{EventID: id, Name: "Pale", Brewer: "Ann"})

	err = st.WithTx(ctx, func(q *store.Queries) error {
		_, err := q.CreateVoter(ctx, eventID, voterID)
		return err
	})

Statements use $n placeholders and ON CONFLICT, which both PostgreSQL
and SQLite accept.

# Errors

  - ErrNotFound: no row, or a write matched zero rows
  - ErrAlreadyExists: unique constraint violation (either driver)
  - ErrVotingClosed: vote or feedback after the reveal ceremony started
  - ErrBudgetExceeded: vote would exceed the event's max_points
*/
package store
