// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/scope"
	"github.com/natemartinsf/auto-bean/testutil"
)

// TestConcurrentFirstVisit verifies that simultaneous first visits with the
// same voter UUID create exactly one voter and all see the same row
func TestConcurrentFirstVisit(t *testing.T) {
	env := newTestEnv(t, scope.ModelOrganization)
	h := NewVotingHandler(env.st, env.codes)
	org := testutil.CreateTestOrganization(t, env.db, "Club")
	event := testutil.CreateTestEvent(t, env.db, org.ID, "Fest")
	testutil.AddTestBeer(t, env.db, event.ID, "Pale")

	voterID := uuid.NewString()
	numRequests := 10

	var wg sync.WaitGroup
	voters := make([]models.Voter, numRequests)
	statuses := make([]int, numRequests)

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			w := record(h.GetBallot, request("GET", "/", nil, votePath(event.ID, voterID)))
			statuses[idx] = w.Code
			if w.Code == http.StatusOK {
				var resp models.BallotResponse
				if err := decodeRecorded(w, &resp); err == nil {
					voters[idx] = resp.Voter
				}
			}
		}(i)
	}

	wg.Wait()

	for i, status := range statuses {
		if status != http.StatusOK {
			t.Fatalf("Request %d returned %d", i, status)
		}
		if voters[i].ID != voterID || voters[i].EventID != event.ID || !voters[i].CreatedAt.Equal(voters[0].CreatedAt) {
			t.Errorf("Request %d saw voter %+v, expected %+v", i, voters[i], voters[0])
		}
	}

	var count int
	if err := env.db.QueryRow(`SELECT COUNT(*) FROM voters WHERE id = $1`, voterID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 voter row, got %d", count)
	}
}

// TestConcurrentVotes verifies that many voters voting at once are all
// counted and the tally matches
func TestConcurrentVotes(t *testing.T) {
	env := newTestEnv(t, scope.ModelOrganization)
	h := NewVotingHandler(env.st, env.codes)
	org := testutil.CreateTestOrganization(t, env.db, "Club")
	event := testutil.CreateTestEvent(t, env.db, org.ID, "Fest")
	pale := testutil.AddTestBeer(t, env.db, event.ID, "Pale")
	stout := testutil.AddTestBeer(t, env.db, event.ID, "Stout")

	numVoters := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			voterID := uuid.NewString()
			ok := true
			for beerID, points := range map[string]int{pale.ID: 3, stout.ID: 2} {
				body := models.CastVoteRequest{Points: intPtr(points)}
				w := record(h.CastVote, request("PUT", "/", body, beerPath(event.ID, voterID, beerID)))
				if w.Code != http.StatusOK {
					ok = false
				}
			}
			if ok {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d voters to succeed, got %d", numVoters, successCount.Load())
	}

	votes, err := env.st.ListVotesByEvent(context.Background(), event.ID)
	if err != nil {
		t.Fatal(err)
	}
	totals := map[string]int{}
	for _, v := range votes {
		totals[v.BeerID] += v.Points
	}
	if totals[pale.ID] != 3*numVoters || totals[stout.ID] != 2*numVoters {
		t.Errorf("Unexpected totals %v", totals)
	}
}

// TestConcurrentVotesSameVoter verifies the point budget holds when one
// voter spends it from several requests at once
func TestConcurrentVotesSameVoter(t *testing.T) {
	env := newTestEnv(t, scope.ModelOrganization)
	h := NewVotingHandler(env.st, env.codes)
	org := testutil.CreateTestOrganization(t, env.db, "Club")
	event := testutil.CreateTestEvent(t, env.db, org.ID, "Fest")

	var beers []models.Beer
	for _, name := range []string{"A", "B", "C", "D"} {
		beers = append(beers, testutil.AddTestBeer(t, env.db, event.ID, name))
	}

	voterID := uuid.NewString()
	var wg sync.WaitGroup
	for _, beer := range beers {
		wg.Add(1)
		go func(beerID string) {
			defer wg.Done()
			body := models.CastVoteRequest{Points: intPtr(2)}
			record(h.CastVote, request("PUT", "/", body, beerPath(event.ID, voterID, beerID)))
		}(beer.ID)
	}
	wg.Wait()

	votes, err := env.st.ListVotesByVoter(context.Background(), voterID)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, v := range votes {
		total += v.Points
	}
	if total > event.MaxPoints {
		t.Errorf("Voter spent %d points, budget is %d", total, event.MaxPoints)
	}
	if len(votes) != 2 {
		t.Errorf("Expected exactly 2 votes to fit the budget, got %d", len(votes))
	}
}
