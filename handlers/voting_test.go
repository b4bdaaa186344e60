// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/natemartinsf/auto-bean/models"
	"github.com/natemartinsf/auto-bean/scope"
	"github.com/natemartinsf/auto-bean/testutil"
)

func votePath(eventID, voterID string) map[string]string {
	return map[string]string{"eventID": eventID, "voterID": voterID}
}

func beerPath(eventID, voterID, beerID string) map[string]string {
	p := votePath(eventID, voterID)
	p["beerID"] = beerID
	return p
}

func TestGetBallot(t *testing.T) {
	env := newTestEnv(t, scope.ModelOrganization)
	h := NewVotingHandler(env.st, env.codes)
	org := testutil.CreateTestOrganization(t, env.db, "Club")
	event := testutil.CreateTestEvent(t, env.db, org.ID, "Fest")
	testutil.AddTestBeer(t, env.db, event.ID, "Pale")
	testutil.AddTestBeer(t, env.db, event.ID, "Stout")

	t.Run("first visit creates voter", func(t *testing.T) {
		voterID := uuid.NewString()
		w := record(h.GetBallot, request("GET", "/", nil, votePath(event.ID, voterID)))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.BallotResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Voter.ID != voterID || resp.Voter.EventID != event.ID {
			t.Errorf("Unexpected voter %+v", resp.Voter)
		}
		if len(resp.Beers) != 2 {
			t.Errorf("Expected 2 beers, got %d", len(resp.Beers))
		}
		if !resp.VotingOpen {
			t.Error("Expected voting to be open")
		}
		if len(resp.Votes) != 0 || len(resp.Feedback) != 0 {
			t.Error("Expected an empty ballot")
		}

		if _, err := env.st.GetVoter(context.Background(), voterID); err != nil {
			t.Errorf("Expected voter row to exist: %v", err)
		}
	})

	t.Run("uppercase UUID is canonicalized", func(t *testing.T) {
		voterID := uuid.NewString()
		w := record(h.GetBallot, request("GET", "/", nil, votePath(event.ID, strings.ToUpper(voterID))))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.BallotResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Voter.ID != voterID {
			t.Errorf("Expected voter %s, got %s", voterID, resp.Voter.ID)
		}
	})

	testCases := []struct {
		name    string
		eventID string
		voterID string
	}{
		{"malformed voter", event.ID, "not-a-uuid"},
		{"malformed event", "nope", uuid.NewString()},
		{"unknown event", uuid.NewString(), uuid.NewString()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := record(h.GetBallot, request("GET", "/", nil, votePath(tc.eventID, tc.voterID)))
			testutil.AssertStatus(t, w, http.StatusNotFound)
		})
	}

	t.Run("voter bound to another event", func(t *testing.T) {
		other := testutil.CreateTestEvent(t, env.db, org.ID, "Other")
		voterID := testutil.CreateTestVoter(t, env.db, other.ID)
		w := record(h.GetBallot, request("GET", "/", nil, votePath(event.ID, voterID)))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestGetBallot_BlindTasting(t *testing.T) {
	env := newTestEnv(t, scope.ModelOrganization)
	h := NewVotingHandler(env.st, env.codes)
	org := testutil.CreateTestOrganization(t, env.db, "Club")
	event := testutil.CreateTestEvent(t, env.db, org.ID, "Fest")
	testutil.AddTestBeer(t, env.db, event.ID, "Pale")
	if err := env.st.SetBlindTasting(context.Background(), event.ID, true); err != nil {
		t.Fatal(err)
	}

	w := record(h.GetBallot, request("GET", "/", nil, votePath(event.ID, uuid.NewString())))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.BallotResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Beers) != 1 || resp.Beers[0].Brewer != "" {
		t.Errorf("Expected brewer hidden, got %+v", resp.Beers)
	}
}

func TestCastVote(t *testing.T) {
	env := newTestEnv(t, scope.ModelOrganization)
	h := NewVotingHandler(env.st, env.codes)
	org := testutil.CreateTestOrganization(t, env.db, "Club")
	event := testutil.CreateTestEvent(t, env.db, org.ID, "Fest")
	pale := testutil.AddTestBeer(t, env.db, event.ID, "Pale")
	stout := testutil.AddTestBeer(t, env.db, event.ID, "Stout")
	voterID := uuid.NewString()

	cast := func(beerID string, points int) *http.Request {
		return request("PUT", "/", models.CastVoteRequest{Points: intPtr(points)}, beerPath(event.ID, voterID, beerID))
	}

	t.Run("first vote creates voter", func(t *testing.T) {
		w := record(h.CastVote, cast(pale.ID, 3))
		testutil.AssertStatus(t, w, http.StatusOK)

		var vote models.Vote
		testutil.AssertJSON(t, w, &vote)
		if vote.Points != 3 || vote.BeerID != pale.ID || vote.VoterID != voterID {
			t.Errorf("Unexpected vote %+v", vote)
		}
	})

	t.Run("over budget", func(t *testing.T) {
		w := record(h.CastVote, cast(stout.ID, 3))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("changing a vote frees its points", func(t *testing.T) {
		w := record(h.CastVote, cast(pale.ID, 1))
		testutil.AssertStatus(t, w, http.StatusOK)
		w = record(h.CastVote, cast(stout.ID, 4))
		testutil.AssertStatus(t, w, http.StatusOK)

		votes, err := env.st.ListVotesByVoter(context.Background(), voterID)
		if err != nil {
			t.Fatal(err)
		}
		total := 0
		for _, v := range votes {
			total += v.Points
		}
		if len(votes) != 2 || total != 5 {
			t.Errorf("Expected 2 votes totalling 5, got %d totalling %d", len(votes), total)
		}
	})

	t.Run("missing points", func(t *testing.T) {
		req := request("PUT", "/", map[string]string{}, beerPath(event.ID, voterID, pale.ID))
		w := record(h.CastVote, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("negative points", func(t *testing.T) {
		w := record(h.CastVote, cast(pale.ID, -1))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("beer from another event", func(t *testing.T) {
		other := testutil.CreateTestEvent(t, env.db, org.ID, "Other")
		foreign := testutil.AddTestBeer(t, env.db, other.ID, "Foreign")
		w := record(h.CastVote, cast(foreign.ID, 1))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("voting closed", func(t *testing.T) {
		testutil.SetTestRevealStage(t, env.db, event.ID, 1)
		w := record(h.CastVote, cast(pale.ID, 0))
		testutil.AssertStatus(t, w, http.StatusConflict)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "voting is closed" {
			t.Errorf("Expected voting closed message, got %q", resp.Message)
		}
	})
}

func TestSaveFeedback(t *testing.T) {
	env := newTestEnv(t, scope.ModelOrganization)
	h := NewVotingHandler(env.st, env.codes)
	org := testutil.CreateTestOrganization(t, env.db, "Club")
	event := testutil.CreateTestEvent(t, env.db, org.ID, "Fest")
	beer := testutil.AddTestBeer(t, env.db, event.ID, "Pale")
	voterID := uuid.NewString()

	save := func(notes string, share bool) *http.Request {
		body := models.FeedbackRequest{Notes: notes, ShareWithBrewer: share}
		return request("PUT", "/", body, beerPath(event.ID, voterID, beer.ID))
	}

	w := record(h.SaveFeedback, save("Too bitter", false))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Saving again replaces the note
	w = record(h.SaveFeedback, save("Grew on me", true))
	testutil.AssertStatus(t, w, http.StatusOK)

	feedback, err := env.st.ListFeedbackByVoter(context.Background(), voterID)
	if err != nil {
		t.Fatal(err)
	}
	if len(feedback) != 1 || feedback[0].Notes != "Grew on me" || !feedback[0].ShareWithBrewer {
		t.Errorf("Unexpected feedback %+v", feedback)
	}

	t.Run("too long", func(t *testing.T) {
		w := record(h.SaveFeedback, save(strings.Repeat("a", models.MaxFeedbackLength+1), false))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		w := record(h.SaveFeedback, save(strings.Repeat("a", models.MaxFeedbackLength), false))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("voter never seen", func(t *testing.T) {
		req := request("PUT", "/", models.FeedbackRequest{Notes: "hi"}, beerPath(event.ID, uuid.NewString(), beer.ID))
		w := record(h.SaveFeedback, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	})
}

func TestResolveVoterCode(t *testing.T) {
	env := newTestEnv(t, scope.ModelOrganization)
	h := NewVotingHandler(env.st, env.codes)
	org := testutil.CreateTestOrganization(t, env.db, "Club")
	event := testutil.CreateTestEvent(t, env.db, org.ID, "Fest")
	voterID := testutil.CreateTestVoter(t, env.db, event.ID)
	code := env.reserve(t, models.TargetVoter, voterID)

	w := record(h.ResolveVoterCode, request("GET", "/v/"+code, nil, map[string]string{"code": code}))
	testutil.AssertStatus(t, w, http.StatusFound)
	if loc := w.Header().Get("Location"); loc != "/vote/"+event.ID+"/"+voterID {
		t.Errorf("Unexpected redirect %s", loc)
	}

	// Codes are case-insensitive
	w = record(h.ResolveVoterCode, request("GET", "/", nil, map[string]string{"code": strings.ToUpper(code)}))
	testutil.AssertStatus(t, w, http.StatusFound)

	// An event code is not a voter code
	eventCode := env.reserve(t, models.TargetEvent, event.ID)
	w = record(h.ResolveVoterCode, request("GET", "/", nil, map[string]string{"code": eventCode}))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = record(h.ResolveVoterCode, request("GET", "/", nil, map[string]string{"code": "zzzzzzzz"}))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
