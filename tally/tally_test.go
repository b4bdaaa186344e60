// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natemartinsf/auto-bean/models"
)

func beer(id, name string) models.Beer {
	return models.Beer{ID: id, EventID: "e", Name: name, Brewer: name + " Brewing"}
}

func vote(voter, beerID string, points int) models.Vote {
	return models.Vote{ID: voter + "-" + beerID, VoterID: voter, BeerID: beerID, Points: points}
}

// votesFor spreads points across single-point votes from distinct voters.
func votesFor(beerID string, points int) []models.Vote {
	var votes []models.Vote
	for i := 0; i < points; i++ {
		votes = append(votes, vote(fmt.Sprintf("%s-v%d", beerID, i), beerID, 1))
	}
	return votes
}

func TestTally_CompetitionRanks(t *testing.T) {
	beers := []models.Beer{beer("a", "A"), beer("b", "B"), beer("c", "C"), beer("d", "D"), beer("e", "E")}
	var votes []models.Vote
	for id, pts := range map[string]int{"a": 10, "b": 10, "c": 7, "d": 7, "e": 3} {
		votes = append(votes, votesFor(id, pts)...)
	}

	res := Tally(beers, votes)

	got := map[string]int{}
	for _, r := range res.Rankings {
		got[r.Beer.Name] = r.Rank
	}
	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 3, "D": 3, "E": 5}, got)
}

func TestTally_ThreeWay(t *testing.T) {
	beers := []models.Beer{beer("x", "X"), beer("y", "Y"), beer("z", "Z")}
	votes := append(votesFor("x", 10), votesFor("y", 10)...)
	votes = append(votes, votesFor("z", 7)...)

	res := Tally(beers, votes)

	ranks := []int{}
	for _, r := range res.Rankings {
		ranks = append(ranks, r.Rank)
	}
	assert.Equal(t, []int{1, 1, 3}, ranks)
}

func TestTally_ZeroVoteBeersIncluded(t *testing.T) {
	beers := []models.Beer{beer("a", "Amber"), beer("b", "Bock")}
	votes := []models.Vote{vote("v1", "a", 3)}

	res := Tally(beers, votes)

	require.Len(t, res.Rankings, 2)
	last := res.Rankings[1]
	assert.Equal(t, "b", last.Beer.ID)
	assert.Equal(t, 0, last.TotalPoints)
	assert.Equal(t, 0, last.VoterCount)
	assert.Equal(t, 2, last.Rank)
}

func TestTally_NoVotesAllShareFirst(t *testing.T) {
	beers := []models.Beer{beer("b", "Bock"), beer("a", "Amber")}

	res := Tally(beers, nil)

	require.Len(t, res.Rankings, 2)
	assert.Equal(t, "Amber", res.Rankings[0].Beer.Name, "ties ordered by name")
	for _, r := range res.Rankings {
		assert.Equal(t, 1, r.Rank)
	}
	assert.Equal(t, models.EventStats{BeerCount: 2}, res.Stats)
}

func TestTally_Empty(t *testing.T) {
	res := Tally(nil, nil)
	assert.Empty(t, res.Rankings)
	assert.Equal(t, models.EventStats{}, res.Stats)
}

func TestTally_Stats(t *testing.T) {
	beers := []models.Beer{beer("a", "A"), beer("b", "B"), beer("c", "C")}
	votes := []models.Vote{
		vote("v1", "a", 3), vote("v1", "b", 2),
		vote("v2", "a", 5),
		vote("v3", "c", 0),
		vote("v4", "gone", 4), // beer no longer in event
	}

	res := Tally(beers, votes)

	assert.Equal(t, models.EventStats{BeerCount: 3, VoterCount: 3, TotalPointsCast: 10}, res.Stats)
	assert.Equal(t, 8, res.Rankings[0].TotalPoints)
	assert.Equal(t, 2, res.Rankings[0].VoterCount, "distinct voters per beer")
}

// For random inputs the maximum total ranks 1, equal totals share a rank,
// and each rank equals the 1-based position of the first beer in its tie group.
func TestTally_RankProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for iter := 0; iter < 200; iter++ {
		n := 1 + r.IntN(12)
		beers := make([]models.Beer, n)
		var votes []models.Vote
		for i := range beers {
			beers[i] = beer(fmt.Sprintf("b%02d", i), fmt.Sprintf("Beer %02d", i))
			votes = append(votes, votesFor(beers[i].ID, r.IntN(6))...)
		}

		res := Tally(beers, votes)
		ranks := res.Rankings

		require.Len(t, ranks, n)
		assert.Equal(t, 1, ranks[0].Rank)
		for i := 1; i < len(ranks); i++ {
			require.GreaterOrEqual(t, ranks[i-1].TotalPoints, ranks[i].TotalPoints)
			if ranks[i].TotalPoints == ranks[i-1].TotalPoints {
				assert.Equal(t, ranks[i-1].Rank, ranks[i].Rank)
			} else {
				assert.Equal(t, i+1, ranks[i].Rank)
			}
		}
	}
}

func TestDisclose(t *testing.T) {
	beers := []models.Beer{beer("a", "A"), beer("b", "B"), beer("c", "C"), beer("d", "D"), beer("e", "E")}
	var votes []models.Vote
	for id, pts := range map[string]int{"a": 9, "b": 7, "c": 5, "d": 3, "e": 1} {
		votes = append(votes, votesFor(id, pts)...)
	}
	rankings := Tally(beers, votes).Rankings

	names := func(rs []models.RankedBeer) []string {
		out := []string{}
		for _, r := range rs {
			out = append(out, r.Beer.Name)
		}
		return out
	}

	assert.Empty(t, Disclose(rankings, 0))
	assert.Equal(t, []string{"D", "E"}, names(Disclose(rankings, 1)))
	assert.Equal(t, []string{"C", "D", "E"}, names(Disclose(rankings, 2)))
	assert.Equal(t, []string{"B", "C", "D", "E"}, names(Disclose(rankings, 3)))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names(Disclose(rankings, 4)))
}

func TestDisclose_TiesStayTogether(t *testing.T) {
	beers := []models.Beer{beer("a", "A"), beer("b", "B"), beer("c", "C")}
	votes := append(votesFor("a", 5), votesFor("b", 5)...)
	votes = append(votes, votesFor("c", 1)...)
	rankings := Tally(beers, votes).Rankings

	// Stage 3 hides rank 1, which both A and B hold
	visible := Disclose(rankings, 3)
	require.Len(t, visible, 1)
	assert.Equal(t, "C", visible[0].Beer.Name)
}

func TestHideBrewers(t *testing.T) {
	rankings := Tally([]models.Beer{beer("a", "A")}, nil).Rankings
	hidden := HideBrewers(rankings)

	assert.Equal(t, "", hidden[0].Beer.Brewer)
	assert.Equal(t, "A Brewing", rankings[0].Beer.Brewer, "input must not be modified")
}
