// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"cmp"
	"slices"

	"github.com/natemartinsf/auto-bean/models"
)

// Result is the ranked output for one event.
type Result struct {
	Rankings []models.RankedBeer
	Stats    models.EventStats
}

// Tally ranks every beer by total points. Beers without votes appear with
// zero totals. Votes for beers not in the list are ignored.
//
// Ranks follow standard competition ranking: tied totals share a rank and
// the next distinct total takes its 1-based position, so [10,10,7] ranks
// as [1,1,3]. Within a tie, beers are ordered by name then ID.
func Tally(beers []models.Beer, votes []models.Vote) Result {
	type agg struct {
		total  int
		voters map[string]struct{}
	}

	byBeer := make(map[string]*agg, len(beers))
	for _, b := range beers {
		byBeer[b.ID] = &agg{voters: map[string]struct{}{}}
	}

	eventVoters := map[string]struct{}{}
	totalPoints := 0
	for _, v := range votes {
		a, ok := byBeer[v.BeerID]
		if !ok {
			continue
		}
		a.total += v.Points
		a.voters[v.VoterID] = struct{}{}
		eventVoters[v.VoterID] = struct{}{}
		totalPoints += v.Points
	}

	rankings := make([]models.RankedBeer, 0, len(beers))
	for _, b := range beers {
		a := byBeer[b.ID]
		rankings = append(rankings, models.RankedBeer{
			Beer:        b,
			TotalPoints: a.total,
			VoterCount:  len(a.voters),
		})
	}

	slices.SortStableFunc(rankings, func(x, y models.RankedBeer) int {
		return cmp.Or(
			cmp.Compare(y.TotalPoints, x.TotalPoints),
			cmp.Compare(x.Beer.Name, y.Beer.Name),
			cmp.Compare(x.Beer.ID, y.Beer.ID),
		)
	})

	for i := range rankings {
		if i > 0 && rankings[i].TotalPoints == rankings[i-1].TotalPoints {
			rankings[i].Rank = rankings[i-1].Rank
		} else {
			rankings[i].Rank = i + 1
		}
	}

	return Result{
		Rankings: rankings,
		Stats: models.EventStats{
			BeerCount:       len(beers),
			VoterCount:      len(eventVoters),
			TotalPointsCast: totalPoints,
		},
	}
}

// Disclose returns the part of the rankings visible at a reveal stage.
// Stage 0 shows nothing, stage 4 shows everything, and stages 1 to 3 hide
// every beer ranked within the top 3, 2 or 1 places respectively.
func Disclose(rankings []models.RankedBeer, stage int) []models.RankedBeer {
	switch {
	case stage <= 0:
		return []models.RankedBeer{}
	case stage >= models.MaxRevealStage:
		return slices.Clone(rankings)
	}

	hiddenTop := models.MaxRevealStage - stage
	visible := make([]models.RankedBeer, 0, len(rankings))
	for _, r := range rankings {
		if r.Rank > hiddenTop {
			visible = append(visible, r)
		}
	}
	return visible
}

// HideBrewers blanks brewer names, used for blind tastings before the final reveal.
func HideBrewers(rankings []models.RankedBeer) []models.RankedBeer {
	out := slices.Clone(rankings)
	for i := range out {
		out[i].Beer.Brewer = ""
	}
	return out
}
