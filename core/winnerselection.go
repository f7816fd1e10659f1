package core

import (
	"fmt"
	"sort"
)

// SelectWinner returns the index of the highest bid and the bid itself.
// Ties are broken deterministically in favor of the lowest agent index:
// the scan keeps the first index attaining the maximum, never a random
// or last-index choice.
// Panics if bids is empty (programmer error, callers validate shape first).
func SelectWinner(bids []float64) (winner int, winningBid float64) {
	if len(bids) == 0 {
		panic("core.SelectWinner: empty bid vector")
	}

	winner = 0
	winningBid = bids[0]
	for i := 1; i < len(bids); i++ {
		if bids[i] > winningBid {
			winner = i
			winningBid = bids[i]
		}
	}
	return winner, winningBid
}

// RankBids returns agent indices sorted by bid, highest first. Agents
// with equal bids keep index order, so RankBids[0] always agrees with
// SelectWinner.
func RankBids(bids []float64) []int {
	ranked := make([]int, len(bids))
	for i := range ranked {
		ranked[i] = i
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return bids[ranked[i]] > bids[ranked[j]]
	})

	return ranked
}

// ResolveRound applies the winner-take-all rule to one round of bids:
// the highest bid wins and the winner is credited valuation minus bid.
// An overbidding winner receives a negative reward; it is not clamped.
// All other agents receive zero.
// Panics if the two vectors differ in length (callers validate shape first).
func ResolveRound(valuations, bids []float64) *RoundOutcome {
	if len(valuations) != len(bids) {
		panic(fmt.Sprintf("core.ResolveRound: %d valuations vs %d bids", len(valuations), len(bids)))
	}

	winner, winningBid := SelectWinner(bids)

	runnerUp := -1
	if ranked := RankBids(bids); len(ranked) > 1 {
		runnerUp = ranked[1]
	}

	rewards := make([]float64, len(bids))
	rewards[winner] = WinnerReward(valuations[winner], bids[winner])

	return &RoundOutcome{
		Winner:     winner,
		WinningBid: winningBid,
		RunnerUp:   runnerUp,
		Rewards:    rewards,
	}
}
