package sim

import (
	"fmt"
	"io"

	"github.com/cloudx-io/auctiongym/core"
)

// Render writes a human-readable dump of the episode to w: round index,
// per-agent valuations, the supplied bids with winner and winning bid
// (pass nil before any bids exist), and cumulative utilities.
// Presentational only, no part of the step contract depends on it.
func (a *Auction) Render(w io.Writer, state *EpisodeState, bids []float64) {
	fmt.Fprintf(w, "\n=== Auction Round %d ===\n", state.Round)

	fmt.Fprintln(w, "Agent Valuations:")
	for i, v := range state.Valuations {
		fmt.Fprintf(w, "  Agent %d: Valuation = %.2f\n", i, v)
	}

	if bids == nil {
		fmt.Fprintln(w, "\nNo bids have been submitted yet.")
		fmt.Fprintln(w, "========================")
		return
	}

	fmt.Fprintln(w, "\nAgents' Bids:")
	for i, b := range bids {
		fmt.Fprintf(w, "  Agent %d: Bid = %.2f\n", i, b)
	}

	winner, winningBid := core.SelectWinner(bids)
	fmt.Fprintf(w, "\nWinning Agent: Agent %d with a bid of %.2f\n", winner, winningBid)

	fmt.Fprintln(w, "\nCumulative Utilities:")
	for i, u := range state.CumulativeUtility {
		fmt.Fprintf(w, "  Agent %d: Cumulative Utility = %.2f\n", i, u)
	}
	fmt.Fprintln(w, "========================")
}
