package core

// RoundOutcome contains the complete resolution of a single auction round.
type RoundOutcome struct {
	// Winner is the index of the highest bidder (lowest index on ties)
	Winner int `json:"winner"`

	// WinningBid is the bid submitted by the winner
	WinningBid float64 `json:"winning_bid"`

	// RunnerUp is the index of the second-ranked bidder (-1 when only one agent bids)
	RunnerUp int `json:"runner_up"`

	// Rewards holds one entry per agent: valuation minus bid for the
	// winner, zero for everyone else
	Rewards []float64 `json:"rewards"`
}
