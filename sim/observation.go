package sim

// Observation sentinels for episodes where no round has completed yet.
const (
	NoWinner     = -1
	NoWinningBid = -1.0
)

// AgentView is the observation handed to a single agent. It carries the
// viewing agent's own valuation plus the public outcome of the most
// recent round; other agents' valuations and individual bids are never
// included.
type AgentView struct {
	// AgentID is the index of the observing agent
	AgentID int `json:"agent_id"`

	// Valuation is the observing agent's own private valuation
	Valuation float64 `json:"valuation"`

	// LastWinner is the index of the most recent round's winner,
	// NoWinner before the first round completes
	LastWinner int `json:"last_winner"`

	// LastWinningBid is the most recent winning bid, NoWinningBid
	// before the first round completes
	LastWinningBid float64 `json:"last_winning_bid"`
}

// observe builds one view per agent. This is the only place private
// state crosses into agent-visible data, keeping the privacy boundary
// in a single spot.
func (a *Auction) observe(state *EpisodeState) []AgentView {
	views := make([]AgentView, a.cfg.NumAgents)
	for i := range views {
		views[i] = AgentView{
			AgentID:        i,
			Valuation:      state.Valuations[i],
			LastWinner:     state.LastWinner,
			LastWinningBid: state.LastWinningBid,
		}
	}
	return views
}
