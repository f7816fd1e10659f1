// Package sim implements a sequential sealed-bid auction environment
// with a reset/step interface. Each of N agents holds a private
// valuation sampled once per episode; every round all agents bid
// simultaneously, the highest bid wins (ties to the lowest index), and
// the winner is credited valuation minus bid.
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cloudx-io/auctiongym/core"
)

// Config fixes the shape of every episode produced by an Auction.
type Config struct {
	// NumAgents is the number of bidders, must be positive
	NumAgents int

	// NumRounds is the number of auction rounds per episode, must be positive
	NumRounds int

	// MaxValuation is the exclusive upper bound for sampled private
	// valuations, must be positive
	MaxValuation float64
}

// Auction is a sequential sealed-bid auction environment. It carries no
// per-episode state: every Reset returns an independent EpisodeState
// owned by the caller, so distinct episodes never share mutable data.
type Auction struct {
	cfg Config
}

// EpisodeState is the mutable state of one episode. It is created by
// Reset, advanced by Step, and discarded when the episode terminates.
//
// All fields are exported for rendering, transcripts, and validation;
// valuation privacy is enforced only where observations are built.
// Valuations is fixed after Reset and must not be modified.
type EpisodeState struct {
	// Valuations holds each agent's private valuation, fixed for the episode
	Valuations []float64

	// Round counts completed rounds, 0 after Reset
	Round int

	// CumulativeUtility accumulates each agent's realized rewards
	CumulativeUtility []float64

	// LastBids is a copy of the most recent round's bids, nil before round 1
	LastBids []float64

	// LastWinner is the most recent round's winner, -1 before round 1
	LastWinner int

	// LastWinningBid is the most recent winning bid, -1 before round 1
	LastWinningBid float64
}

// New validates the configuration and returns an Auction environment.
func New(cfg Config) (*Auction, error) {
	if cfg.NumAgents <= 0 {
		return nil, &ConfigError{Field: "NumAgents", Value: cfg.NumAgents}
	}
	if cfg.NumRounds <= 0 {
		return nil, &ConfigError{Field: "NumRounds", Value: cfg.NumRounds}
	}
	if cfg.MaxValuation <= 0 {
		return nil, &ConfigError{Field: "MaxValuation", Value: cfg.MaxValuation}
	}
	return &Auction{cfg: cfg}, nil
}

// Config returns the environment configuration.
func (a *Auction) Config() Config {
	return a.cfg
}

// Reset starts a fresh episode. Valuations are drawn independently and
// uniformly from [0, MaxValuation) using a generator seeded with seed,
// so the same seed always reproduces identical valuations.
func (a *Auction) Reset(seed int64) (*EpisodeState, []AgentView) {
	rng := rand.New(rand.NewSource(seed))

	valuations := make([]float64, a.cfg.NumAgents)
	for i := range valuations {
		valuations[i] = rng.Float64() * a.cfg.MaxValuation
	}

	state := a.newEpisode(valuations)
	return state, a.observe(state)
}

// ResetWith starts an episode with caller-chosen valuations instead of
// sampled ones, for scripted replays and reference traces. The vector
// length must equal NumAgents and every entry must lie in
// [0, MaxValuation).
func (a *Auction) ResetWith(valuations []float64) (*EpisodeState, []AgentView, error) {
	if len(valuations) != a.cfg.NumAgents {
		return nil, nil, fmt.Errorf("reset: got %d valuations for %d agents", len(valuations), a.cfg.NumAgents)
	}
	for i, v := range valuations {
		if math.IsNaN(v) || v < 0 || v >= a.cfg.MaxValuation {
			return nil, nil, fmt.Errorf("reset: valuation %v for agent %d outside [0, %v)", v, i, a.cfg.MaxValuation)
		}
	}

	owned := make([]float64, len(valuations))
	copy(owned, valuations)

	state := a.newEpisode(owned)
	return state, a.observe(state), nil
}

func (a *Auction) newEpisode(valuations []float64) *EpisodeState {
	return &EpisodeState{
		Valuations:        valuations,
		Round:             0,
		CumulativeUtility: make([]float64, a.cfg.NumAgents),
		LastBids:          nil,
		LastWinner:        NoWinner,
		LastWinningBid:    NoWinningBid,
	}
}

// Step plays one auction round. The highest bid wins, ties going to the
// lowest agent index; the winner is credited valuation minus bid (which
// may be negative when overbidding) and everyone else receives zero.
//
// done is true once the configured round count is reached; stepping a
// finished episode fails with ErrEpisodeExhausted. Any error leaves
// state untouched.
func (a *Auction) Step(state *EpisodeState, bids []float64) (rewards []float64, done bool, obs []AgentView, err error) {
	if state.Round >= a.cfg.NumRounds {
		return nil, true, nil, ErrEpisodeExhausted
	}
	if len(bids) != a.cfg.NumAgents {
		return nil, false, nil, &BidShapeError{Want: a.cfg.NumAgents, Got: len(bids)}
	}
	for i, b := range bids {
		if math.IsNaN(b) || math.IsInf(b, 0) || b < 0 {
			return nil, false, nil, &InvalidBidError{Agent: i, Bid: b}
		}
	}

	outcome := core.ResolveRound(state.Valuations, bids)

	for i, reward := range outcome.Rewards {
		state.CumulativeUtility[i] = core.AccumulateUtility(state.CumulativeUtility[i], reward)
	}

	// Copy the bids so later caller mutations cannot rewrite history
	state.LastBids = make([]float64, len(bids))
	copy(state.LastBids, bids)
	state.LastWinner = outcome.Winner
	state.LastWinningBid = outcome.WinningBid
	state.Round++

	done = state.Round == a.cfg.NumRounds
	return outcome.Rewards, done, a.observe(state), nil
}
