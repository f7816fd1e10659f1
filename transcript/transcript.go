// Package transcript records completed auction episodes as tamper-evident
// audit trails. Every round is hashed over the episode ID, the round
// outcome, and the previous round's hash, so a transcript cannot be
// reordered, truncated, or edited without breaking the chain.
package transcript

import (
	"time"

	"github.com/google/uuid"

	"github.com/cloudx-io/auctiongym/core"
)

// Round is the audit record of one completed auction round.
type Round struct {
	// Round is the zero-based round index
	Round int `cbor:"round" json:"round"`

	// Bids holds every agent's submitted bid for the round
	Bids []float64 `cbor:"bids" json:"bids"`

	// Winner is the index of the winning agent
	Winner int `cbor:"winner" json:"winner"`

	// WinningBid is the winner's bid
	WinningBid float64 `cbor:"winning_bid" json:"winning_bid"`

	// Rewards is the per-agent reward vector for the round
	Rewards []float64 `cbor:"rewards" json:"rewards"`

	// Hash chains this round onto the previous one
	Hash string `cbor:"hash" json:"hash"`
}

// Episode is the complete audit record of one auction episode.
type Episode struct {
	// EpisodeID uniquely identifies the episode
	EpisodeID string `cbor:"episode_id" json:"episode_id"`

	// Seed is the reset seed, or zero for scripted episodes
	Seed int64 `cbor:"seed" json:"seed"`

	// NumAgents is the number of bidders
	NumAgents int `cbor:"num_agents" json:"num_agents"`

	// MaxValuation is the exclusive sampling bound the episode ran with
	MaxValuation float64 `cbor:"max_valuation" json:"max_valuation"`

	// Valuations holds the per-agent private valuations. Transcripts are
	// post-hoc audit records, so the valuations are disclosed here to
	// make rewards verifiable.
	Valuations []float64 `cbor:"valuations" json:"valuations"`

	// Rounds are the recorded rounds in play order
	Rounds []Round `cbor:"rounds" json:"rounds"`

	// CumulativeUtility is the running per-agent utility after the last
	// recorded round
	CumulativeUtility []float64 `cbor:"cumulative_utility" json:"cumulative_utility"`

	// CreatedAt is when the episode was reset
	CreatedAt time.Time `cbor:"created_at" json:"created_at"`
}

// New starts a transcript for an episode with the given valuations.
func New(seed int64, maxValuation float64, valuations []float64) *Episode {
	owned := make([]float64, len(valuations))
	copy(owned, valuations)

	return &Episode{
		EpisodeID:         uuid.NewString(),
		Seed:              seed,
		NumAgents:         len(valuations),
		MaxValuation:      maxValuation,
		Valuations:        owned,
		CumulativeUtility: make([]float64, len(valuations)),
		CreatedAt:         time.Now().UTC(),
	}
}

// RecordRound appends one resolved round, chaining its hash onto the
// transcript head.
func (e *Episode) RecordRound(bids []float64, outcome *core.RoundOutcome) {
	ownedBids := make([]float64, len(bids))
	copy(ownedBids, bids)
	ownedRewards := make([]float64, len(outcome.Rewards))
	copy(ownedRewards, outcome.Rewards)

	for i, reward := range ownedRewards {
		e.CumulativeUtility[i] = core.AccumulateUtility(e.CumulativeUtility[i], reward)
	}

	round := len(e.Rounds)
	bidsHash := core.ComputeVectorHash(e.EpisodeID, ownedBids)

	e.Rounds = append(e.Rounds, Round{
		Round:      round,
		Bids:       ownedBids,
		Winner:     outcome.Winner,
		WinningBid: outcome.WinningBid,
		Rewards:    ownedRewards,
		Hash:       core.ComputeRoundHash(e.EpisodeID, round, outcome.Winner, outcome.WinningBid, bidsHash, e.Digest()),
	})
}

// Digest returns the head of the hash chain: the last round's hash, or
// the valuations hash for a transcript with no rounds yet.
func (e *Episode) Digest() string {
	if len(e.Rounds) == 0 {
		return core.ComputeVectorHash(e.EpisodeID, e.Valuations)
	}
	return e.Rounds[len(e.Rounds)-1].Hash
}
