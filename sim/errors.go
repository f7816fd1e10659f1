package sim

import (
	"errors"
	"fmt"
)

// ErrEpisodeExhausted is returned by Step once an episode has played
// all of its rounds. A terminal state has no outgoing transitions.
var ErrEpisodeExhausted = errors.New("episode exhausted: all rounds completed")

// ConfigError reports a non-positive configuration field, rejected at
// construction time.
type ConfigError struct {
	Field string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid auction config: %s = %v, must be positive", e.Field, e.Value)
}

// BidShapeError reports a bid vector whose length does not match the
// configured agent count.
type BidShapeError struct {
	Want int
	Got  int
}

func (e *BidShapeError) Error() string {
	return fmt.Sprintf("bid vector has %d entries, want %d", e.Got, e.Want)
}

// InvalidBidError reports a bid that is negative, NaN, or infinite.
// Invalid bids are rejected rather than clamped so the reward
// arithmetic of accepted rounds is never distorted.
type InvalidBidError struct {
	Agent int
	Bid   float64
}

func (e *InvalidBidError) Error() string {
	return fmt.Sprintf("invalid bid %v from agent %d: bids must be finite and non-negative", e.Bid, e.Agent)
}
