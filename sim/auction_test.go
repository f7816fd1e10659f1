package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/cloudx-io/auctiongym/core"
)

func newTestAuction(t *testing.T, cfg Config) *Auction {
	t.Helper()
	a, err := New(cfg)
	assert.Nil(t, err)
	return a
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name          string
		cfg           Config
		expectedField string
	}{
		{"zero agents", Config{NumAgents: 0, NumRounds: 2, MaxValuation: 10}, "NumAgents"},
		{"negative agents", Config{NumAgents: -3, NumRounds: 2, MaxValuation: 10}, "NumAgents"},
		{"zero rounds", Config{NumAgents: 3, NumRounds: 0, MaxValuation: 10}, "NumRounds"},
		{"negative rounds", Config{NumAgents: 3, NumRounds: -1, MaxValuation: 10}, "NumRounds"},
		{"zero max valuation", Config{NumAgents: 3, NumRounds: 2, MaxValuation: 0}, "MaxValuation"},
		{"negative max valuation", Config{NumAgents: 3, NumRounds: 2, MaxValuation: -5.0}, "MaxValuation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.NotNil(t, err)

			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
			check.Equal(t, tt.expectedField, cfgErr.Field)
		})
	}
}

func TestReset_Deterministic(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 5, NumRounds: 3, MaxValuation: 10.0})

	s1, _ := a.Reset(42)
	s2, _ := a.Reset(42)
	check.Equal(t, s1.Valuations, s2.Valuations)

	s3, _ := a.Reset(43)
	if equalFloats(s1.Valuations, s3.Valuations) {
		t.Error("different seeds produced identical valuations")
	}
}

func TestReset_InitialState(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 4, NumRounds: 2, MaxValuation: 7.5})

	state, obs := a.Reset(7)

	check.Equal(t, 4, len(state.Valuations))
	for i, v := range state.Valuations {
		if v < 0 || v >= 7.5 {
			t.Errorf("valuation %d = %v outside [0, 7.5)", i, v)
		}
	}
	check.Equal(t, 0, state.Round)
	check.Equal(t, []float64{0, 0, 0, 0}, state.CumulativeUtility)
	check.Equal(t, NoWinner, state.LastWinner)
	check.Equal(t, NoWinningBid, state.LastWinningBid)
	if state.LastBids != nil {
		t.Error("expected nil LastBids before the first round")
	}

	// Each agent sees its own valuation and the no-round-completed markers
	assert.Equal(t, 4, len(obs))
	for i, view := range obs {
		check.Equal(t, i, view.AgentID)
		check.Equal(t, state.Valuations[i], view.Valuation)
		check.Equal(t, NoWinner, view.LastWinner)
		check.Equal(t, NoWinningBid, view.LastWinningBid)
	}
}

func TestResetWith_Validation(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 3, NumRounds: 2, MaxValuation: 10.0})

	_, _, err := a.ResetWith([]float64{1.0, 2.0})
	check.NotNil(t, err)

	_, _, err = a.ResetWith([]float64{1.0, 2.0, 10.0}) // at the exclusive bound
	check.NotNil(t, err)

	_, _, err = a.ResetWith([]float64{1.0, -0.5, 3.0})
	check.NotNil(t, err)

	state, _, err := a.ResetWith([]float64{5.94, 7.44, 6.42})
	assert.Nil(t, err)
	check.Equal(t, []float64{5.94, 7.44, 6.42}, state.Valuations)
}

func TestResetWith_CopiesValuations(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 2, NumRounds: 1, MaxValuation: 10.0})

	input := []float64{1.0, 2.0}
	state, _, err := a.ResetWith(input)
	assert.Nil(t, err)

	input[0] = 9.0
	check.Equal(t, 1.0, state.Valuations[0])
}

func TestStep_RejectsWrongShape(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 3, NumRounds: 2, MaxValuation: 10.0})
	state, _ := a.Reset(1)

	_, _, _, err := a.Step(state, []float64{1.0, 2.0})
	var shapeErr *BidShapeError
	assert.True(t, errors.As(err, &shapeErr))
	check.Equal(t, 3, shapeErr.Want)
	check.Equal(t, 2, shapeErr.Got)

	// State must be untouched after a rejected step
	check.Equal(t, 0, state.Round)
	check.Equal(t, NoWinner, state.LastWinner)
}

func TestStep_RejectsInvalidBids(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name          string
		bids          []float64
		expectedAgent int
	}{
		{"negative bid", []float64{1.0, -0.5, 2.0}, 1},
		{"NaN bid", []float64{nan, 1.0, 2.0}, 0},
		{"positive infinity", []float64{1.0, 2.0, inf}, 2},
		{"negative infinity", []float64{1.0, math.Inf(-1), 2.0}, 1},
	}

	a := newTestAuction(t, Config{NumAgents: 3, NumRounds: 2, MaxValuation: 10.0})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, _ := a.Reset(1)
			_, _, _, err := a.Step(state, tt.bids)

			var bidErr *InvalidBidError
			assert.True(t, errors.As(err, &bidErr))
			check.Equal(t, tt.expectedAgent, bidErr.Agent)

			check.Equal(t, 0, state.Round)
			check.Equal(t, []float64{0, 0, 0}, state.CumulativeUtility)
		})
	}
}

func TestStep_TieBreakGoesToLowestIndex(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 3, NumRounds: 1, MaxValuation: 10.0})
	state, _, err := a.ResetWith([]float64{5.0, 5.0, 5.0})
	assert.Nil(t, err)

	_, _, obs, err := a.Step(state, []float64{7.0, 7.0, 3.0})
	assert.Nil(t, err)

	check.Equal(t, 0, state.LastWinner)
	check.Equal(t, 7.0, state.LastWinningBid)
	check.Equal(t, 0, obs[2].LastWinner)
}

func TestStep_CopiesBids(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 2, NumRounds: 2, MaxValuation: 10.0})
	state, _ := a.Reset(3)

	bids := []float64{1.0, 2.0}
	_, _, _, err := a.Step(state, bids)
	assert.Nil(t, err)

	bids[1] = 99.0
	check.Equal(t, 2.0, state.LastBids[1])
}

func TestStep_ObservationHidesOtherBids(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 3, NumRounds: 1, MaxValuation: 10.0})
	state, _, err := a.ResetWith([]float64{5.94, 7.44, 6.42})
	assert.Nil(t, err)

	_, _, obs, err := a.Step(state, []float64{5.0, 7.0, 6.0})
	assert.Nil(t, err)

	// Every agent sees the public outcome and only its own valuation
	for i, view := range obs {
		check.Equal(t, 1, view.LastWinner)
		check.Equal(t, 7.0, view.LastWinningBid)
		check.Equal(t, state.Valuations[i], view.Valuation)
	}
}

func TestStep_TerminationAfterConfiguredRounds(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 2, NumRounds: 3, MaxValuation: 10.0})
	state, _ := a.Reset(11)

	bids := []float64{1.0, 2.0}
	for round := 1; round <= 3; round++ {
		_, done, _, err := a.Step(state, bids)
		assert.Nil(t, err)
		check.Equal(t, round == 3, done)
		check.Equal(t, round, state.Round)
	}

	// The terminal state has no outgoing transitions
	_, done, _, err := a.Step(state, bids)
	assert.True(t, errors.Is(err, ErrEpisodeExhausted))
	check.True(t, done)
	check.Equal(t, 3, state.Round)
}

func TestStep_CumulativeUtilityMatchesRewardSums(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 4, NumRounds: 6, MaxValuation: 10.0})
	state, _ := a.Reset(99)

	rng := rand.New(rand.NewSource(7))
	totals := make([]float64, 4)

	for {
		bids := make([]float64, 4)
		for i := range bids {
			bids[i] = rng.Float64() * 10.0
		}

		rewards, done, _, err := a.Step(state, bids)
		assert.Nil(t, err)

		winners := 0
		for i, r := range rewards {
			if r != 0 {
				winners++
				check.Equal(t, i, state.LastWinner)
			}
			totals[i] = core.AccumulateUtility(totals[i], r)
		}
		if winners > 1 {
			t.Fatalf("round %d credited %d agents", state.Round, winners)
		}

		if done {
			break
		}
	}

	check.Equal(t, totals, state.CumulativeUtility)
}

// The reference episode: 3 agents, 2 rounds, fixed valuations.
func TestEndToEndTrace(t *testing.T) {
	a := newTestAuction(t, Config{NumAgents: 3, NumRounds: 2, MaxValuation: 10.0})
	state, _, err := a.ResetWith([]float64{5.94, 7.44, 6.42})
	assert.Nil(t, err)

	rewards, done, _, err := a.Step(state, []float64{5.0, 7.0, 6.0})
	assert.Nil(t, err)
	check.False(t, done)
	check.Equal(t, []float64{0, 0.44, 0}, rewards)
	check.Equal(t, 1, state.LastWinner)
	check.Equal(t, []float64{0, 0.44, 0}, state.CumulativeUtility)

	rewards, done, obs, err := a.Step(state, []float64{8.0, 5.0, 7.0})
	assert.Nil(t, err)
	check.True(t, done)
	check.Equal(t, []float64{-2.06, 0, 0}, rewards)
	check.Equal(t, 0, state.LastWinner)
	check.Equal(t, 8.0, state.LastWinningBid)
	check.Equal(t, []float64{-2.06, 0.44, 0}, state.CumulativeUtility)
	check.Equal(t, 0, obs[1].LastWinner)
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
