// Package validation verifies episode transcripts after the fact by
// replaying the auction rules over the recorded bids: winner selection,
// reward arithmetic, utility accounting, and the round hash chain.
package validation

import (
	"fmt"

	"github.com/cloudx-io/auctiongym/core"
	"github.com/cloudx-io/auctiongym/transcript"
)

// ValidateTranscript replays an episode transcript and verifies:
//   - Shape: vector lengths match the agent count, round numbers are sequential
//   - Winners: each recorded winner and winning bid match the tie-break rule
//   - Rewards: each reward vector matches valuation-minus-bid for the winner
//   - Utility: the recorded cumulative utility equals the accumulated rewards
//   - Hash chain: every round hash chains correctly back to the valuations
//
// Returns:
//   - TranscriptValidationResult with detailed results (call result.IsValid() to check overall status)
//   - error if validation cannot be performed (nil or unidentified transcript)
func ValidateTranscript(ep *transcript.Episode) (*TranscriptValidationResult, error) {
	if ep == nil {
		return nil, fmt.Errorf("nil transcript")
	}
	if ep.EpisodeID == "" {
		return nil, fmt.Errorf("transcript has no episode ID")
	}

	result := &TranscriptValidationResult{}

	result.ShapeValid = validateShape(ep, result)
	if !result.ShapeValid {
		// The remaining checks index into the recorded vectors, so a bad
		// shape fails everything
		result.ValidationDetails = append(result.ValidationDetails, "Shape invalid, skipping remaining checks")
		return result, nil
	}

	result.WinnersValid = validateWinners(ep, result)
	result.RewardsValid = validateRewards(ep, result)
	result.UtilityValid = validateUtility(ep, result)
	result.HashChainValid = validateHashChain(ep, result)

	return result, nil
}

func validateShape(ep *transcript.Episode, result *TranscriptValidationResult) bool {
	if ep.NumAgents <= 0 {
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Invalid agent count %d", ep.NumAgents))
		return false
	}
	if len(ep.Valuations) != ep.NumAgents {
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Valuation vector has %d entries for %d agents", len(ep.Valuations), ep.NumAgents))
		return false
	}
	if len(ep.CumulativeUtility) != ep.NumAgents {
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Cumulative utility vector has %d entries for %d agents", len(ep.CumulativeUtility), ep.NumAgents))
		return false
	}

	for i, round := range ep.Rounds {
		if round.Round != i {
			result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Round %d recorded out of order as %d", i, round.Round))
			return false
		}
		if len(round.Bids) != ep.NumAgents || len(round.Rewards) != ep.NumAgents {
			result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Round %d has %d bids and %d rewards for %d agents", i, len(round.Bids), len(round.Rewards), ep.NumAgents))
			return false
		}
	}

	result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Shape validation passed: %d agents, %d rounds", ep.NumAgents, len(ep.Rounds)))
	return true
}

func validateWinners(ep *transcript.Episode, result *TranscriptValidationResult) bool {
	for _, round := range ep.Rounds {
		winner, winningBid := core.SelectWinner(round.Bids)
		if winner != round.Winner {
			result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Winner mismatch in round %d: recorded %d, recomputed %d", round.Round, round.Winner, winner))
			return false
		}
		if winningBid != round.WinningBid {
			result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Winning bid mismatch in round %d: recorded %.6f, recomputed %.6f", round.Round, round.WinningBid, winningBid))
			return false
		}
	}

	result.ValidationDetails = append(result.ValidationDetails, "Winner validation passed for all rounds")
	return true
}

func validateRewards(ep *transcript.Episode, result *TranscriptValidationResult) bool {
	for _, round := range ep.Rounds {
		outcome := core.ResolveRound(ep.Valuations, round.Bids)
		for i, expected := range outcome.Rewards {
			if round.Rewards[i] != expected {
				result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Reward mismatch in round %d for agent %d: recorded %.6f, recomputed %.6f", round.Round, i, round.Rewards[i], expected))
				return false
			}
		}
	}

	result.ValidationDetails = append(result.ValidationDetails, "Reward validation passed for all rounds")
	return true
}

func validateUtility(ep *transcript.Episode, result *TranscriptValidationResult) bool {
	totals := make([]float64, ep.NumAgents)
	for _, round := range ep.Rounds {
		for i, reward := range round.Rewards {
			totals[i] = core.AccumulateUtility(totals[i], reward)
		}
	}

	for i, total := range totals {
		if ep.CumulativeUtility[i] != total {
			result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Cumulative utility mismatch for agent %d: recorded %.6f, accumulated %.6f", i, ep.CumulativeUtility[i], total))
			return false
		}
	}

	result.ValidationDetails = append(result.ValidationDetails, "Utility accounting validation passed")
	return true
}

func validateHashChain(ep *transcript.Episode, result *TranscriptValidationResult) bool {
	prevHash := core.ComputeVectorHash(ep.EpisodeID, ep.Valuations)

	for _, round := range ep.Rounds {
		bidsHash := core.ComputeVectorHash(ep.EpisodeID, round.Bids)
		computed := core.ComputeRoundHash(ep.EpisodeID, round.Round, round.Winner, round.WinningBid, bidsHash, prevHash)
		if round.Hash != computed {
			result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Hash chain broken at round %d: recorded %s, computed %s", round.Round, round.Hash, computed))
			return false
		}
		prevHash = round.Hash
	}

	result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Hash chain validation passed, digest %s", ep.Digest()))
	return true
}
