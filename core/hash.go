package core

import (
	"crypto/sha256"
	"fmt"
)

// ComputeRoundHash computes the digest for one completed auction round,
// chained onto the previous round's hash so transcripts cannot be
// reordered or truncated without detection.
//
// Formula: SHA256(episode_id + "|" + round + "|" + winner + "|" + sprintf("%.6f", winning_bid) + "|" + bids_hash + "|" + prev_hash)
//
// Prices are formatted to exactly 6 decimal places to ensure consistent
// hashing regardless of how the float is represented in memory.
func ComputeRoundHash(episodeID string, round, winner int, winningBid float64, bidsHash, prevHash string) string {
	data := fmt.Sprintf("%s|%d|%d|%.6f|%s|%s", episodeID, round, winner, winningBid, bidsHash, prevHash)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ComputeVectorHash computes the digest of an ordered price vector
// (bids or valuations) for a given episode.
//
// Formula: SHA256(episode_id + "|" + sprintf("%.6f", v0) + "|" + ...)
func ComputeVectorHash(episodeID string, values []float64) string {
	data := episodeID
	for _, v := range values {
		data += fmt.Sprintf("|%.6f", v)
	}
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
