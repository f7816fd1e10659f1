package transcript

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Encode serializes the episode to CBOR.
func (e *Episode) Encode() ([]byte, error) {
	data, err := cbor.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode transcript %s: %w", e.EpisodeID, err)
	}
	return data, nil
}

// DecodeEpisode parses a CBOR-encoded episode transcript.
func DecodeEpisode(data []byte) (*Episode, error) {
	var e Episode
	if err := cbor.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return &e, nil
}
