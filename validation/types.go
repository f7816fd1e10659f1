package validation

// TranscriptValidationResult contains the outcome of every transcript check.
type TranscriptValidationResult struct {
	ShapeValid     bool
	WinnersValid   bool
	RewardsValid   bool
	UtilityValid   bool
	HashChainValid bool

	// ValidationDetails records a human-readable line per check performed
	ValidationDetails []string
}

// IsValid returns true if all transcript checks passed.
func (r *TranscriptValidationResult) IsValid() bool {
	return r.ShapeValid && r.WinnersValid && r.RewardsValid && r.UtilityValid && r.HashChainValid
}
