package bht

import "errors"

// Error kinds reported by the predictor. Call sites wrap them with context;
// test with errors.Is.
var (
	// ErrConfiguration reports a table size that is not a positive power of
	// two or a history length outside {1, 2}.
	ErrConfiguration = errors.New("invalid branch history table configuration")

	// ErrRange reports a negative address or an entry index outside the
	// table.
	ErrRange = errors.New("branch history table access out of range")

	// ErrSequencingViolation reports a breach of the one-pending-branch
	// rule. It is raised as a panic, not returned.
	ErrSequencingViolation = errors.New("branch sequencing violation")
)
