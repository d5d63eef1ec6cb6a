package bht

import "fmt"

// Legal history lengths.
const (
	MinHistoryLength = 1
	MaxHistoryLength = 2
)

// Config holds the shape of the Branch History Table.
type Config struct {
	// NumEntries is the number of table entries. Must be a power of 2.
	// Default: 16.
	NumEntries int `json:"num_entries"`

	// HistoryLength is the number of outcomes each entry records.
	// Must be 1 or 2. Default: 1.
	HistoryLength int `json:"history_length"`

	// InitialBias is the outcome fresh entries predict and fill their
	// history with. Default: false (not taken).
	InitialBias bool `json:"initial_bias"`
}

// DefaultConfig returns the default table shape.
func DefaultConfig() Config {
	return Config{
		NumEntries:    16,
		HistoryLength: 1,
		InitialBias:   false,
	}
}

// Validate checks the table size and history length.
func (c Config) Validate() error {
	if c.NumEntries <= 0 || c.NumEntries&(c.NumEntries-1) != 0 {
		return fmt.Errorf("%w: num_entries %d is not a positive power of two",
			ErrConfiguration, c.NumEntries)
	}
	if c.HistoryLength < MinHistoryLength || c.HistoryLength > MaxHistoryLength {
		return fmt.Errorf("%w: history_length %d must be between %d and %d",
			ErrConfiguration, c.HistoryLength, MinHistoryLength, MaxHistoryLength)
	}
	return nil
}
