// Package bht models a direct-mapped Branch History Table.
//
// Each branch address maps to exactly one entry by its word index modulo the
// table size. There is no tag check: branches 4*N bytes apart share an entry.
// The table knows nothing about instructions or fetch timing; a sequencer
// drives it with predictions and outcomes.
//
// Table is not safe for concurrent use. Callers serialize Configure against
// prediction and update traffic.
package bht

import "fmt"

// Table is a direct-mapped array of Entry values.
type Table struct {
	entries []*Entry
	config  Config
}

// NewTable creates a table with the given configuration.
func NewTable(config Config) (*Table, error) {
	t := &Table{}
	if err := t.Configure(config.NumEntries, config.HistoryLength, config.InitialBias); err != nil {
		return nil, err
	}
	return t, nil
}

// Configure discards every entry and creates numEntries fresh ones. On error
// the table is left unchanged.
func (t *Table) Configure(numEntries, historyLength int, initialBias bool) error {
	config := Config{
		NumEntries:    numEntries,
		HistoryLength: historyLength,
		InitialBias:   initialBias,
	}
	if err := config.Validate(); err != nil {
		return err
	}

	t.config = config
	t.Reset()
	return nil
}

// Reset recreates all entries with the current configuration.
func (t *Table) Reset() {
	entries := make([]*Entry, t.config.NumEntries)
	for i := range entries {
		entries[i] = newEntry(t.config.HistoryLength, t.config.InitialBias)
	}
	t.entries = entries
}

// Config returns the current configuration.
func (t *Table) Config() Config {
	return t.config
}

// NumEntries returns the number of entries.
func (t *Table) NumEntries() int {
	return len(t.entries)
}

// HistoryLength returns the history length shared by every entry.
func (t *Table) HistoryLength() int {
	return t.config.HistoryLength
}

// InitialBias returns the outcome fresh entries start with.
func (t *Table) InitialBias() bool {
	return t.config.InitialBias
}

// IndexFor maps an address to its entry: the word index of the address
// modulo the table size. Negative addresses are rejected, and a table built
// without NewTable has no entries to map to.
func (t *Table) IndexFor(address int64) (int, error) {
	if len(t.entries) == 0 {
		return 0, fmt.Errorf("%w: table has no entries", ErrConfiguration)
	}
	if address < 0 {
		return 0, fmt.Errorf("%w: negative address %d", ErrRange, address)
	}
	return int((address >> 2) % int64(len(t.entries))), nil
}

// Entry returns the entry at index.
func (t *Table) Entry(index int) (*Entry, error) {
	if index < 0 || index >= len(t.entries) {
		return nil, fmt.Errorf("%w: index %d outside [0, %d)",
			ErrRange, index, len(t.entries))
	}
	return t.entries[index], nil
}

// PredictionAt returns the prediction of the entry at index.
func (t *Table) PredictionAt(index int) (bool, error) {
	e, err := t.Entry(index)
	if err != nil {
		return false, err
	}
	return e.Predict(), nil
}

// UpdateAt records an outcome in the entry at index.
func (t *Table) UpdateAt(index int, taken bool) error {
	e, err := t.Entry(index)
	if err != nil {
		return err
	}
	e.Update(taken)
	return nil
}
