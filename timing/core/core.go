// Package core owns a Branch History Table and the sequencer that feeds it,
// and serializes table reconfiguration against fetch-event delivery.
//
// A Core is the only handle the host needs: attach it to an emulator as a
// fetch observer, reconfigure it from any goroutine, and read the per-entry
// query surface for display.
package core

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sarchlab/bhtsim/emu"
	"github.com/sarchlab/bhtsim/timing/bht"
	"github.com/sarchlab/bhtsim/timing/btb"
	"github.com/sarchlab/bhtsim/timing/sequencer"
)

// EntrySnapshot is a point-in-time copy of one table entry.
type EntrySnapshot struct {
	Index      int
	History    []bool
	Prediction bool
	Correct    uint64
	Incorrect  uint64
	Precision  float64
}

// Core is a branch predictor attached to a host register file.
type Core struct {
	mu sync.Mutex

	table *bht.Table
	btb   *btb.BTB
	seq   *sequencer.Sequencer

	stderr io.Writer
	errs   []error

	// hosts holds the emulators the core already observes.
	hosts map[*emu.Emulator]struct{}
}

// Option configures a Core.
type Option func(*Core)

// WithStderr sets where dispatch errors are reported.
func WithStderr(w io.Writer) Option {
	return func(c *Core) {
		c.stderr = w
	}
}

// WithListener registers a resolution listener. Listeners run with the core
// locked and must not call back into it.
func WithListener(l sequencer.Listener) Option {
	return func(c *Core) {
		c.seq.AddListener(l)
	}
}

// NewCore creates a Core reading branch operands from regs.
func NewCore(config *Config, regs emu.RegisterReader, opts ...Option) (*Core, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	table, err := bht.NewTable(config.BHT)
	if err != nil {
		return nil, err
	}

	c := &Core{
		table:  table,
		stderr: os.Stderr,
		hosts:  make(map[*emu.Emulator]struct{}),
	}

	var seqOpts []sequencer.Option
	if config.BTBSize > 0 {
		c.btb, err = btb.New(config.BTBSize)
		if err != nil {
			return nil, err
		}
		seqOpts = append(seqOpts, sequencer.WithBTB(c.btb))
	}
	c.seq = sequencer.New(table, regs, seqOpts...)

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// OnFetch delivers one executed instruction fetch. Errors are recorded and
// reported, and the host keeps running.
func (c *Core) OnFetch(address uint32, word uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.seq.OnFetch(address, word); err != nil {
		c.recordError(err)
	}
}

// Finish commits a branch left pending when fetches stop.
func (c *Core) Finish() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.seq.Flush(); err != nil {
		c.recordError(err)
		return err
	}
	return nil
}

func (c *Core) recordError(err error) {
	c.errs = append(c.errs, err)
	_, _ = fmt.Fprintf(c.stderr, "Branch predictor error: %v\n", err)
}

// Run executes e to completion with the core attached, then commits any
// pending branch. It returns the program's exit code. The core attaches to a
// given emulator once, so running it again after a reload delivers each
// fetch a single time.
func (c *Core) Run(e *emu.Emulator) (int64, error) {
	c.attach(e)
	exitCode := e.Run()

	if err := c.Finish(); err != nil {
		return exitCode, err
	}
	return exitCode, e.LastError()
}

func (c *Core) attach(e *emu.Emulator) {
	c.mu.Lock()
	_, attached := c.hosts[e]
	c.hosts[e] = struct{}{}
	c.mu.Unlock()

	if !attached {
		e.AddFetchObserver(c)
	}
}

// Configure replaces the table with numEntries fresh entries. A pending
// branch is discarded and aggregate statistics are cleared.
func (c *Core) Configure(numEntries, historyLength int, initialBias bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.table.Configure(numEntries, historyLength, initialBias); err != nil {
		return err
	}
	c.seq.Discard()
	c.seq.ResetStats()
	return nil
}

// Reset recreates every entry with the current shape and forgets pending
// state, buffered targets, statistics, and recorded errors.
func (c *Core) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.table.Reset()
	c.seq.Discard()
	c.seq.ResetStats()
	if c.btb != nil {
		c.btb.Reset()
	}
	c.errs = nil
}

// Config returns the current table shape.
func (c *Core) Config() bht.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.Config()
}

// NumEntries returns the number of table entries.
func (c *Core) NumEntries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.NumEntries()
}

// IndexFor returns the entry an address maps to.
func (c *Core) IndexFor(address int64) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.IndexFor(address)
}

func (c *Core) entry(i int) (*bht.Entry, error) {
	return c.table.Entry(i)
}

// HistoryOfEntry returns the recorded outcomes of entry i, oldest first.
func (c *Core) HistoryOfEntry(i int) ([]bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.entry(i)
	if err != nil {
		return nil, err
	}
	return e.History(), nil
}

// PredictionOfEntry returns the prediction of entry i.
func (c *Core) PredictionOfEntry(i int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.entry(i)
	if err != nil {
		return false, err
	}
	return e.Predict(), nil
}

// CorrectOfEntry returns the correct-prediction count of entry i.
func (c *Core) CorrectOfEntry(i int) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.entry(i)
	if err != nil {
		return 0, err
	}
	return e.Correct(), nil
}

// IncorrectOfEntry returns the misprediction count of entry i.
func (c *Core) IncorrectOfEntry(i int) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.entry(i)
	if err != nil {
		return 0, err
	}
	return e.Incorrect(), nil
}

// PrecisionOfEntry returns the precision of entry i as a percentage.
func (c *Core) PrecisionOfEntry(i int) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.entry(i)
	if err != nil {
		return 0, err
	}
	return e.Precision(), nil
}

// Snapshot copies every entry.
func (c *Core) Snapshot() []EntrySnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]EntrySnapshot, c.table.NumEntries())
	for i := range snapshot {
		e, _ := c.entry(i)
		snapshot[i] = EntrySnapshot{
			Index:      i,
			History:    e.History(),
			Prediction: e.Predict(),
			Correct:    e.Correct(),
			Incorrect:  e.Incorrect(),
			Precision:  e.Precision(),
		}
	}
	return snapshot
}

// Stats returns aggregate prediction statistics.
func (c *Core) Stats() sequencer.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.Stats()
}

// BTBStats returns buffer statistics, or false if no buffer is configured.
func (c *Core) BTBStats() (btb.Statistics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.btb == nil {
		return btb.Statistics{}, false
	}
	return c.btb.Stats(), true
}

// Errors returns the dispatch errors recorded since the last Reset.
func (c *Core) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()

	errs := make([]error, len(c.errs))
	copy(errs, c.errs)
	return errs
}
