// Package sequencer pairs each predicted branch with its resolved outcome one
// instruction fetch later, the way a single-issue pipeline charges a
// misprediction to the table entry that made it.
//
// On every fetch the sequencer first commits the branch left pending by the
// previous fetch, then classifies the new word. A branch has its outcome
// computed eagerly from the registers at fetch time and is held pending until
// the next fetch, or until Flush at the end of the run.
package sequencer

import (
	"fmt"

	"github.com/sarchlab/bhtsim/emu"
	"github.com/sarchlab/bhtsim/timing/bht"
	"github.com/sarchlab/bhtsim/timing/btb"
)

// State is the sequencer state.
type State uint8

// Sequencer states.
const (
	// Idle means no branch awaits resolution.
	Idle State = iota
	// AwaitingResolution means exactly one branch is pending.
	AwaitingResolution
)

// String returns the state name.
func (s State) String() string {
	if s == AwaitingResolution {
		return "awaiting-resolution"
	}
	return "idle"
}

// Resolution describes one committed branch.
type Resolution struct {
	// Address is the branch instruction address.
	Address uint32
	// Index is the table entry the branch mapped to.
	Index int
	// Predicted is what the entry predicted before the update.
	Predicted bool
	// Taken is the actual outcome.
	Taken bool
	// Target is the evaluated branch target.
	Target int64
	// Correct reports Predicted == Taken.
	Correct bool

	// TargetKnown reports that the BTB held an entry for Address.
	TargetKnown bool
	// TargetHit reports that the buffered target equals Target.
	TargetHit bool
}

// Listener is notified of every committed branch.
type Listener interface {
	OnResolve(r Resolution)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(r Resolution)

// OnResolve calls f.
func (f ListenerFunc) OnResolve(r Resolution) {
	f(r)
}

// Stats holds aggregate prediction statistics.
type Stats struct {
	// Resolutions is the number of committed branches.
	Resolutions uint64
	// Correct is the number of correct predictions.
	Correct uint64
	// Mispredictions is the number of incorrect predictions.
	Mispredictions uint64
	// BTBHits is the number of resolutions whose target the BTB supplied.
	BTBHits uint64
	// BTBMisses is the number of resolutions the BTB could not supply.
	BTBMisses uint64
}

// Accuracy returns the prediction accuracy as a percentage.
func (s Stats) Accuracy() float64 {
	if s.Resolutions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Resolutions) * 100
}

// MispredictionRate returns the misprediction rate as a percentage.
func (s Stats) MispredictionRate() float64 {
	if s.Resolutions == 0 {
		return 0
	}
	return float64(s.Mispredictions) / float64(s.Resolutions) * 100
}

// Sequencer drives a bht.Table from a stream of fetch events.
//
// Sequencer is not safe for concurrent use.
type Sequencer struct {
	table      *bht.Table
	branchUnit *emu.BranchUnit
	btb        *btb.BTB
	listeners  []Listener

	state          State
	pendingAddress uint32
	pendingOutcome emu.Outcome

	stats Stats
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithBTB attaches a branch target buffer consulted at resolution.
func WithBTB(b *btb.BTB) Option {
	return func(s *Sequencer) {
		s.btb = b
	}
}

// WithListener registers a resolution listener.
func WithListener(l Listener) Option {
	return func(s *Sequencer) {
		s.listeners = append(s.listeners, l)
	}
}

// New creates a sequencer that updates table and reads branch operands from
// regs.
func New(table *bht.Table, regs emu.RegisterReader, opts ...Option) *Sequencer {
	s := &Sequencer{
		table:      table,
		branchUnit: emu.NewBranchUnit(regs),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddListener registers a resolution listener.
func (s *Sequencer) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// State returns the current state.
func (s *Sequencer) State() State {
	return s.state
}

// Pending returns the pending branch address and outcome, if any.
func (s *Sequencer) Pending() (address uint32, outcome emu.Outcome, ok bool) {
	if s.state != AwaitingResolution {
		return 0, emu.Outcome{}, false
	}
	return s.pendingAddress, s.pendingOutcome, true
}

// Stats returns aggregate statistics.
func (s *Sequencer) Stats() Stats {
	return s.stats
}

// ResetStats clears aggregate statistics.
func (s *Sequencer) ResetStats() {
	s.stats = Stats{}
}

// OnFetch handles one executed instruction fetch at address.
//
// The previously pending branch is committed first. If that fails, the
// pending branch is dropped, the rest of the event is skipped, and the error
// is returned.
func (s *Sequencer) OnFetch(address uint32, word uint32) error {
	if err := s.resolve(); err != nil {
		return err
	}

	outcome, ok := s.branchUnit.Resolve(word, address)
	if !ok {
		return nil
	}

	s.Begin(address, outcome)
	return nil
}

// Flush commits the pending branch, if any. Call it when fetches stop.
func (s *Sequencer) Flush() error {
	return s.resolve()
}

// Discard drops the pending branch without touching the table.
func (s *Sequencer) Discard() {
	s.state = Idle
	s.pendingAddress = 0
	s.pendingOutcome = emu.Outcome{}
}

// Begin marks the branch at address pending with an already evaluated
// outcome. It panics with an error wrapping bht.ErrSequencingViolation if a
// branch is already pending.
func (s *Sequencer) Begin(address uint32, outcome emu.Outcome) {
	if s.state == AwaitingResolution {
		panic(fmt.Errorf("%w: branch at 0x%08X started while 0x%08X is pending",
			bht.ErrSequencingViolation, address, s.pendingAddress))
	}

	s.state = AwaitingResolution
	s.pendingAddress = address
	s.pendingOutcome = outcome
}

func (s *Sequencer) resolve() error {
	address, outcome, ok := s.Pending()
	if !ok {
		return nil
	}
	s.Discard()

	idx, err := s.table.IndexFor(emu.SignedAddress(address))
	if err != nil {
		return fmt.Errorf("resolving branch at 0x%08X: %w", address, err)
	}

	predicted, err := s.table.PredictionAt(idx)
	if err != nil {
		return fmt.Errorf("resolving branch at 0x%08X: %w", address, err)
	}

	r := Resolution{
		Address:   address,
		Index:     idx,
		Predicted: predicted,
		Taken:     outcome.Taken,
		Target:    outcome.Target,
		Correct:   predicted == outcome.Taken,
	}

	if s.btb != nil {
		s.resolveTarget(&r)
	}

	if err := s.table.UpdateAt(idx, outcome.Taken); err != nil {
		return fmt.Errorf("resolving branch at 0x%08X: %w", address, err)
	}

	s.stats.Resolutions++
	if r.Correct {
		s.stats.Correct++
	} else {
		s.stats.Mispredictions++
	}

	for _, l := range s.listeners {
		l.OnResolve(r)
	}

	return nil
}

// resolveTarget checks the buffered target and installs taken targets.
func (s *Sequencer) resolveTarget(r *Resolution) {
	target := uint32(r.Target)

	buffered, known := s.btb.Lookup(r.Address)
	r.TargetKnown = known
	r.TargetHit = known && buffered == target

	if r.TargetHit {
		s.stats.BTBHits++
	} else {
		s.stats.BTBMisses++
	}

	if r.Taken {
		s.btb.Insert(r.Address, target)
	}
}
