package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/bhtsim/insts"
)

// MARS default memory layout.
const (
	DefaultTextBase     uint32 = 0x00400000
	DefaultStackPointer uint32 = 0x7FFFEFFC
	DefaultGlobalPtr    uint32 = 0x10008000
)

// FetchObserver is notified once per instruction the emulator executes,
// before the instruction takes effect.
type FetchObserver interface {
	OnFetch(address uint32, word uint32)
}

// FetchObserverFunc adapts a function to FetchObserver.
type FetchObserverFunc func(address uint32, word uint32)

// OnFetch calls f.
func (f FetchObserverFunc) OnFetch(address uint32, word uint32) {
	f(address, word)
}

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Exited is true if the program terminated (via exit syscall).
	Exited bool

	// ExitCode is the exit status if Exited is true.
	ExitCode int64

	// Err is set if an error occurred during execution.
	Err error
}

// Emulator executes MIPS32 instructions functionally, without delay slots.
type Emulator struct {
	regFile        *RegFile
	memory         *Memory
	decoder        *insts.Decoder
	syscallHandler SyscallHandler
	observers      []FetchObserver

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	// I/O
	stdout io.Writer
	stderr io.Writer

	// Execution state
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
	lastErr          error
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithStdout sets a custom stdout writer.
func WithStdout(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stdout = w
	}
}

// WithStderr sets a custom stderr writer.
func WithStderr(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stderr = w
	}
}

// WithSyscallHandler sets a custom syscall handler.
func WithSyscallHandler(handler SyscallHandler) EmulatorOption {
	return func(e *Emulator) {
		e.syscallHandler = handler
	}
}

// WithStackPointer sets the initial stack pointer value.
func WithStackPointer(sp uint32) EmulatorOption {
	return func(e *Emulator) {
		e.regFile.WriteReg(RegSP, int32(sp))
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithFetchObserver registers an observer of executed instruction fetches.
func WithFetchObserver(o FetchObserver) EmulatorOption {
	return func(e *Emulator) {
		e.observers = append(e.observers, o)
	}
}

// NewEmulator creates a new MIPS emulator.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	regFile := &RegFile{PC: DefaultTextBase}
	regFile.WriteReg(RegSP, int32(DefaultStackPointer))
	regFile.WriteReg(28, int32(DefaultGlobalPtr))

	e := &Emulator{
		regFile: regFile,
		memory:  NewMemory(),
		decoder: insts.NewDecoder(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.wireUnits()

	return e
}

func (e *Emulator) wireUnits() {
	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.branchUnit = NewBranchUnit(e.regFile)
	if e.syscallHandler == nil {
		e.syscallHandler = NewDefaultSyscallHandler(e.regFile, e.memory, e.stdout)
	}
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LastError returns the error that stopped the last Run, if any.
func (e *Emulator) LastError() error {
	return e.lastErr
}

// AddFetchObserver registers an observer of executed instruction fetches.
func (e *Emulator) AddFetchObserver(o FetchObserver) {
	e.observers = append(e.observers, o)
}

// LoadProgram installs memory and sets the entry point.
func (e *Emulator) LoadProgram(entry uint32, memory *Memory) {
	e.memory = memory
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	if h, ok := e.syscallHandler.(*DefaultSyscallHandler); ok {
		h.memory = memory
	}
	e.regFile.PC = entry
}

// Step executes a single instruction.
// Returns a StepResult indicating whether execution should continue.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{
			Err: fmt.Errorf("max instructions reached"),
		}
	}

	pc := e.regFile.PC
	word := e.memory.Read32(pc)

	for _, o := range e.observers {
		o.OnFetch(pc, word)
	}

	inst := e.decoder.Decode(word)
	result := e.execute(pc, word, inst)

	e.instructionCount++

	return result
}

// Run executes instructions until the program exits or an error occurs.
// Returns the exit code (-1 if error).
func (e *Emulator) Run() int64 {
	e.lastErr = nil
	for {
		result := e.Step()
		if result.Err != nil {
			e.lastErr = result.Err
			_, _ = fmt.Fprintf(e.stderr, "Emulation error: %v\n", result.Err)
			return -1
		}
		if result.Exited {
			return result.ExitCode
		}
	}
}

// execute dispatches and executes a decoded instruction.
func (e *Emulator) execute(pc uint32, word uint32, inst *insts.Instruction) StepResult {
	next := pc + 4

	switch inst.Format {
	case insts.FormatBranch:
		outcome, _ := e.branchUnit.Resolve(word, pc)
		if inst.Link {
			e.regFile.WriteReg(RegRA, int32(next))
		}
		if outcome.Taken {
			next = uint32(outcome.Target)
		}
	case insts.FormatJ:
		if inst.Link {
			e.regFile.WriteReg(RegRA, int32(next))
		}
		next = (next & 0xF0000000) | inst.Target<<2
	case insts.FormatR:
		switch inst.Op {
		case insts.OpJR:
			next = uint32(e.regFile.ReadReg(inst.Rs))
		case insts.OpJALR:
			target := uint32(e.regFile.ReadReg(inst.Rs))
			e.regFile.WriteReg(inst.Rd, int32(next))
			next = target
		case insts.OpSYSCALL:
			result := e.syscallHandler.Handle()
			if result.Err != nil {
				return StepResult{Err: fmt.Errorf("%w at PC=0x%X", result.Err, pc)}
			}
			if result.Exited {
				return StepResult{Exited: true, ExitCode: result.ExitCode}
			}
		case insts.OpBREAK:
			return StepResult{
				Exited:   true,
				ExitCode: -1,
				Err:      fmt.Errorf("break trap at PC=0x%X", pc),
			}
		default:
			e.alu.ExecuteR(inst)
		}
	case insts.FormatI:
		if !e.alu.ExecuteI(inst) {
			e.lsu.Execute(inst)
		}
	default:
		return StepResult{
			Err: fmt.Errorf("unknown instruction 0x%08X at PC=0x%X", word, pc),
		}
	}

	e.regFile.PC = next
	return StepResult{}
}
