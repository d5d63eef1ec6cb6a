package emu

import (
	"fmt"
	"io"
)

// MARS syscall numbers, selected by $v0.
const (
	SyscallPrintInt    int32 = 1  // print_int($a0)
	SyscallPrintString int32 = 4  // print_string($a0)
	SyscallExit        int32 = 10 // exit
	SyscallPrintChar   int32 = 11 // print_char($a0)
	SyscallExit2       int32 = 17 // exit2($a0)
)

// maxStringLength bounds print_string on unterminated buffers.
const maxStringLength = 1 << 16

// SyscallResult represents the result of a syscall execution.
type SyscallResult struct {
	// Exited is true if the syscall caused program termination.
	Exited bool

	// ExitCode is the exit status if Exited is true.
	ExitCode int64

	// Err is set for unsupported syscalls.
	Err error
}

// SyscallHandler is the interface for handling MIPS syscalls.
type SyscallHandler interface {
	// Handle executes the syscall indicated by the register file state.
	// MARS convention:
	//   - Syscall number in $v0
	//   - Arguments in $a0-$a3
	Handle() SyscallResult
}

// DefaultSyscallHandler implements the MARS console and exit syscalls.
type DefaultSyscallHandler struct {
	regFile *RegFile
	memory  *Memory
	stdout  io.Writer
}

// NewDefaultSyscallHandler creates a default syscall handler.
func NewDefaultSyscallHandler(regFile *RegFile, memory *Memory, stdout io.Writer) *DefaultSyscallHandler {
	return &DefaultSyscallHandler{
		regFile: regFile,
		memory:  memory,
		stdout:  stdout,
	}
}

// Handle executes the syscall indicated by the register file state.
func (h *DefaultSyscallHandler) Handle() SyscallResult {
	num := h.regFile.ReadReg(RegV0)
	arg := h.regFile.ReadReg(RegA0)

	switch num {
	case SyscallPrintInt:
		_, _ = fmt.Fprintf(h.stdout, "%d", arg)
	case SyscallPrintString:
		_, _ = io.WriteString(h.stdout, h.memory.ReadString(uint32(arg), maxStringLength))
	case SyscallPrintChar:
		_, _ = h.stdout.Write([]byte{byte(arg)})
	case SyscallExit:
		return SyscallResult{Exited: true, ExitCode: 0}
	case SyscallExit2:
		return SyscallResult{Exited: true, ExitCode: int64(arg)}
	default:
		return SyscallResult{Err: fmt.Errorf("unsupported syscall %d", num)}
	}

	return SyscallResult{}
}
