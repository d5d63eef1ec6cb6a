// Package emu provides functional MIPS32 emulation.
package emu

// Conventional MIPS register numbers.
const (
	RegZero = 0
	RegV0   = 2
	RegA0   = 4
	RegSP   = 29
	RegRA   = 31
)

// RegFile represents the MIPS register file.
// It contains 32 general-purpose registers and the program counter.
type RegFile struct {
	// R holds general-purpose registers $0-$31.
	// R[0] is the zero register which always reads as 0.
	R [32]int32

	// PC is the program counter.
	PC uint32
}

// ReadReg reads a register value. Register 0 and registers >= 32 return 0.
func (r *RegFile) ReadReg(reg uint8) int32 {
	if reg == RegZero || reg >= 32 {
		return 0
	}
	return r.R[reg]
}

// WriteReg writes a value to a register. Writes to $zero are ignored.
func (r *RegFile) WriteReg(reg uint8, value int32) {
	if reg == RegZero || reg >= 32 {
		return
	}
	r.R[reg] = value
}

// ReadRegister serves the synchronous register reads a branch predictor
// issues at fetch time.
func (r *RegFile) ReadRegister(index int) int32 {
	if index < 0 || index >= 32 {
		return 0
	}
	return r.ReadReg(uint8(index))
}
