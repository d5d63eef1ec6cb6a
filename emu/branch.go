package emu

import "github.com/sarchlab/bhtsim/insts"

// Outcome is the resolved behavior of a conditional branch.
type Outcome struct {
	// Taken reports whether the branch transfers control.
	Taken bool
	// Target is the absolute target address. It is signed because the
	// predictor models addresses as signed 32-bit values.
	Target int64
}

// SignExtend16 sign-extends the low 16 bits of v.
func SignExtend16(v uint32) int64 {
	return int64(int16(v & 0xFFFF))
}

// SignedAddress interprets a 32-bit address as a signed value, the way the
// predictor table indexes addresses.
func SignedAddress(address uint32) int64 {
	return int64(int32(address))
}

// BranchTarget computes the target of a branch at address: the 16-bit word
// offset is relative to the instruction after the branch.
func BranchTarget(word uint32, address uint32) int64 {
	return SignedAddress(address) + SignExtend16(word)<<2 + 4
}

// Evaluate computes whether a classified branch is taken and where it goes,
// given the values of its rs and rt registers at fetch time.
//
// bgtz and bgtzl take the branch only for strictly positive rs.
func Evaluate(kind insts.BranchKind, word uint32, address uint32, rs, rt int32) Outcome {
	var taken bool

	switch kind {
	case insts.BranchLTZ:
		taken = rs < 0
	case insts.BranchGEZ:
		taken = rs >= 0
	case insts.BranchEQ:
		taken = rs == rt
	case insts.BranchNE:
		taken = rs != rt
	case insts.BranchLEZ:
		taken = rs <= 0
	case insts.BranchGTZ:
		taken = rs > 0
	}

	return Outcome{
		Taken:  taken,
		Target: BranchTarget(word, address),
	}
}

// RegisterReader serves synchronous reads of the register file.
type RegisterReader interface {
	ReadRegister(index int) int32
}

// BranchUnit evaluates conditional branches against a live register file.
type BranchUnit struct {
	regs RegisterReader
}

// NewBranchUnit creates a new BranchUnit connected to the given registers.
func NewBranchUnit(regs RegisterReader) *BranchUnit {
	return &BranchUnit{regs: regs}
}

// Resolve classifies word and, if it is a supported branch, evaluates it.
// Each source register the comparison uses is read exactly once; rt is not
// read for comparisons against zero.
func (b *BranchUnit) Resolve(word uint32, address uint32) (Outcome, bool) {
	kind, ok := insts.Classify(word)
	if !ok {
		return Outcome{}, false
	}

	rsIdx, rtIdx := insts.SourceRegisters(word)
	rs := b.regs.ReadRegister(int(rsIdx))

	var rt int32
	if kind.UsesRt() {
		rt = b.regs.ReadRegister(int(rtIdx))
	}

	return Evaluate(kind, word, address, rs, rt), true
}
