package insts

// BranchKind is the comparison a conditional branch performs on its source
// registers.
type BranchKind uint8

// Branch kinds.
const (
	BranchNone BranchKind = iota
	BranchLTZ             // rs < 0
	BranchGEZ             // rs >= 0
	BranchEQ              // rs == rt
	BranchNE              // rs != rt
	BranchLEZ             // rs <= 0
	BranchGTZ             // rs > 0
)

// String returns a short name for the comparison.
func (k BranchKind) String() string {
	switch k {
	case BranchLTZ:
		return "ltz"
	case BranchGEZ:
		return "gez"
	case BranchEQ:
		return "eq"
	case BranchNE:
		return "ne"
	case BranchLEZ:
		return "lez"
	case BranchGTZ:
		return "gtz"
	default:
		return "none"
	}
}

// UsesRt reports whether the comparison reads the rt register.
func (k BranchKind) UsesRt() bool {
	return k == BranchEQ || k == BranchNE
}

// Classify decides whether word encodes a supported conditional branch and,
// if so, which comparison it performs.
//
// Opcode 0x01 (REGIMM) is a branch when bits [5:0] are in 0x00-0x07 or
// 0x10-0x13; an even sub-function compares rs < 0 and an odd one rs >= 0.
// Opcodes 0x04-0x07 and their likely forms 0x14-0x17 are beq, bne, blez and
// bgtz.
func Classify(word uint32) (BranchKind, bool) {
	opcode := word >> 26

	switch opcode {
	case opcodeRegImm:
		funct := word & 0x3F
		if funct > 0x07 && (funct < 0x10 || funct > 0x13) {
			return BranchNone, false
		}
		if funct&0x1 == 0 {
			return BranchLTZ, true
		}
		return BranchGEZ, true
	case opcodeBEQ, opcodeBEQL:
		return BranchEQ, true
	case opcodeBNE, opcodeBNEL:
		return BranchNE, true
	case opcodeBLEZ, opcodeBLEZL:
		return BranchLEZ, true
	case opcodeBGTZ, opcodeBGTZL:
		return BranchGTZ, true
	}

	return BranchNone, false
}

// SourceRegisters returns the rs and rt register numbers of a word.
func SourceRegisters(word uint32) (rs, rt uint8) {
	return uint8((word >> 21) & 0x1F), uint8((word >> 16) & 0x1F)
}
