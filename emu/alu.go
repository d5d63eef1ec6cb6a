package emu

import "github.com/sarchlab/bhtsim/insts"

// ALU implements MIPS arithmetic, logic, and shift operations.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// ExecuteR performs an R-type ALU or shift operation: rd = rs op rt.
// Returns false if the operation is not an ALU operation.
func (a *ALU) ExecuteR(inst *insts.Instruction) bool {
	rs := a.regFile.ReadReg(inst.Rs)
	rt := a.regFile.ReadReg(inst.Rt)

	var result int32
	switch inst.Op {
	case insts.OpSLL:
		result = int32(uint32(rt) << inst.Shamt)
	case insts.OpSRL:
		result = int32(uint32(rt) >> inst.Shamt)
	case insts.OpSRA:
		result = rt >> inst.Shamt
	case insts.OpSLLV:
		result = int32(uint32(rt) << (uint32(rs) & 0x1F))
	case insts.OpSRLV:
		result = int32(uint32(rt) >> (uint32(rs) & 0x1F))
	case insts.OpSRAV:
		result = rt >> (uint32(rs) & 0x1F)
	case insts.OpADD, insts.OpADDU:
		result = rs + rt
	case insts.OpSUB, insts.OpSUBU:
		result = rs - rt
	case insts.OpAND:
		result = rs & rt
	case insts.OpOR:
		result = rs | rt
	case insts.OpXOR:
		result = rs ^ rt
	case insts.OpNOR:
		result = ^(rs | rt)
	case insts.OpSLT:
		result = boolToInt32(rs < rt)
	case insts.OpSLTU:
		result = boolToInt32(uint32(rs) < uint32(rt))
	default:
		return false
	}

	a.regFile.WriteReg(inst.Rd, result)
	return true
}

// ExecuteI performs an I-type ALU operation: rt = rs op imm.
// Returns false if the operation is not an ALU operation.
func (a *ALU) ExecuteI(inst *insts.Instruction) bool {
	rs := a.regFile.ReadReg(inst.Rs)
	zimm := int32(inst.Imm)

	var result int32
	switch inst.Op {
	case insts.OpADDI, insts.OpADDIU:
		result = rs + inst.SImm
	case insts.OpSLTI:
		result = boolToInt32(rs < inst.SImm)
	case insts.OpSLTIU:
		result = boolToInt32(uint32(rs) < uint32(inst.SImm))
	case insts.OpANDI:
		result = rs & zimm
	case insts.OpORI:
		result = rs | zimm
	case insts.OpXORI:
		result = rs ^ zimm
	case insts.OpLUI:
		result = int32(uint32(inst.Imm) << 16)
	default:
		return false
	}

	a.regFile.WriteReg(inst.Rt, result)
	return true
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
