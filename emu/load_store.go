package emu

import "github.com/sarchlab/bhtsim/insts"

// LoadStoreUnit implements MIPS load and store operations.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// Execute performs a load or store: the effective address is rs + imm.
// Returns false if the operation is not a memory operation.
func (lsu *LoadStoreUnit) Execute(inst *insts.Instruction) bool {
	addr := uint32(lsu.regFile.ReadReg(inst.Rs) + inst.SImm)

	switch inst.Op {
	case insts.OpLW:
		lsu.regFile.WriteReg(inst.Rt, int32(lsu.memory.Read32(addr)))
	case insts.OpLB:
		lsu.regFile.WriteReg(inst.Rt, int32(int8(lsu.memory.Read8(addr))))
	case insts.OpLBU:
		lsu.regFile.WriteReg(inst.Rt, int32(lsu.memory.Read8(addr)))
	case insts.OpSW:
		lsu.memory.Write32(addr, uint32(lsu.regFile.ReadReg(inst.Rt)))
	case insts.OpSB:
		lsu.memory.Write8(addr, byte(lsu.regFile.ReadReg(inst.Rt)))
	default:
		return false
	}

	return true
}
