// Package insts provides MIPS32 instruction definitions and decoding.
//
// This package implements decoding of MIPS machine code into structured
// instruction representations. It supports:
//   - R-type ALU, shift, and jump-register instructions
//   - I-type ALU, load/store, and conditional branch instructions
//   - J-type jumps (J, JAL)
//   - The REGIMM branch family (BLTZ, BGEZ and their likely/link variants)
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x10850003) // BEQ $4, $5, 3
//	fmt.Printf("Op: %v, Rs: %d, Rt: %d, Imm: %d\n", inst.Op, inst.Rs, inst.Rt, inst.SImm)
//
// Classify answers the narrower question the branch predictor asks: is a
// word one of the supported conditional branches, and which comparison does
// it perform.
package insts
