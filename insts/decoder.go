package insts

// Op represents a MIPS operation.
type Op uint16

// MIPS operations.
const (
	OpUnknown Op = iota

	// R-type
	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV
	OpJR
	OpJALR
	OpSYSCALL
	OpBREAK
	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpAND
	OpOR
	OpXOR
	OpNOR
	OpSLT
	OpSLTU

	// I-type
	OpADDI
	OpADDIU
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpLUI
	OpLB
	OpLBU
	OpLW
	OpSB
	OpSW

	// J-type
	OpJ
	OpJAL

	// Conditional branches
	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ
	OpBEQL
	OpBNEL
	OpBLEZL
	OpBGTZL
	OpBLTZ
	OpBGEZ
	OpBLTZL
	OpBGEZL
	OpBLTZAL
	OpBGEZAL
	OpBLTZALL
	OpBGEZALL
	// OpREGIMM covers the REGIMM sub-functions 0x04-0x07, which are accepted
	// as branches but have no standard mnemonic.
	OpREGIMM
)

var opNames = map[Op]string{
	OpUnknown: "unknown",
	OpSLL:     "sll", OpSRL: "srl", OpSRA: "sra",
	OpSLLV: "sllv", OpSRLV: "srlv", OpSRAV: "srav",
	OpJR: "jr", OpJALR: "jalr", OpSYSCALL: "syscall", OpBREAK: "break",
	OpADD: "add", OpADDU: "addu", OpSUB: "sub", OpSUBU: "subu",
	OpAND: "and", OpOR: "or", OpXOR: "xor", OpNOR: "nor",
	OpSLT: "slt", OpSLTU: "sltu",
	OpADDI: "addi", OpADDIU: "addiu", OpSLTI: "slti", OpSLTIU: "sltiu",
	OpANDI: "andi", OpORI: "ori", OpXORI: "xori", OpLUI: "lui",
	OpLB: "lb", OpLBU: "lbu", OpLW: "lw", OpSB: "sb", OpSW: "sw",
	OpJ: "j", OpJAL: "jal",
	OpBEQ: "beq", OpBNE: "bne", OpBLEZ: "blez", OpBGTZ: "bgtz",
	OpBEQL: "beql", OpBNEL: "bnel", OpBLEZL: "blezl", OpBGTZL: "bgtzl",
	OpBLTZ: "bltz", OpBGEZ: "bgez", OpBLTZL: "bltzl", OpBGEZL: "bgezl",
	OpBLTZAL: "bltzal", OpBGEZAL: "bgezal",
	OpBLTZALL: "bltzall", OpBGEZALL: "bgezall",
	OpREGIMM: "regimm",
}

// String returns the assembler mnemonic of the operation.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "unknown"
}

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // opcode 0, operation selected by funct
	FormatI              // 16-bit immediate
	FormatJ              // 26-bit jump target
	FormatBranch         // conditional branch with 16-bit word offset
)

// Primary opcodes, bits [31:26].
const (
	opcodeSpecial = 0x00
	opcodeRegImm  = 0x01
	opcodeJ       = 0x02
	opcodeJAL     = 0x03
	opcodeBEQ     = 0x04
	opcodeBNE     = 0x05
	opcodeBLEZ    = 0x06
	opcodeBGTZ    = 0x07
	opcodeADDI    = 0x08
	opcodeADDIU   = 0x09
	opcodeSLTI    = 0x0A
	opcodeSLTIU   = 0x0B
	opcodeANDI    = 0x0C
	opcodeORI     = 0x0D
	opcodeXORI    = 0x0E
	opcodeLUI     = 0x0F
	opcodeBEQL    = 0x14
	opcodeBNEL    = 0x15
	opcodeBLEZL   = 0x16
	opcodeBGTZL   = 0x17
	opcodeLB      = 0x20
	opcodeLW      = 0x23
	opcodeLBU     = 0x24
	opcodeSB      = 0x28
	opcodeSW      = 0x2B
)

// Instruction represents a decoded MIPS instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Encoding format

	Opcode uint8 // bits [31:26]
	Rs     uint8 // bits [25:21]
	Rt     uint8 // bits [20:16]
	Rd     uint8 // bits [15:11]
	Shamt  uint8 // bits [10:6]
	Funct  uint8 // bits [5:0]

	Imm  uint16 // bits [15:0], raw
	SImm int32  // bits [15:0], sign-extended

	// Target is the 26-bit J-type instruction index.
	Target uint32

	// Branch fields
	Kind BranchKind // comparison performed by a conditional branch
	Link bool       // writes the return address to $ra
}

// IsBranch reports whether the instruction is a supported conditional branch.
func (inst *Instruction) IsBranch() bool {
	return inst.Format == FormatBranch
}

// Decoder decodes MIPS machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new MIPS instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit MIPS instruction word.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{
		Op:     OpUnknown,
		Format: FormatUnknown,
		Opcode: uint8(word >> 26),
		Rs:     uint8((word >> 21) & 0x1F),
		Rt:     uint8((word >> 16) & 0x1F),
		Rd:     uint8((word >> 11) & 0x1F),
		Shamt:  uint8((word >> 6) & 0x1F),
		Funct:  uint8(word & 0x3F),
		Imm:    uint16(word),
		SImm:   int32(int16(word)),
		Target: word & 0x03FFFFFF,
	}

	if kind, ok := Classify(word); ok {
		d.decodeBranch(word, kind, inst)
		return inst
	}

	switch inst.Opcode {
	case opcodeSpecial:
		d.decodeSpecial(inst)
	case opcodeJ:
		inst.Format = FormatJ
		inst.Op = OpJ
	case opcodeJAL:
		inst.Format = FormatJ
		inst.Op = OpJAL
		inst.Link = true
	default:
		d.decodeImmediate(inst)
	}

	return inst
}

// decodeBranch fills in the branch fields of a classified word.
func (d *Decoder) decodeBranch(word uint32, kind BranchKind, inst *Instruction) {
	inst.Format = FormatBranch
	inst.Kind = kind

	opcode := word >> 26
	if opcode == opcodeRegImm {
		funct := word & 0x3F
		inst.Link = funct&0x10 != 0

		switch funct {
		case 0x00:
			inst.Op = OpBLTZ
		case 0x01:
			inst.Op = OpBGEZ
		case 0x02:
			inst.Op = OpBLTZL
		case 0x03:
			inst.Op = OpBGEZL
		case 0x10:
			inst.Op = OpBLTZAL
		case 0x11:
			inst.Op = OpBGEZAL
		case 0x12:
			inst.Op = OpBLTZALL
		case 0x13:
			inst.Op = OpBGEZALL
		default:
			inst.Op = OpREGIMM
		}
		return
	}

	switch opcode {
	case opcodeBEQ:
		inst.Op = OpBEQ
	case opcodeBNE:
		inst.Op = OpBNE
	case opcodeBLEZ:
		inst.Op = OpBLEZ
	case opcodeBGTZ:
		inst.Op = OpBGTZ
	case opcodeBEQL:
		inst.Op = OpBEQL
	case opcodeBNEL:
		inst.Op = OpBNEL
	case opcodeBLEZL:
		inst.Op = OpBLEZL
	case opcodeBGTZL:
		inst.Op = OpBGTZL
	}
}

// specialOps maps opcode-0 funct values to operations.
var specialOps = map[uint8]Op{
	0x00: OpSLL, 0x02: OpSRL, 0x03: OpSRA,
	0x04: OpSLLV, 0x06: OpSRLV, 0x07: OpSRAV,
	0x08: OpJR, 0x09: OpJALR,
	0x0C: OpSYSCALL, 0x0D: OpBREAK,
	0x20: OpADD, 0x21: OpADDU, 0x22: OpSUB, 0x23: OpSUBU,
	0x24: OpAND, 0x25: OpOR, 0x26: OpXOR, 0x27: OpNOR,
	0x2A: OpSLT, 0x2B: OpSLTU,
}

// decodeSpecial decodes the opcode-0 R-type instructions.
// Format: 000000 | rs | rt | rd | shamt | funct
func (d *Decoder) decodeSpecial(inst *Instruction) {
	op, ok := specialOps[inst.Funct]
	if !ok {
		return
	}
	inst.Format = FormatR
	inst.Op = op
	inst.Link = op == OpJALR
}

// decodeImmediate decodes the I-type ALU and load/store instructions.
// Format: opcode | rs | rt | imm16
func (d *Decoder) decodeImmediate(inst *Instruction) {
	switch inst.Opcode {
	case opcodeADDI:
		inst.Op = OpADDI
	case opcodeADDIU:
		inst.Op = OpADDIU
	case opcodeSLTI:
		inst.Op = OpSLTI
	case opcodeSLTIU:
		inst.Op = OpSLTIU
	case opcodeANDI:
		inst.Op = OpANDI
	case opcodeORI:
		inst.Op = OpORI
	case opcodeXORI:
		inst.Op = OpXORI
	case opcodeLUI:
		inst.Op = OpLUI
	case opcodeLB:
		inst.Op = OpLB
	case opcodeLBU:
		inst.Op = OpLBU
	case opcodeLW:
		inst.Op = OpLW
	case opcodeSB:
		inst.Op = OpSB
	case opcodeSW:
		inst.Op = OpSW
	default:
		return
	}
	inst.Format = FormatI
}
