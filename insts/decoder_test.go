package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bhtsim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("Conditional branches", func() {
		// BEQ $4, $5, 3      -> 0x10850003
		// Encoding: 000100 | rs=4 | rt=5 | imm16=3
		It("should decode BEQ $4, $5, 3", func() {
			inst := decoder.Decode(0x10850003)

			Expect(inst.Op).To(Equal(insts.OpBEQ))
			Expect(inst.Format).To(Equal(insts.FormatBranch))
			Expect(inst.Kind).To(Equal(insts.BranchEQ))
			Expect(inst.Rs).To(Equal(uint8(4)))
			Expect(inst.Rt).To(Equal(uint8(5)))
			Expect(inst.SImm).To(Equal(int32(3)))
			Expect(inst.IsBranch()).To(BeTrue())
		})

		// BNE $1, $2, -1     -> 0x1422FFFF
		It("should decode BNE with a negative offset", func() {
			inst := decoder.Decode(0x1422FFFF)

			Expect(inst.Op).To(Equal(insts.OpBNE))
			Expect(inst.Kind).To(Equal(insts.BranchNE))
			Expect(inst.SImm).To(Equal(int32(-1)))
			Expect(inst.Imm).To(Equal(uint16(0xFFFF)))
		})

		It("should decode the likely variants", func() {
			inst := decoder.Decode(0x5C600008) // BGTZL $3, 8

			Expect(inst.Op).To(Equal(insts.OpBGTZL))
			Expect(inst.Kind).To(Equal(insts.BranchGTZ))
		})

		It("should decode REGIMM link variants", func() {
			inst := decoder.Decode(0x04A00011) // BGEZAL $5

			Expect(inst.Op).To(Equal(insts.OpBGEZAL))
			Expect(inst.Kind).To(Equal(insts.BranchGEZ))
			Expect(inst.Link).To(BeTrue())
		})

		It("should decode REGIMM likely link variants", func() {
			inst := decoder.Decode(0x04A00012) // BLTZALL $5

			Expect(inst.Op).To(Equal(insts.OpBLTZALL))
			Expect(inst.Link).To(BeTrue())
		})

		It("should accept REGIMM sub-functions without a mnemonic", func() {
			inst := decoder.Decode(0x04A00006)

			Expect(inst.Op).To(Equal(insts.OpREGIMM))
			Expect(inst.Kind).To(Equal(insts.BranchLTZ))
			Expect(inst.Link).To(BeFalse())
		})
	})

	Describe("R-type", func() {
		// ADD $3, $1, $2     -> 0x00221820
		It("should decode ADD $3, $1, $2", func() {
			inst := decoder.Decode(0x00221820)

			Expect(inst.Op).To(Equal(insts.OpADD))
			Expect(inst.Format).To(Equal(insts.FormatR))
			Expect(inst.Rs).To(Equal(uint8(1)))
			Expect(inst.Rt).To(Equal(uint8(2)))
			Expect(inst.Rd).To(Equal(uint8(3)))
		})

		It("should decode SLL with a shift amount", func() {
			inst := decoder.Decode(0x00094080) // SLL $8, $9, 2

			Expect(inst.Op).To(Equal(insts.OpSLL))
			Expect(inst.Rd).To(Equal(uint8(8)))
			Expect(inst.Rt).To(Equal(uint8(9)))
			Expect(inst.Shamt).To(Equal(uint8(2)))
		})

		It("should decode SYSCALL", func() {
			inst := decoder.Decode(0x0000000C)

			Expect(inst.Op).To(Equal(insts.OpSYSCALL))
		})

		It("should leave unknown functs undecoded", func() {
			inst := decoder.Decode(0x00000018) // MULT is not supported

			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Format).To(Equal(insts.FormatUnknown))
		})
	})

	Describe("I-type and J-type", func() {
		It("should decode ADDI $8, $0, 5", func() {
			inst := decoder.Decode(0x20080005)

			Expect(inst.Op).To(Equal(insts.OpADDI))
			Expect(inst.Format).To(Equal(insts.FormatI))
			Expect(inst.Rt).To(Equal(uint8(8)))
			Expect(inst.SImm).To(Equal(int32(5)))
			Expect(inst.IsBranch()).To(BeFalse())
		})

		It("should decode LW $8, 4($29)", func() {
			inst := decoder.Decode(0x8FA80004)

			Expect(inst.Op).To(Equal(insts.OpLW))
			Expect(inst.Rs).To(Equal(uint8(29)))
			Expect(inst.Rt).To(Equal(uint8(8)))
		})

		It("should decode J and JAL", func() {
			j := decoder.Decode(0x08100000)
			Expect(j.Op).To(Equal(insts.OpJ))
			Expect(j.Target).To(Equal(uint32(0x00100000)))

			jal := decoder.Decode(0x0C100000)
			Expect(jal.Op).To(Equal(insts.OpJAL))
			Expect(jal.Link).To(BeTrue())
		})
	})

	It("should print mnemonics", func() {
		Expect(insts.OpBGEZALL.String()).To(Equal("bgezall"))
		Expect(insts.Op(9999).String()).To(Equal("unknown"))
	})
})
