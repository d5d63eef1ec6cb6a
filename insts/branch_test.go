package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bhtsim/insts"
)

var _ = Describe("Classify", func() {
	DescribeTable("supported branches",
		func(word uint32, expected insts.BranchKind) {
			kind, ok := insts.Classify(word)
			Expect(ok).To(BeTrue())
			Expect(kind).To(Equal(expected))
		},
		Entry("beq", uint32(0x10850003), insts.BranchEQ),
		Entry("bne", uint32(0x1422FFFF), insts.BranchNE),
		Entry("blez", uint32(0x18600008), insts.BranchLEZ),
		Entry("bgtz", uint32(0x1C600008), insts.BranchGTZ),
		Entry("beql", uint32(0x50850003), insts.BranchEQ),
		Entry("bnel", uint32(0x5422FFFF), insts.BranchNE),
		Entry("blezl", uint32(0x58600008), insts.BranchLEZ),
		Entry("bgtzl", uint32(0x5C600008), insts.BranchGTZ),
		Entry("bltz", uint32(0x04A00000), insts.BranchLTZ),
		Entry("bgez", uint32(0x04A00001), insts.BranchGEZ),
		Entry("bltzl", uint32(0x04A00002), insts.BranchLTZ),
		Entry("bgezl", uint32(0x04A00003), insts.BranchGEZ),
		Entry("regimm 0x04", uint32(0x04A00004), insts.BranchLTZ),
		Entry("regimm 0x07", uint32(0x04A00007), insts.BranchGEZ),
		Entry("bltzal", uint32(0x04A00010), insts.BranchLTZ),
		Entry("bgezal", uint32(0x04A00011), insts.BranchGEZ),
		Entry("bltzall", uint32(0x04A00012), insts.BranchLTZ),
		Entry("bgezall", uint32(0x04A00013), insts.BranchGEZ),
	)

	DescribeTable("non-branches",
		func(word uint32) {
			kind, ok := insts.Classify(word)
			Expect(ok).To(BeFalse())
			Expect(kind).To(Equal(insts.BranchNone))
		},
		Entry("add", uint32(0x00221820)),
		Entry("addi", uint32(0x20080005)),
		Entry("j", uint32(0x08100000)),
		Entry("jal", uint32(0x0C100000)),
		Entry("regimm 0x08", uint32(0x04A00008)),
		Entry("regimm 0x0F", uint32(0x04A0000F)),
		Entry("regimm 0x14", uint32(0x04A00014)),
		Entry("regimm 0x3F", uint32(0x04A0003F)),
		Entry("lw", uint32(0x8FA80004)),
	)

	It("should report which kinds read rt", func() {
		Expect(insts.BranchEQ.UsesRt()).To(BeTrue())
		Expect(insts.BranchNE.UsesRt()).To(BeTrue())
		Expect(insts.BranchLEZ.UsesRt()).To(BeFalse())
		Expect(insts.BranchGEZ.UsesRt()).To(BeFalse())
	})

	It("should extract source registers", func() {
		rs, rt := insts.SourceRegisters(0x10850003)
		Expect(rs).To(Equal(uint8(4)))
		Expect(rt).To(Equal(uint8(5)))
	})
})
