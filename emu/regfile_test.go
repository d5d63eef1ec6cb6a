package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bhtsim/emu"
)

var _ = Describe("RegFile", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = &emu.RegFile{}
	})

	It("should read back written values", func() {
		regFile.WriteReg(8, -42)
		Expect(regFile.ReadReg(8)).To(Equal(int32(-42)))
		Expect(regFile.ReadRegister(8)).To(Equal(int32(-42)))
	})

	It("should hard-wire $zero", func() {
		regFile.WriteReg(0, 99)
		Expect(regFile.ReadReg(0)).To(Equal(int32(0)))
	})

	It("should read out-of-range indices as zero", func() {
		Expect(regFile.ReadRegister(-1)).To(Equal(int32(0)))
		Expect(regFile.ReadRegister(32)).To(Equal(int32(0)))
	})
})

var _ = Describe("Memory", func() {
	It("should store words little-endian by default", func() {
		memory := emu.NewMemory()
		memory.Write32(0x100, 0x11223344)

		Expect(memory.Read8(0x100)).To(Equal(byte(0x44)))
		Expect(memory.Read32(0x100)).To(Equal(uint32(0x11223344)))
	})

	It("should read unwritten memory as zero", func() {
		memory := emu.NewMemory()
		Expect(memory.Read32(0xDEAD0000)).To(Equal(uint32(0)))
	})

	It("should read NUL-terminated strings", func() {
		memory := emu.NewMemory()
		memory.LoadProgram(0x200, []byte("hi\x00there"))

		Expect(memory.ReadString(0x200, 100)).To(Equal("hi"))
		Expect(memory.ReadString(0x203, 3)).To(Equal("the"))
	})
})
