package loader_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bhtsim/emu"
	"github.com/sarchlab/bhtsim/loader"
)

var _ = Describe("Hex Loader", func() {
	It("should parse one word per line", func() {
		prog, err := loader.ParseHex(strings.NewReader(
			"20080003\n0x2108ffff\n\n# loop back\n1500fffe  # bne\n"), emu.DefaultTextBase)

		Expect(err).NotTo(HaveOccurred())
		Expect(prog.EntryPoint).To(Equal(emu.DefaultTextBase))

		memory := prog.NewMemory()
		Expect(memory.Read32(0x00400000)).To(Equal(uint32(0x20080003)))
		Expect(memory.Read32(0x00400004)).To(Equal(uint32(0x2108FFFF)))
		Expect(memory.Read32(0x00400008)).To(Equal(uint32(0x1500FFFE)))
	})

	It("should report the offending line", func() {
		_, err := loader.ParseHex(strings.NewReader("20080003\nnothex\n"), 0)
		Expect(err).To(MatchError(ContainSubstring("line 2")))
	})

	It("should reject an empty dump", func() {
		_, err := loader.ParseHex(strings.NewReader("# nothing\n"), 0)
		Expect(err).To(MatchError(ContainSubstring("no instructions")))
	})

	It("should be the fallback format of Load", func() {
		path := filepath.Join(GinkgoT().TempDir(), "prog.hex")
		Expect(os.WriteFile(path, []byte("0000000c\n"), 0644)).To(Succeed())

		prog, err := loader.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Segments).To(HaveLen(1))
		Expect(prog.Segments[0].Data).To(HaveLen(4))
	})
})
