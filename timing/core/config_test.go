package core_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bhtsim/timing/bht"
	"github.com/sarchlab/bhtsim/timing/core"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should default to a 16-entry one-bit table without a BTB", func() {
		config := core.DefaultConfig()

		Expect(config.BHT).To(Equal(bht.Config{NumEntries: 16, HistoryLength: 1, InitialBias: false}))
		Expect(config.BTBSize).To(BeZero())
		Expect(config.MaxInstructions).To(BeZero())
		Expect(config.Validate()).To(Succeed())
	})

	It("should save and load", func() {
		config := core.DefaultConfig()
		config.BHT.NumEntries = 64
		config.BHT.HistoryLength = 2
		config.BHT.InitialBias = true
		config.BTBSize = 32
		path := filepath.Join(dir, "bht.json")

		Expect(config.SaveConfig(path)).To(Succeed())
		loaded, err := core.LoadConfig(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(config))
	})

	It("should keep defaults for fields missing from the file", func() {
		path := filepath.Join(dir, "partial.json")
		Expect(os.WriteFile(path, []byte(`{"btb_size": 8}`), 0644)).To(Succeed())

		loaded, err := core.LoadConfig(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.BTBSize).To(Equal(8))
		Expect(loaded.BHT).To(Equal(bht.DefaultConfig()))
	})

	It("should fail on a missing file", func() {
		_, err := core.LoadConfig(filepath.Join(dir, "missing.json"))
		Expect(err).To(MatchError(ContainSubstring("failed to read config file")))
	})

	It("should fail on malformed JSON", func() {
		path := filepath.Join(dir, "bad.json")
		Expect(os.WriteFile(path, []byte(`{"bht": `), 0644)).To(Succeed())

		_, err := core.LoadConfig(path)
		Expect(err).To(MatchError(ContainSubstring("failed to parse config")))
	})

	DescribeTable("Validate rejects",
		func(mutate func(*core.Config)) {
			config := core.DefaultConfig()
			mutate(config)
			Expect(config.Validate()).To(MatchError(bht.ErrConfiguration))
		},
		Entry("a non power-of-two table", func(c *core.Config) { c.BHT.NumEntries = 24 }),
		Entry("a long history", func(c *core.Config) { c.BHT.HistoryLength = 4 }),
		Entry("a non power-of-two BTB", func(c *core.Config) { c.BTBSize = 3 }),
		Entry("a negative BTB", func(c *core.Config) { c.BTBSize = -8 }),
	)

	It("should clone independently", func() {
		config := core.DefaultConfig()
		clone := config.Clone()
		clone.BHT.NumEntries = 1024

		Expect(config.BHT.NumEntries).To(Equal(16))
	})
})
