package bht_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bhtsim/timing/bht"
)

var _ = Describe("Table", func() {
	var table *bht.Table

	BeforeEach(func() {
		var err error
		table, err = bht.NewTable(bht.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Default configuration", func() {
		It("should use 16 one-bit-history entries biased not-taken", func() {
			config := bht.DefaultConfig()
			Expect(config.NumEntries).To(Equal(16))
			Expect(config.HistoryLength).To(Equal(1))
			Expect(config.InitialBias).To(BeFalse())

			Expect(table.NumEntries()).To(Equal(16))
			Expect(table.HistoryLength()).To(Equal(1))
			Expect(table.InitialBias()).To(BeFalse())
		})
	})

	Describe("Configure", func() {
		It("should recreate every entry", func() {
			Expect(table.UpdateAt(2, true)).To(Succeed())

			Expect(table.Configure(8, 2, true)).To(Succeed())

			Expect(table.NumEntries()).To(Equal(8))
			for i := 0; i < 8; i++ {
				e, err := table.Entry(i)
				Expect(err).NotTo(HaveOccurred())
				Expect(e.History()).To(Equal([]bool{true, true}))
				Expect(e.Predict()).To(BeTrue())
				Expect(e.Correct() + e.Incorrect()).To(BeZero())
			}
		})

		DescribeTable("rejects bad shapes",
			func(numEntries, historyLength int) {
				err := table.Configure(numEntries, historyLength, false)
				Expect(err).To(MatchError(bht.ErrConfiguration))
			},
			Entry("zero entries", 0, 1),
			Entry("negative entries", -16, 1),
			Entry("non power of two", 12, 1),
			Entry("history zero", 16, 0),
			Entry("history three", 16, 3),
		)

		It("should leave the table untouched on error", func() {
			Expect(table.UpdateAt(1, true)).To(Succeed())

			Expect(table.Configure(3, 1, true)).NotTo(Succeed())

			Expect(table.NumEntries()).To(Equal(16))
			e, err := table.Entry(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Incorrect()).To(Equal(uint64(1)))
		})

		It("should reject bad shapes at construction", func() {
			_, err := bht.NewTable(bht.Config{NumEntries: 10, HistoryLength: 1})
			Expect(err).To(MatchError(bht.ErrConfiguration))
		})

		It("should accept a single entry", func() {
			Expect(table.Configure(1, 1, false)).To(Succeed())
			idx, err := table.IndexFor(0x12345678)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx).To(Equal(0))
		})
	})

	Describe("Reset", func() {
		It("should clear entries but keep the shape", func() {
			Expect(table.Configure(4, 2, true)).To(Succeed())
			Expect(table.UpdateAt(0, false)).To(Succeed())

			table.Reset()

			Expect(table.Config()).To(Equal(bht.Config{NumEntries: 4, HistoryLength: 2, InitialBias: true}))
			e, _ := table.Entry(0)
			Expect(e.Incorrect()).To(BeZero())
		})
	})

	Describe("IndexFor", func() {
		It("should use the word index modulo the table size", func() {
			idx, err := table.IndexFor(0x0040000C)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx).To(Equal(3))
		})

		It("should alias addresses 4*N bytes apart", func() {
			for _, n := range []int{1, 2, 16, 256} {
				Expect(table.Configure(n, 1, false)).To(Succeed())
				for a := int64(0); a < 4096; a += 3 {
					i1, err := table.IndexFor(a)
					Expect(err).NotTo(HaveOccurred())
					i2, err := table.IndexFor(a + 4*int64(n))
					Expect(err).NotTo(HaveOccurred())
					Expect(i1).To(Equal(i2))
				}
			}
		})

		It("should reject negative addresses", func() {
			_, err := table.IndexFor(-4)
			Expect(err).To(MatchError(bht.ErrRange))
		})

		It("should report a table that was never configured", func() {
			var empty bht.Table
			_, err := empty.IndexFor(0x00400000)
			Expect(err).To(MatchError(bht.ErrConfiguration))
		})
	})

	Describe("Entry access", func() {
		It("should delegate predictions and updates", func() {
			Expect(table.UpdateAt(5, true)).To(Succeed())

			taken, err := table.PredictionAt(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeTrue())

			taken, err = table.PredictionAt(6)
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeFalse())
		})

		It("should reject out-of-range indices", func() {
			_, err := table.PredictionAt(16)
			Expect(err).To(MatchError(bht.ErrRange))

			Expect(table.UpdateAt(-1, true)).To(MatchError(bht.ErrRange))

			_, err = table.Entry(100)
			Expect(err).To(MatchError(bht.ErrRange))
		})
	})
})
