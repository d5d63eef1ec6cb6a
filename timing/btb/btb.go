// Package btb provides a direct-mapped Branch Target Buffer built on the
// Akita cache directory.
package btb

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

const (
	// instructionSize is the block size of the directory: one slot per word.
	instructionSize = 4
	// ways is 1: the buffer is direct-mapped.
	ways = 1
)

// Statistics holds BTB lookup statistics.
type Statistics struct {
	Lookups uint64
	Hits    uint64
	Misses  uint64
	Inserts uint64
	// Replacements counts inserts that evicted another branch's target.
	Replacements uint64
}

// HitRate returns the hit rate as a percentage.
func (s Statistics) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups) * 100
}

// BTB maps branch addresses to their last taken target. Each address maps
// to exactly one slot; the full address is kept as the tag.
type BTB struct {
	size      int
	directory *akitacache.DirectoryImpl
	targets   []uint32
	stats     Statistics
}

// New creates a BTB with size slots. Size must be a power of 2.
func New(size int) (*BTB, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("btb size %d is not a positive power of two", size)
	}

	return &BTB{
		size: size,
		directory: akitacache.NewDirectory(
			size,
			ways,
			instructionSize,
			akitacache.NewLRUVictimFinder(),
		),
		targets: make([]uint32, size),
	}, nil
}

// Size returns the number of slots.
func (b *BTB) Size() int {
	return b.size
}

// Stats returns lookup statistics.
func (b *BTB) Stats() Statistics {
	return b.stats
}

func (b *BTB) slot(block *akitacache.Block) int {
	return block.SetID*ways + block.WayID
}

func alignedAddr(address uint32) uint64 {
	return uint64(address &^ (instructionSize - 1))
}

// Lookup returns the buffered target for the branch at address.
func (b *BTB) Lookup(address uint32) (uint32, bool) {
	b.stats.Lookups++

	block := b.directory.Lookup(0, alignedAddr(address))
	if block == nil || !block.IsValid {
		b.stats.Misses++
		return 0, false
	}

	b.stats.Hits++
	b.directory.Visit(block)
	return b.targets[b.slot(block)], true
}

// Insert records target as the destination of the branch at address,
// replacing whatever branch shared its slot.
func (b *BTB) Insert(address uint32, target uint32) {
	addr := alignedAddr(address)
	b.stats.Inserts++

	block := b.directory.Lookup(0, addr)
	if block == nil || !block.IsValid {
		block = b.directory.FindVictim(addr)
		if block == nil {
			return
		}
		if block.IsValid {
			b.stats.Replacements++
		}
		block.Tag = addr
		block.IsValid = true
	}

	b.targets[b.slot(block)] = target
	b.directory.Visit(block)
}

// Reset invalidates every slot and clears statistics.
func (b *BTB) Reset() {
	b.directory.Reset()
	for i := range b.targets {
		b.targets[i] = 0
	}
	b.stats = Statistics{}
}
