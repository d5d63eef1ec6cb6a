package emu

import "encoding/binary"

// Memory is a sparse byte-addressable memory.
type Memory struct {
	data  map[uint32]byte
	order binary.ByteOrder
}

// NewMemory creates an empty little-endian memory.
func NewMemory() *Memory {
	return NewMemoryWithOrder(binary.LittleEndian)
}

// NewMemoryWithOrder creates an empty memory that assembles words in the
// given byte order.
func NewMemoryWithOrder(order binary.ByteOrder) *Memory {
	return &Memory{
		data:  make(map[uint32]byte),
		order: order,
	}
}

// ByteOrder returns the byte order used for multi-byte accesses.
func (m *Memory) ByteOrder() binary.ByteOrder {
	return m.order
}

// Read8 reads a byte. Unwritten addresses read as 0.
func (m *Memory) Read8(addr uint32) byte {
	return m.data[addr]
}

// Write8 writes a byte.
func (m *Memory) Write8(addr uint32, value byte) {
	m.data[addr] = value
}

// Read32 reads a 32-bit word.
func (m *Memory) Read32(addr uint32) uint32 {
	var buf [4]byte
	for i := range buf {
		buf[i] = m.data[addr+uint32(i)]
	}
	return m.order.Uint32(buf[:])
}

// Write32 writes a 32-bit word.
func (m *Memory) Write32(addr uint32, value uint32) {
	var buf [4]byte
	m.order.PutUint32(buf[:], value)
	for i, b := range buf {
		m.data[addr+uint32(i)] = b
	}
}

// LoadProgram copies raw bytes into memory starting at addr.
func (m *Memory) LoadProgram(addr uint32, program []byte) {
	for i, b := range program {
		m.data[addr+uint32(i)] = b
	}
}

// LoadWords writes consecutive instruction words starting at addr.
func (m *Memory) LoadWords(addr uint32, words []uint32) {
	for i, w := range words {
		m.Write32(addr+uint32(4*i), w)
	}
}

// ReadString reads a NUL-terminated string starting at addr, stopping after
// limit bytes.
func (m *Memory) ReadString(addr uint32, limit int) string {
	buf := make([]byte, 0, 32)
	for i := 0; i < limit; i++ {
		b := m.data[addr+uint32(i)]
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}
