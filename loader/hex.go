package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/bhtsim/emu"
)

// ParseHex reads a text segment dumped as hexadecimal text, one 32-bit word
// per line, and places it at base. Blank lines and '#' comments are skipped;
// an optional 0x prefix is accepted.
func ParseHex(r io.Reader, base uint32) (*Program, error) {
	var words []uint32

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")

		word, err := strconv.ParseUint(text, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid instruction word %q: %w", line, text, err)
		}
		words = append(words, uint32(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hex dump: %w", err)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("hex dump contains no instructions")
	}

	data := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(data[4*i:], w)
	}

	return &Program{
		EntryPoint: base,
		InitialSP:  emu.DefaultStackPointer,
		ByteOrder:  binary.LittleEndian,
		Segments: []Segment{{
			VirtAddr: base,
			Data:     data,
			MemSize:  uint32(len(data)),
			Flags:    SegmentFlagRead | SegmentFlagExecute,
		}},
	}, nil
}
