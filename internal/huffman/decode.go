package huffman

import (
	"fmt"

	"github.com/deepteams/lz4huf/internal/bitio"
)

// Decode reverses Encode output produced with both headers enabled. It
// decodes exactly unpackedSize symbols and ignores the padding bits; the
// wasted-bits field is informational only.
func Decode(data []byte) ([]byte, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	if h.unpackedSize == 0 {
		return []byte{}, nil
	}
	// Every symbol consumes at least one payload bit.
	if h.unpackedSize > len(h.payload)*8 {
		return nil, fmt.Errorf("%w: %d symbols cannot fit in %d payload bytes", ErrMalformed, h.unpackedSize, len(h.payload))
	}
	out := make([]byte, 0, h.unpackedSize)

	br := bitio.NewReader(h.payload)

	// Canonical walk: grow the code one bit at a time; once the code falls
	// inside the range of codes with the current length, its offset from
	// the first code of that length indexes the sorted symbol table.
	code := uint32(0)
	codeSize := 0
	firstCodeAtLen := uint32(0)
	startIdx := 0

	for decoded := 0; decoded < h.unpackedSize; {
		bit, err := br.ReadBit()
		if err != nil {
			return nil, fmt.Errorf("%w: payload ended after %d of %d symbols", ErrMalformed, decoded, h.unpackedSize)
		}
		code = code<<1 | bit
		codeSize++
		if codeSize > h.maxCodeLen {
			return nil, fmt.Errorf("%w: no code within %d bits", ErrMalformed, h.maxCodeLen)
		}
		n := uint32(h.bitLengths[codeSize])
		if idx := code - firstCodeAtLen; idx < n {
			out = append(out, h.symbols[startIdx+int(idx)])
			decoded++
			code, codeSize = 0, 0
			firstCodeAtLen, startIdx = 0, 0
		} else {
			firstCodeAtLen = (firstCodeAtLen + n) << 1
			startIdx += int(n)
		}
	}
	return out, nil
}
