package huffman

import (
	"errors"
	"fmt"
)

// Serialized layout:
//
//	offset 0..3   unpackedSize, little-endian; the top 3 bits of byte 3
//	              carry wastedBits
//	offset 4      number of distinct symbols N (a full 256-symbol
//	              alphabet wraps to 0)
//	offset 5      maxCodeLen (the bitlengths[0] slot)
//	next maxCodeLen bytes   bitlengths[1..maxCodeLen] (a count of 256
//	              wraps to 0)
//	next N bytes            symbols in canonical order
//	then          payload bitstream, MSB-first, padded with 1-bits
const (
	sizeBits        = 29
	maxUnpackedSize = 1<<sizeBits - 1
)

// ErrMalformed is returned by the decoder for inconsistent headers, codes
// longer than the declared maximum, and payloads that end before
// unpackedSize symbols have been produced.
var ErrMalformed = errors.New("huffman: malformed stream")

// ErrTooLarge is returned by the encoder when the input does not fit the
// header's 29-bit size field.
var ErrTooLarge = errors.New("huffman: input exceeds 29-bit size field")

// appendHeader serializes the block and table headers for a stream of
// unpackedSize symbols with wastedBits padding bits. Either header may be
// omitted.
func appendHeader(dst []byte, unpackedSize, wastedBits int, ct *CodeTable, blockHeader, tableHeader bool) []byte {
	if blockHeader {
		dst = append(dst,
			byte(unpackedSize),
			byte(unpackedSize>>8),
			byte(unpackedSize>>16),
			byte(unpackedSize>>24&0x1F)|byte(wastedBits<<5))
	}
	if tableHeader {
		dst = append(dst, byte(len(ct.Symbols)), byte(ct.MaxLen))
		for k := 1; k <= ct.MaxLen; k++ {
			dst = append(dst, ct.BitLengths[k])
		}
		dst = append(dst, ct.Symbols...)
	}
	return dst
}

// header is the decoded form of the serialized headers.
type header struct {
	unpackedSize int
	wastedBits   int
	maxCodeLen   int
	bitLengths   [MaxCodeLen + 1]int
	symbols      []uint8
	payload      []byte
}

// parseHeader reads both headers from data. The bundled decoder requires
// the block header and the table header to be present.
func parseHeader(data []byte) (*header, error) {
	if len(data) < 6 {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformed)
	}
	h := &header{
		unpackedSize: int(data[0]) | int(data[1])<<8 | int(data[2])<<16 | int(data[3]&0x1F)<<24,
		wastedBits:   int(data[3] >> 5),
		maxCodeLen:   int(data[5]),
	}
	if h.maxCodeLen > MaxCodeLen {
		return nil, fmt.Errorf("%w: max code length %d exceeds %d", ErrMalformed, h.maxCodeLen, MaxCodeLen)
	}
	numSymbols := int(data[4])
	if numSymbols == 0 && h.unpackedSize > 0 {
		// The one-byte count of a full alphabet wraps to 0.
		numSymbols = MaxSymbols
	}
	off := 6
	if len(data) < off+h.maxCodeLen+numSymbols {
		return nil, fmt.Errorf("%w: truncated tables", ErrMalformed)
	}
	total := 0
	for k := 1; k <= h.maxCodeLen; k++ {
		h.bitLengths[k] = int(data[off])
		total += int(data[off])
		off++
	}
	// 256 symbols all of length 8 is the only alphabet whose per-length
	// count wraps to 0.
	if total == 0 && numSymbols == MaxSymbols && h.maxCodeLen == 8 {
		h.bitLengths[8] = MaxSymbols
		total = MaxSymbols
	}
	if total != numSymbols {
		return nil, fmt.Errorf("%w: bit-length counts sum to %d, symbol table has %d", ErrMalformed, total, numSymbols)
	}
	h.symbols = data[off : off+numSymbols]
	h.payload = data[off+numSymbols:]
	if h.unpackedSize > 0 && numSymbols == 0 {
		return nil, fmt.Errorf("%w: empty symbol table for %d symbols", ErrMalformed, h.unpackedSize)
	}
	return h, nil
}
