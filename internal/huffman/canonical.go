package huffman

import "sort"

// CodeTable holds the canonical code assignment for one alphabet: the
// per-symbol codes used for encoding and the (bit-length histogram, sorted
// symbols) pair the decoder walks.
type CodeTable struct {
	// Lengths and Codes are indexed by symbol. A zero length means the
	// symbol does not occur.
	Lengths [MaxSymbols]uint8
	Codes   [MaxSymbols]uint32

	// BitLengths[k] is the number of symbols whose code is k bits long,
	// for k in 1..MaxLen; a count of 256 wraps to 0. Index 0 is unused
	// here; the serialized header repurposes that slot to carry MaxLen.
	BitLengths [MaxCodeLen + 1]uint8

	// Symbols lists the coded symbols in ascending (length, symbol) order.
	Symbols []uint8

	// MaxLen is the longest assigned code length (0 for an empty alphabet).
	MaxLen int
}

// NewCodeTable assigns canonical codes from per-symbol bit lengths.
// Canonical codes are numerically ascending within a length; the first code
// of each longer length is the previous code plus one, shifted left by the
// length difference.
func NewCodeTable(lengths []uint8) *CodeTable {
	ct := &CodeTable{}

	type symLen struct {
		length uint8
		symbol int
	}
	sorted := make([]symLen, 0, len(lengths))
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		ct.Lengths[sym] = l
		sorted = append(sorted, symLen{l, sym})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].length != sorted[j].length {
			return sorted[i].length < sorted[j].length
		}
		return sorted[i].symbol < sorted[j].symbol
	})

	ct.Symbols = make([]uint8, 0, len(sorted))
	for _, s := range sorted {
		ct.BitLengths[s.length]++
		ct.Symbols = append(ct.Symbols, uint8(s.symbol))
	}
	if n := len(sorted); n > 0 {
		ct.MaxLen = int(sorted[n-1].length)
	}

	code := uint32(0)
	for n, s := range sorted {
		ct.Codes[s.symbol] = code
		code++
		if n < len(sorted)-1 {
			code <<= sorted[n+1].length - s.length
		}
	}
	return ct
}

// PayloadBits returns the total number of payload bits needed to encode a
// stream with the given histogram: Σ freq[s] × len[s].
func (ct *CodeTable) PayloadBits(freq []uint32) int {
	bits := 0
	for sym, count := range freq {
		bits += int(count) * int(ct.Lengths[sym])
	}
	return bits
}
