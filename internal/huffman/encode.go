package huffman

import (
	"github.com/deepteams/lz4huf/internal/bitio"
)

// Encode compresses data into the self-describing container. blockHeader
// controls the 4-byte size/wasted-bits prefix; tableHeader controls the
// bit-length and symbol tables. Both are required for the bundled decoder.
func Encode(data []byte, blockHeader, tableHeader bool) ([]byte, error) {
	if len(data) > maxUnpackedSize {
		return nil, ErrTooLarge
	}

	freq := CountFrequencies(data)
	lengths, err := BuildCodeLengths(freq)
	if err != nil {
		return nil, err
	}
	ct := NewCodeTable(lengths)

	// The payload size is fixed by the code table, so the wasted-bits
	// field is known before any bit is written.
	payloadBits := ct.PayloadBits(freq)
	wastedBits := (8 - payloadBits%8) % 8

	out := appendHeader(nil, len(data), wastedBits, ct, blockHeader, tableHeader)

	bw := bitio.NewWriter((payloadBits + 7) / 8)
	for _, sym := range data {
		if err := bw.WriteBits(ct.Codes[sym], int(ct.Lengths[sym])); err != nil {
			return nil, err
		}
	}
	payload, err := bw.Finish()
	if err != nil {
		return nil, err
	}
	return append(out, payload...), nil
}
