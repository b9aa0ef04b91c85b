package lz4huf

import (
	"github.com/deepteams/lz4huf/internal/huffman"
)

// Errors surfaced by the Huffman codec.
var (
	// ErrCodeTooLong: the frequency distribution produced a code longer
	// than 20 bits. Retry with a shorter block.
	ErrCodeTooLong = huffman.ErrCodeTooLong

	// ErrMalformed: the decoder met an inconsistent header, a code longer
	// than the declared maximum, or a payload that ended early.
	ErrMalformed = huffman.ErrMalformed

	// ErrTooLarge: the input does not fit the header's 29-bit size field.
	ErrTooLarge = huffman.ErrTooLarge
)

// HuffmanOptions controls which parts of the Huffman container are
// emitted. The zero value omits both headers and leaves a bare payload;
// HuffmanDecode needs both.
type HuffmanOptions struct {
	// BlockHeader emits the 4-byte unpacked-size/wasted-bits prefix.
	BlockHeader bool

	// TableHeader emits the canonical bit-length and symbol tables.
	TableHeader bool
}

// HuffmanEncode compresses data into the self-describing Huffman
// container. A nil opts emits both headers.
func HuffmanEncode(data []byte, opts *HuffmanOptions) ([]byte, error) {
	blockHeader, tableHeader := true, true
	if opts != nil {
		blockHeader, tableHeader = opts.BlockHeader, opts.TableHeader
	}
	return huffman.Encode(data, blockHeader, tableHeader)
}

// HuffmanDecode reverses HuffmanEncode output produced with both headers.
// Decoding stops after exactly the header's symbol count; padding bits are
// ignored.
func HuffmanDecode(data []byte) ([]byte, error) {
	return huffman.Decode(data)
}
