package bitio

import (
	"bytes"

	"github.com/icza/bitio"
)

// Reader consumes an MSB-first bitstream from a byte slice. Reading past
// the end of the data returns io.EOF; callers decide whether that is a
// truncation error (the Huffman stream carries its own symbol count, so the
// reader itself has no terminating condition).
type Reader struct {
	r *bitio.Reader
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{r: bitio.NewReader(bytes.NewReader(data))}
}

// ReadBit returns the next bit of the stream.
func (br *Reader) ReadBit() (uint32, error) {
	b, err := br.r.ReadBool()
	if err != nil {
		return 0, err
	}
	if b {
		return 1, nil
	}
	return 0, nil
}

// ReadBits reads n (0..32) bits, most significant first.
func (br *Reader) ReadBits(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	v, err := br.r.ReadBits(uint8(n))
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
