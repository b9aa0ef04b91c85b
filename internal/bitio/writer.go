// Package bitio provides the MSB-first bitstream primitives used by the
// Huffman codec. Bits are packed into bytes most-significant-bit first; the
// final byte of a stream is padded with 1-bits up to the next byte boundary.
package bitio

import (
	"bytes"

	"github.com/icza/bitio"
)

// Writer accumulates an MSB-first bitstream in memory.
//
// It keeps a count of the data bits written so that the number of padding
// bits appended by Finish (the stream's wasted bits) is known to callers
// that record it in a header.
type Writer struct {
	buf  bytes.Buffer
	w    *bitio.Writer
	bits int // data bits written, excluding padding
}

// NewWriter creates a Writer with an initial buffer pre-allocated for
// expectedSize bytes.
func NewWriter(expectedSize int) *Writer {
	bw := &Writer{}
	if expectedSize > 0 {
		bw.buf.Grow(expectedSize)
	}
	bw.w = bitio.NewWriter(&bw.buf)
	return bw
}

// WriteBits writes the n (0..32) lowest bits of code, most significant
// first.
func (bw *Writer) WriteBits(code uint32, n int) error {
	if n == 0 {
		return nil
	}
	if err := bw.w.WriteBits(uint64(code)&(1<<uint(n)-1), uint8(n)); err != nil {
		return err
	}
	bw.bits += n
	return nil
}

// WriteBit writes a single bit.
func (bw *Writer) WriteBit(bit int) error {
	if err := bw.w.WriteBool(bit != 0); err != nil {
		return err
	}
	bw.bits++
	return nil
}

// NumBits returns the number of data bits written so far.
func (bw *Writer) NumBits() int {
	return bw.bits
}

// WastedBits returns the number of padding bits Finish appends to reach the
// next byte boundary: (8 − filled) mod 8.
func (bw *Writer) WastedBits() int {
	return (8 - bw.bits%8) % 8
}

// Finish pads the trailing byte with 1-bits and returns the complete
// encoded byte slice. A stream that already ends on a byte boundary gets no
// padding byte.
func (bw *Writer) Finish() ([]byte, error) {
	if pad := bw.WastedBits(); pad > 0 {
		if err := bw.w.WriteBits(1<<uint(pad)-1, uint8(pad)); err != nil {
			return nil, err
		}
	}
	if err := bw.w.Close(); err != nil {
		return nil, err
	}
	return bw.buf.Bytes(), nil
}
