package lz4

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/deepteams/lz4huf/internal/pool"
)

// Frame magic numbers.
var (
	frameMagic       = []byte{0x04, 0x22, 0x4D, 0x18}
	frameMagicLegacy = []byte{0x02, 0x21, 0x4C, 0x18}
)

// Modern frame descriptor: version 01 flags, 4 MiB max block size, and the
// header checksum byte for exactly this FLG/BD pair.
var frameDescriptor = []byte{0x40, 0x70, 0xDF}

// Compressor carries the match-finder state and per-block scratch buffers
// for one compression stream. The window and chain arrays persist across
// blocks so matches may reach into the previous block's tail.
type Compressor struct {
	maxChainLength int
	window         int
	legacy         bool
	dictionary     []byte

	lastHash      []int32  // hash bucket -> most recent absolute offset
	previousHash  []uint16 // distance ring, hash chain
	previousExact []uint16 // distance ring, exact chain

	data     []byte // previous tail (<= window bytes) + current block
	dataZero int    // absolute offset of data[0]

	matches []match
	cost    []uint32
}

// NewCompressor returns a compressor geared for the given level. window
// overrides the default 64 Ki−1 match distance; values outside 1..MaxWindow
// select the default. The last 64 KiB of dictionary seeds the window before
// the first block.
func NewCompressor(level, window int, legacy bool, dictionary []byte) *Compressor {
	if window <= 0 || window > MaxWindow {
		window = MaxWindow
	}
	c := &Compressor{
		maxChainLength: MaxChainLength(level),
		window:         window,
		legacy:         legacy,
		dictionary:     dictionary,
		lastHash:       make([]int32, hashSize),
		previousHash:   make([]uint16, previousSize),
		previousExact:  make([]uint16, previousSize),
	}
	for i := range c.lastHash {
		c.lastHash[i] = noLastHash
	}
	return c
}

// Compress reads all of r and writes a complete LZ4 frame to w.
func Compress(w io.Writer, r io.Reader, level, window int, legacy bool, dictionary []byte) error {
	return NewCompressor(level, window, legacy, dictionary).Compress(w, r)
}

// Compress runs the block loop: read up to a block, find matches, estimate
// costs, emit tokens, and frame the result. Blocks that compression would
// grow are stored verbatim (modern frame only; the legacy frame is always
// compressed).
func (c *Compressor) Compress(w io.Writer, r io.Reader) error {
	if c.legacy {
		if _, err := w.Write(frameMagicLegacy); err != nil {
			return fmt.Errorf("lz4: writing frame header: %w", err)
		}
	} else {
		if _, err := w.Write(frameMagic); err != nil {
			return fmt.Errorf("lz4: writing frame header: %w", err)
		}
		if _, err := w.Write(frameDescriptor); err != nil {
			return fmt.Errorf("lz4: writing frame header: %w", err)
		}
	}

	uncompressed := c.maxChainLength == 0
	maxBlock := maxBlockSize
	if c.legacy {
		maxBlock = maxBlockSizeLegacy
	}

	buf := pool.Get(readBufferSize)
	defer pool.Put(buf)

	numRead := 0
	nextBlock := 0
	readDone := false
	parseDictionary := len(c.dictionary) > 0

	for {
		if parseDictionary {
			// The window is seeded with exactly 64 KiB: filler first, then
			// the dictionary tail, so the dictionary ends where the first
			// block begins.
			if len(c.dictionary) < maxDictionary {
				c.data = append(c.data, make([]byte, maxDictionary-len(c.dictionary))...)
				c.data = append(c.data, c.dictionary...)
			} else {
				c.data = append(c.data, c.dictionary[len(c.dictionary)-maxDictionary:]...)
			}
			nextBlock = len(c.data)
			numRead = len(c.data)
		}

		for numRead-nextBlock < maxBlock && !readDone {
			n, err := io.ReadFull(r, buf)
			if n > 0 {
				c.data = append(c.data, buf[:n]...)
				numRead += n
			}
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				readDone = true
			} else if err != nil {
				return fmt.Errorf("lz4: reading input: %w", err)
			}
		}
		if nextBlock == numRead {
			break
		}

		lastBlock := nextBlock
		nextBlock += maxBlock
		if nextBlock > numRead {
			nextBlock = numRead
		}
		dataBlock := lastBlock - c.dataZero
		blockSize := nextBlock - lastBlock

		// The previous block's last literals skipped matching, so they are
		// missing from the chains; back up over them. The first block backs
		// up over the dictionary instead.
		lookback := c.dataZero
		if lookback > blockEndNoMatch && !parseDictionary {
			lookback = blockEndNoMatch
		}
		if parseDictionary {
			lookback = len(c.dictionary)
			if lookback > maxDictionary {
				lookback = maxDictionary
			}
		}
		if c.legacy {
			lookback = 0
		}
		// A small window override can retain less history than the usual
		// lookback; never back up past the start of the buffer.
		if lookback > dataBlock {
			lookback = dataBlock
		}

		if cap(c.matches) < blockSize {
			c.matches = make([]match, blockSize)
		} else {
			c.matches = c.matches[:blockSize]
		}
		clear(c.matches)

		c.findMatches(dataBlock, lastBlock, nextBlock, blockSize, lookback, uncompressed)
		parseDictionary = false

		// Greedy mode and very short blocks take the matches as found.
		if blockSize > blockEndNoMatch && c.maxChainLength > shortChainsGreedy {
			if cap(c.cost) < blockSize {
				c.cost = pool.GetUint32(blockSize)
			} else {
				c.cost = c.cost[:blockSize]
			}
			c.estimateCosts(blockSize)
		}

		var block, scratch []byte
		if !uncompressed || c.legacy {
			scratch = pool.Get(blockSize + blockSize/255 + 16)
			block = emitBlock(scratch[:0], c.matches[:blockSize], c.data[dataBlock:dataBlock+blockSize])
		}

		// Did compression do harm?
		useCompression := !uncompressed && len(block) < blockSize
		if c.legacy {
			useCompression = true
		}

		numBytes := blockSize
		if useCompression {
			numBytes = len(block)
		}
		tagged := uint32(numBytes)
		if !useCompression {
			tagged |= 0x80000000
		}

		var hdr [4]byte
		binary.LittleEndian.PutUint32(hdr[:], tagged)
		_, err := w.Write(hdr[:])
		if err == nil {
			if useCompression {
				_, err = w.Write(block[:numBytes])
			} else {
				_, err = w.Write(c.data[dataBlock : dataBlock+numBytes])
			}
		}
		if scratch != nil {
			pool.Put(scratch)
		}
		if err != nil {
			return fmt.Errorf("lz4: writing block: %w", err)
		}

		if c.legacy {
			// No matching across legacy blocks.
			c.dataZero += len(c.data)
			c.data = c.data[:0]
			c.resetChains()
		} else if len(c.data) > c.window {
			remove := len(c.data) - c.window
			c.dataZero += remove
			c.data = append(c.data[:0], c.data[remove:]...)
		}
	}

	if !c.legacy {
		if _, err := w.Write([]byte{0, 0, 0, 0}); err != nil {
			return fmt.Errorf("lz4: writing end marker: %w", err)
		}
	}
	return nil
}

// resetChains restores the chain arrays to their empty state.
func (c *Compressor) resetChains() {
	for i := range c.lastHash {
		c.lastHash[i] = noLastHash
	}
	clear(c.previousHash)
	clear(c.previousExact)
}
