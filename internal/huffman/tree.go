// Package huffman implements a canonical Huffman codec with a compact
// self-describing header. The encoder derives code lengths from a
// frequency-built tree, assigns canonical codes, and emits an MSB-first
// bitstream; the decoder walks the canonical tables one bit at a time.
package huffman

import (
	"container/heap"
	"errors"
)

const (
	// MaxCodeLen is the longest code length the wire format can carry.
	MaxCodeLen = 20
	// MaxSymbols is the alphabet size for byte-oriented streams.
	MaxSymbols = 256
)

// ErrCodeTooLong is returned when the frequency distribution produces a
// tree deeper than MaxCodeLen. There is no length-limiting rebuild; callers
// retry with a shorter block.
var ErrCodeTooLong = errors.New("huffman: code length exceeds 20 bits")

// CountFrequencies builds a per-symbol histogram of data.
func CountFrequencies(data []byte) []uint32 {
	freq := make([]uint32, MaxSymbols)
	for _, b := range data {
		freq[b]++
	}
	return freq
}

// treeNode is an internal node (or leaf) used while building a Huffman
// tree from symbol frequencies.
type treeNode struct {
	weight uint32
	value  int // symbol for leaves, -1 for internal nodes
	left   int // pool index, -1 for none
	right  int // pool index, -1 for none
}

type nodeHeap struct {
	pool    []treeNode
	indices []int // indices into pool
}

func (h *nodeHeap) Len() int { return len(h.indices) }

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.pool[h.indices[i]], h.pool[h.indices[j]]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return h.indices[i] < h.indices[j]
}

func (h *nodeHeap) Swap(i, j int) {
	h.indices[i], h.indices[j] = h.indices[j], h.indices[i]
}

func (h *nodeHeap) Push(x any) {
	h.indices = append(h.indices, x.(int))
}

func (h *nodeHeap) Pop() any {
	old := h.indices
	n := len(old)
	idx := old[n-1]
	h.indices = old[:n-1]
	return idx
}

// BuildCodeLengths derives per-symbol code lengths from a histogram.
// Symbols with zero frequency get length 0. A single-symbol alphabet is
// assigned length 1 so that no code is empty.
func BuildCodeLengths(freq []uint32) ([]uint8, error) {
	lengths := make([]uint8, len(freq))

	h := &nodeHeap{}
	for sym, count := range freq {
		if count == 0 {
			continue
		}
		idx := len(h.pool)
		h.pool = append(h.pool, treeNode{weight: count, value: sym, left: -1, right: -1})
		h.indices = append(h.indices, idx)
	}

	switch len(h.indices) {
	case 0:
		return lengths, nil
	case 1:
		lengths[h.pool[h.indices[0]].value] = 1
		return lengths, nil
	}

	heap.Init(h)
	for h.Len() > 1 {
		leftIdx := heap.Pop(h).(int)
		rightIdx := heap.Pop(h).(int)
		parentIdx := len(h.pool)
		h.pool = append(h.pool, treeNode{
			weight: h.pool[leftIdx].weight + h.pool[rightIdx].weight,
			value:  -1,
			left:   leftIdx,
			right:  rightIdx,
		})
		heap.Push(h, parentIdx)
	}

	if !assignDepths(h.pool, h.indices[0], 0, lengths) {
		return nil, ErrCodeTooLong
	}
	return lengths, nil
}

// assignDepths sets each leaf symbol's code length to its depth in the
// tree. It reports false when any leaf sits deeper than MaxCodeLen.
func assignDepths(pool []treeNode, nodeIdx, depth int, lengths []uint8) bool {
	node := &pool[nodeIdx]
	if node.value >= 0 {
		if depth > MaxCodeLen {
			return false
		}
		lengths[node.value] = uint8(depth)
		return true
	}
	return assignDepths(pool, node.left, depth+1, lengths) &&
		assignDepths(pool, node.right, depth+1, lengths)
}
