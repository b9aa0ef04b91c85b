// Package lz4huf implements two compression codecs used together for
// preparing compact binary assets: an LZ4 compressor with optimal parsing,
// bit-compatible with the LZ4 frame and legacy formats, and a canonical
// Huffman encoder/decoder that emits a self-describing bitstream.
//
// The LZ4 side ([Compress]) finds matches with a two-level hash chain,
// selects them with a backward dynamic program, and frames the resulting
// blocks so that any conformant LZ4 decoder can read the output. The
// Huffman side ([HuffmanEncode], [HuffmanDecode]) uses its own compact
// container format: a 29-bit unpacked size, the canonical code-length and
// symbol tables, and an MSB-first payload.
//
// Both codecs are synchronous and single-threaded; all state is owned by
// the call.
package lz4huf
