package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestEncode_Empty(t *testing.T) {
	out, err := Encode(nil, true, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0, 0, 0, 0, 0, 0} // size 0, wasted 0, no symbols, maxCodeLen 0
	if !bytes.Equal(out, want) {
		t.Fatalf("Encode(nil) = %x, want %x", out, want)
	}

	decoded, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("Decode = %x, want empty", decoded)
	}
}

func TestEncode_SingleByte(t *testing.T) {
	out, err := Encode([]byte{0x41}, true, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// size 1 with 7 wasted bits, one symbol of length 1, payload 01111111.
	want := []byte{0x01, 0x00, 0x00, 0xE0, 0x01, 0x01, 0x01, 0x41, 0x7F}
	if !bytes.Equal(out, want) {
		t.Fatalf("Encode([41]) = %x, want %x", out, want)
	}

	decoded, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, []byte{0x41}) {
		t.Fatalf("Decode = %x, want 41", decoded)
	}
}

func TestEncode_HeaderOptions(t *testing.T) {
	data := []byte("abracadabra")

	full, err := Encode(data, true, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	noBlock, err := Encode(data, false, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	noTable, err := Encode(data, true, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	bare, err := Encode(data, false, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if !bytes.Equal(noBlock, full[4:]) {
		t.Fatalf("omitting the block header must drop exactly the 4-byte prefix")
	}
	if !bytes.Equal(noTable, append(append([]byte{}, full[:4]...), bare...)) {
		t.Fatalf("omitting the table header must drop exactly the tables")
	}
	if len(bare) >= len(full) {
		t.Fatalf("bare payload (%d bytes) not smaller than full container (%d bytes)", len(bare), len(full))
	}
}

func TestRoundTrip_Corpora(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	random := make([]byte, 4096)
	rng.Read(random)

	skewed := make([]byte, 8192)
	for i := range skewed {
		// Mostly zeros with occasional structure.
		if rng.Intn(16) == 0 {
			skewed[i] = byte(rng.Intn(256))
		}
	}

	corpora := map[string][]byte{
		"ascii":     []byte("the quick brown fox jumps over the lazy dog"),
		"repeated":  bytes.Repeat([]byte{0xCC}, 3000),
		"twosymbol": bytes.Repeat([]byte{0, 1}, 500),
		"random":    random,
		"skewed":    skewed,
	}

	for name, data := range corpora {
		out, err := Encode(data, true, true)
		if err != nil {
			t.Fatalf("%s: Encode: %v", name, err)
		}
		decoded, err := Decode(out)
		if err != nil {
			t.Fatalf("%s: Decode: %v", name, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("%s: round trip mismatch", name)
		}
	}
}

func TestEncode_PayloadBitCount(t *testing.T) {
	// The payload must occupy exactly Σ freq×len bits, modulo padding.
	data := []byte("mississippi river basin")
	freq := CountFrequencies(data)
	lengths, err := BuildCodeLengths(freq)
	if err != nil {
		t.Fatalf("BuildCodeLengths: %v", err)
	}
	ct := NewCodeTable(lengths)
	wantBits := ct.PayloadBits(freq)

	payload, err := Encode(data, false, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := len(payload) * 8; got != wantBits+(8-wantBits%8)%8 {
		t.Fatalf("payload = %d bits, want %d data bits plus padding", got, wantBits)
	}
}

func TestEncode_WastedBitsField(t *testing.T) {
	for trial := 0; trial < 8; trial++ {
		data := bytes.Repeat([]byte("abc"), trial+1)
		out, err := Encode(data, true, true)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		h, err := parseHeader(out)
		if err != nil {
			t.Fatalf("parseHeader: %v", err)
		}

		freq := CountFrequencies(data)
		lengths, _ := BuildCodeLengths(freq)
		ct := NewCodeTable(lengths)
		want := (8 - ct.PayloadBits(freq)%8) % 8
		if h.wastedBits != want {
			t.Fatalf("trial %d: wastedBits = %d, want %d", trial, h.wastedBits, want)
		}
		if h.unpackedSize != len(data) {
			t.Fatalf("trial %d: unpackedSize = %d, want %d", trial, h.unpackedSize, len(data))
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	valid, err := Encode([]byte("some reasonable input data"), true, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	cases := map[string][]byte{
		"empty":            nil,
		"shortHeader":      {0x01, 0x00, 0x00},
		"truncatedTables":  valid[:5],
		"truncatedPayload": valid[:len(valid)-1],
		"badMaxCodeLen":    {0x01, 0x00, 0x00, 0x00, 0x01, 0x30},
		"countMismatch":    {0x01, 0x00, 0x00, 0x00, 0x02, 0x01, 0x01, 0x41, 0x42, 0x00},
	}

	for name, data := range cases {
		if _, err := Decode(data); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: Decode error = %v, want ErrMalformed", name, err)
		}
	}
}

func TestDecode_StopsAtUnpackedSize(t *testing.T) {
	// Extra trailing bytes after the payload must not disturb decoding.
	data := []byte("payload under test")
	out, err := Encode(data, true, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out = append(out, 0xFF, 0x00, 0xFF)

	decoded, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("round trip mismatch with trailing garbage")
	}
}

func TestEncode_AllByteValues(t *testing.T) {
	data := make([]byte, 0, 256*3)
	for i := 0; i < 256; i++ {
		for j := 0; j < i%3+1; j++ {
			data = append(data, byte(i))
		}
	}
	out, err := Encode(data, true, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("round trip mismatch over the full alphabet")
	}
}
