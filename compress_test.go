package lz4huf_test

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/pierrec/lz4/v4"

	"github.com/deepteams/lz4huf"
)

// referenceDecode runs a frame through the independent pierrec/lz4 decoder.
func referenceDecode(t *testing.T, frame []byte) []byte {
	t.Helper()
	zr := lz4.NewReader(bytes.NewReader(frame))
	out, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("reference decoder: %v", err)
	}
	return out
}

func compress(t *testing.T, data []byte, opts *lz4huf.Options) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := lz4huf.Compress(&buf, bytes.NewReader(data), opts); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	return buf.Bytes()
}

func testCorpora(t *testing.T) map[string][]byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	random := make([]byte, 64*1024)
	rng.Read(random)

	var text []byte
	for len(text) < 20000 {
		text = append(text, "the quick brown fox jumps over the lazy dog. "...)
	}

	return map[string][]byte{
		"empty":    nil,
		"single":   {0x42},
		"tiny":     []byte("abc"),
		"periodic": []byte("abcabcabcabc"),
		"text":     text,
		"zeros":    make([]byte, 100000),
		"random":   random,
	}
}

func TestCompress_ReferenceRoundTrip(t *testing.T) {
	corpora := testCorpora(t)
	for _, level := range []int{0, 1, 3, 5, 6, 9} {
		for name, data := range corpora {
			frame := compress(t, data, &lz4huf.Options{Level: level})
			got := referenceDecode(t, frame)
			if !bytes.Equal(got, data) {
				t.Fatalf("level %d, %s: reference decode mismatch", level, name)
			}
		}
	}
}

func TestCompress_FrameHeaderBytes(t *testing.T) {
	frame := compress(t, []byte("abcabcabcabc"), nil)

	wantHeader := []byte{0x04, 0x22, 0x4D, 0x18, 0x40, 0x70, 0xDF}
	if !bytes.Equal(frame[:7], wantHeader) {
		t.Fatalf("frame header = %x, want %x", frame[:7], wantHeader)
	}
	if !bytes.Equal(frame[len(frame)-4:], []byte{0, 0, 0, 0}) {
		t.Fatalf("end marker = %x, want zeros", frame[len(frame)-4:])
	}
	if got := referenceDecode(t, frame); !bytes.Equal(got, []byte("abcabcabcabc")) {
		t.Fatalf("reference decode mismatch")
	}
}

func TestCompress_ZerosShrinkHard(t *testing.T) {
	data := make([]byte, 100000)
	frame := compress(t, data, nil)
	if len(frame) >= 1000 {
		t.Fatalf("100k zeros compressed to %d bytes", len(frame))
	}
}

func TestCompress_InvalidConfig(t *testing.T) {
	cases := []lz4huf.Options{
		{Level: -1},
		{Level: 10},
		{Level: 9, Window: -1},
		{Level: 9, Window: lz4huf.MaxWindow + 1},
	}
	for _, opts := range cases {
		err := lz4huf.Compress(io.Discard, bytes.NewReader(nil), &opts)
		if !errors.Is(err, lz4huf.ErrInvalidConfig) {
			t.Errorf("Options%+v: error = %v, want ErrInvalidConfig", opts, err)
		}
	}
}

func TestCompress_NilOptionsIsLevel9(t *testing.T) {
	data := bytes.Repeat([]byte("compressible "), 1000)
	def := compress(t, data, nil)
	lvl9 := compress(t, data, &lz4huf.Options{Level: 9})
	if !bytes.Equal(def, lvl9) {
		t.Fatalf("nil options and level 9 disagree")
	}
	if len(def) >= len(data) {
		t.Fatalf("compressible input grew: %d -> %d bytes", len(data), len(def))
	}
}

func TestCompress_LegacyMagic(t *testing.T) {
	frame := compress(t, []byte("legacy format probe"), &lz4huf.Options{Level: 9, Legacy: true})
	if !bytes.Equal(frame[:4], []byte{0x02, 0x21, 0x4C, 0x18}) {
		t.Fatalf("legacy magic = %x", frame[:4])
	}
}

func TestCompress_PropagatesWriteError(t *testing.T) {
	err := lz4huf.Compress(failWriter{}, bytes.NewReader([]byte("data")), nil)
	if err == nil {
		t.Fatal("expected sink error to surface")
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("sink closed") }
