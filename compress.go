package lz4huf

import (
	"errors"
	"fmt"
	"io"

	"github.com/deepteams/lz4huf/internal/lz4"
)

// ErrInvalidConfig is returned when an option falls outside its valid
// range. The wrapped message names the offending field.
var ErrInvalidConfig = errors.New("lz4huf: invalid configuration")

const (
	// DefaultLevel is the compression level used when no options are given.
	DefaultLevel = 9

	// MaxWindow is the largest match window the LZ4 format supports.
	MaxWindow = lz4.MaxWindow
)

// Options controls LZ4 compression.
//
// The zero value selects level 0 (stored blocks only); use
// [DefaultOptions] or set Level explicitly for actual compression.
type Options struct {
	// Level selects the match-search effort (0..9):
	//   0     no compression, stored blocks only
	//   1..3  greedy search over up to Level chain entries
	//   4..6  lazy evaluation over up to Level chain entries
	//   7..8  optimal parsing over up to Level chain entries
	//   9     optimal parsing over the whole window (default)
	Level int

	// Window overrides the maximum match distance (1..65535).
	// Zero selects the default of 65535.
	Window int

	// Legacy emits the legacy frame format: 8 MiB blocks, always
	// compressed, no end marker, and no matching across blocks. The
	// modern frame is 7 bytes larger but the default.
	Legacy bool

	// Dictionary seeds the match window before the first block; only its
	// last 64 KiB is used. Ignored in legacy mode.
	Dictionary []byte
}

// DefaultOptions returns the options Compress uses when opts is nil:
// level 9, modern frame, 64 Ki−1 window, no dictionary.
func DefaultOptions() *Options {
	return &Options{Level: DefaultLevel}
}

// Compress reads all of r and writes a complete LZ4 frame to w.
func Compress(w io.Writer, r io.Reader, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Level < 0 || opts.Level > 9 {
		return fmt.Errorf("%w: level %d outside 0..9", ErrInvalidConfig, opts.Level)
	}
	if opts.Window < 0 || opts.Window > MaxWindow {
		return fmt.Errorf("%w: window %d outside 1..%d", ErrInvalidConfig, opts.Window, MaxWindow)
	}
	return lz4.Compress(w, r, opts.Level, opts.Window, opts.Legacy, opts.Dictionary)
}
