// Command lz4huf compresses asset files from the command line.
//
// Usage:
//
//	lz4huf lz4 [options] <input>     file → LZ4 frame (use "-" for stdin)
//	lz4huf huf [options] <input>     file → Huffman container
//	lz4huf unhuf [options] <input>   Huffman container → file
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/deepteams/lz4huf"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "lz4":
		err = runLZ4(os.Args[2:])
	case "huf":
		err = runHuf(os.Args[2:])
	case "unhuf":
		err = runUnhuf(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "lz4huf: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "lz4huf: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  lz4huf lz4 [options] <input>     Compress to an LZ4 frame
  lz4huf huf [options] <input>     Compress to a Huffman container
  lz4huf unhuf [options] <input>   Decode a Huffman container

Use "-" as input to read from stdin, "-o -" to write to stdout.

Compression levels (lz4):
  -level 0       no compression
  -level 1..3    greedy search, check 1 to 3 matches
  -level 4..6    lazy matching, check 4 to 6 matches
  -level 7..8    optimal parsing, check 7 to 8 matches
  -level 9       optimal parsing, check all possible matches (default)

Run "lz4huf <command> -h" for command-specific options.
`)
}

// openInput returns an io.ReadCloser for the given path.
// If path is "-", stdin is returned wrapped so that Close leaves it open.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// resolveOutput picks the output path: the -o flag if given, otherwise the
// input's base name with ext appended.
func resolveOutput(inputPath, outputPath, ext string) string {
	if outputPath != "" {
		return outputPath
	}
	if inputPath == "-" {
		return "output" + ext
	}
	return filepath.Base(inputPath) + ext
}

// writeOutput writes data to path ("-" for stdout). When writing to a file
// it reports the input/output sizes to stderr; stdout output gets no report.
func writeOutput(path, inputPath string, data []byte, inputSize int) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o666); err != nil {
		return err
	}
	ratio := 0
	if inputSize > 0 {
		ratio = 100 - len(data)*100/inputSize
	}
	fmt.Fprintf(os.Stderr, "%s → %s (%d → %d bytes, %d%% saved)\n",
		inputPath, path, inputSize, len(data), ratio)
	return nil
}

func runLZ4(args []string) error {
	fs := flag.NewFlagSet("lz4", flag.ContinueOnError)
	level := fs.Int("level", lz4huf.DefaultLevel, "compression level 0-9")
	window := fs.Int("window", 0, "match window override 1-65535 (0=default)")
	legacy := fs.Bool("legacy", false, "emit the legacy frame format")
	dictPath := fs.String("dict", "", "dictionary file (last 64 KiB is used)")
	output := fs.String("o", "", `output path (default: <input>.lz4, "-" for stdout)`)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("lz4: missing input file\nUsage: lz4huf lz4 [options] <input>")
	}
	inputPath := fs.Arg(0)

	opts := &lz4huf.Options{
		Level:  *level,
		Window: *window,
		Legacy: *legacy,
	}
	if *dictPath != "" {
		dict, err := os.ReadFile(*dictPath)
		if err != nil {
			return fmt.Errorf("lz4: reading dictionary: %w", err)
		}
		opts.Dictionary = dict
	}

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("lz4: reading input: %w", err)
	}

	var out bytes.Buffer
	if err := lz4huf.Compress(&out, bytes.NewReader(data), opts); err != nil {
		return fmt.Errorf("lz4: %w", err)
	}
	return writeOutput(resolveOutput(inputPath, *output, ".lz4"), inputPath, out.Bytes(), len(data))
}

func runHuf(args []string) error {
	fs := flag.NewFlagSet("huf", flag.ContinueOnError)
	output := fs.String("o", "", `output path (default: <input>.huf, "-" for stdout)`)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("huf: missing input file\nUsage: lz4huf huf [options] <input>")
	}
	inputPath := fs.Arg(0)

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("huf: reading input: %w", err)
	}

	encoded, err := lz4huf.HuffmanEncode(data, nil)
	if err != nil {
		return fmt.Errorf("huf: %w", err)
	}
	return writeOutput(resolveOutput(inputPath, *output, ".huf"), inputPath, encoded, len(data))
}

func runUnhuf(args []string) error {
	fs := flag.NewFlagSet("unhuf", flag.ContinueOnError)
	output := fs.String("o", "", `output path (default: <input>.out, "-" for stdout)`)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("unhuf: missing input file\nUsage: lz4huf unhuf [options] <input>")
	}
	inputPath := fs.Arg(0)

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("unhuf: reading input: %w", err)
	}

	decoded, err := lz4huf.HuffmanDecode(data)
	if err != nil {
		return fmt.Errorf("unhuf: %w", err)
	}
	return writeOutput(resolveOutput(inputPath, *output, ".out"), inputPath, decoded, len(data))
}
