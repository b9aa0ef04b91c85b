package lz4huf_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/deepteams/lz4huf"
)

func ExampleCompress() {
	var buf bytes.Buffer
	if err := lz4huf.Compress(&buf, strings.NewReader("abcabcabcabc"), nil); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("% x\n", buf.Bytes()[:7])
	// Output: 04 22 4d 18 40 70 df
}

func ExampleHuffmanEncode() {
	encoded, err := lz4huf.HuffmanEncode([]byte("abracadabra"), nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	decoded, err := lz4huf.HuffmanDecode(encoded)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(string(decoded))
	// Output: abracadabra
}
