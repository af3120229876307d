//go:build go1.18
// +build go1.18

package lossless

import (
	"reflect"
	"testing"
)

func FuzzCreateHuffmanTree(f *testing.F) {
	f.Add([]byte(`simple text`))
	f.Add(make([]byte, 300))
	f.Fuzz(func(t *testing.T, source []byte) {
		histogram := make([]uint32, 256)
		for _, c := range source {
			histogram[c]++
		}
		for _, s := range testStrategies {
			h := append([]uint32(nil), histogram...)
			table := NewCodeTable(len(h))
			if err := NewTreeBuilder(s).Build(h, MaxAllowedCodeLength, table); err != nil {
				t.Fatal(err)
			}
			for i, l := range table.CodeLengths {
				if histogram[i] != 0 && l == 0 {
					t.Fatalf("symbol %d lost its code", i)
				}
			}
			tokens := make([]Token, MaxTokens(len(h)))
			tokens = tokens[:CompressHuffmanTree(table.CodeLengths, tokens)]
			lens := make([]uint8, len(h))
			n, err := ExpandTokens(tokens, lens)
			if err != nil {
				t.Fatal(err)
			}
			if n != len(lens) || !reflect.DeepEqual(lens, table.CodeLengths) {
				t.Fatal("token round trip failed")
			}
		}
	})
}
