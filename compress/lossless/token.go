// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package lossless

import "fmt"

// Code length alphabet.
// 0..15 are literal lengths, the rest repeat a length.
const (
	NumCodeLengthCodes = 19

	repeatPrevious3_6 = 16
	zeroRepeat3_10    = 17
	zeroRepeat11_138  = 18

	// the repeat code starts from this length, on both sides of the stream
	initialRepeatLength = 8
)

// CodeLengthExtraBits is the number of extra bits of codes 16, 17 and 18.
var CodeLengthExtraBits = [3]uint8{2, 3, 7}

// CodeLengthRepeatOffsets is the smallest repeat count of codes 16, 17 and 18.
var CodeLengthRepeatOffsets = [3]uint8{3, 3, 11}

// Token is one symbol of the code length alphabet and its extra bits value.
type Token struct {
	Code      uint8
	ExtraBits uint8
}

func (t Token) String() string {
	switch t.Code {
	case repeatPrevious3_6:
		return fmt.Sprintf("<REPEAT %d>", int(t.ExtraBits)+3)
	case zeroRepeat3_10:
		return fmt.Sprintf("<ZEROS %d>", int(t.ExtraBits)+3)
	case zeroRepeat11_138:
		return fmt.Sprintf("<ZEROS %d>", int(t.ExtraBits)+11)
	}
	return fmt.Sprintf("%d", t.Code)
}

// MaxTokens returns a token buffer size large enough for any code of
// numSymbols symbols.
func MaxTokens(numSymbols int) int {
	return numSymbols
}

type tokenWriter struct {
	tokens []Token
	n      int
}

func (w *tokenWriter) put(code, extra uint8) {
	if w.n == len(w.tokens) {
		panic("lossless: token buffer too small")
	}
	w.tokens[w.n] = Token{Code: code, ExtraBits: extra}
	w.n++
}

// CompressHuffmanTree run-length codes codeLens into tokens and returns the
// number of tokens written. tokens must hold at least
// MaxTokens(len(codeLens)) entries; it panics when it runs out of room or
// a length exceeds MaxAllowedCodeLength.
func CompressHuffmanTree(codeLens []uint8, tokens []Token) int {
	w := tokenWriter{tokens: tokens}
	prev := uint8(initialRepeatLength)
	for i := 0; i < len(codeLens); {
		value := codeLens[i]
		k := i + 1
		for k < len(codeLens) && codeLens[k] == value {
			k++
		}
		runs := k - i
		if value == 0 {
			w.zeroRepeat(runs)
		} else {
			w.valueRepeat(runs, value, prev)
			prev = value
		}
		i = k
	}
	return w.n
}

func (w *tokenWriter) valueRepeat(repeated int, value, prev uint8) {
	if value > MaxAllowedCodeLength {
		panic("lossless: code length out of range")
	}
	if value != prev {
		w.put(value, 0)
		repeated--
	}
	for repeated != 0 {
		switch {
		case repeated < 3:
			for i := 0; i < repeated; i++ {
				w.put(value, 0)
			}
			repeated = 0
		case repeated < 7:
			w.put(repeatPrevious3_6, uint8(repeated-3))
			repeated = 0
		default:
			// consume max 6 repeats
			w.put(repeatPrevious3_6, 3)
			repeated -= 6
		}
	}
}

func (w *tokenWriter) zeroRepeat(repeated int) {
	for repeated != 0 {
		switch {
		case repeated < 3:
			for i := 0; i < repeated; i++ {
				w.put(0, 0)
			}
			repeated = 0
		case repeated < 11:
			w.put(zeroRepeat3_10, uint8(repeated-3))
			repeated = 0
		case repeated < 139:
			w.put(zeroRepeat11_138, uint8(repeated-11))
			repeated = 0
		default:
			// consume max 138 repeated 0
			w.put(zeroRepeat11_138, 138-11)
			repeated -= 138
		}
	}
}
