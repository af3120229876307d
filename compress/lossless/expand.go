// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package lossless

import "fmt"

// ExpandTokens is the decoder side of CompressHuffmanTree. It writes the
// code lengths described by tokens into codeLens and returns how many were
// written.
func ExpandTokens(tokens []Token, codeLens []uint8) (n int, err error) {
	prev := uint8(initialRepeatLength)
	for i, t := range tokens {
		if t.Code < repeatPrevious3_6 {
			if t.ExtraBits != 0 {
				return n, fmt.Errorf("%w: literal %d with extra bits %d at %d", ErrInvalidToken, t.Code, t.ExtraBits, i)
			}
			if n == len(codeLens) {
				return n, ErrTokenOverflow
			}
			codeLens[n] = t.Code
			n++
			if t.Code != 0 {
				prev = t.Code
			}
			continue
		}
		if t.Code >= NumCodeLengthCodes {
			return n, fmt.Errorf("%w: code %d at %d", ErrInvalidToken, t.Code, i)
		}
		slot := t.Code - repeatPrevious3_6
		if t.ExtraBits >= 1<<CodeLengthExtraBits[slot] {
			return n, fmt.Errorf("%w: code %d with extra bits %d at %d", ErrInvalidToken, t.Code, t.ExtraBits, i)
		}
		repeat := int(CodeLengthRepeatOffsets[slot]) + int(t.ExtraBits)
		if n+repeat > len(codeLens) {
			return n, ErrTokenOverflow
		}
		value := uint8(0)
		if t.Code == repeatPrevious3_6 {
			value = prev
		}
		for j := 0; j < repeat; j++ {
			codeLens[n+j] = value
		}
		n += repeat
	}
	return n, nil
}
