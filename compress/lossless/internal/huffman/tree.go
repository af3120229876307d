// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huffman builds length-limited Huffman code lengths and canonical
// bit-reversed codes for the lossless image encoder.
package huffman

import (
	"errors"
	"fmt"
)

// MaxAllowedCodeLength is the longest code length the lossless bitstream can carry.
const MaxAllowedCodeLength = 15

var (
	// ErrInvalidInput is matched by every input validation failure of this package.
	ErrInvalidInput = errors.New("huffman: invalid input")
	// ErrInvalidDepthLimit reports a code length limit outside [1, MaxAllowedCodeLength].
	ErrInvalidDepthLimit = fmt.Errorf("%w: code length limit out of range", ErrInvalidInput)
	// ErrTooManySymbols reports a histogram whose used symbols cannot fit
	// in a tree of the requested depth.
	ErrTooManySymbols = fmt.Errorf("%w: too many symbols for code length limit", ErrInvalidInput)
)

// TreeGenerator generate code's lengths from the histogram.
// A generator keeps its working memory between calls, so it should be reused
// but never shared between goroutines.
type TreeGenerator interface {
	// Generate writes the code length of every symbol of histogram into
	// codeLens and returns the number of used symbols.
	Generate(maxLen int, histogram []uint32, codeLens []uint8) (num int, err error)
}

// checkLimit validates that num used symbols can be coded in maxLen bits.
// Up to 1<<maxLen symbols fit: with a high enough count floor all leaves are
// equal and the tree is balanced.
func checkLimit(maxLen int, num int) error {
	if maxLen < 1 || maxLen > MaxAllowedCodeLength {
		return fmt.Errorf("%w: %d", ErrInvalidDepthLimit, maxLen)
	}
	if num > 1<<maxLen {
		return fmt.Errorf("%w: %d symbols, limit %d", ErrTooManySymbols, num, maxLen)
	}
	return nil
}

// node is a leaf or a merge node of the tree. Children are arena indexes.
type node struct {
	total  uint64
	symbol int // -1 for merge nodes
	left   int // -1 for leaves
	right  int
}

// byCount orders nodes by descending total, then ascending symbol.
type byCount []node

// Len is the number of elements in the collection.
func (c byCount) Len() int {
	return len(c)
}

// Less compare two elements
func (c byCount) Less(i int, j int) bool {
	if c[i].total != c[j].total {
		return c[i].total > c[j].total
	}
	return c[i].symbol < c[j].symbol
}

// Swap swaps the elements with indexes i and j.
func (c byCount) Swap(i int, j int) {
	c[i], c[j] = c[j], c[i]
}

func usedSymbols(histogram []uint32) (num int) {
	for _, v := range histogram {
		if v != 0 {
			num++
		}
	}
	return num
}

func clearLens(codeLens []uint8) {
	for i := range codeLens {
		codeLens[i] = 0
	}
}
