// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package lossless builds the Huffman codes of a lossless image bitstream.
// It turns symbol histograms into length-limited canonical codes and
// serializes the code lengths as run-length tokens for the stream header.
// Writing the bits themselves is left to the caller.
package lossless

import (
	"fmt"

	"github.com/intel/fastlossless/compress/lossless/internal/huffman"
)

// MaxAllowedCodeLength is the longest code length the bitstream can carry.
const MaxAllowedCodeLength = huffman.MaxAllowedCodeLength

// Strategy selects how code lengths are kept under the limit.
type Strategy int

const (
	// RetryFloor rebuilds the tree with a doubling minimum count until it
	// fits. Its code lengths match libwebp bit for bit.
	RetryFloor Strategy = iota
	// KraftLimited computes an unrestricted code once and moves long codes
	// under the limit. Faster, but lengths may differ from RetryFloor.
	KraftLimited
)

// CodeTable is the Huffman code of one alphabet.
// CodeLengths[i] == 0 means symbol i is unused. Codes are bit-reversed,
// ready to be written least significant bit first.
type CodeTable struct {
	NumSymbols  int
	CodeLengths []uint8
	Codes       []uint32
}

// NewCodeTable allocates a table for an alphabet of numSymbols symbols.
func NewCodeTable(numSymbols int) *CodeTable {
	return &CodeTable{
		NumSymbols:  numSymbols,
		CodeLengths: make([]uint8, numSymbols),
		Codes:       make([]uint32, numSymbols),
	}
}

// TreeBuilder creates code tables. It keeps its working memory between
// calls, so reuse one per goroutine.
type TreeBuilder struct {
	generator huffman.TreeGenerator
}

// NewTreeBuilder creates a builder using the given strategy.
func NewTreeBuilder(strategy Strategy) *TreeBuilder {
	b := &TreeBuilder{}
	switch strategy {
	case KraftLimited:
		b.generator = huffman.NewKraftTree()
	default:
		b.generator = huffman.NewBoundedTree()
	}
	return b
}

// Build fills table with a code for histogram whose lengths do not exceed
// maxLen. The first table.NumSymbols counts of histogram are smoothed in
// place before the code is built.
//
// The limit on used symbols, 1<<maxLen, applies to the smoothed counts.
// Smoothing can give unused symbols a count, so a histogram just under the
// limit may still fail with ErrTooManySymbols.
func (b *TreeBuilder) Build(histogram []uint32, maxLen int, table *CodeTable) error {
	n := table.NumSymbols
	if len(histogram) < n || len(table.CodeLengths) < n || len(table.Codes) < n {
		return fmt.Errorf("%w: table of %d symbols, histogram of %d", ErrInvalidInput, n, len(histogram))
	}
	histogram = histogram[:n]
	huffman.OptimizeForRLE(histogram)
	if _, err := b.generator.Generate(maxLen, histogram, table.CodeLengths[:n]); err != nil {
		return err
	}
	huffman.GenerateCode(table.CodeLengths[:n], table.Codes[:n])
	return nil
}

// CreateHuffmanTree fills table with a length-limited code for histogram,
// using the RetryFloor strategy. histogram is modified.
func CreateHuffmanTree(histogram []uint32, maxLen int, table *CodeTable) error {
	return NewTreeBuilder(RetryFloor).Build(histogram, maxLen, table)
}
