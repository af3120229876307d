// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "sort"

var _ TreeGenerator = &KraftTree{}

// KraftTree implements a code length limited algorithm huffman tree generator.
// It computes minimum-redundancy lengths in place and, when they are too
// long, pushes the excess back under the limit until the Kraft-McMillan sum is
// exact again. It is faster than BoundedTree but its lengths differ from
// libwebp's.
type KraftTree struct {
	leaves    []node
	w         []uint64
	lenCounts []int
}

// NewKraftTree creates a new KraftTree instance
func NewKraftTree() *KraftTree {
	return &KraftTree{}
}

// Generate huffman tree from histogram and write code lengths into codeLens.
func (l *KraftTree) Generate(maxLen int, histogram []uint32, codeLens []uint8) (int, error) {
	num := usedSymbols(histogram)
	if err := checkLimit(maxLen, num); err != nil {
		return 0, err
	}
	codeLens = codeLens[:len(histogram)]
	clearLens(codeLens)

	l.leaves = l.leaves[:0]
	for i, v := range histogram {
		if v != 0 {
			l.leaves = append(l.leaves, node{total: uint64(v), symbol: i, left: -1, right: -1})
		}
	}
	sort.Sort(byCount(l.leaves))

	if cap(l.w) < num {
		l.w = make([]uint64, num)
	}
	l.w = l.w[:num]
	for i, v := range l.leaves {
		l.w[i] = v.total
	}

	maxBits := int(moffatCodeLens(l.w))
	if maxBits <= maxLen {
		for i, v := range l.w {
			codeLens[l.leaves[i].symbol] = uint8(v)
		}
		return num, nil
	}

	if cap(l.lenCounts) < maxBits+1 {
		l.lenCounts = make([]int, maxBits+1)
	}
	l.lenCounts = l.lenCounts[:maxBits+1]
	for i := range l.lenCounts {
		l.lenCounts[i] = 0
	}
	for _, v := range l.w {
		l.lenCounts[v]++
	}

	enforceMaxLen(l.lenCounts, maxLen)
	// most frequent symbols take the shortest lengths
	idx := 0
	for length := 1; length <= maxLen; length++ {
		for j := 0; j < l.lenCounts[length]; j++ {
			codeLens[l.leaves[idx].symbol] = uint8(length)
			idx++
		}
	}
	return num, nil
}

func enforceMaxLen(lenCounts []int, maxLen int) {
	// move all oversize length to the maxLen
	for i := maxLen + 1; i < len(lenCounts); i++ {
		lenCounts[maxLen] += lenCounts[i]
		lenCounts[i] = 0
	}

	// Kraft-McMillan inequality, scaled by 2^maxLen:
	// sum(lenCounts[i] * 2^(maxLen-i)) == 2^maxLen
	// Each round below takes one leaf off maxLen and splits a shorter leaf,
	// lowering the sum by exactly one.
	total := 0
	for i := 1; i <= maxLen; i++ {
		total += lenCounts[i] << (maxLen - i)
	}
	for total != 1<<maxLen {
		// move longest nodes
		lenCounts[maxLen]--
		for i := maxLen - 1; i > 0; i-- {
			if lenCounts[i] != 0 {
				lenCounts[i]--
				lenCounts[i+1] += 2
				break
			}
		}
		total--
	}
}
