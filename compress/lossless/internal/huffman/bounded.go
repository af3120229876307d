// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "sort"

var _ TreeGenerator = &BoundedTree{}

// BoundedTree builds a Huffman tree and, while it is deeper than the limit,
// rebuilds it with every count raised to a doubling floor.
//
// Its code lengths are the ones libwebp's lossless encoder produces.
type BoundedTree struct {
	tree []node // sorted working set
	pool []node // merged children, referenced by index
}

// NewBoundedTree creates a new BoundedTree instance
func NewBoundedTree() *BoundedTree {
	return &BoundedTree{}
}

// Generate huffman tree from histogram and write code lengths into codeLens.
func (b *BoundedTree) Generate(maxLen int, histogram []uint32, codeLens []uint8) (int, error) {
	num := usedSymbols(histogram)
	if err := checkLimit(maxLen, num); err != nil {
		return 0, err
	}
	codeLens = codeLens[:len(histogram)]
	clearLens(codeLens)
	if num == 0 {
		return 0, nil
	}

	if cap(b.tree) < num {
		b.tree = make([]node, 0, num)
	}
	// every merge moves two nodes into the pool
	if cap(b.pool) < 2*(num-1) {
		b.pool = make([]node, 0, 2*(num-1))
	}

	for countMin := uint64(1); ; countMin *= 2 {
		tree := b.tree[:0]
		for sym, v := range histogram {
			if v == 0 {
				continue
			}
			count := uint64(v)
			if count < countMin {
				count = countMin
			}
			tree = append(tree, node{total: count, symbol: sym, left: -1, right: -1})
		}
		sort.Sort(byCount(tree))

		if len(tree) == 1 {
			codeLens[tree[0].symbol] = 1
			return num, nil
		}

		pool := b.pool[:0]
		size := len(tree)
		for size > 1 {
			pool = append(pool, tree[size-1], tree[size-2])
			total := pool[len(pool)-1].total + pool[len(pool)-2].total
			size -= 2

			// merged nodes go in front of leaves of equal count
			k := 0
			for k < size && tree[k].total > total {
				k++
			}
			copy(tree[k+1:size+1], tree[k:size])
			tree[k] = node{
				total:  total,
				symbol: -1,
				left:   len(pool) - 1,
				right:  len(pool) - 2,
			}
			size++
		}
		setDepths(pool, &tree[0], codeLens, 0)

		maxDepth := uint8(0)
		for _, l := range codeLens {
			if l > maxDepth {
				maxDepth = l
			}
		}
		if int(maxDepth) <= maxLen {
			return num, nil
		}
	}
}

func setDepths(pool []node, n *node, codeLens []uint8, depth uint8) {
	if n.left < 0 {
		codeLens[n.symbol] = depth
		return
	}
	setDepths(pool, &pool[n.left], codeLens, depth+1)
	setDepths(pool, &pool[n.right], codeLens, depth+1)
}
