// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

// Runs at least this long are already cheap to code and are left alone.
const (
	minGoodZeroRun  = 5
	minGoodValueRun = 7
)

// collapsible reports whether a count is close enough to the running stride
// value to be merged into it.
func collapsible(a, b uint32) bool {
	if a > b {
		return a-b < 4
	}
	return b-a < 4
}

// OptimizeForRLE rewrites counts in place so that the code lengths derived
// from them form longer runs, which the code length tokens compress better.
//
// Existing runs of at least 5 zeros or 7 equal non-zero counts are kept.
// Other strides of similar counts, at least 4 long (3 if all zero), are
// replaced by their rounded mean. A zero-sum stride stays zero and a used
// symbol is never turned into an unused one.
func OptimizeForRLE(counts []uint32) {
	length := len(counts)
	for length > 0 && counts[length-1] == 0 {
		length--
	}
	if length == 0 {
		return
	}
	counts = counts[:length]

	good := make([]bool, length)
	symbol := counts[0]
	stride := 0
	for i := 0; i <= length; i++ {
		if i == length || counts[i] != symbol {
			if (symbol == 0 && stride >= minGoodZeroRun) ||
				(symbol != 0 && stride >= minGoodValueRun) {
				for k := 0; k < stride; k++ {
					good[i-k-1] = true
				}
			}
			stride = 1
			if i != length {
				symbol = counts[i]
			}
		} else {
			stride++
		}
	}

	stride = 0
	limit := counts[0]
	sum := uint64(0)
	for i := 0; i <= length; i++ {
		if i == length || good[i] || (i != 0 && good[i-1]) ||
			!collapsible(counts[i], limit) {
			if stride >= 4 || (stride >= 3 && sum == 0) {
				count := uint32((sum + uint64(stride/2)) / uint64(stride))
				if count < 1 {
					count = 1
				}
				if sum == 0 {
					count = 0
				}
				// counts[i] already belongs to the next stride
				for k := 0; k < stride; k++ {
					counts[i-k-1] = count
				}
			}
			stride = 0
			sum = 0
			switch {
			case i < length-3:
				limit = uint32((uint64(counts[i]) + uint64(counts[i+1]) +
					uint64(counts[i+2]) + uint64(counts[i+3]) + 2) / 4)
			case i < length:
				limit = counts[i]
			default:
				limit = 0
			}
		}
		stride++
		if i != length {
			sum += uint64(counts[i])
			if stride >= 4 {
				limit = uint32((sum + uint64(stride/2)) / uint64(stride))
			}
		}
	}
}
