// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

// Pre-reversed 4-bit values.
var reversedNibbles = [16]uint8{
	0x0, 0x8, 0x4, 0xc, 0x2, 0xa, 0x6, 0xe,
	0x1, 0x9, 0x5, 0xd, 0x3, 0xb, 0x7, 0xf,
}

// reverseBits reverses the low numBits bits of code.
func reverseBits(numBits int, code uint32) uint32 {
	var r uint32
	for i := 0; i < numBits; {
		i += 4
		r |= uint32(reversedNibbles[code&0xf]) << (MaxAllowedCodeLength + 1 - i)
		code >>= 4
	}
	return r >> (MaxAllowedCodeLength + 1 - numBits)
}

// GenerateCode generate code in reversed format.
// Symbols of equal length get increasing codes in symbol order before the
// reversal, so the codes can be written least significant bit first.
// Unused symbols get code 0.
func GenerateCode(lens []uint8, codes []uint32) {
	var blCount [MaxAllowedCodeLength + 1]uint32
	for _, l := range lens {
		blCount[l]++
	}
	blCount[0] = 0

	var nextCodes [MaxAllowedCodeLength + 1]uint32
	code := uint32(0)
	for bits := 1; bits <= MaxAllowedCodeLength; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCodes[bits] = code
	}
	for i, l := range lens {
		if l == 0 {
			codes[i] = 0
			continue
		}
		codes[i] = reverseBits(int(l), nextCodes[l])
		nextCodes[l]++
	}
}
