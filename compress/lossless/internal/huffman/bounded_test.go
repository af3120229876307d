// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

var testGenerators = []struct {
	name string
	gen  func() TreeGenerator
}{
	{"bounded", func() TreeGenerator { return NewBoundedTree() }},
	{"kraft", func() TreeGenerator { return NewKraftTree() }},
}

// kraftSum returns sum(2^(MaxAllowedCodeLength-len)) over used symbols.
func kraftSum(lens []uint8) int {
	sum := 0
	for _, l := range lens {
		if l != 0 {
			sum += 1 << (MaxAllowedCodeLength - int(l))
		}
	}
	return sum
}

func checkLens(t *testing.T, histogram []uint32, lens []uint8, maxLen int) {
	t.Helper()
	used := 0
	for i, v := range histogram {
		if (v != 0) != (lens[i] != 0) {
			t.Fatalf("symbol %d: count %d but length %d", i, v, lens[i])
		}
		if int(lens[i]) > maxLen {
			t.Fatalf("symbol %d: length %d over limit %d", i, lens[i], maxLen)
		}
		if v != 0 {
			used++
		}
	}
	switch used {
	case 0:
	case 1:
		for i, v := range histogram {
			if v != 0 && lens[i] != 1 {
				t.Fatalf("single symbol %d has length %d", i, lens[i])
			}
		}
	default:
		if s := kraftSum(lens); s != 1<<MaxAllowedCodeLength {
			t.Fatalf("incomplete code: kraft sum %d/%d, lens %v", s, 1<<MaxAllowedCodeLength, lens)
		}
	}
}

func TestBoundedTreeKnownLengths(t *testing.T) {
	cases := []struct {
		histogram []uint32
		maxLen    int
		want      []uint8
	}{
		{[]uint32{1, 1, 1, 1}, 2, []uint8{2, 2, 2, 2}},
		{[]uint32{5}, 1, []uint8{1}},
		{[]uint32{5}, 15, []uint8{1}},
		{[]uint32{0, 0, 9, 0}, 4, []uint8{0, 0, 1, 0}},
		{[]uint32{0, 0, 0}, 4, []uint8{0, 0, 0}},
		// lower symbols win ties
		{[]uint32{1, 1, 1}, 15, []uint8{1, 2, 2}},
		{[]uint32{3, 2, 1, 1}, 15, []uint8{1, 2, 3, 3}},
		{[]uint32{1, 1, 1, 1, 1}, 15, []uint8{2, 2, 2, 3, 3}},
		// flattened by the count floor
		{[]uint32{1000, 1, 1, 1}, 2, []uint8{2, 2, 2, 2}},
	}
	b := NewBoundedTree()
	for _, c := range cases {
		lens := make([]uint8, len(c.histogram))
		for i := range lens {
			lens[i] = 7 // stale output must be cleared
		}
		num, err := b.Generate(c.maxLen, c.histogram, lens)
		if err != nil {
			t.Fatal(c.histogram, err)
		}
		if !reflect.DeepEqual(lens, c.want) {
			t.Errorf("%v limit %d: got %v, want %v", c.histogram, c.maxLen, lens, c.want)
		}
		if num != usedSymbols(c.histogram) {
			t.Errorf("%v: num %d", c.histogram, num)
		}
	}
}

func fibonacciHistogram(n int) []uint32 {
	h := make([]uint32, n)
	a, b := uint32(1), uint32(1)
	for i := range h {
		h[i] = a
		a, b = b, a+b
	}
	return h
}

func TestGenerateLimited(t *testing.T) {
	histogram := fibonacciHistogram(30)
	for _, g := range testGenerators {
		gen := g.gen()
		for maxLen := 6; maxLen <= MaxAllowedCodeLength; maxLen++ {
			lens := make([]uint8, len(histogram))
			if _, err := gen.Generate(maxLen, histogram, lens); err != nil {
				t.Fatal(g.name, maxLen, err)
			}
			checkLens(t, histogram, lens, maxLen)
		}
	}
}

func TestGenerateRandom(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, g := range testGenerators {
		gen := g.gen()
		for i := 0; i < 300; i++ {
			histogram := randomHistogram(r, 1+r.Intn(400))
			used := usedSymbols(histogram)
			maxLen := MaxAllowedCodeLength
			for maxLen > 1 && used <= 1<<(maxLen-2) && r.Intn(3) == 0 {
				maxLen--
			}
			lens := make([]uint8, len(histogram))
			if _, err := gen.Generate(maxLen, histogram, lens); err != nil {
				t.Fatal(g.name, err)
			}
			checkLens(t, histogram, lens, maxLen)
		}
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	for _, g := range testGenerators {
		gen := g.gen()
		lens := make([]uint8, 5)
		_, err := gen.Generate(2, []uint32{1, 1, 1, 1, 1}, lens)
		if !errors.Is(err, ErrTooManySymbols) || !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrTooManySymbols, got %v", g.name, err)
		}
		for _, maxLen := range []int{0, -1, MaxAllowedCodeLength + 1} {
			_, err = gen.Generate(maxLen, []uint32{1, 1}, lens)
			if !errors.Is(err, ErrInvalidDepthLimit) || !errors.Is(err, ErrInvalidInput) {
				t.Errorf("%s: limit %d: expected ErrInvalidDepthLimit, got %v", g.name, maxLen, err)
			}
		}
	}
}

func TestGenerateFullDepth(t *testing.T) {
	for _, g := range testGenerators {
		gen := g.gen()
		for maxLen := 1; maxLen <= 8; maxLen++ {
			// 1<<maxLen skewed symbols fit only as a full tree of depth maxLen
			histogram := make([]uint32, 1<<maxLen)
			for i := range histogram {
				histogram[i] = uint32(i*i + 1)
			}
			lens := make([]uint8, len(histogram))
			if _, err := gen.Generate(maxLen, histogram, lens); err != nil {
				t.Fatal(g.name, maxLen, err)
			}
			for i, l := range lens {
				if int(l) != maxLen {
					t.Fatalf("%s: limit %d: symbol %d has length %d", g.name, maxLen, i, l)
				}
			}

			histogram = append(histogram, 1)
			lens = append(lens, 0)
			_, err := gen.Generate(maxLen, histogram, lens)
			if !errors.Is(err, ErrTooManySymbols) {
				t.Errorf("%s: limit %d: %d symbols: expected ErrTooManySymbols, got %v",
					g.name, maxLen, len(histogram), err)
			}
		}

		lens := make([]uint8, 3)
		if _, err := gen.Generate(2, []uint32{9, 1, 1}, lens); err != nil {
			t.Fatal(g.name, err)
		}
		checkLens(t, []uint32{9, 1, 1}, lens, 2)
	}
}

func TestGeneratorsAgreeOnCost(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	bounded, kraft := NewBoundedTree(), NewKraftTree()
	cost := func(h []uint32, lens []uint8) (c uint64) {
		for i, v := range h {
			c += uint64(v) * uint64(lens[i])
		}
		return c
	}
	for i := 0; i < 200; i++ {
		// at most 16 symbols, so no tree can be deeper than the limit
		histogram := randomHistogram(r, 2+r.Intn(15))
		a := make([]uint8, len(histogram))
		b := make([]uint8, len(histogram))
		bounded.Generate(MaxAllowedCodeLength, histogram, a)
		kraft.Generate(MaxAllowedCodeLength, histogram, b)
		if cost(histogram, a) != cost(histogram, b) {
			t.Fatalf("cost mismatch %d != %d for %v", cost(histogram, a), cost(histogram, b), histogram)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	r := rand.New(rand.NewSource(5))
	histogram := randomHistogram(r, 280)
	lens := make([]uint8, len(histogram))
	for _, g := range testGenerators {
		gen := g.gen()
		b.Run(g.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				gen.Generate(MaxAllowedCodeLength, histogram, lens)
			}
		})
	}
}
