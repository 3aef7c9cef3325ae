// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package ascon

import (
	"bytes"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestHashIncrementalMatchesOneShot(t *testing.T) {
	input := []byte("The ASCON sponge absorbs at eight bytes per permutation")

	oneShot := SumHash(nil, input)
	qt.Assert(t, qt.Equals(len(oneShot), HashSize))

	// Feed the same input in awkward pieces
	h := NewHash()
	for _, n := range []int{1, 2, 3, 5, 7, 11} {
		if n > len(input) {
			n = len(input)
		}
		h.Write(input[:n])
		input = input[n:]
	}
	h.Write(input)
	qt.Assert(t, qt.DeepEquals(h.Sum(nil), oneShot))
}

func TestHashSumDoesNotDisturbState(t *testing.T) {
	h := NewHash()
	h.Write([]byte("prefix"))
	first := h.Sum(nil)
	second := h.Sum(nil)
	qt.Assert(t, qt.DeepEquals(first, second))

	h.Write([]byte(" suffix"))
	qt.Assert(t, qt.DeepEquals(h.Sum(nil), SumHash(nil, []byte("prefix suffix"))))
}

func TestHashAvalanche(t *testing.T) {
	input := bytes.Repeat([]byte{0x33}, 64)
	base := SumHash(nil, input)

	input[len(input)-1] ^= 0x01
	changed := SumHash(nil, input)

	// Changing the final input byte should flip about half the output
	// bits; anything below a quarter signals a broken diffusion layer.
	var flipped int
	for i := range base {
		for d := base[i] ^ changed[i]; d != 0; d &= d - 1 {
			flipped++
		}
	}
	if flipped < HashSize*8/4 {
		t.Errorf("only %d of %d output bits flipped", flipped, HashSize*8)
	}
}

func TestXofSplitSqueeze(t *testing.T) {
	input := []byte("extendable output function")

	x := NewXof()
	x.Absorb(input)
	full := make([]byte, 100)
	x.Squeeze(full)

	x = NewXof()
	x.Absorb(input)
	split := make([]byte, 100)
	// Squeeze in ragged pieces: the stream must not depend on the read
	// boundaries.
	for off, n := 0, 1; off < len(split); n = n*2 + 1 {
		if n > 17 {
			n = 3
		}
		if off+n > len(split) {
			n = len(split) - off
		}
		x.Squeeze(split[off : off+n])
		off += n
	}
	qt.Assert(t, qt.DeepEquals(split, full))
}

func TestXofAbsorbSplit(t *testing.T) {
	input := []byte("absorb boundaries must not matter either, even past one block")

	x := NewXof()
	x.Absorb(input)
	want := make([]byte, 64)
	x.Squeeze(want)

	x = NewXof()
	x.Absorb(input[:5])
	x.Absorb(input[5:13])
	x.Absorb(input[13:])
	got := make([]byte, 64)
	x.Squeeze(got)
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestXofAbsorbAfterSqueeze(t *testing.T) {
	x := NewXof()
	x.Absorb([]byte("first"))
	var tmp [8]byte
	x.Squeeze(tmp[:])
	x.Absorb([]byte("second"))
	out1 := make([]byte, 32)
	x.Squeeze(out1)

	// The same sequence must reproduce the same stream
	x = NewXof()
	x.Absorb([]byte("first"))
	x.Squeeze(tmp[:])
	x.Absorb([]byte("second"))
	out2 := make([]byte, 32)
	x.Squeeze(out2)
	qt.Assert(t, qt.DeepEquals(out1, out2))

	// And it must differ from absorbing both strings back to back
	x = NewXof()
	x.Absorb([]byte("firstsecond"))
	out3 := make([]byte, 32)
	x.Squeeze(out3)
	if bytes.Equal(out1, out3) {
		t.Fatal("squeeze between absorbs did not change the stream")
	}
}

func TestXofDiffersFromHash(t *testing.T) {
	input := []byte("same input")
	if bytes.Equal(SumHash(nil, input), SumXof(nil, input)) {
		t.Fatal("ASCON-HASH and ASCON-XOF must not collide on the same input")
	}
}
