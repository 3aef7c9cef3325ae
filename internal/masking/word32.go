// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package masking

import (
	"math/bits"

	"github.com/lightcrypt/lwcgo/internal/maskrand"
)

// Word32 is an N-share masked 32-bit word.
type Word32 struct {
	n int
	s [MaxShares]uint32
}

// NewWord32 splits v into n fresh shares drawn from rng.
func NewWord32(n int, v uint32, rng maskrand.Source) Word32 {
	var w Word32
	w.n = n
	for i := 1; i < n; i++ {
		w.s[i] = rng.Uint32()
		v ^= w.s[i]
	}
	w.s[0] = v
	return w
}

// Zero32 returns an n-share word with all shares zero.
func Zero32(n int) Word32 {
	return Word32{n: n}
}

// Shares returns the share count of the word.
func (w Word32) Shares() int { return w.n }

// Share returns share i. Permutation code may read individual shares to
// apply linear layers share-wise; tests use it for share-independence
// sampling.
func (w Word32) Share(i int) uint32 { return w.s[i] }

// SetShare overwrites share i. Only linear share-wise transforms may use
// this; mixing shares through it would break the masking invariant.
func (w *Word32) SetShare(i int, v uint32) { w.s[i] = v }

// Output recombines the shares into the plain value.
func (w Word32) Output() uint32 {
	v := w.s[0]
	for i := 1; i < w.n; i++ {
		v ^= w.s[i]
	}
	return v
}

// Zero clears every share in place.
func (w *Word32) Zero() {
	for i := range w.s {
		w.s[i] = 0
	}
}

// XorConst adds a public constant; only share 0 carries constants.
func (w *Word32) XorConst(c uint32) {
	w.s[0] ^= c
}

// Xor performs w ^= x share-wise.
func (w *Word32) Xor(x Word32) {
	for i := 0; i < w.n; i++ {
		w.s[i] ^= x.s[i]
	}
}

// XorWords performs w = x ^ y share-wise.
func (w *Word32) XorWords(x, y Word32) {
	w.n = x.n
	for i := 0; i < w.n; i++ {
		w.s[i] = x.s[i] ^ y.s[i]
	}
}

// Not complements the word by flipping share 0.
func (w *Word32) Not() {
	w.s[0] = ^w.s[0]
}

// ShiftLeft sets w = x << n share-wise.
func (w *Word32) ShiftLeft(x Word32, n uint) {
	w.n = x.n
	for i := 0; i < w.n; i++ {
		w.s[i] = x.s[i] << n
	}
}

// ShiftRight sets w = x >> n share-wise.
func (w *Word32) ShiftRight(x Word32, n uint) {
	w.n = x.n
	for i := 0; i < w.n; i++ {
		w.s[i] = x.s[i] >> n
	}
}

// RotateRight sets w = x >>> n share-wise.
func (w *Word32) RotateRight(x Word32, n int) {
	w.n = x.n
	for i := 0; i < w.n; i++ {
		w.s[i] = bits.RotateLeft32(x.s[i], -n)
	}
}

// RotateLeft sets w = x <<< n share-wise.
func (w *Word32) RotateLeft(x Word32, n int) {
	w.n = x.n
	for i := 0; i < w.n; i++ {
		w.s[i] = bits.RotateLeft32(x.s[i], n)
	}
}

// Swap32 exchanges two masked words share-wise.
func Swap32(a, b *Word32) {
	for i := 0; i < a.n; i++ {
		a.s[i], b.s[i] = b.s[i], a.s[i]
	}
}

// SwapMove32 applies the bit permutation step
// t = (b ^ (a >> shift)) & mask; b ^= t; a ^= t << shift
// to each share of the pair.
func SwapMove32(a, b *Word32, mask uint32, shift uint) {
	for i := 0; i < a.n; i++ {
		t := (b.s[i] ^ (a.s[i] >> shift)) & mask
		b.s[i] ^= t
		a.s[i] ^= t << shift
	}
}

// Refresh re-randomises the sharing of w without changing its value.
func (w *Word32) Refresh(rng maskrand.Source) {
	for i := 1; i < w.n; i++ {
		r := rng.Uint32()
		w.s[0] ^= r
		w.s[i] ^= r
	}
}

func mixAnd32(w *Word32, x, y *Word32, i, j int, rng maskrand.Source) {
	tmp := rng.Uint32()
	w.s[i] ^= tmp
	tmp ^= y.s[j] & x.s[i]
	w.s[j] ^= tmp ^ (y.s[i] & x.s[j])
}

func andCore32(w *Word32, x, y *Word32, rng maskrand.Source) {
	n := w.n
	for i := 0; i < n; i++ {
		w.s[i] ^= x.s[i] & y.s[i]
		for j := i + 1; j < n; j++ {
			mixAnd32(w, x, y, i, j, rng)
		}
	}
}

// And performs w ^= x & y with ISW refreshing.
func (w *Word32) And(x, y Word32, rng maskrand.Source) {
	andCore32(w, &x, &y, rng)
}

// AndNot performs w ^= (~x) & y.
func (w *Word32) AndNot(x, y Word32, rng maskrand.Source) {
	x.s[0] = ^x.s[0]
	andCore32(w, &x, &y, rng)
}

// Or performs w ^= x | y, computed as ~(~x & ~y) on the shares.
func (w *Word32) Or(x, y Word32, rng maskrand.Source) {
	w.s[0] ^= x.s[0] | y.s[0]
	x.s[0] = ^x.s[0]
	y.s[0] = ^y.s[0]
	n := w.n
	for i := 0; i < n; i++ {
		if i > 0 {
			w.s[i] ^= x.s[i] & y.s[i]
		}
		for j := i + 1; j < n; j++ {
			mixAnd32(w, &x, &y, i, j, rng)
		}
	}
}
