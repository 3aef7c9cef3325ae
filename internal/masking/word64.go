// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package masking

import (
	"math/bits"

	"github.com/lightcrypt/lwcgo/internal/maskrand"
)

// Word64 is an N-share masked 64-bit word. The zero value is unusable;
// construct one with NewWord64 or Zero64.
type Word64 struct {
	n int
	s [MaxShares]uint64
}

// NewWord64 splits v into n fresh shares drawn from rng.
func NewWord64(n int, v uint64, rng maskrand.Source) Word64 {
	var w Word64
	w.n = n
	for i := 1; i < n; i++ {
		w.s[i] = rng.Uint64()
		v ^= w.s[i]
	}
	w.s[0] = v
	return w
}

// Zero64 returns an n-share word with all shares zero.
func Zero64(n int) Word64 {
	return Word64{n: n}
}

// Shares returns the share count of the word.
func (w Word64) Shares() int { return w.n }

// Share returns share i. Permutation code may read individual shares to
// apply linear layers share-wise; tests use it for share-independence
// sampling.
func (w Word64) Share(i int) uint64 { return w.s[i] }

// SetShare overwrites share i. Only linear share-wise transforms may use
// this; mixing shares through it would break the masking invariant.
func (w *Word64) SetShare(i int, v uint64) { w.s[i] = v }

// Output recombines the shares into the plain value.
func (w Word64) Output() uint64 {
	v := w.s[0]
	for i := 1; i < w.n; i++ {
		v ^= w.s[i]
	}
	return v
}

// Zero clears every share in place.
func (w *Word64) Zero() {
	for i := range w.s {
		w.s[i] = 0
	}
}

// XorConst adds a public constant; only share 0 carries constants.
func (w *Word64) XorConst(c uint64) {
	w.s[0] ^= c
}

// Xor performs w ^= x share-wise.
func (w *Word64) Xor(x Word64) {
	for i := 0; i < w.n; i++ {
		w.s[i] ^= x.s[i]
	}
}

// XorWords performs w = x ^ y share-wise.
func (w *Word64) XorWords(x, y Word64) {
	w.n = x.n
	for i := 0; i < w.n; i++ {
		w.s[i] = x.s[i] ^ y.s[i]
	}
}

// Not complements the word by flipping share 0.
func (w *Word64) Not() {
	w.s[0] = ^w.s[0]
}

// ShiftLeft sets w = x << n share-wise.
func (w *Word64) ShiftLeft(x Word64, n uint) {
	w.n = x.n
	for i := 0; i < w.n; i++ {
		w.s[i] = x.s[i] << n
	}
}

// ShiftRight sets w = x >> n share-wise.
func (w *Word64) ShiftRight(x Word64, n uint) {
	w.n = x.n
	for i := 0; i < w.n; i++ {
		w.s[i] = x.s[i] >> n
	}
}

// RotateRight sets w = x >>> n share-wise.
func (w *Word64) RotateRight(x Word64, n int) {
	w.n = x.n
	for i := 0; i < w.n; i++ {
		w.s[i] = bits.RotateLeft64(x.s[i], -n)
	}
}

// RotateLeft sets w = x <<< n share-wise.
func (w *Word64) RotateLeft(x Word64, n int) {
	w.n = x.n
	for i := 0; i < w.n; i++ {
		w.s[i] = bits.RotateLeft64(x.s[i], n)
	}
}

// Swap64 exchanges two masked words share-wise.
func Swap64(a, b *Word64) {
	for i := 0; i < a.n; i++ {
		a.s[i], b.s[i] = b.s[i], a.s[i]
	}
}

// SwapMove64 applies the bit permutation step
// t = (b ^ (a >> shift)) & mask; b ^= t; a ^= t << shift
// to each share of the pair.
func SwapMove64(a, b *Word64, mask uint64, shift uint) {
	for i := 0; i < a.n; i++ {
		t := (b.s[i] ^ (a.s[i] >> shift)) & mask
		b.s[i] ^= t
		a.s[i] ^= t << shift
	}
}

// Refresh re-randomises the sharing of w without changing its value.
func (w *Word64) Refresh(rng maskrand.Source) {
	for i := 1; i < w.n; i++ {
		r := rng.Uint64()
		w.s[0] ^= r
		w.s[i] ^= r
	}
}

// mixAnd64 folds the blinded cross-terms of shares i and j into the
// accumulator. Every (i, j) pair must pass through here exactly once.
func mixAnd64(w *Word64, x, y *Word64, i, j int, rng maskrand.Source) {
	tmp := rng.Uint64()
	w.s[i] ^= tmp
	tmp ^= y.s[j] & x.s[i]
	w.s[j] ^= tmp ^ (y.s[i] & x.s[j])
}

func andCore64(w *Word64, x, y *Word64, rng maskrand.Source) {
	n := w.n
	for i := 0; i < n; i++ {
		w.s[i] ^= x.s[i] & y.s[i]
		for j := i + 1; j < n; j++ {
			mixAnd64(w, x, y, i, j, rng)
		}
	}
}

// And performs w ^= x & y with ISW refreshing.
func (w *Word64) And(x, y Word64, rng maskrand.Source) {
	andCore64(w, &x, &y, rng)
}

// AndNot performs w ^= (~x) & y. Inverting share 0 of x is sufficient
// because only share 0 carries the complement constant.
func (w *Word64) AndNot(x, y Word64, rng maskrand.Source) {
	x.s[0] = ^x.s[0]
	andCore64(w, &x, &y, rng)
}

// Or performs w ^= x | y, computed as ~(~x & ~y) on the shares.
func (w *Word64) Or(x, y Word64, rng maskrand.Source) {
	w.s[0] ^= x.s[0] | y.s[0]
	x.s[0] = ^x.s[0]
	y.s[0] = ^y.s[0]
	n := w.n
	for i := 0; i < n; i++ {
		if i > 0 {
			w.s[i] ^= x.s[i] & y.s[i]
		}
		for j := i + 1; j < n; j++ {
			mixAnd64(w, &x, &y, i, j, rng)
		}
	}
}
