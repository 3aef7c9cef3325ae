// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package asconp

import (
	"github.com/lightcrypt/lwcgo/internal/masking"
	"github.com/lightcrypt/lwcgo/internal/maskrand"
)

// MaskedState is the ASCON permutation state split into Boolean masking
// shares, one masked word per 64-bit lane.
type MaskedState struct {
	S [5]masking.Word64
}

// Mask converts a plain state into an n-share masked state using fresh
// randomness from rng.
func Mask(n int, s *State, rng maskrand.Source) MaskedState {
	var m MaskedState
	for i := 0; i < 5; i++ {
		m.S[i] = masking.NewWord64(n, s.Lane(i), rng)
	}
	return m
}

// Unmask recombines the shares into a plain state.
func (m *MaskedState) Unmask(s *State) {
	for i := 0; i < 5; i++ {
		s.SetLane(i, m.S[i].Output())
	}
}

// Zeroize clears every share of the masked state.
func (m *MaskedState) Zeroize() {
	for i := range m.S {
		m.S[i].Zero()
	}
}

// Permute runs the masked ASCON permutation from firstRound to round
// 11. The linear layer is applied share-wise; the S-box realises every
// AND through the refreshed masked AND so that the sharing stays
// non-leaking across the non-linear layer.
func (m *MaskedState) Permute(firstRound int, rng maskrand.Source) {
	x0 := &m.S[0]
	x1 := &m.S[1]
	x2 := &m.S[2]
	x3 := &m.S[3]
	x4 := &m.S[4]
	var t0, t1 masking.Word64

	for round := firstRound; round < 12; round++ {
		// Round constants only ever touch share 0
		x2.XorConst(uint64(((0x0F - round) << 4) | round))

		// Substitution layer
		x0.Xor(*x4)
		x4.Xor(*x3)
		x2.Xor(*x1)
		t1 = *x0
		t0 = masking.Zero64(x0.Shares())
		t0.AndNot(*x0, *x1, rng)
		x0.AndNot(*x1, *x2, rng)
		x1.AndNot(*x2, *x3, rng)
		x2.AndNot(*x3, *x4, rng)
		x3.AndNot(*x4, t1, rng)
		x4.Xor(t0)
		x1.Xor(*x0)
		x0.Xor(*x4)
		x3.Xor(*x2)
		x2.Not()

		// Linear diffusion layer
		t0.RotateRight(*x0, 19)
		t1.RotateRight(*x0, 28)
		x0.Xor(t0)
		x0.Xor(t1)
		t0.RotateRight(*x1, 61)
		t1.RotateRight(*x1, 39)
		x1.Xor(t0)
		x1.Xor(t1)
		t0.RotateRight(*x2, 1)
		t1.RotateRight(*x2, 6)
		x2.Xor(t0)
		x2.Xor(t1)
		t0.RotateRight(*x3, 10)
		t1.RotateRight(*x3, 17)
		x3.Xor(t0)
		x3.Xor(t1)
		t0.RotateRight(*x4, 7)
		t1.RotateRight(*x4, 41)
		x4.Xor(t0)
		x4.Xor(t1)
	}
}
