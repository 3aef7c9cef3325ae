// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package knotp

import (
	"encoding/binary"

	"github.com/lightcrypt/lwcgo/internal/masking"
	"github.com/lightcrypt/lwcgo/internal/maskrand"
)

// MaskedState256 is the KNOT-256 state split into masking shares, one
// masked word per 64-bit row.
type MaskedState256 struct {
	S [4]masking.Word64
}

// MaskedState384 is the KNOT-384 state split into masking shares. Each
// 96-bit row is a 64-bit low word L[i] and a 32-bit high word H[i].
type MaskedState384 struct {
	L [4]masking.Word64
	H [4]masking.Word32
}

// MaskedState512 is the KNOT-512 state split into masking shares, one
// masked word per 64-bit half-row.
type MaskedState512 struct {
	S [8]masking.Word64
}

// maskedSbox64 applies the KNOT S-box to four masked rows. Row 0 is
// replaced in place; the other rows come back in b1, b2, b3. Every AND
// and OR goes through the refreshed masked operations.
func maskedSbox64(a0, a1, a2, a3 *masking.Word64, b1, b2, b3 *masking.Word64, rng maskrand.Source) {
	var t1, t3, t6 masking.Word64
	t1 = *a0
	t1.Not()
	t3 = *a2
	t3.And(*a1, t1, rng)
	b3.XorWords(*a3, t3)
	t6.XorWords(*a3, t1)
	*b2 = t6
	b2.Or(*a1, *a2, rng)
	t1.XorWords(*a1, *a3)
	*a0 = t1
	a0.And(t3, t6, rng)
	*b1 = t3
	b1.And(*b2, t1, rng)
}

// maskedSbox32 is maskedSbox64 for 32-bit row fragments.
func maskedSbox32(a0, a1, a2, a3 *masking.Word32, b1, b2, b3 *masking.Word32, rng maskrand.Source) {
	var t1, t3, t6 masking.Word32
	t1 = *a0
	t1.Not()
	t3 = *a2
	t3.And(*a1, t1, rng)
	b3.XorWords(*a3, t3)
	t6.XorWords(*a3, t1)
	*b2 = t6
	b2.Or(*a1, *a2, rng)
	t1.XorWords(*a1, *a3)
	*a0 = t1
	a0.And(t3, t6, rng)
	*b1 = t3
	b1.And(*b2, t1, rng)
}

func (m *MaskedState256) permute(rc []byte, rounds int, rng maskrand.Source) {
	var b1, b2, b3 masking.Word64
	for r := 0; r < rounds; r++ {
		m.S[0].XorConst(uint64(rc[r]))
		maskedSbox64(&m.S[0], &m.S[1], &m.S[2], &m.S[3], &b1, &b2, &b3, rng)
		m.S[1].RotateLeft(b1, 1)
		m.S[2].RotateLeft(b2, 8)
		m.S[3].RotateLeft(b3, 25)
	}
}

// Permute6 runs the masked KNOT-256 permutation with the 6-bit round
// constant schedule.
func (m *MaskedState256) Permute6(rounds int, rng maskrand.Source) {
	m.permute(rc6[:], rounds, rng)
}

// Permute7 runs the masked KNOT-256 permutation with the 7-bit round
// constant schedule.
func (m *MaskedState256) Permute7(rounds int, rng maskrand.Source) {
	m.permute(rc7[:], rounds, rng)
}

// Unmask recombines the shares into the little-endian byte state.
func (m *MaskedState256) Unmask(s *State256) {
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(s[i*8:], m.S[i].Output())
	}
}

// Zeroize clears every share of the masked state.
func (m *MaskedState256) Zeroize() {
	for i := range m.S {
		m.S[i].Zero()
	}
}

// rotShort96 rotates a masked 96-bit row left by n < 32 bits,
// share-wise.
func rotShort96(l *masking.Word64, h *masking.Word32, bl masking.Word64, bh masking.Word32, n uint) {
	for i := 0; i < bl.Shares(); i++ {
		b0 := bl.Share(i)
		b1 := bh.Share(i)
		l.SetShare(i, (b0<<n)|uint64(b1>>(32-n)))
		h.SetShare(i, (b1<<n)|uint32(b0>>(64-n)))
	}
}

// rotLong96 rotates a masked 96-bit row left by 32 < n < 64 bits,
// share-wise.
func rotLong96(l *masking.Word64, h *masking.Word32, bl masking.Word64, bh masking.Word32, n uint) {
	for i := 0; i < bl.Shares(); i++ {
		b0 := bl.Share(i)
		b1 := bh.Share(i)
		l.SetShare(i, (b0<<n)|(uint64(b1)<<(n-32))|(b0>>(96-n)))
		h.SetShare(i, uint32((b0<<(n-32))>>32))
	}
}

// Permute7 runs the masked KNOT-384 permutation with the 7-bit round
// constant schedule.
func (m *MaskedState384) Permute7(rounds int, rng maskrand.Source) {
	var bl1, bl2, bl3 masking.Word64
	var bh1, bh2, bh3 masking.Word32
	for r := 0; r < rounds; r++ {
		m.L[0].XorConst(uint64(rc7[r]))
		maskedSbox64(&m.L[0], &m.L[1], &m.L[2], &m.L[3], &bl1, &bl2, &bl3, rng)
		maskedSbox32(&m.H[0], &m.H[1], &m.H[2], &m.H[3], &bh1, &bh2, &bh3, rng)
		rotShort96(&m.L[1], &m.H[1], bl1, bh1, 1)
		rotShort96(&m.L[2], &m.H[2], bl2, bh2, 8)
		rotLong96(&m.L[3], &m.H[3], bl3, bh3, 55)
	}
}

// Unmask recombines the shares into the little-endian byte state.
func (m *MaskedState384) Unmask(s *State384) {
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(s[i*12:], m.L[i].Output())
		binary.LittleEndian.PutUint32(s[i*12+8:], m.H[i].Output())
	}
}

// Zeroize clears every share of the masked state.
func (m *MaskedState384) Zeroize() {
	for i := range m.L {
		m.L[i].Zero()
		m.H[i].Zero()
	}
}

func (m *MaskedState512) permute(rc []byte, rounds int, rng maskrand.Source) {
	var b2, b3, b4, b5, b6, b7 masking.Word64
	for r := 0; r < rounds; r++ {
		m.S[0].XorConst(uint64(rc[r]))
		maskedSbox64(&m.S[0], &m.S[2], &m.S[4], &m.S[6], &b2, &b4, &b6, rng)
		maskedSbox64(&m.S[1], &m.S[3], &m.S[5], &m.S[7], &b3, &b5, &b7, rng)
		rot128(&m.S[2], &m.S[3], b2, b3, 1)
		rot128(&m.S[4], &m.S[5], b4, b5, 16)
		rot128(&m.S[6], &m.S[7], b6, b7, 25)
	}
}

// rot128 rotates a masked 128-bit row left by n bits, share-wise.
func rot128(lo, hi *masking.Word64, bl, bh masking.Word64, n uint) {
	for i := 0; i < bl.Shares(); i++ {
		b0 := bl.Share(i)
		b1 := bh.Share(i)
		lo.SetShare(i, (b0<<n)|(b1>>(64-n)))
		hi.SetShare(i, (b1<<n)|(b0>>(64-n)))
	}
}

// Permute7 runs the masked KNOT-512 permutation with the 7-bit round
// constant schedule.
func (m *MaskedState512) Permute7(rounds int, rng maskrand.Source) {
	m.permute(rc7[:], rounds, rng)
}

// Permute8 runs the masked KNOT-512 permutation with the 8-bit round
// constant schedule.
func (m *MaskedState512) Permute8(rounds int, rng maskrand.Source) {
	m.permute(rc8[:], rounds, rng)
}

// Unmask recombines the shares into the little-endian byte state.
func (m *MaskedState512) Unmask(s *State512) {
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint64(s[i*8:], m.S[i].Output())
	}
}

// Zeroize clears every share of the masked state.
func (m *MaskedState512) Zeroize() {
	for i := range m.S {
		m.S[i].Zero()
	}
}
