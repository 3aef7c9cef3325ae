// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package asconp implements the ASCON permutation.
//
// References: http://competitions.cr.yp.to/round3/asconv12.pdf,
// http://ascon.iaik.tugraz.at/
package asconp

import (
	"encoding/binary"
	"math/bits"
)

// StateSize is the size of the ASCON permutation state in bytes.
const StateSize = 40

// State is the 320-bit ASCON permutation state in big-endian byte
// order. The byte view is the canonical exterior representation; the
// five 64-bit lanes are materialised on entry to Permute and written
// back on exit.
type State [StateSize]byte

// Lane returns 64-bit lane i of the state.
func (s *State) Lane(i int) uint64 {
	return binary.BigEndian.Uint64(s[i*8:])
}

// SetLane stores v into 64-bit lane i of the state.
func (s *State) SetLane(i int, v uint64) {
	binary.BigEndian.PutUint64(s[i*8:], v)
}

// Permute runs the ASCON permutation from firstRound to round 11.
// firstRound is 0, 4, or 6 for the 12, 8 and 6 round variants.
func (s *State) Permute(firstRound int) {
	x0 := binary.BigEndian.Uint64(s[0:])
	x1 := binary.BigEndian.Uint64(s[8:])
	x2 := binary.BigEndian.Uint64(s[16:])
	x3 := binary.BigEndian.Uint64(s[24:])
	x4 := binary.BigEndian.Uint64(s[32:])

	for round := firstRound; round < 12; round++ {
		// Add the round constant to the state
		x2 ^= uint64(((0x0F - round) << 4) | round)

		// Substitution layer, bit-sliced as in the ASCON submission
		x0 ^= x4
		x4 ^= x3
		x2 ^= x1
		t0 := ^x0 & x1
		t1 := ^x1 & x2
		t2 := ^x2 & x3
		t3 := ^x3 & x4
		t4 := ^x4 & x0
		x0 ^= t1
		x1 ^= t2
		x2 ^= t3
		x3 ^= t4
		x4 ^= t0
		x1 ^= x0
		x0 ^= x4
		x3 ^= x2
		x2 = ^x2

		// Linear diffusion layer
		x0 ^= bits.RotateLeft64(x0, -19) ^ bits.RotateLeft64(x0, -28)
		x1 ^= bits.RotateLeft64(x1, -61) ^ bits.RotateLeft64(x1, -39)
		x2 ^= bits.RotateLeft64(x2, -1) ^ bits.RotateLeft64(x2, -6)
		x3 ^= bits.RotateLeft64(x3, -10) ^ bits.RotateLeft64(x3, -17)
		x4 ^= bits.RotateLeft64(x4, -7) ^ bits.RotateLeft64(x4, -41)
	}

	binary.BigEndian.PutUint64(s[0:], x0)
	binary.BigEndian.PutUint64(s[8:], x1)
	binary.BigEndian.PutUint64(s[16:], x2)
	binary.BigEndian.PutUint64(s[24:], x3)
	binary.BigEndian.PutUint64(s[32:], x4)
}
