// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package knotp implements the KNOT-256, KNOT-384 and KNOT-512
// permutations.
//
// Reference: https://csrc.nist.gov/projects/lightweight-cryptography
// (KNOT round 2 submission).
package knotp

import (
	"encoding/binary"
	"math/bits"
)

// State sizes in bytes.
const (
	State256Size = 32
	State384Size = 48
	State512Size = 64
)

// State256 is the 256-bit KNOT state: four 64-bit rows, little-endian.
type State256 [State256Size]byte

// State384 is the 384-bit KNOT state: four 96-bit rows, little-endian.
type State384 [State384Size]byte

// State512 is the 512-bit KNOT state: four 128-bit rows, little-endian.
type State512 [State512Size]byte

// Round constants for the 6, 7 and 8-bit LFSR schedules.
var rc6 = [52]byte{
	0x01, 0x02, 0x04, 0x08, 0x10, 0x21, 0x03, 0x06, 0x0c, 0x18, 0x31, 0x22,
	0x05, 0x0a, 0x14, 0x29, 0x13, 0x27, 0x0f, 0x1e, 0x3d, 0x3a, 0x34, 0x28,
	0x11, 0x23, 0x07, 0x0e, 0x1c, 0x39, 0x32, 0x24, 0x09, 0x12, 0x25, 0x0b,
	0x16, 0x2d, 0x1b, 0x37, 0x2e, 0x1d, 0x3b, 0x36, 0x2c, 0x19, 0x33, 0x26,
	0x0d, 0x1a, 0x35, 0x2a,
}

var rc7 = [104]byte{
	0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x41, 0x03, 0x06, 0x0c, 0x18, 0x30,
	0x61, 0x42, 0x05, 0x0a, 0x14, 0x28, 0x51, 0x23, 0x47, 0x0f, 0x1e, 0x3c,
	0x79, 0x72, 0x64, 0x48, 0x11, 0x22, 0x45, 0x0b, 0x16, 0x2c, 0x59, 0x33,
	0x67, 0x4e, 0x1d, 0x3a, 0x75, 0x6a, 0x54, 0x29, 0x53, 0x27, 0x4f, 0x1f,
	0x3e, 0x7d, 0x7a, 0x74, 0x68, 0x50, 0x21, 0x43, 0x07, 0x0e, 0x1c, 0x38,
	0x71, 0x62, 0x44, 0x09, 0x12, 0x24, 0x49, 0x13, 0x26, 0x4d, 0x1b, 0x36,
	0x6d, 0x5a, 0x35, 0x6b, 0x56, 0x2d, 0x5b, 0x37, 0x6f, 0x5e, 0x3d, 0x7b,
	0x76, 0x6c, 0x58, 0x31, 0x63, 0x46, 0x0d, 0x1a, 0x34, 0x69, 0x52, 0x25,
	0x4b, 0x17, 0x2e, 0x5d, 0x3b, 0x77, 0x6e, 0x5c,
}

var rc8 = [140]byte{
	0x01, 0x02, 0x04, 0x08, 0x11, 0x23, 0x47, 0x8e, 0x1c, 0x38, 0x71, 0xe2,
	0xc4, 0x89, 0x12, 0x25, 0x4b, 0x97, 0x2e, 0x5c, 0xb8, 0x70, 0xe0, 0xc0,
	0x81, 0x03, 0x06, 0x0c, 0x19, 0x32, 0x64, 0xc9, 0x92, 0x24, 0x49, 0x93,
	0x26, 0x4d, 0x9b, 0x37, 0x6e, 0xdc, 0xb9, 0x72, 0xe4, 0xc8, 0x90, 0x20,
	0x41, 0x82, 0x05, 0x0a, 0x15, 0x2b, 0x56, 0xad, 0x5b, 0xb6, 0x6d, 0xda,
	0xb5, 0x6b, 0xd6, 0xac, 0x59, 0xb2, 0x65, 0xcb, 0x96, 0x2c, 0x58, 0xb0,
	0x61, 0xc3, 0x87, 0x0f, 0x1f, 0x3e, 0x7d, 0xfb, 0xf6, 0xed, 0xdb, 0xb7,
	0x6f, 0xde, 0xbd, 0x7a, 0xf5, 0xeb, 0xd7, 0xae, 0x5d, 0xba, 0x74, 0xe8,
	0xd1, 0xa2, 0x44, 0x88, 0x10, 0x21, 0x43, 0x86, 0x0d, 0x1b, 0x36, 0x6c,
	0xd8, 0xb1, 0x63, 0xc7, 0x8f, 0x1e, 0x3c, 0x79, 0xf3, 0xe7, 0xce, 0x9c,
	0x39, 0x73, 0xe6, 0xcc, 0x98, 0x31, 0x62, 0xc5, 0x8b, 0x16, 0x2d, 0x5a,
	0xb4, 0x69, 0xd2, 0xa4, 0x48, 0x91, 0x22, 0x45,
}

// sbox64 applies the KNOT 4-bit S-box to four 64-bit rows in bit-sliced
// mode. The new value of row 0 is returned in r0; rows 1 to 3 come back
// in b1, b2, b3.
func sbox64(a0, a1, a2, a3 uint64) (r0, b1, b2, b3 uint64) {
	t1 := ^a0
	t3 := a2 ^ (a1 & t1)
	b3 = a3 ^ t3
	t6 := a3 ^ t1
	b2 = (a1 | a2) ^ t6
	t1 = a1 ^ a3
	r0 = t1 ^ (t3 & t6)
	b1 = t3 ^ (b2 & t1)
	return
}

// sbox32 is sbox64 for 32-bit row fragments.
func sbox32(a0, a1, a2, a3 uint32) (r0, b1, b2, b3 uint32) {
	t1 := ^a0
	t3 := a2 ^ (a1 & t1)
	b3 = a3 ^ t3
	t6 := a3 ^ t1
	b2 = (a1 | a2) ^ t6
	t1 = a1 ^ a3
	r0 = t1 ^ (t3 & t6)
	b1 = t3 ^ (b2 & t1)
	return
}

func (s *State256) permute(rc []byte, rounds int) {
	x0 := binary.LittleEndian.Uint64(s[0:])
	x1 := binary.LittleEndian.Uint64(s[8:])
	x2 := binary.LittleEndian.Uint64(s[16:])
	x3 := binary.LittleEndian.Uint64(s[24:])

	for r := 0; r < rounds; r++ {
		x0 ^= uint64(rc[r])
		var b1, b2, b3 uint64
		x0, b1, b2, b3 = sbox64(x0, x1, x2, x3)
		x1 = bits.RotateLeft64(b1, 1)
		x2 = bits.RotateLeft64(b2, 8)
		x3 = bits.RotateLeft64(b3, 25)
	}

	binary.LittleEndian.PutUint64(s[0:], x0)
	binary.LittleEndian.PutUint64(s[8:], x1)
	binary.LittleEndian.PutUint64(s[16:], x2)
	binary.LittleEndian.PutUint64(s[24:], x3)
}

// Permute6 runs the KNOT-256 permutation with the 6-bit round constant
// schedule for the given number of rounds.
func (s *State256) Permute6(rounds int) {
	s.permute(rc6[:], rounds)
}

// Permute7 runs the KNOT-256 permutation with the 7-bit round constant
// schedule for the given number of rounds.
func (s *State256) Permute7(rounds int) {
	s.permute(rc7[:], rounds)
}

// Permute7 runs the KNOT-384 permutation with the 7-bit round constant
// schedule for the given number of rounds. Each 96-bit row is held as a
// 64-bit low part and a 32-bit high part.
func (s *State384) Permute7(rounds int) {
	x0 := binary.LittleEndian.Uint64(s[0:])
	x1 := binary.LittleEndian.Uint32(s[8:])
	x2 := binary.LittleEndian.Uint64(s[12:])
	x3 := binary.LittleEndian.Uint32(s[20:])
	x4 := binary.LittleEndian.Uint64(s[24:])
	x5 := binary.LittleEndian.Uint32(s[32:])
	x6 := binary.LittleEndian.Uint64(s[36:])
	x7 := binary.LittleEndian.Uint32(s[44:])

	for r := 0; r < rounds; r++ {
		x0 ^= uint64(rc7[r])

		var b2, b4, b6 uint64
		var b3, b5, b7 uint32
		x0, b2, b4, b6 = sbox64(x0, x2, x4, x6)
		x1, b3, b5, b7 = sbox32(x1, x3, x5, x7)

		// Row rotations by 1, 8 and 55 bits across the 96-bit rows
		x2 = (b2 << 1) | uint64(b3>>31)
		x3 = (b3 << 1) | uint32(b2>>63)
		x4 = (b4 << 8) | uint64(b5>>24)
		x5 = (b5 << 8) | uint32(b4>>56)
		x6 = (b6 << 55) | (uint64(b7) << 23) | (b6 >> 41)
		x7 = uint32((b6 << 23) >> 32)
	}

	binary.LittleEndian.PutUint64(s[0:], x0)
	binary.LittleEndian.PutUint32(s[8:], x1)
	binary.LittleEndian.PutUint64(s[12:], x2)
	binary.LittleEndian.PutUint32(s[20:], x3)
	binary.LittleEndian.PutUint64(s[24:], x4)
	binary.LittleEndian.PutUint32(s[32:], x5)
	binary.LittleEndian.PutUint64(s[36:], x6)
	binary.LittleEndian.PutUint32(s[44:], x7)
}

func (s *State512) permute(rc []byte, rounds int) {
	x0 := binary.LittleEndian.Uint64(s[0:])
	x1 := binary.LittleEndian.Uint64(s[8:])
	x2 := binary.LittleEndian.Uint64(s[16:])
	x3 := binary.LittleEndian.Uint64(s[24:])
	x4 := binary.LittleEndian.Uint64(s[32:])
	x5 := binary.LittleEndian.Uint64(s[40:])
	x6 := binary.LittleEndian.Uint64(s[48:])
	x7 := binary.LittleEndian.Uint64(s[56:])

	for r := 0; r < rounds; r++ {
		x0 ^= uint64(rc[r])

		var b2, b3, b4, b5, b6, b7 uint64
		x0, b2, b4, b6 = sbox64(x0, x2, x4, x6)
		x1, b3, b5, b7 = sbox64(x1, x3, x5, x7)

		// Row rotations by 1, 16 and 25 bits across the 128-bit rows
		x2 = (b2 << 1) | (b3 >> 63)
		x3 = (b3 << 1) | (b2 >> 63)
		x4 = (b4 << 16) | (b5 >> 48)
		x5 = (b5 << 16) | (b4 >> 48)
		x6 = (b6 << 25) | (b7 >> 39)
		x7 = (b7 << 25) | (b6 >> 39)
	}

	binary.LittleEndian.PutUint64(s[0:], x0)
	binary.LittleEndian.PutUint64(s[8:], x1)
	binary.LittleEndian.PutUint64(s[16:], x2)
	binary.LittleEndian.PutUint64(s[24:], x3)
	binary.LittleEndian.PutUint64(s[32:], x4)
	binary.LittleEndian.PutUint64(s[40:], x5)
	binary.LittleEndian.PutUint64(s[48:], x6)
	binary.LittleEndian.PutUint64(s[56:], x7)
}

// Permute7 runs the KNOT-512 permutation with the 7-bit round constant
// schedule for the given number of rounds.
func (s *State512) Permute7(rounds int) {
	s.permute(rc7[:], rounds)
}

// Permute8 runs the KNOT-512 permutation with the 8-bit round constant
// schedule for the given number of rounds.
func (s *State512) Permute8(rounds int) {
	s.permute(rc8[:], rounds)
}
