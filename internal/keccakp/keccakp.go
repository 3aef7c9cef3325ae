// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package keccakp implements the Keccak-p[400] permutation with 16-bit
// lanes, as used by the ISAP-K variants.
package keccakp

import (
	"encoding/binary"
	"math/bits"
)

// StateSize is the size of the Keccak-p[400] state in bytes.
const StateSize = 50

// MaxRounds is the full round count of Keccak-p[400].
const MaxRounds = 20

// State is the 400-bit Keccak state: twenty-five 16-bit lanes in
// little-endian byte order, lane (x, y) at index 5y+x.
type State [StateSize]byte

// Round constants, the usual Keccak iota constants truncated to the
// 16-bit lane size.
var roundConstants = [MaxRounds]uint16{
	0x0001, 0x8082, 0x808A, 0x8000, 0x808B, 0x0001, 0x8081, 0x8009,
	0x008A, 0x0088, 0x8009, 0x000A, 0x808B, 0x008B, 0x8089, 0x8003,
	0x8002, 0x0080, 0x800A, 0x000A,
}

// Rotation offsets reduced modulo the lane size, indexed as rho[y][x].
var rho = [5][5]int{
	{0, 1, 14, 12, 11},
	{4, 12, 6, 7, 4},
	{3, 10, 11, 9, 7},
	{9, 13, 15, 5, 8},
	{2, 2, 13, 8, 14},
}

// Permute runs the final `rounds` rounds of Keccak-p[400]. Calling it
// with MaxRounds gives the full permutation; smaller counts pick up the
// round constant schedule where the full permutation would, which is
// the convention the ISAP round schedules rely on.
func (s *State) Permute(rounds int) {
	var a [5][5]uint16
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			a[y][x] = binary.LittleEndian.Uint16(s[(5*y+x)*2:])
		}
	}

	for r := MaxRounds - rounds; r < MaxRounds; r++ {
		// Theta
		var c, d [5]uint16
		for x := 0; x < 5; x++ {
			c[x] = a[0][x] ^ a[1][x] ^ a[2][x] ^ a[3][x] ^ a[4][x]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft16(c[(x+1)%5], 1)
		}
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				a[y][x] ^= d[x]
			}
		}

		// Rho and pi
		var b [5][5]uint16
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				b[(2*x+3*y)%5][y] = bits.RotateLeft16(a[y][x], rho[y][x])
			}
		}

		// Chi
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				a[y][x] = b[y][x] ^ (^b[y][(x+1)%5] & b[y][(x+2)%5])
			}
		}

		// Iota
		a[0][0] ^= roundConstants[r]
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			binary.LittleEndian.PutUint16(s[(5*y+x)*2:], a[y][x])
		}
	}
}
