// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package spookp implements the Clyde-128 tweakable block cipher and
// the Shadow-512 and Shadow-384 permutations used by the Spook AEAD
// mode.
//
// Reference: https://spook.dev/ (Spook round 2 submission).
package spookp

import (
	"encoding/binary"
	"math/bits"
)

// Sizes of the Clyde-128 block, key and tweak, and the Shadow states,
// in bytes.
const (
	Clyde128BlockSize = 16
	Clyde128KeySize   = 16
	Clyde128TweakSize = 16
	Shadow512Size     = 64
	Shadow384Size     = 48
)

// steps is the number of two-round steps in Clyde-128 and Shadow.
const steps = 6

// rc holds the per-step round constants: the 4-bit LFSR state for the
// two rounds of each step, one bit per 32-bit state word.
var rc = [steps][8]uint32{
	{1, 0, 0, 0, 0, 1, 0, 0},
	{0, 0, 1, 0, 0, 0, 0, 1},
	{1, 1, 0, 0, 0, 1, 1, 0},
	{0, 0, 1, 1, 1, 1, 0, 1},
	{1, 0, 1, 0, 0, 1, 0, 1},
	{1, 1, 1, 0, 0, 1, 1, 1},
}

// sbox applies the Clyde S-box to a 128-bit bundle in bit-sliced form.
func sbox(s0, s1, s2, s3 uint32) (uint32, uint32, uint32, uint32) {
	c := (s0 & s1) ^ s2
	d := (s3 & s1) ^ s0
	y3 := (c & s3) ^ s1
	y2 := (c & d) ^ s3
	return d, c, y2, y3
}

// sboxInv applies the inverse Clyde S-box.
func sboxInv(s0, s1, s2, s3 uint32) (uint32, uint32, uint32, uint32) {
	t3 := (s0 & s1) ^ s2
	t1 := (t3 & s1) ^ s3
	t0 := (t3 & t1) ^ s0
	t2 := (t0 & t1) ^ s1
	return t0, t1, t2, t3
}

// lbox applies the Clyde L-box to a pair of 32-bit words.
func lbox(x, y uint32) (uint32, uint32) {
	a := x ^ bits.RotateLeft32(x, -12)
	b := y ^ bits.RotateLeft32(y, -12)
	a ^= bits.RotateLeft32(a, -3)
	b ^= bits.RotateLeft32(b, -3)
	a ^= bits.RotateLeft32(x, -17)
	b ^= bits.RotateLeft32(y, -17)
	c := a ^ bits.RotateLeft32(a, -31)
	d := b ^ bits.RotateLeft32(b, -31)
	a ^= bits.RotateLeft32(d, -26)
	b ^= bits.RotateLeft32(c, -25)
	a ^= bits.RotateLeft32(c, -15)
	b ^= bits.RotateLeft32(d, -15)
	return a, b
}

// lboxInv applies the inverse Clyde L-box.
func lboxInv(x, y uint32) (uint32, uint32) {
	a := x ^ bits.RotateLeft32(x, -25)
	b := y ^ bits.RotateLeft32(y, -25)
	c := x ^ bits.RotateLeft32(a, -31)
	d := y ^ bits.RotateLeft32(b, -31)
	c ^= bits.RotateLeft32(a, -20)
	d ^= bits.RotateLeft32(b, -20)
	a = c ^ bits.RotateLeft32(c, -31)
	b = d ^ bits.RotateLeft32(d, -31)
	c ^= bits.RotateLeft32(b, -26)
	d ^= bits.RotateLeft32(a, -25)
	a ^= bits.RotateLeft32(c, -17)
	b ^= bits.RotateLeft32(d, -17)
	a = bits.RotateLeft32(a, -16)
	b = bits.RotateLeft32(b, -16)
	return a, b
}

// Clyde128Encrypt encrypts one 16-byte block with Clyde-128 under the
// given key and tweak. All values are little-endian.
func Clyde128Encrypt(key, tweak []byte, output, input []byte) {
	k0 := binary.LittleEndian.Uint32(key)
	k1 := binary.LittleEndian.Uint32(key[4:])
	k2 := binary.LittleEndian.Uint32(key[8:])
	k3 := binary.LittleEndian.Uint32(key[12:])
	t0 := binary.LittleEndian.Uint32(tweak)
	t1 := binary.LittleEndian.Uint32(tweak[4:])
	t2 := binary.LittleEndian.Uint32(tweak[8:])
	t3 := binary.LittleEndian.Uint32(tweak[12:])
	s0 := binary.LittleEndian.Uint32(input)
	s1 := binary.LittleEndian.Uint32(input[4:])
	s2 := binary.LittleEndian.Uint32(input[8:])
	s3 := binary.LittleEndian.Uint32(input[12:])

	// Add the initial tweakey to the state
	s0 ^= k0 ^ t0
	s1 ^= k1 ^ t1
	s2 ^= k2 ^ t2
	s3 ^= k3 ^ t3

	for step := 0; step < steps; step++ {
		// First round of the step
		s0, s1, s2, s3 = sbox(s0, s1, s2, s3)
		s0, s1 = lbox(s0, s1)
		s2, s3 = lbox(s2, s3)
		s0 ^= rc[step][0]
		s1 ^= rc[step][1]
		s2 ^= rc[step][2]
		s3 ^= rc[step][3]

		// Second round of the step
		s0, s1, s2, s3 = sbox(s0, s1, s2, s3)
		s0, s1 = lbox(s0, s1)
		s2, s3 = lbox(s2, s3)
		s0 ^= rc[step][4]
		s1 ^= rc[step][5]
		s2 ^= rc[step][6]
		s3 ^= rc[step][7]

		// Update the tweak with the LFSR phi and add the tweakey
		t0, t1, t2, t3 = t0^t2, t1^t3, t0, t1
		s0 ^= k0 ^ t0
		s1 ^= k1 ^ t1
		s2 ^= k2 ^ t2
		s3 ^= k3 ^ t3
	}

	binary.LittleEndian.PutUint32(output, s0)
	binary.LittleEndian.PutUint32(output[4:], s1)
	binary.LittleEndian.PutUint32(output[8:], s2)
	binary.LittleEndian.PutUint32(output[12:], s3)
}

// Clyde128Decrypt decrypts one 16-byte block with Clyde-128 under the
// given key and tweak.
func Clyde128Decrypt(key, tweak []byte, output, input []byte) {
	k0 := binary.LittleEndian.Uint32(key)
	k1 := binary.LittleEndian.Uint32(key[4:])
	k2 := binary.LittleEndian.Uint32(key[8:])
	k3 := binary.LittleEndian.Uint32(key[12:])
	s0 := binary.LittleEndian.Uint32(input)
	s1 := binary.LittleEndian.Uint32(input[4:])
	s2 := binary.LittleEndian.Uint32(input[8:])
	s3 := binary.LittleEndian.Uint32(input[12:])

	// Run the tweak schedule forward to the final step
	var tk [steps + 1][4]uint32
	tk[0][0] = binary.LittleEndian.Uint32(tweak)
	tk[0][1] = binary.LittleEndian.Uint32(tweak[4:])
	tk[0][2] = binary.LittleEndian.Uint32(tweak[8:])
	tk[0][3] = binary.LittleEndian.Uint32(tweak[12:])
	for i := 1; i <= steps; i++ {
		tk[i][0] = tk[i-1][0] ^ tk[i-1][2]
		tk[i][1] = tk[i-1][1] ^ tk[i-1][3]
		tk[i][2] = tk[i-1][0]
		tk[i][3] = tk[i-1][1]
	}

	for step := steps - 1; step >= 0; step-- {
		// Remove the tweakey added at the end of this step
		s0 ^= k0 ^ tk[step+1][0]
		s1 ^= k1 ^ tk[step+1][1]
		s2 ^= k2 ^ tk[step+1][2]
		s3 ^= k3 ^ tk[step+1][3]

		// Undo the second round of the step
		s0 ^= rc[step][4]
		s1 ^= rc[step][5]
		s2 ^= rc[step][6]
		s3 ^= rc[step][7]
		s0, s1 = lboxInv(s0, s1)
		s2, s3 = lboxInv(s2, s3)
		s0, s1, s2, s3 = sboxInv(s0, s1, s2, s3)

		// Undo the first round of the step
		s0 ^= rc[step][0]
		s1 ^= rc[step][1]
		s2 ^= rc[step][2]
		s3 ^= rc[step][3]
		s0, s1 = lboxInv(s0, s1)
		s2, s3 = lboxInv(s2, s3)
		s0, s1, s2, s3 = sboxInv(s0, s1, s2, s3)
	}

	// Remove the initial tweakey
	s0 ^= k0 ^ tk[0][0]
	s1 ^= k1 ^ tk[0][1]
	s2 ^= k2 ^ tk[0][2]
	s3 ^= k3 ^ tk[0][3]

	binary.LittleEndian.PutUint32(output, s0)
	binary.LittleEndian.PutUint32(output[4:], s1)
	binary.LittleEndian.PutUint32(output[8:], s2)
	binary.LittleEndian.PutUint32(output[12:], s3)
}

// Shadow512 runs the Shadow-512 permutation over four 128-bit bundles.
func Shadow512(state *[Shadow512Size]byte) {
	var w [16]uint32
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(state[i*4:])
	}

	for step := 0; step < steps; step++ {
		// S-box and L-box layer on each bundle
		for b := 0; b < 4; b++ {
			w[b*4], w[b*4+1], w[b*4+2], w[b*4+3] =
				sbox(w[b*4], w[b*4+1], w[b*4+2], w[b*4+3])
			w[b*4], w[b*4+1] = lbox(w[b*4], w[b*4+1])
			w[b*4+2], w[b*4+3] = lbox(w[b*4+2], w[b*4+3])
		}

		// First half round constants, shifted per bundle
		for b := 0; b < 4; b++ {
			for i := 0; i < 4; i++ {
				w[b*4+i] ^= rc[step][i] << uint(b)
			}
		}

		// S-box layer again, then the diffusion layer replaces
		// the L-box and mixes the bundles
		for b := 0; b < 4; b++ {
			w[b*4], w[b*4+1], w[b*4+2], w[b*4+3] =
				sbox(w[b*4], w[b*4+1], w[b*4+2], w[b*4+3])
		}
		for i := 0; i < 4; i++ {
			x := w[i] ^ w[4+i] ^ w[8+i] ^ w[12+i]
			w[i] ^= x
			w[4+i] ^= x
			w[8+i] ^= x
			w[12+i] ^= x
		}

		// Second half round constants
		for b := 0; b < 4; b++ {
			for i := 0; i < 4; i++ {
				w[b*4+i] ^= rc[step][4+i] << uint(b)
			}
		}
	}

	for i := range w {
		binary.LittleEndian.PutUint32(state[i*4:], w[i])
	}
}

// Shadow384 runs the Shadow-384 permutation over three 128-bit bundles.
func Shadow384(state *[Shadow384Size]byte) {
	var w [12]uint32
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(state[i*4:])
	}

	for step := 0; step < steps; step++ {
		for b := 0; b < 3; b++ {
			w[b*4], w[b*4+1], w[b*4+2], w[b*4+3] =
				sbox(w[b*4], w[b*4+1], w[b*4+2], w[b*4+3])
			w[b*4], w[b*4+1] = lbox(w[b*4], w[b*4+1])
			w[b*4+2], w[b*4+3] = lbox(w[b*4+2], w[b*4+3])
		}

		for b := 0; b < 3; b++ {
			for i := 0; i < 4; i++ {
				w[b*4+i] ^= rc[step][i] << uint(b)
			}
		}

		for b := 0; b < 3; b++ {
			w[b*4], w[b*4+1], w[b*4+2], w[b*4+3] =
				sbox(w[b*4], w[b*4+1], w[b*4+2], w[b*4+3])
		}
		// Shadow-384 diffusion layer over three bundles
		for i := 0; i < 4; i++ {
			a := w[i]
			b := w[4+i]
			c := w[8+i]
			w[i] = b ^ c
			w[4+i] = a ^ c
			w[8+i] = a ^ b ^ c
		}

		for b := 0; b < 3; b++ {
			for i := 0; i < 4; i++ {
				w[b*4+i] ^= rc[step][4+i] << uint(b)
			}
		}
	}

	for i := range w {
		binary.LittleEndian.PutUint32(state[i*4:], w[i])
	}
}
