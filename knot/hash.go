// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package knot

import (
	"github.com/lightcrypt/lwcgo/internal/bytesutil"
	"github.com/lightcrypt/lwcgo/internal/knotp"
)

// Hash output sizes in bytes.
const (
	HashSize256 = 32
	HashSize384 = 48
	HashSize512 = 64
)

// hashSponge runs the common KNOT hash shape: zero (or tweaked) state,
// absorb rate-sized blocks, pad with 0x01, then squeeze the digest in
// two halves with a full permutation between them.
func hashSponge(state []byte, permute func(int), rounds, rate, outSize int, dst, in []byte) []byte {
	for len(in) >= rate {
		bytesutil.XOR(state[:rate], in[:rate])
		permute(rounds)
		in = in[rate:]
	}
	bytesutil.XOR(state[:len(in)], in)
	state[len(in)] ^= padByte
	permute(rounds)
	out := make([]byte, outSize)
	copy(out[:outSize/2], state)
	permute(rounds)
	copy(out[outSize/2:], state)
	return append(dst, out...)
}

// SumHash256x256 appends the 32-byte KNOT-HASH-256-256 digest of in
// to dst.
func SumHash256x256(dst, in []byte) []byte {
	s := new(knotp.State256)
	return hashSponge(s[:], s.Permute7, 68, 4, HashSize256, dst, in)
}

// SumHash256x384 appends the 32-byte KNOT-HASH-256-384 digest of in
// to dst. The larger state buys a 16-byte rate.
func SumHash256x384(dst, in []byte) []byte {
	s := new(knotp.State384)
	s[len(s)-1] ^= 0x80
	return hashSponge(s[:], s.Permute7, 80, 16, HashSize256, dst, in)
}

// SumHash384x384 appends the 48-byte KNOT-HASH-384-384 digest of in
// to dst.
func SumHash384x384(dst, in []byte) []byte {
	s := new(knotp.State384)
	return hashSponge(s[:], s.Permute7, 104, 6, HashSize384, dst, in)
}

// SumHash512x512 appends the 64-byte KNOT-HASH-512-512 digest of in
// to dst.
func SumHash512x512(dst, in []byte) []byte {
	s := new(knotp.State512)
	return hashSponge(s[:], s.Permute8, 140, 8, HashSize512, dst, in)
}
