// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package bytesutil provides block XOR helpers shared by the sponge and
// duplex engines. Endian conversion is done with encoding/binary at the
// call sites; these helpers only combine byte blocks.
package bytesutil

import "crypto/subtle"

// XOR performs dst[i] ^= src[i] for len(src) bytes.
func XOR(dst, src []byte) {
	for i := range src {
		dst[i] ^= src[i]
	}
}

// XOR2Dst writes dst[i] = state[i] ^ src[i] and stores the result back
// into state, implementing the encrypt step of a duplex sponge where the
// ciphertext replaces the rate.
func XOR2Dst(dst, state, src []byte) {
	for i := range src {
		state[i] ^= src[i]
		dst[i] = state[i]
	}
}

// XORSwap writes dst[i] = state[i] ^ src[i] and replaces state with src,
// implementing the decrypt step of a duplex sponge where the incoming
// ciphertext replaces the rate. dst may be the same slice as src.
func XORSwap(dst, state, src []byte) {
	for i := range src {
		c := src[i]
		dst[i] = state[i] ^ c
		state[i] = c
	}
}

// XOR2Src writes dst[i] = a[i] ^ b[i] without modifying either source.
func XOR2Src(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// Zero clears a byte slice. Used to scrub key material and rejected
// plaintext buffers.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// CheckTag compares a computed tag against a received tag in constant
// time. All bytes are examined before the verdict is formed. On mismatch
// the plaintext produced so far is zeroed so that callers can never
// observe unauthenticated output.
func CheckTag(plaintext, computed, received []byte) bool {
	if subtle.ConstantTimeCompare(computed, received) == 1 {
		return true
	}
	Zero(plaintext)
	return false
}
