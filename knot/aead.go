// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package knot implements the KNOT-AEAD and KNOT-HASH families over
// the KNOT-256, KNOT-384 and KNOT-512 permutations, in plain and
// masked variants.
//
// Reference: https://csrc.nist.gov/projects/lightweight-cryptography
// (KNOT round 2 submission).
package knot

import (
	"github.com/lightcrypt/lwcgo"
	"github.com/lightcrypt/lwcgo/internal/bytesutil"
	"github.com/lightcrypt/lwcgo/internal/knotp"
)

// Key, nonce and tag sizes in bytes for the three security levels.
const (
	KeySize128 = 16
	KeySize192 = 24
	KeySize256 = 32
)

// Block rates in bytes per AEAD variant.
const (
	rate128x256 = 8
	rate128x384 = 24
	rate192x384 = 12
	rate256x512 = 16
)

const padByte = 0x01

// absorbAD absorbs the associated data into a KNOT state through the
// supplied permutation closure. The final block is padded with 0x01.
func absorbAD(state []byte, permute func(int), rounds, rate int, ad []byte) {
	for len(ad) >= rate {
		bytesutil.XOR(state[:rate], ad[:rate])
		permute(rounds)
		ad = ad[rate:]
	}
	bytesutil.XOR(state[:len(ad)], ad)
	state[len(ad)] ^= padByte
	permute(rounds)
}

// encryptPayload encrypts m into c, leaving each ciphertext block in
// the rate and padding the final short block.
func encryptPayload(state []byte, permute func(int), rounds, rate int, c, m []byte) {
	for len(m) >= rate {
		bytesutil.XOR2Dst(c[:rate], state[:rate], m[:rate])
		permute(rounds)
		c = c[rate:]
		m = m[rate:]
	}
	bytesutil.XOR2Dst(c[:len(m)], state[:len(m)], m)
	state[len(m)] ^= padByte
}

// decryptPayload decrypts c into m, replacing the rate with the
// incoming ciphertext.
func decryptPayload(state []byte, permute func(int), rounds, rate int, m, c []byte) {
	for len(c) >= rate {
		bytesutil.XORSwap(m[:rate], state[:rate], c[:rate])
		permute(rounds)
		m = m[rate:]
		c = c[rate:]
	}
	bytesutil.XORSwap(m[:len(c)], state[:len(c)], c)
	state[len(c)] ^= padByte
}

// params fixes one KNOT-AEAD variant: state construction, round
// schedule and sizes.
type params struct {
	keySize   int
	tagSize   int
	rate      int
	absorbR   int // rounds per data block
	finalR    int // rounds for tag generation
	initState func(key, nonce []byte) (state []byte, permute func(int))
}

var aead128x256 = params{
	keySize: KeySize128, tagSize: KeySize128, rate: rate128x256,
	absorbR: 28, finalR: 32,
	initState: func(key, nonce []byte) ([]byte, func(int)) {
		s := new(knotp.State256)
		copy(s[0:16], nonce)
		copy(s[16:32], key)
		s.Permute6(52)
		return s[:], s.Permute6
	},
}

var aead128x384 = params{
	keySize: KeySize128, tagSize: KeySize128, rate: rate128x384,
	absorbR: 28, finalR: 32,
	initState: func(key, nonce []byte) ([]byte, func(int)) {
		s := new(knotp.State384)
		copy(s[0:16], nonce)
		copy(s[16:32], key)
		s[47] = 0x80
		s.Permute7(76)
		return s[:], s.Permute7
	},
}

var aead192x384 = params{
	keySize: KeySize192, tagSize: KeySize192, rate: rate192x384,
	absorbR: 40, finalR: 44,
	initState: func(key, nonce []byte) ([]byte, func(int)) {
		s := new(knotp.State384)
		copy(s[0:24], nonce)
		copy(s[24:48], key)
		s.Permute7(76)
		return s[:], s.Permute7
	},
}

var aead256x512 = params{
	keySize: KeySize256, tagSize: KeySize256, rate: rate256x512,
	absorbR: 52, finalR: 56,
	initState: func(key, nonce []byte) ([]byte, func(int)) {
		s := new(knotp.State512)
		copy(s[0:32], nonce)
		copy(s[32:64], key)
		s.Permute7(100)
		return s[:], s.Permute7
	},
}

func (p *params) encrypt(dst, m, ad, nonce, key []byte) ([]byte, error) {
	checkKeyNonce(len(key), p.keySize, len(nonce), p.keySize)
	state, permute := p.initState(key, nonce)

	if len(ad) > 0 {
		absorbAD(state, permute, p.absorbR, p.rate, ad)
	}
	state[len(state)-1] ^= 0x80 // domain separation

	dst, out := extend(dst, len(m))
	if len(m) > 0 {
		encryptPayload(state, permute, p.absorbR, p.rate, out, m)
	}

	permute(p.finalR)
	return append(dst, state[:p.tagSize]...), nil
}

func (p *params) decrypt(dst, c, ad, nonce, key []byte) ([]byte, error) {
	checkKeyNonce(len(key), p.keySize, len(nonce), p.keySize)
	if len(c) < p.tagSize {
		return dst, lwcgo.ErrCiphertextLength
	}
	mlen := len(c) - p.tagSize
	state, permute := p.initState(key, nonce)

	if len(ad) > 0 {
		absorbAD(state, permute, p.absorbR, p.rate, ad)
	}
	state[len(state)-1] ^= 0x80 // domain separation

	dst, out := extend(dst, mlen)
	if mlen > 0 {
		decryptPayload(state, permute, p.absorbR, p.rate, out, c[:mlen])
	}

	permute(p.finalR)
	if !bytesutil.CheckTag(out, state[:p.tagSize], c[mlen:]) {
		return dst, lwcgo.ErrAuth
	}
	return dst, nil
}

// Encrypt128x256 encrypts and authenticates m with KNOT-AEAD-128-256,
// appending the ciphertext and tag to dst.
func Encrypt128x256(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return aead128x256.encrypt(dst, m, ad, nonce, key)
}

// Decrypt128x256 verifies and decrypts c with KNOT-AEAD-128-256.
func Decrypt128x256(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return aead128x256.decrypt(dst, c, ad, nonce, key)
}

// Encrypt128x384 encrypts and authenticates m with KNOT-AEAD-128-384.
func Encrypt128x384(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return aead128x384.encrypt(dst, m, ad, nonce, key)
}

// Decrypt128x384 verifies and decrypts c with KNOT-AEAD-128-384.
func Decrypt128x384(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return aead128x384.decrypt(dst, c, ad, nonce, key)
}

// Encrypt192x384 encrypts and authenticates m with KNOT-AEAD-192-384.
func Encrypt192x384(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return aead192x384.encrypt(dst, m, ad, nonce, key)
}

// Decrypt192x384 verifies and decrypts c with KNOT-AEAD-192-384.
func Decrypt192x384(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return aead192x384.decrypt(dst, c, ad, nonce, key)
}

// Encrypt256x512 encrypts and authenticates m with KNOT-AEAD-256-512.
func Encrypt256x512(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return aead256x512.encrypt(dst, m, ad, nonce, key)
}

// Decrypt256x512 verifies and decrypts c with KNOT-AEAD-256-512.
func Decrypt256x512(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return aead256x512.decrypt(dst, c, ad, nonce, key)
}

func extend(dst []byte, n int) ([]byte, []byte) {
	total := len(dst) + n
	if cap(dst) >= total {
		dst = dst[:total]
	} else {
		grown := make([]byte, total)
		copy(grown, dst)
		dst = grown
	}
	return dst, dst[total-n:]
}

func checkKeyNonce(klen, wantKey, nlen, wantNonce int) {
	if klen != wantKey {
		panic("knot: invalid key size")
	}
	if nlen != wantNonce {
		panic("knot: invalid nonce size")
	}
}
