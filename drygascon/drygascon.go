// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package drygascon implements the DryGASCON128 and DryGASCON256
// authenticated ciphers and hashes over the DrySPONGE construction.
//
// DryGASCON128 accepts 16, 32 or 56-byte keys; the shorter forms
// derive the "x" mixing table from the key, and keys whose table words
// collide are rejected as weak rather than looping as the reference
// implementation does.
//
// Reference: https://github.com/sebastien-riou/DryGASCON
package drygascon

import (
	"errors"

	"github.com/lightcrypt/lwcgo"
	"github.com/lightcrypt/lwcgo/internal/bytesutil"
	"github.com/lightcrypt/lwcgo/internal/drysponge"
)

// Key, nonce and tag sizes in bytes.
const (
	KeySize128Min  = 16 // x derived by iterating the core round
	KeySize128Fast = 32 // x taken from the last 16 key bytes
	KeySize128Safe = 56 // c and x filled directly
	KeySize256     = 32
	NonceSize      = 16
	TagSize128     = 16
	TagSize256     = 32
)

// Hash output sizes in bytes.
const (
	HashSize128 = 32
	HashSize256 = 64
)

const rate = drysponge.Rate

// processAD128 absorbs the associated data; the final block carries
// the associated-data domain with final and padded markers as needed.
func processAD128(s *drysponge.State128, ad []byte, finalize bool) {
	for len(ad) > rate {
		s.F(ad[:rate])
		ad = ad[rate:]
	}
	s.Domain = drysponge.Domain128AssocData
	if finalize {
		s.Domain |= drysponge.Domain128Final
	}
	if len(ad) < rate {
		s.Domain |= drysponge.Domain128Padded
	}
	s.F(ad)
}

func processAD256(s *drysponge.State256, ad []byte, finalize bool) {
	for len(ad) > rate {
		s.FAbsorb(ad[:rate])
		s.GCore()
		ad = ad[rate:]
	}
	s.Domain = drysponge.Domain256AssocData
	if finalize {
		s.Domain |= drysponge.Domain256Final
	}
	if len(ad) < rate {
		s.Domain |= drysponge.Domain256Padded
	}
	s.FAbsorb(ad)
	s.G()
}

// Encrypt128 encrypts and authenticates m with DryGASCON128 under a
// 16, 32 or 56-byte key, appending the ciphertext and tag to dst.
// Weak keys are reported as lwcgo.ErrWeakKey without producing output.
func Encrypt128(dst, m, ad, nonce, key []byte) ([]byte, error) {
	checkNonce(len(nonce))
	var s drysponge.State128
	if err := s.Setup128(key, nonce, len(ad) == 0 && len(m) == 0); err != nil {
		return dst, setupError(err)
	}

	if len(ad) > 0 {
		processAD128(&s, ad, len(m) == 0)
	}

	dst, out := extend(dst, len(m))
	if len(m) > 0 {
		// The rate block squeezed by the previous F call is the
		// keystream; the plaintext block is then absorbed. The block
		// goes through a scratch buffer so that in-place encryption
		// does not overwrite the plaintext before it is absorbed.
		var block [rate]byte
		for len(m) > rate {
			copy(block[:], m[:rate])
			bytesutil.XOR2Src(out[:rate], block[:], s.R[:])
			s.F(block[:])
			out = out[rate:]
			m = m[rate:]
		}
		s.Domain = drysponge.Domain128Message | drysponge.Domain128Final
		if len(m) < rate {
			s.Domain |= drysponge.Domain128Padded
		}
		n := copy(block[:], m)
		bytesutil.XOR2Src(out[:n], block[:n], s.R[:n])
		s.F(block[:n])
	}

	return append(dst, s.R[:TagSize128]...), nil
}

// Decrypt128 verifies and decrypts c with DryGASCON128.
func Decrypt128(dst, c, ad, nonce, key []byte) ([]byte, error) {
	checkNonce(len(nonce))
	if len(c) < TagSize128 {
		return dst, lwcgo.ErrCiphertextLength
	}
	mlen := len(c) - TagSize128
	var s drysponge.State128
	if err := s.Setup128(key, nonce, len(ad) == 0 && mlen == 0); err != nil {
		return dst, setupError(err)
	}

	if len(ad) > 0 {
		processAD128(&s, ad, mlen == 0)
	}

	dst, out := extend(dst, mlen)
	if mlen > 0 {
		rest := c[:mlen]
		outp := out
		for len(rest) > rate {
			bytesutil.XOR2Src(outp[:rate], rest[:rate], s.R[:])
			s.F(outp[:rate])
			outp = outp[rate:]
			rest = rest[rate:]
		}
		s.Domain = drysponge.Domain128Message | drysponge.Domain128Final
		if len(rest) < rate {
			s.Domain |= drysponge.Domain128Padded
		}
		bytesutil.XOR2Src(outp[:len(rest)], rest, s.R[:len(rest)])
		s.F(outp[:len(rest)])
	}

	if !bytesutil.CheckTag(out, s.R[:TagSize128], c[mlen:]) {
		return dst, lwcgo.ErrAuth
	}
	return dst, nil
}

// Encrypt256 encrypts and authenticates m with DryGASCON256 under a
// 32-byte key, appending the ciphertext and 32-byte tag to dst.
func Encrypt256(dst, m, ad, nonce, key []byte) ([]byte, error) {
	checkKey256(len(key))
	checkNonce(len(nonce))
	var s drysponge.State256
	if err := s.Setup256(key, nonce, len(ad) == 0 && len(m) == 0); err != nil {
		return dst, setupError(err)
	}

	if len(ad) > 0 {
		processAD256(&s, ad, len(m) == 0)
	}

	dst, out := extend(dst, len(m))
	if len(m) > 0 {
		for len(m) > rate {
			s.FAbsorb(m[:rate])
			bytesutil.XOR2Src(out[:rate], m[:rate], s.R[:])
			s.G()
			out = out[rate:]
			m = m[rate:]
		}
		s.Domain = drysponge.Domain256Message | drysponge.Domain256Final
		if len(m) < rate {
			s.Domain |= drysponge.Domain256Padded
		}
		s.FAbsorb(m)
		bytesutil.XOR2Src(out[:len(m)], m, s.R[:len(m)])
		s.G()
	}

	// The 32-byte tag takes two squeezes
	dst = append(dst, s.R[:]...)
	s.G()
	return append(dst, s.R[:]...), nil
}

// Decrypt256 verifies and decrypts c with DryGASCON256.
func Decrypt256(dst, c, ad, nonce, key []byte) ([]byte, error) {
	checkKey256(len(key))
	checkNonce(len(nonce))
	if len(c) < TagSize256 {
		return dst, lwcgo.ErrCiphertextLength
	}
	mlen := len(c) - TagSize256
	var s drysponge.State256
	if err := s.Setup256(key, nonce, len(ad) == 0 && mlen == 0); err != nil {
		return dst, setupError(err)
	}

	if len(ad) > 0 {
		processAD256(&s, ad, mlen == 0)
	}

	dst, out := extend(dst, mlen)
	if mlen > 0 {
		rest := c[:mlen]
		outp := out
		for len(rest) > rate {
			bytesutil.XOR2Src(outp[:rate], rest[:rate], s.R[:])
			s.FAbsorb(outp[:rate])
			s.G()
			outp = outp[rate:]
			rest = rest[rate:]
		}
		s.Domain = drysponge.Domain256Message | drysponge.Domain256Final
		if len(rest) < rate {
			s.Domain |= drysponge.Domain256Padded
		}
		bytesutil.XOR2Src(outp[:len(rest)], rest, s.R[:len(rest)])
		s.FAbsorb(outp[:len(rest)])
		s.G()
	}

	// The tag is split across two squeezes; both halves must match
	// and the comparison stays constant-time across the split.
	ok := bytesutil.CheckTag(nil, s.R[:], c[mlen:mlen+16])
	s.G()
	if !bytesutil.CheckTag(out, s.R[:], c[mlen+16:]) || !ok {
		bytesutil.Zero(out)
		return dst, lwcgo.ErrAuth
	}
	return dst, nil
}

// hashInit128 is the DrySPONGE128 state derived from the CST_H
// constant of the specification by the key setup function.
var hashInit128 = [...]byte{
	// c
	0x24, 0x3f, 0x6a, 0x88, 0x85, 0xa3, 0x08, 0xd3,
	0x13, 0x19, 0x8a, 0x2e, 0x03, 0x70, 0x73, 0x44,
	0x24, 0x3f, 0x6a, 0x88, 0x85, 0xa3, 0x08, 0xd3,
	0x13, 0x19, 0x8a, 0x2e, 0x03, 0x70, 0x73, 0x44,
	0x24, 0x3f, 0x6a, 0x88, 0x85, 0xa3, 0x08, 0xd3,
	// x
	0xa4, 0x09, 0x38, 0x22, 0x29, 0x9f, 0x31, 0xd0,
	0x08, 0x2e, 0xfa, 0x98, 0xec, 0x4e, 0x6c, 0x89,
}

// hashInit256 is the corresponding DrySPONGE256 constant.
var hashInit256 = [...]byte{
	// c
	0x24, 0x3f, 0x6a, 0x88, 0x85, 0xa3, 0x08, 0xd3,
	0x13, 0x19, 0x8a, 0x2e, 0x03, 0x70, 0x73, 0x44,
	0xa4, 0x09, 0x38, 0x22, 0x29, 0x9f, 0x31, 0xd0,
	0x08, 0x2e, 0xfa, 0x98, 0xec, 0x4e, 0x6c, 0x89,
	0x24, 0x3f, 0x6a, 0x88, 0x85, 0xa3, 0x08, 0xd3,
	0x13, 0x19, 0x8a, 0x2e, 0x03, 0x70, 0x73, 0x44,
	0xa4, 0x09, 0x38, 0x22, 0x29, 0x9f, 0x31, 0xd0,
	0x08, 0x2e, 0xfa, 0x98, 0xec, 0x4e, 0x6c, 0x89,
	0x24, 0x3f, 0x6a, 0x88, 0x85, 0xa3, 0x08, 0xd3,
	// x
	0x45, 0x28, 0x21, 0xe6, 0x38, 0xd0, 0x13, 0x77,
	0xbe, 0x54, 0x66, 0xcf, 0x34, 0xe9, 0x0c, 0x6c,
}

// SumHash128 appends the 32-byte DryGASCON128-HASH digest of in to
// dst.
func SumHash128(dst, in []byte) []byte {
	var s drysponge.State128
	copy(s.C[:], hashInit128[:drysponge.Gascon128StateSize])
	for i := 0; i < 4; i++ {
		s.X[i] = leWord(hashInit128[drysponge.Gascon128StateSize+i*4:])
	}
	s.Domain = 0
	s.Rounds = drysponge.Rounds128
	processAD128(&s, in, true)
	dst = append(dst, s.R[:]...)
	s.G()
	return append(dst, s.R[:]...)
}

// SumHash256 appends the 64-byte DryGASCON256-HASH digest of in to
// dst.
func SumHash256(dst, in []byte) []byte {
	var s drysponge.State256
	copy(s.C[:], hashInit256[:drysponge.Gascon256StateSize])
	for i := 0; i < 4; i++ {
		s.X[i] = leWord(hashInit256[drysponge.Gascon256StateSize+i*4:])
	}
	s.Domain = 0
	s.Rounds = drysponge.Rounds256
	processAD256(&s, in, true)
	for i := 0; i < 3; i++ {
		dst = append(dst, s.R[:]...)
		s.G()
	}
	return append(dst, s.R[:]...)
}

func leWord(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func setupError(err error) error {
	if errors.Is(err, drysponge.ErrWeakKey) {
		return lwcgo.ErrWeakKey
	}
	return err
}

func checkNonce(n int) {
	if n != NonceSize {
		panic("drygascon: invalid nonce size")
	}
}

func checkKey256(n int) {
	if n != KeySize256 {
		panic("drygascon: invalid key size")
	}
}

func init() {
	lwcgo.RegisterAead(lwcgo.AeadInfo{
		Name:      "DryGASCON128k32",
		KeySize:   KeySize128Fast,
		NonceSize: NonceSize,
		TagSize:   TagSize128,
		Flags:     lwcgo.FlagLittleEndian | lwcgo.FlagProtectAll,
		Encrypt:   Encrypt128,
		Decrypt:   Decrypt128,
	})
	lwcgo.RegisterAead(lwcgo.AeadInfo{
		Name:      "DryGASCON128k16",
		KeySize:   KeySize128Min,
		NonceSize: NonceSize,
		TagSize:   TagSize128,
		Flags:     lwcgo.FlagLittleEndian | lwcgo.FlagProtectAll,
		Encrypt:   Encrypt128,
		Decrypt:   Decrypt128,
	})
	lwcgo.RegisterAead(lwcgo.AeadInfo{
		Name:      "DryGASCON128k56",
		KeySize:   KeySize128Safe,
		NonceSize: NonceSize,
		TagSize:   TagSize128,
		Flags:     lwcgo.FlagLittleEndian | lwcgo.FlagProtectAll,
		Encrypt:   Encrypt128,
		Decrypt:   Decrypt128,
	})
	lwcgo.RegisterAead(lwcgo.AeadInfo{
		Name:      "DryGASCON256",
		KeySize:   KeySize256,
		NonceSize: NonceSize,
		TagSize:   TagSize256,
		Flags:     lwcgo.FlagLittleEndian | lwcgo.FlagProtectAll,
		Encrypt:   Encrypt256,
		Decrypt:   Decrypt256,
	})
	lwcgo.RegisterHash(lwcgo.HashInfo{
		Name:     "DryGASCON128-HASH",
		HashSize: HashSize128,
		Flags:    lwcgo.FlagLittleEndian | lwcgo.FlagProtectAll,
		Hash:     SumHash128,
	})
	lwcgo.RegisterHash(lwcgo.HashInfo{
		Name:     "DryGASCON256-HASH",
		HashSize: HashSize256,
		Flags:    lwcgo.FlagLittleEndian | lwcgo.FlagProtectAll,
		Hash:     SumHash256,
	})
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
