// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package ascon implements the ASCON-128, ASCON-128a and ASCON-80pq
// authenticated ciphers together with ASCON-HASH and ASCON-XOF, in
// plain and masked variants.
//
// References: http://competitions.cr.yp.to/round3/asconv12.pdf,
// http://ascon.iaik.tugraz.at/
package ascon

import (
	"encoding/binary"

	"github.com/lightcrypt/lwcgo"
	"github.com/lightcrypt/lwcgo/internal/asconp"
	"github.com/lightcrypt/lwcgo/internal/bytesutil"
)

// Key, nonce and tag sizes in bytes.
const (
	KeySize     = 16 // ASCON-128 and ASCON-128a
	KeySize80pq = 20 // ASCON-80pq
	NonceSize   = 16
	TagSize     = 16
)

// Block rates in bytes.
const (
	Rate128  = 8
	Rate128a = 16
)

// Initialization vectors. The 80pq IV is 32 bits; the first key bytes
// complete its lane.
const (
	iv128   = 0x80400c0600000000
	iv128a  = 0x80800c0800000000
	iv80pq  = 0xa0400c06
	dsByte  = 0x01 // AD/payload domain separator, last state byte
	padByte = 0x80
)

// absorb XORs data into the rate, permuting between blocks, and closes
// with a padded block. Callers skip it entirely for empty input.
func absorb(s *asconp.State, data []byte, rate, firstRound int) {
	for len(data) >= rate {
		bytesutil.XOR(s[:rate], data[:rate])
		s.Permute(firstRound)
		data = data[rate:]
	}
	bytesutil.XOR(s[:len(data)], data)
	s[len(data)] ^= padByte
	s.Permute(firstRound)
}

// encryptBlocks produces ciphertext into dst, leaving the ciphertext in
// the rate. The final partial block is padded but not permuted.
func encryptBlocks(s *asconp.State, dst, src []byte, rate, firstRound int) {
	for len(src) >= rate {
		bytesutil.XOR2Dst(dst[:rate], s[:rate], src[:rate])
		s.Permute(firstRound)
		dst = dst[rate:]
		src = src[rate:]
	}
	bytesutil.XOR2Dst(dst[:len(src)], s[:len(src)], src)
	s[len(src)] ^= padByte
}

// decryptBlocks recovers plaintext into dst, replacing the rate with
// the incoming ciphertext.
func decryptBlocks(s *asconp.State, dst, src []byte, rate, firstRound int) {
	for len(src) >= rate {
		bytesutil.XORSwap(dst[:rate], s[:rate], src[:rate])
		s.Permute(firstRound)
		dst = dst[rate:]
		src = src[rate:]
	}
	bytesutil.XORSwap(dst[:len(src)], s[:len(src)], src)
	s[len(src)] ^= padByte
}

// init128 lays out IV || key || nonce, permutes, and folds the key back
// into the capacity tail. Shared by ASCON-128 and ASCON-128a.
func init128(s *asconp.State, iv uint64, key, nonce []byte) {
	binary.BigEndian.PutUint64(s[0:], iv)
	copy(s[8:24], key)
	copy(s[24:40], nonce)
	s.Permute(0)
	bytesutil.XOR(s[24:40], key)
}

func init80pq(s *asconp.State, key, nonce []byte) {
	binary.BigEndian.PutUint32(s[0:], iv80pq)
	copy(s[4:24], key)
	copy(s[24:40], nonce)
	s.Permute(0)
	bytesutil.XOR(s[20:40], key)
}

// sealTail finalises the state and appends the tag to dst. keyOffset is
// where the key folds in before the final permutation.
func sealTail(s *asconp.State, dst, key, tagKey []byte, keyOffset int) []byte {
	bytesutil.XOR(s[keyOffset:keyOffset+len(key)], key)
	s.Permute(0)
	var tag [TagSize]byte
	bytesutil.XOR2Src(tag[:], s[24:40], tagKey)
	return append(dst, tag[:]...)
}

// Encrypt128 encrypts and authenticates m with ASCON-128, appending
// the ciphertext and tag to dst.
func Encrypt128(dst, m, ad, nonce, key []byte) ([]byte, error) {
	checkKeyNonce(len(key), KeySize, len(nonce))
	var s asconp.State
	init128(&s, iv128, key, nonce)
	if len(ad) > 0 {
		absorb(&s, ad, Rate128, 6)
	}
	s[39] ^= dsByte
	dst, out := extend(dst, len(m))
	encryptBlocks(&s, out, m, Rate128, 6)
	return sealTail(&s, dst, key, key, 8), nil
}

// Decrypt128 verifies and decrypts c with ASCON-128, appending the
// plaintext to dst.
func Decrypt128(dst, c, ad, nonce, key []byte) ([]byte, error) {
	checkKeyNonce(len(key), KeySize, len(nonce))
	if len(c) < TagSize {
		return dst, lwcgo.ErrCiphertextLength
	}
	mlen := len(c) - TagSize
	var s asconp.State
	init128(&s, iv128, key, nonce)
	if len(ad) > 0 {
		absorb(&s, ad, Rate128, 6)
	}
	s[39] ^= dsByte
	dst, out := extend(dst, mlen)
	decryptBlocks(&s, out, c[:mlen], Rate128, 6)
	return openTail(&s, dst, out, c[mlen:], key, key, 8)
}

// Encrypt128a encrypts and authenticates m with ASCON-128a.
func Encrypt128a(dst, m, ad, nonce, key []byte) ([]byte, error) {
	checkKeyNonce(len(key), KeySize, len(nonce))
	var s asconp.State
	init128(&s, iv128a, key, nonce)
	if len(ad) > 0 {
		absorb(&s, ad, Rate128a, 4)
	}
	s[39] ^= dsByte
	dst, out := extend(dst, len(m))
	encryptBlocks(&s, out, m, Rate128a, 4)
	return sealTail(&s, dst, key, key, 16), nil
}

// Decrypt128a verifies and decrypts c with ASCON-128a.
func Decrypt128a(dst, c, ad, nonce, key []byte) ([]byte, error) {
	checkKeyNonce(len(key), KeySize, len(nonce))
	if len(c) < TagSize {
		return dst, lwcgo.ErrCiphertextLength
	}
	mlen := len(c) - TagSize
	var s asconp.State
	init128(&s, iv128a, key, nonce)
	if len(ad) > 0 {
		absorb(&s, ad, Rate128a, 4)
	}
	s[39] ^= dsByte
	dst, out := extend(dst, mlen)
	decryptBlocks(&s, out, c[:mlen], Rate128a, 4)
	return openTail(&s, dst, out, c[mlen:], key, key, 16)
}

// Encrypt80pq encrypts and authenticates m with ASCON-80pq and its
// 20-byte key.
func Encrypt80pq(dst, m, ad, nonce, key []byte) ([]byte, error) {
	checkKeyNonce(len(key), KeySize80pq, len(nonce))
	var s asconp.State
	init80pq(&s, key, nonce)
	if len(ad) > 0 {
		absorb(&s, ad, Rate128, 6)
	}
	s[39] ^= dsByte
	dst, out := extend(dst, len(m))
	encryptBlocks(&s, out, m, Rate128, 6)
	return sealTail(&s, dst, key, key[4:], 8), nil
}

// Decrypt80pq verifies and decrypts c with ASCON-80pq.
func Decrypt80pq(dst, c, ad, nonce, key []byte) ([]byte, error) {
	checkKeyNonce(len(key), KeySize80pq, len(nonce))
	if len(c) < TagSize {
		return dst, lwcgo.ErrCiphertextLength
	}
	mlen := len(c) - TagSize
	var s asconp.State
	init80pq(&s, key, nonce)
	if len(ad) > 0 {
		absorb(&s, ad, Rate128, 6)
	}
	s[39] ^= dsByte
	dst, out := extend(dst, mlen)
	decryptBlocks(&s, out, c[:mlen], Rate128, 6)
	return openTail(&s, dst, out, c[mlen:], key, key[4:], 8)
}

// openTail finalises the state, verifies the received tag in constant
// time and zeroes the plaintext on mismatch.
func openTail(s *asconp.State, dst, plaintext, receivedTag, key, tagKey []byte, keyOffset int) ([]byte, error) {
	bytesutil.XOR(s[keyOffset:keyOffset+len(key)], key)
	s.Permute(0)
	bytesutil.XOR(s[24:40], tagKey)
	if !bytesutil.CheckTag(plaintext, s[24:40], receivedTag) {
		return dst, lwcgo.ErrAuth
	}
	return dst, nil
}

// extend grows dst by n bytes and returns the full slice plus the
// newly appended region.
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

func checkKeyNonce(klen, want, nlen int) {
	if klen != want {
		panic("ascon: invalid key size")
	}
	if nlen != NonceSize {
		panic("ascon: invalid nonce size")
	}
}
