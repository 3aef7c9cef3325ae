// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package isap implements the ISAP-A and ISAP-K authenticated ciphers,
// which harden a sponge AEAD against side-channel analysis by deriving
// a fresh session key for every packet through bit-by-bit absorption.
//
// ISAP-A runs over the ASCON permutation, ISAP-K over Keccak-p[400];
// the variants differ only in rate and round schedules.
//
// Reference: https://isap.iaik.tugraz.at/
package isap

import (
	"github.com/lightcrypt/lwcgo"
	"github.com/lightcrypt/lwcgo/internal/asconp"
	"github.com/lightcrypt/lwcgo/internal/bytesutil"
	"github.com/lightcrypt/lwcgo/internal/keccakp"
)

// Key, nonce and tag sizes shared by all ISAP variants, in bytes.
const (
	KeySize   = 16
	NonceSize = 16
	TagSize   = 16
)

// variant fixes one ISAP instantiation: the permutation, its rate and
// the four round schedules.
type variant struct {
	name      string
	stateSize int
	rate      int
	sH        int // hashing rounds
	sE        int // encryption rounds
	sB        int // key-bit absorption rounds
	sK        int // keying rounds
	newState  func() (state []byte, permute func(rounds int))
}

func newAsconState() ([]byte, func(int)) {
	s := new(asconp.State)
	// The schedules count rounds from the end of the 12-round ASCON
	// permutation.
	return s[:], func(rounds int) { s.Permute(12 - rounds) }
}

func newKeccakState() ([]byte, func(int)) {
	s := new(keccakp.State)
	return s[:], s.Permute
}

var (
	isapA128a = &variant{
		name: "ISAP-A-128A", stateSize: asconp.StateSize, rate: 8,
		sH: 12, sE: 6, sB: 1, sK: 12, newState: newAsconState,
	}
	isapA128 = &variant{
		name: "ISAP-A-128", stateSize: asconp.StateSize, rate: 8,
		sH: 12, sE: 12, sB: 12, sK: 12, newState: newAsconState,
	}
	isapK128a = &variant{
		name: "ISAP-K-128A", stateSize: keccakp.StateSize, rate: 144 / 8,
		sH: 16, sE: 8, sB: 1, sK: 8, newState: newKeccakState,
	}
	isapK128 = &variant{
		name: "ISAP-K-128", stateSize: keccakp.StateSize, rate: 144 / 8,
		sH: 20, sE: 12, sB: 12, sK: 12, newState: newKeccakState,
	}
)

// iv builds one of the three domain-separating IV strings. The leading
// byte distinguishes AD hashing (1), MAC rekeying (2) and encryption
// rekeying (3); the rest pins the variant's geometry.
func (v *variant) iv(domain byte, n int) []byte {
	out := make([]byte, n)
	out[0] = domain
	out[1] = KeySize * 8
	out[2] = byte(v.rate * 8)
	out[3] = 1
	out[4] = byte(v.sH)
	out[5] = byte(v.sB)
	out[6] = byte(v.sE)
	out[7] = byte(v.sK)
	return out
}

// rekey derives a session key into the leading state bytes by
// absorbing data one bit at a time.
func (v *variant) rekey(state []byte, permute func(int), key, iv, data []byte) {
	copy(state[:KeySize], key)
	copy(state[KeySize:], iv)
	permute(v.sK)

	numBits := len(data)*8 - 1
	for bit := 0; bit < numBits; bit++ {
		state[0] ^= (data[bit/8] << (bit % 8)) & 0x80
		permute(v.sB)
	}
	state[0] ^= (data[numBits/8] << (numBits % 8)) & 0x80
	permute(v.sK)
}

// keystream rekeys for encryption and XORs the keystream over src.
func (v *variant) keystream(state []byte, permute func(int), key, nonce []byte, dst, src []byte) {
	v.rekey(state, permute, key, v.iv(3, v.stateSize-KeySize), nonce)
	copy(state[v.stateSize-NonceSize:], nonce)

	for len(src) >= v.rate {
		permute(v.sE)
		bytesutil.XOR2Src(dst[:v.rate], state[:v.rate], src[:v.rate])
		dst = dst[v.rate:]
		src = src[v.rate:]
	}
	if len(src) > 0 {
		permute(v.sE)
		bytesutil.XOR2Src(dst[:len(src)], state[:len(src)], src)
	}
}

// mac authenticates the associated data and ciphertext, producing the
// 16-byte tag: a sponge hash, rekeyed with the partial MAC and closed
// with one more permutation.
func (v *variant) mac(state []byte, permute func(int), key, nonce, ad, c []byte, tag []byte) {
	copy(state[:NonceSize], nonce)
	copy(state[NonceSize:], v.iv(1, v.stateSize-NonceSize))
	permute(v.sH)

	absorb := func(data []byte) {
		for len(data) >= v.rate {
			bytesutil.XOR(state[:v.rate], data[:v.rate])
			permute(v.sH)
			data = data[v.rate:]
		}
		bytesutil.XOR(state[:len(data)], data)
		state[len(data)] ^= 0x80
		permute(v.sH)
	}

	absorb(ad)
	state[v.stateSize-1] ^= 0x01 // domain separation
	absorb(c)

	copy(tag, state[:TagSize])
	preserve := make([]byte, v.stateSize-TagSize)
	copy(preserve, state[TagSize:])
	v.rekey(state, permute, key, v.iv(2, v.stateSize-KeySize), tag)
	copy(state[TagSize:], preserve)
	permute(v.sH)
	copy(tag, state[:TagSize])
}

func (v *variant) encrypt(dst, m, ad, nonce, key []byte) ([]byte, error) {
	checkKeyNonce(len(key), len(nonce))
	state, permute := v.newState()

	dst, out := extend(dst, len(m))
	v.keystream(state, permute, key, nonce, out, m)

	var tag [TagSize]byte
	v.mac(state, permute, key, nonce, ad, out, tag[:])
	return append(dst, tag[:]...), nil
}

func (v *variant) decrypt(dst, c, ad, nonce, key []byte) ([]byte, error) {
	checkKeyNonce(len(key), len(nonce))
	if len(c) < TagSize {
		return dst, lwcgo.ErrCiphertextLength
	}
	mlen := len(c) - TagSize
	state, permute := v.newState()

	var tag [TagSize]byte
	v.mac(state, permute, key, nonce, ad, c[:mlen], tag[:])

	dst, out := extend(dst, mlen)
	v.keystream(state, permute, key, nonce, out, c[:mlen])

	if !bytesutil.CheckTag(out, tag[:], c[mlen:]) {
		return dst, lwcgo.ErrAuth
	}
	return dst, nil
}

// EncryptA128a encrypts and authenticates m with ISAP-A-128A,
// appending the ciphertext and tag to dst.
func EncryptA128a(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return isapA128a.encrypt(dst, m, ad, nonce, key)
}

// DecryptA128a verifies and decrypts c with ISAP-A-128A.
func DecryptA128a(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return isapA128a.decrypt(dst, c, ad, nonce, key)
}

// EncryptA128 encrypts and authenticates m with ISAP-A-128.
func EncryptA128(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return isapA128.encrypt(dst, m, ad, nonce, key)
}

// DecryptA128 verifies and decrypts c with ISAP-A-128.
func DecryptA128(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return isapA128.decrypt(dst, c, ad, nonce, key)
}

// EncryptK128a encrypts and authenticates m with ISAP-K-128A.
func EncryptK128a(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return isapK128a.encrypt(dst, m, ad, nonce, key)
}

// DecryptK128a verifies and decrypts c with ISAP-K-128A.
func DecryptK128a(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return isapK128a.decrypt(dst, c, ad, nonce, key)
}

// EncryptK128 encrypts and authenticates m with ISAP-K-128.
func EncryptK128(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return isapK128.encrypt(dst, m, ad, nonce, key)
}

// DecryptK128 verifies and decrypts c with ISAP-K-128.
func DecryptK128(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return isapK128.decrypt(dst, c, ad, nonce, key)
}

func init() {
	for _, v := range []*variant{isapA128a, isapA128, isapK128a, isapK128} {
		v := v
		lwcgo.RegisterAead(lwcgo.AeadInfo{
			Name:      v.name,
			KeySize:   KeySize,
			NonceSize: NonceSize,
			TagSize:   TagSize,
			Flags:     lwcgo.FlagProtectKey,
			Encrypt:   v.encrypt,
			Decrypt:   v.decrypt,
		})
	}
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

func checkKeyNonce(klen, nlen int) {
	if klen != KeySize {
		panic("isap: invalid key size")
	}
	if nlen != NonceSize {
		panic("isap: invalid nonce size")
	}
}
