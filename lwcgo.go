// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package lwcgo defines the common interfaces, flags and errors shared
// by the lightweight cryptography implementations in this module, and a
// registry of algorithm descriptors for table-driven consumers.
//
// The cipher families live in their own packages (ascon, knot, isap,
// spook, drygascon); importing a family package registers its
// descriptors here, in the manner of the image format registry.
package lwcgo

import "errors"

// Flags describe per-algorithm properties relevant to test harnesses
// and callers selecting a side-channel protection class.
type Flags uint8

const (
	// FlagLittleEndian marks algorithms whose canonical test vectors
	// are in little-endian byte order.
	FlagLittleEndian Flags = 0x01

	// FlagProtectKey marks algorithms whose side-channel protection
	// covers key material only.
	FlagProtectKey Flags = 0x02

	// FlagProtectAll marks algorithms whose side-channel protection
	// covers all operations.
	FlagProtectAll Flags = 0x04
)

// Errors shared by every cipher family in the module.
var (
	// ErrAuth is reported when an authentication tag fails to verify.
	// The plaintext output buffer has been zeroed when it is returned.
	ErrAuth = errors.New("lwcgo: message authentication failed")

	// ErrCiphertextLength is reported when a ciphertext is shorter
	// than the algorithm's tag.
	ErrCiphertextLength = errors.New("lwcgo: ciphertext shorter than tag")

	// ErrWeakKey is reported by DryGASCON when the key fails the
	// distinct-words test for its mixing table.
	ErrWeakKey = errors.New("lwcgo: weak key rejected")

	// ErrMaskingUnavailable is reported when the masking randomness
	// source cannot be initialised. No key material has been touched
	// when it is returned.
	ErrMaskingUnavailable = errors.New("lwcgo: masking randomness unavailable")
)

// EncryptFunc is the raw AEAD encryption form: it appends the
// ciphertext and tag for (m, ad, nonce, key) to dst and returns the
// extended slice.
type EncryptFunc func(dst, m, ad, nonce, key []byte) ([]byte, error)

// DecryptFunc is the raw AEAD decryption form: it verifies and strips
// the tag from c, appends the plaintext to dst and returns the extended
// slice. On authentication failure the appended plaintext is zeroed and
// ErrAuth returned.
type DecryptFunc func(dst, c, ad, nonce, key []byte) ([]byte, error)

// HashFunc is the one-shot hashing form: it appends the digest of in
// to dst.
type HashFunc func(dst, in []byte) []byte

// AeadInfo describes one AEAD algorithm.
type AeadInfo struct {
	Name      string
	KeySize   int
	NonceSize int
	TagSize   int
	Flags     Flags
	Encrypt   EncryptFunc
	Decrypt   DecryptFunc
}

// HashInfo describes one hash or XOF algorithm. Hash is always set;
// NewXof is only set for extendable-output algorithms.
type HashInfo struct {
	Name     string
	HashSize int
	Flags    Flags
	Hash     HashFunc
	NewXof   func() Xof
}

// Xof is the extendable-output interface: absorb any amount of input,
// then squeeze any amount of output. Absorbing after a squeeze
// transitions the sponge back to the absorb phase.
type Xof interface {
	Absorb(p []byte)
	Squeeze(out []byte)
}
