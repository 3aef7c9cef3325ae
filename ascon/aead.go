// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package ascon

import (
	"crypto/cipher"
	"fmt"
)

// aead adapts the raw slice functions to the crypto/cipher AEAD
// interface.
type aead struct {
	key     []byte
	encrypt func(dst, m, ad, nonce, key []byte) ([]byte, error)
	decrypt func(dst, c, ad, nonce, key []byte) ([]byte, error)
}

var _ cipher.AEAD = (*aead)(nil)

// New128 returns ASCON-128 as a cipher.AEAD using the given 16-byte
// key.
func New128(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("ascon: invalid key length %d", len(key))
	}
	return &aead{key: append([]byte(nil), key...), encrypt: Encrypt128, decrypt: Decrypt128}, nil
}

// New128a returns ASCON-128a as a cipher.AEAD using the given 16-byte
// key.
func New128a(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("ascon: invalid key length %d", len(key))
	}
	return &aead{key: append([]byte(nil), key...), encrypt: Encrypt128a, decrypt: Decrypt128a}, nil
}

// New80pq returns ASCON-80pq as a cipher.AEAD using the given 20-byte
// key.
func New80pq(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize80pq {
		return nil, fmt.Errorf("ascon: invalid key length %d", len(key))
	}
	return &aead{key: append([]byte(nil), key...), encrypt: Encrypt80pq, decrypt: Decrypt80pq}, nil
}

func (a *aead) NonceSize() int { return NonceSize }

func (a *aead) Overhead() int { return TagSize }

func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	out, err := a.encrypt(dst, plaintext, additionalData, nonce, a.key)
	if err != nil {
		// The raw form only fails on short ciphertexts, which cannot
		// happen while sealing.
		panic(err)
	}
	return out
}

func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	return a.decrypt(dst, ciphertext, additionalData, nonce, a.key)
}
