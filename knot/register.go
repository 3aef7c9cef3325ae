// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package knot

import "github.com/lightcrypt/lwcgo"

func maskedEncryptFunc(f func(dst, m, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error)) lwcgo.EncryptFunc {
	return func(dst, m, ad, nonce, key []byte) ([]byte, error) {
		return f(dst, m, ad, nonce, key)
	}
}

func maskedDecryptFunc(f func(dst, c, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error)) lwcgo.DecryptFunc {
	return func(dst, c, ad, nonce, key []byte) ([]byte, error) {
		return f(dst, c, ad, nonce, key)
	}
}

func init() {
	aeads := []struct {
		name           string
		keySize        int
		enc            lwcgo.EncryptFunc
		dec            lwcgo.DecryptFunc
		maskedEnc      lwcgo.EncryptFunc
		maskedDec      lwcgo.DecryptFunc
	}{
		{"KNOT-AEAD-128-256", KeySize128, Encrypt128x256, Decrypt128x256,
			maskedEncryptFunc(EncryptMasked128x256), maskedDecryptFunc(DecryptMasked128x256)},
		{"KNOT-AEAD-128-384", KeySize128, Encrypt128x384, Decrypt128x384,
			maskedEncryptFunc(EncryptMasked128x384), maskedDecryptFunc(DecryptMasked128x384)},
		{"KNOT-AEAD-192-384", KeySize192, Encrypt192x384, Decrypt192x384,
			maskedEncryptFunc(EncryptMasked192x384), maskedDecryptFunc(DecryptMasked192x384)},
		{"KNOT-AEAD-256-512", KeySize256, Encrypt256x512, Decrypt256x512,
			maskedEncryptFunc(EncryptMasked256x512), maskedDecryptFunc(DecryptMasked256x512)},
	}
	for _, a := range aeads {
		lwcgo.RegisterAead(lwcgo.AeadInfo{
			Name:      a.name,
			KeySize:   a.keySize,
			NonceSize: a.keySize,
			TagSize:   a.keySize,
			Flags:     lwcgo.FlagLittleEndian,
			Encrypt:   a.enc,
			Decrypt:   a.dec,
		})
		lwcgo.RegisterAead(lwcgo.AeadInfo{
			Name:      a.name + "-Masked",
			KeySize:   a.keySize,
			NonceSize: a.keySize,
			TagSize:   a.keySize,
			Flags:     lwcgo.FlagLittleEndian | lwcgo.FlagProtectKey,
			Encrypt:   a.maskedEnc,
			Decrypt:   a.maskedDec,
		})
	}

	hashes := []struct {
		name string
		size int
		hash lwcgo.HashFunc
	}{
		{"KNOT-HASH-256-256", HashSize256, SumHash256x256},
		{"KNOT-HASH-256-384", HashSize256, SumHash256x384},
		{"KNOT-HASH-384-384", HashSize384, SumHash384x384},
		{"KNOT-HASH-512-512", HashSize512, SumHash512x512},
	}
	for _, h := range hashes {
		lwcgo.RegisterHash(lwcgo.HashInfo{
			Name:     h.name,
			HashSize: h.size,
			Flags:    lwcgo.FlagLittleEndian,
			Hash:     h.hash,
		})
	}
}
