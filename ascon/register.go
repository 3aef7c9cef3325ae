// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package ascon

import "github.com/lightcrypt/lwcgo"

func init() {
	lwcgo.RegisterAead(lwcgo.AeadInfo{
		Name:      "ASCON-128",
		KeySize:   KeySize,
		NonceSize: NonceSize,
		TagSize:   TagSize,
		Encrypt:   Encrypt128,
		Decrypt:   Decrypt128,
	})
	lwcgo.RegisterAead(lwcgo.AeadInfo{
		Name:      "ASCON-128a",
		KeySize:   KeySize,
		NonceSize: NonceSize,
		TagSize:   TagSize,
		Encrypt:   Encrypt128a,
		Decrypt:   Decrypt128a,
	})
	lwcgo.RegisterAead(lwcgo.AeadInfo{
		Name:      "ASCON-80pq",
		KeySize:   KeySize80pq,
		NonceSize: NonceSize,
		TagSize:   TagSize,
		Encrypt:   Encrypt80pq,
		Decrypt:   Decrypt80pq,
	})
	lwcgo.RegisterAead(lwcgo.AeadInfo{
		Name:      "ASCON-128-Masked",
		KeySize:   KeySize,
		NonceSize: NonceSize,
		TagSize:   TagSize,
		Flags:     lwcgo.FlagProtectKey,
		Encrypt: func(dst, m, ad, nonce, key []byte) ([]byte, error) {
			return EncryptMasked128(dst, m, ad, nonce, key)
		},
		Decrypt: func(dst, c, ad, nonce, key []byte) ([]byte, error) {
			return DecryptMasked128(dst, c, ad, nonce, key)
		},
	})
	lwcgo.RegisterAead(lwcgo.AeadInfo{
		Name:      "ASCON-128a-Masked",
		KeySize:   KeySize,
		NonceSize: NonceSize,
		TagSize:   TagSize,
		Flags:     lwcgo.FlagProtectKey,
		Encrypt: func(dst, m, ad, nonce, key []byte) ([]byte, error) {
			return EncryptMasked128a(dst, m, ad, nonce, key)
		},
		Decrypt: func(dst, c, ad, nonce, key []byte) ([]byte, error) {
			return DecryptMasked128a(dst, c, ad, nonce, key)
		},
	})
	lwcgo.RegisterAead(lwcgo.AeadInfo{
		Name:      "ASCON-80pq-Masked",
		KeySize:   KeySize80pq,
		NonceSize: NonceSize,
		TagSize:   TagSize,
		Flags:     lwcgo.FlagProtectKey,
		Encrypt: func(dst, m, ad, nonce, key []byte) ([]byte, error) {
			return EncryptMasked80pq(dst, m, ad, nonce, key)
		},
		Decrypt: func(dst, c, ad, nonce, key []byte) ([]byte, error) {
			return DecryptMasked80pq(dst, c, ad, nonce, key)
		},
	})
	lwcgo.RegisterHash(lwcgo.HashInfo{
		Name:     "ASCON-HASH",
		HashSize: HashSize,
		Hash:     SumHash,
	})
	lwcgo.RegisterHash(lwcgo.HashInfo{
		Name:     "ASCON-XOF",
		HashSize: HashSize,
		Hash:     SumXof,
		NewXof:   func() lwcgo.Xof { return NewXof() },
	})
}
