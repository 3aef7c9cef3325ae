// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package suite

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lightcrypt/lwcgo"
)

// weakKeySafe returns key material that passes every algorithm's key
// validation, including DryGASCON's distinct-words test.
func weakKeySafe(n int) []byte {
	key := make([]byte, n)
	for i := range key {
		key[i] = byte(0x80 + i*3)
	}
	return key
}

func TestEveryAeadRegistered(t *testing.T) {
	want := []string{
		"ASCON-128", "ASCON-128-Masked", "ASCON-128a", "ASCON-128a-Masked",
		"ASCON-80pq", "ASCON-80pq-Masked",
		"DryGASCON128k16", "DryGASCON128k32", "DryGASCON128k56", "DryGASCON256",
		"ISAP-A-128", "ISAP-A-128A", "ISAP-K-128", "ISAP-K-128A",
		"KNOT-AEAD-128-256", "KNOT-AEAD-128-256-Masked",
		"KNOT-AEAD-128-384", "KNOT-AEAD-128-384-Masked",
		"KNOT-AEAD-192-384", "KNOT-AEAD-192-384-Masked",
		"KNOT-AEAD-256-512", "KNOT-AEAD-256-512-Masked",
		"Spook-128-384-mu", "Spook-128-384-su",
		"Spook-128-512-mu", "Spook-128-512-su",
	}
	infos := Aeads()
	var got []string
	for _, info := range infos {
		got = append(got, info.Name)
	}
	if len(got) != len(want) {
		t.Fatalf("registered %d AEADs %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AEAD %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEveryHashRegistered(t *testing.T) {
	want := []string{
		"ASCON-HASH", "ASCON-XOF",
		"DryGASCON128-HASH", "DryGASCON256-HASH",
		"KNOT-HASH-256-256", "KNOT-HASH-256-384",
		"KNOT-HASH-384-384", "KNOT-HASH-512-512",
	}
	var got []string
	for _, info := range Hashes() {
		got = append(got, info.Name)
	}
	if len(got) != len(want) {
		t.Fatalf("registered hashes %v, want %d entries", got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("hash %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestAeadRoundTripAll drives the whole collection through the
// descriptor table, the way the KAT harness consumes it.
func TestAeadRoundTripAll(t *testing.T) {
	messages := [][]byte{nil, {0x42}, bytes.Repeat([]byte{0xa7}, 37)}
	ads := [][]byte{nil, []byte("shared context")}

	for _, info := range Aeads() {
		t.Run(info.Name, func(t *testing.T) {
			key := weakKeySafe(info.KeySize)
			nonce := weakKeySafe(info.NonceSize)
			for _, m := range messages {
				for _, ad := range ads {
					c, err := info.Encrypt(nil, m, ad, nonce, key)
					if err != nil {
						t.Fatalf("encrypt: %v", err)
					}
					if len(c) != len(m)+info.TagSize {
						t.Fatalf("ciphertext length = %d, want %d",
							len(c), len(m)+info.TagSize)
					}
					p, err := info.Decrypt(nil, c, ad, nonce, key)
					if err != nil {
						t.Fatalf("decrypt: %v", err)
					}
					if !bytes.Equal(p, m) {
						t.Fatalf("round trip failed for mlen=%d adlen=%d",
							len(m), len(ad))
					}
				}
			}
		})
	}
}

// TestAeadForgeryAll flips one ciphertext bit, one key bit and one
// nonce bit per algorithm, each on its own, and expects authentication
// to fail.
func TestAeadForgeryAll(t *testing.T) {
	for _, info := range Aeads() {
		t.Run(info.Name, func(t *testing.T) {
			key := weakKeySafe(info.KeySize)
			nonce := weakKeySafe(info.NonceSize)
			m := []byte("forgery resistance")

			c, err := info.Encrypt(nil, m, nil, nonce, key)
			if err != nil {
				t.Fatal(err)
			}

			tampered := append([]byte(nil), c...)
			tampered[0] ^= 0x01
			if _, err := info.Decrypt(nil, tampered, nil, nonce, key); !errors.Is(err, lwcgo.ErrAuth) {
				t.Fatalf("ciphertext flip: want ErrAuth, got %v", err)
			}

			badKey := append([]byte(nil), key...)
			badKey[0] ^= 0x01
			if _, err := info.Decrypt(nil, c, nil, nonce, badKey); !errors.Is(err, lwcgo.ErrAuth) {
				t.Fatalf("key flip: want ErrAuth, got %v", err)
			}

			badNonce := append([]byte(nil), nonce...)
			badNonce[0] ^= 0x01
			if _, err := info.Decrypt(nil, c, nil, badNonce, key); !errors.Is(err, lwcgo.ErrAuth) {
				t.Fatalf("nonce flip: want ErrAuth, got %v", err)
			}
		})
	}
}

func TestShortCiphertextAll(t *testing.T) {
	for _, info := range Aeads() {
		t.Run(info.Name, func(t *testing.T) {
			key := weakKeySafe(info.KeySize)
			nonce := weakKeySafe(info.NonceSize)
			_, err := info.Decrypt(nil, make([]byte, info.TagSize-1), nil, nonce, key)
			if !errors.Is(err, lwcgo.ErrCiphertextLength) {
				t.Fatalf("want ErrCiphertextLength, got %v", err)
			}
		})
	}
}

func TestHashSizesAll(t *testing.T) {
	for _, info := range Hashes() {
		t.Run(info.Name, func(t *testing.T) {
			digest := info.Hash(nil, []byte("table driven"))
			if len(digest) != info.HashSize {
				t.Fatalf("digest length = %d, want %d", len(digest), info.HashSize)
			}
		})
	}
}

func TestXofRegistered(t *testing.T) {
	info, ok := lwcgo.LookupHash("ASCON-XOF")
	if !ok || info.NewXof == nil {
		t.Fatal("ASCON-XOF must register a XOF constructor")
	}
	x := info.NewXof()
	x.Absorb([]byte("in"))
	out := make([]byte, 16)
	x.Squeeze(out)
	if bytes.Equal(out, make([]byte, 16)) {
		t.Fatal("XOF output is all zero")
	}
}
