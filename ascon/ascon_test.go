// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package ascon

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lightcrypt/lwcgo"
)

type aeadFuncs struct {
	name      string
	keySize   int
	encrypt   func(dst, m, ad, nonce, key []byte) ([]byte, error)
	decrypt   func(dst, c, ad, nonce, key []byte) ([]byte, error)
}

var variants = []aeadFuncs{
	{"ASCON-128", KeySize, Encrypt128, Decrypt128},
	{"ASCON-128a", KeySize, Encrypt128a, Decrypt128a},
	{"ASCON-80pq", KeySize80pq, Encrypt80pq, Decrypt80pq},
}

func testKey(n int) []byte {
	key := make([]byte, n)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func testNonce() []byte {
	nonce := make([]byte, NonceSize)
	for i := range nonce {
		nonce[i] = byte(0x10 + i)
	}
	return nonce
}

func TestRoundTrip(t *testing.T) {
	messages := [][]byte{
		nil,
		{0x42},
		[]byte("hello!!"),          // partial block
		[]byte("12345678"),         // one 8-byte block
		[]byte("0123456789ABCDEF"), // one 16-byte block
		[]byte("The quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte{0xa5}, 129),
	}
	ads := [][]byte{nil, {0x01}, []byte("header"), bytes.Repeat([]byte{0x77}, 40)}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			key := testKey(v.keySize)
			nonce := testNonce()
			for _, m := range messages {
				for _, ad := range ads {
					c, err := v.encrypt(nil, m, ad, nonce, key)
					if err != nil {
						t.Fatalf("encrypt: %v", err)
					}
					if len(c) != len(m)+TagSize {
						t.Fatalf("ciphertext length = %d, want %d", len(c), len(m)+TagSize)
					}
					p, err := v.decrypt(nil, c, ad, nonce, key)
					if err != nil {
						t.Fatalf("decrypt: %v", err)
					}
					if !bytes.Equal(p, m) {
						t.Fatalf("round trip failed\ngot:  %x\nwant: %x", p, m)
					}
				}
			}
		})
	}
}

func TestEmptyMessageTag(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)

	c, err := Encrypt128(nil, nil, nil, nonce, key)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) != TagSize {
		t.Fatalf("ciphertext length = %d, want %d", len(c), TagSize)
	}
	p, err := Decrypt128(nil, c, nil, nonce, key)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 0 {
		t.Fatalf("plaintext length = %d, want 0", len(p))
	}

	// The tag is a pure function of (key, nonce)
	again, err := Encrypt128(nil, nil, nil, nonce, key)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(c, again) {
		t.Fatal("empty-message tag is not deterministic")
	}
}

func TestTagForgery(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			key := testKey(v.keySize)
			nonce := testNonce()
			m := []byte("attack at dawn")
			ad := []byte("context")

			c, err := v.encrypt(nil, m, ad, nonce, key)
			if err != nil {
				t.Fatal(err)
			}

			for bit := 0; bit < len(c)*8; bit += 7 {
				tampered := append([]byte(nil), c...)
				tampered[bit/8] ^= 1 << (bit % 8)
				p, err := v.decrypt(nil, tampered, ad, nonce, key)
				if !errors.Is(err, lwcgo.ErrAuth) {
					t.Fatalf("bit %d: want ErrAuth, got %v", bit, err)
				}
				for _, b := range p {
					if b != 0 {
						t.Fatalf("bit %d: plaintext not zeroed after failure", bit)
					}
				}
			}

			// Flipping associated data must also fail
			badAD := []byte("Context")
			if _, err := v.decrypt(nil, c, badAD, nonce, key); !errors.Is(err, lwcgo.ErrAuth) {
				t.Fatalf("AD flip: want ErrAuth, got %v", err)
			}
		})
	}
}

func TestShortCiphertext(t *testing.T) {
	key := testKey(KeySize)
	nonce := testNonce()
	_, err := Decrypt128(nil, make([]byte, TagSize-1), nil, nonce, key)
	if !errors.Is(err, lwcgo.ErrCiphertextLength) {
		t.Fatalf("want ErrCiphertextLength, got %v", err)
	}
}

func TestInPlaceSeal(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			key := testKey(v.keySize)
			nonce := testNonce()
			m := []byte("in-place encryption works on the exact same buffer")

			expected, err := v.encrypt(nil, m, nil, nonce, key)
			if err != nil {
				t.Fatal(err)
			}

			buf := make([]byte, len(m), len(m)+TagSize)
			copy(buf, m)
			got, err := v.encrypt(buf[:0], buf, nil, nonce, key)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, expected) {
				t.Fatalf("in-place result differs\ngot:  %x\nwant: %x", got, expected)
			}

			p, err := v.decrypt(got[:0], got, nil, nonce, key)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(p, m) {
				t.Fatalf("in-place decrypt differs\ngot:  %x\nwant: %x", p, m)
			}
		})
	}
}

func TestCipherAEADAdapter(t *testing.T) {
	key := testKey(KeySize)
	nonce := testNonce()
	aead, err := New128(key)
	if err != nil {
		t.Fatal(err)
	}
	if aead.NonceSize() != NonceSize || aead.Overhead() != TagSize {
		t.Fatal("unexpected adapter geometry")
	}

	m := []byte("sealed through the cipher.AEAD face")
	ad := []byte("aad")
	c := aead.Seal(nil, nonce, m, ad)

	expected, err := Encrypt128(nil, m, ad, nonce, key)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(c, expected) {
		t.Fatal("adapter and raw form disagree")
	}

	p, err := aead.Open(nil, nonce, c, ad)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p, m) {
		t.Fatal("adapter round trip failed")
	}
}

func FuzzRoundTrip128(f *testing.F) {
	f.Add([]byte("seed message"), []byte("seed ad"))
	f.Fuzz(func(t *testing.T, m, ad []byte) {
		key := testKey(KeySize)
		nonce := testNonce()
		c, err := Encrypt128(nil, m, ad, nonce, key)
		if err != nil {
			t.Fatal(err)
		}
		p, err := Decrypt128(nil, c, ad, nonce, key)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(p, m) {
			t.Fatalf("round trip failed for %x", m)
		}
	})
}

func BenchmarkEncrypt128(b *testing.B) {
	key := testKey(KeySize)
	nonce := testNonce()
	m := make([]byte, 1024)
	dst := make([]byte, 0, len(m)+TagSize)
	b.SetBytes(int64(len(m)))
	for i := 0; i < b.N; i++ {
		if _, err := Encrypt128(dst, m, nil, nonce, key); err != nil {
			b.Fatal(err)
		}
	}
}
