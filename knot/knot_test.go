// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package knot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lightcrypt/lwcgo"
)

type aeadFuncs struct {
	name    string
	keySize int
	encrypt func(dst, m, ad, nonce, key []byte) ([]byte, error)
	decrypt func(dst, c, ad, nonce, key []byte) ([]byte, error)
}

var variants = []aeadFuncs{
	{"KNOT-AEAD-128-256", KeySize128, Encrypt128x256, Decrypt128x256},
	{"KNOT-AEAD-128-384", KeySize128, Encrypt128x384, Decrypt128x384},
	{"KNOT-AEAD-192-384", KeySize192, Encrypt192x384, Decrypt192x384},
	{"KNOT-AEAD-256-512", KeySize256, Encrypt256x512, Decrypt256x512},
}

func material(n int, base byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = base + byte(i)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	messages := [][]byte{
		nil,
		{0x42},
		material(7, 0),
		material(8, 1),
		material(12, 2),
		material(24, 3),
		material(25, 4),
		material(100, 5),
	}
	ads := [][]byte{nil, {0x01}, material(23, 0x40), material(48, 0x50)}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			key := material(v.keySize, 0x80)
			nonce := material(v.keySize, 0x20)
			for _, m := range messages {
				for _, ad := range ads {
					c, err := v.encrypt(nil, m, ad, nonce, key)
					if err != nil {
						t.Fatalf("encrypt: %v", err)
					}
					if len(c) != len(m)+v.keySize {
						t.Fatalf("ciphertext length = %d, want %d", len(c), len(m)+v.keySize)
					}
					p, err := v.decrypt(nil, c, ad, nonce, key)
					if err != nil {
						t.Fatalf("decrypt: %v", err)
					}
					if !bytes.Equal(p, m) {
						t.Fatalf("round trip failed for mlen=%d adlen=%d", len(m), len(ad))
					}
				}
			}
		})
	}
}

func TestTagForgery(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			key := material(v.keySize, 0x80)
			nonce := material(v.keySize, 0x20)
			m := []byte("authenticated payload")
			c, err := v.encrypt(nil, m, []byte("ad"), nonce, key)
			if err != nil {
				t.Fatal(err)
			}
			for bit := 0; bit < len(c)*8; bit += 11 {
				tampered := append([]byte(nil), c...)
				tampered[bit/8] ^= 1 << (bit % 8)
				p, err := v.decrypt(nil, tampered, []byte("ad"), nonce, key)
				if !errors.Is(err, lwcgo.ErrAuth) {
					t.Fatalf("bit %d: want ErrAuth, got %v", bit, err)
				}
				for _, b := range p {
					if b != 0 {
						t.Fatalf("bit %d: plaintext not zeroed", bit)
					}
				}
			}
		})
	}
}

func TestShortCiphertext(t *testing.T) {
	key := material(KeySize128, 0)
	nonce := material(KeySize128, 1)
	_, err := Decrypt128x256(nil, make([]byte, KeySize128-1), nil, nonce, key)
	if !errors.Is(err, lwcgo.ErrCiphertextLength) {
		t.Fatalf("want ErrCiphertextLength, got %v", err)
	}
}

func TestInPlaceSeal(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			key := material(v.keySize, 0x80)
			nonce := material(v.keySize, 0x20)
			m := material(61, 0x11)

			expected, err := v.encrypt(nil, m, nil, nonce, key)
			if err != nil {
				t.Fatal(err)
			}
			buf := make([]byte, len(m), len(m)+v.keySize)
			copy(buf, m)
			got, err := v.encrypt(buf[:0], buf, nil, nonce, key)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, expected) {
				t.Fatal("in-place result differs")
			}
		})
	}
}

func TestMaskedMatchesPlain(t *testing.T) {
	type masked struct {
		name    string
		keySize int
		plain   func(dst, m, ad, nonce, key []byte) ([]byte, error)
		enc     func(dst, m, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error)
		dec     func(dst, c, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error)
	}
	maskedVariants := []masked{
		{"KNOT-AEAD-128-256", KeySize128, Encrypt128x256, EncryptMasked128x256, DecryptMasked128x256},
		{"KNOT-AEAD-128-384", KeySize128, Encrypt128x384, EncryptMasked128x384, DecryptMasked128x384},
		{"KNOT-AEAD-192-384", KeySize192, Encrypt192x384, EncryptMasked192x384, DecryptMasked192x384},
		{"KNOT-AEAD-256-512", KeySize256, Encrypt256x512, EncryptMasked256x512, DecryptMasked256x512},
	}

	m := []byte("masking must not change KNOT either")
	ad := []byte("ad bytes")

	for _, v := range maskedVariants {
		t.Run(v.name, func(t *testing.T) {
			key := material(v.keySize, 0x80)
			nonce := material(v.keySize, 0x20)
			want, err := v.plain(nil, m, ad, nonce, key)
			if err != nil {
				t.Fatal(err)
			}

			for shares := 2; shares <= 6; shares++ {
				for _, prot := range []Protection{ProtectKeyOnly, ProtectAll} {
					got, err := v.enc(nil, m, ad, nonce, key,
						WithShares(shares), WithProtection(prot))
					if err != nil {
						t.Fatalf("shares=%d prot=%d: %v", shares, prot, err)
					}
					if !bytes.Equal(got, want) {
						t.Fatalf("shares=%d prot=%d: masked ciphertext differs\ngot:  %x\nwant: %x",
							shares, prot, got, want)
					}
					p, err := v.dec(nil, got, ad, nonce, key,
						WithShares(shares), WithProtection(prot))
					if err != nil {
						t.Fatalf("shares=%d prot=%d decrypt: %v", shares, prot, err)
					}
					if !bytes.Equal(p, m) {
						t.Fatalf("shares=%d prot=%d: masked round trip failed", shares, prot)
					}
				}
			}
		})
	}
}

func TestHashProperties(t *testing.T) {
	hashes := []struct {
		name string
		size int
		sum  func(dst, in []byte) []byte
	}{
		{"KNOT-HASH-256-256", HashSize256, SumHash256x256},
		{"KNOT-HASH-256-384", HashSize256, SumHash256x384},
		{"KNOT-HASH-384-384", HashSize384, SumHash384x384},
		{"KNOT-HASH-512-512", HashSize512, SumHash512x512},
	}
	for _, h := range hashes {
		t.Run(h.name, func(t *testing.T) {
			input := material(75, 0x30)
			digest := h.sum(nil, input)
			if len(digest) != h.size {
				t.Fatalf("digest length = %d, want %d", len(digest), h.size)
			}
			if !bytes.Equal(digest, h.sum(nil, input)) {
				t.Fatal("digest not deterministic")
			}

			input[len(input)-1] ^= 0x01
			changed := h.sum(nil, input)
			var flipped int
			for i := range digest {
				for d := digest[i] ^ changed[i]; d != 0; d &= d - 1 {
					flipped++
				}
			}
			if flipped < h.size*8/4 {
				t.Errorf("only %d of %d output bits flipped", flipped, h.size*8)
			}
		})
	}
}

func TestHashVariantsDisagree(t *testing.T) {
	input := material(32, 0x60)
	a := SumHash256x256(nil, input)
	b := SumHash256x384(nil, input)
	if bytes.Equal(a, b) {
		t.Fatal("distinct KNOT-HASH variants produced the same digest")
	}
}

func FuzzRoundTrip128x256(f *testing.F) {
	f.Add([]byte("seed"), []byte("ad"))
	f.Fuzz(func(t *testing.T, m, ad []byte) {
		key := material(KeySize128, 0x80)
		nonce := material(KeySize128, 0x20)
		c, err := Encrypt128x256(nil, m, ad, nonce, key)
		if err != nil {
			t.Fatal(err)
		}
		p, err := Decrypt128x256(nil, c, ad, nonce, key)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(p, m) {
			t.Fatal("round trip failed")
		}
	})
}

func BenchmarkEncrypt128x256(b *testing.B) {
	key := material(KeySize128, 0x80)
	nonce := material(KeySize128, 0x20)
	m := make([]byte, 1024)
	dst := make([]byte, 0, len(m)+KeySize128)
	b.SetBytes(int64(len(m)))
	for i := 0; i < b.N; i++ {
		if _, err := Encrypt128x256(dst, m, nil, nonce, key); err != nil {
			b.Fatal(err)
		}
	}
}
