// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package ascon

import (
	"github.com/lightcrypt/lwcgo/internal/asconp"
	"github.com/lightcrypt/lwcgo/internal/bytesutil"
)

// HashSize is the output size of ASCON-HASH in bytes, and the default
// output size of ASCON-XOF.
const HashSize = 32

// hashRate is the absorb and squeeze rate of both hashing modes.
const hashRate = 8

// hashIV is the precomputed ASCON-HASH initialisation state: the
// parameter block after the initial 12-round permutation.
var hashIV = [asconp.StateSize]byte{
	0xee, 0x93, 0x98, 0xaa, 0xdb, 0x67, 0xf0, 0x3d,
	0x8b, 0xb2, 0x18, 0x31, 0xc6, 0x0f, 0x10, 0x02,
	0xb4, 0x8a, 0x92, 0xdb, 0x98, 0xd5, 0xda, 0x62,
	0x43, 0x18, 0x99, 0x21, 0xb8, 0xf8, 0xe3, 0xe8,
	0x34, 0x8f, 0xa5, 0xc9, 0xd5, 0x25, 0xe1, 0x40,
}

// xofIV is the corresponding precomputed ASCON-XOF state.
var xofIV = [asconp.StateSize]byte{
	0xb5, 0x7e, 0x27, 0x3b, 0x81, 0x4c, 0xd4, 0x16,
	0x2b, 0x51, 0x04, 0x25, 0x62, 0xae, 0x24, 0x20,
	0x66, 0xa3, 0xa7, 0x76, 0x8d, 0xdf, 0x22, 0x18,
	0x5a, 0xad, 0x0a, 0x7a, 0x81, 0x53, 0x65, 0x0c,
	0x4f, 0x3e, 0x0e, 0x32, 0x53, 0x94, 0x93, 0xb6,
}

// Hash is an incremental ASCON-HASH computation.
type Hash struct {
	s     asconp.State
	count int // bytes in the partial rate block
}

// NewHash returns a fresh ASCON-HASH state.
func NewHash() *Hash {
	h := new(Hash)
	h.Reset()
	return h
}

// Reset restores the initial state.
func (h *Hash) Reset() {
	h.s = hashIV
	h.count = 0
}

// Size returns the digest size in bytes.
func (h *Hash) Size() int { return HashSize }

// BlockSize returns the absorb rate in bytes.
func (h *Hash) BlockSize() int { return hashRate }

// Write absorbs p into the state. It never fails.
func (h *Hash) Write(p []byte) (int, error) {
	n := len(p)

	// Top up a partial block left over from the previous write
	if h.count > 0 {
		take := hashRate - h.count
		if take > len(p) {
			bytesutil.XOR(h.s[h.count:h.count+len(p)], p)
			h.count += len(p)
			return n, nil
		}
		bytesutil.XOR(h.s[h.count:hashRate], p[:take])
		h.count = 0
		p = p[take:]
		h.s.Permute(0)
	}

	for len(p) >= hashRate {
		bytesutil.XOR(h.s[:hashRate], p[:hashRate])
		p = p[hashRate:]
		h.s.Permute(0)
	}

	bytesutil.XOR(h.s[:len(p)], p)
	h.count = len(p)
	return n, nil
}

// Sum appends the digest to b without disturbing the running state.
func (h *Hash) Sum(b []byte) []byte {
	final := *h
	final.s[final.count] ^= padByte
	var out [HashSize]byte
	for i := 0; i < HashSize; i += hashRate {
		final.s.Permute(0)
		copy(out[i:], final.s[:hashRate])
	}
	return append(b, out[:]...)
}

// SumHash appends the ASCON-HASH digest of in to dst in one shot.
func SumHash(dst, in []byte) []byte {
	h := NewHash()
	h.Write(in)
	return h.Sum(dst)
}

// Xof is an incremental ASCON-XOF computation. It alternates between
// an absorb phase and a squeeze phase; the transition applies the
// padding byte exactly once, and absorbing again after a squeeze closes
// the squeeze phase with one more permutation.
type Xof struct {
	s         asconp.State
	count     int
	squeezing bool
}

// NewXof returns a fresh ASCON-XOF state.
func NewXof() *Xof {
	x := new(Xof)
	x.Reset()
	return x
}

// Reset restores the initial state.
func (x *Xof) Reset() {
	x.s = xofIV
	x.count = 0
	x.squeezing = false
}

// Absorb feeds p into the sponge. If output has already been squeezed
// the sponge re-enters the absorb phase first.
func (x *Xof) Absorb(p []byte) {
	if x.squeezing {
		x.squeezing = false
		x.count = 0
		x.s.Permute(0)
	}

	if x.count > 0 {
		take := hashRate - x.count
		if take > len(p) {
			bytesutil.XOR(x.s[x.count:x.count+len(p)], p)
			x.count += len(p)
			return
		}
		bytesutil.XOR(x.s[x.count:hashRate], p[:take])
		x.count = 0
		p = p[take:]
		x.s.Permute(0)
	}

	for len(p) >= hashRate {
		bytesutil.XOR(x.s[:hashRate], p[:hashRate])
		p = p[hashRate:]
		x.s.Permute(0)
	}

	bytesutil.XOR(x.s[:len(p)], p)
	x.count = len(p)
}

// Squeeze fills out with output stream bytes. The stream is identical
// however the reads are split.
func (x *Xof) Squeeze(out []byte) {
	// Pad and switch phase on the first squeeze after an absorb
	if !x.squeezing {
		x.s[x.count] ^= padByte
		x.count = 0
		x.squeezing = true
	}

	// Serve bytes left over in the current block
	if x.count > 0 {
		take := hashRate - x.count
		if take > len(out) {
			copy(out, x.s[x.count:x.count+len(out)])
			x.count += len(out)
			return
		}
		copy(out, x.s[x.count:hashRate])
		out = out[take:]
		x.count = 0
	}

	for len(out) >= hashRate {
		x.s.Permute(0)
		copy(out, x.s[:hashRate])
		out = out[hashRate:]
	}

	if len(out) > 0 {
		x.s.Permute(0)
		copy(out, x.s[:len(out)])
		x.count = len(out)
	}
}

// SumXof appends HashSize bytes of ASCON-XOF output for in to dst.
func SumXof(dst, in []byte) []byte {
	x := NewXof()
	x.Absorb(in)
	var out [HashSize]byte
	x.Squeeze(out[:])
	return append(dst, out[:]...)
}
