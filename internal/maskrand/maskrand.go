// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package maskrand supplies the random words used to freshen Boolean
// masking shares.
//
// The production source is a ChaCha20 generator seeded from the
// operating system once, when NewSystem builds it, so that drawing a share never has to
// touch the kernel on the hot path. A deterministic variant with a
// caller-supplied seed exists for reproducing masked test vectors; it is
// a distinct type and can never be constructed by accident.
package maskrand

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// ErrUnavailable is reported when the system entropy source cannot be
// read. Masked operations must fail before any key material is split
// into shares; they never fall back to fixed shares.
var ErrUnavailable = errors.New("maskrand: system entropy unavailable")

// Source produces the fresh random words consumed by masked operations.
// A Source is not safe for concurrent use; each masked session owns one.
type Source interface {
	// Uint32 returns the next 32 random bits.
	Uint32() uint32
	// Uint64 returns the next 64 random bits.
	Uint64() uint64
	// Finish scrubs the generator state once the session is complete.
	Finish()
}

const bufLen = 512

// stream is the common ChaCha20-backed generator behind both source
// types.
type stream struct {
	cipher *chacha20.Cipher
	buf    [bufLen]byte
	off    int
}

func newStream(key *[chacha20.KeySize]byte) (*stream, error) {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return nil, fmt.Errorf("maskrand: init generator: %w", err)
	}
	s := &stream{cipher: c, off: bufLen}
	return s, nil
}

func (s *stream) refill() {
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.cipher.XORKeyStream(s.buf[:], s.buf[:])
	s.off = 0
}

func (s *stream) Uint32() uint32 {
	if s.off+4 > bufLen {
		s.refill()
	}
	b := s.buf[s.off:]
	s.off += 4
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (s *stream) Uint64() uint64 {
	if s.off+8 > bufLen {
		s.refill()
	}
	b := s.buf[s.off:]
	s.off += 8
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func (s *stream) Finish() {
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.cipher = nil
	s.off = bufLen
}

// SystemSource draws its seed from crypto/rand. This is the only source
// that masked production code should use.
type SystemSource struct {
	stream
}

// NewSystem seeds a fresh SystemSource from the operating system.
func NewSystem() (*SystemSource, error) {
	var key [chacha20.KeySize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s, err := newStream(&key)
	if err != nil {
		return nil, err
	}
	for i := range key {
		key[i] = 0
	}
	return &SystemSource{stream: *s}, nil
}

// DeterministicSource replays a fixed keystream from a caller-supplied
// seed. It exists so that masked known-answer tests are reproducible.
// It must never be used outside of tests.
type DeterministicSource struct {
	stream
}

// NewDeterministic builds a DeterministicSource from seed.
func NewDeterministic(seed [32]byte) *DeterministicSource {
	s, err := newStream(&seed)
	if err != nil {
		// The key and nonce sizes are fixed at compile time, so the
		// only failure mode is an impossible argument error.
		panic(err)
	}
	return &DeterministicSource{stream: *s}
}
