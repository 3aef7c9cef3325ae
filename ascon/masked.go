// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package ascon

import (
	"encoding/binary"
	"fmt"

	"github.com/lightcrypt/lwcgo"
	"github.com/lightcrypt/lwcgo/internal/asconp"
	"github.com/lightcrypt/lwcgo/internal/bytesutil"
	"github.com/lightcrypt/lwcgo/internal/masking"
	"github.com/lightcrypt/lwcgo/internal/maskrand"
)

// Protection selects how much of a masked AEAD computation runs on
// shares.
type Protection int

const (
	// ProtectKeyOnly masks initialisation and finalisation, where key
	// material enters the state; the data phase runs unmasked.
	ProtectKeyOnly Protection = iota

	// ProtectAll keeps the state in masked form for every permutation
	// call of the session.
	ProtectAll
)

// MaskedOption configures a masked encryption or decryption call.
type MaskedOption func(*maskedConfig)

type maskedConfig struct {
	shares     int
	protection Protection
	seed       *[32]byte
}

// WithShares selects the masking share count N, between 2 and 6.
// The default is 2.
func WithShares(n int) MaskedOption {
	return func(cfg *maskedConfig) { cfg.shares = n }
}

// WithProtection selects the protection policy. The default is
// ProtectKeyOnly.
func WithProtection(p Protection) MaskedOption {
	return func(cfg *maskedConfig) { cfg.protection = p }
}

// WithInsecureDeterministicSource replaces the system mask randomness
// with a fixed-seed generator. This exists solely to reproduce masked
// test vectors; using it in production voids the masking guarantees.
func WithInsecureDeterministicSource(seed [32]byte) MaskedOption {
	return func(cfg *maskedConfig) {
		s := seed
		cfg.seed = &s
	}
}

func newMaskedConfig(opts []MaskedOption) (maskedConfig, maskrand.Source, error) {
	cfg := maskedConfig{shares: masking.MinShares, protection: ProtectKeyOnly}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !masking.ValidShares(cfg.shares) {
		return cfg, nil, fmt.Errorf("ascon: unsupported share count %d", cfg.shares)
	}
	if cfg.seed != nil {
		return cfg, maskrand.NewDeterministic(*cfg.seed), nil
	}
	src, err := maskrand.NewSystem()
	if err != nil {
		return cfg, nil, fmt.Errorf("%w: %v", lwcgo.ErrMaskingUnavailable, err)
	}
	return cfg, src, nil
}

// maskedInit128 builds the masked initial state for ASCON-128/128a.
func maskedInit128(n int, iv uint64, key, nonce []byte, rng maskrand.Source) asconp.MaskedState {
	var m asconp.MaskedState
	m.S[0] = masking.NewWord64(n, iv, rng)
	m.S[1] = masking.NewWord64(n, binary.BigEndian.Uint64(key), rng)
	m.S[2] = masking.NewWord64(n, binary.BigEndian.Uint64(key[8:]), rng)
	m.S[3] = masking.NewWord64(n, binary.BigEndian.Uint64(nonce), rng)
	m.S[4] = masking.NewWord64(n, binary.BigEndian.Uint64(nonce[8:]), rng)
	m.Permute(0, rng)
	m.S[3].XorConst(binary.BigEndian.Uint64(key))
	m.S[4].XorConst(binary.BigEndian.Uint64(key[8:]))
	return m
}

// maskedInit80pq builds the masked initial state for ASCON-80pq.
func maskedInit80pq(n int, key, nonce []byte, rng maskrand.Source) asconp.MaskedState {
	var m asconp.MaskedState
	m.S[0] = masking.NewWord64(n, iv80pq<<32|uint64(binary.BigEndian.Uint32(key)), rng)
	m.S[1] = masking.NewWord64(n, binary.BigEndian.Uint64(key[4:]), rng)
	m.S[2] = masking.NewWord64(n, binary.BigEndian.Uint64(key[12:]), rng)
	m.S[3] = masking.NewWord64(n, binary.BigEndian.Uint64(nonce), rng)
	m.S[4] = masking.NewWord64(n, binary.BigEndian.Uint64(nonce[8:]), rng)
	m.Permute(0, rng)
	// Fold the 20-byte key into the last 20 bytes of the state: the
	// low 32 bits of lane 2 and all of lanes 3 and 4.
	m.S[2].XorConst(uint64(binary.BigEndian.Uint32(key)))
	m.S[3].XorConst(binary.BigEndian.Uint64(key[4:]))
	m.S[4].XorConst(binary.BigEndian.Uint64(key[12:]))
	return m
}

// maskedAbsorb absorbs data through share 0; public data needs no
// fresh sharing of its own.
func maskedAbsorb(m *asconp.MaskedState, data []byte, rate, firstRound int, rng maskrand.Source) {
	lanes := rate / 8
	for len(data) >= rate {
		for i := 0; i < lanes; i++ {
			m.S[i].XorConst(binary.BigEndian.Uint64(data[i*8:]))
		}
		m.Permute(firstRound, rng)
		data = data[rate:]
	}
	padded := padBlock(data, rate)
	for i := 0; i < lanes; i++ {
		m.S[i].XorConst(binary.BigEndian.Uint64(padded[i*8:]))
	}
	m.Permute(firstRound, rng)
}

// maskedEncrypt encrypts on the masked state; the plaintext word folds
// into share 0 and the ciphertext is the recombined rate.
func maskedEncrypt(m *asconp.MaskedState, dst, src []byte, rate, firstRound int, rng maskrand.Source) {
	lanes := rate / 8
	for len(src) >= rate {
		for i := 0; i < lanes; i++ {
			m.S[i].XorConst(binary.BigEndian.Uint64(src[i*8:]))
			binary.BigEndian.PutUint64(dst[i*8:], m.S[i].Output())
		}
		m.Permute(firstRound, rng)
		dst = dst[rate:]
		src = src[rate:]
	}
	n := len(src)
	padded := padBlock(src, rate)
	for i := 0; i < lanes; i++ {
		m.S[i].XorConst(binary.BigEndian.Uint64(padded[i*8:]))
		binary.BigEndian.PutUint64(padded[i*8:], m.S[i].Output())
	}
	copy(dst, padded[:n])
}

// maskedDecrypt mirrors maskedEncrypt with the ciphertext replacing
// the rate.
func maskedDecrypt(m *asconp.MaskedState, dst, src []byte, rate, firstRound int, rng maskrand.Source) {
	lanes := rate / 8
	for len(src) >= rate {
		for i := 0; i < lanes; i++ {
			word := m.S[i].Output() ^ binary.BigEndian.Uint64(src[i*8:])
			m.S[i].XorConst(word)
			binary.BigEndian.PutUint64(dst[i*8:], word)
		}
		m.Permute(firstRound, rng)
		dst = dst[rate:]
		src = src[rate:]
	}
	n := len(src)
	buf := make([]byte, rate)
	for i := 0; i < lanes; i++ {
		binary.BigEndian.PutUint64(buf[i*8:], m.S[i].Output())
	}
	bytesutil.XOR2Dst(dst[:n], buf[:n], src)
	// Rebuild the padded plaintext block that entered the state
	for i := n; i < rate; i++ {
		buf[i] = 0
	}
	buf[n] = padByte
	for i := 0; i < lanes; i++ {
		m.S[i].XorConst(binary.BigEndian.Uint64(buf[i*8:]))
	}
}

func padBlock(data []byte, rate int) []byte {
	padded := make([]byte, rate)
	n := copy(padded, data)
	padded[n] = padByte
	return padded
}

// maskedParams collects what differs between the masked variants.
type maskedParams struct {
	keySize    int
	rate       int
	firstRound int
	initState  func(n int, key, nonce []byte, rng maskrand.Source) asconp.MaskedState
	finalLane  int // first lane the key folds into at finalisation
	tagKeyOff  int // offset of the 16 tag key bytes within the key
}

var masked128 = maskedParams{
	keySize:    KeySize,
	rate:       Rate128,
	firstRound: 6,
	initState: func(n int, key, nonce []byte, rng maskrand.Source) asconp.MaskedState {
		return maskedInit128(n, iv128, key, nonce, rng)
	},
	finalLane: 1,
	tagKeyOff: 0,
}

var masked128a = maskedParams{
	keySize:    KeySize,
	rate:       Rate128a,
	firstRound: 4,
	initState: func(n int, key, nonce []byte, rng maskrand.Source) asconp.MaskedState {
		return maskedInit128(n, iv128a, key, nonce, rng)
	},
	finalLane: 2,
	tagKeyOff: 0,
}

var masked80pq = maskedParams{
	keySize:    KeySize80pq,
	rate:       Rate128,
	firstRound: 6,
	initState:  maskedInit80pq,
	finalLane:  1,
	tagKeyOff:  4,
}

// maskedFinalize folds the key in, permutes and recombines the tag.
func (p *maskedParams) maskedFinalize(m *asconp.MaskedState, key []byte, rng maskrand.Source) [TagSize]byte {
	if p.keySize == KeySize80pq {
		// The 20-byte key spans two and a half lanes from lane 1
		m.S[1].XorConst(binary.BigEndian.Uint64(key))
		m.S[2].XorConst(binary.BigEndian.Uint64(key[8:]))
		m.S[3].XorConst(uint64(binary.BigEndian.Uint32(key[16:])) << 32)
	} else {
		m.S[p.finalLane].XorConst(binary.BigEndian.Uint64(key))
		m.S[p.finalLane+1].XorConst(binary.BigEndian.Uint64(key[8:]))
	}
	m.Permute(0, rng)
	m.S[3].XorConst(binary.BigEndian.Uint64(key[p.tagKeyOff:]))
	m.S[4].XorConst(binary.BigEndian.Uint64(key[p.tagKeyOff+8:]))
	var tag [TagSize]byte
	binary.BigEndian.PutUint64(tag[0:], m.S[3].Output())
	binary.BigEndian.PutUint64(tag[8:], m.S[4].Output())
	return tag
}

func (p *maskedParams) encrypt(dst, m, ad, nonce, key []byte, opts []MaskedOption) ([]byte, error) {
	checkKeyNonce(len(key), p.keySize, len(nonce))
	cfg, rng, err := newMaskedConfig(opts)
	if err != nil {
		return dst, err
	}
	defer rng.Finish()

	state := p.initState(cfg.shares, key, nonce, rng)
	dst, out := extend(dst, len(m))

	if cfg.protection == ProtectAll {
		if len(ad) > 0 {
			maskedAbsorb(&state, ad, p.rate, p.firstRound, rng)
		}
		state.S[4].XorConst(dsByte)
		maskedEncrypt(&state, out, m, p.rate, p.firstRound, rng)
		tag := p.maskedFinalize(&state, key, rng)
		state.Zeroize()
		return append(dst, tag[:]...), nil
	}

	// Key-only: unmask for the data phase, re-mask to finalise
	var plain asconp.State
	state.Unmask(&plain)
	if len(ad) > 0 {
		absorb(&plain, ad, p.rate, p.firstRound)
	}
	plain[39] ^= dsByte
	encryptBlocks(&plain, out, m, p.rate, p.firstRound)
	state = asconp.Mask(cfg.shares, &plain, rng)
	tag := p.maskedFinalize(&state, key, rng)
	state.Zeroize()
	return append(dst, tag[:]...), nil
}

func (p *maskedParams) decrypt(dst, c, ad, nonce, key []byte, opts []MaskedOption) ([]byte, error) {
	checkKeyNonce(len(key), p.keySize, len(nonce))
	if len(c) < TagSize {
		return dst, lwcgo.ErrCiphertextLength
	}
	cfg, rng, err := newMaskedConfig(opts)
	if err != nil {
		return dst, err
	}
	defer rng.Finish()

	mlen := len(c) - TagSize
	state := p.initState(cfg.shares, key, nonce, rng)
	dst, out := extend(dst, mlen)

	var tag [TagSize]byte
	if cfg.protection == ProtectAll {
		if len(ad) > 0 {
			maskedAbsorb(&state, ad, p.rate, p.firstRound, rng)
		}
		state.S[4].XorConst(dsByte)
		maskedDecrypt(&state, out, c[:mlen], p.rate, p.firstRound, rng)
		tag = p.maskedFinalize(&state, key, rng)
	} else {
		var plain asconp.State
		state.Unmask(&plain)
		if len(ad) > 0 {
			absorb(&plain, ad, p.rate, p.firstRound)
		}
		plain[39] ^= dsByte
		decryptBlocks(&plain, out, c[:mlen], p.rate, p.firstRound)
		state = asconp.Mask(cfg.shares, &plain, rng)
		tag = p.maskedFinalize(&state, key, rng)
	}
	state.Zeroize()
	if !bytesutil.CheckTag(out, tag[:], c[mlen:]) {
		return dst, lwcgo.ErrAuth
	}
	return dst, nil
}

// EncryptMasked128 is the side-channel-masked form of Encrypt128.
func EncryptMasked128(dst, m, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked128.encrypt(dst, m, ad, nonce, key, opts)
}

// DecryptMasked128 is the side-channel-masked form of Decrypt128.
func DecryptMasked128(dst, c, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked128.decrypt(dst, c, ad, nonce, key, opts)
}

// EncryptMasked128a is the side-channel-masked form of Encrypt128a.
func EncryptMasked128a(dst, m, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked128a.encrypt(dst, m, ad, nonce, key, opts)
}

// DecryptMasked128a is the side-channel-masked form of Decrypt128a.
func DecryptMasked128a(dst, c, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked128a.decrypt(dst, c, ad, nonce, key, opts)
}

// EncryptMasked80pq is the side-channel-masked form of Encrypt80pq.
func EncryptMasked80pq(dst, m, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked80pq.encrypt(dst, m, ad, nonce, key, opts)
}

// DecryptMasked80pq is the side-channel-masked form of Decrypt80pq.
func DecryptMasked80pq(dst, c, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked80pq.decrypt(dst, c, ad, nonce, key, opts)
}
