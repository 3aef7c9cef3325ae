// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package knot

import (
	"encoding/binary"
	"fmt"

	"github.com/lightcrypt/lwcgo"
	"github.com/lightcrypt/lwcgo/internal/bytesutil"
	"github.com/lightcrypt/lwcgo/internal/knotp"
	"github.com/lightcrypt/lwcgo/internal/masking"
	"github.com/lightcrypt/lwcgo/internal/maskrand"
)

// Protection selects how much of a masked AEAD computation runs on
// shares.
type Protection int

const (
	// ProtectKeyOnly masks the initialisation permutation, where the
	// key enters the state; the data phase runs unmasked.
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
// with a fixed-seed generator, for reproducing masked test vectors
// only.
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
		return cfg, nil, fmt.Errorf("knot: unsupported share count %d", cfg.shares)
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

// maskedState abstracts one masked KNOT state behind the rate and
// domain operations the generic engine needs.
type maskedState interface {
	// xorRate folds a full rate block of public data into share 0.
	xorRate(block []byte)
	// readRate recombines the rate words into block.
	readRate(block []byte)
	// domainSep flips the high bit of the final state byte.
	domainSep()
	// permute runs the masked permutation.
	permute(rounds int, rng maskrand.Source)
	// unmaskTo recombines the whole state into out.
	unmaskTo(out []byte)
	// zeroize clears all shares.
	zeroize()
}

type masked256 struct {
	s knotp.MaskedState256
}

func (m *masked256) xorRate(block []byte) {
	m.s.S[0].XorConst(binary.LittleEndian.Uint64(block))
}

func (m *masked256) readRate(block []byte) {
	binary.LittleEndian.PutUint64(block, m.s.S[0].Output())
}

func (m *masked256) domainSep() {
	m.s.S[3].XorConst(0x8000000000000000)
}

func (m *masked256) permute(rounds int, rng maskrand.Source) {
	m.s.Permute6(rounds, rng)
}

func (m *masked256) unmaskTo(out []byte) {
	var plain knotp.State256
	m.s.Unmask(&plain)
	copy(out, plain[:])
}

func (m *masked256) zeroize() { m.s.Zeroize() }

// masked384 covers both 384-bit variants; rate tells how many bytes of
// the row words carry data.
type masked384 struct {
	s    knotp.MaskedState384
	rate int
}

func (m *masked384) xorRate(block []byte) {
	m.s.L[0].XorConst(binary.LittleEndian.Uint64(block))
	m.s.H[0].XorConst(binary.LittleEndian.Uint32(block[8:]))
	if m.rate == rate128x384 {
		m.s.L[1].XorConst(binary.LittleEndian.Uint64(block[12:]))
		m.s.H[1].XorConst(binary.LittleEndian.Uint32(block[20:]))
	}
}

func (m *masked384) readRate(block []byte) {
	binary.LittleEndian.PutUint64(block, m.s.L[0].Output())
	binary.LittleEndian.PutUint32(block[8:], m.s.H[0].Output())
	if m.rate == rate128x384 {
		binary.LittleEndian.PutUint64(block[12:], m.s.L[1].Output())
		binary.LittleEndian.PutUint32(block[20:], m.s.H[1].Output())
	}
}

func (m *masked384) domainSep() {
	m.s.H[3].XorConst(0x80000000)
}

func (m *masked384) permute(rounds int, rng maskrand.Source) {
	m.s.Permute7(rounds, rng)
}

func (m *masked384) unmaskTo(out []byte) {
	var plain knotp.State384
	m.s.Unmask(&plain)
	copy(out, plain[:])
}

func (m *masked384) zeroize() { m.s.Zeroize() }

type masked512 struct {
	s knotp.MaskedState512
}

func (m *masked512) xorRate(block []byte) {
	m.s.S[0].XorConst(binary.LittleEndian.Uint64(block))
	m.s.S[1].XorConst(binary.LittleEndian.Uint64(block[8:]))
}

func (m *masked512) readRate(block []byte) {
	binary.LittleEndian.PutUint64(block, m.s.S[0].Output())
	binary.LittleEndian.PutUint64(block[8:], m.s.S[1].Output())
}

func (m *masked512) domainSep() {
	m.s.S[7].XorConst(0x8000000000000000)
}

func (m *masked512) permute(rounds int, rng maskrand.Source) {
	m.s.Permute7(rounds, rng)
}

func (m *masked512) unmaskTo(out []byte) {
	var plain knotp.State512
	m.s.Unmask(&plain)
	copy(out, plain[:])
}

func (m *masked512) zeroize() { m.s.Zeroize() }

// maskedParams extends a variant's parameters with its masked state
// construction.
type maskedParams struct {
	plain     *params
	stateSize int
	initR     int
	initState func(n int, key, nonce []byte, rng maskrand.Source) maskedState
}

func newMasked256(n int, key, nonce []byte, rng maskrand.Source) maskedState {
	m := new(masked256)
	m.s.S[0] = masking.NewWord64(n, binary.LittleEndian.Uint64(nonce), rng)
	m.s.S[1] = masking.NewWord64(n, binary.LittleEndian.Uint64(nonce[8:]), rng)
	m.s.S[2] = masking.NewWord64(n, binary.LittleEndian.Uint64(key), rng)
	m.s.S[3] = masking.NewWord64(n, binary.LittleEndian.Uint64(key[8:]), rng)
	return m
}

func newMasked128x384(n int, key, nonce []byte, rng maskrand.Source) maskedState {
	m := &masked384{rate: rate128x384}
	m.s.L[0] = masking.NewWord64(n, binary.LittleEndian.Uint64(nonce), rng)
	m.s.H[0] = masking.NewWord32(n, binary.LittleEndian.Uint32(nonce[8:]), rng)
	m.s.L[1] = masking.NewWord64(n,
		uint64(binary.LittleEndian.Uint32(nonce[12:]))|
			uint64(binary.LittleEndian.Uint32(key))<<32, rng)
	m.s.H[1] = masking.NewWord32(n, binary.LittleEndian.Uint32(key[4:]), rng)
	m.s.L[2] = masking.NewWord64(n, binary.LittleEndian.Uint64(key[8:]), rng)
	m.s.H[2] = masking.NewWord32(n, 0, rng)
	m.s.L[3] = masking.NewWord64(n, 0, rng)
	m.s.H[3] = masking.NewWord32(n, 0x80000000, rng)
	return m
}

func newMasked192x384(n int, key, nonce []byte, rng maskrand.Source) maskedState {
	m := &masked384{rate: rate192x384}
	m.s.L[0] = masking.NewWord64(n, binary.LittleEndian.Uint64(nonce), rng)
	m.s.H[0] = masking.NewWord32(n, binary.LittleEndian.Uint32(nonce[8:]), rng)
	m.s.L[1] = masking.NewWord64(n, binary.LittleEndian.Uint64(nonce[12:]), rng)
	m.s.H[1] = masking.NewWord32(n, binary.LittleEndian.Uint32(nonce[20:]), rng)
	m.s.L[2] = masking.NewWord64(n, binary.LittleEndian.Uint64(key), rng)
	m.s.H[2] = masking.NewWord32(n, binary.LittleEndian.Uint32(key[8:]), rng)
	m.s.L[3] = masking.NewWord64(n, binary.LittleEndian.Uint64(key[12:]), rng)
	m.s.H[3] = masking.NewWord32(n, binary.LittleEndian.Uint32(key[20:]), rng)
	return m
}

func newMasked512(n int, key, nonce []byte, rng maskrand.Source) maskedState {
	m := new(masked512)
	for i := 0; i < 4; i++ {
		m.s.S[i] = masking.NewWord64(n, binary.LittleEndian.Uint64(nonce[i*8:]), rng)
	}
	for i := 0; i < 4; i++ {
		m.s.S[4+i] = masking.NewWord64(n, binary.LittleEndian.Uint64(key[i*8:]), rng)
	}
	return m
}

var masked128x256 = maskedParams{
	plain: &aead128x256, stateSize: knotp.State256Size, initR: 52,
	initState: newMasked256,
}

var masked128x384 = maskedParams{
	plain: &aead128x384, stateSize: knotp.State384Size, initR: 76,
	initState: newMasked128x384,
}

var masked192x384 = maskedParams{
	plain: &aead192x384, stateSize: knotp.State384Size, initR: 76,
	initState: newMasked192x384,
}

var masked256x512 = maskedParams{
	plain: &aead256x512, stateSize: knotp.State512Size, initR: 100,
	initState: newMasked512,
}

// maskedAbsorbAD absorbs associated data on the masked state.
func maskedAbsorbAD(m maskedState, rounds, rate int, ad []byte, rng maskrand.Source) {
	for len(ad) >= rate {
		m.xorRate(ad[:rate])
		m.permute(rounds, rng)
		ad = ad[rate:]
	}
	padded := make([]byte, rate)
	n := copy(padded, ad)
	padded[n] = padByte
	m.xorRate(padded)
	m.permute(rounds, rng)
}

func (p *maskedParams) encrypt(dst, msg, ad, nonce, key []byte, opts []MaskedOption) ([]byte, error) {
	v := p.plain
	checkKeyNonce(len(key), v.keySize, len(nonce), v.keySize)
	cfg, rng, err := newMaskedConfig(opts)
	if err != nil {
		return dst, err
	}
	defer rng.Finish()

	state := p.initState(cfg.shares, key, nonce, rng)
	state.permute(p.initR, rng)
	dst, out := extend(dst, len(msg))
	stateBytes := make([]byte, p.stateSize)

	if cfg.protection == ProtectAll {
		if len(ad) > 0 {
			maskedAbsorbAD(state, v.absorbR, v.rate, ad, rng)
		}
		state.domainSep()
		if len(msg) > 0 {
			for len(msg) >= v.rate {
				state.xorRate(msg[:v.rate])
				state.readRate(out[:v.rate])
				state.permute(v.absorbR, rng)
				msg = msg[v.rate:]
				out = out[v.rate:]
			}
			padded := make([]byte, v.rate)
			n := copy(padded, msg)
			padded[n] = padByte
			state.xorRate(padded)
			state.readRate(padded)
			copy(out, padded[:n])
		}
		state.permute(v.finalR, rng)
		state.unmaskTo(stateBytes)
		state.zeroize()
		return append(dst, stateBytes[:v.tagSize]...), nil
	}

	// Key-only: unmask after the initialisation permutation and run
	// the data phase on the plain state.
	state.unmaskTo(stateBytes)
	state.zeroize()
	plain, permute := p.reattach(stateBytes)
	if len(ad) > 0 {
		absorbAD(plain, permute, v.absorbR, v.rate, ad)
	}
	plain[len(plain)-1] ^= 0x80
	if len(msg) > 0 {
		encryptPayload(plain, permute, v.absorbR, v.rate, out, msg)
	}
	permute(v.finalR)
	return append(dst, plain[:v.tagSize]...), nil
}

func (p *maskedParams) decrypt(dst, c, ad, nonce, key []byte, opts []MaskedOption) ([]byte, error) {
	v := p.plain
	checkKeyNonce(len(key), v.keySize, len(nonce), v.keySize)
	if len(c) < v.tagSize {
		return dst, lwcgo.ErrCiphertextLength
	}
	cfg, rng, err := newMaskedConfig(opts)
	if err != nil {
		return dst, err
	}
	defer rng.Finish()

	mlen := len(c) - v.tagSize
	state := p.initState(cfg.shares, key, nonce, rng)
	state.permute(p.initR, rng)
	dst, out := extend(dst, mlen)
	stateBytes := make([]byte, p.stateSize)

	if cfg.protection == ProtectAll {
		if len(ad) > 0 {
			maskedAbsorbAD(state, v.absorbR, v.rate, ad, rng)
		}
		state.domainSep()
		rest := c[:mlen]
		outp := out
		if mlen > 0 {
			buf := make([]byte, v.rate)
			for len(rest) >= v.rate {
				state.readRate(buf)
				bytesutil.XOR2Src(outp[:v.rate], buf, rest[:v.rate])
				state.xorRate(outp[:v.rate])
				state.permute(v.absorbR, rng)
				rest = rest[v.rate:]
				outp = outp[v.rate:]
			}
			n := len(rest)
			state.readRate(buf)
			bytesutil.XOR2Dst(outp[:n], buf[:n], rest)
			for i := n; i < v.rate; i++ {
				buf[i] = 0
			}
			buf[n] = padByte
			state.xorRate(buf)
		}
		state.permute(v.finalR, rng)
		state.unmaskTo(stateBytes)
		state.zeroize()
		if !bytesutil.CheckTag(out, stateBytes[:v.tagSize], c[mlen:]) {
			return dst, lwcgo.ErrAuth
		}
		return dst, nil
	}

	state.unmaskTo(stateBytes)
	state.zeroize()
	plain, permute := p.reattach(stateBytes)
	if len(ad) > 0 {
		absorbAD(plain, permute, v.absorbR, v.rate, ad)
	}
	plain[len(plain)-1] ^= 0x80
	if mlen > 0 {
		decryptPayload(plain, permute, v.absorbR, v.rate, out, c[:mlen])
	}
	permute(v.finalR)
	if !bytesutil.CheckTag(out, plain[:v.tagSize], c[mlen:]) {
		return dst, lwcgo.ErrAuth
	}
	return dst, nil
}

// reattach wraps raw state bytes back into the right permutation for
// the key-only data phase.
func (p *maskedParams) reattach(stateBytes []byte) ([]byte, func(int)) {
	switch p.stateSize {
	case knotp.State256Size:
		s := new(knotp.State256)
		copy(s[:], stateBytes)
		return s[:], s.Permute6
	case knotp.State384Size:
		s := new(knotp.State384)
		copy(s[:], stateBytes)
		return s[:], s.Permute7
	default:
		s := new(knotp.State512)
		copy(s[:], stateBytes)
		return s[:], s.Permute7
	}
}

// EncryptMasked128x256 is the side-channel-masked form of
// Encrypt128x256.
func EncryptMasked128x256(dst, m, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked128x256.encrypt(dst, m, ad, nonce, key, opts)
}

// DecryptMasked128x256 is the side-channel-masked form of
// Decrypt128x256.
func DecryptMasked128x256(dst, c, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked128x256.decrypt(dst, c, ad, nonce, key, opts)
}

// EncryptMasked128x384 is the side-channel-masked form of
// Encrypt128x384.
func EncryptMasked128x384(dst, m, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked128x384.encrypt(dst, m, ad, nonce, key, opts)
}

// DecryptMasked128x384 is the side-channel-masked form of
// Decrypt128x384.
func DecryptMasked128x384(dst, c, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked128x384.decrypt(dst, c, ad, nonce, key, opts)
}

// EncryptMasked192x384 is the side-channel-masked form of
// Encrypt192x384.
func EncryptMasked192x384(dst, m, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked192x384.encrypt(dst, m, ad, nonce, key, opts)
}

// DecryptMasked192x384 is the side-channel-masked form of
// Decrypt192x384.
func DecryptMasked192x384(dst, c, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked192x384.decrypt(dst, c, ad, nonce, key, opts)
}

// EncryptMasked256x512 is the side-channel-masked form of
// Encrypt256x512.
func EncryptMasked256x512(dst, m, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked256x512.encrypt(dst, m, ad, nonce, key, opts)
}

// DecryptMasked256x512 is the side-channel-masked form of
// Decrypt256x512.
func DecryptMasked256x512(dst, c, ad, nonce, key []byte, opts ...MaskedOption) ([]byte, error) {
	return masked256x512.decrypt(dst, c, ad, nonce, key, opts)
}
