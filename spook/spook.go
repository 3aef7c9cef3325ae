// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package spook implements the Spook-128-512 and Spook-128-384
// authenticated ciphers in their single-user (su) and multi-user (mu)
// flavours, built on the Shadow permutations and the Clyde-128
// tweakable block cipher.
//
// Reference: https://spook.dev/ (Spook round 2 submission).
package spook

import (
	"github.com/lightcrypt/lwcgo"
	"github.com/lightcrypt/lwcgo/internal/bytesutil"
	"github.com/lightcrypt/lwcgo/internal/spookp"
)

// Key, nonce and tag sizes in bytes. Multi-user keys carry a second
// block that becomes the public tweak.
const (
	KeySizeSU = 16
	KeySizeMU = 32
	NonceSize = 16
	TagSize   = 16
)

const blockSize = spookp.Clyde128BlockSize

// variant fixes one Spook instantiation: state geometry and key
// length.
type variant struct {
	name      string
	keySize   int
	stateSize int
	rate      int
	permute   func(state []byte)
}

func shadow512(state []byte) {
	spookp.Shadow512((*[spookp.Shadow512Size]byte)(state))
}

func shadow384(state []byte) {
	spookp.Shadow384((*[spookp.Shadow384Size]byte)(state))
}

var (
	su512 = &variant{"Spook-128-512-su", KeySizeSU, spookp.Shadow512Size, 32, shadow512}
	su384 = &variant{"Spook-128-384-su", KeySizeSU, spookp.Shadow384Size, 16, shadow384}
	mu512 = &variant{"Spook-128-512-mu", KeySizeMU, spookp.Shadow512Size, 32, shadow512}
	mu384 = &variant{"Spook-128-384-mu", KeySizeMU, spookp.Shadow384Size, 16, shadow384}
)

// initState lays the nonce and the Clyde-encrypted IV block into the
// sponge state. Multi-user keys contribute a 126-bit public tweak with
// a 0x40 marker.
func (v *variant) initState(key, nonce []byte) []byte {
	state := make([]byte, v.stateSize)
	if v.keySize == KeySizeMU {
		copy(state[:blockSize], key[blockSize:])
		state[blockSize-1] &= 0x7F
		state[blockSize-1] |= 0x40
	}
	copy(state[blockSize:2*blockSize], nonce)
	spookp.Clyde128Encrypt(key[:blockSize], state[:blockSize], state[v.stateSize-blockSize:], nonce)
	v.permute(state)
	return state
}

// absorbAD absorbs associated data; short final blocks carry the 0x01
// pad and the 0x02 partial-block marker past the rate.
func (v *variant) absorbAD(state []byte, ad []byte) {
	for len(ad) >= v.rate {
		bytesutil.XOR(state[:v.rate], ad[:v.rate])
		v.permute(state)
		ad = ad[v.rate:]
	}
	if len(ad) > 0 {
		bytesutil.XOR(state[:len(ad)], ad)
		state[len(ad)] ^= 0x01
		state[v.rate] ^= 0x02
		v.permute(state)
	}
}

func (v *variant) encryptPayload(state []byte, c, m []byte) {
	state[v.rate] ^= 0x01
	for len(m) >= v.rate {
		bytesutil.XOR2Dst(c[:v.rate], state[:v.rate], m[:v.rate])
		v.permute(state)
		c = c[v.rate:]
		m = m[v.rate:]
	}
	if len(m) > 0 {
		bytesutil.XOR2Dst(c[:len(m)], state[:len(m)], m)
		state[len(m)] ^= 0x01
		state[v.rate] ^= 0x02
		v.permute(state)
	}
}

func (v *variant) decryptPayload(state []byte, m, c []byte) {
	state[v.rate] ^= 0x01
	for len(c) >= v.rate {
		bytesutil.XORSwap(m[:v.rate], state[:v.rate], c[:v.rate])
		v.permute(state)
		m = m[v.rate:]
		c = c[v.rate:]
	}
	if len(c) > 0 {
		bytesutil.XORSwap(m[:len(c)], state[:len(c)], c)
		state[len(c)] ^= 0x01
		state[v.rate] ^= 0x02
		v.permute(state)
	}
}

func (v *variant) encrypt(dst, m, ad, nonce, key []byte) ([]byte, error) {
	v.checkKeyNonce(len(key), len(nonce))
	state := v.initState(key, nonce)

	if len(ad) > 0 {
		v.absorbAD(state, ad)
	}

	dst, out := extend(dst, len(m))
	if len(m) > 0 {
		v.encryptPayload(state, out, m)
	}

	// The tag is the leading state block encrypted under Clyde, with
	// the next block, its top bit set, as the tweak.
	state[2*blockSize-1] |= 0x80
	var tag [TagSize]byte
	spookp.Clyde128Encrypt(key[:blockSize], state[blockSize:2*blockSize], tag[:], state[:blockSize])
	return append(dst, tag[:]...), nil
}

func (v *variant) decrypt(dst, c, ad, nonce, key []byte) ([]byte, error) {
	v.checkKeyNonce(len(key), len(nonce))
	if len(c) < TagSize {
		return dst, lwcgo.ErrCiphertextLength
	}
	mlen := len(c) - TagSize
	state := v.initState(key, nonce)

	if len(ad) > 0 {
		v.absorbAD(state, ad)
	}

	dst, out := extend(dst, mlen)
	if mlen > 0 {
		v.decryptPayload(state, out, c[:mlen])
	}

	// Invert the tag computation and compare in the block domain,
	// which spares the forward Clyde call on the received tag.
	state[2*blockSize-1] |= 0x80
	var block [blockSize]byte
	spookp.Clyde128Decrypt(key[:blockSize], state[blockSize:2*blockSize], block[:], c[mlen:])
	if !bytesutil.CheckTag(out, state[:blockSize], block[:]) {
		return dst, lwcgo.ErrAuth
	}
	return dst, nil
}

func (v *variant) checkKeyNonce(klen, nlen int) {
	if klen != v.keySize {
		panic("spook: invalid key size")
	}
	if nlen != NonceSize {
		panic("spook: invalid nonce size")
	}
}

// Encrypt512SU encrypts and authenticates m with Spook-128-512-su,
// appending the ciphertext and tag to dst.
func Encrypt512SU(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return su512.encrypt(dst, m, ad, nonce, key)
}

// Decrypt512SU verifies and decrypts c with Spook-128-512-su.
func Decrypt512SU(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return su512.decrypt(dst, c, ad, nonce, key)
}

// Encrypt384SU encrypts and authenticates m with Spook-128-384-su.
func Encrypt384SU(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return su384.encrypt(dst, m, ad, nonce, key)
}

// Decrypt384SU verifies and decrypts c with Spook-128-384-su.
func Decrypt384SU(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return su384.decrypt(dst, c, ad, nonce, key)
}

// Encrypt512MU encrypts and authenticates m with Spook-128-512-mu and
// its 32-byte multi-user key.
func Encrypt512MU(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return mu512.encrypt(dst, m, ad, nonce, key)
}

// Decrypt512MU verifies and decrypts c with Spook-128-512-mu.
func Decrypt512MU(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return mu512.decrypt(dst, c, ad, nonce, key)
}

// Encrypt384MU encrypts and authenticates m with Spook-128-384-mu.
func Encrypt384MU(dst, m, ad, nonce, key []byte) ([]byte, error) {
	return mu384.encrypt(dst, m, ad, nonce, key)
}

// Decrypt384MU verifies and decrypts c with Spook-128-384-mu.
func Decrypt384MU(dst, c, ad, nonce, key []byte) ([]byte, error) {
	return mu384.decrypt(dst, c, ad, nonce, key)
}

func init() {
	for _, v := range []*variant{su512, su384, mu512, mu384} {
		v := v
		lwcgo.RegisterAead(lwcgo.AeadInfo{
			Name:      v.name,
			KeySize:   v.keySize,
			NonceSize: NonceSize,
			TagSize:   TagSize,
			Flags:     lwcgo.FlagLittleEndian,
			Encrypt:   v.encrypt,
			Decrypt:   v.decrypt,
		})
	}
}

func extend(dst []byte, n int) ([]byte, []byte) {
	total := len(dst) + n
	if cap(dst) >= total {
		dst = dst[:total]
	} else {
		grown := make([]byte, total)
		copy(grown, dst)
		dst = grown
	}
	return dst, dst[total-n:]
}
