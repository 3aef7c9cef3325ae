// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package drysponge

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestSelectXConstantTimeSelection(t *testing.T) {
	x := [4]uint32{0x11111111, 0x22222222, 0x33333333, 0x44444444}
	for i := uint32(0); i < 4; i++ {
		qt.Assert(t, qt.Equals(selectX(&x, i), x[i]))
	}
}

func TestXWordsDistinct(t *testing.T) {
	qt.Assert(t, qt.IsTrue(xWordsDistinct(&[4]uint32{1, 2, 3, 4})))
	qt.Assert(t, qt.IsFalse(xWordsDistinct(&[4]uint32{1, 2, 3, 1})))
	qt.Assert(t, qt.IsFalse(xWordsDistinct(&[4]uint32{7, 7, 7, 7})))
	qt.Assert(t, qt.IsFalse(xWordsDistinct(&[4]uint32{1, 2, 2, 4})))
}

func TestSetup128WeakKey(t *testing.T) {
	// A 32-byte key whose x half has colliding words must be rejected.
	key := make([]byte, 32)
	nonce := make([]byte, 16)
	var s State128
	err := s.Setup128(key, nonce, false)
	if !errors.Is(err, ErrWeakKey) {
		t.Fatalf("want ErrWeakKey, got %v", err)
	}

	// 56-byte keys validate the trailing x table the same way.
	err = s.Setup128(make([]byte, 56), nonce, false)
	if !errors.Is(err, ErrWeakKey) {
		t.Fatalf("56-byte: want ErrWeakKey, got %v", err)
	}
}

func TestSetup128GoodKey(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	nonce := make([]byte, 16)
	var s State128
	if err := s.Setup128(key, nonce, false); err != nil {
		t.Fatalf("setup: %v", err)
	}
	qt.Assert(t, qt.Equals(s.Rounds, Rounds128))
	qt.Assert(t, qt.IsTrue(xWordsDistinct(&s.X)))
}

func TestSetup128BadLength(t *testing.T) {
	var s State128
	if err := s.Setup128(make([]byte, 24), make([]byte, 16), false); err == nil {
		t.Fatal("expected an error for a 24-byte key")
	}
}

func TestSetup16DerivesDistinctX(t *testing.T) {
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(0xa0 + i)
	}
	var s State128
	if err := s.Setup128(key, make([]byte, 16), false); err != nil {
		t.Fatalf("setup: %v", err)
	}
	qt.Assert(t, qt.IsTrue(xWordsDistinct(&s.X)))
}

func TestGasconCoreChangesState(t *testing.T) {
	var c [Gascon128StateSize]byte
	for i := range c {
		c[i] = byte(i)
	}
	orig := c
	Gascon128Core(&c, 0)
	if c == orig {
		t.Fatal("core round left the state unchanged")
	}

	var c256 [Gascon256StateSize]byte
	for i := range c256 {
		c256[i] = byte(i)
	}
	orig256 := c256
	Gascon256Core(&c256, 0)
	if c256 == orig256 {
		t.Fatal("256 core round left the state unchanged")
	}
}
