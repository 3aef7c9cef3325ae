// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

package lwcgo_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lightcrypt/lwcgo"
	_ "github.com/lightcrypt/lwcgo/ascon"
)

func TestLookupAead(t *testing.T) {
	info, ok := lwcgo.LookupAead("ASCON-128")
	if !ok {
		t.Fatal("ASCON-128 not registered")
	}
	want := lwcgo.AeadInfo{
		Name:      "ASCON-128",
		KeySize:   16,
		NonceSize: 16,
		TagSize:   16,
	}
	ignoreFuncs := cmpopts.IgnoreFields(lwcgo.AeadInfo{}, "Encrypt", "Decrypt")
	if diff := cmp.Diff(want, info, ignoreFuncs); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
	if info.Encrypt == nil || info.Decrypt == nil {
		t.Error("descriptor is missing its entry points")
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := lwcgo.LookupAead("no-such-cipher"); ok {
		t.Fatal("lookup of an unknown name succeeded")
	}
	if _, ok := lwcgo.LookupHash("no-such-hash"); ok {
		t.Fatal("lookup of an unknown hash succeeded")
	}
}

func TestAeadsSorted(t *testing.T) {
	infos := lwcgo.Aeads()
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Name >= infos[i].Name {
			t.Fatalf("descriptor list not sorted at %q", infos[i].Name)
		}
	}
}

func TestFlagValues(t *testing.T) {
	// The flag encoding is part of the external contract.
	if lwcgo.FlagLittleEndian != 0x01 || lwcgo.FlagProtectKey != 0x02 || lwcgo.FlagProtectAll != 0x04 {
		t.Fatal("flag bit assignments changed")
	}
}
