// Copyright (c) 2025, The Lightcrypt Authors.
// See LICENSE for licensing information.

// Package suite links every cipher family of the module into the
// lwcgo registry, for callers that want all algorithms available by
// name and for table-driven testing across the whole collection.
package suite

import (
	"github.com/lightcrypt/lwcgo"

	_ "github.com/lightcrypt/lwcgo/ascon"
	_ "github.com/lightcrypt/lwcgo/drygascon"
	_ "github.com/lightcrypt/lwcgo/isap"
	_ "github.com/lightcrypt/lwcgo/knot"
	_ "github.com/lightcrypt/lwcgo/spook"
)

// Aeads returns every registered AEAD descriptor.
func Aeads() []lwcgo.AeadInfo { return lwcgo.Aeads() }

// Hashes returns every registered hash descriptor.
func Hashes() []lwcgo.HashInfo { return lwcgo.Hashes() }
