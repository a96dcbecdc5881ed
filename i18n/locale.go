// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"golang.org/x/text/language"
)

// BaseLocale is the source language of the UI strings, used when the
// configuration does not name one.
const BaseLocale = "en"

// baseTag is the canonical tag for BaseLocale.
var baseTag = language.Make(BaseLocale)

// Base returns the base language of the active catalogs: the configured base
// locale once Setup has run, [BaseLocale] before.
func Base() language.Tag {
	if reg := current.Load(); reg != nil {
		return reg.base
	}

	return baseTag
}

// Languages returns the supported language tags: the base language first, then
// every language a catalog was loaded for, sorted by tag string.
//
// The returned slice is a copy and is safe to retain.
//
// Setup must be called successfully before using Languages; otherwise it panics.
func Languages() []language.Tag {
	reg := current.Load()
	if reg == nil {
		panic("i18n: Setup must be called before calling Languages")
	}

	out := make([]language.Tag, len(reg.tags))
	copy(out, reg.tags)

	return out
}
