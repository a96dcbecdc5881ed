// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"sync"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

var (
	// Logger is the logger used by package i18n.
	Logger zerolog.Logger

	// missingKeyOnce deduplicates WARN logs for missing translations and
	// placeholder arguments. The key is kind+locale+"\x00"+key.
	missingKeyOnce sync.Map
)

func once(kind, locale, key string) bool {
	_, loaded := missingKeyOnce.LoadOrStore(kind+locale+"\x00"+key, struct{}{})

	return !loaded
}

// logMissingOnce logs a missing translation once per (locale, key) pair.
func logMissingOnce(locale, key string) {
	if once("key:", locale, key) {
		Logger.Warn().
			Str("locale", locale).
			Str("key", key).
			Msg("Missing i18n translation")
	}
}

// logMissingArgumentOnce logs a placeholder without a value once per
// (locale, text) pair.
func logMissingArgumentOnce(locale, text string, err error) {
	if once("arg:", locale, text) {
		Logger.Warn().
			Err(err).
			Str("locale", locale).
			Str("text", text).
			Msg("Missing placeholder argument")
	}
}

// strippedTagString removes variants to form a stable key using base, script and region only.
func strippedTagString(tag language.Tag) string {
	b, s, r := tag.Raw()
	stripped, _ := language.Compose(b, s, r)

	return stripped.String()
}

// buildLogKey composes the logging key like gettext "context<EOT>source", with
// the comment appended in brackets when present.
func buildLogKey(context, source, comment string) string {
	key := source
	if context != "" {
		key = context + gotext.EotSeparator + source
	}

	if comment != "" {
		key += " [" + comment + "]"
	}

	return key
}
