// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"os"
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/tatoolbox/l10n/config"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

// localeEnvVars are consulted in order by [FromEnvironment], as POSIX does.
var localeEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// WithTag stores t in ctx and returns a derived context that carries it.
//
// The returned context should be passed to downstream code that performs
// translations. Passing the zero value of [language.Tag] clears any existing value.
//
// The ctx must not be nil.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the language tag stored in ctx, or the base language if
// none is present. It never returns the zero value of [language.Tag].
//
// The ctx may be nil.
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}

	return Base()
}

// Negotiate returns the supported language that best matches prefs, in
// priority order. Each preference may be a BCP 47 tag ("pt-BR"), a Qt or POSIX
// locale name ("pt_BR", "it_IT.UTF-8@euro") or an Accept-Language style list.
// Unparsable preferences are ignored.
//
// If nothing matches, or Setup has not been called, the base language is returned.
func Negotiate(prefs ...string) language.Tag {
	reg := current.Load()
	if reg == nil {
		return Base()
	}

	var desired []language.Tag

	for _, p := range prefs {
		p = posixLocale(p)
		if p == "" {
			continue
		}

		tags, _, err := language.ParseAcceptLanguage(strings.ReplaceAll(p, "_", "-"))
		if err != nil {
			continue
		}

		desired = append(desired, tags...)
	}

	if len(desired) == 0 {
		return reg.base
	}

	_, i, conf := reg.matcher.Match(desired...)
	if conf == language.No {
		return reg.base
	}

	return reg.tags[i]
}

// FromEnvironment returns the best language for the process: the language
// chosen in the application settings if any, then the POSIX locale variables.
func FromEnvironment() language.Tag {
	prefs := make([]string, 0, len(localeEnvVars)+1)

	if s := config.Global.Settings.Language; s != "" {
		prefs = append(prefs, s)
	}

	for _, name := range localeEnvVars {
		if v := os.Getenv(name); v != "" {
			prefs = append(prefs, v)
		}
	}

	return Negotiate(prefs...)
}

// WithEnvironment is equivalent to:
//
//	WithTag(ctx, FromEnvironment())
func WithEnvironment(ctx context.Context) context.Context {
	return WithTag(ctx, FromEnvironment())
}

// posixLocale strips the codeset and modifier from a POSIX locale name and
// drops the C and POSIX locales, which carry no language preference.
// Accept-Language lists are returned unchanged.
func posixLocale(s string) string {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, ",;") {
		return s
	}

	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}

	if s == "C" || s == "POSIX" {
		return ""
	}

	return s
}
