// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/tatoolbox/l10n/core/placeholder"
	"codeberg.org/tatoolbox/l10n/core/ts"
)

// NewUserError creates a new UserError.
func NewUserError(ctx context.Context, scope, source string, kv ...any) *UserError {
	return &UserError{
		msg: Tr(ctx, scope, source, kv...),
		kv:  kv,
	}
}

// UserError is an error type whose message is a translated string.
// It is intended for errors that can be shown directly to the end user.
type UserError struct {
	msg string
	kv  []any
}

// Error returns the translated error message.
func (e *UserError) Error() string {
	return e.msg
}

// Tr returns the translation of source, the original English UI text, in the
// named context (usually the UI component). Key-value pairs fill placeholders:
//
//	i18n.Tr(ctx, "BackgroundHandlerWindow", "RGB({r}, {g}, {b})", "r", 10, "g", 20, "b", 30)
//
// If no usable translation exists, Tr formats the source text itself, visibly
// wrapped if strict mode is enabled.
func Tr(ctx context.Context, scope, source string, kv ...any) string {
	return translate(ctx, scope, source, "", 0, false, placeholder.KV(kv...))
}

// TrD is Tr with a disambiguating comment, for identical source texts that need
// different translations within one context.
func TrD(ctx context.Context, scope, source, comment string, kv ...any) string {
	return translate(ctx, scope, source, comment, 0, false, placeholder.KV(kv...))
}

// TrN translates a numerus message, choosing the plural form for n with the
// rules of the active language. The count is available as %n and {n} unless
// "n" is passed explicitly.
func TrN(ctx context.Context, scope, source string, n int, kv ...any) string {
	vars := placeholder.KV(kv...)
	if _, ok := vars["n"]; !ok {
		vars["n"] = n
	}

	return translate(ctx, scope, source, "", n, true, vars)
}

// translate performs the underlying lookup and formatting.
func translate(
	ctx context.Context,
	scope, source, comment string,
	n int,
	numerus bool,
	vars placeholder.Vars,
) string {
	reg := current.Load()
	cat, matched := reg.match(TagFrom(ctx))

	var res ts.Resolution

	switch {
	case cat == nil:
		res = ts.Resolution{Text: source}
	case numerus:
		res = cat.ResolveN(scope, source, comment, n)
	default:
		res = cat.Resolve(scope, source, comment)
	}

	out, err := reg.format(matched, res.Text, vars)
	if err != nil {
		logMissingArgumentOnce(strippedTagString(matched), res.Text, err)
	}

	if reg == nil || !reg.strict {
		return out
	}

	missing := !res.Found() && matched != reg.base
	if missing {
		logMissingOnce(strippedTagString(matched), buildLogKey(scope, source, comment))
	}

	if missing || err != nil {
		return "⟦" + out + "⟧"
	}

	return out
}

// format substitutes vars into s, reusing compiled templates.
func (r *registry) format(locale language.Tag, s string, vars placeholder.Vars) (string, error) {
	if !strings.ContainsAny(s, "{}%") {
		return s, nil
	}

	var tmpl *placeholder.Template
	if r != nil {
		tmpl = r.templates.GetOrAdd(s, func() *placeholder.Template { return placeholder.Compile(s) })
	} else {
		tmpl = placeholder.Compile(s)
	}

	return tmpl.Execute(locale, vars)
}
