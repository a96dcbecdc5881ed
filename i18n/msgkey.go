// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

var _ templ.Component = MsgKey{}

// Translatable is a value that can translate itself using a context.
// Types such as [MsgKey] implement Translatable.
type Translatable interface {
	Tr(ctx context.Context) string
}

// Scope names the translation context of one UI component, so call sites do
// not repeat it:
//
//	const preview i18n.Scope = "AnimationPreviewWindow"
//
//	preview.Tr(ctx, "Close")
type Scope string

func (s Scope) Tr(ctx context.Context, source string, kv ...any) string {
	return Tr(ctx, string(s), source, kv...)
}

func (s Scope) TrD(ctx context.Context, source, comment string, kv ...any) string {
	return TrD(ctx, string(s), source, comment, kv...)
}

func (s Scope) TrN(ctx context.Context, source string, n int, kv ...any) string {
	return TrN(ctx, string(s), source, n, kv...)
}

// MsgKey identifies a message without translating it yet, for tables of labels
// built before the active language is known.
//
// Source should be the original English UI text, not an invented key.
type MsgKey struct {
	Context string
	Source  string
	Comment string
}

// Tr translates the message within the current locale in ctx.
// The ctx may be nil, in which case the base locale is used.
func (k MsgKey) Tr(ctx context.Context) string {
	return TrD(ctx, k.Context, k.Source, k.Comment)
}

// Render writes the translation, making MsgKey usable as a templ component.
func (k MsgKey) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, k.Tr(ctx))

	return err
}
