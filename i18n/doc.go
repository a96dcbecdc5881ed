// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n provides the process-wide translation runtime backed by Qt
Linguist .ts catalogs. It loads one catalog per language, picks the language
for each call from the context, and formats placeholders.

# Quick start

Use the original English UI text as the source; do not invent keys. Every
message belongs to a context, normally the name of the UI component:

	i18n.Tr(ctx, "AnimationPreviewWindow", "Close")
	i18n.TrD(ctx, "ExportDialog", "Format", "file format") // disambiguation via comment
	i18n.TrN(ctx, "AnimationPreviewWindow", "%n frame(s) exported", n)

A [Scope] avoids repeating the context:

	const preview i18n.Scope = "AnimationPreviewWindow"

	preview.Tr(ctx, "Close")

[MsgKey] values can be rendered directly in templ templates:

	@i18n.MsgKey{Context: "Settings", Source: "Language"}

The active language travels in the context; see [WithTag], [Negotiate] and
[FromEnvironment].

# Missing translations

Unfinished translations are used when no finished one exists; obsolete ones
never are. When nothing usable exists the source text is returned. When
StrictMissingKeys is enabled, missing lookups are logged once per locale+key
and the returned text is visibly wrapped as "⟦...⟧".

# Formatting

Key-value pairs fill placeholders after lookup:

	i18n.Tr(ctx, "BackgroundHandlerWindow", "RGB({r}, {g}, {b})", "r", 10, "g", 20, "b", 30)

Both {name} fields and Qt %1 arguments are supported; see package
core/placeholder. %L1 and %Ln print numbers for the active language.

# Hot reload

[Watch] reloads the catalogs of a directory when they change on disk. The
catalog set is swapped atomically, so concurrent lookups never observe a
partially loaded state.
*/
package i18n
