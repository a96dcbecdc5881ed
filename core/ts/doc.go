// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package ts reads, writes and queries Qt Linguist translation source files (.ts).

A [Catalog] holds every translated message for one target language, grouped into
named [Context] blocks. Catalogs are immutable once loaded: lookups are plain reads
against an index built on first use, so a *Catalog may be shared between goroutines
without locking. Reloading a language means loading a new Catalog and swapping the
reference.

# Loading

	cat, err := ts.Load("locales/app_it_it.ts")

Files ending in .ts.gz or .ts.zst are decompressed transparently.

# Lookup

	cat.Translate("AnimationPreviewWindow", "Close")            // "Chiudi"
	cat.TranslateD("MainWindow", "Open", "menu action")         // disambiguated
	cat.Lookup("BackgroundHandlerWindow", "RGB({r}, {g}, {b})", "",
		placeholder.KV("r", 10, "g", 20, "b", 30))

Lookups never fail. When no usable translation exists the source text is returned.

# Writing

[Catalog.Encode] writes the layout produced by lupdate, so a parse/encode cycle
keeps every text payload byte-for-byte.
*/
package ts
