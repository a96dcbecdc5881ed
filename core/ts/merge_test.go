// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/tatoolbox/l10n/core/ts"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	existing := &ts.Catalog{
		Version:        "2.1",
		Language:       "it_IT",
		SourceLanguage: "en",
		Contexts: []*ts.Context{{
			Name: "MainWindow",
			Messages: []*ts.Message{
				{Source: "Open", Translation: "Apri", Locations: []ts.Location{{File: "main.go", Line: 3}}},
				{Source: "Quit", Translation: "Esci", TranslatorComment: "short", Status: ts.Unfinished},
				{Source: "Undo", Translation: "Annulla", Status: ts.Obsolete},
				{Source: "Removed", Translation: "Rimosso", Locations: []ts.Location{{File: "main.go", Line: 9}}},
				{Source: "Never translated", Status: ts.Unfinished},
				{Source: "%n file(s)", Translation: "file"},
			},
		}},
	}

	template := &ts.Catalog{
		SourceLanguage: "en",
		Contexts: []*ts.Context{
			{
				Name: "MainWindow",
				Messages: []*ts.Message{
					{Source: "Quit", Locations: []ts.Location{{File: "main.go", Line: 20}}, Status: ts.Unfinished},
					{Source: "Open", Locations: []ts.Location{{File: "main.go", Line: 10}}, Status: ts.Unfinished},
					{Source: "Undo", Status: ts.Unfinished},
					{Source: "%n file(s)", Numerus: true, Status: ts.Unfinished},
					{Source: "Brand new", ExtraComment: "toolbar", Status: ts.Unfinished},
				},
			},
			{
				Name:     "Dialog",
				Messages: []*ts.Message{{Source: "OK", Status: ts.Unfinished}},
			},
		},
	}

	out := ts.Merge(existing, template)

	assert.Equal(t, "it_IT", out.Language)
	assert.Equal(t, "2.1", out.Version)
	require.Len(t, out.Contexts, 2)

	mainWindow := out.Contexts[0]
	require.Len(t, mainWindow.Messages, 6)

	quit := mainWindow.Messages[0]
	assert.Equal(t, "Quit", quit.Source)
	assert.Equal(t, "Esci", quit.Translation)
	assert.Equal(t, "short", quit.TranslatorComment)
	assert.Equal(t, ts.Unfinished, quit.Status)
	assert.Equal(t, []ts.Location{{File: "main.go", Line: 20}}, quit.Locations)

	open := mainWindow.Messages[1]
	assert.Equal(t, "Apri", open.Translation)
	assert.Equal(t, ts.Finished, open.Status)
	assert.Equal(t, 10, open.Locations[0].Line)

	undo := mainWindow.Messages[2]
	assert.Equal(t, "Annulla", undo.Translation)
	assert.Equal(t, ts.Unfinished, undo.Status, "reappearing obsolete messages need review")

	files := mainWindow.Messages[3]
	assert.True(t, files.Numerus)
	assert.Equal(t, []string{"file", ""}, files.NumerusForms, "padded to the Italian form count")
	assert.Equal(t, ts.Unfinished, files.Status)

	fresh := mainWindow.Messages[4]
	assert.Equal(t, "Brand new", fresh.Source)
	assert.Equal(t, "toolbar", fresh.ExtraComment)
	assert.Equal(t, ts.Unfinished, fresh.Status)
	assert.Empty(t, fresh.Translation)

	removed := mainWindow.Messages[5]
	assert.Equal(t, "Removed", removed.Source)
	assert.Equal(t, ts.Vanished, removed.Status)
	assert.Empty(t, removed.Locations)

	assert.Equal(t, "Dialog", out.Contexts[1].Name)

	// Inputs are untouched.
	assert.Equal(t, ts.Obsolete, existing.Contexts[0].Messages[2].Status)
	assert.Len(t, existing.Contexts[0].Messages[3].Locations, 1)
}

func TestMergeIsStable(t *testing.T) {
	t.Parallel()

	cat := loadFixture(t)

	once := ts.Merge(cat, cat)
	twice := ts.Merge(once, cat)

	assert.True(t, ts.Equal(once, twice))
	assert.Equal(t, "Chiudi", once.Translate("AnimationPreviewWindow", "Close"))
}
