// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/tatoolbox/l10n/core/ts"
)

func TestSaveLoadCompressed(t *testing.T) {
	t.Parallel()

	cat := loadFixture(t)
	dir := t.TempDir()

	for _, name := range []string{"app_it_it.ts", "app_it_it.ts.gz", "app_it_it.ts.zst"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, name)
			require.NoError(t, cat.Save(path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

			back, err := ts.Load(path)
			require.NoError(t, err)
			assert.True(t, ts.Equal(cat, back))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ts.Load(filepath.Join(t.TempDir(), "nope.ts"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFSLanguageFromName(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/app_de.ts": {Data: []byte(`<TS version="2.1"><context><name>A</name><message><source>Yes</source><translation>Ja</translation></message></context></TS>`)},
		"locales/broken.ts": {Data: []byte(`<TS><context>`)},
	}

	cat, err := ts.LoadFS(fsys, "locales/app_de.ts")
	require.NoError(t, err)
	assert.Equal(t, "de", cat.Language)
	assert.Equal(t, "Ja", cat.Translate("A", "Yes"))

	_, err = ts.LoadFS(fsys, "locales/broken.ts")
	require.ErrorIs(t, err, ts.ErrMalformed)
	assert.Contains(t, err.Error(), "locales/broken.ts")
}

func TestLocaleFromFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"app_it_it.ts", "it_it"},
		{"locales/app_de.ts", "de"},
		{"pt_BR.ts", "pt_BR"},
		{"app_zh_CN.ts.gz", "zh_CN"},
		{"fr.ts.zst", "fr"},
		{"texture_atlas_toolbox_ja.ts", "ja"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, ts.LocaleFromFilename(tc.input))
		})
	}
}

func TestIsCatalogFile(t *testing.T) {
	t.Parallel()

	assert.True(t, ts.IsCatalogFile("app_it_it.ts"))
	assert.True(t, ts.IsCatalogFile("app_it_it.ts.gz"))
	assert.True(t, ts.IsCatalogFile("app_it_it.ts.zst"))
	assert.False(t, ts.IsCatalogFile("app_it_it.po"))
	assert.False(t, ts.IsCatalogFile("notes.txt.gz"))
}
