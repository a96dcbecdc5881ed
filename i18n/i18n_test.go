// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"codeberg.org/tatoolbox/l10n/config"
)

/*
The runtime is process-wide state, so these tests do not run in parallel.
*/

const polishCatalog = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1" language="pl">
<context>
    <name>AnimationPreviewWindow</name>
    <message numerus="yes">
        <source>%n frame(s) exported</source>
        <translation>
            <numerusform>Wyeksportowano %n klatkę</numerusform>
            <numerusform>Wyeksportowano %n klatki</numerusform>
            <numerusform>Wyeksportowano %n klatek</numerusform>
        </translation>
    </message>
</context>
</TS>
`

func italianCatalog(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile("../core/ts/testdata/app_it_it.ts")
	require.NoError(t, err)

	return data
}

// setupForTest loads the test catalogs with the given strict setting and
// restores the package state afterwards.
func setupForTest(t *testing.T, strict bool) {
	t.Helper()

	t.Cleanup(func() {
		current.Store(nil)
		missingKeyOnce.Clear()

		config.Global = config.Config{}
	})

	config.Global = config.Config{}
	config.Global.SetDefaults()
	config.Global.Catalog.StrictMissingKeys = strict

	fsys := fstest.MapFS{
		"locales/app_it_it.ts": {Data: italianCatalog(t)},
		"locales/app_pl.ts":    {Data: []byte(polishCatalog)},
		"locales/broken.ts":    {Data: []byte("<TS><context>")},
		"locales/README.md":    {Data: []byte("not a catalog")},
	}

	require.NoError(t, Setup(fsys, "locales"))
}

func italian() context.Context {
	return WithTag(context.Background(), language.Italian)
}

func TestSetupLanguages(t *testing.T) {
	setupForTest(t, false)

	var got []string
	for _, tag := range Languages() {
		got = append(got, tag.String())
	}

	assert.Equal(t, []string{"en", "it-IT", "pl"}, got)
	assert.Equal(t, language.English, Base())
}

func TestSetupMissingDir(t *testing.T) {
	err := Setup(fstest.MapFS{}, "nope")
	require.Error(t, err)
	assert.Nil(t, current.Load())
}

func TestLanguagesPanicsBeforeSetup(t *testing.T) {
	current.Store(nil)

	assert.Panics(t, func() { Languages() })
}

func TestTr(t *testing.T) {
	setupForTest(t, false)

	ctx := italian()

	assert.Equal(t, "Chiudi", Tr(ctx, "AnimationPreviewWindow", "Close"))
	assert.Equal(t, "10, 20, 30]", Tr(ctx, "BackgroundHandlerWindow", "RGB({r}, {g}, {b})", "r", 10, "g", 20, "b", 30))
	assert.Equal(t, "TextureAtlas Toolbox", Tr(ctx, "Utilities", "TextureAtlas Toolbox"))
	assert.Equal(t, "Formato file", TrD(ctx, "ExportDialog", "Format", "file format"))
	assert.Equal(t, "Formatta", Tr(ctx, "ExportDialog", "Format"))

	// Base language and unset contexts use the source text.
	assert.Equal(t, "Close", Tr(WithTag(context.Background(), language.English), "AnimationPreviewWindow", "Close"))
	assert.Equal(t, "Close", Tr(context.Background(), "AnimationPreviewWindow", "Close"))
	assert.Equal(t, "Close", Tr(nil, "AnimationPreviewWindow", "Close")) //nolint:staticcheck

	// Unsupported languages fall back to the base language.
	assert.Equal(t, "Close", Tr(WithTag(context.Background(), language.Korean), "AnimationPreviewWindow", "Close"))
}

func TestTrBeforeSetup(t *testing.T) {
	current.Store(nil)

	assert.Equal(t, "RGB(1, 2, 3)", Tr(italian(), "BackgroundHandlerWindow", "RGB({r}, {g}, {b})", "r", 1, "g", 2, "b", 3))
}

func TestTrN(t *testing.T) {
	setupForTest(t, false)

	pl := WithTag(context.Background(), language.Polish)

	const source = "%n frame(s) exported"

	assert.Equal(t, "Wyeksportowano 1 klatkę", TrN(pl, "AnimationPreviewWindow", source, 1))
	assert.Equal(t, "Wyeksportowano 3 klatki", TrN(pl, "AnimationPreviewWindow", source, 3))
	assert.Equal(t, "Wyeksportowano 5 klatek", TrN(pl, "AnimationPreviewWindow", source, 5))
	assert.Equal(t, "5 fotogrammi esportati", TrN(italian(), "AnimationPreviewWindow", source, 5))
	assert.Equal(t, "2 frame(s) exported", TrN(context.Background(), "AnimationPreviewWindow", source, 2))
}

func TestStrictMissingKeys(t *testing.T) {
	setupForTest(t, true)

	ctx := italian()

	assert.Equal(t, "⟦TextureAtlas Toolbox⟧", Tr(ctx, "Utilities", "TextureAtlas Toolbox"))
	assert.Equal(t, "⟦Quality⟧", Tr(ctx, "ExportDialog", "Quality"), "empty translations count as missing")
	assert.Equal(t, "Chiudi", Tr(ctx, "AnimationPreviewWindow", "Close"))
	assert.Equal(t, "⟦1, {g}, {b}]⟧", Tr(ctx, "BackgroundHandlerWindow", "RGB({r}, {g}, {b})", "r", 1))

	// The base language is the source language: nothing is missing.
	assert.Equal(t, "TextureAtlas Toolbox", Tr(context.Background(), "Utilities", "TextureAtlas Toolbox"))

	_, seen := missingKeyOnce.Load("key:it-IT\x00" + buildLogKey("Utilities", "TextureAtlas Toolbox", ""))
	assert.True(t, seen)
}

func TestFinishedOnlyPolicy(t *testing.T) {
	t.Cleanup(func() {
		current.Store(nil)

		config.Global = config.Config{}
	})

	config.Global.SetDefaults()
	config.Global.Catalog.Policy = "finished-only"

	require.NoError(t, Setup(fstest.MapFS{"app_it_it.ts": {Data: italianCatalog(t)}}, "."))

	assert.Equal(t, "Close", Tr(italian(), "AnimationPreviewWindow", "Close"))
	assert.Equal(t, "Riproduci", Tr(italian(), "AnimationPreviewWindow", "Play"))
}

func TestNegotiate(t *testing.T) {
	setupForTest(t, false)

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"posix locale", []string{"it_IT.UTF-8"}, "it-IT"},
		{"language only", []string{"it"}, "it-IT"},
		{"modifier", []string{"pl_PL@euro"}, "pl"},
		{"accept-language list", []string{"de-DE,pl;q=0.8"}, "pl"},
		{"first usable preference", []string{"C", "", "pl"}, "pl"},
		{"nothing supported", []string{"ko"}, "en"},
		{"garbage", []string{"!!"}, "en"},
		{"no preferences", nil, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.prefs...).String())
		})
	}
}

func TestFromEnvironment(t *testing.T) {
	setupForTest(t, false)

	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "pl_PL.UTF-8")
	t.Setenv("LANG", "en_US.UTF-8")

	assert.Equal(t, "pl", FromEnvironment().String())

	config.Global.Settings.Language = "it_IT"

	assert.Equal(t, "it-IT", TagFrom(WithEnvironment(context.Background())).String())
}

func TestScopeAndMsgKey(t *testing.T) {
	setupForTest(t, false)

	const preview Scope = "AnimationPreviewWindow"

	ctx := italian()

	assert.Equal(t, "Chiudi", preview.Tr(ctx, "Close"))
	assert.Equal(t, "Fotogramma 2 di 9", preview.Tr(ctx, "Frame {current} of {total}", "current", 2, "total", 9))
	assert.Equal(t, "1 fotogramma esportato", preview.TrN(ctx, "%n frame(s) exported", 1))
	assert.Equal(t, "Formato file", Scope("ExportDialog").TrD(ctx, "Format", "file format"))

	var buf bytes.Buffer

	key := MsgKey{Context: "Utilities", Source: "Save & Quit"}
	require.NoError(t, key.Render(ctx, &buf))
	assert.Equal(t, "Salva & Esci", buf.String())

	var tr Translatable = key
	assert.Equal(t, "Save & Quit", tr.Tr(context.Background()))
}

func TestUserError(t *testing.T) {
	setupForTest(t, false)

	err := NewUserError(italian(), "BackgroundHandlerWindow", "Found %1 colors in %2", "1", 3, "2", "atlas.png")

	// Translations disambiguated by comment are still found without it.
	assert.EqualError(t, err, "Trovati 3 colori in atlas.png")
}

func TestKVPanics(t *testing.T) {
	assert.Panics(t, func() { Tr(context.Background(), "A", "B", "odd") })
}

func TestReloadIsAtomic(t *testing.T) {
	setupForTest(t, false)

	fsys := fstest.MapFS{"locales/app_it_it.ts": {Data: italianCatalog(t)}}
	ctx := italian()

	var wg sync.WaitGroup

	stop := make(chan struct{})

	for range 4 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				select {
				case <-stop:
					return
				default:
				}

				if got := Tr(ctx, "AnimationPreviewWindow", "Close"); got != "Chiudi" {
					t.Errorf("Tr() = %q during reload", got)

					return
				}
			}
		}()
	}

	for range 5 {
		require.NoError(t, Reload(context.Background(), fsys, "locales"))
	}

	close(stop)
	wg.Wait()
}

func TestWatch(t *testing.T) {
	setupForTest(t, false)

	dir := t.TempDir()
	path := filepath.Join(dir, "app_it_it.ts")
	require.NoError(t, os.WriteFile(path, italianCatalog(t), 0o600))
	require.NoError(t, Setup(os.DirFS(dir), "."))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{}, 1)
	done := make(chan error, 1)

	go func() { done <- Watch(ctx, dir, ready) }()

	<-ready

	updated := strings.Replace(string(italianCatalog(t)), "Chiudi", "Chiudi finestra", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	assert.Eventually(t, func() bool {
		return Tr(italian(), "AnimationPreviewWindow", "Close") == "Chiudi finestra"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestStart(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_pl.ts"), []byte(polishCatalog), 0o600))

	t.Cleanup(func() {
		current.Store(nil)

		config.Global = config.Config{}
	})

	config.Global.SetDefaults()
	config.Global.Catalog.Dir = dir

	require.NoError(t, Start(context.Background()))
	assert.Equal(t, language.Polish, Negotiate("pl_PL"))
	assert.Len(t, Languages(), 2)
}
