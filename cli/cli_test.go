// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/leonelquinteros/gotext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/tatoolbox/l10n/config"
	"codeberg.org/tatoolbox/l10n/core/ts"
)

/*
Commands load the global configuration, so these tests run sequentially from
an empty working directory.
*/

// fixture returns the absolute path of a file relative to the module root.
func fixture(t *testing.T, rel string) string {
	t.Helper()

	path, err := filepath.Abs(filepath.Join("..", rel))
	require.NoError(t, err)

	return path
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	t.Chdir(t.TempDir())
	t.Cleanup(func() { config.Global = config.Config{} })

	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	return buf.String(), err
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	return execute(t, context.Background(), args...)
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)

	return exitErr.Code
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "l10n "+config.BuildVersion)
	assert.Contains(t, out, "revision:")

	out, err = run(t, "version", "-o", "json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, config.BuildVersion, info["version"])
	assert.Contains(t, info, "revision")
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "version", "-o", "xml")
	require.ErrorIs(t, err, errUnknownFormat)
}

func TestLint(t *testing.T) {
	it := fixture(t, "core/ts/testdata/app_it_it.ts")

	out, err := run(t, "lint", it)
	require.NoError(t, err, "the fixture only has warnings")
	assert.Contains(t, out, "warning: decode")

	_, err = run(t, "lint", "-W", it)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))

	out, err = run(t, "lint", fixture(t, "locales/app_de.ts"))
	require.NoError(t, err)
	assert.Contains(t, out, "app_de.ts: ok")
}

func TestLintUnreadable(t *testing.T) {
	broken := filepath.Join(t.TempDir(), "broken.ts")
	require.NoError(t, os.WriteFile(broken, []byte("<TS><context>"), 0o600))

	out, err := run(t, "lint", "-o", "json", broken)
	require.ErrorIs(t, err, errLintFailed)

	var results []lintResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Error)
}

func TestLookup(t *testing.T) {
	it := fixture(t, "core/ts/testdata/app_it_it.ts")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{it, "AnimationPreviewWindow", "Close"}, "Chiudi\n"},
		{"named placeholders", []string{it, "AnimationPreviewWindow", "Frame {current} of {total}", "--arg", "current=2", "-a", "total=9"}, "Fotogramma 2 di 9\n"},
		{"comment", []string{it, "ExportDialog", "Format", "--comment", "file format"}, "Formato file\n"},
		{"untranslated", []string{it, "Utilities", "Undo"}, "Undo\n"},
		{"numerus", []string{fixture(t, "locales/app_pl.ts"), "AnimationPreviewWindow", "%n frame(s) exported", "-n", "5"}, "Wyeksportowano 5 klatek\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"lookup"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestLookupMissingArgument(t *testing.T) {
	out, err := run(t, "lookup", "-o", "json", fixture(t, "core/ts/testdata/app_it_it.ts"),
		"BackgroundHandlerWindow", "RGB({r}, {g}, {b})", "--arg", "r=1")
	require.NoError(t, err)

	var res lookupResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "1, {g}, {b}]", res.Text)
	assert.True(t, res.Found)
	assert.Equal(t, "finished", res.Status)
	assert.NotEmpty(t, res.Missing)
}

func TestLookupBadArgument(t *testing.T) {
	_, err := run(t, "lookup", fixture(t, "core/ts/testdata/app_it_it.ts"), "A", "B", "--arg", "novalue")
	require.ErrorIs(t, err, errBadArgument)
}

func TestParseVars(t *testing.T) {
	vars, err := parseVars([]string{"n=3", "ratio=0.5", "file=atlas.png", "empty="})
	require.NoError(t, err)
	assert.Equal(t, 3, vars["n"])
	assert.InDelta(t, 0.5, vars["ratio"], 1e-9)
	assert.Equal(t, "atlas.png", vars["file"])
	assert.Empty(t, vars["empty"])

	_, err = parseVars([]string{"=1"})
	require.ErrorIs(t, err, errBadArgument)
}

func TestStats(t *testing.T) {
	it := fixture(t, "core/ts/testdata/app_it_it.ts")

	out, err := run(t, "stats", "-o", "json", it)
	require.NoError(t, err)

	var results []statsResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "it_IT", got.Stats.Language)
	assert.Equal(t, ts.Counts{Finished: 11, Unfinished: 2, Vanished: 1, Obsolete: 1}, got.Stats.Counts)
	assert.InDelta(t, 11.0/13.0, got.Progress, 1e-9)

	out, err = run(t, "stats", "--contexts", it)
	require.NoError(t, err)
	assert.Contains(t, out, "PROGRESS")
	assert.Contains(t, out, "ExportDialog")
	assert.Contains(t, out, "85%")
}

func TestRoundtrip(t *testing.T) {
	it := fixture(t, "core/ts/testdata/app_it_it.ts")
	out := filepath.Join(t.TempDir(), "app_it_it.ts.gz")

	stdout, err := run(t, "roundtrip", "-o", "json", it, "--write", out)
	require.NoError(t, err)

	var res roundtripResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.True(t, res.Equal)
	assert.Equal(t, 15, res.Messages)

	original, err := ts.Load(it)
	require.NoError(t, err)

	written, err := ts.Load(out)
	require.NoError(t, err)
	assert.True(t, ts.Equal(original, written))
}

func TestExportPO(t *testing.T) {
	it := fixture(t, "core/ts/testdata/app_it_it.ts")

	out, err := run(t, "export-po", it)
	require.NoError(t, err)
	assert.NotContains(t, out, "vecchio", "vanished messages are not exported")
	assert.NotContains(t, out, "Annulla", "obsolete messages are not exported")

	po := gotext.NewPo()
	po.Parse([]byte(out))

	assert.Equal(t, "Chiudi", po.GetC("Close", "AnimationPreviewWindow"))
	assert.Equal(t, "Formato file", po.GetC("Format", "ExportDialog|file format"))
	assert.Equal(t, "Formatta", po.GetC("Format", "ExportDialog"))

	path := filepath.Join(t.TempDir(), "it.po")
	_, err = run(t, "export-po", "--finished-only", "-O", path, it)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Chiudi")
	assert.Contains(t, string(data), "Riproduci")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()

	data, err := os.ReadFile(fixture(t, "core/ts/testdata/app_it_it.ts"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_it_it.ts"), data, 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := execute(t, ctx, "watch", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 languages)")
}

func TestWatchWithoutDir(t *testing.T) {
	_, err := run(t, "watch")
	require.ErrorIs(t, err, errNoCatalogDir)
}

func TestLanguages(t *testing.T) {
	t.Setenv("L10N_CATALOG_DIR", fixture(t, "locales"))
	t.Setenv("L10N_LANGUAGE", "")
	t.Setenv("LC_ALL", "pl_PL.UTF-8")

	out, err := run(t, "languages", "-o", "json")
	require.NoError(t, err)

	var res languagesResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "en", res.Base)
	assert.Equal(t, []string{"en", "de-DE", "it-IT", "pl-PL"}, res.Supported)
	assert.Equal(t, "pl-PL", res.Selected)
}
