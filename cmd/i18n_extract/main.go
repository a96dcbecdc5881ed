// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
i18n_extract scans Go packages for translatable messages and writes them as a
Qt Linguist template, optionally merging the template into existing catalogs.

Usage:

	go run ./cmd/i18n_extract [-o translations/app.ts] [-update locales] [packages]
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"codeberg.org/tatoolbox/l10n/core/audit"
	"codeberg.org/tatoolbox/l10n/core/ts"
)

var errPackages = errors.New("failed to load packages due to errors")

func main() {
	outPath := flag.String("o", "translations/app.ts", "template output file")
	updateDir := flag.String("update", "", "merge the template into every catalog in this directory")
	sourceLanguage := flag.String("source-language", "en", "language of the source texts")
	flag.Parse()

	audit.SetDefaultLogger()

	logger := log.With().Str("sys", "extract").Logger()

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	tmpl, err := extract(patterns, *sourceLanguage)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to extract messages")
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create output directory")
	}

	if err := tmpl.Save(*outPath); err != nil {
		logger.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write template")
	}

	logger.Info().Str("path", *outPath).Int("messages", tmpl.Len()).Msg("Wrote template")

	if *updateDir != "" {
		if err := updateCatalogs(&logger, *updateDir, tmpl); err != nil {
			logger.Fatal().Err(err).Str("dir", *updateDir).Msg("Failed to update catalogs")
		}
	}
}

// extract loads the packages matching patterns and collects their messages.
func extract(patterns []string, sourceLanguage string) (*ts.Catalog, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	// templ-generated files must exist on disk before this runs.
	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if packages.PrintErrors(pkgs) > 0 {
		return nil, errPackages
	}

	e := newExtractor(findProjectRoot(wd), findI18nPkgPaths(pkgs))

	for _, p := range pkgs {
		if p.TypesInfo != nil && !isI18nPackage(p.Types) {
			e.inspect(p.Fset, p.TypesInfo, p.Syntax)
		}
	}

	return e.catalog(sourceLanguage), nil
}

// findI18nPkgPaths returns the paths of every loaded package, dependencies
// included, that is the i18n runtime. Matching on the package rather than its
// import path finds it however it is imported or aliased.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		if isI18nPackage(p.Types) {
			out[p.PkgPath] = struct{}{}
		}
	})

	return out
}

// updateCatalogs merges tmpl into every catalog directly in dir, lupdate
// style, and writes them back in place.
func updateCatalogs(logger *zerolog.Logger, dir string, tmpl *ts.Catalog) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !ts.IsCatalogFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		existing, err := ts.Load(path)
		if err != nil {
			return err
		}

		merged := ts.Merge(existing, tmpl)
		if err := merged.Save(path); err != nil {
			return err
		}

		st := merged.Stats()
		logger.Info().
			Str("path", path).
			Int("finished", st.Counts.Finished).
			Int("unfinished", st.Counts.Unfinished).
			Int("vanished", st.Counts.Vanished).
			Msg("Updated catalog")
	}

	return nil
}

// findProjectRoot attempts to find a stable root directory for source references.
// Preference order:
//  1. git toplevel directory
//  2. nearest parent directory that contains go.mod
//  3. the provided working directory
func findProjectRoot(wd string) string {
	if root := gitTopLevel(wd); root != "" {
		return root
	}

	if root := nearestGoModDir(wd); root != "" {
		return root
	}

	return wd
}

func gitTopLevel(wd string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")

	cmd.Dir = wd

	out, err := cmd.Output()
	if err != nil {
		return ""
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return ""
	}

	return filepath.Clean(root)
}

func nearestGoModDir(start string) string {
	dir := filepath.Clean(start)
	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

func fileExists(path string) bool {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return true
	}

	return false
}
