// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// validation errors.
var (
	errInvalidBaseLocale   = errors.New("invalid Catalog.BaseLocale")
	errInvalidPolicy       = errors.New("invalid Catalog.Policy")
	errInvalidCacheSize    = errors.New("Catalog.TemplateCacheSize must be positive")
	errCatalogDirNotDir    = errors.New("Catalog.Dir is not a directory")
	errWatchWithoutDir     = errors.New("Catalog.Watch requires Catalog.Dir")
	errInvalidLogLevel     = errors.New("invalid Log.Level")
	errInvalidLogFormat    = errors.New("invalid Log.Format")
	errInvalidUILanguage   = errors.New("invalid Settings.Language")
	validPolicies          = []string{"best-available", "finished-only"}
	validLogFormats        = []string{"console", "json"}
	localeSeparatorChanger = strings.NewReplacer("_", "-")
)

// validateAndSet validates the configuration and normalises some fields.
func (cfg *Config) validateAndSet() error {
	if _, err := language.Parse(localeSeparatorChanger.Replace(cfg.Catalog.BaseLocale)); err != nil {
		return fmt.Errorf("%w %q: %w", errInvalidBaseLocale, cfg.Catalog.BaseLocale, err)
	}

	cfg.Catalog.Policy = strings.ToLower(strings.TrimSpace(cfg.Catalog.Policy))
	if !slices.Contains(validPolicies, cfg.Catalog.Policy) {
		return fmt.Errorf("%w %q, want one of %s", errInvalidPolicy, cfg.Catalog.Policy, strings.Join(validPolicies, ", "))
	}

	if cfg.Catalog.TemplateCacheSize <= 0 {
		return errInvalidCacheSize
	}

	if cfg.Catalog.Dir != "" {
		info, err := os.Stat(cfg.Catalog.Dir)
		if err != nil {
			return fmt.Errorf("Catalog.Dir: %w", err)
		}

		if !info.IsDir() {
			return fmt.Errorf("%w: %s", errCatalogDirNotDir, cfg.Catalog.Dir)
		}
	} else if cfg.Catalog.Watch {
		return errWatchWithoutDir
	}

	if cfg.Settings.Language != "" {
		if _, err := language.Parse(localeSeparatorChanger.Replace(cfg.Settings.Language)); err != nil {
			return fmt.Errorf("%w %q: %w", errInvalidUILanguage, cfg.Settings.Language, err)
		}
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if _, ok := logLevels[cfg.Log.Level]; !ok {
		return fmt.Errorf("%w %q", errInvalidLogLevel, cfg.Log.Level)
	}

	if !slices.Contains(validLogFormats, cfg.Log.Format) {
		return fmt.Errorf("%w %q", errInvalidLogFormat, cfg.Log.Format)
	}

	return nil
}
