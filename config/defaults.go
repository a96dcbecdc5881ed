// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

// Default values that other packages need to agree on.
const (
	DefaultBaseLocale        = "en"
	DefaultPolicy            = "best-available"
	DefaultTemplateCacheSize = 512
)

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Catalog.Dir = ""
	cfg.Catalog.BaseLocale = DefaultBaseLocale
	cfg.Catalog.Policy = DefaultPolicy
	cfg.Catalog.Watch = false
	cfg.Catalog.TemplateCacheSize = DefaultTemplateCacheSize
	cfg.Catalog.StrictMissingKeys = false

	cfg.Settings.Language = ""

	cfg.Development.InDevelopment = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
