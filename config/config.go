// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	_ "codeberg.org/tatoolbox/l10n/core/audit" // setup better logging format
)

// Global exposes the process configuration.
var Global Config

// EnvConfigFile names the environment variable holding the configuration file path.
const EnvConfigFile = "L10N_CONFIGFILE"

// defaultConfigFiles are tried in order when no path is given.
var defaultConfigFiles = []string{"./l10n.yaml", "./l10n.yml", "./l10n.toml"}

// Config holds the application configuration.
type Config struct {
	Build BuildInfo `toml:"-" yaml:"-"`

	Catalog struct {
		// Dir is the directory holding .ts catalogs. Empty selects the catalogs
		// embedded in the binary.
		Dir               string `env:"L10N_CATALOG_DIR,overwrite"          toml:"dir"               yaml:"dir"`
		BaseLocale        string `env:"L10N_BASE_LOCALE,overwrite"          toml:"baseLocale"        yaml:"baseLocale"`
		Policy            string `env:"L10N_POLICY,overwrite"               toml:"policy"            yaml:"policy"`
		Watch             bool   `env:"L10N_WATCH,overwrite"                toml:"watch"             yaml:"watch"`
		TemplateCacheSize int    `env:"L10N_TEMPLATE_CACHE_SIZE,overwrite"  toml:"templateCacheSize" yaml:"templateCacheSize"`

		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"L10N_STRICT_MISSING_KEYS" toml:"strictMissingKeys" yaml:"strictMissingKeys"`
	} `toml:"catalog" yaml:"catalog"`

	Settings struct {
		// Language is the UI language chosen in the application settings.
		// Empty derives it from LC_ALL, LC_MESSAGES and LANG.
		Language string `env:"L10N_LANGUAGE,overwrite" toml:"language" yaml:"language"`
	} `toml:"settings" yaml:"settings"`

	Development struct {
		InDevelopment bool `env:"L10N_DEV" toml:"inDevelopment" yaml:"inDevelopment"`
	} `toml:"development" yaml:"development"`

	Log struct {
		Level   string   `env:"L10N_LOG_LEVEL,overwrite"   toml:"logLevel"   yaml:"logLevel"`
		Outputs []string `env:"L10N_LOG_OUTPUTS,overwrite" toml:"logOutputs" yaml:"logOutputs"`
		Format  string   `env:"L10N_LOG_FORMAT,overwrite"  toml:"logFormat"  yaml:"logFormat"`
	} `toml:"log" yaml:"log"`
}

// LoadConfig loads the configuration from various sources.
//
// The configuration file is chosen with the following precedence:
//  1. path, normally the --config flag
//  2. the L10N_CONFIGFILE environment variable
//  3. the first of ./l10n.yaml, ./l10n.yml and ./l10n.toml that exists
//
// A missing file is not an error. Values from .env and the environment are
// applied on top of the file.
func (cfg *Config) LoadConfig(path string) error {
	cfg.SetDefaults()

	cfg.Build.load()

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := cfg.readFile(configFilePath(path)); err != nil {
		return fmt.Errorf("error loading config file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

func configFilePath(path string) string {
	if path != "" {
		return path
	}

	if env := os.Getenv(EnvConfigFile); env != "" {
		return env
	}

	for _, candidate := range defaultConfigFiles {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	log.Debug().Msg("No configuration file found, using defaults")

	return ""
}
