// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/tatoolbox/l10n/config"
)

func TestGenerateEnvFile(t *testing.T) {
	t.Parallel()

	out, err := generateEnvFile()
	require.NoError(t, err)

	assert.Contains(t, out, "## Catalog\n")
	assert.Contains(t, out, "L10N_CATALOG_DIR=\"./locales\"\n")
	assert.Contains(t, out, "# L10N_POLICY=best-available\n")
	assert.Contains(t, out, "# L10N_TEMPLATE_CACHE_SIZE=512\n")
	assert.Contains(t, out, "# L10N_LANGUAGE=\n")
	assert.Contains(t, out, "# L10N_LOG_OUTPUTS=/dev/stderr\n")
	assert.NotContains(t, out, "## Build")
}

// The examples only keep the catalog directory active, so they decode to a
// config with just that field set.
func TestGenerateYAMLFile(t *testing.T) {
	t.Parallel()

	out, err := generateYAMLFile()
	require.NoError(t, err)
	assert.Contains(t, out, "# policy: best-available")

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, exampleCatalogDir, cfg.Catalog.Dir)
	assert.Empty(t, cfg.Catalog.Policy)
}

func TestGenerateTOMLFile(t *testing.T) {
	t.Parallel()

	out, err := generateTOMLFile()
	require.NoError(t, err)
	assert.Contains(t, out, "[catalog]")

	var cfg config.Config
	require.NoError(t, toml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, exampleCatalogDir, cfg.Catalog.Dir)
	assert.Zero(t, cfg.Catalog.TemplateCacheSize)
}
