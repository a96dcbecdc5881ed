// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
genconfig writes example configuration files for every supported source:
environment variables, YAML and TOML.
*/
package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"

	"codeberg.org/tatoolbox/l10n/config"
	"codeberg.org/tatoolbox/l10n/core/audit"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/l10n.yaml.example"
	tomlOutputFile = "deploy/l10n.toml.example"
	filePerm       = 0o644

	// exampleCatalogDir is the one setting left active in the examples.
	exampleCatalogDir = "./locales"

	envFileHeader = `# l10n configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# l10n configuration (via configuration file)
#
# Copy this file to l10n.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
	tomlFileHeader = `# l10n configuration (via configuration file)
#
# Copy this file to l10n.toml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
)

func main() {
	audit.SetDefaultLogger()

	if err := os.MkdirAll("deploy", 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create deploy directory")
	}

	files := []struct {
		path     string
		generate func() (string, error)
	}{
		{envOutputFile, generateEnvFile},
		{yamlOutputFile, generateYAMLFile},
		{tomlOutputFile, generateTOMLFile},
	}

	for _, f := range files {
		content, err := f.generate()
		if err != nil {
			log.Fatal().Err(err).Str("path", f.path).Msg("Failed to generate example")
		}

		if err := os.WriteFile(f.path, []byte(content), filePerm); err != nil {
			log.Fatal().Err(err).Str("path", f.path).Msg("Failed to write example")
		}

		log.Info().Str("path", f.path).Msg("Successfully generated example")
	}
}

func exampleConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SetDefaults()

	cfg.Catalog.Dir = exampleCatalogDir

	return cfg
}

// generateEnvFile renders the .env example, one section per config group.
func generateEnvFile() (string, error) {
	cfg := exampleConfig()

	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	// Iterate over the top-level struct fields.
	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct || structField.Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)

		// Iterate over the fields of the nested struct.
		innerTyp := structValue.Type()
		for j := range innerTyp.NumField() {
			field := innerTyp.Field(j)
			value := structValue.Field(j)

			tag, ok := field.Tag.Lookup("env")
			if !ok {
				continue
			}

			envVarName := strings.Split(tag, ",")[0]

			switch {
			case envVarName == "L10N_CATALOG_DIR":
				// Uncomment essential fields.
				fmt.Fprintf(&sb, "%s=\"%v\"\n", envVarName, value.Interface())
			case value.Kind() == reflect.Slice:
				items := make([]string, value.Len())
				for k := range value.Len() {
					items[k] = fmt.Sprint(value.Index(k).Interface())
				}

				fmt.Fprintf(&sb, "# %s=%s\n", envVarName, strings.Join(items, ","))
			case value.Kind() == reflect.String && value.Len() == 0:
				// Omit the value to prompt user input.
				fmt.Fprintf(&sb, "# %s=\n", envVarName)
			default:
				fmt.Fprintf(&sb, "# %s=%v\n", envVarName, value.Interface())
			}
		}

		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## Configuration file\n# %s=./l10n.yaml\n", config.EnvConfigFile)

	return sb.String(), nil
}

// generateYAMLFile renders the YAML example with every setting but the
// catalog directory commented out.
func generateYAMLFile() (string, error) {
	var yamlContent strings.Builder
	if err := yaml.NewEncoder(&yamlContent, yaml.Indent(2)).Encode(exampleConfig()); err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	// Process the marshaled YAML line-by-line to create a clean template.
	for line := range strings.SplitSeq(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "catalog:") are treated as section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)

			continue
		}

		if strings.HasPrefix(trimmed, "dir:") {
			sb.WriteString(line + "\n")

			continue
		}

		// By default, comment out the line.
		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	return sb.String(), nil
}

// generateTOMLFile renders the TOML example the same way as the YAML one.
func generateTOMLFile() (string, error) {
	tomlContent, err := toml.Marshal(exampleConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to TOML: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(tomlFileHeader)

	for line := range strings.SplitSeq(string(tomlContent), "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "["):
			fmt.Fprintf(&sb, "\n%s\n", trimmed)
		case strings.HasPrefix(trimmed, "dir ="):
			sb.WriteString(trimmed + "\n")
		default:
			fmt.Fprintf(&sb, "# %s\n", trimmed)
		}
	}

	return sb.String(), nil
}
