// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
l10n inspects and converts the Qt Linguist translation catalogs of
TextureAtlas Toolbox, and carries them embedded for the application.
*/
package main

import (
	"context"
	"embed"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"codeberg.org/tatoolbox/l10n/assets"
	"codeberg.org/tatoolbox/l10n/cli"
	"codeberg.org/tatoolbox/l10n/core/audit"
)

// embeddedContent holds the catalogs shipped with the binary.
//
//go:embed all:locales
var embeddedContent embed.FS

// init assigns the embedded filesystem to the exported assets.FS variable.
//
//nolint:gochecknoinits // this is a good use of init()
func init() {
	assets.FS = embeddedContent
}

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			log.Error().Err(exitErr.Err).Msg("Command failed")
			os.Exit(exitErr.Code)
		}

		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run executes the command line until it finishes or a shutdown signal arrives.
func run() error {
	audit.SetDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCommand().ExecuteContext(ctx)
}
