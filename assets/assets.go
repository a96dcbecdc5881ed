// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets provides access to the application's embedded translation catalogs.
*/
package assets

import (
	"embed"
	"io/fs"
	"os"
)

// CatalogDir is the directory of the embedded catalogs within FS.
const CatalogDir = "locales"

// FS provides access to the embedded file system.
var FS embed.FS

// Catalogs returns the file system and directory to load catalogs from: dir on
// disk if it is set, the embedded catalogs otherwise.
func Catalogs(dir string) (fs.FS, string) {
	if dir != "" {
		return os.DirFS(dir), "."
	}

	return FS, CatalogDir
}
