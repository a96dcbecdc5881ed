// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	extTS   = ".ts"
	extGzip = ".gz"
	extZstd = ".zst"

	catalogFilePermissions = 0o644
)

// Load reads the catalog at path. Files ending in .gz or .zst are decompressed.
//
// When the document declares no language, the locale is taken from the file
// name (see [LocaleFromFilename]).
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path) // #nosec G304 -- catalog paths come from configuration
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeNamed(f, path)
}

// LoadFS is like [Load] but reads name from fsys.
func LoadFS(fsys fs.FS, name string) (*Catalog, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeNamed(f, name)
}

func decodeNamed(r io.Reader, name string) (*Catalog, error) {
	var src io.Reader = r

	switch {
	case strings.HasSuffix(name, extGzip):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, &ParseError{Path: name, Err: fmt.Errorf("gzip: %w", err)}
		}
		defer zr.Close()

		src = zr
	case strings.HasSuffix(name, extZstd):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, &ParseError{Path: name, Err: fmt.Errorf("zstd: %w", err)}
		}
		defer zr.Close()

		src = zr
	}

	cat, err := parse(src, name)
	if err != nil {
		return nil, err
	}

	if cat.Language == "" {
		cat.Language = LocaleFromFilename(name)
	}

	return cat, nil
}

// Save writes c to path, compressing by extension like [Load]. The file is
// replaced atomically.
func (c *Catalog) Save(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = c.encodeNamed(tmp, path); err != nil {
		_ = tmp.Close()

		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	if err = os.Chmod(tmp.Name(), catalogFilePermissions); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func (c *Catalog) encodeNamed(w io.Writer, name string) error {
	switch {
	case strings.HasSuffix(name, extGzip):
		zw := gzip.NewWriter(w)
		if err := c.Encode(zw); err != nil {
			return err
		}

		return zw.Close()
	case strings.HasSuffix(name, extZstd):
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}

		if err := c.Encode(zw); err != nil {
			_ = zw.Close()

			return err
		}

		return zw.Close()
	}

	return c.Encode(w)
}

// IsCatalogFile reports whether name looks like a loadable catalog file.
func IsCatalogFile(name string) bool {
	base := strings.TrimSuffix(strings.TrimSuffix(name, extGzip), extZstd)

	return strings.HasSuffix(base, extTS)
}

// LocaleFromFilename extracts the locale part of a Qt style catalog name:
// "app_it_it.ts" gives "it_it", "app_de.ts" gives "de", "pt_BR.ts" gives
// "pt_BR". A two letter part before a trailing two letter part is read as
// language_COUNTRY when a prefix precedes it or the country is upper case.
func LocaleFromFilename(name string) string {
	base := path.Base(filepath.ToSlash(name))
	base = strings.TrimSuffix(strings.TrimSuffix(base, extGzip), extZstd)
	base = strings.TrimSuffix(base, extTS)

	parts := strings.Split(base, "_")
	if len(parts) == 1 {
		return base
	}

	last, prev := parts[len(parts)-1], parts[len(parts)-2]

	if len(last) == 2 && len(prev) == 2 && (len(parts) >= 3 || last == strings.ToUpper(last)) {
		return prev + "_" + last
	}

	return last
}
