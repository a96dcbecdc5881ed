// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"codeberg.org/tatoolbox/l10n/assets"
	"codeberg.org/tatoolbox/l10n/config"
	"codeberg.org/tatoolbox/l10n/core/audit"
	"codeberg.org/tatoolbox/l10n/core/lrucache"
	"codeberg.org/tatoolbox/l10n/core/placeholder"
	"codeberg.org/tatoolbox/l10n/core/ts"
)

// current is the active registry. Reloads build a new registry and swap it in,
// so a lookup always sees one consistent set of catalogs.
var current atomic.Pointer[registry]

// registry is an immutable set of loaded catalogs.
type registry struct {
	// catalogs maps canonical BCP 47 tags, for example "en", "it-IT", to the
	// catalog loaded for them.
	catalogs map[string]*ts.Catalog

	// tags lists the base tag first, then every loaded tag sorted by string.
	tags    []language.Tag
	matcher language.Matcher
	base    language.Tag
	strict  bool

	templates *lrucache.Cache[string, *placeholder.Template]
}

// options are the settings a registry is built with.
type options struct {
	base      language.Tag
	policy    ts.Policy
	strict    bool
	cacheSize int
}

func optionsFromConfig() options {
	cfg := config.Global.Catalog

	opts := options{
		base:      language.Make(BaseLocale),
		strict:    cfg.StrictMissingKeys,
		cacheSize: cfg.TemplateCacheSize,
	}

	if t, err := ts.ParseLocale(cfg.BaseLocale); err == nil {
		opts.base = t
	}

	if p, err := ts.ParsePolicy(cfg.Policy); err == nil {
		opts.policy = p
	}

	if opts.cacheSize <= 0 {
		opts.cacheSize = config.DefaultTemplateCacheSize
	}

	return opts
}

// Setup initialises package i18n by loading every .ts catalog found directly in
// dir of fsys, concurrently, and building a language matcher over them.
//
// The catalog settings come from [config.Global]. Files that cannot be parsed
// are logged and skipped; Setup only fails if dir cannot be read. The base
// locale is always supported and acts as the default fallback.
//
// Calling Setup again replaces the previously loaded catalogs.
func Setup(fsys fs.FS, dir string) error {
	Logger = log.With().Str("sys", "i18n").Logger()

	return Reload(context.Background(), fsys, dir)
}

// Start loads the catalogs named by the configuration: those in catalog.dir,
// or the embedded ones when it is empty. With catalog.watch set, the catalogs
// are reloaded on changes until ctx is done.
func Start(ctx context.Context) error {
	dir := config.Global.Catalog.Dir

	fsys, root := assets.Catalogs(dir)
	if err := Setup(fsys, root); err != nil {
		return err
	}

	if config.Global.Catalog.Watch && dir != "" {
		go func() {
			if err := Watch(ctx, dir, nil); err != nil {
				Logger.Error().Err(err).Str("dir", dir).Msg("Catalog watcher stopped")
			}
		}()
	}

	return nil
}

// Reload loads the catalogs in dir of fsys and atomically replaces the active
// set. Lookups running concurrently see either the old or the new set.
func Reload(ctx context.Context, fsys fs.FS, dir string) error {
	reg, err := load(ctx, fsys, dir, optionsFromConfig())
	if err != nil {
		return err
	}

	current.Store(reg)

	Logger.Info().
		Int("locales", len(reg.catalogs)).
		Str("base", reg.base.String()).
		Msg("Loaded catalogs")

	return nil
}

func load(ctx context.Context, fsys fs.FS, dir string, opts options) (*registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var files []fs.DirEntry

	for _, entry := range entries {
		if !entry.IsDir() && ts.IsCatalogFile(entry.Name()) {
			files = append(files, entry)
		}
	}

	loaded := make([]*ts.Catalog, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, entry := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			loaded[i] = loadOne(gctx, fsys, path.Join(dir, entry.Name()), entry)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	templates, err := lrucache.New[string, *placeholder.Template](opts.cacheSize)
	if err != nil {
		return nil, err
	}

	reg := &registry{
		catalogs:  make(map[string]*ts.Catalog),
		base:      opts.base,
		strict:    opts.strict,
		templates: templates,
	}

	var tags []language.Tag

	for i, cat := range loaded {
		if cat == nil {
			continue
		}

		tag, err := cat.Tag()
		if err != nil {
			Logger.Warn().Err(err).Str("file", files[i].Name()).Msg("Skipping catalog with invalid locale")

			continue
		}

		cat.Policy = opts.policy
		canonical := tag.String()

		if _, dup := reg.catalogs[canonical]; dup {
			Logger.Warn().Str("locale", canonical).Str("file", files[i].Name()).Msg("Duplicate catalog for locale, using the later file")
		} else {
			tags = append(tags, tag)
		}

		reg.catalogs[canonical] = cat
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })

	reg.tags = append(reg.tags, reg.base)

	for _, t := range tags {
		if t != reg.base {
			reg.tags = append(reg.tags, t)
		}
	}

	reg.matcher = language.NewMatcher(reg.tags)

	return reg, nil
}

// loadOne loads a single catalog, logging it as a span. It returns nil for
// files that could not be loaded.
func loadOne(ctx context.Context, fsys fs.FS, name string, entry fs.DirEntry) *ts.Catalog {
	span := audit.Span{Path: name}
	if info, err := entry.Info(); err == nil {
		span.Size = info.Size()
	}

	span.Begin(ctx)

	cat, err := ts.LoadFS(fsys, name)

	span.End()

	if err != nil {
		span.Error = err
		span.Log(&Logger)

		return nil
	}

	span.Locale = cat.Language
	span.Messages = cat.Len()
	span.Warnings = len(cat.Warnings)
	span.Log(&Logger)

	for _, w := range cat.Warnings {
		Logger.Debug().Str("file", name).Int("line", w.Line).Msg(w.Message)
	}

	return cat
}

// match returns the catalog for the best supported match of t, with the tag
// it was loaded for. The catalog is nil when the base locale matched and no
// catalog exists for it, or when Setup has not been called.
func (r *registry) match(t language.Tag) (*ts.Catalog, language.Tag) {
	if r == nil {
		return nil, baseTag
	}

	_, i, conf := r.matcher.Match(t)
	if conf == language.No {
		return r.catalogs[r.base.String()], r.base
	}

	matched := r.tags[i]

	return r.catalogs[matched.String()], matched
}
