// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultVersion is the format version written when a Catalog has none.
const DefaultVersion = "2.1"

// Catalog is the full set of messages for one target language.
//
// A Catalog must not be modified after the first lookup: the lookup index is
// built once and never refreshed.
type Catalog struct {
	Version        string
	Language       string // as written in the file, e.g. "it_IT"
	SourceLanguage string
	Contexts       []*Context

	// Warnings collects recoverable problems found while decoding.
	Warnings []Warning

	// Policy selects which translations Resolve may return.
	Policy Policy

	once sync.Once
	idx  *index
}

// Context groups the messages of one UI component.
type Context struct {
	Name     string
	Messages []*Message
}

// Location is a provenance reference into the application sources.
// Line is 0 when the file carried no line attribute.
type Location struct {
	File string
	Line int
}

// Message is one translatable string occurrence.
type Message struct {
	ID                string
	Source            string
	OldSource         string
	Comment           string
	OldComment        string
	ExtraComment      string
	TranslatorComment string
	Locations         []Location

	// Numerus messages carry one translation per plural form in NumerusForms.
	// A numerus message read with plain text instead of forms keeps that text
	// in Translation.
	Numerus      bool
	NumerusForms []string

	Translation    string
	LengthVariants []string
	Status         Status
}

// Text returns the display text of the translation: the first numerus form for
// numerus messages, the translation otherwise.
func (m *Message) Text() string {
	if f := m.Forms(); len(f) > 0 {
		return f[0]
	}

	return ""
}

// Forms returns the plural forms of a numerus message. Plain text stored on a
// numerus message counts as its only form. Other messages yield their
// translation as a single element, or nothing when it is empty.
func (m *Message) Forms() []string {
	switch {
	case m.Numerus && len(m.NumerusForms) > 0:
		return m.NumerusForms
	case m.Translation != "":
		return []string{m.Translation}
	}

	return nil
}

// translated reports whether the message carries any non-empty translation.
func (m *Message) translated() bool {
	return slices.ContainsFunc(m.Forms(), func(s string) bool { return s != "" })
}

// Warning is a recoverable problem found while decoding a document.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Tag returns the BCP 47 tag of the catalog's target language.
func (c *Catalog) Tag() (language.Tag, error) {
	return ParseLocale(c.Language)
}

// ParseLocale parses a Qt style locale name such as "it_IT" or "pt_br".
func ParseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.Und, fmt.Errorf("%w: empty locale", ErrLocale)
	}

	t, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %w", ErrLocale, s, err)
	}

	return t, nil
}

// Context returns the first context block named name, or nil.
func (c *Catalog) Context(name string) *Context {
	for _, ctx := range c.Contexts {
		if ctx.Name == name {
			return ctx
		}
	}

	return nil
}

// All yields every message with its context, in document order.
func (c *Catalog) All() iter.Seq2[*Context, *Message] {
	return func(yield func(*Context, *Message) bool) {
		for _, ctx := range c.Contexts {
			for _, m := range ctx.Messages {
				if !yield(ctx, m) {
					return
				}
			}
		}
	}
}

// Len returns the number of messages in the catalog.
func (c *Catalog) Len() int {
	n := 0
	for _, ctx := range c.Contexts {
		n += len(ctx.Messages)
	}

	return n
}

type key struct {
	context, source, comment string
}

type contextSource struct {
	context, source string
}

// index is the flat lookup structure built once per catalog.
type index struct {
	exact map[key][]*Message
	loose map[contextSource][]*Message
	tag   language.Tag
}

func (c *Catalog) index() *index {
	c.once.Do(func() {
		idx := &index{
			exact: make(map[key][]*Message),
			loose: make(map[contextSource][]*Message),
		}

		for ctx, m := range c.All() {
			k := key{ctx.Name, m.Source, m.Comment}
			idx.exact[k] = append(idx.exact[k], m)

			ck := contextSource{ctx.Name, m.Source}
			idx.loose[ck] = append(idx.loose[ck], m)
		}

		// An unparsable language leaves tag as und: lookups still work and
		// numerus messages fall back to a single form.
		idx.tag, _ = c.Tag()

		c.idx = idx
	})

	return c.idx
}

// Find returns every message matching (context, source, comment) exactly, in
// document order.
func (c *Catalog) Find(context, source, comment string) []*Message {
	return c.index().exact[key{context, source, comment}]
}

// Equal reports whether a and b map every (context, source, comment) key to the
// same translations.
func Equal(a, b *Catalog) bool {
	am, bm := translationMap(a), translationMap(b)
	if len(am) != len(bm) {
		return false
	}

	for k, av := range am {
		bv, ok := bm[k]
		if !ok || !slices.Equal(av, bv) {
			return false
		}
	}

	return true
}

func translationMap(c *Catalog) map[key][]string {
	out := make(map[key][]string)

	for ctx, m := range c.All() {
		k := key{ctx.Name, m.Source, m.Comment}

		text := strings.Join(m.Forms(), "\x00")

		out[k] = append(out[k], text)
	}

	return out
}
