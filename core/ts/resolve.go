// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"fmt"
	"maps"

	"golang.org/x/text/language"

	"codeberg.org/tatoolbox/l10n/core/placeholder"
)

// Policy decides which translations a lookup may return.
type Policy int

const (
	// BestAvailable prefers finished translations, then unfinished ones, then
	// vanished ones. Obsolete and empty translations are never used.
	BestAvailable Policy = iota

	// FinishedOnly uses finished, non-empty translations only.
	FinishedOnly
)

var policyNames = map[Policy]string{
	BestAvailable: "best-available",
	FinishedOnly:  "finished-only",
}

func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}

	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses the names printed by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}

	return BestAvailable, fmt.Errorf("unknown lookup policy %q", s)
}

// rank orders usable messages; lower is better. ok is false for messages the
// policy never returns.
func (p Policy) rank(m *Message) (int, bool) {
	if !m.translated() {
		return 0, false
	}

	switch m.Status {
	case Finished:
		return 0, true
	case Unfinished:
		return 1, p == BestAvailable
	case Vanished:
		return 2, p == BestAvailable
	}

	return 0, false
}

// pick returns the best message in msgs, keeping document order among equals.
func (p Policy) pick(msgs []*Message) *Message {
	var (
		best     *Message
		bestRank int
	)

	for _, m := range msgs {
		r, ok := p.rank(m)
		if !ok {
			continue
		}

		if best == nil || r < bestRank {
			best, bestRank = m, r
		}
	}

	return best
}

// Resolution is the outcome of a lookup.
type Resolution struct {
	// Message is the chosen message, or nil when the source text is used.
	Message *Message
	Text    string
}

// Found reports whether a translation was used.
func (r Resolution) Found() bool {
	return r.Message != nil
}

// Resolve finds the best translation of source in context.
//
// Messages carrying exactly comment are tried first. With a comment, messages
// without one are tried second; without a comment, any message with the same
// context and source is. When nothing usable is found the source text itself
// is returned.
func (c *Catalog) Resolve(context, source, comment string) Resolution {
	idx := c.index()

	m := c.Policy.pick(idx.exact[key{context, source, comment}])

	switch {
	case m != nil:
	case comment != "":
		m = c.Policy.pick(idx.exact[key{context, source, ""}])
	default:
		m = c.Policy.pick(idx.loose[contextSource{context, source}])
	}

	if m == nil {
		return Resolution{Text: source}
	}

	return Resolution{Message: m, Text: m.Text()}
}

// Translate returns the translation of source in context.
func (c *Catalog) Translate(context, source string) string {
	return c.Resolve(context, source, "").Text
}

// TranslateD is Translate with a disambiguating comment.
func (c *Catalog) TranslateD(context, source, comment string) string {
	return c.Resolve(context, source, comment).Text
}

// Lookup resolves source and substitutes vars into the result. It never fails:
// tokens without a value are left in place.
func (c *Catalog) Lookup(context, source, comment string, vars placeholder.Vars) string {
	s, _ := c.Sprintf(context, source, comment, vars)

	return s
}

// Sprintf is Lookup for callers that want to know about missing arguments.
// The returned string is usable even when err is a
// *placeholder.MissingArgumentError.
func (c *Catalog) Sprintf(context, source, comment string, vars placeholder.Vars) (string, error) {
	text := c.Resolve(context, source, comment).Text

	return placeholder.FormatLocale(c.index().tag, text, vars)
}

// ResolveN is Resolve for numerus messages: Text is the form the plural rules
// of the catalog's language select for n. An empty form yields the source text.
func (c *Catalog) ResolveN(context, source, comment string, n int) Resolution {
	res := c.Resolve(context, source, comment)

	if m := res.Message; m != nil && m.Numerus {
		forms := m.Forms()
		i := min(NumerusIndex(c.index().tag, n), len(forms)-1)
		if f := forms[i]; f != "" {
			res.Text = f
		} else {
			res = Resolution{Text: source}
		}
	}

	return res
}

// LanguageTag returns the parsed language of the catalog, or language.Und if
// the language attribute is not a valid locale.
func (c *Catalog) LanguageTag() language.Tag {
	return c.index().tag
}

// TranslateN resolves a numerus message and picks the form for n using the
// plural rules of the catalog's language. "n" is added to vars unless the
// caller set it.
func (c *Catalog) TranslateN(context, source, comment string, n int, vars placeholder.Vars) string {
	text := c.ResolveN(context, source, comment, n).Text

	if _, ok := vars["n"]; !ok {
		merged := make(placeholder.Vars, len(vars)+1)
		maps.Copy(merged, vars)
		merged["n"] = n
		vars = merged
	}

	s, _ := placeholder.FormatLocale(c.index().tag, text, vars)

	return s
}
