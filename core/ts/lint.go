// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"fmt"
	"slices"

	"codeberg.org/tatoolbox/l10n/core/placeholder"
)

// Severity grades a lint issue.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}

	return "warning"
}

// Issue kinds reported by Lint.
const (
	KindPlaceholder   = "placeholder"
	KindConflict      = "conflict"
	KindEmptyFinished = "empty-finished"
	KindNumerus       = "numerus"
	KindDecode        = "decode"
)

// Issue is one problem found by Lint.
type Issue struct {
	Severity Severity
	Kind     string
	Context  string
	Source   string
	Location Location
	Detail   string
}

func (i Issue) String() string {
	where := i.Context
	if i.Location.File != "" {
		where = fmt.Sprintf("%s (%s:%d)", i.Context, i.Location.File, i.Location.Line)
	}

	if i.Kind == KindDecode {
		return fmt.Sprintf("%s: %s: %s", i.Severity, i.Kind, i.Detail)
	}

	return fmt.Sprintf("%s: %s: %s %q: %s", i.Severity, i.Kind, where, i.Source, i.Detail)
}

// Lint checks a catalog for problems that break the UI at runtime:
//   - translations whose placeholders differ from the source's,
//   - duplicate current messages with conflicting translations,
//   - finished messages with an empty translation,
//   - numerus messages with the wrong number of forms,
//
// and reports decode warnings. Obsolete messages are not checked.
func Lint(c *Catalog) []Issue {
	var issues []Issue

	for _, w := range c.Warnings {
		issues = append(issues, Issue{Severity: SeverityWarning, Kind: KindDecode, Detail: w.String()})
	}

	tag, _ := c.Tag()
	forms := NumerusCount(tag)
	seen := make(map[key]*Message)

	for ctx, m := range c.All() {
		if m.Status == Obsolete {
			continue
		}

		issue := func(sev Severity, kind, format string, args ...any) {
			i := Issue{
				Severity: sev,
				Kind:     kind,
				Context:  ctx.Name,
				Source:   m.Source,
				Detail:   fmt.Sprintf(format, args...),
			}
			if len(m.Locations) > 0 {
				i.Location = m.Locations[0]
			}

			issues = append(issues, i)
		}

		texts := []string{m.Translation}
		if m.Numerus {
			texts = m.Forms()

			if m.translated() && len(texts) != forms {
				issue(SeverityWarning, KindNumerus, "%d numerus forms, language %s uses %d", len(texts), c.Language, forms)
			}
		}

		var ignore []string
		if m.Numerus {
			ignore = []string{"%n"}
		}

		for _, t := range texts {
			if t == "" {
				continue
			}

			if mm := placeholder.Compare(m.Source, t, ignore...); !mm.OK() {
				issue(SeverityError, KindPlaceholder, "%s", mm)
			}
		}

		if m.Status == Finished && !m.translated() {
			issue(SeverityWarning, KindEmptyFinished, "finished message has no translation")
		}

		if !m.Status.Current() || !m.translated() {
			continue
		}

		k := key{ctx.Name, m.Source, m.Comment}
		if prev, ok := seen[k]; ok {
			if !slices.Equal(prev.Forms(), m.Forms()) {
				issue(SeverityError, KindConflict, "translated differently elsewhere in the same context (%q)", prev.Text())
			}

			continue
		}

		seen[k] = m
	}

	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	return slices.ContainsFunc(issues, func(i Issue) bool { return i.Severity == SeverityError })
}
