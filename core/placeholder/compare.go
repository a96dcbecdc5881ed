// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package placeholder

import (
	"slices"
	"strings"
)

// Set returns the sorted, de-duplicated token keys found in s.
func Set(s string) []string {
	var keys []string

	for _, tok := range Compile(s).Tokens() {
		keys = append(keys, tok.Key())
	}

	slices.Sort(keys)

	return slices.Compact(keys)
}

// Mismatch lists the token keys a translation dropped or introduced.
type Mismatch struct {
	Missing []string
	Extra   []string
}

// OK reports whether both sides use the same placeholders.
func (m Mismatch) OK() bool {
	return len(m.Missing) == 0 && len(m.Extra) == 0
}

func (m Mismatch) String() string {
	var parts []string

	if len(m.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(m.Missing, ", "))
	}

	if len(m.Extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(m.Extra, ", "))
	}

	return strings.Join(parts, "; ")
}

// Compare checks that translation uses exactly the placeholders of source.
// Keys listed in ignore, such as "%n" for numerus forms, are not compared.
func Compare(source, translation string, ignore ...string) Mismatch {
	src, tr := Set(source), Set(translation)

	var m Mismatch

	for _, k := range src {
		if !slices.Contains(tr, k) && !slices.Contains(ignore, k) {
			m.Missing = append(m.Missing, k)
		}
	}

	for _, k := range tr {
		if !slices.Contains(src, k) && !slices.Contains(ignore, k) {
			m.Extra = append(m.Extra, k)
		}
	}

	return m
}
