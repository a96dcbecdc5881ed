// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"slices"
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// numerusProbe bounds the integers sampled to discover which plural forms a
// language uses for whole numbers.
const numerusProbe = 1000

// formOrder is the order in which Qt lists numerus forms.
var formOrder = map[plural.Form]int{
	plural.Zero:  0,
	plural.One:   1,
	plural.Two:   2,
	plural.Few:   3,
	plural.Many:  4,
	plural.Other: 5,
}

// formsCache maps a language tag to its integer plural forms.
var formsCache sync.Map // key: tag string, value: []plural.Form

// numerusForms returns the plural forms tag uses for integers, in Qt order.
func numerusForms(tag language.Tag) []plural.Form {
	k := tag.String()

	if v, ok := formsCache.Load(k); ok {
		return v.([]plural.Form)
	}

	var forms []plural.Form

	for _, n := range append(probeValues(), 1_000_000, 1_000_001) {
		f := plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0)
		if !slices.Contains(forms, f) {
			forms = append(forms, f)
		}
	}

	slices.SortFunc(forms, func(a, b plural.Form) int { return formOrder[a] - formOrder[b] })

	formsCache.Store(k, forms)

	return forms
}

func probeValues() []int {
	out := make([]int, numerusProbe+1)
	for i := range out {
		out[i] = i
	}

	return out
}

// NumerusCount returns how many numerus forms a translation into tag carries.
func NumerusCount(tag language.Tag) int {
	return len(numerusForms(tag))
}

// NumerusIndex returns the numerus form used for n in tag.
func NumerusIndex(tag language.Tag, n int) int {
	if n < 0 {
		n = -n
	}

	f := plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0)

	if i := slices.Index(numerusForms(tag), f); i >= 0 {
		return i
	}

	return 0
}
