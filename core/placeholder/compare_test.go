// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package placeholder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/tatoolbox/l10n/core/placeholder"
)

func TestSet(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"{b}", "{g}", "{r}"}, placeholder.Set("RGB({r}, {g}, {b})"))
	assert.Equal(t, []string{"%1", "%2"}, placeholder.Set("%2 then %1 and %L1"))
	assert.Equal(t, []string{"{count}"}, placeholder.Set("{count:,} / {count}"))
	assert.Equal(t, []string{"{0}", "{1}"}, placeholder.Set("{} {}"))
	assert.Empty(t, placeholder.Set("{{none}}"))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		source      string
		translation string
		ignore      []string
		ok          bool
		detail      string
	}{
		{"same set, reordered", "RGB({r}, {g}, {b})", "{b}, {g}, {r}", nil, true, ""},
		{"dropped token", "{w}x{h}", "{w}", nil, false, "missing {h}"},
		{"extra token", "Hello", "Ciao {name}", nil, false, "unexpected {name}"},
		{"both", "%1 in %2", "%1 in %3", nil, false, "missing %2; unexpected %3"},
		{"ignored numerus count", "%n file(s)", "un file", []string{"%n"}, true, ""},
		{"format spec does not matter", "{v:.2f}", "{v}", nil, true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := placeholder.Compare(tc.source, tc.translation, tc.ignore...)
			assert.Equal(t, tc.ok, m.OK())
			assert.Equal(t, tc.detail, m.String())
		})
	}
}

func TestTokens(t *testing.T) {
	t.Parallel()

	toks := placeholder.Compile("%Ln items in {dir:>10}").Tokens()

	if assert.Len(t, toks, 2) {
		assert.Equal(t, placeholder.Token{Kind: placeholder.Qt, Name: "n", Localized: true, Raw: "%Ln"}, toks[0])
		assert.Equal(t, placeholder.Token{Kind: placeholder.Brace, Name: "dir", Spec: ">10", Raw: "{dir:>10}"}, toks[1])
	}
}
