// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package placeholder finds and substitutes the placeholder tokens embedded in UI
strings.

Two token families are recognised:

	{name}  {name:spec}  {0}  {}     brace fields; {{ and }} are literal braces
	%1 .. %99  %L1  %n  %Ln          Qt style arguments; %L marks localized numbers

The name of a token is what a caller supplies in [Vars]: "name" for {name},
"0" for {0}, "1" for %1 and "n" for %n. Automatic fields {} are numbered from
"0" in order of appearance.
*/
package placeholder

import "strconv"

// Kind is the syntax family of a token.
type Kind int

const (
	Brace Kind = iota
	Qt
)

// Token is one placeholder occurrence.
type Token struct {
	Kind      Kind
	Name      string
	Spec      string // format spec after ':' in brace fields
	Localized bool   // %L1, %Ln
	Raw       string // text as written in the string
}

// Key is the canonical form used to compare placeholder sets. The format spec
// is not part of the key, so "{count:,}" and "{count}" name the same token.
func (t Token) Key() string {
	if t.Kind == Qt {
		return "%" + t.Name
	}

	return "{" + t.Name + "}"
}

// part is either literal text or a token.
type part struct {
	text  string
	token *Token
}

// Template is a parsed string ready for repeated substitution.
type Template struct {
	source string
	parts  []part
}

// Source returns the text the template was compiled from.
func (t *Template) Source() string {
	return t.source
}

// Tokens returns the placeholder tokens of the template in order.
func (t *Template) Tokens() []Token {
	var out []Token

	for _, p := range t.parts {
		if p.token != nil {
			out = append(out, *p.token)
		}
	}

	return out
}

// Compile parses s. It never fails: anything that is not a well formed token
// is kept as literal text.
func Compile(s string) *Template {
	t := &Template{source: s}

	var (
		lit  []byte
		auto int
	)

	flush := func() {
		if len(lit) > 0 {
			t.parts = append(t.parts, part{text: string(lit)})
			lit = lit[:0]
		}
	}

	for i := 0; i < len(s); {
		c := s[i]

		switch {
		case c == '{' && i+1 < len(s) && s[i+1] == '{':
			lit = append(lit, '{')
			i += 2
		case c == '}' && i+1 < len(s) && s[i+1] == '}':
			lit = append(lit, '}')
			i += 2
		case c == '{':
			tok, n := scanBrace(s[i:], &auto)
			if n == 0 {
				lit = append(lit, c)
				i++

				continue
			}

			flush()
			t.parts = append(t.parts, part{token: tok})
			i += n
		case c == '%':
			tok, n := scanQt(s[i:])
			if n == 0 {
				lit = append(lit, c)
				i++

				continue
			}

			flush()
			t.parts = append(t.parts, part{token: tok})
			i += n
		default:
			lit = append(lit, c)
			i++
		}
	}

	flush()

	return t
}

// scanBrace reads a brace field at the start of s and returns the token and
// the number of bytes consumed, or 0 if s does not start a field.
func scanBrace(s string, auto *int) (*Token, int) {
	end := -1

	for j := 1; j < len(s); j++ {
		if s[j] == '{' {
			return nil, 0
		}

		if s[j] == '}' {
			end = j

			break
		}
	}

	if end < 0 {
		return nil, 0
	}

	body := s[1:end]
	name, spec := body, ""

	for j := 0; j < len(body); j++ {
		if body[j] == ':' {
			name, spec = body[:j], body[j+1:]

			break
		}
	}

	// Conversions such as {name!r} do not change the argument name.
	for j := 0; j < len(name); j++ {
		if name[j] == '!' {
			name = name[:j]

			break
		}
	}

	if !validFieldName(name) {
		return nil, 0
	}

	if name == "" {
		name = strconv.Itoa(*auto)
		*auto++
	}

	return &Token{Kind: Brace, Name: name, Spec: spec, Raw: s[:end+1]}, end + 1
}

func validFieldName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' || c == '.' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}

		return false
	}

	return true
}

// scanQt reads %1..%99, %L1, %n or %Ln at the start of s.
func scanQt(s string) (*Token, int) {
	i := 1
	localized := false

	if i < len(s) && s[i] == 'L' {
		localized = true
		i++
	}

	if i < len(s) && s[i] == 'n' {
		return &Token{Kind: Qt, Name: "n", Localized: localized, Raw: s[:i+1]}, i + 1
	}

	start := i
	for i < len(s) && i-start < 2 && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	if i == start || s[start] == '0' {
		return nil, 0
	}

	return &Token{Kind: Qt, Name: s[start:i], Localized: localized, Raw: s[:i]}, i
}
