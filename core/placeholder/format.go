// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package placeholder

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrMissingArgument is wrapped by *MissingArgumentError.
var ErrMissingArgument = errors.New("missing placeholder argument")

// MissingArgumentError reports a token for which the caller supplied no value.
type MissingArgumentError struct {
	Name string
	Raw  string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingArgument, e.Raw)
}

func (e *MissingArgumentError) Unwrap() error {
	return ErrMissingArgument
}

// Vars maps token names to runtime values.
type Vars map[string]any

// KV builds Vars from alternating key, value pairs.
// Panics on programmer error.
func KV(kv ...any) Vars {
	if len(kv)%2 != 0 {
		panic("placeholder.KV: odd number of arguments, want key, value pairs")
	}

	m := make(Vars, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("placeholder.KV: key must be string")
		}

		m[k] = kv[i+1]
	}

	return m
}

// Format substitutes vars into s. See [Template.Execute].
func Format(s string, vars Vars) (string, error) {
	return Compile(s).Execute(language.Und, vars)
}

// FormatLocale is like Format but prints %L tokens for the given language.
func FormatLocale(tag language.Tag, s string, vars Vars) (string, error) {
	return Compile(s).Execute(tag, vars)
}

// Execute substitutes vars into the template.
//
// Every token without a value is left in the output verbatim and the first
// one is reported as a *MissingArgumentError, so the returned string is always
// usable for display.
func (t *Template) Execute(tag language.Tag, vars Vars) (string, error) {
	var (
		b       strings.Builder
		missing error
		printer *message.Printer
	)

	for _, p := range t.parts {
		if p.token == nil {
			b.WriteString(p.text)

			continue
		}

		tok := p.token

		v, ok := vars[tok.Name]
		if !ok {
			if missing == nil {
				missing = &MissingArgumentError{Name: tok.Name, Raw: tok.Raw}
			}

			b.WriteString(tok.Raw)

			continue
		}

		switch {
		case tok.Localized:
			if printer == nil {
				printer = message.NewPrinter(tag)
			}

			b.WriteString(printer.Sprintf("%v", v))
		case tok.Spec != "":
			b.WriteString(formatSpec(v, tok.Spec))
		default:
			fmt.Fprint(&b, v)
		}
	}

	return b.String(), missing
}
