// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is wrapped by every error describing a document that cannot be
	// parsed into a Catalog.
	ErrMalformed = errors.New("malformed catalog")

	// ErrLocale reports a locale name that is not a valid language tag.
	ErrLocale = errors.New("invalid locale")

	// ErrControlChar reports a control character in a value that can only be
	// written as an XML attribute.
	ErrControlChar = errors.New("control character not representable in attribute")

	errNoRoot   = errors.New("missing <TS> root element")
	errNoSource = errors.New("message without <source>")
	errNoName   = errors.New("context without <name>")
)

// ParseError describes a malformed document. Path is empty when the document
// was not read from a named file.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}

	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}

	return fmt.Sprintf("ts: %s: %s: %v", ErrMalformed, where, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}
