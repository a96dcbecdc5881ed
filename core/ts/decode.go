// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse decodes a TS document from r.
//
// Structural problems (invalid XML, no <TS> root, a message without <source>)
// are returned as a *ParseError. Recoverable problems such as an unknown
// translation type are recorded in Catalog.Warnings; an unknown type is read as
// Finished.
func Parse(r io.Reader) (*Catalog, error) {
	return parse(r, "")
}

func parse(r io.Reader, path string) (*Catalog, error) {
	d := &decoder{
		xd:       xml.NewDecoder(r),
		path:     path,
		lastLine: make(map[string]int),
	}

	cat, err := d.document()
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, pe
		}

		line := d.line()

		var se *xml.SyntaxError
		if errors.As(err, &se) {
			line = se.Line
		}

		return nil, &ParseError{Path: path, Line: line, Err: err}
	}

	return cat, nil
}

type decoder struct {
	xd   *xml.Decoder
	path string
	cat  *Catalog

	// lastLine tracks the previous line per file for relative locations.
	lastLine map[string]int
	lastFile string
}

func (d *decoder) line() int {
	line, _ := d.xd.InputPos()

	return line
}

func (d *decoder) fail(err error) error {
	return &ParseError{Path: d.path, Line: d.line(), Err: err}
}

func (d *decoder) warn(format string, args ...any) {
	d.cat.Warnings = append(d.cat.Warnings, Warning{
		Line:    d.line(),
		Message: fmt.Sprintf(format, args...),
	})
}

func (d *decoder) document() (*Catalog, error) {
	d.cat = &Catalog{}
	sawRoot := false

	for {
		tok, err := d.xd.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if se.Name.Local != "TS" || sawRoot {
			return nil, d.fail(fmt.Errorf("unexpected root element <%s>", se.Name.Local))
		}

		sawRoot = true

		if err := d.root(se); err != nil {
			return nil, err
		}
	}

	if !sawRoot {
		return nil, d.fail(errNoRoot)
	}

	return d.cat, nil
}

func (d *decoder) root(start xml.StartElement) error {
	d.cat.Version = attr(start, "version")
	d.cat.Language = attr(start, "language")
	d.cat.SourceLanguage = attr(start, "sourcelanguage")

	switch v := d.cat.Version; {
	case v == "":
		d.warn("missing TS version, reading as %s", DefaultVersion)
	case !knownVersion(v):
		d.warn("unsupported TS version %q, reading as %s", v, DefaultVersion)
	}

	for {
		tok, err := d.xd.Token()
		if err != nil {
			return unexpectedEOF(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "context":
				ctx, err := d.context()
				if err != nil {
					return err
				}

				d.cat.Contexts = append(d.cat.Contexts, ctx)
			case "dependencies":
				if err := d.xd.Skip(); err != nil {
					return err
				}
			default:
				d.warn("skipping unknown element <%s>", t.Name.Local)

				if err := d.xd.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (d *decoder) context() (*Context, error) {
	ctx := &Context{}
	named := false

	for {
		tok, err := d.xd.Token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				if ctx.Name, err = d.text(); err != nil {
					return nil, err
				}

				named = true
			case "message":
				m, err := d.message(t)
				if err != nil {
					return nil, err
				}

				ctx.Messages = append(ctx.Messages, m)
			case "comment":
				// Context level comments are not used at runtime.
				if err := d.xd.Skip(); err != nil {
					return nil, err
				}
			default:
				d.warn("skipping unknown element <%s> in context", t.Name.Local)

				if err := d.xd.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if !named {
				return nil, d.fail(errNoName)
			}

			return ctx, nil
		}
	}
}

func (d *decoder) message(start xml.StartElement) (*Message, error) {
	m := &Message{
		ID:      attr(start, "id"),
		Numerus: attr(start, "numerus") == "yes",
	}
	hasSource, hasTranslation := false, false

	for {
		tok, err := d.xd.Token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var dst *string

			switch t.Name.Local {
			case "source":
				dst, hasSource = &m.Source, true
			case "oldsource":
				dst = &m.OldSource
			case "comment":
				dst = &m.Comment
			case "oldcomment":
				dst = &m.OldComment
			case "extracomment":
				dst = &m.ExtraComment
			case "translatorcomment":
				dst = &m.TranslatorComment
			case "location":
				if err := d.location(t, m); err != nil {
					return nil, err
				}

				continue
			case "translation":
				if err := d.translation(t, m); err != nil {
					return nil, err
				}

				hasTranslation = true

				continue
			default:
				if t.Name.Local != "userdata" && !strings.HasPrefix(t.Name.Local, "extra-") {
					d.warn("skipping unknown element <%s> in message", t.Name.Local)
				}

				if err := d.xd.Skip(); err != nil {
					return nil, err
				}

				continue
			}

			if *dst, err = d.text(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if !hasSource {
				return nil, d.fail(errNoSource)
			}

			if !hasTranslation {
				d.warn("message %q has no <translation>", m.Source)

				m.Status = Unfinished
			}

			return m, nil
		}
	}
}

// location reads a <location> element. Lines prefixed with + or - are relative
// to the previous location in the same file; a missing filename repeats the
// previous file.
func (d *decoder) location(start xml.StartElement, m *Message) error {
	file := attr(start, "filename")
	if file == "" {
		file = d.lastFile
	}

	raw := attr(start, "line")
	line := 0

	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return d.fail(fmt.Errorf("invalid location line %q: %w", raw, err))
		}

		if raw[0] == '+' || raw[0] == '-' {
			n += d.lastLine[file]
		}

		line = n
		d.lastLine[file] = n
	}

	d.lastFile = file
	m.Locations = append(m.Locations, Location{File: file, Line: line})

	return d.xd.Skip()
}

func (d *decoder) translation(start xml.StartElement, m *Message) error {
	typ := attr(start, "type")

	status, ok := parseStatus(typ)
	if !ok {
		d.warn("unknown translation type %q for %q, treating as finished", typ, m.Source)
	}

	m.Status = status

	var (
		text     strings.Builder
		forms    []string
		variants []string
	)

	for {
		tok, err := d.xd.Token()
		if err != nil {
			return unexpectedEOF(err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			switch t.Name.Local {
			case "numerusform":
				s, err := d.text()
				if err != nil {
					return err
				}

				forms = append(forms, s)
			case "lengthvariant":
				s, err := d.text()
				if err != nil {
					return err
				}

				variants = append(variants, s)
			case "byte":
				b, err := d.byteValue(t)
				if err != nil {
					return err
				}

				text.WriteByte(b)
			default:
				d.warn("skipping unknown element <%s> in translation", t.Name.Local)

				if err := d.xd.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			switch {
			case m.Numerus && len(forms) > 0:
				m.NumerusForms = forms
			case len(variants) > 0:
				m.LengthVariants = variants
				m.Translation = variants[0]
			case len(forms) > 0:
				d.warn("numerus forms on non-numerus message %q", m.Source)

				m.Translation = forms[0]
			case m.Numerus:
				if strings.TrimSpace(text.String()) != "" {
					d.warn("numerus message %q has text instead of <numerusform>, using it as the only form", m.Source)

					m.Translation = text.String()
				}
			default:
				m.Translation = text.String()
			}

			return nil
		}
	}
}

// knownVersion reports whether v is a 1.x or 2.x format version.
func knownVersion(v string) bool {
	major, minor, _ := strings.Cut(v, ".")
	if major != "1" && major != "2" {
		return false
	}

	if minor == "" {
		return true
	}

	_, err := strconv.ParseUint(minor, 10, 8)

	return err == nil
}

// text reads character data up to the end of the current element.
// <byte value="..."/> children are decoded into the raw byte they name.
func (d *decoder) text() (string, error) {
	var b strings.Builder

	for {
		tok, err := d.xd.Token()
		if err != nil {
			return "", unexpectedEOF(err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if t.Name.Local != "byte" {
				d.warn("skipping unknown element <%s> in text", t.Name.Local)

				if err := d.xd.Skip(); err != nil {
					return "", err
				}

				continue
			}

			c, err := d.byteValue(t)
			if err != nil {
				return "", err
			}

			b.WriteByte(c)
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

// byteValue decodes <byte value="x1b"/> (hex) or <byte value="27"/> (decimal).
func (d *decoder) byteValue(start xml.StartElement) (byte, error) {
	v := attr(start, "value")

	var (
		n   uint64
		err error
	)

	if rest, ok := strings.CutPrefix(v, "x"); ok {
		n, err = strconv.ParseUint(rest, 16, 8)
	} else {
		n, err = strconv.ParseUint(v, 10, 8)
	}

	if err != nil {
		return 0, d.fail(fmt.Errorf("invalid <byte> value %q", v))
	}

	if err := d.xd.Skip(); err != nil {
		return 0, err
	}

	return byte(n), nil
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}

	return ""
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}
