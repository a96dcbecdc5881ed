// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	indentMessage = "    "
	indentField   = "        "
	indentForm    = "            "
)

// Encode writes c to w in the layout produced by lupdate.
func (c *Catalog) Encode(w io.Writer) error {
	e := &encoder{w: bufio.NewWriter(w)}

	version := c.Version
	if version == "" {
		version = DefaultVersion
	}

	e.raw(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	e.raw("<!DOCTYPE TS>\n")
	e.raw(`<TS version="`)
	e.attr("version", version)
	e.raw(`"`)

	if c.Language != "" {
		e.raw(` language="`)
		e.attr("language", c.Language)
		e.raw(`"`)
	}

	if c.SourceLanguage != "" {
		e.raw(` sourcelanguage="`)
		e.attr("sourcelanguage", c.SourceLanguage)
		e.raw(`"`)
	}

	e.raw(">\n")

	for _, ctx := range c.Contexts {
		e.context(ctx)
	}

	e.raw("</TS>\n")

	if e.err != nil {
		return e.err
	}

	return e.w.Flush()
}

// Marshal returns the encoded form of c.
func (c *Catalog) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) raw(s string) {
	if e.err != nil {
		return
	}

	_, e.err = e.w.WriteString(s)
}

// attr writes s as the value of the attribute name. Control characters have
// no representation in an XML 1.0 attribute and fail the encoding.
func (e *encoder) attr(name, s string) {
	if e.err != nil {
		return
	}

	v, err := attrProtect(s)
	if err != nil {
		e.err = fmt.Errorf("attribute %s: %w", name, err)

		return
	}

	e.raw(v)
}

func (e *encoder) element(indent, name, text string) {
	e.raw(indent + "<" + name + ">" + protect(text) + "</" + name + ">\n")
}

func (e *encoder) context(ctx *Context) {
	e.raw("<context>\n")
	e.element(indentMessage, "name", ctx.Name)

	for _, m := range ctx.Messages {
		e.message(m)
	}

	e.raw("</context>\n")
}

func (e *encoder) message(m *Message) {
	e.raw(indentMessage + "<message")

	if m.ID != "" {
		e.raw(` id="`)
		e.attr("id", m.ID)
		e.raw(`"`)
	}

	if m.Numerus {
		e.raw(` numerus="yes"`)
	}

	e.raw(">\n")

	for _, loc := range m.Locations {
		e.raw(indentField + `<location filename="`)
		e.attr("filename", loc.File)
		e.raw(`"`)

		if loc.Line > 0 {
			e.raw(` line="` + strconv.Itoa(loc.Line) + `"`)
		}

		e.raw("/>\n")
	}

	e.element(indentField, "source", m.Source)

	optional := []struct{ name, text string }{
		{"oldsource", m.OldSource},
		{"comment", m.Comment},
		{"oldcomment", m.OldComment},
		{"extracomment", m.ExtraComment},
		{"translatorcomment", m.TranslatorComment},
	}
	for _, f := range optional {
		if f.text != "" {
			e.element(indentField, f.name, f.text)
		}
	}

	e.translation(m)
	e.raw(indentMessage + "</message>\n")
}

func (e *encoder) translation(m *Message) {
	open := indentField + "<translation"
	if t := m.Status.attr(); t != "" {
		open += ` type="` + t + `"`
	}

	switch {
	case m.Numerus && len(m.NumerusForms) == 0 && m.Translation != "":
		e.raw(open + ">" + protect(m.Translation) + "</translation>\n")
	case m.Numerus:
		e.raw(open + ">\n")

		for _, f := range m.NumerusForms {
			e.element(indentForm, "numerusform", f)
		}

		e.raw(indentField + "</translation>\n")
	case len(m.LengthVariants) > 0:
		e.raw(open + ` variants="yes">` + "\n")

		for _, v := range m.LengthVariants {
			e.element(indentForm, "lengthvariant", v)
		}

		e.raw(indentField + "</translation>\n")
	default:
		e.raw(open + ">" + protect(m.Translation) + "</translation>\n")
	}
}

// protect escapes s for use as XML element text. Control characters other
// than tab and newline are written as <byte> elements so they survive XML
// newline normalisation.
func protect(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			if c < 0x20 && c != '\n' && c != '\t' {
				fmt.Fprintf(&b, `<byte value="x%x"/>`, c)

				continue
			}

			b.WriteByte(c)
		}
	}

	return b.String()
}

// attrProtect escapes s for use inside a double-quoted attribute value. Tab,
// newline and carriage return become character references so attribute value
// normalisation keeps them; other control characters are rejected.
func attrProtect(s string) (string, error) {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\t', '\n', '\r':
			fmt.Fprintf(&b, "&#x%X;", c)
		default:
			if c < 0x20 {
				return "", fmt.Errorf("%w %#x in %q", ErrControlChar, c, s)
			}

			b.WriteByte(c)
		}
	}

	return b.String(), nil
}
