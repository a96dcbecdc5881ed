// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package placeholder

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// fieldSpec is the subset of the Python format mini-language found in UI
// strings: [[fill]align][sign][0][width][,][.precision][type].
type fieldSpec struct {
	fill      rune
	align     byte // '<', '>', '^', '=' or 0
	sign      byte // '+', ' ' or 0
	zero      bool
	width     int
	grouping  bool
	precision int // -1 when absent
	verb      byte
}

func parseSpec(s string) (fieldSpec, bool) {
	fs := fieldSpec{fill: ' ', precision: -1}

	if r, size := utf8.DecodeRuneInString(s); size > 0 && size < len(s) && isAlign(s[size]) {
		fs.fill, fs.align = r, s[size]
		s = s[size+1:]
	} else if len(s) > 0 && isAlign(s[0]) {
		fs.align = s[0]
		s = s[1:]
	}

	if len(s) > 0 && (s[0] == '+' || s[0] == '-' || s[0] == ' ') {
		if s[0] != '-' {
			fs.sign = s[0]
		}

		s = s[1:]
	}

	if len(s) > 0 && s[0] == '0' {
		fs.zero = true
		s = s[1:]
	}

	s, fs.width = leadingInt(s)

	if len(s) > 0 && (s[0] == ',' || s[0] == '_') {
		fs.grouping = true
		s = s[1:]
	}

	if len(s) > 0 && s[0] == '.' {
		rest, p := leadingInt(s[1:])
		if len(rest) == len(s)-1 {
			return fs, false
		}

		s, fs.precision = rest, p
	}

	if len(s) > 1 {
		return fs, false
	}

	if len(s) == 1 {
		fs.verb = s[0]
	}

	return fs, true
}

func isAlign(c byte) bool {
	return c == '<' || c == '>' || c == '^' || c == '='
}

func leadingInt(s string) (string, int) {
	n, i := 0, 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}

	return s[i:], n
}

// formatSpec renders v according to spec. Values that do not fit the spec's
// type are printed with fmt.Sprint.
func formatSpec(v any, spec string) string {
	fs, ok := parseSpec(spec)
	if !ok {
		return fmt.Sprint(v)
	}

	body, numeric := fs.render(v)

	return fs.pad(body, numeric)
}

func (fs fieldSpec) render(v any) (string, bool) {
	switch fs.verb {
	case 'd', 'x', 'X', 'o', 'b':
		n, ok := toInt(v)
		if !ok {
			return fmt.Sprint(v), false
		}

		base := map[byte]int{'d': 10, 'x': 16, 'X': 16, 'o': 8, 'b': 2}[fs.verb]

		digits := strconv.FormatInt(abs64(n), base)
		if fs.verb == 'X' {
			digits = strings.ToUpper(digits)
		}

		if fs.grouping && base == 10 {
			digits = group(digits)
		}

		return fs.signed(digits, n < 0), true
	case 'f', 'F', 'e', 'E', 'g', 'G', '%':
		f, ok := toFloat(v)
		if !ok {
			return fmt.Sprint(v), false
		}

		return fs.float(f), true
	case 's', 0:
		if fs.verb == 0 {
			if f, ok := v.(float64); ok && fs.precision >= 0 {
				fs.verb = 'g'

				return fs.float(f), true
			}

			if n, ok := toInt(v); ok && isInteger(v) {
				digits := strconv.FormatInt(abs64(n), 10)
				if fs.grouping {
					digits = group(digits)
				}

				return fs.signed(digits, n < 0), true
			}
		}

		s := fmt.Sprint(v)
		if fs.precision >= 0 && utf8.RuneCountInString(s) > fs.precision {
			s = string([]rune(s)[:fs.precision])
		}

		return s, false
	}

	return fmt.Sprint(v), false
}

func (fs fieldSpec) float(f float64) string {
	verb, prec := fs.verb, fs.precision
	if prec < 0 {
		prec = 6
		if verb == 'g' || verb == 'G' {
			prec = -1
		}
	}

	suffix := ""

	switch verb {
	case 'F':
		verb = 'f'
	case '%':
		f *= 100
		verb, suffix = 'f', "%"
	}

	neg := math.Signbit(f)
	s := strconv.FormatFloat(math.Abs(f), verb, prec, 64)

	if fs.grouping {
		intPart, frac, _ := strings.Cut(s, ".")
		if isDigits(intPart) {
			s = group(intPart)
			if frac != "" {
				s += "." + frac
			}
		}
	}

	return fs.signed(s+suffix, neg)
}

func (fs fieldSpec) signed(digits string, neg bool) string {
	switch {
	case neg:
		return "-" + digits
	case fs.sign != 0:
		return string(fs.sign) + digits
	}

	return digits
}

func (fs fieldSpec) pad(s string, numeric bool) string {
	n := utf8.RuneCountInString(s)
	if n >= fs.width {
		return s
	}

	fill, align := fs.fill, fs.align
	if align == 0 {
		switch {
		case fs.zero && numeric:
			fill, align = '0', '='
		case numeric:
			align = '>'
		default:
			align = '<'
		}
	}

	padding := fs.width - n
	rep := func(k int) string { return strings.Repeat(string(fill), k) }

	switch align {
	case '<':
		return s + rep(padding)
	case '^':
		return rep(padding/2) + s + rep(padding-padding/2)
	case '=':
		if len(s) > 0 && (s[0] == '-' || s[0] == '+' || s[0] == ' ') {
			return s[:1] + rep(padding) + s[1:]
		}

		return rep(padding) + s
	}

	return rep(padding) + s
}

// group inserts thousands separators into a run of decimal digits.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}

	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}

	return false
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), n == math.Trunc(n)
	case float32:
		return int64(n), float64(n) == math.Trunc(float64(n))
	}

	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}

	if i, ok := toInt(v); ok {
		return float64(i), true
	}

	return 0, false
}
