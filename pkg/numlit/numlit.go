// Package numlit classifies and parses the surface language's four numeric
// literal forms (integer, decimal, hex, octal), matching spec.md §3's
// "_numeric covering integer/decimal/hex/octal" and §4.3's octal
// normalization rule. Both pkg/walker (to assign a literal node's type) and
// pkg/sandbox (to fold a numeric argument into a host value) share this
// classification so the two never drift apart on what counts as, say, an
// octal literal.
package numlit

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which of the four numeric literal forms text is.
type Kind string

const (
	KindInteger Kind = "_integer"
	KindDecimal Kind = "_decimal"
	KindHex     Kind = "_hex"
	KindOctal   Kind = "_octal"
)

// Classify reports which numeric literal form the given source text takes.
// text is assumed to already be lexed as a JavaScript NumericLiteral (an
// external parser's concern); Classify only distinguishes the four forms
// spec.md's _numeric union covers.
func Classify(text string) Kind {
	t := strings.TrimPrefix(strings.TrimPrefix(text, "+"), "-")
	switch {
	case strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X"):
		return KindHex
	case isOctalLiteral(t):
		return KindOctal
	case strings.ContainsAny(t, ".eE"):
		return KindDecimal
	default:
		return KindInteger
	}
}

// isOctalLiteral recognizes "0o17", "0O17", and legacy "017"-style octal
// (a leading zero followed by only octal digits, and more than one digit —
// "0" alone is the integer zero, not an octal literal).
func isOctalLiteral(t string) bool {
	if strings.HasPrefix(t, "0o") || strings.HasPrefix(t, "0O") {
		return true
	}
	if len(t) < 2 || t[0] != '0' {
		return false
	}
	for _, r := range t[1:] {
		if r < '0' || r > '7' {
			return false
		}
	}
	return true
}

// ParseInt64 parses an integer, hex, or octal literal (per Classify) into a
// signed 64-bit value. Decimal (fractional) literals are rejected.
func ParseInt64(text string) (int64, error) {
	neg := false
	t := text
	if strings.HasPrefix(t, "-") {
		neg, t = true, t[1:]
	} else if strings.HasPrefix(t, "+") {
		t = t[1:]
	}

	var v int64
	var err error
	switch Classify(text) {
	case KindHex:
		v, err = strconv.ParseInt(t[2:], 16, 64)
	case KindOctal:
		v, err = strconv.ParseInt(NormalizeOctalDigits(t), 8, 64)
	case KindInteger:
		v, err = strconv.ParseInt(t, 10, 64)
	default:
		return 0, fmt.Errorf("numlit: %q is not an integer literal", text)
	}
	if err != nil {
		return 0, fmt.Errorf("numlit: %q: %w", text, err)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// ParseFloat64 parses any of the four numeric forms into a float64.
func ParseFloat64(text string) (float64, error) {
	if Classify(text) == KindDecimal {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("numlit: %q: %w", text, err)
		}
		return v, nil
	}
	v, err := ParseInt64(text)
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}

// NormalizeOctalDigits strips a "0", "0o", or "0O" prefix from an octal
// literal's digits, leaving bare octal digits suitable for strconv.ParseInt
// with base 8.
func NormalizeOctalDigits(text string) string {
	switch {
	case strings.HasPrefix(text, "0o") || strings.HasPrefix(text, "0O"):
		return text[2:]
	case strings.HasPrefix(text, "0"):
		return text[1:]
	default:
		return text
	}
}

// CanonicalOctal re-spells an octal literal using the given target prefix
// (e.g. "0o" for Python), preserving the numeric value. Per spec.md §4.3:
// "Strip any leading 0, 0o, or 0O prefix and emit in the target's canonical
// form."
func CanonicalOctal(text, prefix string) string {
	neg := ""
	t := text
	if strings.HasPrefix(t, "-") {
		neg, t = "-", t[1:]
	}
	return neg + prefix + NormalizeOctalDigits(t)
}
