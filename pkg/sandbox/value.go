// Package sandbox is the translator's constant folder: a minimal, purely
// evaluative walk over a recognized constructor call's arguments that
// produces a canonical host value (an ObjectId's hex digits, a Long's
// decimal string, a Date's UTC components) suitable for embedding straight
// into target-language source. It never re-lexes fragment text — it walks
// the same parsetree.Node tree the caller already holds — and it never
// evaluates anything beyond the literal argument forms spec.md's Design
// Notes sanction: this is deliberately not a general JavaScript
// interpreter.
package sandbox

import "fmt"

// Kind identifies which host value category a Value carries.
type Kind int

const (
	KindObjectID Kind = iota
	KindBinary
	KindLong
	KindInt32
	KindDecimal
	KindDate
	KindRegex
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindObjectID:
		return "ObjectId"
	case KindBinary:
		return "Binary"
	case KindLong:
		return "Long"
	case KindInt32:
		return "Int32"
	case KindDecimal:
		return "Decimal128"
	case KindDate:
		return "Date"
	case KindRegex:
		return "regex"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a folded, canonical host value the emitter renders into target
// syntax. It carries no target-language knowledge of its own — pkg/emit's
// per-class hooks decide how to spell each field.
type Value interface {
	Kind() Kind
	fmt.Stringer
}

// ObjectIDValue is a folded ObjectId's 24 lowercase hex digits.
type ObjectIDValue struct {
	Hex string
}

func (v ObjectIDValue) Kind() Kind    { return KindObjectID }
func (v ObjectIDValue) String() string { return v.Hex }

// BinaryValue is a folded Binary's raw bytes and BSON subtype.
type BinaryValue struct {
	Data    []byte
	Subtype byte
}

func (v BinaryValue) Kind() Kind    { return KindBinary }
func (v BinaryValue) String() string { return fmt.Sprintf("Binary(subtype=%d, %d bytes)", v.Subtype, len(v.Data)) }

// LongValue is a folded Long/NumberLong's canonical decimal string
// (already sign-normalized, no leading zeros).
type LongValue struct {
	Decimal string
}

func (v LongValue) Kind() Kind    { return KindLong }
func (v LongValue) String() string { return v.Decimal }

// Int32Value is a folded Int32/NumberInt's 32-bit value.
type Int32Value struct {
	Val int32
}

func (v Int32Value) Kind() Kind    { return KindInt32 }
func (v Int32Value) String() string { return fmt.Sprintf("%d", v.Val) }

// DecimalValue is a folded Decimal128/NumberDecimal's canonical digit
// string, exactly as supplied to the constructor (BSON decimal128 preserves
// the input's precision and trailing zeros verbatim).
type DecimalValue struct {
	Digits string
}

func (v DecimalValue) Kind() Kind    { return KindDecimal }
func (v DecimalValue) String() string { return v.Digits }

// DateValue is a folded Date/ISODate's UTC calendar components. Month is
// 1-based (January == 1) regardless of the surface language's 0-based
// convention — pkg/emit's Python hook consumes this directly, its
// zero-based-source callers having already added 1 during folding.
type DateValue struct {
	Year, Month, Day          int
	Hour, Minute, Second, Ms int
}

func (v DateValue) Kind() Kind { return KindDate }
func (v DateValue) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%03dZ",
		v.Year, v.Month, v.Day, v.Hour, v.Minute, v.Second, v.Ms)
}

// RegexValue is a folded RegExp/BSONRegExp's source pattern and flag
// letters, sorted ascending so target output is stable across runs.
type RegexValue struct {
	Source string
	Flags  string
}

func (v RegexValue) Kind() Kind    { return KindRegex }
func (v RegexValue) String() string { return fmt.Sprintf("/%s/%s", v.Source, v.Flags) }

// NumberValue is a folded plain numeric argument (used for Double, and as
// an intermediate when a constructor accepts a bare number in the position
// spec.md's _numeric slot otherwise reserves for a string).
type NumberValue struct {
	Val   float64
	IsInt bool
}

func (v NumberValue) Kind() Kind { return KindNumber }
func (v NumberValue) String() string {
	if v.IsInt {
		return fmt.Sprintf("%d", int64(v.Val))
	}
	return fmt.Sprintf("%g", v.Val)
}

// StringValue is a folded string argument, already unescaped.
type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind    { return KindString }
func (v StringValue) String() string { return v.Val }
