package sandbox

import (
	"testing"

	"mongoxlate/pkg/fixture"
)

func TestEvaluateObjectID(t *testing.T) {
	call := fixture.New(fixture.Ident("ObjectId"), fixture.Str("507f1f77bcf86cd799439011"))
	v, ok, err := Evaluate(call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ObjectId with an explicit hex argument to fold")
	}
	oid, ok := v.(ObjectIDValue)
	if !ok {
		t.Fatalf("expected ObjectIDValue, got %T", v)
	}
	if oid.Hex != "507f1f77bcf86cd799439011" {
		t.Errorf("Hex = %q", oid.Hex)
	}
}

func TestEvaluateObjectIDSingleQuoted(t *testing.T) {
	call := fixture.New(fixture.Ident("ObjectId"), fixture.RawString(`'5ab901c29ee65f5c8550c5b9'`))
	v, ok, err := Evaluate(call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a single-quoted hex argument to fold")
	}
	oid, ok := v.(ObjectIDValue)
	if !ok {
		t.Fatalf("expected ObjectIDValue, got %T", v)
	}
	if oid.Hex != "5ab901c29ee65f5c8550c5b9" {
		t.Errorf("Hex = %q", oid.Hex)
	}
}

func TestEvaluateObjectIDZeroArgNotFoldable(t *testing.T) {
	call := fixture.New(fixture.Ident("ObjectId"))
	_, ok, err := Evaluate(call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected zero-argument ObjectId to be non-foldable")
	}
}

func TestEvaluateObjectIDBadHex(t *testing.T) {
	call := fixture.New(fixture.Ident("ObjectId"), fixture.Str("not-hex"))
	_, _, err := Evaluate(call)
	if err == nil {
		t.Fatalf("expected an error for malformed hex")
	}
}

func TestEvaluateLongFromString(t *testing.T) {
	call := fixture.New(fixture.Ident("NumberLong"), fixture.Str("9223372036854775807"))
	v, ok, err := Evaluate(call)
	if err != nil || !ok {
		t.Fatalf("Evaluate: ok=%v err=%v", ok, err)
	}
	if got := v.(LongValue).Decimal; got != "9223372036854775807" {
		t.Errorf("Decimal = %q", got)
	}
}

func TestEvaluateLongFromBits(t *testing.T) {
	call := fixture.New(fixture.Ident("Long"), fixture.Int(0), fixture.Int(0))
	v, ok, err := Evaluate(call)
	if err != nil || !ok {
		t.Fatalf("Evaluate: ok=%v err=%v", ok, err)
	}
	if got := v.(LongValue).Decimal; got != "0" {
		t.Errorf("Decimal = %q, want 0", got)
	}
}

func TestEvaluateInt32(t *testing.T) {
	call := fixture.New(fixture.Ident("NumberInt"), fixture.Int(42))
	v, ok, err := Evaluate(call)
	if err != nil || !ok {
		t.Fatalf("Evaluate: ok=%v err=%v", ok, err)
	}
	if got := v.(Int32Value).Val; got != 42 {
		t.Errorf("Val = %d, want 42", got)
	}
}

func TestEvaluateDecimal128FromString(t *testing.T) {
	call := fixture.New(fixture.Ident("NumberDecimal"), fixture.Str("9.99"))
	v, ok, err := Evaluate(call)
	if err != nil || !ok {
		t.Fatalf("Evaluate: ok=%v err=%v", ok, err)
	}
	if got := v.(DecimalValue).Digits; got != "9.99" {
		t.Errorf("Digits = %q, want 9.99", got)
	}
}

func TestEvaluateDateFromISOString(t *testing.T) {
	call := fixture.New(fixture.Ident("ISODate"), fixture.Str("2021-06-15T10:30:00.000Z"))
	v, ok, err := Evaluate(call)
	if err != nil || !ok {
		t.Fatalf("Evaluate: ok=%v err=%v", ok, err)
	}
	d := v.(DateValue)
	if d.Year != 2021 || d.Month != 6 || d.Day != 15 || d.Hour != 10 || d.Minute != 30 {
		t.Errorf("unexpected DateValue: %+v", d)
	}
}

func TestEvaluateDateZeroArgNotFoldable(t *testing.T) {
	call := fixture.New(fixture.Ident("Date"))
	_, ok, err := Evaluate(call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected zero-argument Date to be non-foldable")
	}
}

func TestEvaluateDatePositionalArgsAdjustsMonth(t *testing.T) {
	// JavaScript's Date(year, month, ...) is zero-based for month; DateValue
	// is always 1-based.
	call := fixture.New(fixture.Ident("Date"), fixture.Int(2021), fixture.Int(0), fixture.Int(15))
	v, ok, err := Evaluate(call)
	if err != nil || !ok {
		t.Fatalf("Evaluate: ok=%v err=%v", ok, err)
	}
	d := v.(DateValue)
	if d.Month != 1 {
		t.Errorf("Month = %d, want 1 (January)", d.Month)
	}
	if d.Day != 15 {
		t.Errorf("Day = %d, want 15", d.Day)
	}
}

func TestEvaluateRegExpSortsFlags(t *testing.T) {
	call := fixture.New(fixture.Ident("RegExp"), fixture.Str("^abc$"), fixture.Str("ismx"))
	v, ok, err := Evaluate(call)
	if err != nil || !ok {
		t.Fatalf("Evaluate: ok=%v err=%v", ok, err)
	}
	r := v.(RegexValue)
	if r.Flags != "imsx" {
		t.Errorf("Flags = %q, want sorted \"imsx\"", r.Flags)
	}
	if r.Source != "^abc$" {
		t.Errorf("Source = %q", r.Source)
	}
}

func TestEvaluateLiteralRegex(t *testing.T) {
	n := fixture.Regex("^abc$", "gi")
	v, err := EvaluateLiteral(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Flags != "gi" {
		t.Errorf("Flags = %q, want sorted \"gi\"", v.Flags)
	}
}

func TestEvaluateUnrecognizedCalleeIsNotFoldable(t *testing.T) {
	call := fixture.New(fixture.Ident("Symbol"), fixture.Str("x"))
	_, ok, err := Evaluate(call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("Symbol has no canonical folded form; Evaluate should report ok=false")
	}
}
