package walker

import (
	"errors"
	"testing"

	"mongoxlate/pkg/emit"
	"mongoxlate/pkg/fixture"
	"mongoxlate/pkg/xlerr"
)

func mustPython(t *testing.T) *emit.Emitter {
	t.Helper()
	e, err := emit.Python()
	if err != nil {
		t.Fatalf("emit.Python(): %v", err)
	}
	return e
}

func mustJava(t *testing.T) *emit.Emitter {
	t.Helper()
	e, err := emit.Java()
	if err != nil {
		t.Fatalf("emit.Java(): %v", err)
	}
	return e
}

func TestTranslateLiterals(t *testing.T) {
	w := New(mustPython(t))
	got, err := w.Translate(fixture.Int(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "42" {
		t.Errorf("Int(42) = %q, want %q", got, "42")
	}

	got, err = w.Translate(fixture.Octal("017"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0o17" {
		t.Errorf("Octal(017) = %q, want %q", got, "0o17")
	}

	got, err = w.Translate(fixture.Str("hi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "'hi'" {
		t.Errorf("Str(hi) = %q, want %q", got, "'hi'")
	}

	got, err = w.Translate(fixture.Bool(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "True" {
		t.Errorf("Bool(true) = %q, want %q", got, "True")
	}

	got, err = w.Translate(fixture.Null())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "None" {
		t.Errorf("Null() = %q, want %q", got, "None")
	}

	got, err = w.Translate(fixture.Undefined())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "None" {
		t.Errorf("Undefined() = %q, want %q", got, "None")
	}
}

func TestTranslateRegexLiteralRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		emitter func(*testing.T) *emit.Emitter
		want    string
	}{
		{mustPython, `re.compile(r"foo(?is)")`},
		{mustJava, `Pattern.compile("foo(?i)")`},
	} {
		w := New(tc.emitter(t))
		got, err := w.Translate(fixture.Regex("foo", "gi"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestTranslateObjectAndArrayLiterals(t *testing.T) {
	w := New(mustPython(t))
	n := fixture.Obj(
		fixture.PairIdent("x", fixture.Int(1)),
		fixture.Pair("y", fixture.Arr(fixture.Int(1), fixture.Elision(), fixture.Int(3))),
	)
	got, err := w.Translate(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "{'x': 1, 'y': [1, None, 3]}"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateJavaObjectLiteral(t *testing.T) {
	w := New(mustJava(t))
	n := fixture.Obj(fixture.PairIdent("x", fixture.Int(1)), fixture.PairIdent("y", fixture.Str("z")))
	got, err := w.Translate(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `new Document("x", 1).append("y", "z")`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateUnknownIdentifierIsReferenceError(t *testing.T) {
	w := New(mustPython(t))
	_, err := w.Translate(fixture.Ident("notAThing"))
	var refErr *xlerr.ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected a reference error, got %v", err)
	}
}

func TestTranslateObjectIDScenario(t *testing.T) {
	w := New(mustPython(t))
	n := fixture.New(fixture.Ident("ObjectId"), fixture.Str("507f1f77bcf86cd799439011"))
	got, err := w.Translate(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "ObjectId('507f1f77bcf86cd799439011')"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	typ, ok := w.TypeOf(n)
	if !ok || typ.ID != "ObjectId" {
		t.Errorf("TypeOf(n) = %v, %v; want ObjectId type", typ, ok)
	}
}

func TestTranslateJavaObjectIDScenario(t *testing.T) {
	w := New(mustJava(t))
	n := fixture.New(fixture.Ident("ObjectId"), fixture.Str("5ab901c29ee65f5c8550c5b9"))
	got, err := w.Translate(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `new ObjectId("5ab901c29ee65f5c8550c5b9")`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateBinaryScenario(t *testing.T) {
	w := New(mustPython(t))
	n := fixture.Call(fixture.Ident("Binary"), fixture.Str("abc"), fixture.Int(4))
	got, err := w.Translate(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Binary(bytes('abc', 'utf-8'), bson.binary.UUID_SUBTYPE)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateLongFromBits(t *testing.T) {
	w := New(mustPython(t))
	n := fixture.Call(fixture.Member(fixture.Ident("Long"), "fromBits"), fixture.Int(1), fixture.Int(0))
	got, err := w.Translate(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Int64(1)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateLongMaxValueConstant(t *testing.T) {
	w := New(mustPython(t))
	n := fixture.Member(fixture.Ident("Long"), "MAX_VALUE")
	got, err := w.Translate(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "9223372036854775807"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateObjectCreate(t *testing.T) {
	w := New(mustPython(t))
	n := fixture.Call(fixture.Member(fixture.Ident("Object"), "create"), fixture.Obj(fixture.PairIdent("a", fixture.Int(1))))
	got, err := w.Translate(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "{'a': 1}"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateMaxKeySingleton(t *testing.T) {
	w := New(mustPython(t))
	got, err := w.Translate(fixture.Call(fixture.Ident("MaxKey")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "MaxKey()"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateMaxKeyRejectsArguments(t *testing.T) {
	w := New(mustPython(t))
	_, err := w.Translate(fixture.Call(fixture.Ident("MaxKey"), fixture.Int(1)))
	var arityErr *xlerr.ArityError
	if !errors.As(err, &arityErr) {
		t.Fatalf("expected an arity error, got %v", err)
	}
}

func TestTranslateDateZeroArg(t *testing.T) {
	w := New(mustPython(t))
	got, err := w.Translate(fixture.New(fixture.Ident("Date")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "datetime.datetime.utcnow()"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCheckArgsTooFewIsArityError(t *testing.T) {
	w := New(mustPython(t))
	_, err := w.Translate(fixture.Call(fixture.Ident("Timestamp"), fixture.Int(1)))
	var arityErr *xlerr.ArityError
	if !errors.As(err, &arityErr) {
		t.Fatalf("expected an arity error, got %v", err)
	}
}

func TestCheckArgsTooManyIsArityError(t *testing.T) {
	w := New(mustPython(t))
	_, err := w.Translate(fixture.Call(fixture.Ident("Timestamp"), fixture.Int(1), fixture.Int(2), fixture.Int(3)))
	var arityErr *xlerr.ArityError
	if !errors.As(err, &arityErr) {
		t.Fatalf("expected an arity error, got %v", err)
	}
}

func TestCheckArgsTypeMismatch(t *testing.T) {
	w := New(mustPython(t))
	n := fixture.New(fixture.Ident("DBRef"), fixture.Str("ns"), fixture.Str("not-an-object"))
	_, err := w.Translate(n)
	var typeErr *xlerr.TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected a type error, got %v", err)
	}
	if typeErr.Index != 1 {
		t.Errorf("Index = %d, want 1", typeErr.Index)
	}
}

func TestDecimal128RejectsNumericLiteral(t *testing.T) {
	w := New(mustPython(t))
	n := fixture.New(fixture.Ident("Decimal128"), fixture.Decimal("9.99"))
	_, err := w.Translate(n)
	var typeErr *xlerr.TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected a type error for a numeric Decimal128 argument, got %v", err)
	}
}

func TestCheckArgsMissingOptionalSucceeds(t *testing.T) {
	w := New(mustPython(t))
	got, err := w.Translate(fixture.New(fixture.Ident("Code"), fixture.Str("return 1")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Code('return 1')"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNotCallableIsTypeError(t *testing.T) {
	w := New(mustPython(t))
	_, err := w.Translate(fixture.Call(fixture.Str("not callable")))
	var typeErr *xlerr.TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected a type error, got %v", err)
	}
}

func TestAttributeErrorOnRecognizedRoot(t *testing.T) {
	w := New(mustPython(t))
	_, err := w.Translate(fixture.Member(fixture.Ident("Long"), "notAnAttribute"))
	var attrErr *xlerr.AttributeError
	if !errors.As(err, &attrErr) {
		t.Fatalf("expected an attribute error, got %v", err)
	}
}

func TestBareInstanceMethodFallsThroughGenerically(t *testing.T) {
	w := New(mustPython(t))
	n := fixture.Call(fixture.Member(fixture.New(fixture.Ident("ObjectId"), fixture.Str("507f1f77bcf86cd799439011")), "toHexString"))
	got, err := w.Translate(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "ObjectId('507f1f77bcf86cd799439011').toHexString()"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTypeSideTableRecordsEveryVisitedNode(t *testing.T) {
	w := New(mustPython(t))
	inner := fixture.Int(1)
	n := fixture.Obj(fixture.PairIdent("x", inner))
	if _, err := w.Translate(n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := w.TypeOf(n); !ok {
		t.Errorf("expected the object literal node to have a recorded type")
	}
	if _, ok := w.TypeOf(inner); !ok {
		t.Errorf("expected the nested number literal node to have a recorded type")
	}
}
