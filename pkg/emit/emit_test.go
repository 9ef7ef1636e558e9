package emit

import (
	"testing"

	"mongoxlate/pkg/fixture"
)

func TestPythonObjectIDScenario(t *testing.T) {
	e, err := Python()
	if err != nil {
		t.Fatalf("Python(): %v", err)
	}
	call := fixture.Call(fixture.Ident("ObjectId"), fixture.Str("507f1f77bcf86cd799439011"))
	hook, ok := e.Hook("ObjectId")
	if !ok {
		t.Fatalf("expected an ObjectId hook")
	}
	got, err := hook(e, call, []string{"'507f1f77bcf86cd799439011'"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "ObjectId('507f1f77bcf86cd799439011')"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPythonCodeWithScopeScenario(t *testing.T) {
	e, err := Python()
	if err != nil {
		t.Fatalf("Python(): %v", err)
	}
	call := fixture.New(fixture.Ident("Code"), fixture.Str("return 1"), fixture.Obj(fixture.PairIdent("x", fixture.Int(1))))
	hook, ok := e.Hook("Code")
	if !ok {
		t.Fatalf("expected a Code hook")
	}
	got, err := hook(e, call, []string{"'return 1'", "{'x': 1}"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Code('return 1', {'x': 1})"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPythonTimestampScenario(t *testing.T) {
	e, err := Python()
	if err != nil {
		t.Fatalf("Python(): %v", err)
	}
	call := fixture.Call(fixture.Ident("Timestamp"), fixture.Int(100), fixture.Int(1))
	hook, _ := e.Hook("Timestamp")
	got, err := hook(e, call, []string{"100", "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Timestamp(100, 1)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPythonRegexLiteralScenario(t *testing.T) {
	e, err := Python()
	if err != nil {
		t.Fatalf("Python(): %v", err)
	}
	got, err := e.RegexLiteral(fixture.Regex("foo", "gi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `re.compile(r"foo(?is)")`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPythonLongScenario(t *testing.T) {
	e, err := Python()
	if err != nil {
		t.Fatalf("Python(): %v", err)
	}
	call := fixture.Call(fixture.Ident("NumberLong"), fixture.Str("12345"))
	hook, _ := e.Hook("Long")
	got, err := hook(e, call, []string{"'12345'"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Int64(12345)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPythonBinaryScenario(t *testing.T) {
	e, err := Python()
	if err != nil {
		t.Fatalf("Python(): %v", err)
	}
	call := fixture.Call(fixture.Ident("Binary"), fixture.Str("abc"), fixture.Int(4))
	hook, _ := e.Hook("Binary")
	got, err := hook(e, call, []string{"'abc'", "4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Binary(bytes('abc', 'utf-8'), bson.binary.UUID_SUBTYPE)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJavaObjectIDScenario(t *testing.T) {
	e, err := Java()
	if err != nil {
		t.Fatalf("Java(): %v", err)
	}
	call := fixture.New(fixture.Ident("ObjectId"), fixture.Str("5ab901c29ee65f5c8550c5b9"))
	hook, _ := e.Hook("ObjectId")
	got, err := hook(e, call, []string{`"5ab901c29ee65f5c8550c5b9"`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `new ObjectId("5ab901c29ee65f5c8550c5b9")`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJavaRegexScenarioDropsG(t *testing.T) {
	e, err := Java()
	if err != nil {
		t.Fatalf("Java(): %v", err)
	}
	got, err := e.RegexLiteral(fixture.Regex("foo", "gi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `Pattern.compile("foo(?i)")`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBSONRegexRejectsUnsupportedFlags(t *testing.T) {
	e, err := Python()
	if err != nil {
		t.Fatalf("Python(): %v", err)
	}
	call := fixture.New(fixture.Ident("BSONRegExp"), fixture.Str("^a$"), fixture.Str("z"))
	hook, _ := e.Hook("BSONRegExp")
	if _, err := hook(e, call, []string{"'^a$'", "'z'"}); err == nil {
		t.Fatalf("expected a generic error for unsupported BSON regex flag")
	}
}

func TestObjectIDZeroArgIsNotFolded(t *testing.T) {
	e, err := Python()
	if err != nil {
		t.Fatalf("Python(): %v", err)
	}
	call := fixture.Call(fixture.Ident("ObjectId"))
	hook, _ := e.Hook("ObjectId")
	got, err := hook(e, call, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "ObjectId()"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOctalNormalization(t *testing.T) {
	e, err := Python()
	if err != nil {
		t.Fatalf("Python(): %v", err)
	}
	if got, want := e.Octal("017"), "0o17"; got != want {
		t.Errorf("Octal(017) = %q, want %q", got, want)
	}
}
