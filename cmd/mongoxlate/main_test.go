package main

import (
	"os"
	"path/filepath"
	"testing"

	"mongoxlate/pkg/translate"
)

func TestParseTargetPython(t *testing.T) {
	target, rest, err := parseTarget([]string{"--target", "python", "expr.js"})
	if err != nil {
		t.Fatalf("parseTarget: %v", err)
	}
	if target != translate.Python {
		t.Fatalf("target = %q, want %q", target, translate.Python)
	}
	if len(rest) != 1 || rest[0] != "expr.js" {
		t.Fatalf("rest = %v, want [expr.js]", rest)
	}
}

func TestParseTargetMissing(t *testing.T) {
	if _, _, err := parseTarget([]string{"expr.js"}); err == nil {
		t.Fatalf("expected an error when --target is omitted")
	}
}

func TestParseTargetUnsupported(t *testing.T) {
	if _, _, err := parseTarget([]string{"--target", "ruby"}); err == nil {
		t.Fatalf("expected an error for an unsupported target")
	}
}

func TestReadSourceFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expr.js")
	if err := os.WriteFile(path, []byte(`ObjectId("507f1f77bcf86cd799439011")\n`), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	got, err := readSource([]string{path})
	if err != nil {
		t.Fatalf("readSource: %v", err)
	}
	if got == "" {
		t.Fatalf("readSource returned empty source")
	}
}

func TestReadSourceTooManyArgs(t *testing.T) {
	if _, err := readSource([]string{"a.js", "b.js"}); err == nil {
		t.Fatalf("expected an error for multiple file arguments")
	}
}

func TestRunTranslatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expr.js")
	if err := os.WriteFile(path, []byte(`{status: "active"}`), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if code := run([]string{"--target", "python", path}); code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
}

func TestRunRejectsBadTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expr.js")
	if err := os.WriteFile(path, []byte(`1`), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if code := run([]string{"--target", "ruby", path}); code == 0 {
		t.Fatalf("run() = 0, want a nonzero exit code for an unsupported target")
	}
}
