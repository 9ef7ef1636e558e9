// Package emit is the Target Emitter: one Emitter value per target
// language, each pairing a data-driven pkg/config manifest (quote style,
// boolean spelling, octal prefix, regex flag table) with a
// map[symtab.TypeID]HostHook of hand-written hooks for the classes whose
// rendering needs more than substitution — sandbox-backed compile-time
// evaluation, per-target constructor names, BSON subtype tables. The
// hook for a class is named by the class's Type ID, mirroring the
// teacher's own "dynamic dispatch by Type id" design note.
package emit

import (
	"fmt"
	"strings"

	"mongoxlate/pkg/config"
	"mongoxlate/pkg/numlit"
	"mongoxlate/pkg/parsetree"
	"mongoxlate/pkg/sandbox"
	"mongoxlate/pkg/symtab"
	"mongoxlate/pkg/xlerr"
)

// HostHook renders one recognized constructor or function call. call is
// the original new-expression or call-expression node, so a hook can pass
// it straight to sandbox.Evaluate when the class needs compile-time
// evaluation; argsText holds each argument's already-translated target
// text, in source order, for hooks that only need to splice already-valid
// target syntax (an object literal, a nested BSON value) into their own
// template.
type HostHook func(e *Emitter, call parsetree.Node, argsText []string) (string, error)

// Emitter is one target language's complete rendering behavior.
type Emitter struct {
	manifest *config.Manifest
	hooks    map[symtab.TypeID]HostHook
}

// Python returns the Emitter for the embedded python.yaml manifest and
// python.go's hook table.
func Python() (*Emitter, error) {
	m, err := config.Load("python")
	if err != nil {
		return nil, err
	}
	return &Emitter{manifest: m, hooks: pythonHooks()}, nil
}

// Java returns the Emitter for the embedded java.yaml manifest and
// java.go's hook table.
func Java() (*Emitter, error) {
	m, err := config.Load("java")
	if err != nil {
		return nil, err
	}
	return &Emitter{manifest: m, hooks: javaHooks()}, nil
}

// FromManifest builds an Emitter for a caller-supplied manifest with no
// bespoke hooks — every recognized host class falls back to the walker's
// generic `new`-prefix + callee + "(args)" rendering, per pkg/config's
// documented contract that a custom manifest can only add a target whose
// classes need nothing beyond the data-driven parts. Object, array, and
// regex rendering return a generic error for a language other than
// "python" or "java".
func FromManifest(m *config.Manifest) *Emitter {
	return &Emitter{manifest: m, hooks: map[symtab.TypeID]HostHook{}}
}

// Manifest exposes the underlying target manifest to hooks that need
// fields this package's convenience methods don't wrap directly (subtype
// tables live in the hook files themselves, keyed by manifest.Language).
func (e *Emitter) Manifest() *config.Manifest { return e.manifest }

// Hook resolves the HostHook registered for id, if any.
func (e *Emitter) Hook(id symtab.TypeID) (HostHook, bool) {
	h, ok := e.hooks[id]
	return h, ok
}

// QuoteString renders s as a target string literal using the manifest's
// quote character, escaping embedded quotes and backslashes.
func (e *Emitter) QuoteString(s string) string {
	q := e.manifest.Quote
	return q + escapeForQuote(s, q) + q
}

// escapeForQuote backslash-escapes s's backslashes and any embedded
// occurrence of quote so the result is safe to splice between a pair of
// quote characters.
func escapeForQuote(s, quote string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(escaped, quote, `\`+quote)
}

// Bool renders the target's canonical boolean spelling.
func (e *Emitter) Bool(v bool) string {
	if v {
		return e.manifest.BooleanTrue
	}
	return e.manifest.BooleanFalse
}

// Null renders the target's null literal.
func (e *Emitter) Null() string { return e.manifest.NullLiteral }

// Undefined renders the target's undefined literal.
func (e *Emitter) Undefined() string { return e.manifest.UndefinedLiteral }

// New renders the target's `new` token, empty for targets (Python) that
// have none.
func (e *Emitter) New() string { return e.manifest.NewKeyword }

// Octal re-spells an octal literal's raw source text in the target's
// canonical form, preserving its integer value.
func (e *Emitter) Octal(text string) string {
	return numlit.CanonicalOctal(text, e.manifest.OctalPrefix)
}

// RegexConstruct renders a compile-time-evaluated RegExp/regex-literal
// value in the target's native regex construction form: the flags spec.md
// §4.3 has translated through the manifest are appended to the pattern as
// an inline `(?flags)` modifier group rather than passed as a separate
// compile-time argument, matching the scenario seeds in §8.
func (e *Emitter) RegexConstruct(v sandbox.RegexValue) (string, error) {
	flags := translateFlags(e.manifest, v.Flags)
	source := doubleFirstBackslash(v.Source)
	pattern := source
	if flags != "" {
		pattern = fmt.Sprintf("%s(?%s)", source, flags)
	}
	switch e.manifest.Language {
	case "python":
		// Python regex source conventionally quotes with double quotes
		// even though the manifest's general string quote is single —
		// per the §8 scenario seed (`re.compile(r"foo(?is)")`), regex
		// literals don't follow the same quote-style rule as ordinary
		// string arguments.
		return fmt.Sprintf(`re.compile(r"%s")`, escapeForQuote(pattern, `"`)), nil
	case "java":
		return fmt.Sprintf(`Pattern.compile(%s)`, e.QuoteString(pattern)), nil
	default:
		return "", xlerr.Generic(fmt.Sprintf("regex construction is not supported for target %q", e.manifest.Language), nil, parsetree.Position{})
	}
}

// RegexLiteral folds a bare /pattern/flags literal node and renders it in
// the target's native regex form.
func (e *Emitter) RegexLiteral(n parsetree.Node) (string, error) {
	v, err := sandbox.EvaluateLiteral(n)
	if err != nil {
		return "", err
	}
	return e.RegexConstruct(v)
}

// BSONRegex validates flags against the manifest's BSON regex allow-list
// and returns them sorted ascending, or a generic error naming the
// offending letters — BSON regex flags are BSON wire-format flags, passed
// through unchanged rather than translated through the JS-to-target table.
func (e *Emitter) BSONRegex(flags string, pos parsetree.Position) (string, error) {
	return validateBSONRegexFlags(e.manifest, flags, pos)
}

// Field is one already-rendered key/value pair of an object literal; Key
// is already a target string literal (quoted), Value is already
// translated target text.
type Field struct {
	Key   string
	Value string
}

// ObjectLiteral renders an object literal. Python has a native dict
// display; Java's driver-idiomatic equivalent is a chained
// org.bson.Document builder, since the grammar's object literals stand in
// for BSON documents, not java.util.Map instances.
func (e *Emitter) ObjectLiteral(fields []Field) (string, error) {
	switch e.manifest.Language {
	case "python":
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = fmt.Sprintf("%s: %s", f.Key, f.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	case "java":
		if len(fields) == 0 {
			return "new Document()", nil
		}
		expr := fmt.Sprintf("new Document(%s, %s)", fields[0].Key, fields[0].Value)
		for _, f := range fields[1:] {
			expr += fmt.Sprintf(".append(%s, %s)", f.Key, f.Value)
		}
		return expr, nil
	default:
		return "", xlerr.Generic(fmt.Sprintf("object literals are not supported for target %q", e.manifest.Language), nil, parsetree.Position{})
	}
}

// ArrayLiteral renders an array literal. Python has a native list
// display; Java's driver-idiomatic equivalent is java.util.Arrays.asList.
func (e *Emitter) ArrayLiteral(elements []string) (string, error) {
	switch e.manifest.Language {
	case "python":
		return "[" + strings.Join(elements, ", ") + "]", nil
	case "java":
		return "Arrays.asList(" + strings.Join(elements, ", ") + ")", nil
	default:
		return "", xlerr.Generic(fmt.Sprintf("array literals are not supported for target %q", e.manifest.Language), nil, parsetree.Position{})
	}
}
