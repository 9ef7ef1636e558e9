// Package walker is the Tree Walker: it drives a single top-down,
// bottom-up-rendering pass over a parsetree.Node, assigning each visited
// node a symtab.Type (kept in an external side-table, since Go cannot add
// a mutable field to a foreign tree the way the distilled system's own
// walker writes one back onto the node) and producing the target text for
// the expression as a whole.
package walker

import (
	"fmt"
	"strconv"
	"strings"

	"mongoxlate/pkg/emit"
	"mongoxlate/pkg/numlit"
	"mongoxlate/pkg/parsetree"
	"mongoxlate/pkg/symtab"
	"mongoxlate/pkg/xlerr"
)

// Walker holds the read-only Symbol Table, the target Emitter, and the
// per-translation type side-table. A Walker is not reused across
// concurrent translations of different inputs — pkg/translate allocates a
// fresh one per call, per SPEC_FULL.md §5's resource model.
type Walker struct {
	table   *symtab.Table
	emitter *emit.Emitter
	types   map[parsetree.NodeID]*symtab.Type
}

// sharedTable is the Symbol Table built once at package initialization and
// only ever read afterwards, so every Walker can share it.
var sharedTable = symtab.NewTable()

// New builds a Walker targeting emitter, reading the shared Symbol Table.
func New(emitter *emit.Emitter) *Walker {
	return &Walker{
		table:   sharedTable,
		emitter: emitter,
		types:   make(map[parsetree.NodeID]*symtab.Type),
	}
}

// Translate walks root and returns the equivalent target-language
// expression text. root must already be the expression itself — a
// concrete parser that wraps expressions in a program/statement shell
// (pkg/tsjs, to satisfy a full-language grammar) unwraps that shell
// before ever handing a node to a Walker.
func (w *Walker) Translate(root parsetree.Node) (string, error) {
	text, _, err := w.visit(root)
	return text, err
}

// TypeOf reports the Type assigned to n during the last Translate call
// that visited it, for callers (tests, diagnostics) that want to inspect
// the side-table directly rather than trust Translate's return value
// alone.
func (w *Walker) TypeOf(n parsetree.Node) (*symtab.Type, bool) {
	t, ok := w.types[n.ID()]
	return t, ok
}

// visit renders n and records its Type in the side-table, returning both.
func (w *Walker) visit(n parsetree.Node) (text string, typ *symtab.Type, err error) {
	if n == nil {
		return "", nil, xlerr.Generic("cannot translate a nil node", nil, parsetree.Position{})
	}
	switch n.Kind() {
	case parsetree.KindParenthesize:
		return w.visitParenthesized(n)
	case parsetree.KindNumber:
		return w.visitNumber(n)
	case parsetree.KindString:
		return w.visitString(n)
	case parsetree.KindBoolean:
		return w.visitBoolean(n)
	case parsetree.KindNull:
		return w.record(n, w.emitter.Null(), &symtab.Type{ID: symtab.Null})
	case parsetree.KindUndefined:
		return w.record(n, w.emitter.Undefined(), &symtab.Type{ID: symtab.Undefined})
	case parsetree.KindElision:
		return w.record(n, w.emitter.Null(), &symtab.Type{ID: symtab.Null})
	case parsetree.KindRegex:
		return w.visitRegex(n)
	case parsetree.KindObject:
		return w.visitObject(n)
	case parsetree.KindArray:
		return w.visitArray(n)
	case parsetree.KindIdentifier:
		return w.visitIdentifier(n)
	case parsetree.KindMember:
		return w.visitMember(n)
	case parsetree.KindNew, parsetree.KindCall:
		return w.visitInvocation(n)
	default:
		return "", nil, xlerr.Generic("unsupported expression form: "+string(n.Kind()), nil, n.Pos())
	}
}

func (w *Walker) record(n parsetree.Node, text string, typ *symtab.Type) (string, *symtab.Type, error) {
	w.types[n.ID()] = typ
	return text, typ, nil
}

func (w *Walker) visitParenthesized(n parsetree.Node) (string, *symtab.Type, error) {
	inner := nonPunctuation(n)
	if len(inner) != 1 {
		return "", nil, xlerr.Generic("empty parenthesized expression", nil, n.Pos())
	}
	text, typ, err := w.visit(inner[0])
	if err != nil {
		return "", nil, err
	}
	return w.record(n, "("+text+")", typ)
}

func (w *Walker) visitNumber(n parsetree.Node) (string, *symtab.Type, error) {
	text := n.Text()
	kind := numlit.Classify(text)
	var id symtab.TypeID
	switch kind {
	case numlit.KindHex:
		id = symtab.Hex
	case numlit.KindOctal:
		id = symtab.Octal
	case numlit.KindDecimal:
		id = symtab.Decimal
	default:
		id = symtab.Integer
	}
	rendered := text
	if kind == numlit.KindOctal {
		rendered = w.emitter.Octal(text)
	}
	return w.record(n, rendered, &symtab.Type{ID: id})
}

func (w *Walker) visitString(n parsetree.Node) (string, *symtab.Type, error) {
	return w.record(n, w.emitter.QuoteString(unquoteJS(n.Text())), &symtab.Type{ID: symtab.String})
}

// unquoteJS strips a JavaScript string literal's surrounding quote
// (single or double) and resolves its escape sequences. The surface
// grammar accepts either quote character; Go's strconv.Unquote only
// accepts double quotes, so a single-quoted literal is re-escaped into
// double-quoted form first and then handed to it.
func unquoteJS(text string) string {
	if len(text) < 2 {
		return text
	}
	quote := text[0]
	if quote != '\'' && quote != '"' {
		return text
	}
	if quote == '"' {
		if u, err := strconv.Unquote(text); err == nil {
			return u
		}
		return text[1 : len(text)-1]
	}
	body := text[1 : len(text)-1]
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(body); i++ {
		switch {
		case body[i] == '\\' && i+1 < len(body) && body[i+1] == '\'':
			b.WriteByte('\'')
			i++
		case body[i] == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(body[i])
		}
	}
	b.WriteByte('"')
	if u, err := strconv.Unquote(b.String()); err == nil {
		return u
	}
	return body
}

func (w *Walker) visitBoolean(n parsetree.Node) (string, *symtab.Type, error) {
	return w.record(n, w.emitter.Bool(n.Text() == "true"), &symtab.Type{ID: symtab.Boolean})
}

func (w *Walker) visitRegex(n parsetree.Node) (string, *symtab.Type, error) {
	text, err := w.emitter.RegexLiteral(n)
	if err != nil {
		return "", nil, err
	}
	return w.record(n, text, &symtab.Type{ID: symtab.RegexLit})
}

func (w *Walker) visitObject(n parsetree.Node) (string, *symtab.Type, error) {
	var fields []emit.Field
	for _, c := range parsetree.Children(n) {
		if c == nil || c.Kind() != parsetree.KindProperty {
			continue
		}
		key, value, err := w.visitProperty(c)
		if err != nil {
			return "", nil, err
		}
		fields = append(fields, emit.Field{Key: key, Value: value})
	}
	text, err := w.emitter.ObjectLiteral(fields)
	if err != nil {
		return "", nil, err
	}
	return w.record(n, text, &symtab.Type{ID: symtab.Object})
}

// visitProperty renders one {key: value} pair's key as a target string
// literal — both an identifier key and a string key become a BSON
// document field name, a string in both target representations — and its
// value as an ordinary translated expression.
func (w *Walker) visitProperty(n parsetree.Node) (key, value string, err error) {
	children := nonPunctuation(n)
	if len(children) != 2 {
		return "", "", xlerr.Generic("malformed object property", nil, n.Pos())
	}
	keyNode, valueNode := children[0], children[1]
	switch keyNode.Kind() {
	case parsetree.KindIdentifier:
		key = w.emitter.QuoteString(keyNode.Text())
	case parsetree.KindString:
		key = w.emitter.QuoteString(unquoteJS(keyNode.Text()))
	default:
		return "", "", xlerr.Generic("unsupported object key form: "+string(keyNode.Kind()), nil, keyNode.Pos())
	}
	value, _, err = w.visit(valueNode)
	if err != nil {
		return "", "", err
	}
	return key, value, nil
}

func (w *Walker) visitArray(n parsetree.Node) (string, *symtab.Type, error) {
	var elements []string
	for _, c := range parsetree.Children(n) {
		if c == nil || c.Kind() == parsetree.KindPunctuation {
			continue
		}
		text, _, err := w.visit(c)
		if err != nil {
			return "", nil, err
		}
		elements = append(elements, text)
	}
	text, err := w.emitter.ArrayLiteral(elements)
	if err != nil {
		return "", nil, err
	}
	return w.record(n, text, &symtab.Type{ID: symtab.Array})
}

// visitIdentifier looks the name up in the symbol table. An unknown name
// is a reference error. A known name with a Template renders through it;
// otherwise the identifier stands for itself — the common case for a bare
// constructor/function name about to be used as a call's callee.
func (w *Walker) visitIdentifier(n parsetree.Node) (string, *symtab.Type, error) {
	typ, ok := w.table.Lookup(n.Text())
	if !ok {
		return "", nil, xlerr.Reference(n.Text(), n.Pos())
	}
	if typ.Template != nil {
		return w.record(n, typ.Template(), typ)
	}
	return w.record(n, n.Text(), typ)
}

// visitMember resolves `left.name` by visiting the left side and looking
// name up in its Type's attribute map. A missing attribute on a
// recognized host value is an attribute error; a missing attribute on an
// ordinary value falls through to raw `lhs.name` emission typed
// _undefined. A found attribute with a Template renders through it;
// otherwise it falls through to raw emission carrying the attribute's own
// Type, for a subsequent Call/New node to invoke.
func (w *Walker) visitMember(n parsetree.Node) (string, *symtab.Type, error) {
	children := nonPunctuation(n)
	if len(children) != 2 {
		return "", nil, xlerr.Generic("malformed member expression", nil, n.Pos())
	}
	left, nameNode := children[0], children[1]
	lhsText, lhsType, err := w.visit(left)
	if err != nil {
		return "", nil, err
	}
	name := nameNode.Text()
	attr, ok := lhsType.Lookup(name)
	if !ok {
		if isHostType(lhsType.ID) {
			return "", nil, xlerr.Attribute(left.Text(), name, n.Pos())
		}
		return w.record(n, lhsText+"."+name, &symtab.Type{ID: symtab.Undefined})
	}
	if attr.Template != nil {
		return w.record(n, attr.Template(), attr)
	}
	return w.record(n, lhsText+"."+name, attr)
}

// isHostType reports whether id names one of the recognized JavaScript
// builtins or BSON classes rather than a plain literal kind — literal
// kind IDs are always the underscore-prefixed sentinels declared in
// pkg/symtab.
func isHostType(id symtab.TypeID) bool {
	return !strings.HasPrefix(string(id), "_")
}

// visitInvocation handles both `new Callee(args)` and `Callee(args)`: they
// share dispatch, since none of this translator's registered hooks
// distinguishes how it was invoked (spec's "target-specific emitNew"
// escape hatch is unused by either target manifest).
func (w *Walker) visitInvocation(n parsetree.Node) (string, *symtab.Type, error) {
	children := nonPunctuation(n)
	if len(children) != 2 {
		return "", nil, xlerr.Generic("malformed call expression", nil, n.Pos())
	}
	calleeNode, argsNode := children[0], children[1]
	calleeText, calleeType, err := w.visit(calleeNode)
	if err != nil {
		return "", nil, err
	}
	if calleeType.Callable == symtab.NotCallable {
		return "", nil, xlerr.NotCallable(calleeText, string(calleeType.ID), n.Pos())
	}

	argNodes := nonPunctuation(argsNode)
	argsText := make([]string, len(argNodes))
	observed := make([]symtab.TypeID, len(argNodes))
	for i, a := range argNodes {
		text, typ, err := w.visit(a)
		if err != nil {
			return "", nil, err
		}
		argsText[i] = text
		observed[i] = typ.ID
	}

	// Date/ISODate's arity is data-dependent (0, 1, or 2+ positional args,
	// of which only the first seven are read) and is handled by its own
	// hook and sandbox.Evaluate rather than a fixed schema — every other
	// registered Type still goes through the generic checker before its
	// hook ever runs.
	if calleeType.ID != "Date" {
		if err := checkArgs(calleeText, calleeType, observed, n.Pos()); err != nil {
			return "", nil, err
		}
	}

	resultType := calleeType.Instance
	if resultType == nil {
		resultType = calleeType
	}

	if hook, ok := w.emitter.Hook(calleeType.ID); ok {
		text, err := hook(w.emitter, n, argsText)
		if err != nil {
			return "", nil, err
		}
		return w.record(n, text, resultType)
	}

	prefix := ""
	if n.Kind() == parsetree.KindNew {
		prefix = w.emitter.New()
	}
	text := fmt.Sprintf("%s%s(%s)", prefix, calleeText, strings.Join(argsText, ", "))
	return w.record(n, text, resultType)
}

// checkArgs validates observed (each argument's resolved TypeID, in
// order) against typ's declared slot schema, reporting only the first
// failure: too many arguments or too few required ones is an arity
// error; a slot whose accepted set does not contain the observed type is
// a type error naming the slot's expected types, the observed type, and
// the argument's index. An omitted trailing optional argument is not an
// error.
func checkArgs(name string, typ *symtab.Type, observed []symtab.TypeID, pos parsetree.Position) error {
	lo, hi := typ.Arity()
	got := len(observed)
	if got > hi || got < lo {
		return xlerr.Arity(name, arityText(lo, hi), got, pos)
	}
	for i, obs := range observed {
		slot := typ.Args[i]
		if !slot.Matches(obs) {
			expected := make([]string, len(slot.Accept))
			for j, id := range slot.Accept {
				expected[j] = string(id)
			}
			return xlerr.Type(name, i, expected, string(obs), pos)
		}
	}
	return nil
}

func arityText(lo, hi int) string {
	if lo == hi {
		return fmt.Sprintf("exactly %d", lo)
	}
	if hi-lo == 1 {
		return fmt.Sprintf("%d or %d", lo, hi)
	}
	return fmt.Sprintf("%d to %d", lo, hi)
}

func nonPunctuation(n parsetree.Node) []parsetree.Node {
	var out []parsetree.Node
	for _, c := range parsetree.Children(n) {
		if c != nil && c.Kind() != parsetree.KindPunctuation {
			out = append(out, c)
		}
	}
	return out
}
