// Package fixture builds parsetree.Node trees directly from Go values, with
// no parser involved at all — the same role fixtures_decode_node.go plays
// in the teacher codebase, decoding a compact literal description into AST
// nodes for its own test corpus. Every pkg/walker, pkg/sandbox, and
// pkg/emit test builds its input this way.
package fixture

import (
	"fmt"
	"strconv"

	"mongoxlate/pkg/parsetree"
)

// node is the concrete, in-memory parsetree.Node this package hands back.
type node struct {
	kind     parsetree.Kind
	text     string
	children []*node
	id       parsetree.NodeID
}

var nextID parsetree.NodeID

func newNode(kind parsetree.Kind, text string, children ...*node) *node {
	nextID++
	return &node{kind: kind, text: text, children: children, id: nextID}
}

func (n *node) Kind() parsetree.Kind    { return n.kind }
func (n *node) ChildCount() int         { return len(n.children) }
func (n *node) ID() parsetree.NodeID    { return n.id }
func (n *node) Pos() parsetree.Position { return parsetree.Position{} }

// Text returns the node's own text if it was given one (leaf nodes), else
// the concatenation of its children's text — an approximation of a real
// parser's whole-span source slice, good enough for the sandbox's error
// messages and for round-tripping a fragment it wants to describe.
func (n *node) Text() string {
	if n.text != "" || len(n.children) == 0 {
		return n.text
	}
	out := ""
	for _, c := range n.children {
		out += c.Text()
	}
	return out
}
func (n *node) Child(i int) parsetree.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func punct(text string) *node { return newNode(parsetree.KindPunctuation, text) }

// Ident builds an identifier reference node, e.g. Ident("ObjectId").
func Ident(name string) *node { return newNode(parsetree.KindIdentifier, name) }

// Str builds a string literal node from its unquoted Go value; Text()
// reproduces the double-quoted JavaScript spelling a real parser would hand
// back, escaping embedded quotes and backslashes.
func Str(value string) *node {
	return newNode(parsetree.KindString, strconv.Quote(value))
}

// RawString builds a string literal node from already-quoted source text,
// for tests that need to control the exact quote character or escaping.
func RawString(quoted string) *node {
	return newNode(parsetree.KindString, quoted)
}

// Int builds a decimal integer literal.
func Int(value int64) *node {
	return newNode(parsetree.KindNumber, strconv.FormatInt(value, 10))
}

// Decimal builds a decimal (fractional) number literal from raw source
// text, e.g. Decimal("3.14").
func Decimal(text string) *node { return newNode(parsetree.KindNumber, text) }

// Hex builds a hexadecimal integer literal from raw source text including
// its 0x/0X prefix, e.g. Hex("0x1F").
func Hex(text string) *node { return newNode(parsetree.KindNumber, text) }

// Octal builds an octal integer literal from raw source text including
// whatever prefix (0, 0o, 0O) the caller wants to exercise.
func Octal(text string) *node { return newNode(parsetree.KindNumber, text) }

// Bool builds a boolean literal.
func Bool(value bool) *node {
	if value {
		return newNode(parsetree.KindBoolean, "true")
	}
	return newNode(parsetree.KindBoolean, "false")
}

// Null builds a null literal.
func Null() *node { return newNode(parsetree.KindNull, "null") }

// Undefined builds an undefined literal.
func Undefined() *node { return newNode(parsetree.KindUndefined, "undefined") }

// Regex builds a regular-expression literal from its pattern and flags,
// e.g. Regex("foo", "gi") renders as /foo/gi.
func Regex(pattern, flags string) *node {
	return newNode(parsetree.KindRegex, fmt.Sprintf("/%s/%s", pattern, flags))
}

// Elision builds an array-literal hole, e.g. the middle slot of [1, , 3].
func Elision() *node { return newNode(parsetree.KindElision, "") }

// Pair builds a key/value property node for use inside Obj.
func Pair(key string, value *node) *node {
	return newNode(parsetree.KindProperty, "", Str(key), punct(":"), value)
}

// PairIdent builds a key/value property node whose key is an unquoted
// identifier, e.g. {x: 1}.
func PairIdent(key string, value *node) *node {
	return newNode(parsetree.KindProperty, "", Ident(key), punct(":"), value)
}

// Obj builds an object literal from an ordered list of Pair/PairIdent
// nodes.
func Obj(pairs ...*node) *node {
	children := []*node{punct("{")}
	for i, p := range pairs {
		if i > 0 {
			children = append(children, punct(","))
		}
		children = append(children, p)
	}
	children = append(children, punct("}"))
	return newNode(parsetree.KindObject, "", children...)
}

// Arr builds an array literal from an ordered list of element nodes.
func Arr(elements ...*node) *node {
	children := []*node{punct("[")}
	for i, e := range elements {
		if i > 0 {
			children = append(children, punct(","))
		}
		children = append(children, e)
	}
	children = append(children, punct("]"))
	return newNode(parsetree.KindArray, "", children...)
}

// Member builds a `left.name` attribute-access node.
func Member(left *node, name string) *node {
	return newNode(parsetree.KindMember, "", left, punct("."), Ident(name))
}

// Call builds a `callee(args...)` call expression.
func Call(callee *node, args ...*node) *node {
	return newNode(parsetree.KindCall, "", callee, arguments(args))
}

// New builds a `new callee(args...)` constructor call.
func New(callee *node, args ...*node) *node {
	return newNode(parsetree.KindNew, "", punct("new"), callee, arguments(args))
}

func arguments(args []*node) *node {
	children := []*node{punct("(")}
	for i, a := range args {
		if i > 0 {
			children = append(children, punct(","))
		}
		children = append(children, a)
	}
	children = append(children, punct(")"))
	return newNode(parsetree.KindArguments, "", children...)
}
