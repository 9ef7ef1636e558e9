package tsjs

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"mongoxlate/pkg/parsetree"
)

// node adapts a *sitter.Node to parsetree.Node. Text slices the shared
// source buffer by byte range rather than calling the tree-sitter
// binding's own text-extraction helper, mirroring the teacher's own
// sliceContent pattern for pulling a node's source span out of a byte
// slice it already holds.
type node struct {
	n      *sitter.Node
	source []byte
}

func (nd *node) Kind() parsetree.Kind {
	kind := nd.n.Kind()
	switch kind {
	case "true", "false":
		return parsetree.KindBoolean
	case "null":
		return parsetree.KindNull
	case "property_identifier":
		return parsetree.KindIdentifier
	case "identifier":
		if nd.Text() == "undefined" {
			return parsetree.KindUndefined
		}
		return parsetree.KindIdentifier
	}
	if !nd.n.IsNamed() {
		return parsetree.KindPunctuation
	}
	return parsetree.Kind(kind)
}

func (nd *node) ChildCount() int { return int(nd.n.ChildCount()) }

func (nd *node) Child(i int) parsetree.Node {
	if i < 0 || i >= nd.ChildCount() {
		return nil
	}
	c := nd.n.Child(uint(i))
	if c == nil {
		return nil
	}
	return &node{n: c, source: nd.source}
}

func (nd *node) Text() string {
	return sliceContent(nd.source, nd.n.StartByte(), nd.n.EndByte())
}

func sliceContent(source []byte, start, end uint) string {
	if int(end) > len(source) {
		end = uint(len(source))
	}
	return string(source[start:end])
}

// ID packs the node's byte range into a single comparable value —
// tree-sitter hands back Node values rather than stable pointers, so byte
// range is this parse's notion of node identity, unique because no two
// nodes of one parse share a span.
func (nd *node) ID() parsetree.NodeID {
	return parsetree.NodeID(nd.n.StartByte())<<32 | parsetree.NodeID(nd.n.EndByte())
}

func (nd *node) Pos() parsetree.Position {
	p := nd.n.StartPosition()
	return parsetree.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}
