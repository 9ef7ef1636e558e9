// Package tsjs is the external parser: it feeds source text to
// tree-sitter loaded with the tree-sitter-javascript grammar and adapts
// the resulting concrete syntax tree to parsetree.Node, the only surface
// pkg/walker and pkg/sandbox depend on. This mirrors the teacher's own
// tree-sitter-able grammar binding (see
// parser/tree-sitter-able/bindings/go/binding_test.go's
// `tree_sitter.NewLanguage(...)` call) applied to a grammar this module
// did not have to author.
package tsjs

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"mongoxlate/pkg/parsetree"
)

// Parser wraps a tree-sitter parser preloaded with the JavaScript
// grammar. It is not safe for concurrent use; pkg/translate allocates
// one per translation.
type Parser struct {
	inner *sitter.Parser
}

// New builds a Parser loaded with the tree-sitter-javascript grammar.
func New() (*Parser, error) {
	p := sitter.NewParser()
	if err := p.SetLanguage(sitter.NewLanguage(tsjavascript.Language())); err != nil {
		return nil, fmt.Errorf("tsjs: loading javascript grammar: %w", err)
	}
	return &Parser{inner: p}, nil
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() { p.inner.Close() }

// Parse parses source as a single expression and returns its root node.
// The release func must be called once the caller is done with the
// returned node and everything reachable from it — tree-sitter's Node
// values are views into memory owned by the parse tree, invalid once it
// is closed.
//
// An object or array literal at the start of a JavaScript statement
// parses as a block, not an expression, so source is wrapped as
// `(source)` before parsing and the synthetic parenthesized expression
// is peeled back off before this function returns, keeping that
// wrapping trick invisible to every caller.
func (p *Parser) Parse(source string) (root parsetree.Node, release func(), err error) {
	wrapped := []byte("(" + source + ")")
	tree := p.inner.Parse(wrapped, nil)
	if tree == nil {
		return nil, nil, fmt.Errorf("tsjs: parser produced no tree for %q", source)
	}
	top := tree.RootNode()
	if top.HasError() {
		tree.Close()
		return nil, nil, fmt.Errorf("tsjs: syntax error in %q", source)
	}
	inner, err := unwrapShell(top)
	if err != nil {
		tree.Close()
		return nil, nil, err
	}
	return &node{n: inner, source: wrapped}, tree.Close, nil
}

// unwrapShell descends program -> expression_statement ->
// parenthesized_expression -> the expression the caller actually wrote.
func unwrapShell(program *sitter.Node) (*sitter.Node, error) {
	stmt := firstNamedChild(program)
	if stmt == nil || stmt.Kind() != "expression_statement" {
		return nil, fmt.Errorf("tsjs: expected a single expression statement")
	}
	paren := firstNamedChild(stmt)
	if paren == nil || paren.Kind() != "parenthesized_expression" {
		return nil, fmt.Errorf("tsjs: expected a parenthesized expression")
	}
	inner := firstNamedChild(paren)
	if inner == nil {
		return nil, fmt.Errorf("tsjs: empty expression")
	}
	return inner, nil
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	if n == nil || n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}
