// Package xlerr is the translator's Error Reporter. Every other package in
// this module raises translation failures exclusively through the
// constructors here, so an embedder can always tell the five error kinds
// apart with errors.As instead of parsing message text.
package xlerr

import (
	"fmt"

	"mongoxlate/pkg/parsetree"
)

// ArityError reports that a recognized call was given the wrong number of
// arguments.
type ArityError struct {
	Callee string
	Want   string // human-readable arity, e.g. "1 or 2", "exactly 2"
	Got    int
	Pos    parsetree.Position
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %s argument(s), got %d", e.Callee, e.Want, e.Got)
}

// TypeError reports that an argument failed its declared type slot, or that
// a non-callable value was invoked.
type TypeError struct {
	Context  string
	Index    int // -1 when not argument-specific (e.g. "not callable")
	Expected []string
	Observed string
	Pos      parsetree.Position
}

func (e *TypeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: expected callable, got %s", e.Context, e.Observed)
	}
	return fmt.Sprintf("%s: argument %d: expected one of %v, got %s", e.Context, e.Index, e.Expected, e.Observed)
}

// ReferenceError reports that an identifier is not in the symbol table.
type ReferenceError struct {
	Name string
	Pos  parsetree.Position
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("reference error: %q is not defined", e.Name)
}

// AttributeError reports that an attribute was accessed on a recognized
// BSON value that does not declare it.
type AttributeError struct {
	Root      string
	Attribute string
	Pos       parsetree.Position
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute error: %s has no attribute %q", e.Root, e.Attribute)
}

// GenericError wraps any other failure: sandbox evaluation failures,
// unsupported regex flags, malformed compile-time constants.
type GenericError struct {
	Message string
	Cause   error
	Pos     parsetree.Position
}

func (e *GenericError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GenericError) Unwrap() error { return e.Cause }

// Arity builds an *ArityError.
func Arity(callee, want string, got int, pos parsetree.Position) error {
	return &ArityError{Callee: callee, Want: want, Got: got, Pos: pos}
}

// Type builds a *TypeError for a mismatched argument.
func Type(context string, index int, expected []string, observed string, pos parsetree.Position) error {
	return &TypeError{Context: context, Index: index, Expected: expected, Observed: observed, Pos: pos}
}

// NotCallable builds a *TypeError for an attempt to call a non-callable
// value.
func NotCallable(context, observed string, pos parsetree.Position) error {
	return &TypeError{Context: context, Index: -1, Observed: observed, Pos: pos}
}

// Reference builds a *ReferenceError.
func Reference(name string, pos parsetree.Position) error {
	return &ReferenceError{Name: name, Pos: pos}
}

// Attribute builds an *AttributeError.
func Attribute(root, attribute string, pos parsetree.Position) error {
	return &AttributeError{Root: root, Attribute: attribute, Pos: pos}
}

// Generic builds a *GenericError, optionally wrapping an underlying cause.
func Generic(message string, cause error, pos parsetree.Position) error {
	return &GenericError{Message: message, Cause: cause, Pos: pos}
}
