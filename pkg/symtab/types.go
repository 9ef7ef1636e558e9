// Package symtab is the translator's Symbol Table: every recognized
// top-level identifier, its Type, and the argument schema and attribute map
// that let the walker validate calls and resolve member access without
// re-deriving any of that from the parse tree.
package symtab

// TypeID is a Type's stable name, e.g. "_string", "_object", "Code",
// "ObjectId". The walker's per-target emit hooks are keyed by TypeID.
type TypeID string

const (
	String    TypeID = "_string"
	Integer   TypeID = "_integer"
	Decimal   TypeID = "_decimal"
	Hex       TypeID = "_hex"
	Octal     TypeID = "_octal"
	Boolean   TypeID = "_boolean"
	Null      TypeID = "_null"
	Undefined TypeID = "_undefined"
	RegexLit  TypeID = "_regex"
	Object    TypeID = "_object"
	Array     TypeID = "_array"

	// Numeric is the sentinel union matching any of Integer, Decimal, Hex,
	// or Octal at the slot level. It is never the ID of an actual Type
	// value — only Slot.Matches expands it.
	Numeric TypeID = "_numeric"
)

// numericMembers is the set _numeric expands to at the slot level.
var numericMembers = map[TypeID]bool{
	Integer: true,
	Decimal: true,
	Hex:     true,
	Octal:   true,
}

// Callable classifies how a Type may be invoked.
type Callable int

const (
	NotCallable Callable = iota
	Function
	Constructor
)

// Slot is one position in a constructor or function's argument schema: a
// non-empty set of acceptable TypeIDs, optionally marked as omittable.
type Slot struct {
	Accept       []TypeID
	AllowOptional bool
}

// Matches reports whether an argument of type observed satisfies this slot,
// expanding Numeric to its member set.
func (s Slot) Matches(observed TypeID) bool {
	for _, want := range s.Accept {
		if want == Numeric {
			if numericMembers[observed] {
				return true
			}
			continue
		}
		if want == observed {
			return true
		}
	}
	return false
}

// Req builds a required Slot accepting any of the given types.
func Req(accept ...TypeID) Slot {
	return Slot{Accept: accept}
}

// Opt builds an omittable Slot accepting any of the given types.
func Opt(accept ...TypeID) Slot {
	return Slot{Accept: accept, AllowOptional: true}
}

// Type is a tagged value in the symbol table: a stable ID, its callable
// kind, its argument schema (for callables), its attribute map (for member
// access), the Type produced when it is called, and an optional emission
// override for bare references or literal instances.
type Type struct {
	ID       TypeID
	Callable Callable
	Args     []Slot
	Attr     map[string]*Type
	Instance *Type
	// Template renders a bare reference to this Type (an identifier or a
	// zero-argument literal instance) directly to target text, bypassing
	// the emitter's generic identifier/call handling. Left nil when the
	// generic path is sufficient.
	Template func() string
}

// Arity reports the [lo, hi] bounds this Type's Args schema accepts.
func (t *Type) Arity() (lo, hi int) {
	for _, slot := range t.Args {
		hi++
		if !slot.AllowOptional {
			lo++
		}
	}
	return lo, hi
}

// Lookup resolves name in t's Attr map, matching spec.md §4.2's "walk up
// its type chain until the attribute is found or the chain ends" — for
// this translator that chain has exactly one link: a Type's own Attr map,
// since none of the recognized classes has attribute inheritance.
func (t *Type) Lookup(name string) (*Type, bool) {
	if t == nil || t.Attr == nil {
		return nil, false
	}
	attr, ok := t.Attr[name]
	return attr, ok
}
