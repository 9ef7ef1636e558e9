package symtab

// Table is the immutable mapping from identifier name to Type built once at
// startup. Reads are the only operation available after construction —
// nothing in this module ever calls a setter on a Table past NewTable.
type Table struct {
	names map[string]*Type
}

// Lookup resolves name against the table.
func (t *Table) Lookup(name string) (*Type, bool) {
	typ, ok := t.names[name]
	return typ, ok
}

func instanceOf(id TypeID, attr map[string]*Type) *Type {
	return &Type{ID: id, Callable: NotCallable, Attr: attr}
}

// NewTable builds every recognized Type: JavaScript builtins (Date, RegExp,
// Object.create), the thirteen BSON classes named in spec.md §1, and the
// numeric shim aliases (NumberInt, NumberLong, NumberDecimal, ISODate).
func NewTable() *Table {
	names := make(map[string]*Type)

	// --- Code(code[, scope]) ---
	codeInstance := instanceOf("Code", nil)
	codeType := &Type{
		ID:       "Code",
		Callable: Constructor,
		Args:     []Slot{Req(String), Opt(Object)},
		Instance: codeInstance,
	}
	names["Code"] = codeType

	// --- ObjectId([hex]) ---
	objectIDInstance := instanceOf("ObjectId", map[string]*Type{
		"toString":    {ID: String, Callable: Function},
		"toHexString": {ID: String, Callable: Function},
	})
	objectIDType := &Type{
		ID:       "ObjectId",
		Callable: Constructor,
		Args:     []Slot{Opt(String)},
		Instance: objectIDInstance,
	}
	names["ObjectId"] = objectIDType

	// --- Binary(data[, subtype]) ---
	binaryInstance := instanceOf("Binary", nil)
	binaryType := &Type{
		ID:       "Binary",
		Callable: Constructor,
		Args:     []Slot{Req(String), Opt(Numeric)},
		Instance: binaryInstance,
	}
	names["Binary"] = binaryType

	// --- Double(x) ---
	doubleInstance := instanceOf("Double", nil)
	doubleType := &Type{
		ID:       "Double",
		Callable: Constructor,
		Args:     []Slot{Req(String, Numeric)},
		Instance: doubleInstance,
	}
	names["Double"] = doubleType

	// --- Long(...) / NumberLong(...), with fromBits/MAX_VALUE/MIN_VALUE/ZERO statics
	// and toString/toNumber/equals instance methods, per SPEC_FULL.md §1's
	// supplemented attribute chains.
	longInstance := instanceOf("Long", map[string]*Type{
		"toString": {ID: String, Callable: Function, Args: []Slot{Opt(Numeric)}},
		"toNumber": {ID: Integer, Callable: Function},
		"equals":   {ID: Boolean, Callable: Function, Args: []Slot{Req("Long")}},
	})
	longType := &Type{
		ID:       "Long",
		Callable: Constructor,
		Args:     []Slot{Req(String, Numeric), Opt(Numeric)},
		Instance: longInstance,
	}
	longType.Attr = map[string]*Type{
		"fromBits":  {ID: "Long", Callable: Function, Args: []Slot{Req(Numeric), Req(Numeric)}, Instance: longInstance},
		"MAX_VALUE": {ID: "Long", Callable: NotCallable, Template: func() string { return "9223372036854775807" }},
		"MIN_VALUE": {ID: "Long", Callable: NotCallable, Template: func() string { return "-9223372036854775808" }},
		"ZERO":      {ID: "Long", Callable: NotCallable, Template: func() string { return "0" }},
	}
	names["Long"] = longType
	names["NumberLong"] = longType

	// --- Int32(x) / NumberInt(x) ---
	int32Instance := instanceOf("Int32", nil)
	int32Type := &Type{
		ID:       "Int32",
		Callable: Constructor,
		Args:     []Slot{Req(String, Numeric)},
		Instance: int32Instance,
	}
	names["Int32"] = int32Type
	names["NumberInt"] = int32Type

	// --- MaxKey() / MinKey() ---
	maxKeyType := &Type{ID: "MaxKey", Callable: Constructor, Args: nil, Instance: instanceOf("MaxKey", nil)}
	minKeyType := &Type{ID: "MinKey", Callable: Constructor, Args: nil, Instance: instanceOf("MinKey", nil)}
	names["MaxKey"] = maxKeyType
	names["MinKey"] = minKeyType

	// --- Symbol(s) ---
	symbolType := &Type{
		ID:       "Symbol",
		Callable: Constructor,
		Args:     []Slot{Req(String)},
		Instance: instanceOf("Symbol", nil),
	}
	names["Symbol"] = symbolType

	// --- Timestamp(low, high) ---
	timestampType := &Type{
		ID:       "Timestamp",
		Callable: Constructor,
		Args:     []Slot{Req(Integer), Req(Integer)},
		Instance: instanceOf("Timestamp", nil),
	}
	names["Timestamp"] = timestampType

	// --- DBRef(ns, oid[, db]) ---
	dbRefType := &Type{
		ID:       "DBRef",
		Callable: Constructor,
		Args:     []Slot{Req(String), Req(Object), Opt(String)},
		Instance: instanceOf("DBRef", nil),
	}
	names["DBRef"] = dbRefType

	// --- BSONRegExp(pattern[, flags]) ---
	bsonRegexType := &Type{
		ID:       "BSONRegExp",
		Callable: Constructor,
		Args:     []Slot{Req(String), Opt(String)},
		Instance: instanceOf("BSONRegExp", nil),
	}
	names["BSONRegExp"] = bsonRegexType

	// --- Decimal128(str) / NumberDecimal(str) ---
	decimal128Type := &Type{
		ID:       "Decimal128",
		Callable: Constructor,
		Args:     []Slot{Req(String)},
		Instance: instanceOf("Decimal128", nil),
	}
	names["Decimal128"] = decimal128Type
	names["NumberDecimal"] = decimal128Type

	// --- Date() / Date(...) / ISODate(str) ---
	// Arity is data-dependent (0, 1, or 2+ positional args, of which only
	// the first seven are read) and is handled by pkg/emit's Date hooks and
	// sandbox.Evaluate rather than through a fixed Args schema — pkg/walker
	// skips its generic argument checker for this one Type.
	dateType := &Type{
		ID:       "Date",
		Callable: Constructor,
		Instance: instanceOf("Date", map[string]*Type{
			"toISOString": {ID: String, Callable: Function},
			"getTime":     {ID: Integer, Callable: Function},
		}),
	}
	names["Date"] = dateType
	names["ISODate"] = dateType

	// --- RegExp(pattern[, flags]) ---
	regExpType := &Type{
		ID:       "RegExp",
		Callable: Constructor,
		Args:     []Slot{Req(String), Opt(String)},
		Instance: instanceOf("RegExp", nil),
	}
	names["RegExp"] = regExpType

	// --- Object.create(obj) ---
	// create's ID is the dispatch tag "Object.create" (matching pkg/emit's
	// hook map key), distinct from Instance, the _object type its call
	// produces — the walker resolves member access before ever consulting
	// this ID, so the dot in the tag is never itself looked up as an
	// identifier.
	objectType := &Type{
		ID:       "Object",
		Callable: NotCallable,
		Attr: map[string]*Type{
			"create": {ID: "Object.create", Callable: Function, Args: []Slot{Req(Object)}, Instance: &Type{ID: Object}},
		},
	}
	names["Object"] = objectType

	// --- Number(x) ---
	// ID is the dispatch tag "Number" (matching pkg/emit's hook map key),
	// distinct from Instance, which is the _integer type its call produces
	// — the same ID/Instance split every Constructor entry above uses.
	names["Number"] = &Type{
		ID:       "Number",
		Callable: Function,
		Args:     []Slot{Req(String, Numeric)},
		Instance: &Type{ID: Integer},
	}

	return &Table{names: names}
}
