package emit

import (
	"fmt"
	"strings"

	"mongoxlate/pkg/parsetree"
	"mongoxlate/pkg/sandbox"
	"mongoxlate/pkg/symtab"
	"mongoxlate/pkg/xlerr"
)

// pythonBinarySubtypes maps a BSON binary subtype byte to its pymongo
// bson.binary constant, per scenario seed 6 (subtype 4 -> UUID_SUBTYPE).
var pythonBinarySubtypes = map[byte]string{
	0:   "bson.binary.BINARY_SUBTYPE",
	1:   "bson.binary.FUNCTION_SUBTYPE",
	2:   "bson.binary.OLD_BINARY_SUBTYPE",
	3:   "bson.binary.OLD_UUID_SUBTYPE",
	4:   "bson.binary.UUID_SUBTYPE",
	5:   "bson.binary.MD5_SUBTYPE",
	7:   "bson.binary.COLUMN_SUBTYPE",
	8:   "bson.binary.SENSITIVE_SUBTYPE",
	128: "bson.binary.USER_DEFINED_SUBTYPE",
}

func pythonHooks() map[symtab.TypeID]HostHook {
	return map[symtab.TypeID]HostHook{
		"Code":          pyCode,
		"ObjectId":      pyObjectID,
		"Binary":        pyBinary,
		"Double":        pyDouble,
		"Long":          pyLong,
		"Number":        pyNumber,
		"Int32":         pyInt32,
		"Date":          pyDate,
		"Timestamp":     pyTimestamp,
		"BSONRegExp":    pyBSONRegExp,
		"DBRef":         pyDBRef,
		"Decimal128":    pyDecimal128,
		"Object.create": pyObjectCreate,
		"MaxKey":        pySingleton("MaxKey()"),
		"MinKey":        pySingleton("MinKey()"),
		"Symbol":        pySymbol,
		"RegExp":        pyRegExpConstructor,
	}
}

func pySingleton(text string) HostHook {
	return func(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
		return text, nil
	}
}

func pyCode(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	switch len(argsText) {
	case 1:
		return fmt.Sprintf("Code(%s)", argsText[0]), nil
	case 2:
		return fmt.Sprintf("Code(%s, %s)", argsText[0], argsText[1]), nil
	default:
		return "", xlerr.Arity("Code", "1 or 2", len(argsText), call.Pos())
	}
}

func pyObjectID(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) == 0 {
		return "ObjectId()", nil
	}
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "ObjectId()", nil
	}
	return fmt.Sprintf("ObjectId(%s)", e.QuoteString(v.(sandbox.ObjectIDValue).Hex)), nil
}

func pyBinary(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("Binary requires a data argument", nil, call.Pos())
	}
	bin := v.(sandbox.BinaryValue)
	dataExpr := fmt.Sprintf("bytes(%s, 'utf-8')", argsText[0])
	if len(argsText) == 1 {
		return fmt.Sprintf("Binary(%s)", dataExpr), nil
	}
	subtype, ok := pythonBinarySubtypes[bin.Subtype]
	if !ok {
		subtype = fmt.Sprintf("%d", bin.Subtype)
	}
	return fmt.Sprintf("Binary(%s, %s)", dataExpr, subtype), nil
}

func pyDouble(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) != 1 {
		return "", xlerr.Arity("Double", "exactly 1", len(argsText), call.Pos())
	}
	return fmt.Sprintf("float(%s)", argsText[0]), nil
}

func pyLong(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("Long/NumberLong requires at least one argument", nil, call.Pos())
	}
	return fmt.Sprintf("Int64(%s)", v.(sandbox.LongValue).Decimal), nil
}

func pyNumber(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) != 1 {
		return "", xlerr.Arity("Number", "exactly 1", len(argsText), call.Pos())
	}
	return fmt.Sprintf("int(%s)", argsText[0]), nil
}

func pyInt32(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("Int32/NumberInt requires exactly one argument", nil, call.Pos())
	}
	return fmt.Sprintf("Int32(%d)", v.(sandbox.Int32Value).Val), nil
}

func pyDate(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) == 0 {
		return "datetime.datetime.utcnow()", nil
	}
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "datetime.datetime.utcnow()", nil
	}
	d := v.(sandbox.DateValue)
	if d.Hour == 0 && d.Minute == 0 && d.Second == 0 && d.Ms == 0 {
		return fmt.Sprintf("datetime.datetime(%d, %d, %d)", d.Year, d.Month, d.Day), nil
	}
	return fmt.Sprintf("datetime.datetime(%d, %d, %d, %d, %d, %d, %d)",
		d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second, d.Ms*1000), nil
}

func pyTimestamp(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) != 2 {
		return "", xlerr.Arity("Timestamp", "exactly 2", len(argsText), call.Pos())
	}
	return fmt.Sprintf("Timestamp(%s, %s)", argsText[0], argsText[1]), nil
}

func pyBSONRegExp(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("BSONRegExp requires a pattern argument", nil, call.Pos())
	}
	rv := v.(sandbox.RegexValue)
	flags, err := e.BSONRegex(rv.Flags, call.Pos())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Regex(%s, %s)", e.QuoteString(rv.Source), e.QuoteString(flags)), nil
}

func pyRegExpConstructor(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("RegExp requires a pattern argument", nil, call.Pos())
	}
	return e.RegexConstruct(v.(sandbox.RegexValue))
}

func pyDBRef(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) < 2 || len(argsText) > 3 {
		return "", xlerr.Arity("DBRef", "2 or 3", len(argsText), call.Pos())
	}
	return fmt.Sprintf("DBRef(%s)", strings.Join(argsText, ", ")), nil
}

func pyDecimal128(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("Decimal128/NumberDecimal requires exactly one argument", nil, call.Pos())
	}
	digits := v.(sandbox.DecimalValue).Digits
	return fmt.Sprintf("Decimal128(Decimal(%s))", e.QuoteString(digits)), nil
}

func pyObjectCreate(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) != 1 {
		return "", xlerr.Arity("Object.create", "exactly 1", len(argsText), call.Pos())
	}
	return argsText[0], nil
}

func pySymbol(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) != 1 {
		return "", xlerr.Arity("Symbol", "exactly 1", len(argsText), call.Pos())
	}
	return fmt.Sprintf("Symbol(%s)", argsText[0]), nil
}
