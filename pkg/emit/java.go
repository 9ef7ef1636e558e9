package emit

import (
	"fmt"
	"strings"
	"time"

	"mongoxlate/pkg/parsetree"
	"mongoxlate/pkg/sandbox"
	"mongoxlate/pkg/symtab"
	"mongoxlate/pkg/xlerr"
)

// javaBinarySubtypes maps a BSON binary subtype byte to its
// org.bson.BsonBinarySubType constant.
var javaBinarySubtypes = map[byte]string{
	0:   "BsonBinarySubType.BINARY",
	1:   "BsonBinarySubType.FUNCTION",
	2:   "BsonBinarySubType.OLD_BINARY",
	3:   "BsonBinarySubType.UUID_LEGACY",
	4:   "BsonBinarySubType.UUID_STANDARD",
	5:   "BsonBinarySubType.MD5",
	7:   "BsonBinarySubType.COLUMN",
	8:   "BsonBinarySubType.SENSITIVE",
	128: "BsonBinarySubType.USER_DEFINED",
}

func javaHooks() map[symtab.TypeID]HostHook {
	return map[symtab.TypeID]HostHook{
		"Code":          javaCode,
		"ObjectId":      javaObjectID,
		"Binary":        javaBinary,
		"Double":        javaDouble,
		"Long":          javaLong,
		"Number":        javaNumber,
		"Int32":         javaInt32,
		"Date":          javaDate,
		"Timestamp":     javaTimestamp,
		"BSONRegExp":    javaBSONRegExp,
		"DBRef":         javaDBRef,
		"Decimal128":    javaDecimal128,
		"Object.create": javaObjectCreate,
		"MaxKey":        javaSingleton("new MaxKey()"),
		"MinKey":        javaSingleton("new MinKey()"),
		"Symbol":        javaSymbol,
		"RegExp":        javaRegExpConstructor,
	}
}

func javaSingleton(text string) HostHook {
	return func(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
		return text, nil
	}
}

func javaCode(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	switch len(argsText) {
	case 1:
		return fmt.Sprintf("new Code(%s)", argsText[0]), nil
	case 2:
		return fmt.Sprintf("new CodeWithScope(%s, %s)", argsText[0], argsText[1]), nil
	default:
		return "", xlerr.Arity("Code", "1 or 2", len(argsText), call.Pos())
	}
}

func javaObjectID(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) == 0 {
		return "new ObjectId()", nil
	}
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "new ObjectId()", nil
	}
	return fmt.Sprintf("new ObjectId(%s)", e.QuoteString(v.(sandbox.ObjectIDValue).Hex)), nil
}

func javaBinary(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("Binary requires a data argument", nil, call.Pos())
	}
	bin := v.(sandbox.BinaryValue)
	dataExpr := fmt.Sprintf("%s.getBytes()", argsText[0])
	if len(argsText) == 1 {
		return fmt.Sprintf("new Binary(%s)", dataExpr), nil
	}
	subtype, ok := javaBinarySubtypes[bin.Subtype]
	if !ok {
		subtype = fmt.Sprintf("(byte) %d", bin.Subtype)
	}
	return fmt.Sprintf("new Binary(%s, %s)", subtype, dataExpr), nil
}

func javaDouble(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) != 1 {
		return "", xlerr.Arity("Double", "exactly 1", len(argsText), call.Pos())
	}
	return fmt.Sprintf("new Double(%s)", argsText[0]), nil
}

func javaLong(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("Long/NumberLong requires at least one argument", nil, call.Pos())
	}
	return fmt.Sprintf("new java.lang.Long(%s)", e.QuoteString(v.(sandbox.LongValue).Decimal)), nil
}

func javaNumber(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) != 1 {
		return "", xlerr.Arity("Number", "exactly 1", len(argsText), call.Pos())
	}
	return fmt.Sprintf("new Integer(%s)", argsText[0]), nil
}

func javaInt32(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("Int32/NumberInt requires exactly one argument", nil, call.Pos())
	}
	return fmt.Sprintf("new Integer(%d)", v.(sandbox.Int32Value).Val), nil
}

func javaDate(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) == 0 {
		return "new java.util.Date()", nil
	}
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "new java.util.Date()", nil
	}
	d := v.(sandbox.DateValue)
	millis := time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, d.Ms*1_000_000, time.UTC).UnixMilli()
	return fmt.Sprintf("new java.util.Date(%dL)", millis), nil
}

func javaTimestamp(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) != 2 {
		return "", xlerr.Arity("Timestamp", "exactly 2", len(argsText), call.Pos())
	}
	return fmt.Sprintf("new BsonTimestamp(%s, %s)", argsText[0], argsText[1]), nil
}

func javaBSONRegExp(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
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
	return fmt.Sprintf("new BsonRegularExpression(%s, %s)", e.QuoteString(rv.Source), e.QuoteString(flags)), nil
}

func javaRegExpConstructor(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("RegExp requires a pattern argument", nil, call.Pos())
	}
	return e.RegexConstruct(v.(sandbox.RegexValue))
}

func javaDBRef(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) < 2 || len(argsText) > 3 {
		return "", xlerr.Arity("DBRef", "2 or 3", len(argsText), call.Pos())
	}
	return fmt.Sprintf("new DBRef(%s)", strings.Join(argsText, ", ")), nil
}

func javaDecimal128(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	v, ok, err := sandbox.Evaluate(call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", xlerr.Generic("Decimal128/NumberDecimal requires exactly one argument", nil, call.Pos())
	}
	digits := v.(sandbox.DecimalValue).Digits
	return fmt.Sprintf("Decimal128.parse(%s)", e.QuoteString(digits)), nil
}

func javaObjectCreate(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) != 1 {
		return "", xlerr.Arity("Object.create", "exactly 1", len(argsText), call.Pos())
	}
	return argsText[0], nil
}

func javaSymbol(e *Emitter, call parsetree.Node, argsText []string) (string, error) {
	if len(argsText) != 1 {
		return "", xlerr.Arity("Symbol", "exactly 1", len(argsText), call.Pos())
	}
	return fmt.Sprintf("new Symbol(%s)", argsText[0]), nil
}
