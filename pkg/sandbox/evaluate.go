package sandbox

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"mongoxlate/pkg/numlit"
	"mongoxlate/pkg/parsetree"
	"mongoxlate/pkg/xlerr"
)

// Evaluate attempts to fold a recognized constructor or literal call into a
// canonical Value. ok is false when the call is legitimate but cannot be
// reduced to a compile-time constant (a zero-argument ObjectId or Date,
// whose value depends on the moment of evaluation) — callers fall back to
// emitting a runtime constructor call in the target language rather than a
// literal. err is non-nil only when the call was recognized but its
// arguments could not be folded (a malformed hex string, an unparsable
// date), which is always a translation failure.
func Evaluate(call parsetree.Node) (v Value, ok bool, err error) {
	name := calleeName(call)
	args := callArgs(call)

	switch name {
	case "ObjectId":
		return evalObjectID(args, call.Pos())
	case "fromBits":
		return evalLong(args, call.Pos())
	case "Binary":
		return evalBinary(args, call.Pos())
	case "Long", "NumberLong":
		return evalLong(args, call.Pos())
	case "Int32", "NumberInt":
		return evalInt32(args, call.Pos())
	case "Decimal128", "NumberDecimal":
		return evalDecimal(args, call.Pos())
	case "Date", "ISODate":
		return evalDate(args, call.Pos())
	case "RegExp", "BSONRegExp":
		return evalRegex(args, call.Pos())
	case "Double":
		return evalDouble(args, call.Pos())
	default:
		return nil, false, nil
	}
}

// EvaluateLiteral folds a bare regex literal node (/pattern/flags), used
// when the surface expression is a RegExp literal rather than a `new
// RegExp(...)` call.
func EvaluateLiteral(n parsetree.Node) (RegexValue, error) {
	text := n.Text()
	last := strings.LastIndex(text, "/")
	if !strings.HasPrefix(text, "/") || last <= 0 {
		return RegexValue{}, xlerr.Generic(fmt.Sprintf("malformed regex literal %q", text), nil, n.Pos())
	}
	source := text[1:last]
	flags := sortFlags(text[last+1:])
	return RegexValue{Source: source, Flags: flags}, nil
}

// calleeName extracts the identifier a call or new-expression invokes.
// Both fixture and tsjs shapes put the callee as the child immediately
// before the arguments list (with `new` and a leading keyword punctuation
// node for KindNew).
func calleeName(call parsetree.Node) string {
	children := parsetree.Children(call)
	for i, c := range children {
		if c == nil {
			continue
		}
		if c.Kind() == parsetree.KindArguments && i > 0 {
			return calleeText(children[i-1])
		}
	}
	return ""
}

// calleeText resolves a callee node's identifier text, unwrapping a member
// expression down to its rightmost identifier (e.g. `Long.fromBits`
// folds under the "fromBits" case above) since the walker already
// resolved which attribute Type dispatches here; this package only
// needs the leaf name to pick a folding rule.
func calleeText(n parsetree.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case parsetree.KindIdentifier:
		return n.Text()
	case parsetree.KindMember:
		children := parsetree.Children(n)
		if len(children) > 0 {
			return calleeText(children[len(children)-1])
		}
	}
	return n.Text()
}

func callArgs(call parsetree.Node) []parsetree.Node {
	for _, c := range parsetree.Children(call) {
		if c != nil && c.Kind() == parsetree.KindArguments {
			out := []parsetree.Node{}
			for _, a := range parsetree.Children(c) {
				if a == nil || a.Kind() == parsetree.KindPunctuation {
					continue
				}
				out = append(out, a)
			}
			return out
		}
	}
	return nil
}

func evalObjectID(args []parsetree.Node, pos parsetree.Position) (Value, bool, error) {
	if len(args) == 0 {
		return nil, false, nil
	}
	hex, err := stringArg(args[0], "ObjectId", pos)
	if err != nil {
		return nil, false, err
	}
	hex = strings.ToLower(hex)
	if len(hex) != 24 || !isHexDigits(hex) {
		return nil, false, xlerr.Generic(fmt.Sprintf("ObjectId: %q is not 24 hex digits", hex), nil, pos)
	}
	return ObjectIDValue{Hex: hex}, true, nil
}

func evalBinary(args []parsetree.Node, pos parsetree.Position) (Value, bool, error) {
	if len(args) == 0 {
		return nil, false, nil
	}
	// The mongo shell's Binary(data, subtype) takes data as a raw string,
	// not base64 — bson.binary.Binary(bytes(data, 'utf-8')) is exactly how
	// the Python target re-encodes it. The folded byte slice is not itself
	// emitted (the emitter splices the target's own already-rendered
	// string literal instead); it exists for embedders that inspect
	// sandbox.Value directly.
	s, err := stringArg(args[0], "Binary", pos)
	if err != nil {
		return nil, false, err
	}
	data := []byte(s)
	subtype := byte(0)
	if len(args) > 1 {
		n, err := numberArg(args[1], "Binary", pos)
		if err != nil {
			return nil, false, err
		}
		subtype = byte(int64(n.Val))
	}
	return BinaryValue{Data: data, Subtype: subtype}, true, nil
}

func evalLong(args []parsetree.Node, pos parsetree.Position) (Value, bool, error) {
	if len(args) == 0 {
		return nil, false, nil
	}
	if len(args) == 1 {
		switch args[0].Kind() {
		case parsetree.KindString:
			s, err := stringArg(args[0], "Long", pos)
			if err != nil {
				return nil, false, err
			}
			parsed, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, false, xlerr.Generic(fmt.Sprintf("Long: %q is not a valid 64-bit integer", s), err, pos)
			}
			return LongValue{Decimal: strconv.FormatInt(parsed, 10)}, true, nil
		default:
			n, err := numberArg(args[0], "Long", pos)
			if err != nil {
				return nil, false, err
			}
			return LongValue{Decimal: strconv.FormatInt(int64(n.Val), 10)}, true, nil
		}
	}
	// Two-argument low/high 32-bit-word form.
	low, err := numberArg(args[0], "Long", pos)
	if err != nil {
		return nil, false, err
	}
	high, err := numberArg(args[1], "Long", pos)
	if err != nil {
		return nil, false, err
	}
	combined := int64(uint64(uint32(int32(high.Val)))<<32 | uint64(uint32(int32(low.Val))))
	return LongValue{Decimal: strconv.FormatInt(combined, 10)}, true, nil
}

func evalInt32(args []parsetree.Node, pos parsetree.Position) (Value, bool, error) {
	if len(args) == 0 {
		return nil, false, nil
	}
	switch args[0].Kind() {
	case parsetree.KindString:
		s, err := stringArg(args[0], "Int32", pos)
		if err != nil {
			return nil, false, err
		}
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, false, xlerr.Generic(fmt.Sprintf("Int32: %q is not a valid 32-bit integer", s), err, pos)
		}
		return Int32Value{Val: int32(v)}, true, nil
	default:
		n, err := numberArg(args[0], "Int32", pos)
		if err != nil {
			return nil, false, err
		}
		return Int32Value{Val: int32(n.Val)}, true, nil
	}
}

// evalDecimal only ever sees a string argument — Decimal128's declared
// schema in pkg/symtab/table.go is Req(String), so the walker's checkArgs
// rejects a bare numeric literal before this ever runs. DecimalValue is
// string-preserving by design: routing a numeric literal through
// NumberValue.String() would round-trip it through float64 and lose the
// precision Decimal128 exists to carry.
func evalDecimal(args []parsetree.Node, pos parsetree.Position) (Value, bool, error) {
	if len(args) == 0 {
		return nil, false, nil
	}
	s, err := stringArg(args[0], "Decimal128", pos)
	if err != nil {
		return nil, false, err
	}
	return DecimalValue{Digits: s}, true, nil
}

func evalDouble(args []parsetree.Node, pos parsetree.Position) (Value, bool, error) {
	if len(args) == 0 {
		return nil, false, nil
	}
	if args[0].Kind() == parsetree.KindString {
		s, err := stringArg(args[0], "Double", pos)
		if err != nil {
			return nil, false, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false, xlerr.Generic(fmt.Sprintf("Double: %q is not a valid number", s), err, pos)
		}
		return NumberValue{Val: f}, true, nil
	}
	n, err := numberArg(args[0], "Double", pos)
	if err != nil {
		return nil, false, err
	}
	return n, true, nil
}

var dateLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02",
}

func evalDate(args []parsetree.Node, pos parsetree.Position) (Value, bool, error) {
	switch len(args) {
	case 0:
		return nil, false, nil
	case 1:
		if args[0].Kind() == parsetree.KindString {
			s, err := stringArg(args[0], "Date", pos)
			if err != nil {
				return nil, false, err
			}
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, s); err == nil {
					return dateFromTime(t.UTC()), true, nil
				}
			}
			return nil, false, xlerr.Generic(fmt.Sprintf("Date: %q is not a recognized ISO-8601 timestamp", s), nil, pos)
		}
		n, err := numberArg(args[0], "Date", pos)
		if err != nil {
			return nil, false, err
		}
		t := time.UnixMilli(int64(n.Val)).UTC()
		return dateFromTime(t), true, nil
	default:
		nums := make([]int, 7)
		for i, a := range args {
			if i >= 7 {
				break
			}
			n, err := numberArg(a, "Date", pos)
			if err != nil {
				return nil, false, err
			}
			nums[i] = int(n.Val)
		}
		return DateValue{
			Year: nums[0], Month: nums[1] + 1, Day: dayOr(nums[2]),
			Hour: nums[3], Minute: nums[4], Second: nums[5], Ms: nums[6],
		}, true, nil
	}
}

// dayOr defaults the day-of-month argument to 1 when omitted, matching
// JavaScript's Date(year, month[, day, ...]) contract.
func dayOr(day int) int {
	if day == 0 {
		return 1
	}
	return day
}

func dateFromTime(t time.Time) DateValue {
	return DateValue{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Ms: t.Nanosecond() / 1_000_000,
	}
}

func evalRegex(args []parsetree.Node, pos parsetree.Position) (Value, bool, error) {
	if len(args) == 0 {
		return nil, false, nil
	}
	source, err := stringArg(args[0], "RegExp", pos)
	if err != nil {
		return nil, false, err
	}
	flags := ""
	if len(args) > 1 {
		flags, err = stringArg(args[1], "RegExp", pos)
		if err != nil {
			return nil, false, err
		}
	}
	return RegexValue{Source: source, Flags: sortFlags(flags)}, true, nil
}

// sortFlags re-spells a regex flag string in stable ascending order so
// target output never depends on the input's flag ordering.
func sortFlags(flags string) string {
	letters := strings.Split(flags, "")
	sort.Strings(letters)
	return strings.Join(letters, "")
}

func stringArg(n parsetree.Node, context string, pos parsetree.Position) (string, error) {
	if n.Kind() != parsetree.KindString {
		return "", xlerr.Type(context, 0, []string{"_string"}, string(n.Kind()), pos)
	}
	return unquoteJS(n.Text()), nil
}

// unquoteJS strips a JavaScript string literal's surrounding quote (single
// or double) and resolves its escape sequences. The surface grammar
// accepts either quote character; Go's strconv.Unquote only accepts double
// quotes, so a single-quoted literal is re-escaped into double-quoted form
// first and then handed to it. Ported from pkg/walker's helper of the same
// name — sandbox and walker are kept as siblings off pkg/parsetree rather
// than one importing the other, so this small piece of lexical cleanup is
// duplicated instead of shared.
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

func numberArg(n parsetree.Node, context string, pos parsetree.Position) (NumberValue, error) {
	if n.Kind() == parsetree.KindUnary {
		children := parsetree.Children(n)
		if len(children) == 2 && children[0].Text() == "-" {
			inner, err := numberArg(children[1], context, pos)
			if err != nil {
				return NumberValue{}, err
			}
			inner.Val = -inner.Val
			return inner, nil
		}
	}
	if n.Kind() != parsetree.KindNumber {
		return NumberValue{}, xlerr.Type(context, 0, []string{"_numeric"}, string(n.Kind()), pos)
	}
	isInt := numlit.Classify(n.Text()) != numlit.KindDecimal
	f, err := numlit.ParseFloat64(n.Text())
	if err != nil {
		return NumberValue{}, xlerr.Generic(fmt.Sprintf("%s: %v", context, err), err, pos)
	}
	return NumberValue{Val: f, IsInt: isInt}, nil
}

func isHexDigits(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}
