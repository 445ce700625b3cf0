package grid

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind tags a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNumber
	KindText
	KindBool
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Value is the typed result of a column accessor. The zero Value is Absent.
type Value struct {
	kind  Kind
	num   float64
	text  string
	b     bool
	tuple []Value
}

func Absent() Value { return Value{} }

// Number returns a numeric Value. NaN is treated as Absent.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

func Text(s string) Value { return Value{kind: KindText, text: s} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Tuple builds a composite key. Elements are compared left to right.
func Tuple(vs ...Value) Value {
	cp := make([]Value, len(vs))
	copy(cp, vs)
	return Value{kind: KindTuple, tuple: cp}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }
func (v Value) Elems() []Value { return v.tuple }
func (v Value) TextValue() string { return v.text }

// Float reports the numeric reading of v: numbers as-is, and non-blank text
// that parses as a number.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		return parseNumeric(v.text)
	default:
		return 0, false
	}
}

// String is the search form of v. Absent renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindText:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTuple:
		b, err := json.Marshal(v.jsonValue())
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

func (v Value) jsonValue() any {
	switch v.kind {
	case KindNumber:
		if math.IsInf(v.num, 0) {
			return formatNumber(v.num)
		}
		return v.num
	case KindText:
		return v.text
	case KindBool:
		return v.b
	case KindTuple:
		out := make([]any, len(v.tuple))
		for i, e := range v.tuple {
			out[i] = e.jsonValue()
		}
		return out
	default:
		return nil
	}
}

// FromAny converts a JSON-decoded field into a Value. Objects have no natural
// sort order and are kept as their JSON text.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Absent()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return Text(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Number(f)
		}
		return Text(t.String())
	case []any:
		vs := make([]Value, len(t))
		for i, e := range t {
			vs[i] = FromAny(e)
		}
		return Value{kind: KindTuple, tuple: vs}
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return Absent()
		}
		return Text(string(b))
	}
}

// NumberFrom coerces a raw field into a Number, or Absent when it has no
// numeric reading. Objects carrying a "parsedValue" (big decimals serialized
// by the backend) are unwrapped first.
func NumberFrom(x any) Value {
	switch t := x.(type) {
	case nil:
		return Absent()
	case map[string]any:
		pv, ok := t["parsedValue"]
		if !ok {
			return Absent()
		}
		return NumberFrom(pv)
	case bool:
		if t {
			return Number(1)
		}
		return Number(0)
	case string:
		f, ok := parseNumeric(t)
		if !ok {
			return Absent()
		}
		return Number(f)
	}
	v := FromAny(x)
	if v.kind == KindNumber {
		return v
	}
	return Absent()
}

func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		// Drops the sign of negative zero.
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
