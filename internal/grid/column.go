package grid

import (
	"strings"
)

// Record is one decoded row from a record source. The grid only reads it.
type Record = map[string]any

// Placeholder is shown for cells with no value.
const Placeholder = "—"

// Accessor extracts a column's sort value from a record.
type Accessor func(Record) Value

// Renderer formats a column's cell for display.
type Renderer func(Record) string

// Column describes how one grid column is extracted, sorted and rendered.
type Column struct {
	Key      string
	Title    string
	Accessor Accessor
	Render   Renderer
	Sortable bool
}

// Value resolves the column's value for r: the accessor when set, else the
// raw field at Key.
func (c Column) Value(r Record) Value {
	if c.Accessor != nil {
		return c.Accessor(r)
	}
	return FromAny(Lookup(r, c.Key))
}

// Display returns the cell text for r: the renderer when set, else the raw
// field at Key, else Placeholder.
func (c Column) Display(r Record) string {
	if c.Render != nil {
		if s := c.Render(r); s != "" {
			return s
		}
		return Placeholder
	}
	v := FromAny(Lookup(r, c.Key))
	if v.IsAbsent() {
		return Placeholder
	}
	return v.String()
}

// Schema is an ordered set of columns with unique keys.
type Schema []Column

// Find returns the column with the given key.
func (s Schema) Find(key string) (Column, bool) {
	for _, c := range s {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

func (s Schema) Keys() []string {
	out := make([]string, 0, len(s))
	for _, c := range s {
		out = append(out, c.Key)
	}
	return out
}

// Lookup walks a dotted path ("person.location.x") through nested objects.
// Any missing or non-object hop yields nil.
func Lookup(r Record, path string) any {
	if r == nil || path == "" {
		return nil
	}
	var cur any = r
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}

// Field reads a dotted path as-is.
func Field(path string) Accessor {
	return func(r Record) Value { return FromAny(Lookup(r, path)) }
}

// NumberField reads a dotted path and coerces it to a number.
func NumberField(path string) Accessor {
	return func(r Record) Value { return NumberFrom(Lookup(r, path)) }
}

// TextField reads a dotted path as text. Empty strings are Absent.
func TextField(path string) Accessor {
	return func(r Record) Value {
		v := FromAny(Lookup(r, path))
		switch v.kind {
		case KindAbsent:
			return v
		case KindText:
			if v.text == "" {
				return Absent()
			}
			return v
		default:
			return Text(v.String())
		}
	}
}

// Composite builds a tuple accessor, e.g. sort by name then id.
func Composite(parts ...Accessor) Accessor {
	return func(r Record) Value {
		vs := make([]Value, len(parts))
		for i, p := range parts {
			vs[i] = p(r)
		}
		return Value{kind: KindTuple, tuple: vs}
	}
}
