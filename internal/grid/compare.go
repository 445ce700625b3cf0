package grid

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collators keep internal buffers, so each comparison borrows one.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.Und, collate.Loose, collate.Numeric)
	},
}

// Compare orders two sort values:
//   - Absent sorts before everything else; two Absent values are equal.
//   - Tuples compare element-wise up to the longer length (a missing element
//     is Absent). A scalar against a tuple acts as a one-element tuple.
//   - Two numeric values (numbers or numeric-looking text) compare numerically.
//   - Two booleans compare false < true.
//   - Anything else compares as text with case- and accent-insensitive,
//     digit-aware collation ("item2" < "item10").
func Compare(a, b Value) int {
	aa, ba := a.IsAbsent(), b.IsAbsent()
	switch {
	case aa && ba:
		return 0
	case aa:
		return -1
	case ba:
		return 1
	}

	if a.kind == KindTuple || b.kind == KindTuple {
		return compareTuples(asTuple(a), asTuple(b))
	}

	if na, ok := a.Float(); ok {
		if nb, ok := b.Float(); ok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			default:
				return 0
			}
		}
	}

	if a.kind == KindBool && b.kind == KindBool {
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	}

	return compareText(a.String(), b.String())
}

func asTuple(v Value) []Value {
	if v.kind == KindTuple {
		return v.tuple
	}
	return []Value{v}
}

func compareTuples(a, b []Value) int {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		var x, y Value
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if r := Compare(x, y); r != 0 {
			return r
		}
	}
	return 0
}

func compareText(a, b string) int {
	if a == b {
		return 0
	}
	c := collators.Get().(*collate.Collator)
	r := c.CompareString(a, b)
	collators.Put(c)
	// Collation-equal strings ("Ann" vs "ann") tie, so a stable sort keeps
	// their input order.
	return r
}

// compareDir applies a sort direction to Compare.
func compareDir(a, b Value, dir Direction) int {
	r := Compare(a, b)
	if dir == Descending {
		return -r
	}
	return r
}

func foldContains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
