package grid

import "strings"

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Glyph is the header marker for the active sort column.
func (d Direction) Glyph() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// ParseDirection accepts asc/desc (and the long forms). Unknown input is
// ascending.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "d", "-":
		return Descending
	default:
		return Ascending
	}
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// State holds the user's current selections. An empty SortKey means
// insertion order.
type State struct {
	Query     string
	SortKey   string
	Direction Direction
	Page      int
	PageSize  int
}

func DefaultState() State {
	return State{
		Direction: Ascending,
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
	}
}

func (s State) Sorted() bool { return s.SortKey != "" }

// WithQuery sets the filter text and returns to the first page.
func (s State) WithQuery(q string) State {
	s.Query = q
	s.Page = 1
	return s
}

// WithPageSize changes the page size and returns to the first page. Filter
// and sort are untouched. Sizes below one are ignored.
func (s State) WithPageSize(n int) State {
	if n < 1 {
		return s
	}
	s.PageSize = n
	s.Page = 1
	return s
}

// WithSort sets an explicit sort and returns to the first page.
func (s State) WithSort(key string, dir Direction) State {
	s.SortKey = key
	s.Direction = dir
	s.Page = 1
	return s
}

// ToggleSort applies a header click on c:
//
//	not sortable            -> no change
//	unsorted / other column -> (c, asc)
//	(c, asc)                -> (c, desc)
//	(c, desc)               -> (c, asc)
//
// Any change returns to the first page.
func (s State) ToggleSort(c Column) State {
	if !c.Sortable {
		return s
	}
	if s.SortKey == c.Key {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
	} else {
		s.SortKey = c.Key
		s.Direction = Ascending
	}
	s.Page = 1
	return s
}

// WithPage moves to page p, clamped into [1, totalPages].
func (s State) WithPage(p, totalPages int) State {
	s.Page = clampPage(p, totalPages)
	return s
}

func (s State) pageSize() int {
	if s.PageSize < 1 {
		return DefaultPageSize
	}
	return s.PageSize
}

func clampPage(p, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if p < 1 {
		return 1
	}
	if p > totalPages {
		return totalPages
	}
	return p
}
