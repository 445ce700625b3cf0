package grid

import (
	"slices"
	"strconv"
	"strings"
)

// Filter keeps records where any column's value contains query,
// case-insensitively. A blank query returns records unchanged.
func Filter(records []Record, schema Schema, query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if Matches(r, schema, q) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether any column of r contains q. q must already be
// trimmed and lower-cased.
func Matches(r Record, schema Schema, q string) bool {
	for _, c := range schema {
		s := c.Value(r).String()
		if s != "" && foldContains(s, q) {
			return true
		}
	}
	return false
}

// Sort returns records ordered by the column at key. An empty or unknown key
// keeps insertion order. Ties keep their input order. The input slice is not
// modified.
func Sort(records []Record, schema Schema, key string, dir Direction) []Record {
	if key == "" {
		return records
	}
	col, ok := schema.Find(key)
	if !ok {
		return records
	}

	type keyed struct {
		rec Record
		val Value
	}
	ks := make([]keyed, len(records))
	for i, r := range records {
		ks[i] = keyed{rec: r, val: col.Value(r)}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return compareDir(a.val, b.val, dir)
	})

	out := make([]Record, len(ks))
	for i, k := range ks {
		out[i] = k.rec
	}
	return out
}

// Page is one slice of the sorted view.
type Page struct {
	Rows       []Record
	Page       int
	TotalPages int
}

func (p Page) HasPrev() bool { return p.Page > 1 }
func (p Page) HasNext() bool { return p.Page < p.TotalPages }

// Label is the pager text, "page / totalPages".
func (p Page) Label() string { return strconv.Itoa(p.Page) + " / " + strconv.Itoa(p.TotalPages) }

// TotalPages is max(1, ceil(n/size)).
func TotalPages(n, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n-1)/size + 1
}

// Paginate clamps page and returns its rows.
func Paginate(rows []Record, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	total := TotalPages(len(rows), size)
	page = clampPage(page, total)
	start := (page - 1) * size
	end := min(start+size, len(rows))
	var slice []Record
	if start < end {
		slice = rows[start:end:end]
	}
	return Page{Rows: slice, Page: page, TotalPages: total}
}

// Result is everything a renderer needs for one frame.
type Result struct {
	Page

	// Total is the number of records before filtering; Matched after.
	Total   int
	Matched int
}

// EmptyMessage names the empty state: "no data" when there is nothing to
// show, "nothing found" when the query filtered everything out. It is blank
// when the view has rows.
func (r Result) EmptyMessage() string {
	switch {
	case r.Total == 0:
		return "no data"
	case r.Matched == 0:
		return "nothing found"
	default:
		return ""
	}
}

// View runs filter, sort and paginate in that order.
func View(records []Record, schema Schema, st State) Result {
	filtered := Filter(records, schema, st.Query)
	sorted := Sort(filtered, schema, st.SortKey, st.Direction)
	return Result{
		Page:    Paginate(sorted, st.Page, st.pageSize()),
		Total:   len(records),
		Matched: len(sorted),
	}
}
