package grid

// Grid binds a schema and a record list to the user's view state. Records are
// replaced wholesale; the state changes only through the methods below.
type Grid struct {
	schema  Schema
	records []Record
	state   State
}

func New(schema Schema, records []Record) *Grid {
	return &Grid{schema: schema, records: records, state: DefaultState()}
}

// NewWithState starts from a caller-supplied state (CLI flags).
func NewWithState(schema Schema, records []Record, st State) *Grid {
	if st.PageSize < 1 {
		st.PageSize = DefaultPageSize
	}
	if st.Page < 1 {
		st.Page = DefaultPage
	}
	return &Grid{schema: schema, records: records, state: st}
}

func (g *Grid) Schema() Schema { return g.schema }
func (g *Grid) Records() []Record { return g.records }
func (g *Grid) State() State { return g.state }
func (g *Grid) SetRecords(rs []Record) { g.records = rs }

func (g *Grid) SetQuery(q string) {
	if q == g.state.Query {
		return
	}
	g.state = g.state.WithQuery(q)
}

// ClickHeader applies the sort toggle for the column at key. Unknown keys
// are ignored.
func (g *Grid) ClickHeader(key string) {
	c, ok := g.schema.Find(key)
	if !ok {
		return
	}
	g.state = g.state.ToggleSort(c)
}

func (g *Grid) SetPageSize(n int) {
	g.state = g.state.WithPageSize(n)
}

// GoTo moves to page p, clamped to the current view.
func (g *Grid) GoTo(p int) {
	total := TotalPages(len(Filter(g.records, g.schema, g.state.Query)), g.state.pageSize())
	g.state = g.state.WithPage(p, total)
}

func (g *Grid) Next() { g.GoTo(g.state.Page + 1) }
func (g *Grid) Prev() { g.GoTo(g.state.Page - 1) }

// View computes the visible page and stores the clamped page number.
func (g *Grid) View() Result {
	res := View(g.records, g.schema, g.state)
	g.state.Page = res.Page.Page
	return res
}

// HeaderCell is one header label with its sort marker.
type HeaderCell struct {
	Key      string
	Title    string
	Sortable bool
	Active   bool
	Glyph    string
}

// Label is the title followed by the direction glyph on the active column.
func (h HeaderCell) Label() string {
	if h.Glyph == "" {
		return h.Title
	}
	return h.Title + " " + h.Glyph
}

func (g *Grid) Header() []HeaderCell {
	out := make([]HeaderCell, 0, len(g.schema))
	for _, c := range g.schema {
		h := HeaderCell{Key: c.Key, Title: c.Title, Sortable: c.Sortable}
		if g.state.SortKey == c.Key {
			h.Active = true
			h.Glyph = g.state.Direction.Glyph()
		}
		out = append(out, h)
	}
	return out
}

// Cells renders one row in schema order.
func (g *Grid) Cells(r Record) []string {
	return Cells(g.schema, r)
}

func Cells(schema Schema, r Record) []string {
	out := make([]string, len(schema))
	for i, c := range schema {
		out[i] = c.Display(r)
	}
	return out
}
