package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ticketdesk/internal/backend"
	"ticketdesk/internal/grid"
	"ticketdesk/internal/logging"
	"ticketdesk/internal/model"
	"ticketdesk/internal/publish"
	"ticketdesk/internal/schema"
	"ticketdesk/internal/store"
	"ticketdesk/internal/validate"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewGrid view = iota
	viewDetail
	viewLookup
	viewFunctions
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// recordsMsg carries one list fetch. seq ties it to the mount that asked.
type recordsMsg struct {
	coll    model.Collection
	seq     int
	records []grid.Record
	err     error
}

type ticketMsg struct {
	id  int64
	rec grid.Record
	err error
}

type appModel struct {
	ctx  context.Context
	opts Options
	keys keyMap
	help help.Model
	st   styles

	width  int
	height int

	view view

	colls   []model.Collection
	collIdx int

	// seq is the reload key. Every remount bumps it, and responses from an
	// older mount are dropped.
	seq     int
	loading bool
	g       grid.Grid

	colCursor int
	colOffset int
	rowCursor int

	search    textinput.Model
	searching bool

	lookup    textinput.Model
	lookupErr string

	detailTitle  string
	detailBody   string
	detailScroll int

	fn functionsModel

	status    string
	statusErr bool

	state *store.TUIState
}

func newAppModel(ctx context.Context, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.PageSize < 1 {
		opts.PageSize = grid.DefaultPageSize
	}
	if len(opts.PageSizes) == 0 {
		opts.PageSizes = []int{opts.PageSize}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	m := appModel{
		ctx:    ctx,
		opts:   opts,
		keys:   defaultKeys,
		help:   help.New(),
		st:     newStyles(),
		width:  defaultWidth,
		height: defaultHeight,
		view:   viewGrid,
		colls:  model.Collections,
		state:  &store.TUIState{Version: 1},
	}

	if opts.StateDir != "" {
		if st, err := store.LoadTUIState(opts.StateDir); err == nil && st != nil {
			m.state = st
		}
	}
	if c, ok := model.ParseCollection(m.state.Collection); ok {
		for i, cc := range m.colls {
			if cc == c {
				m.collIdx = i
			}
		}
	}
	if m.state.PageSize > 0 {
		m.opts.PageSize = m.state.PageSize
	}

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "filter all columns"
	m.search.CharLimit = 200

	m.lookup = textinput.New()
	m.lookup.Prompt = "Ticket ID: "
	m.lookup.CharLimit = 19

	m.fn = newFunctionsModel()
	m.mount()
	return m
}

func (m appModel) coll() model.Collection { return m.colls[m.collIdx] }

// mount resets the grid for the current collection: default view state at
// the launch page size, no records, and a new reload key.
func (m *appModel) mount() {
	m.seq++
	m.loading = true
	st := grid.DefaultState().WithPageSize(m.opts.PageSize)
	m.g = *grid.NewWithState(schema.For(m.coll()), nil, st)
	m.colCursor, m.colOffset, m.rowCursor = 0, 0, 0
	m.search.SetValue("")
	m.search.Blur()
	m.searching = false
}

func (m appModel) fetch() tea.Cmd {
	b, ctx, coll, seq := m.opts.Backend, m.ctx, m.coll(), m.seq
	return func() tea.Msg {
		recs, err := b.List(ctx, coll)
		return recordsMsg{coll: coll, seq: seq, records: recs, err: err}
	}
}

func (m appModel) remount() (appModel, tea.Cmd) {
	m.mount()
	return m, m.fetch()
}

func (m appModel) Init() tea.Cmd { return m.fetch() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.fitColumns()
		return m, nil

	case recordsMsg:
		if msg.seq != m.seq || msg.coll != m.coll() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.opts.Logger.Warn("fetch records", "collection", msg.coll, "err", msg.err)
			m.g.SetRecords(nil)
			m.setError("load " + string(msg.coll) + ": " + backend.StatusMessage(msg.err))
			return m, nil
		}
		m.g.SetRecords(msg.records)
		m.clampCursors()
		m.status = ""
		return m, nil

	case ticketMsg:
		if msg.err != nil {
			if errors.Is(msg.err, backend.ErrNotFound) {
				m.lookupErr = fmt.Sprintf("ticket %d not found", msg.id)
			} else {
				m.lookupErr = backend.StatusMessage(msg.err)
			}
			return m, nil
		}
		m.state.TouchTicket(msg.id)
		m.openDetail(model.CollectionTickets, msg.rec)
		return m, nil

	case fnResultMsg:
		return m.applyFnResult(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewDetail:
			return m.updateDetail(msg)
		case viewLookup:
			return m.updateLookup(msg)
		case viewFunctions:
			return m.updateFunctions(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m *appModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m appModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.g.SetQuery("")
			m.clampCursors()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.g.SetQuery(m.search.Value())
		m.clampCursors()
		return m, cmd
	}

	cols := m.g.Schema()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.NextCollection):
		m.collIdx = (m.collIdx + 1) % len(m.colls)
		return m.remount()
	case key.Matches(msg, m.keys.PrevCollection):
		m.collIdx = (m.collIdx + len(m.colls) - 1) % len(m.colls)
		return m.remount()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Left):
		if m.colCursor > 0 {
			m.colCursor--
		}
		m.fitColumns()
	case key.Matches(msg, m.keys.Right):
		if m.colCursor < len(cols)-1 {
			m.colCursor++
		}
		m.fitColumns()
	case key.Matches(msg, m.keys.Up):
		if m.rowCursor > 0 {
			m.rowCursor--
		}
	case key.Matches(msg, m.keys.Down):
		m.rowCursor++
		m.clampCursors()
	case key.Matches(msg, m.keys.Sort):
		if m.colCursor < len(cols) {
			m.g.ClickHeader(cols[m.colCursor].Key)
			m.rowCursor = 0
		}
	case key.Matches(msg, m.keys.NextPage):
		m.g.Next()
		m.rowCursor = 0
	case key.Matches(msg, m.keys.PrevPage):
		m.g.Prev()
		m.rowCursor = 0
	case key.Matches(msg, m.keys.Bigger):
		m.cyclePageSize(1)
	case key.Matches(msg, m.keys.Smaller):
		m.cyclePageSize(-1)
	case key.Matches(msg, m.keys.Reload):
		m.setStatus("")
		return m.remount()
	case key.Matches(msg, m.keys.Lookup):
		m.view = viewLookup
		m.lookupErr = ""
		m.lookup.SetValue("")
		cmd := m.lookup.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Details):
		rows := m.g.View().Rows
		if len(rows) == 0 {
			m.setError("no row selected")
			return m, nil
		}
		m.clampCursors()
		m.openDetail(m.coll(), rows[m.rowCursor])
	case key.Matches(msg, m.keys.Functions):
		m.view = viewFunctions
		m.fn.reset()
	}
	return m, nil
}

// cyclePageSize steps through the configured sizes, wrapping at the ends.
func (m *appModel) cyclePageSize(step int) {
	sizes := m.opts.PageSizes
	cur := m.g.State().PageSize
	idx := -1
	for i, s := range sizes {
		if s == cur {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Not a configured size; step from the gap it falls into.
		below := -1
		for i, s := range sizes {
			if s < cur {
				below = i
			}
		}
		idx = below
		if step < 0 {
			idx = below + 1
		}
	}
	idx = ((idx+step)%len(sizes) + len(sizes)) % len(sizes)
	m.g.SetPageSize(sizes[idx])
	m.state.PageSize = sizes[idx]
	m.rowCursor = 0
}

func (m *appModel) clampCursors() {
	n := len(m.g.View().Rows)
	if m.rowCursor >= n {
		m.rowCursor = n - 1
	}
	if m.rowCursor < 0 {
		m.rowCursor = 0
	}
}

func (m appModel) updateLookup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewGrid
		m.lookup.Blur()
		return m, nil
	case "enter":
		id, err := validate.ID(m.lookup.Value())
		if err != nil {
			m.lookupErr = err.Error()
			return m, nil
		}
		m.lookupErr = ""
		b, ctx := m.opts.Backend, m.ctx
		return m, func() tea.Msg {
			rec, err := b.Ticket(ctx, id)
			return ticketMsg{id: id, rec: rec, err: err}
		}
	case "tab":
		// Cycle through recently opened tickets.
		recent := m.state.RecentTicketIDs
		if len(recent) == 0 {
			return m, nil
		}
		next := recent[0]
		for i, id := range recent {
			if fmt.Sprint(id) == strings.TrimSpace(m.lookup.Value()) {
				next = recent[(i+1)%len(recent)]
				break
			}
		}
		m.lookup.SetValue(fmt.Sprint(next))
		m.lookup.CursorEnd()
		return m, nil
	}
	var cmd tea.Cmd
	m.lookup, cmd = m.lookup.Update(msg)
	return m, cmd
}

func (m *appModel) openDetail(coll model.Collection, rec grid.Record) {
	md, err := publish.RenderRecordMarkdown(coll, rec)
	if err != nil {
		m.setError(err.Error())
		return
	}
	style := m.opts.MarkdownStyle
	if style == "" {
		style = publish.MarkdownStyle()
	}
	m.detailTitle = publish.Title(coll, rec)
	m.detailBody = strings.TrimRight(publish.RenderTerminalStyle(md, m.width-2, style), "\n")
	m.detailScroll = 0
	m.lookup.Blur()
	m.view = viewDetail
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := strings.Count(m.detailBody, "\n") + 1
	maxScroll := max(0, lines-m.bodyHeight())
	switch msg.String() {
	case "esc", "q", "backspace":
		m.view = viewGrid
	case "up", "k":
		if m.detailScroll > 0 {
			m.detailScroll--
		}
	case "down", "j":
		if m.detailScroll < maxScroll {
			m.detailScroll++
		}
	case "pgup":
		m.detailScroll = max(0, m.detailScroll-m.bodyHeight())
	case "pgdown", " ":
		m.detailScroll = min(maxScroll, m.detailScroll+m.bodyHeight())
	case "g", "home":
		m.detailScroll = 0
	}
	return m, nil
}

// bodyHeight is the space left under the title bar and above the footer.
func (m appModel) bodyHeight() int {
	return max(3, m.height-4)
}

// saveState persists the collection and page size for the next launch.
func (m appModel) saveState() error {
	if m.opts.StateDir == "" {
		return nil
	}
	m.state.Collection = string(m.coll())
	if ps := m.g.State().PageSize; ps > 0 {
		m.state.PageSize = ps
	}
	return store.SaveTUIState(m.opts.StateDir, m.state)
}
