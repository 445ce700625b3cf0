package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	"ticketdesk/internal/backend"
	"ticketdesk/internal/grid"
	"ticketdesk/internal/model"
	"ticketdesk/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

type fakeBackend struct {
	mu      sync.Mutex
	lists   map[model.Collection][]grid.Record
	listErr error
	tickets map[int64]grid.Record

	deleted []string
	sold    []model.SellRequest
	cloned  []int64
	listN   int
}

func (f *fakeBackend) List(_ context.Context, coll model.Collection) ([]grid.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listN++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lists[coll], nil
}

func (f *fakeBackend) Ticket(_ context.Context, id int64) (grid.Record, error) {
	if rec, ok := f.tickets[id]; ok {
		return rec, nil
	}
	return nil, &backend.StatusError{Method: "GET", Path: "/get_ticket", Status: 404}
}

func (f *fakeBackend) DeleteByComment(_ context.Context, comment string) error {
	f.deleted = append(f.deleted, comment)
	return nil
}

func (f *fakeBackend) MinEventTicket(context.Context) (grid.Record, error) {
	return nil, backend.ErrNotFound
}

func (f *fakeBackend) CountCommentLess(_ context.Context, comment string) (int64, error) {
	return int64(len(comment)), nil
}

func (f *fakeBackend) SellTicket(_ context.Context, req model.SellRequest) error {
	f.sold = append(f.sold, req)
	return nil
}

func (f *fakeBackend) CloneVIP(_ context.Context, id int64) (grid.Record, error) {
	f.cloned = append(f.cloned, id)
	return grid.Record{"id": float64(100), "name": "copy", "type": "VIP"}, nil
}

func tickets(n int) []grid.Record {
	out := make([]grid.Record, n)
	for i := range out {
		out[i] = grid.Record{
			"id":    float64(i + 1),
			"name":  "t" + string(rune('a'+i%26)),
			"price": float64(n - i),
		}
	}
	return out
}

func newTestModel(t *testing.T, b *fakeBackend, opts Options) appModel {
	t.Helper()
	opts.Backend = b
	opts.MarkdownStyle = "notty"
	if opts.PageSizes == nil {
		opts.PageSizes = []int{5, 10, 20}
	}
	if opts.PageSize == 0 {
		opts.PageSize = 5
	}
	m := newAppModel(context.Background(), opts)
	return run(t, m, m.Init())
}

// run executes cmd synchronously and feeds its message back into Update.
func run(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	next, _ := m.Update(cmd())
	return next.(appModel)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends one key and returns the model and whatever command it produced.
func press(t *testing.T, m appModel, s string) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(s))
	return next.(appModel), cmd
}

// typeText feeds each rune as its own key press, ignoring cursor blink commands.
func typeText(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		m, _ = press(t, m, string(r))
	}
	return m
}

func TestModel_LoadsAndPages(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{lists: map[model.Collection][]grid.Record{model.CollectionTickets: tickets(12)}}
	m := newTestModel(t, b, Options{})

	res := m.g.View()
	if res.Total != 12 || res.Page.Label() != "1 / 3" || len(res.Rows) != 5 {
		t.Fatalf("unexpected first view: total=%d label=%q rows=%d", res.Total, res.Page.Label(), len(res.Rows))
	}
	if m.loading {
		t.Fatalf("expected loading to end")
	}

	m, _ = press(t, m, "n")
	m, _ = press(t, m, "n")
	m, _ = press(t, m, "n")
	if got := m.g.State().Page; got != 3 {
		t.Fatalf("expected page clamped to 3, got %d", got)
	}
	m, _ = press(t, m, "p")
	if got := m.g.State().Page; got != 2 {
		t.Fatalf("expected page 2, got %d", got)
	}

	out := m.View()
	if !strings.Contains(out, "2 / 3") {
		t.Fatalf("expected pager label in view:\n%s", out)
	}
}

func TestModel_SortToggleOnCursorColumn(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{lists: map[model.Collection][]grid.Record{model.CollectionTickets: tickets(3)}}
	m := newTestModel(t, b, Options{})

	// Column 0 is ID, column 2 is Price.
	m, _ = press(t, m, "right")
	m, _ = press(t, m, "right")
	m, _ = press(t, m, "s")
	if st := m.g.State(); st.SortKey != "price" || st.Direction != grid.Ascending {
		t.Fatalf("unexpected sort state: %+v", st)
	}
	first := m.g.View().Rows[0]
	if first["price"] != float64(1) {
		t.Fatalf("expected cheapest first, got %v", first)
	}

	m, _ = press(t, m, "enter")
	if st := m.g.State(); st.Direction != grid.Descending {
		t.Fatalf("expected descending after second toggle, got %+v", st)
	}
	if v := m.View(); !strings.Contains(v, "Price") || !strings.Contains(v, "▼") {
		t.Fatalf("expected descending glyph in header:\n%s", m.View())
	}
}

func TestModel_SearchAndEmptyStates(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{lists: map[model.Collection][]grid.Record{model.CollectionTickets: tickets(12)}}
	m := newTestModel(t, b, Options{})
	m, _ = press(t, m, "n")

	m, _ = press(t, m, "/")
	if !m.searching {
		t.Fatalf("expected search focus")
	}
	m = typeText(t, m, "zzz")
	if got := m.g.State(); got.Query != "zzz" || got.Page != 1 {
		t.Fatalf("expected query applied and page reset, got %+v", got)
	}
	if !strings.Contains(m.View(), "nothing found") {
		t.Fatalf("expected nothing found state:\n%s", m.View())
	}

	m, _ = press(t, m, "esc")
	if m.searching || m.g.State().Query != "" {
		t.Fatalf("expected esc to clear the search")
	}

	empty := newTestModel(t, &fakeBackend{}, Options{})
	if !strings.Contains(empty.View(), "no data") {
		t.Fatalf("expected no data state:\n%s", empty.View())
	}
}

func TestModel_FetchErrorSetsStatus(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{listErr: &backend.StatusError{Method: "GET", Path: "/get_tickets", Status: 500, Body: "db down"}}
	m := newTestModel(t, b, Options{})
	if !m.statusErr || m.status != "load tickets: 500 db down" {
		t.Fatalf("unexpected status %q (err=%v)", m.status, m.statusErr)
	}
	if len(m.g.Records()) != 0 {
		t.Fatalf("expected empty list after failure")
	}
}

func TestModel_StaleResponsesDropped(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{lists: map[model.Collection][]grid.Record{
		model.CollectionTickets: tickets(3),
		model.CollectionPersons: {{"id": float64(1), "passportID": "P"}},
	}}
	m := newTestModel(t, b, Options{})
	stale := m.fetch()

	m, cmd := press(t, m, "tab")
	if m.coll() != model.CollectionPersons || !m.loading {
		t.Fatalf("expected persons mount, got %s loading=%v", m.coll(), m.loading)
	}
	m = run(t, m, stale)
	if len(m.g.Records()) != 0 {
		t.Fatalf("stale tickets response must be dropped")
	}
	m = run(t, m, cmd)
	if got := len(m.g.Records()); got != 1 {
		t.Fatalf("expected persons loaded, got %d", got)
	}
}

func TestModel_ReloadRemountsWithLaunchPageSize(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{lists: map[model.Collection][]grid.Record{model.CollectionTickets: tickets(30)}}
	m := newTestModel(t, b, Options{})

	m, _ = press(t, m, "+")
	if got := m.g.State().PageSize; got != 10 {
		t.Fatalf("expected page size 10, got %d", got)
	}
	m, _ = press(t, m, "n")
	m, _ = press(t, m, "s")

	m, cmd := press(t, m, "r")
	m = run(t, m, cmd)
	want := grid.DefaultState().WithPageSize(5)
	if diff := cmp.Diff(want, m.g.State()); diff != "" {
		t.Fatalf("state after reload (-want +got):\n%s", diff)
	}
	if b.listN != 2 {
		t.Fatalf("expected two fetches, got %d", b.listN)
	}
}

func TestModel_PageSizeCycleWraps(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeBackend{}, Options{})
	var got []int
	for range 3 {
		m, _ = press(t, m, "+")
		got = append(got, m.g.State().PageSize)
	}
	m, _ = press(t, m, "-")
	got = append(got, m.g.State().PageSize)
	if diff := cmp.Diff([]int{10, 20, 5, 20}, got); diff != "" {
		t.Fatalf("page sizes (-want +got):\n%s", diff)
	}
}

func TestModel_LookupValidatesAndOpensDetail(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{tickets: map[int64]grid.Record{
		42: {"id": float64(42), "name": "Gala", "price": float64(10)},
	}}
	m := newTestModel(t, b, Options{})

	m, _ = press(t, m, "g")
	if m.view != viewLookup {
		t.Fatalf("expected lookup view")
	}
	m = typeText(t, m, "abc")
	m, cmd := press(t, m, "enter")
	if cmd != nil || m.lookupErr != "enter a positive integer ID" {
		t.Fatalf("expected validation error, got %q", m.lookupErr)
	}

	m.lookup.SetValue("7")
	m, cmd = press(t, m, "enter")
	m = run(t, m, cmd)
	if m.lookupErr != "ticket 7 not found" || m.view != viewLookup {
		t.Fatalf("expected not found, got %q", m.lookupErr)
	}

	m.lookup.SetValue("42")
	m, cmd = press(t, m, "enter")
	m = run(t, m, cmd)
	if m.view != viewDetail {
		t.Fatalf("expected detail view, got %v", m.view)
	}
	if !strings.Contains(m.View(), "Gala") {
		t.Fatalf("expected ticket card:\n%s", m.View())
	}
	if diff := cmp.Diff([]int64{42}, m.state.RecentTicketIDs); diff != "" {
		t.Fatalf("recent ids (-want +got):\n%s", diff)
	}

	m, _ = press(t, m, "esc")
	if m.view != viewGrid {
		t.Fatalf("expected esc to return to the grid")
	}
}

func TestModel_DetailsOfCursorRow(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{lists: map[model.Collection][]grid.Record{model.CollectionTickets: tickets(3)}}
	m := newTestModel(t, b, Options{})

	m, _ = press(t, m, "down")
	m, _ = press(t, m, "d")
	if m.view != viewDetail || m.detailTitle != "Ticket #2: tb" {
		t.Fatalf("unexpected detail: view=%v title=%q", m.view, m.detailTitle)
	}
}

func TestModel_FunctionsSellRemounts(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{lists: map[model.Collection][]grid.Record{model.CollectionTickets: tickets(3)}}
	m := newTestModel(t, b, Options{})
	seq := m.seq

	m, _ = press(t, m, "f")
	if m.view != viewFunctions {
		t.Fatalf("expected functions view")
	}
	for range 3 {
		m, _ = press(t, m, "down")
	}
	if m.fn.spec().kind != fnSell {
		t.Fatalf("expected sell selected, got %v", m.fn.spec().title)
	}

	// Invalid form never reaches the backend.
	m, cmd := press(t, m, "enter")
	if cmd != nil || !m.fn.resultErr {
		t.Fatalf("expected validation error")
	}

	m, _ = press(t, m, "tab")
	m = typeText(t, m, "3")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "5")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "12.5")

	m, cmd = press(t, m, "enter")
	if cmd == nil {
		t.Fatalf("expected backend command, result=%q", m.fn.resultText)
	}
	next, reload := m.Update(cmd())
	m = next.(appModel)
	if diff := cmp.Diff([]model.SellRequest{{TicketID: 3, PersonID: 5, Amount: 12.5}}, b.sold); diff != "" {
		t.Fatalf("sell requests (-want +got):\n%s", diff)
	}
	if m.seq != seq+1 || reload == nil {
		t.Fatalf("expected a remount after a mutation")
	}
	if m.status != "sold ticket 3 to person 5" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if !strings.Contains(m.View(), "sold ticket 3 to person 5") {
		t.Fatalf("expected result card:\n%s", m.View())
	}
}

func TestModel_FunctionsMinEventNotFound(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeBackend{}, Options{})
	m, _ = press(t, m, "f")
	m, _ = press(t, m, "down")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)
	if !m.fn.resultErr || m.fn.resultText != "no tickets with an event" {
		t.Fatalf("unexpected result %q", m.fn.resultText)
	}
}

func TestModel_FunctionsCursorHeldWhileBusy(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeBackend{}, Options{})
	m, _ = press(t, m, "f")
	m, _ = press(t, m, "down")
	m, cmd := press(t, m, "enter")
	if cmd == nil || !m.fn.busy {
		t.Fatalf("expected a running min-event call")
	}

	m, _ = press(t, m, "down")
	if !m.fn.busy || m.fn.spec().kind != fnMinEvent {
		t.Fatalf("cursor moved during a call: busy=%v selected=%q", m.fn.busy, m.fn.spec().title)
	}
	if _, again := press(t, m, "enter"); again != nil {
		t.Fatalf("expected no second submission while busy")
	}

	m = run(t, m, cmd)
	if m.fn.busy || m.fn.resultText != "no tickets with an event" {
		t.Fatalf("unexpected result busy=%v text=%q", m.fn.busy, m.fn.resultText)
	}
	m, _ = press(t, m, "down")
	if m.fn.spec().kind != fnCountCommentLess || m.fn.resultText != "" {
		t.Fatalf("expected cursor to move after the call, selected=%q result=%q", m.fn.spec().title, m.fn.resultText)
	}

	next, _ := m.Update(fnResultMsg{kind: fnMinEvent, text: "late"})
	m = next.(appModel)
	if m.fn.resultText != "" {
		t.Fatalf("late result shown under another operation: %q", m.fn.resultText)
	}
}

func TestModel_StateRestoredAndSaved(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := store.SaveTUIState(dir, &store.TUIState{Version: 1, Collection: "events", PageSize: 20}); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}

	b := &fakeBackend{}
	m := newTestModel(t, b, Options{StateDir: dir})
	if m.coll() != model.CollectionEvents || m.g.State().PageSize != 20 {
		t.Fatalf("expected restored state, got %s/%d", m.coll(), m.g.State().PageSize)
	}

	m, cmd := press(t, m, "tab")
	m = run(t, m, cmd)
	if err := m.saveState(); err != nil {
		t.Fatalf("saveState: %v", err)
	}
	st, err := store.LoadTUIState(dir)
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.Collection != "venues" || st.PageSize != 20 {
		t.Fatalf("unexpected saved state: %+v", st)
	}
}

func TestRun_RequiresBackend(t *testing.T) {
	t.Parallel()

	if err := Run(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error for missing backend")
	}
}
