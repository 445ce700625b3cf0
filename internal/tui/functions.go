package tui

import (
	"errors"
	"fmt"
	"strings"

	"ticketdesk/internal/backend"
	"ticketdesk/internal/grid"
	"ticketdesk/internal/model"
	"ticketdesk/internal/publish"
	"ticketdesk/internal/schema"
	"ticketdesk/internal/validate"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fnKind int

const (
	fnDeleteByComment fnKind = iota
	fnMinEvent
	fnCountCommentLess
	fnSell
	fnCloneVIP
)

type fnSpec struct {
	kind   fnKind
	title  string
	fields []string
	// mutates marks operations that change backend data; success remounts
	// the grid.
	mutates bool
}

var fnSpecs = []fnSpec{
	{kind: fnDeleteByComment, title: "Delete tickets by comment", fields: []string{"Comment"}, mutates: true},
	{kind: fnMinEvent, title: "Ticket with the minimal event"},
	{kind: fnCountCommentLess, title: "Count tickets with a smaller comment", fields: []string{"Comment"}},
	{kind: fnSell, title: "Sell a ticket", fields: []string{"Ticket ID", "Person ID", "Amount"}, mutates: true},
	{kind: fnCloneVIP, title: "Clone a ticket as VIP", fields: []string{"Ticket ID"}, mutates: true},
}

type fnResultMsg struct {
	kind fnKind
	text string
	rec  grid.Record
	err  error
}

type functionsModel struct {
	cursor int
	// focus is -1 on the operation list, otherwise an input index.
	focus  int
	inputs []textinput.Model
	busy   bool

	resultText string
	resultRec  grid.Record
	resultErr  bool
}

func newFunctionsModel() functionsModel {
	f := functionsModel{focus: -1}
	f.setInputs()
	return f
}

func (f *functionsModel) spec() fnSpec { return fnSpecs[f.cursor] }

func (f *functionsModel) setInputs() {
	sp := f.spec()
	f.inputs = make([]textinput.Model, len(sp.fields))
	for i, name := range sp.fields {
		in := textinput.New()
		in.Prompt = name + ": "
		in.CharLimit = 200
		f.inputs[i] = in
	}
	f.focus = -1
}

func (f *functionsModel) reset() {
	f.busy = false
	f.resultText, f.resultRec, f.resultErr = "", nil, false
	f.setInputs()
}

func (f *functionsModel) focusInput(i int) tea.Cmd {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	if i < 0 || i >= len(f.inputs) {
		f.focus = -1
		return nil
	}
	return f.inputs[i].Focus()
}

func (f *functionsModel) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (m appModel) updateFunctions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.fn
	switch msg.String() {
	case "esc":
		if f.focus >= 0 {
			f.focusInput(-1)
			return m, nil
		}
		m.view = viewGrid
		return m, nil
	case "tab":
		next := f.focus + 1
		if next >= len(f.inputs) {
			next = -1
		}
		cmd := f.focusInput(next)
		return m, cmd
	case "shift+tab":
		prev := f.focus - 1
		if f.focus < 0 {
			prev = len(f.inputs) - 1
		}
		cmd := f.focusInput(prev)
		return m, cmd
	case "enter":
		if f.busy {
			return m, nil
		}
		cmd, err := m.submitFunction()
		if err != nil {
			f.resultText, f.resultRec, f.resultErr = err.Error(), nil, true
			return m, nil
		}
		f.busy = true
		f.resultText, f.resultRec, f.resultErr = "running"+glyphEllipsis(), nil, false
		return m, cmd
	}

	if f.focus < 0 {
		switch msg.String() {
		case "up", "k":
			// The pending result belongs to the selected operation.
			if f.cursor > 0 && !f.busy {
				f.cursor--
				f.reset()
			}
		case "down", "j":
			if f.cursor < len(fnSpecs)-1 && !f.busy {
				f.cursor++
				f.reset()
			}
		case "q":
			m.view = viewGrid
		}
		return m, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

// submitFunction validates the form and returns the command that calls the
// backend.
func (m appModel) submitFunction() (tea.Cmd, error) {
	b, ctx := m.opts.Backend, m.ctx
	sp := m.fn.spec()
	vals := m.fn.values()

	switch sp.kind {
	case fnDeleteByComment:
		comment, err := validate.Comment(vals[0])
		if err != nil {
			return nil, err
		}
		return func() tea.Msg {
			err := b.DeleteByComment(ctx, comment)
			return fnResultMsg{kind: sp.kind, err: err, text: fmt.Sprintf("deleted tickets with comment %q", comment)}
		}, nil

	case fnMinEvent:
		return func() tea.Msg {
			rec, err := b.MinEventTicket(ctx)
			return fnResultMsg{kind: sp.kind, rec: rec, err: err}
		}, nil

	case fnCountCommentLess:
		comment, err := validate.Comment(vals[0])
		if err != nil {
			return nil, err
		}
		return func() tea.Msg {
			n, err := b.CountCommentLess(ctx, comment)
			return fnResultMsg{kind: sp.kind, err: err, text: fmt.Sprintf("%d ticket(s) with comment less than %q", n, comment)}
		}, nil

	case fnSell:
		req, err := validate.Sell(validate.SellInput{TicketID: vals[0], PersonID: vals[1], Amount: vals[2]})
		if err != nil {
			return nil, err
		}
		return func() tea.Msg {
			err := b.SellTicket(ctx, req)
			return fnResultMsg{kind: sp.kind, err: err, text: fmt.Sprintf("sold ticket %d to person %d", req.TicketID, req.PersonID)}
		}, nil

	case fnCloneVIP:
		id, err := validate.ID(vals[0])
		if err != nil {
			return nil, err
		}
		return func() tea.Msg {
			rec, err := b.CloneVIP(ctx, id)
			return fnResultMsg{kind: sp.kind, rec: rec, err: err, text: fmt.Sprintf("cloned ticket %d as VIP", id)}
		}, nil
	}
	return nil, fmt.Errorf("unknown function %d", sp.kind)
}

func (m appModel) applyFnResult(msg fnResultMsg) (tea.Model, tea.Cmd) {
	f := &m.fn
	if !f.busy || msg.kind != f.spec().kind {
		return m, nil
	}
	f.busy = false
	if msg.err != nil {
		text := backend.StatusMessage(msg.err)
		if msg.kind == fnMinEvent && errors.Is(msg.err, backend.ErrNotFound) {
			text = "no tickets with an event"
		}
		m.opts.Logger.Warn("function failed", "function", fnSpecs[msg.kind].title, "err", msg.err)
		f.resultText, f.resultRec, f.resultErr = text, nil, true
		return m, nil
	}

	f.resultText, f.resultRec, f.resultErr = msg.text, msg.rec, false
	if f.resultText == "" && msg.rec != nil {
		f.resultText = publish.Title(model.CollectionTickets, msg.rec)
	}
	m.opts.Logger.Info("function done", "function", fnSpecs[msg.kind].title)
	if !fnSpecs[msg.kind].mutates {
		return m, nil
	}
	m.setStatus(msg.text)
	return m.remount()
}

func (m appModel) viewFunctions() string {
	f := m.fn
	var b strings.Builder
	b.WriteString("\n")
	for i, sp := range fnSpecs {
		line := "  " + sp.title
		if i == f.cursor {
			line = glyphCursor() + " " + sp.title
			if f.focus < 0 {
				line = m.st.rowCur.Render(line)
			} else {
				line = m.st.title.Render(line)
			}
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	for _, in := range f.inputs {
		b.WriteString("  " + in.View() + "\n")
	}
	if len(f.inputs) > 0 {
		b.WriteString("\n")
	}

	if f.resultText != "" || f.resultRec != nil {
		b.WriteString(m.resultCard())
		b.WriteString("\n")
	}
	b.WriteString(m.st.muted.Render("↑/↓ choose  tab fields  enter run  esc back"))
	return b.String()
}

func (m appModel) resultCard() string {
	f := m.fn
	var content string
	switch {
	case f.resultErr:
		content = m.st.statusErr.Render(f.resultText)
	case f.resultRec != nil:
		lines := []string{m.st.title.Render(f.resultText)}
		cols := resultSchema()
		cells := grid.Cells(cols, f.resultRec)
		for i, c := range cols {
			lines = append(lines, fmt.Sprintf("%s: %s", c.Title, cells[i]))
		}
		content = strings.Join(lines, "\n")
	default:
		content = f.resultText
	}
	return m.st.card.Render(content)
}

// resultSchema is the short column set shown on a result card.
func resultSchema() grid.Schema {
	var out grid.Schema
	for _, c := range schema.Tickets() {
		switch c.Key {
		case "id", "name", "price", "type", "number", "event_name", "comment":
			out = append(out, c)
		}
	}
	return out
}
