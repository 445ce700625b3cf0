package tui

import (
	"fmt"
	"strings"

	"ticketdesk/internal/grid"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	minColWidth = 4
	maxColWidth = 28
	colGap      = 2
)

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewDetail:
		body = m.viewDetail()
	case viewLookup:
		body = m.viewLookup()
	case viewFunctions:
		body = m.viewFunctions()
	default:
		body = m.viewGrid()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewTitle(), body)
}

func (m appModel) viewTitle() string {
	tabs := make([]string, 0, len(m.colls))
	for i, c := range m.colls {
		if i == m.collIdx {
			tabs = append(tabs, m.st.tabActive.Render(string(c)))
		} else {
			tabs = append(tabs, m.st.tab.Render(string(c)))
		}
	}
	left := m.st.title.Render("ticketdesk") + "  " + strings.Join(tabs, "")
	if m.opts.Server == "" {
		return left
	}
	right := m.st.muted.Render(m.opts.Server)
	gap := m.width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 2 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// colWidth sizes a column to its header and the visible cells.
func colWidth(h grid.HeaderCell, rows [][]string, i int) int {
	w := xansi.StringWidth(h.Label())
	for _, r := range rows {
		w = max(w, xansi.StringWidth(r[i]))
	}
	return min(max(w, minColWidth), maxColWidth)
}

func (m appModel) widths(res grid.Result) []int {
	header := m.g.Header()
	cells := make([][]string, len(res.Rows))
	for i, r := range res.Rows {
		cells[i] = m.g.Cells(r)
	}
	out := make([]int, len(header))
	for i, h := range header {
		out[i] = colWidth(h, cells, i)
	}
	return out
}

// visibleColumns returns the column range [from, to) that fits the screen
// starting at colOffset.
func (m appModel) visibleColumns(widths []int) (int, int) {
	avail := max(m.width-2, minColWidth)
	used := 0
	to := m.colOffset
	for to < len(widths) {
		w := widths[to] + colGap
		if used+w > avail && to > m.colOffset {
			break
		}
		used += w
		to++
	}
	return m.colOffset, to
}

// fitColumns scrolls horizontally so the column cursor stays on screen.
func (m *appModel) fitColumns() {
	if m.colCursor < m.colOffset {
		m.colOffset = m.colCursor
		return
	}
	widths := m.widths(m.g.View())
	for m.colOffset < m.colCursor {
		if _, to := m.visibleColumns(widths); m.colCursor < to {
			return
		}
		m.colOffset++
	}
}

func fit(s string, w int) string {
	if xansi.StringWidth(s) > w {
		s = xansi.Truncate(s, w, glyphEllipsis())
	}
	return s + strings.Repeat(" ", max(0, w-xansi.StringWidth(s)))
}

func (m appModel) viewGrid() string {
	var b strings.Builder

	if m.searching || m.g.State().Query != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	res := m.g.View()
	widths := m.widths(res)
	from, to := m.visibleColumns(widths)
	sep := strings.Repeat(" ", colGap)

	header := m.g.Header()
	hcells := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		h := header[i]
		h.Glyph = glyphSort(h.Glyph)
		label := fit(h.Label(), widths[i])
		if i == m.colCursor {
			hcells = append(hcells, m.st.headerCur.Render(label))
		} else {
			hcells = append(hcells, m.st.header.Render(label))
		}
	}
	b.WriteString("  " + strings.Join(hcells, sep) + "\n")

	switch {
	case m.loading:
		b.WriteString(m.st.muted.Render("  loading" + glyphEllipsis()))
		b.WriteString("\n")
	case res.Matched == 0:
		b.WriteString(m.st.muted.Render("  " + res.EmptyMessage()))
		b.WriteString("\n")
	default:
		for ri, r := range res.Rows {
			cells := m.g.Cells(r)
			parts := make([]string, 0, to-from)
			for i := from; i < to; i++ {
				parts = append(parts, fit(cells[i], widths[i]))
			}
			line := strings.Join(parts, sep)
			if ri == m.rowCursor {
				b.WriteString(m.st.rowCur.Render(glyphCursor() + " " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.viewPager(res))
	b.WriteString("\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(m.st.statusErr.Render(m.status))
		} else {
			b.WriteString(m.st.statusOK.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// emptyMessage distinguishes an empty collection from a filter that matched
// nothing.
func (m appModel) viewPager(res grid.Result) string {
	prev := m.st.pagerOff.Render(glyphPrev())
	if res.HasPrev() {
		prev = m.st.pagerOn.Render(glyphPrev())
	}
	next := m.st.pagerOff.Render(glyphNext())
	if res.HasNext() {
		next = m.st.pagerOn.Render(glyphNext())
	}
	info := fmt.Sprintf("%d of %d", res.Matched, res.Total)
	if res.Matched == res.Total {
		info = fmt.Sprintf("%d", res.Total)
	}
	info += fmt.Sprintf(" %s %d/page", glyphSep(), m.g.State().PageSize)
	return "  " + prev + "  " + res.Label() + "  " + next + "   " + m.st.muted.Render(info)
}

func (m appModel) viewDetail() string {
	lines := strings.Split(m.detailBody, "\n")
	start := min(m.detailScroll, max(0, len(lines)-1))
	end := min(len(lines), start+m.bodyHeight())
	body := strings.Join(lines[start:end], "\n")
	footer := m.st.muted.Render(fmt.Sprintf("%s  %s  ↑/↓ scroll  esc back", m.detailTitle, glyphSep()))
	return body + "\n" + footer
}

func (m appModel) viewLookup() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.lookup.View())
	b.WriteString("\n")
	if m.lookupErr != "" {
		b.WriteString(m.st.statusErr.Render(m.lookupErr))
		b.WriteString("\n")
	}
	if recent := m.state.RecentTicketIDs; len(recent) > 0 {
		ids := make([]string, len(recent))
		for i, id := range recent {
			ids[i] = fmt.Sprint(id)
		}
		b.WriteString(m.st.muted.Render("recent: " + strings.Join(ids, ", ") + "  (tab to cycle)"))
		b.WriteString("\n")
	}
	b.WriteString(m.st.muted.Render("enter open  esc back"))
	return b.String()
}
