// Package publish renders fetched records as markdown cards, for the
// terminal (glamour) or as files on disk.
package publish

import (
	"bytes"
	"errors"
	"strings"

	"ticketdesk/internal/grid"
	"ticketdesk/internal/model"
	"ticketdesk/internal/schema"
)

// sections groups columns by key prefix. Columns without a listed prefix go
// under the record's own heading.
var sections = []struct {
	prefix string
	title  string
}{
	{"coord_", "Coordinates"},
	{"person_", "Person"},
	{"event_", "Event"},
	{"venue_", "Venue"},
	{"loc_", "Location"},
}

func sectionOf(key string) string {
	for _, s := range sections {
		if strings.HasPrefix(key, s.prefix) {
			return s.title
		}
	}
	return ""
}

// Title is the card heading, e.g. "Ticket #42: Front row".
func Title(coll model.Collection, rec grid.Record) string {
	kind := coll.Singular()
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}
	title := kind
	if id := grid.NumberField("id")(rec); !id.IsAbsent() {
		title += " #" + id.String()
	}
	for _, field := range []string{"name", "passportID"} {
		if v := grid.TextField(field)(rec); !v.IsAbsent() {
			return title + ": " + v.String()
		}
	}
	return title
}

// RenderRecordMarkdown renders rec as a markdown card using the collection's
// column layout. Absent values print as the grid placeholder.
func RenderRecordMarkdown(coll model.Collection, rec grid.Record) (string, error) {
	if rec == nil {
		return "", errors.New("missing record")
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + escape(Title(coll, rec)))
	writeLn("")

	type line struct{ title, value string }
	order := []string{""}
	bySection := map[string][]line{}
	present := map[string]bool{}
	for _, c := range schema.For(coll) {
		sec := sectionOf(c.Key)
		if _, ok := bySection[sec]; !ok && sec != "" {
			order = append(order, sec)
		}
		bySection[sec] = append(bySection[sec], line{title: c.Title, value: c.Display(rec)})
		if !c.Value(rec).IsAbsent() {
			present[sec] = true
		}
	}

	for _, sec := range order {
		if sec != "" {
			writeLn("## " + sec)
			writeLn("")
			if !present[sec] {
				writeLn("_none_")
				writeLn("")
				continue
			}
		}
		for _, l := range bySection[sec] {
			writeLn("- **" + escape(l.title) + ":** " + escape(l.value))
		}
		writeLn("")
	}
	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

// RenderTicketMarkdown is RenderRecordMarkdown for a ticket.
func RenderTicketMarkdown(rec grid.Record) (string, error) {
	return RenderRecordMarkdown(model.CollectionTickets, rec)
}

// RenderIndexMarkdown lists records with links to their cards.
func RenderIndexMarkdown(coll model.Collection, records []grid.Record) string {
	var buf bytes.Buffer
	buf.WriteString("# " + strings.ToUpper(string(coll[:1])) + string(coll[1:]) + "\n\n")
	if len(records) == 0 {
		buf.WriteString("_no data_\n")
		return buf.String()
	}
	for _, r := range records {
		name := fileName(r)
		if name == "" {
			buf.WriteString("- " + escape(Title(coll, r)) + "\n")
			continue
		}
		buf.WriteString("- [" + escape(Title(coll, r)) + "](" + name + ")\n")
	}
	return buf.String()
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

func escape(s string) string {
	return mdEscaper.Replace(s)
}
