package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table is pre-rendered tabular output. Commands that know their columns
// (record lists) build one directly; everything else is derived from JSON.
type Table struct {
	Headers []string
	Rows    [][]string
	// Caption is printed under the table (e.g. the pager line).
	Caption string
}

// Tabular is implemented by values that render themselves as a table.
type Tabular interface {
	Table() Table
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// WriteTable renders v as a bordered table.
//
// A Table or Tabular renders as-is. An output envelope renders its "data".
// A list of objects becomes one row per object, an object becomes
// field/value rows, and a scalar prints on its own.
func WriteTable(w io.Writer, v any) error {
	t, err := asTable(v)
	if err != nil {
		return err
	}
	out := renderTable(t)
	if t.Caption != "" {
		out += "\n" + t.Caption
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func asTable(v any) (Table, error) {
	switch t := v.(type) {
	case Table:
		return t, nil
	case *Table:
		return *t, nil
	case Tabular:
		return t.Table(), nil
	case map[string]any:
		if data, ok := t["data"]; ok {
			return asTable(data)
		}
	}
	x, err := toGeneric(v)
	if err != nil {
		return Table{}, err
	}
	return genericTable(x), nil
}

func genericTable(x any) Table {
	switch t := x.(type) {
	case []any:
		var (
			headers []string
			seen    = map[string]bool{}
		)
		for _, it := range t {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			for _, k := range sortedKeys(m) {
				if !seen[k] {
					seen[k] = true
					headers = append(headers, k)
				}
			}
		}
		if len(headers) == 0 {
			out := Table{Headers: []string{"value"}}
			for _, it := range t {
				out.Rows = append(out.Rows, []string{cellString(it)})
			}
			return out
		}
		out := Table{Headers: headers}
		for _, it := range t {
			m, _ := it.(map[string]any)
			row := make([]string, len(headers))
			for i, h := range headers {
				row[i] = cellString(m[h])
			}
			out.Rows = append(out.Rows, row)
		}
		return out
	case map[string]any:
		out := Table{Headers: []string{"field", "value"}}
		for _, k := range sortedKeys(t) {
			out.Rows = append(out.Rows, []string{k, cellString(t[k])})
		}
		return out
	default:
		return Table{Headers: []string{"value"}, Rows: [][]string{{cellString(x)}}}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

func renderTable(t Table) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers(t.Headers...).
		Rows(t.Rows...)
	return tbl.Render()
}
