package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Price   float64  `json:"price"`
	Comment *string  `json:"comment"`
	Tags    []string `json:"tags,omitempty"`
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{}, "xml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWriteJSON_CompactAndPretty(t *testing.T) {
	t.Parallel()

	v := map[string]any{"data": sample{ID: 1, Name: "Ann", Price: 10.5}}

	var compact bytes.Buffer
	if err := Write(&compact, v, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := compact.String(), `{"data":{"id":1,"name":"Ann","price":10.5,"comment":null}}`+"\n"; got != want {
		t.Fatalf("compact json:\nwant %q\ngot  %q", want, got)
	}

	var pretty bytes.Buffer
	if err := Write(&pretty, v, "", true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(pretty.String(), "\n  \"data\": {\n") {
		t.Fatalf("expected indented json, got:\n%s", pretty.String())
	}
	var round map[string]any
	if err := json.Unmarshal(pretty.Bytes(), &round); err != nil {
		t.Fatalf("pretty output is not json: %v", err)
	}
}

func TestWriteEDN(t *testing.T) {
	t.Parallel()

	v := map[string]any{
		"data":   []any{sample{ID: 2, Name: "Bob", Price: 3}},
		"_hints": []string{"ticketdesk tickets show 2"},
		"meta":   map[string]any{"ok": true},
	}
	var buf bytes.Buffer
	if err := Write(&buf, v, "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:_hints ["ticketdesk tickets show 2"] :data [{:comment nil :id 2 :name "Bob" :price 3}] :meta {:ok true}}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("edn:\nwant %s\ngot  %s", want, got)
	}
}

func TestWriteEDN_PrettyNesting(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"a": []any{1.5, "x"}, "b": map[string]any{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :a [\n    1.5\n    \"x\"\n  ]\n  :b {}\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("pretty edn:\nwant %q\ngot  %q", want, got)
	}
}

func TestWriteYAML_UsesJSONNames(t *testing.T) {
	t.Parallel()

	comment := "front row"
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": sample{ID: 7, Name: "Cy", Price: 2.25, Comment: &comment}}, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got struct {
		Data struct {
			ID      int64   `yaml:"id"`
			Name    string  `yaml:"name"`
			Price   float64 `yaml:"price"`
			Comment string  `yaml:"comment"`
		} `yaml:"data"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("yaml.Unmarshal: %v\n%s", err, buf.String())
	}
	if got.Data.ID != 7 || got.Data.Name != "Cy" || got.Data.Price != 2.25 || got.Data.Comment != "front row" {
		t.Fatalf("unexpected yaml roundtrip: %+v", got.Data)
	}
	if !strings.Contains(buf.String(), "id: 7\n") {
		t.Fatalf("expected integer id, got:\n%s", buf.String())
	}
}

func TestWriteTable_PrebuiltTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tbl := Table{
		Headers: []string{"ID", "Name ▲"},
		Rows:    [][]string{{"1", "Ann"}, {"2", "Bob"}},
		Caption: "page 1 / 1",
	}
	if err := Write(&buf, tbl, "table", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "Name ▲", "Ann", "Bob", "page 1 / 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output:\n%s", want, out)
		}
	}
	if strings.Index(out, "Ann") > strings.Index(out, "Bob") {
		t.Fatalf("rows out of order:\n%s", out)
	}
}

func TestWriteTable_GenericEnvelope(t *testing.T) {
	t.Parallel()

	env := map[string]any{
		"data": []any{
			map[string]any{"id": 1, "name": "Ann"},
			map[string]any{"id": 2, "price": 9.5},
		},
		"meta": map[string]any{"count": 2},
	}
	var buf bytes.Buffer
	if err := WriteTable(&buf, env); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"id", "name", "price", "Ann", "9.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "count") {
		t.Fatalf("meta must not be rendered as rows:\n%s", out)
	}
}

func TestGenericTable_Shapes(t *testing.T) {
	t.Parallel()

	obj := genericTable(map[string]any{"b": int64(2), "a": map[string]any{"x": int64(1)}})
	if len(obj.Rows) != 2 || obj.Rows[0][0] != "a" || obj.Rows[0][1] != `{"x":1}` {
		t.Fatalf("object table = %#v", obj)
	}

	scalar := genericTable(int64(42))
	if len(scalar.Rows) != 1 || scalar.Rows[0][0] != "42" {
		t.Fatalf("scalar table = %#v", scalar)
	}

	list := genericTable([]any{"x", true})
	if len(list.Rows) != 2 || list.Rows[1][0] != "true" {
		t.Fatalf("scalar list table = %#v", list)
	}
}
