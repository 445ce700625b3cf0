package docs

import (
	"strings"
	"testing"
)

func TestTopicsAndGet(t *testing.T) {
	t.Parallel()

	topics := Topics()
	want := []string{"config", "functions", "grid", "output", "tui"}
	if strings.Join(topics, ",") != strings.Join(want, ",") {
		t.Fatalf("topics = %v, want %v", topics, want)
	}
	for _, topic := range topics {
		body, ok := Get(topic)
		if !ok || !strings.HasPrefix(body, "# ") {
			t.Fatalf("Get(%q) = %q, %v", topic, body, ok)
		}
	}
	if _, ok := Get(" GRID "); !ok {
		t.Fatalf("expected case/space-insensitive lookup")
	}
	for _, bad := range []string{"", "nope", "../docs", "grid.md"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("Get(%q): expected miss", bad)
		}
	}
}
