package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("TICKETDESK_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerOrDefault() != DefaultServer {
		t.Fatalf("server = %q, want %q", cfg.ServerOrDefault(), DefaultServer)
	}
	if cfg.PageSizeOrDefault() != DefaultPageSize {
		t.Fatalf("pageSize = %d, want %d", cfg.PageSizeOrDefault(), DefaultPageSize)
	}
}

func TestLoadConfig_AcceptsCommentsAndTrailingCommas(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TICKETDESK_CONFIG_DIR", dir)

	raw := `{
  // staging backend
  "server": "http://staging:9000",
  "pageSize": 20,
  /* sizes offered by +/- */
  "pageSizes": [10, 20, 40,],
  "timeout": "5s",
}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerOrDefault() != "http://staging:9000" {
		t.Fatalf("server = %q", cfg.Server)
	}
	if diff := cmp.Diff([]int{10, 20, 40}, cfg.PageSizesOrDefault()); diff != "" {
		t.Fatalf("pageSizes mismatch (-want +got):\n%s", diff)
	}
	d, err := cfg.TimeoutOrZero()
	if err != nil || d != 5*time.Second {
		t.Fatalf("timeout = %v, %v; want 5s", d, err)
	}
}

func TestLoadConfig_RejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TICKETDESK_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"pageSize": "many"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestPageSizesOrDefault_IncludesPageSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  *Config
		want []int
	}{
		{name: "nil", cfg: nil, want: []int{5, 10, 20, 50}},
		{name: "defaults", cfg: &Config{}, want: []int{5, 10, 20, 50}},
		{name: "odd page size", cfg: &Config{PageSize: 15}, want: []int{5, 10, 15, 20, 50}},
		{name: "custom dedup", cfg: &Config{PageSize: 25, PageSizes: []int{50, 25, 0, 25}}, want: []int{25, 50}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, tc.cfg.PageSizesOrDefault()); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigSet(t *testing.T) {
	t.Parallel()

	var cfg Config
	for _, kv := range [][2]string{
		{"server", "http://example:1"},
		{"pageSize", "20"},
		{"pageSizes", "10, 20,30"},
		{"timeout", "2s"},
		{"tui.glyphs", "ascii"},
	} {
		if err := cfg.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("Set(%s): %v", kv[0], err)
		}
	}
	want := Config{
		Server:    "http://example:1",
		PageSize:  20,
		PageSizes: []int{10, 20, 30},
		Timeout:   "2s",
		TUI:       &TUIConfig{Glyphs: "ascii"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	// Clearing the last tui key drops the section.
	if err := cfg.Set("tui.glyphs", ""); err != nil {
		t.Fatalf("clear glyphs: %v", err)
	}
	if cfg.TUI != nil {
		t.Fatalf("expected tui section to be dropped, got %#v", cfg.TUI)
	}

	for _, kv := range [][2]string{
		{"pageSize", "0"},
		{"pageSize", "ten"},
		{"pageSizes", "5,x"},
		{"timeout", "soon"},
		{"tui.glyphs", "emoji"},
		{"color", "red"},
	} {
		if err := cfg.Set(kv[0], kv[1]); err == nil {
			t.Fatalf("Set(%s, %s): expected error", kv[0], kv[1])
		}
	}
}

func TestSaveConfig_WritesBackupOfPrevious(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TICKETDESK_CONFIG_DIR", dir)

	if err := SaveConfig(&Config{Server: "http://one"}); err != nil {
		t.Fatalf("SaveConfig(one): %v", err)
	}
	if err := SaveConfig(&Config{Server: "http://two"}); err != nil {
		t.Fatalf("SaveConfig(two): %v", err)
	}

	path, _ := ConfigPath()
	bak, err := LoadConfigFile(path + ".bak")
	if err != nil {
		t.Fatalf("load backup: %v", err)
	}
	if bak.Server != "http://one" {
		t.Fatalf("backup server = %q, want http://one", bak.Server)
	}
	cur, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cur.Server != "http://two" {
		t.Fatalf("server = %q, want http://two", cur.Server)
	}
}

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("TICKETDESK_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&Config{Server: "http://seed"}); err != nil {
		t.Fatalf("SaveConfig(seed): %v", err)
	}

	const n = 64
	errCh := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			cfg, err := LoadConfig()
			if err != nil {
				errCh <- err
				return
			}
			cfg.Server = fmt.Sprintf("http://host-%d", i)
			cfg.PageSize = i + 1
			if err := SaveConfig(cfg); err != nil {
				errCh <- err
			}
		}(i)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}
	if t.Failed() {
		return
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config.json: %v", err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("config.json corrupted/unparseable: %v\nraw:\n%s", err, string(raw))
	}

	ents, err := os.ReadDir(cfgDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, "config.json.") && strings.HasSuffix(name, ".tmp") {
			t.Fatalf("leftover temp file: %s", name)
		}
	}
}
