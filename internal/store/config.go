package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
)

const (
	DefaultServer   = "http://localhost:8080"
	DefaultPageSize = 10
)

var DefaultPageSizes = []int{5, 10, 20, 50}

type Config struct {
	// Server is the backend base URL.
	Server string `json:"server,omitempty"`

	// PageSize is the initial rows-per-page for new grids.
	PageSize int `json:"pageSize,omitempty"`

	// PageSizes is the cycle offered by the TUI's +/- keys.
	PageSizes []int `json:"pageSizes,omitempty"`

	// Timeout bounds each backend request (Go duration, e.g. "10s"). Empty means none.
	Timeout string `json:"timeout,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id ("default", "mono").
	Profile string `json:"profile,omitempty"`
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

// ServerOrDefault returns the configured server, or DefaultServer.
func (c *Config) ServerOrDefault() string {
	if c == nil || strings.TrimSpace(c.Server) == "" {
		return DefaultServer
	}
	return strings.TrimSpace(c.Server)
}

func (c *Config) PageSizeOrDefault() int {
	if c == nil || c.PageSize < 1 {
		return DefaultPageSize
	}
	return c.PageSize
}

// PageSizesOrDefault returns the configured cycle, sorted and deduplicated,
// always containing the effective page size.
func (c *Config) PageSizesOrDefault() []int {
	var sizes []int
	if c != nil {
		for _, n := range c.PageSizes {
			if n > 0 {
				sizes = append(sizes, n)
			}
		}
	}
	if len(sizes) == 0 {
		sizes = slices.Clone(DefaultPageSizes)
	}
	sizes = append(sizes, c.PageSizeOrDefault())
	slices.Sort(sizes)
	return slices.Compact(sizes)
}

func (c *Config) TimeoutOrZero() (time.Duration, error) {
	if c == nil || strings.TrimSpace(c.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(c.Timeout))
	if err != nil {
		return 0, fmt.Errorf("config timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config timeout %q: must not be negative", c.Timeout)
	}
	return d, nil
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.ticketdesk).
	if v := strings.TrimSpace(os.Getenv("TICKETDESK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ticketdesk"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads the global config. A missing file yields an empty config.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile reads a config file that may contain comments and trailing
// commas.
func LoadConfigFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(b), &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigFile(path, cfg)
}

func SaveConfigFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	// Keep a copy of the previous config; failures here must not block the save.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	// Unique temp name so a CLI and a TUI writing at once cannot clobber each other.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ConfigKeys lists the keys accepted by Set, in display order.
var ConfigKeys = []string{"server", "pageSize", "pageSizes", "timeout", "tui.profile", "tui.glyphs"}

// Set assigns one key from its string form. An empty value clears the key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "server":
		c.Server = value
	case "pageSize":
		if value == "" {
			c.PageSize = 0
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("pageSize: want a positive integer, got %q", value)
		}
		c.PageSize = n
	case "pageSizes":
		if value == "" {
			c.PageSizes = nil
			return nil
		}
		var sizes []int
		for _, part := range strings.Split(value, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 1 {
				return fmt.Errorf("pageSizes: want comma-separated positive integers, got %q", value)
			}
			sizes = append(sizes, n)
		}
		c.PageSizes = sizes
	case "timeout":
		if value != "" {
			if d, err := time.ParseDuration(value); err != nil || d < 0 {
				return fmt.Errorf("timeout: want a duration like 10s, got %q", value)
			}
		}
		c.Timeout = value
	case "tui.profile", "tui.glyphs":
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		if key == "tui.profile" {
			c.TUI.Profile = value
		} else {
			if value != "" && value != "unicode" && value != "ascii" {
				return fmt.Errorf("tui.glyphs: want unicode or ascii, got %q", value)
			}
			c.TUI.Glyphs = value
		}
		if *c.TUI == (TUIConfig{}) {
			c.TUI = nil
		}
	default:
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(ConfigKeys, ", "))
	}
	return nil
}
