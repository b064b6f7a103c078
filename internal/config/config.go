package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"simsiac/internal/menu"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SIMSIAC_"

// Config contains configurable parameters for the menu application.
// Use Default() to get sensible defaults, then override as needed.
type Config struct {
	// Menu behaviour
	ScrollMode string   // "page" or "step" (default: "page")
	QuitKeys   []string // Keys that leave the menu (default: q, Q)

	// Layout budget
	HeaderLines    int // Rows reserved for the title chrome (default: 5)
	FooterLines    int // Rows reserved for the help/status line (default: 2)
	FallbackWidth  int // Width used before the terminal reports a size (default: 80)
	FallbackHeight int // Height used before the terminal reports a size (default: 24)

	// Catalog
	CatalogDSN string // DuckDB DSN holding menu entries; empty uses the built-in menu

	// Probes
	ProbeTimeout    time.Duration // Timeout for one probe read (default: 2s)
	HistoryCapacity int           // Readings kept per probe for the chart (default: 31)

	// Logging
	LogFile  string // Rotating log file (default: <user cache>/simsiac/simsiac.log)
	LogLevel string // debug, info, warn, error (default: info)

	// MCP server identity
	MCPServerName    string
	MCPServerVersion string
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		ScrollMode: menu.ScrollPage.String(),
		QuitKeys:   append([]string(nil), menu.DefaultQuitKeys...),

		HeaderLines:    5,
		FooterLines:    2,
		FallbackWidth:  80,
		FallbackHeight: 24,

		ProbeTimeout:    2 * time.Second,
		HistoryCapacity: 31,

		LogFile:  DefaultLogFile(),
		LogLevel: "info",

		MCPServerName:    "simsiac",
		MCPServerVersion: "0.1.0",
	}
}

// DefaultLogFile returns the log path used when none is configured.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "simsiac", "simsiac.log")
}

// WithScrollMode returns a copy of the config with a different scroll mode.
func (c Config) WithScrollMode(mode string) Config {
	c.ScrollMode = mode
	return c
}

// WithQuitKeys returns a copy of the config with different quit keys.
func (c Config) WithQuitKeys(keys ...string) Config {
	c.QuitKeys = append([]string(nil), keys...)
	return c
}

// WithCatalog returns a copy of the config reading menu entries from dsn.
func (c Config) WithCatalog(dsn string) Config {
	c.CatalogDSN = dsn
	return c
}

// WithChrome returns a copy of the config with different header and footer heights.
func (c Config) WithChrome(header, footer int) Config {
	c.HeaderLines = header
	c.FooterLines = footer
	return c
}

// WithProbeTimeout returns a copy of the config with a different probe timeout.
func (c Config) WithProbeTimeout(d time.Duration) Config {
	c.ProbeTimeout = d
	return c
}

// WithLog returns a copy of the config with a different log file and level.
func (c Config) WithLog(file, level string) Config {
	c.LogFile = file
	c.LogLevel = level
	return c
}

// Mode returns the parsed scroll mode. Call Validate first.
func (c Config) Mode() menu.ScrollMode {
	m, _ := menu.ParseScrollMode(c.ScrollMode)
	return m
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	if _, err := menu.ParseScrollMode(c.ScrollMode); err != nil {
		return &ConfigError{Field: "ScrollMode", Message: "must be page or step"}
	}
	if len(c.QuitKeys) == 0 {
		return &ConfigError{Field: "QuitKeys", Message: "must not be empty"}
	}
	if c.HeaderLines < 0 || c.FooterLines < 0 {
		return &ConfigError{Field: "HeaderLines", Message: "chrome heights must not be negative"}
	}
	if c.FallbackWidth <= 0 || c.FallbackHeight <= 0 {
		return &ConfigError{Field: "FallbackWidth", Message: "fallback size must be positive"}
	}
	if c.ProbeTimeout <= 0 {
		return &ConfigError{Field: "ProbeTimeout", Message: "must be positive"}
	}
	if c.HistoryCapacity < 2 {
		return &ConfigError{Field: "HistoryCapacity", Message: "must be at least 2"}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "LogLevel", Message: "must be debug, info, warn or error"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}

// Load reads a .env file from the working directory if present, then applies
// SIMSIAC_* environment variables over the defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv(Default(), os.LookupEnv)
}

// FromEnv overlays environment values found through lookup onto base.
func FromEnv(base Config, lookup func(string) (string, bool)) (Config, error) {
	c := base
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("SCROLL_MODE"); ok {
		c.ScrollMode = v
	}
	if v, ok := get("QUIT_KEYS"); ok {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		c.QuitKeys = keys
	}
	if v, ok := get("CATALOG_DSN"); ok {
		c.CatalogDSN = v
	}
	if v, ok := get("LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"HEADER_LINES", &c.HeaderLines},
		{"FOOTER_LINES", &c.FooterLines},
		{"HISTORY_CAPACITY", &c.HistoryCapacity},
	}
	for _, f := range ints {
		v, ok := get(f.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, &ConfigError{Field: EnvPrefix + f.name, Message: "must be an integer"}
		}
		*f.dst = n
	}

	if v, ok := get("PROBE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, &ConfigError{Field: EnvPrefix + "PROBE_TIMEOUT", Message: "must be a duration"}
		}
		c.ProbeTimeout = d
	}

	return c, c.Validate()
}
