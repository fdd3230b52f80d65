package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the FocusKeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the FocusKeeper REST API.
//   - RequestTimeout: per-request deadline.
//   - TokenFile: where the session token is kept between invocations.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	TokenFile      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.TokenFile = defaultTokenFile()
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "focuskeeper", "token")
}
