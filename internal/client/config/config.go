// Package config loads runtime configuration for the worklog CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   base URL (or host:port) of the worklog API
//	-i int      request timeout (seconds)
//	-o string   directory exported reports are saved to
//
// JSON schema:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "reports_dir": "reports"
//	}
package config

import "time"

// Config holds runtime settings for the worklog CLI.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	ReportsDir     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.ReportsDir = "reports"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
