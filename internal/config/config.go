// Package config loads scraper settings from a JSON5 file
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"

	"github.com/myusername/tennis-statistic-scraper/internal/telemetry"
)

// DefaultFile is read from the working directory when no path is given
const DefaultFile = "scraper.json5"

// Duration accepts "30s" style strings in the config file
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json5.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Config holds every setting of the scraper
type Config struct {
	RankingsURL string   `json:"rankingsUrl"`
	SiteURL     string   `json:"siteUrl"`
	UserAgent   string   `json:"userAgent"`
	Timeout     Duration `json:"timeout"`
	// Cloudflare toggles the browser-like TLS transport; nil means on.
	Cloudflare *bool `json:"cloudflare"`

	// Top keeps the first N ranked players; 0 keeps all of them.
	Top         *int     `json:"top"`
	Workers     int      `json:"workers"`
	MaxAttempts int      `json:"maxAttempts"`
	Backoff     Duration `json:"backoff"`
	MaxBackoff  Duration `json:"maxBackoff"`

	// Switches are pointers so a local file can turn off what the base file
	// turned on.
	OutputDir   string `json:"outputDir"`
	SaveHTML    *bool  `json:"saveHtml"`
	CSV         *bool  `json:"csv"`
	MetricsAddr string `json:"metricsAddr"`
	Debug       *bool  `json:"debug"`

	Otlp telemetry.Config `json:"otlp"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		RankingsURL: "https://www.atptour.com/en/rankings/singles",
		SiteURL:     "https://www.atptour.com",
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		Timeout:     Duration(30 * time.Second),
		Top:         Int(100),
		Workers:     1,
		MaxAttempts: 5,
		Backoff:     Duration(2 * time.Second),
		MaxBackoff:  Duration(time.Minute),
		OutputDir:   ".",
	}
}

// Int returns a pointer to v, for the optional int settings.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for the optional switches.
func Bool(v bool) *bool { return &v }

// TopPlayers is the ranking cutoff, 0 meaning no cutoff.
func (c Config) TopPlayers() int {
	if c.Top == nil {
		return 0
	}
	return *c.Top
}

// WriteCSV reports whether CSV files are written.
func (c Config) WriteCSV() bool { return c.CSV != nil && *c.CSV }

// SaveSnapshots reports whether fetched pages are kept on disk.
func (c Config) SaveSnapshots() bool { return c.SaveHTML != nil && *c.SaveHTML }

// DebugLogging reports whether verbose console logging is on.
func (c Config) DebugLogging() bool { return c.Debug != nil && *c.Debug }

// CloudflareEnabled reports whether the bypass transport should be used.
func (c Config) CloudflareEnabled() bool {
	return c.Cloudflare == nil || *c.Cloudflare
}

// Load reads name and name.local (same extension), the local file taking
// priority, and fills unset fields from Defaults. Missing files are not an
// error.
func Load(name string) (Config, error) {
	var cfg Config

	base, err := readFile(name)
	if err != nil {
		return cfg, err
	}
	if base != nil {
		cfg = *base
	}

	local, err := readFile(localName(name))
	if err != nil {
		return cfg, err
	}
	if local != nil {
		if err := mergo.Merge(&cfg, *local, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return cfg, fmt.Errorf("error merging local config: %w", err)
		}
	}

	if err := mergo.Merge(&cfg, Defaults(), mergo.WithoutDereference); err != nil {
		return cfg, fmt.Errorf("error applying config defaults: %w", err)
	}
	return cfg, nil
}

func readFile(name string) (*Config, error) {
	contents, err := os.ReadFile(name)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config %s: %w", name, err)
	}

	var cfg Config
	if err := json5.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", name, err)
	}
	return &cfg, nil
}

// localName turns "dir/scraper.json5" into "dir/scraper.local.json5".
func localName(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)] + ".local" + ext
}
