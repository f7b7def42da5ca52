// Package config carries the basq runtime configuration: cache location and
// freshness, download targets, HTTP politeness and the catalogue origins.
// Values come from defaults, TOML config files and BASQ_* environment
// variables, in that precedence order.
package config

import (
	"path/filepath"
	"time"
)

// Config represents the basq configuration.
type Config struct {
	Cache    CacheConfig    `mapstructure:"cache"`
	Download DownloadConfig `mapstructure:"download"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Sources  SourcesConfig  `mapstructure:"sources"`
}

// CacheConfig configures the catalogue snapshot.
type CacheConfig struct {
	Dir        string `mapstructure:"dir"`          // snapshot directory
	MaxAgeDays int    `mapstructure:"max_age_days"` // freshness window (default: 14)
}

// DownloadConfig configures basis-set downloads.
type DownloadConfig struct {
	Dir     string   `mapstructure:"dir"`     // output directory (default: current directory)
	Formats []string `mapstructure:"formats"` // default output formats
}

// HTTPConfig configures the shared polite HTTP client.
type HTTPConfig struct {
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"` // 0 disables pacing
	UserAgent         string `mapstructure:"user_agent"`
}

// SourcesConfig selects and points the catalogue origins.
type SourcesConfig struct {
	BSE    BSEConfig    `mapstructure:"bse"`
	Ccrepo CcrepoConfig `mapstructure:"ccrepo"`
	Local  LocalConfig  `mapstructure:"local"`
}

// BSEConfig configures the Basis Set Exchange origin.
type BSEConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

// CcrepoConfig configures the ccRepo origin. The site only serves plain
// http.
type CcrepoConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

// LocalConfig points at a hand-maintained directory of basis-set files. An
// empty path disables the origin.
type LocalConfig struct {
	Path string `mapstructure:"path"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// CacheFile returns the path of the catalogue snapshot.
func (c *Config) CacheFile() string {
	return filepath.Join(c.Cache.Dir, "catalog.yaml")
}

// CacheMaxAge returns the freshness window as a duration.
func (c *Config) CacheMaxAge() time.Duration {
	return time.Duration(c.Cache.MaxAgeDays) * 24 * time.Hour
}

// HTTPTimeout returns the request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
