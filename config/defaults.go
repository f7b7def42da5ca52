package config

import (
	"os"
	"path/filepath"

	"github.com/qbanex/basq/version"
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Cache defaults
	v.SetDefault("cache.dir", defaultCacheDir())
	v.SetDefault("cache.max_age_days", 14)

	// Download defaults
	v.SetDefault("download.dir", ".")
	v.SetDefault("download.formats", []string{"gaussian94"})

	// HTTP defaults; the origins are small academic servers, keep the rate low
	v.SetDefault("http.timeout_seconds", 60)
	v.SetDefault("http.requests_per_minute", 30)
	v.SetDefault("http.user_agent", "basq/"+version.Version)

	// Source defaults
	v.SetDefault("sources.bse.enabled", true)
	v.SetDefault("sources.bse.base_url", "https://www.basissetexchange.org")
	v.SetDefault("sources.ccrepo.enabled", true)
	// https does not work for ccrepo
	v.SetDefault("sources.ccrepo.base_url", "http://grant-hill.group.shef.ac.uk/ccrepo")
	v.SetDefault("sources.local.path", "")
}

// defaultCacheDir places the snapshot under the platform cache directory,
// falling back to a dot directory in $HOME.
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "basq")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".basq-cache"
	}
	return filepath.Join(home, ".basq-cache")
}
