package config

import (
	"net/url"

	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/render"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Cache max age: 0 = rebuild on every run, negative = invalid
	if c.Cache.MaxAgeDays < 0 {
		return errors.Newf("cache.max_age_days must be >= 0, got %d", c.Cache.MaxAgeDays)
	}

	if c.HTTP.TimeoutSeconds <= 0 {
		return errors.Newf("http.timeout_seconds must be > 0, got %d", c.HTTP.TimeoutSeconds)
	}

	// Requests per minute: 0 = no pacing, negative = invalid
	if c.HTTP.RequestsPerMinute < 0 {
		return errors.Newf("http.requests_per_minute must be >= 0, got %d", c.HTTP.RequestsPerMinute)
	}

	// Default download formats must name known renderers
	if _, err := render.ParseTags(c.Download.Formats); err != nil {
		return errors.Wrap(err, "download.formats")
	}

	if c.Sources.BSE.Enabled {
		if err := validateBaseURL("sources.bse.base_url", c.Sources.BSE.BaseURL); err != nil {
			return err
		}
	}
	if c.Sources.Ccrepo.Enabled {
		if err := validateBaseURL("sources.ccrepo.base_url", c.Sources.Ccrepo.BaseURL); err != nil {
			return err
		}
	}

	if !c.Sources.BSE.Enabled && !c.Sources.Ccrepo.Enabled && c.Sources.Local.Path == "" {
		return errors.New("no catalogue sources enabled")
	}

	return nil
}

func validateBaseURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, "%s is not a valid URL", key)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Newf("%s must use http or https, got %q", key, raw)
	}
	if u.Host == "" {
		return errors.Newf("%s is missing a host, got %q", key, raw)
	}
	return nil
}
