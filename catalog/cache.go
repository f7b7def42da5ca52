package catalog

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/logger"
)

// DefaultMaxAge is how long a catalogue snapshot stays fresh.
const DefaultMaxAge = 14 * 24 * time.Hour

// Cache persists the aggregated catalogue as a single YAML snapshot and
// decides when it must be rebuilt. It is not safe for concurrent writers;
// the tool runs one short-lived invocation at a time.
type Cache struct {
	path   string
	maxAge time.Duration
	agg    *Aggregator

	// now is swapped out in tests to exercise freshness without sleeping.
	now func() time.Time
}

// NewCache wires a cache over the snapshot at path. A maxAge of zero or
// less makes every Get rebuild.
func NewCache(path string, maxAge time.Duration, agg *Aggregator) *Cache {
	return &Cache{
		path:   path,
		maxAge: maxAge,
		agg:    agg,
		now:    time.Now,
	}
}

// Get returns the catalogue, serving the persisted snapshot while it is
// fresh and rebuilding it otherwise. force skips the freshness check. A
// failed rebuild leaves the previous snapshot untouched.
func (c *Cache) Get(ctx context.Context, force bool) ([]Entry, error) {
	if !force {
		if entries, ok := c.loadFresh(); ok {
			return entries, nil
		}
	}
	return c.rebuild(ctx)
}

// Stamp reports the generation time of the persisted snapshot, if a valid
// one exists.
func (c *Cache) Stamp() (time.Time, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return time.Time{}, false
	}
	_, stamp, err := decodeSnapshot(data)
	if err != nil {
		return time.Time{}, false
	}
	return stamp, true
}

// loadFresh reads the snapshot, returning false on miss, corruption or
// staleness. Corruption is self-healing and never escapes this method.
func (c *Cache) loadFresh() ([]Entry, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnw("unreadable catalogue snapshot, rebuilding",
				"path", c.path,
				"error", err)
		}
		return nil, false
	}
	entries, stamp, err := decodeSnapshot(data)
	if err != nil {
		logger.Warnw("corrupt catalogue snapshot, rebuilding",
			"path", c.path,
			"error", err)
		return nil, false
	}
	age := c.now().UTC().Sub(stamp)
	if age >= c.maxAge {
		logger.Debugw("catalogue snapshot stale",
			"age", age,
			"max_age", c.maxAge)
		return nil, false
	}
	logger.Debugw("serving catalogue from snapshot",
		"path", c.path,
		"entries", len(entries),
		"age", age)
	return entries, true
}

func (c *Cache) rebuild(ctx context.Context) ([]Entry, error) {
	entries, err := c.agg.Aggregate(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.persist(entries); err != nil {
		return nil, err
	}
	logger.Infow("catalogue rebuilt",
		"entries", len(entries),
		"path", c.path)
	return entries, nil
}

// persist writes the snapshot through a temp file and rename so a failed
// write never clobbers the previous snapshot.
func (c *Cache) persist(entries []Entry) error {
	data, err := encodeSnapshot(entries, c.now())
	if err != nil {
		return errors.Wrap(err, "encoding catalogue snapshot")
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating cache directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.yaml")
	if err != nil {
		return errors.Wrap(err, "creating snapshot temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "writing snapshot temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "closing snapshot temp file")
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "replacing snapshot %s", c.path)
	}
	return nil
}
