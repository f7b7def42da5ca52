package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qbanex/basq/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	origin  string
	entries []Entry
	err     error
	calls   int
}

func (s *fakeSource) Origin() string { return s.origin }

func (s *fakeSource) List(ctx context.Context) ([]Entry, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func newTestCache(t *testing.T, srcs ...Source) (*Cache, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache", "catalog.yaml")
	return NewCache(path, DefaultMaxAge, NewAggregator(srcs...)), path
}

func TestAggregatorOrderAndTagging(t *testing.T) {
	first := &fakeSource{origin: "bse", entries: []Entry{
		{Name: "pc-2", Ref: "pc-2"},
		{Name: "cc-pVDZ", Ref: "cc-pvdz"},
	}}
	second := &fakeSource{origin: "ccrepo", entries: []Entry{
		{Name: "cc-pVDZ", Ref: "C:cc-pvdz"},
	}}

	agg := NewAggregator(first)
	agg.Register(second)
	assert.Equal(t, []string{"bse", "ccrepo"}, agg.Origins())

	entries, err := agg.Aggregate(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3, "duplicate names across origins are kept")
	assert.Equal(t, []string{"pc-2", "cc-pVDZ", "cc-pVDZ"}, names(entries))
	assert.Equal(t, "bse", entries[0].Origin)
	assert.Equal(t, "bse", entries[1].Origin)
	assert.Equal(t, "ccrepo", entries[2].Origin)
}

func TestAggregatorFailsWhole(t *testing.T) {
	healthy := &fakeSource{origin: "bse", entries: []Entry{{Name: "pc-2"}}}
	broken := &fakeSource{origin: "ccrepo", err: errors.New("connection refused")}

	entries, err := NewAggregator(healthy, broken).Aggregate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))
	assert.Contains(t, err.Error(), "ccrepo")
	assert.Nil(t, entries, "no partial catalogue on failure")
}

func TestCacheMissRebuilds(t *testing.T) {
	src := &fakeSource{origin: "bse", entries: []Entry{{Name: "pc-2", Ref: "pc-2"}}}
	cache, path := newTestCache(t, src)

	entries, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bse", entries[0].Origin)
	assert.Equal(t, 1, src.calls)

	_, err = os.Stat(path)
	require.NoError(t, err, "snapshot must be persisted")
}

func TestCacheFreshServedWithoutSources(t *testing.T) {
	src := &fakeSource{origin: "bse", entries: []Entry{
		{Name: "pc-2", Ref: "pc-2"},
		{Name: "cc-pVDZ", Ref: "cc-pvdz"},
	}}
	cache, _ := newTestCache(t, src)
	ctx := context.Background()

	first, err := cache.Get(ctx, false)
	require.NoError(t, err)
	second, err := cache.Get(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls, "fresh snapshot must not touch sources")
	assert.Equal(t, first, second)
}

func TestCacheFreshnessWindow(t *testing.T) {
	src := &fakeSource{origin: "bse", entries: []Entry{{Name: "pc-2"}}}
	cache, _ := newTestCache(t, src)
	ctx := context.Background()

	t0 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return t0 }
	_, err := cache.Get(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 1, src.calls)

	cache.now = func() time.Time { return t0.Add(DefaultMaxAge - time.Second) }
	_, err = cache.Get(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "just inside the window stays fresh")

	cache.now = func() time.Time { return t0.Add(DefaultMaxAge) }
	_, err = cache.Get(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls, "at max age the snapshot is stale")
}

func TestCacheForceRebuilds(t *testing.T) {
	src := &fakeSource{origin: "bse", entries: []Entry{{Name: "pc-2"}}}
	cache, _ := newTestCache(t, src)
	ctx := context.Background()

	_, err := cache.Get(ctx, true)
	require.NoError(t, err)
	_, err = cache.Get(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCacheCorruptSnapshotSelfHeals(t *testing.T) {
	src := &fakeSource{origin: "bse", entries: []Entry{{Name: "pc-2"}}}
	cache, path := newTestCache(t, src)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(":::: scrambled"), 0644))

	entries, err := cache.Get(ctx, false)
	require.NoError(t, err, "corruption is a cache miss, never fatal")
	require.Len(t, entries, 1)
	require.Equal(t, 1, src.calls)

	_, err = cache.Get(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "rewritten snapshot serves from disk again")
}

func TestCacheFailedRebuildKeepsSnapshot(t *testing.T) {
	src := &fakeSource{origin: "bse", entries: []Entry{{Name: "pc-2"}}}
	cache, path := newTestCache(t, src)
	ctx := context.Background()

	_, err := cache.Get(ctx, false)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	src.err = errors.New("connection refused")
	_, err = cache.Get(ctx, true)
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed rebuild must leave the snapshot byte-identical")

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".catalog-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "no temp files left behind")
}

func TestCacheZeroMaxAgeAlwaysRebuilds(t *testing.T) {
	src := &fakeSource{origin: "bse", entries: []Entry{{Name: "pc-2"}}}
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	cache := NewCache(path, 0, NewAggregator(src))
	ctx := context.Background()

	_, err := cache.Get(ctx, false)
	require.NoError(t, err)
	_, err = cache.Get(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCacheStamp(t *testing.T) {
	src := &fakeSource{origin: "bse", entries: []Entry{{Name: "pc-2"}}}
	cache, _ := newTestCache(t, src)

	_, ok := cache.Stamp()
	assert.False(t, ok, "no snapshot yet")

	t0 := time.Date(2024, 5, 1, 9, 0, 0, 42, time.UTC)
	cache.now = func() time.Time { return t0 }
	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)

	stamp, ok := cache.Stamp()
	require.True(t, ok)
	assert.True(t, stamp.Equal(t0))
}
