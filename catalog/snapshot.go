package catalog

import (
	"time"

	"github.com/qbanex/basq/errors"
	"gopkg.in/yaml.v3"
)

// snapshotVersion guards the on-disk layout. Files carrying any other value
// are treated as corrupt and rebuilt.
const snapshotVersion = 1

type snapshotMeta struct {
	Version   int    `yaml:"version"`
	Timestamp string `yaml:"timestamp"`
}

type snapshot struct {
	Meta snapshotMeta `yaml:"meta"`
	List []Entry      `yaml:"list"`
}

// encodeSnapshot serialises the catalogue with its generation time.
func encodeSnapshot(entries []Entry, generatedAt time.Time) ([]byte, error) {
	snap := snapshot{
		Meta: snapshotMeta{
			Version:   snapshotVersion,
			Timestamp: generatedAt.UTC().Format(time.RFC3339Nano),
		},
		List: entries,
	}
	return yaml.Marshal(snap)
}

// decodeSnapshot parses a snapshot file. Every structural problem comes back
// as a cache-corruption error so the cache can treat the file as absent.
func decodeSnapshot(data []byte) ([]Entry, time.Time, error) {
	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, time.Time{}, errors.WrapCacheCorrupt(err, "parsing catalogue snapshot")
	}
	if snap.Meta.Version != snapshotVersion {
		return nil, time.Time{}, errors.WrapCacheCorrupt(
			errors.Newf("unknown snapshot version %d", snap.Meta.Version),
			"validating catalogue snapshot")
	}
	stamp, err := time.Parse(time.RFC3339Nano, snap.Meta.Timestamp)
	if err != nil {
		return nil, time.Time{}, errors.WrapCacheCorrupt(err, "parsing snapshot timestamp")
	}
	return snap.List, stamp, nil
}
