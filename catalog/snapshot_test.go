package catalog

import (
	"testing"
	"time"

	"github.com/qbanex/basq/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	entries := sampleCatalogue()
	stamp := time.Date(2024, 5, 1, 12, 30, 45, 123456789, time.UTC)

	data, err := encodeSnapshot(entries, stamp)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-05-01T12:30:45.123456789Z")

	decoded, decodedStamp, err := decodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
	assert.True(t, decodedStamp.Equal(stamp))
}

func TestSnapshotCorruption(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", ":::: nope"},
		{"missing meta", "list: []\n"},
		{"unknown version", "meta:\n  version: 99\n  timestamp: 2024-05-01T12:30:45Z\nlist: []\n"},
		{"bad timestamp", "meta:\n  version: 1\n  timestamp: yesterday\nlist: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeSnapshot([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsCacheCorrupt(err))
		})
	}
}
