package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"huangye/pkg/model"
)

func TestTTLGetSet(t *testing.T) {
	c := NewTTL[string](time.Hour)

	_, ok := c.Get("missing")
	require.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", got)
}

func TestTTLExpiry(t *testing.T) {
	c := NewTTL[string](7 * 24 * time.Hour)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("k", "v")

	// Just inside the TTL.
	now = now.Add(7*24*time.Hour - time.Second)
	_, ok := c.Get("k")
	require.True(t, ok)

	// Past the TTL: treated as absent and evicted.
	now = now.Add(2 * time.Second)
	_, ok = c.Get("k")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestDiskRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places-cache.json")

	d := OpenDisk(path)
	require.Equal(t, 0, d.Len())

	place := model.CachedPlace{
		PlaceID: "ChIJabc",
		Name:    "老王川菜馆",
		Rating:  4.6,
		Geometry: &model.Geometry{
			Lat: 19.43,
			Lng: -99.13,
		},
	}
	require.NoError(t, d.Put("ChIJabc", place))

	// A fresh open sees the persisted entry.
	d2 := OpenDisk(path)
	got, ok := d2.Get("ChIJabc")
	require.True(t, ok)
	require.Equal(t, place, got)
}

func TestDiskSupersede(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places-cache.json")
	d := OpenDisk(path)

	require.NoError(t, d.Put("id", model.CachedPlace{PlaceID: "id", Name: "old"}))
	require.NoError(t, d.Put("id", model.CachedPlace{PlaceID: "id", Name: "new"}))

	got, ok := d.Get("id")
	require.True(t, ok)
	require.Equal(t, "new", got.Name)
}

func TestDiskCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places-cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	// Corrupt file is logged and treated as empty.
	d := OpenDisk(path)
	require.Equal(t, 0, d.Len())
}
