package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"huangye/pkg/model"
)

// Disk is the durable place cache: one JSON object mapping place_id to the
// normalized place record. It is loaded once, kept resident, and rewritten
// in full after every successful live fetch. Entries never expire; when the
// live provider is disabled or failing this is the source of truth.
type Disk struct {
	path string

	mu      sync.RWMutex
	entries map[string]model.CachedPlace
}

// OpenDisk loads the cache file at path. A missing file is an empty cache,
// a corrupt file is logged and treated as empty rather than failing startup.
func OpenDisk(path string) *Disk {
	d := &Disk{
		path:    path,
		entries: make(map[string]model.CachedPlace),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read place cache file", "path", path, "error", err)
		}
		return d
	}

	if err := json.Unmarshal(data, &d.entries); err != nil {
		slog.Warn("place cache file is corrupt, starting empty", "path", path, "error", err)
		d.entries = make(map[string]model.CachedPlace)
	}

	return d
}

// Get returns the cached place for placeID.
func (d *Disk) Get(placeID string) (model.CachedPlace, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.entries[placeID]
	return p, ok
}

// Put stores place under placeID and rewrites the cache file. A live result
// always supersedes whatever was stored before.
func (d *Disk) Put(placeID string, place model.CachedPlace) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[placeID] = place
	return d.flushLocked()
}

// Len returns the number of cached places.
func (d *Disk) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// flushLocked writes the whole map via a temp file and rename, so a crash
// mid-write never leaves a torn cache file. Callers must hold d.mu.
func (d *Disk) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	data, err := json.MarshalIndent(d.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal place cache: %w", err)
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write place cache: %w", err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("failed to replace place cache: %w", err)
	}

	return nil
}
