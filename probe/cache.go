package probe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// DefaultCachePath is the default probe cache location, relative to the
// working directory.
const DefaultCachePath = ".flipbook/probe.cache"

// Cache persists probe records in a length-prefixed msgpack file, one
// record per sequence prefix.
type Cache struct {
	path string
}

// NewCache creates a cache backed by the file at path. Empty uses
// DefaultCachePath.
func NewCache(path string) *Cache {
	if path == "" {
		path = DefaultCachePath
	}
	return &Cache{path: path}
}

// Path returns the cache file location.
func (c *Cache) Path() string { return c.path }

// Load reads every record from the cache file, keyed by prefix. A
// missing file is an empty cache. Later records for the same prefix
// supersede earlier ones.
func (c *Cache) Load() (map[string]*Record, error) {
	f, err := os.Open(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]*Record{}, nil
		}
		return nil, fmt.Errorf("probe cache: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	records := make(map[string]*Record)
	for {
		record, err := ReadRecord(f)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("probe cache: %s: %w", c.path, err)
		}
		records[record.Prefix] = record
	}
}

// Store rewrites the cache file with the given records, in prefix
// order. The parent directory is created if needed and the write is
// atomic via a rename.
func (c *Cache) Store(records map[string]*Record) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("probe cache: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "probe-*.tmp")
	if err != nil {
		return fmt.Errorf("probe cache: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	prefixes := make([]string, 0, len(records))
	for prefix := range records {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	for _, prefix := range prefixes {
		if err := WriteRecord(tmp, records[prefix]); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("probe cache: close temp: %w", err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("probe cache: rename: %w", err)
	}
	return nil
}

// Upsert loads the cache, replaces the record for its prefix, and
// stores the result.
func (c *Cache) Upsert(record *Record) error {
	records, err := c.Load()
	if err != nil {
		return err
	}
	records[record.Prefix] = record
	return c.Store(records)
}
