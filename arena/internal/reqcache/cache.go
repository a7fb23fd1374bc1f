// Package reqcache is a content-addressed, TTL-bound response store keyed by
// a logical query signature. Correctness is best-effort and never
// load-bearing: a corrupt record reads as a miss, a failed write is the
// caller's to ignore.
package reqcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Cache is a directory of keyed records, one file per logical request
// signature. There is no locking: this tool never runs two instances against
// the same directory, and last-writer-wins is acceptable if it ever does.
type Cache struct {
	dir string
}

// record is the on-disk layout. There is no schema versioning; a format
// change requires a full wipe (Clear).
type record struct {
	Query   string          `json:"query"`
	Params  string          `json:"params"`
	SavedAt int64           `json:"saved_at"` // unix seconds
	Payload json.RawMessage `json:"payload"`
}

// New opens (creating if needed) the cache directory.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// key derives the record filename from the logical signature. Hash
// collisions are cryptographically negligible and not defended against.
func key(query, params string) string {
	h := sha256.Sum256([]byte(query + "\x00" + params))
	return hex.EncodeToString(h[:]) + ".json"
}

func (c *Cache) path(query, params string) string {
	return filepath.Join(c.dir, key(query, params))
}

// Get returns the cached payload for (query, params) if a record exists and
// is younger than ttl. Expired records are removed on the way out; malformed
// records are a silent miss.
func (c *Cache) Get(query, params string, ttl time.Duration) ([]byte, bool) {
	p := c.path(query, params)
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || len(rec.Payload) == 0 {
		return nil, false
	}
	if time.Since(time.Unix(rec.SavedAt, 0)) > ttl {
		_ = os.Remove(p)
		return nil, false
	}
	return rec.Payload, true
}

// Set stores payload under (query, params), stamping the capture time.
// payload must be valid JSON (it is always a raw API response body).
func (c *Cache) Set(query, params string, payload []byte) error {
	rec := record{
		Query:   query,
		Params:  params,
		SavedAt: time.Now().Unix(),
		Payload: json.RawMessage(payload),
	}
	data, err := json.Marshal(&rec)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(query, params), data, 0o644)
}

// Prune removes every record older than ttl (or unreadable) and reports how
// many were dropped.
func (c *Cache) Prune(ttl time.Duration) (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		p := filepath.Join(c.dir, e.Name())
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var rec record
		stale := json.Unmarshal(data, &rec) != nil ||
			time.Since(time.Unix(rec.SavedAt, 0)) > ttl
		if stale {
			if os.Remove(p) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// Clear removes every record.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
