package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// entryExt is the extension of entry files; temporaries use a dot prefix
// and never carry it.
const entryExt = ".json"

// FileCache keeps one JSON file per entry under a directory. Files are
// sharded into subdirectories named after the first two hex digits of the
// key hash. It is the CLI's default backend.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens (and creates, if needed) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the root directory.
func (c *FileCache) Dir() string { return c.dir }

// envelope is the on-disk form of an entry. A zero Expires never expires.
type envelope struct {
	Data    []byte    `json:"data"`
	Expires time.Time `json:"expires_at"`
}

func (e envelope) expired(now time.Time) bool {
	return !e.Expires.IsZero() && now.After(e.Expires)
}

// Get returns the entry for key. Unreadable and expired entries are removed
// and reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	file := c.file(key)
	raw, err := os.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	var env envelope
	if json.Unmarshal(raw, &env) != nil || env.expired(c.now()) {
		_ = os.Remove(file)
		return nil, false, nil
	}
	return env.Data, true, nil
}

// Set writes the entry atomically, so a concurrent Get sees either the old
// entry or the new one.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	env := envelope{Data: data}
	if ttl > 0 {
		env.Expires = c.now().Add(ttl)
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return writeAtomic(c.file(key), raw)
}

func writeAtomic(file string, raw []byte) (err error) {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), file)
}

// Delete removes key. Missing keys are ignored.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.file(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear empties the root directory but keeps it.
func (c *FileCache) Clear(context.Context) error {
	shards, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, s := range shards {
		if err := os.RemoveAll(filepath.Join(c.dir, s.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Len counts entry files on disk. Expired entries that were never read
// again are included.
func (c *FileCache) Len() int {
	n := 0
	_ = filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && d.Type().IsRegular() && filepath.Ext(path) == entryExt {
			n++
		}
		return nil
	})
	return n
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

func (c *FileCache) file(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

var (
	_ Cache   = (*FileCache)(nil)
	_ Clearer = (*FileCache)(nil)
)
