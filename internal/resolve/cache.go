package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"cryswap/internal/registry"
)

// ErrCacheLocked is returned when another build holds the conversion cache.
var ErrCacheLocked = errors.New("conversion cache is locked by another build")

// ConversionCache is the directory of .ogg files produced from pool assets.
// Entries are named after their key and never invalidated.
type ConversionCache struct {
	dir string
}

// NewConversionCache returns a cache rooted at dir.
func NewConversionCache(dir string) *ConversionCache {
	return &ConversionCache{dir: dir}
}

// Dir returns the cache directory.
func (c *ConversionCache) Dir() string { return c.dir }

// Path returns the cache location for key, whether or not it exists.
func (c *ConversionCache) Path(key Key) string {
	return filepath.Join(c.dir, registry.FileName(key.Entity, key.Form))
}

// Lookup returns the cached file for key if one exists.
func (c *ConversionCache) Lookup(key Key) (string, bool) {
	path := c.Path(key)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// LockPath returns the lock file guarding the cache directory.
func (c *ConversionCache) LockPath() string {
	return filepath.Join(c.dir, ".cryswap.lock")
}

// Lock takes an exclusive lock on the cache directory so concurrent builds do
// not convert into it at the same time. The returned function releases it.
func (c *ConversionCache) Lock() (func() error, error) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create conversion cache: %w", err)
	}
	lock := flock.New(c.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, ErrCacheLocked
	}
	return lock.Unlock, nil
}
