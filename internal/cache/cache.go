// Package cache provides localized filesystem-based caching for transient
// manifest documents fetched from remote hosts.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/util"
	"github.com/virta-dl/virta/where"
)

const TTL = 15 * time.Minute

// GenerateKey generates a deterministic SHA-256 hash from a manifest location
// for use as a cache identifier.
func GenerateKey(location string) string {
	hash := sha256.Sum256([]byte(location))
	return hex.EncodeToString(hash[:])
}

// Read attempts to retrieve and deserialize a cached object if it exists and
// has not exceeded its TTL.
func Read(key string, target any) bool {
	fs := filesystem.API()
	path := filepath.Join(where.Cache(), key)

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer util.Ignore(f.Close)

	return json.NewDecoder(f).Decode(target) == nil
}

// Write persists a serializable object to the cache using an atomic file swap
// to ensure data integrity.
func Write(key string, data any) error {
	fs := filesystem.API()
	path := filepath.Join(where.Cache(), key)
	tmpPath := path + ".tmp"

	f, err := fs.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		util.Ignore(f.Close)
		return err
	}
	util.Ignore(f.Close)

	return fs.Rename(tmpPath, path)
}

// CollectGarbage initializes an asynchronous background task to prune expired
// cache entries from the filesystem.
func CollectGarbage() {
	go func() {
		fs := filesystem.API()
		dir := where.Cache()

		entries, err := fs.ReadDir(dir)
		if err != nil {
			return
		}

		for _, info := range entries {
			if info.IsDir() {
				continue
			}
			if time.Since(info.ModTime()) > TTL {
				_ = fs.Remove(filepath.Join(dir, info.Name()))
			}
		}
	}()
}
