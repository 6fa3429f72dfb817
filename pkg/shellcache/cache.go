package shellcache

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// Fetcher retrieves one asset by URL. The production implementation goes over
// the wire; tests substitute an in-memory map.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DefaultManifest is the fixed set of shell assets the client needs to render
// without network access.
var DefaultManifest = []string{
	"/",
	"/static/css/style.css",
	"/static/css/profile.css",
	"/static/js/script.js",
	"/static/js/profile.js",
	"/static/js/charts.js",
	"/public/logo.png",
	"/public/favicon.ico",
	"/manifest.json",
}

// Manager keeps one named asset cache per version string under a base
// directory. Bumping the version is the only cache-busting control: Install
// populates the new cache, Activate deletes every other version.
type Manager struct {
	dir      string
	version  string
	manifest []string
	fetcher  Fetcher
}

// New creates a manager rooted at dir for the given version. The manifest is
// fixed at construction; nil falls back to DefaultManifest.
func New(dir, version string, manifest []string, fetcher Fetcher) (*Manager, error) {
	if dir == "" {
		return nil, errors.New("shellcache: cache directory required")
	}
	if version == "" {
		return nil, errors.New("shellcache: cache version required")
	}
	if manifest == nil {
		manifest = DefaultManifest
	}
	return &Manager{
		dir:      dir,
		version:  version,
		manifest: append([]string(nil), manifest...),
		fetcher:  fetcher,
	}, nil
}

// Version returns the version string this manager installs and serves.
func (m *Manager) Version() string { return m.version }

// Manifest returns the asset URLs this manager caches.
func (m *Manager) Manifest() []string {
	return append([]string(nil), m.manifest...)
}

func (m *Manager) cacheFor(version string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:     filepath.Join(m.dir, version),
		CacheSizeMax: 1024 * 1024, // 1MB
	})
}

// toKey flattens an asset URL into a diskv-safe key.
func toKey(url string) string {
	return base64.URLEncoding.EncodeToString([]byte(url))
}

// Install fetches every manifest asset and populates the current version's
// cache all-or-nothing: any fetch failure aborts before a single byte is
// written, leaving the platform free to retry the whole phase.
func (m *Manager) Install(ctx context.Context) error {
	if m.fetcher == nil {
		return errors.New("shellcache: no fetcher configured")
	}
	staged := make(map[string][]byte, len(m.manifest))
	for _, url := range m.manifest {
		body, err := m.fetcher.Fetch(ctx, url)
		if err != nil {
			return fmt.Errorf("shellcache: install %s: %w", url, err)
		}
		staged[url] = body
	}
	d := m.cacheFor(m.version)
	for url, body := range staged {
		if err := d.Write(toKey(url), body); err != nil {
			return fmt.Errorf("shellcache: write %s: %w", url, err)
		}
	}
	return nil
}

// Installed reports whether every manifest asset is present in the current
// version's cache.
func (m *Manager) Installed() bool {
	d := m.cacheFor(m.version)
	for _, url := range m.manifest {
		if !d.Has(toKey(url)) {
			return false
		}
	}
	return true
}

// Activate deletes every cache whose version does not match the current one.
// This is the sole invalidation mechanism; there is no per-asset eviction.
// Install and Activate are not transactional with each other: a crash between
// them leaves old and new caches side by side, and the next Activate
// reconciles by version key.
func (m *Manager) Activate(ctx context.Context) error {
	versions, err := m.Versions()
	if err != nil {
		return err
	}
	for _, v := range versions {
		if v == m.version {
			continue
		}
		if err := os.RemoveAll(filepath.Join(m.dir, v)); err != nil {
			return fmt.Errorf("shellcache: evict %s: %w", v, err)
		}
	}
	return ctx.Err()
}

// Fetch serves an asset cache-first: a hit returns the stored bytes with no
// staleness check; a miss passes through to the network without populating
// the cache.
func (m *Manager) Fetch(ctx context.Context, url string) ([]byte, error) {
	d := m.cacheFor(m.version)
	if body, err := d.Read(toKey(url)); err == nil {
		return body, nil
	}
	if m.fetcher == nil {
		return nil, fmt.Errorf("shellcache: %s not cached and no fetcher configured", url)
	}
	body, err := m.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("shellcache: fetch %s: %w", url, err)
	}
	return body, nil
}

// Versions enumerates the named caches currently on disk, sorted.
func (m *Manager) Versions() ([]string, error) {
	dirents, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("shellcache: list caches: %w", err)
	}
	versions := make([]string, 0, len(dirents))
	for _, de := range dirents {
		if de.IsDir() {
			versions = append(versions, de.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}
