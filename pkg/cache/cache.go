// Package cache provides byte-level caching for pipeline stages.
//
// Keys are derived from content hashes, so a cache entry is valid for as long
// as its inputs are unchanged; TTLs exist only to bound disk and memory use.
// Backends cover the three deployment shapes: [FileCache] for the CLI,
// [RedisCache] for the server, and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Catalog indexes are re-derived from local
// files and cheap to rebuild; layouts and rendered artifacts are the
// expensive stages and keep longer.
const (
	TTLCatalog  = 1 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte blobs under string keys.
type Cache interface {
	// Get returns the cached data for the key. The bool reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under the key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backing resources.
	Close() error
}

// LayoutKeyOpts are the inputs that change a computed layout.
type LayoutKeyOpts struct {
	VizType      string
	HSpacing     float64
	VSpacing     float64
	BaseRadius   float64
	RingSpacing  float64
	EntryCourses []string
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// CatalogKey keys a built index by the catalog file's content hash.
	CatalogKey(contentHash string) string

	// LayoutKey keys a layout by the catalog hash and layout options.
	LayoutKey(catalogHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout hash and format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the stage inputs into stable prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) CatalogKey(contentHash string) string {
	return hashKey("catalog", contentHash)
}

func (k *DefaultKeyer) LayoutKey(catalogHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", catalogHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
