// Package cache provides byte-level caching for layout computation.
//
// Layouts are pure functions of their inputs, so a serialized result can be
// reused whenever the same allocations, mode, and canvas come back. The
// Cache interface abstracts the backend:
//   - file: on-disk cache for CLI usage
//   - redis: shared cache for server deployments
//   - null: caching disabled
//
// Keys are derived from input hashes via a Keyer, so two processes with the
// same inputs hit the same entries regardless of backend.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry kind.
const (
	// TTLLayout bounds how long a computed layout stays cached. Layouts
	// are cheap to recompute, so entries can expire aggressively.
	TTLLayout = time.Hour

	// TTLDataset bounds cached classification datasets, which change
	// rarely (annual DAC revisions).
	TTLDataset = 24 * time.Hour
)

// LayoutKeyOpts captures the parameters that affect layout output beyond
// the allocation set itself. Any field change must produce a new key.
type LayoutKeyOpts struct {
	Mode   string  `json:"mode"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Keyer generates cache keys. Implementations must be deterministic:
// equal inputs produce equal keys across processes and restarts.
type Keyer interface {
	// LayoutKey generates a key for a computed layout from the hash of
	// the allocation set and the layout options.
	LayoutKey(allocHash string, opts LayoutKeyOpts) string

	// DatasetKey generates a key for a parsed classification dataset.
	DatasetKey(name string) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(allocHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", allocHash, opts)
}

// DatasetKey generates a key for a classification dataset.
func (k *DefaultKeyer) DatasetKey(name string) string {
	return "dataset:" + name
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
