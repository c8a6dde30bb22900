package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when one Redis instance serves several deployments or when
// per-user cache separation is needed.
//
// Example usage:
//
//	// Per-organization keys
//	orgKeyer := NewScopedKeyer(NewDefaultKeyer(), "org:unicef:")
//
//	// Shared keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(allocHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(allocHash, opts)
}

// DatasetKey generates a prefixed key for dataset caching.
func (k *ScopedKeyer) DatasetKey(name string) string {
	return k.prefix + k.inner.DatasetKey(name)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
