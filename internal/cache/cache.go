// Package cache memoizes classifier output per exact feature vector for
// the lifetime of the process.
package cache

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/guifav/iris-api/internal/classifier"
)

// PredictionCache is a concurrency-safe, exact-match map from feature
// vector to class label. Entries are never evicted; the legitimate
// input space is bounded in practice, and eviction would change the
// stability guarantee that a vector always returns its first computed
// label. Two requests racing on the same uncached key may both compute;
// the classifier is deterministic, so the redundant work is harmless.
type PredictionCache struct {
	entries *xsync.MapOf[classifier.FeatureVector, int]
}

// New returns an empty prediction cache.
func New() *PredictionCache {
	return &PredictionCache{
		entries: xsync.NewMapOf[classifier.FeatureVector, int](),
	}
}

// Get returns the cached label for f, if any.
func (c *PredictionCache) Get(f classifier.FeatureVector) (int, bool) {
	return c.entries.Load(f)
}

// Put stores the label for f.
func (c *PredictionCache) Put(f classifier.FeatureVector, label int) {
	c.entries.Store(f, label)
}

// Len returns the number of cached entries.
func (c *PredictionCache) Len() int {
	return c.entries.Size()
}
