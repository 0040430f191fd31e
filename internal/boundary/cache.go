package boundary

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the classification cache size used when none is set.
const DefaultCacheSize = 4096

// CachedClassifier memoizes Policy.Classify. A scan resolves the same
// import targets many times; the cache is safe for concurrent use.
type CachedClassifier struct {
	policy *Policy
	cache  *lru.Cache[string, ModuleType]
}

// NewCachedClassifier wraps p with an LRU cache of the given size. A
// non-positive size uses DefaultCacheSize.
func NewCachedClassifier(p *Policy, size int) (*CachedClassifier, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, ModuleType](size)
	if err != nil {
		return nil, fmt.Errorf("creating classification cache: %w", err)
	}
	return &CachedClassifier{policy: p, cache: cache}, nil
}

// Classify returns the cached module type for path, computing it on a miss.
func (c *CachedClassifier) Classify(filePath string) ModuleType {
	if t, ok := c.cache.Get(filePath); ok {
		return t
	}
	t := c.policy.Classify(filePath)
	c.cache.Add(filePath, t)
	return t
}

// Len returns the number of cached paths.
func (c *CachedClassifier) Len() int {
	return c.cache.Len()
}
