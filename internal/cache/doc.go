// Package cache provides the soft-limit LRU cache used to memoize colorized
// glyph cells.
//
//	c := cache.New[key, *image.NRGBA](256)
//	glyph, err := c.GetOrCreate(k, func() (*image.NRGBA, error) {
//	    return colorize(k)
//	})
//
// When the cache grows past its soft limit, the least recently used quarter of
// the entries is evicted in one pass. A soft limit of 0 means unlimited.
package cache
