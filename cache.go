package monopet

import (
	"fmt"
	"strconv"

	"github.com/dgraph-io/ristretto/v2"
)

// CacheConfig sizes a TransformCache. Zero fields take defaults.
type CacheConfig struct {
	// MaxBytes bounds the packed pixel bytes held. Default 256 KiB.
	MaxBytes int64
	// Counters is the number of admission counters, roughly 10x the number
	// of entries expected to be live. Default 4096.
	Counters int64
}

func (c CacheConfig) withDefaults() CacheConfig {
	if c.MaxBytes <= 0 {
		c.MaxBytes = 256 << 10
	}
	if c.Counters <= 0 {
		c.Counters = 4096
	}
	return c
}

// CacheStats reports cache effectiveness since creation or the last Clear.
type CacheStats struct {
	Hits, Misses uint64
}

// transformOp names the transform a cached result came from.
type transformOp byte

const (
	opMirrorH transformOp = 'h'
	opMirrorV transformOp = 'v'
	opRotate  transformOp = 'r'
	opSkew    transformOp = 's'
	opInvert  transformOp = 'i'
)

// TransformCache memoizes transform results per source bitmap. Entries are
// keyed by the source's ID and Version together with the transform and its
// parameters, so mutating a bitmap through its setters makes stale entries
// unreachable.
//
// The cache is owned by the caller and attached to a Renderer with SetCache.
// A nil *TransformCache is valid and caches nothing.
type TransformCache struct {
	store *ristretto.Cache[string, *Bitmap]
	stats CacheStats
}

// NewTransformCache creates a cache sized by cfg.
func NewTransformCache(cfg CacheConfig) (*TransformCache, error) {
	cfg = cfg.withDefaults()
	store, err := ristretto.NewCache(&ristretto.Config[string, *Bitmap]{
		NumCounters: cfg.Counters,
		MaxCost:     cfg.MaxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("monopet: transform cache: %w", err)
	}
	return &TransformCache{store: store}, nil
}

// transformKey encodes source identity, version and parameters.
func transformKey(src *Bitmap, op transformOp, a, b float64) string {
	buf := make([]byte, 0, 48)
	buf = strconv.AppendUint(buf, uint64(src.ID()), 10)
	buf = append(buf, '|')
	buf = strconv.AppendUint(buf, uint64(src.Version()), 10)
	buf = append(buf, '|', byte(op), '|')
	buf = strconv.AppendFloat(buf, a, 'g', -1, 64)
	buf = append(buf, '|')
	buf = strconv.AppendFloat(buf, b, 'g', -1, 64)
	return string(buf)
}

// Get returns the cached result of op applied to src with parameters a, b.
func (c *TransformCache) Get(src *Bitmap, op transformOp, a, b float64) (*Bitmap, bool) {
	if c == nil {
		return nil, false
	}
	out, ok := c.store.Get(transformKey(src, op, a, b))
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return out, ok
}

// Put stores result for op applied to src. The cost is the packed size so
// MaxBytes bounds memory rather than entry count.
func (c *TransformCache) Put(src *Bitmap, op transformOp, a, b float64, result *Bitmap) {
	if c == nil {
		return
	}
	cost := int64(len(result.Pix))
	if cost == 0 {
		cost = 1
	}
	c.store.Set(transformKey(src, op, a, b), result, cost)
	c.store.Wait()
}

// Invalidate drops every cached result derived from src by bumping its
// version. Use it after editing Pix directly.
func (c *TransformCache) Invalidate(src *Bitmap) {
	src.Touch()
}

// Clear removes all entries and resets the stats.
func (c *TransformCache) Clear() {
	if c == nil {
		return
	}
	c.store.Clear()
	c.stats = CacheStats{}
}

// Stats returns hit and miss counts.
func (c *TransformCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return c.stats
}

// Close releases the cache's background goroutines.
func (c *TransformCache) Close() {
	if c == nil {
		return
	}
	c.store.Close()
}
