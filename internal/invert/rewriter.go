// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package invert

import (
	"github.com/dotandev/svginvert/internal/cache"
	"github.com/dotandev/svginvert/internal/xmlstream"
)

// IsColorAttr reports whether an attribute carries a paint color. Only the
// local name is compared, so a prefixed fill still counts.
func IsColorAttr(name xmlstream.Name) bool {
	return name.Local == "fill" || name.Local == "stroke"
}

// Rewriter replaces the values of fill and stroke attributes with their
// inverted form, taken from a shared cache.
type Rewriter struct {
	cache *cache.Cache
	stats *Stats
}

// NewRewriter returns a Rewriter backed by c.
func NewRewriter(c *cache.Cache) *Rewriter {
	return &Rewriter{cache: c}
}

// Rewrite returns a new attribute list of the same length and order with every
// color-bearing value inverted. Values that do not parse as colors are kept.
func (rw *Rewriter) Rewrite(attrs []xmlstream.Attr) []xmlstream.Attr {
	if attrs == nil {
		return nil
	}
	out := make([]xmlstream.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = a
		if !IsColorAttr(a.Name) {
			continue
		}

		v, hit := rw.cache.Get(a.Value)
		out[i].Value = v
		if rw.stats == nil {
			continue
		}
		if hit {
			rw.stats.CacheHits++
		} else {
			rw.stats.CacheMisses++
		}
		if v != a.Value {
			rw.stats.ColorsRewritten++
		}
	}
	return out
}
