// Package occupancy records the segments drawn during a routing session so
// later routes can avoid running along them.
package occupancy

import (
	"fmt"

	"linetrace/diagram"
	"linetrace/geometry"
)

// Cache is an append-only set of occupied segments for one routing session.
//
// A Cache is NOT safe for concurrent use; it belongs to a single session and
// is discarded when the session ends.
type Cache struct {
	entries []diagram.OccupancyEntry
	buffer  float64
	hits    int
	misses  int
}

// New creates an empty cache matching the static coordinate within ±buffer.
func New(buffer float64) *Cache {
	return &Cache{buffer: buffer}
}

// Record appends a segment, normalising its range.
func (c *Cache) Record(entry diagram.OccupancyEntry) {
	c.entries = append(c.entries, entry.Normalized())
}

// RecordSegment records the segment from a to b along axis.
// The static coordinate is taken from b.
func (c *Cache) RecordSegment(axis diagram.Axis, a, b diagram.Point) {
	entry := diagram.OccupancyEntry{Axis: axis}
	if axis == diagram.Vertical {
		entry.RangeStart, entry.RangeEnd, entry.Static = a.Y, b.Y, b.X
	} else {
		entry.RangeStart, entry.RangeEnd, entry.Static = a.X, b.X, b.Y
	}
	c.Record(entry)
}

// IsOccupied reports whether (x, y) falls on a recorded segment of the same
// axis: the moving coordinate inside its range and the static coordinate
// within the buffer.
func (c *Cache) IsOccupied(axis diagram.Axis, x, y float64) bool {
	moving, static := x, y
	if axis == diagram.Vertical {
		moving, static = y, x
	}

	for _, e := range c.entries {
		if e.Axis != axis {
			continue
		}
		if geometry.InRange(moving, e.RangeStart, e.RangeEnd) && geometry.Near(static, e.Static, c.buffer) {
			c.hits++
			return true
		}
	}
	c.misses++
	return false
}

// Entries returns the recorded segments in insertion order.
func (c *Cache) Entries() []diagram.OccupancyEntry {
	return c.entries
}

// Len returns the number of recorded segments.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns lookup statistics.
func (c *Cache) Stats() (hits, misses, size int) {
	return c.hits, c.misses, len(c.entries)
}

// String returns a string representation of cache statistics.
func (c *Cache) String() string {
	hitRate := 0.0
	if total := c.hits + c.misses; total > 0 {
		hitRate = float64(c.hits) / float64(total) * 100
	}
	return fmt.Sprintf("OccupancyCache[size=%d, hits=%d, misses=%d, hitRate=%.1f%%]",
		len(c.entries), c.hits, c.misses, hitRate)
}
