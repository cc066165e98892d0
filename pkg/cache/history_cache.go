// Package cache implements the per-topic sample history and the
// process-wide topic registry (§4.3/§4.4/§4.5), adapted from the
// original_source DDSHistoryCache/TopicCache/DDSCache trio into Go's
// ordered-container idioms.
package cache

import (
	"fmt"
	"sort"
	"time"

	"github.com/rtpscore/corecache/pkg/sample"
)

// Instant is the monotonic local receive time used as the cache key
// (GLOSSARY). Go's time.Time is already monotonic-comparable within a
// process when obtained from time.Now, which is what callers are
// expected to supply; see §9 on disambiguating colliding instants.
type Instant = time.Time

// Entry pairs a cache key with the change stored at it, returned by
// range queries (§4.3) as an owned snapshot rather than a live iterator,
// per the §9 design note on range query lifetime.
type Entry struct {
	Instant Instant
	Change  sample.CacheChange
}

// HistoryCache is an ordered map from Instant to CacheChange (§3/§4.3).
// It is not itself safe for concurrent use; TopicCache/SampleCache
// provide the single lock that protects it, per §5.
type HistoryCache struct {
	// keys is kept sorted so range queries don't need to re-sort on every
	// call; Go has no built-in ordered map, so this mirrors Rust's
	// BTreeMap<Instant, CacheChange> with a slice of sorted keys alongside
	// a map for point lookups.
	keys    []Instant
	changes map[Instant]sample.CacheChange
}

// NewHistoryCache creates an empty HistoryCache.
func NewHistoryCache() *HistoryCache {
	return &HistoryCache{
		changes: make(map[Instant]sample.CacheChange),
	}
}

// AddChange inserts change at instant. A duplicate instant is a
// programmer error per §7/§4.3 and panics rather than silently
// overwriting or erroring — callers MUST provide unique per-receive
// Instants (see §9, composite-key disambiguation).
func (h *HistoryCache) AddChange(instant Instant, change sample.CacheChange) {
	if _, exists := h.changes[instant]; exists {
		panic(fmt.Sprintf("cache: HistoryCache already contains an entry at instant %v", instant))
	}
	h.changes[instant] = change

	i := sort.Search(len(h.keys), func(i int) bool { return h.keys[i].After(instant) })
	h.keys = append(h.keys, Instant{})
	copy(h.keys[i+1:], h.keys[i:])
	h.keys[i] = instant
}

// GetChange performs a point lookup (§4.3).
func (h *HistoryCache) GetChange(instant Instant) (sample.CacheChange, bool) {
	c, ok := h.changes[instant]
	return c, ok
}

// GetRange returns every entry with Instant in [start, end], inclusive on
// both bounds, in ascending Instant order (§4.3/P4).
func (h *HistoryCache) GetRange(start, end Instant) []Entry {
	lo := sort.Search(len(h.keys), func(i int) bool { return !h.keys[i].Before(start) })
	hi := sort.Search(len(h.keys), func(i int) bool { return h.keys[i].After(end) })

	entries := make([]Entry, 0, hi-lo)
	for _, k := range h.keys[lo:hi] {
		entries = append(entries, Entry{Instant: k, Change: h.changes[k]})
	}
	return entries
}

// RemoveChange removes and returns the change at instant, if present
// (§4.3).
func (h *HistoryCache) RemoveChange(instant Instant) (sample.CacheChange, bool) {
	c, ok := h.changes[instant]
	if !ok {
		return sample.CacheChange{}, false
	}
	delete(h.changes, instant)

	i := sort.Search(len(h.keys), func(i int) bool { return !h.keys[i].Before(instant) })
	if i < len(h.keys) && h.keys[i].Equal(instant) {
		h.keys = append(h.keys[:i], h.keys[i+1:]...)
	}
	return c, true
}

// Len reports how many changes are currently stored.
func (h *HistoryCache) Len() int {
	return len(h.keys)
}
