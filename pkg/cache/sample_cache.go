package cache

import (
	"sync"
	"sync/atomic"

	"github.com/rtpscore/corecache/pkg/logging"
	"github.com/rtpscore/corecache/pkg/qos"
	"github.com/rtpscore/corecache/pkg/sample"
	"go.uber.org/zap"
)

// Stats counts recoverable conditions the SampleCache has absorbed
// without returning an error, so a caller that wants to alert on them can poll instead of
// the cache raising (§7/§9).
type Stats struct {
	UnknownTopicDrops uint64
}

// SampleCache is the process-wide registry of TopicCaches keyed by topic
// name (§3/§4.5). A single sync.RWMutex protects the registry, per the
// locking discipline in §5: writers (AddNewTopic, RemoveTopic, AddChange,
// SetTopicQoS) take the lock exclusively; readers (GetChange,
// GetChangesInRange, GetTopicQoS) take it shared. No blocking I/O ever
// happens while the lock is held.
type SampleCache struct {
	mu     sync.RWMutex
	topics map[string]*TopicCache

	unknownTopicDrops atomic.Uint64
}

// NewSampleCache creates an empty SampleCache.
func NewSampleCache() *SampleCache {
	return &SampleCache{
		topics: make(map[string]*TopicCache),
	}
}

// AddNewTopic inserts a fresh TopicCache with default QoS. Returns false
// (idempotent no-op + warning) if the name already exists (§4.5, the
// DuplicateTopic error kind in §7, non-fatal).
func (c *SampleCache) AddNewTopic(name string, kind TopicKind, typeName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.topics[name]; exists {
		logging.Warn("topic already registered in sample cache", zap.String("topic", name))
		return false
	}
	c.topics[name] = NewTopicCache(kind, typeName)
	return true
}

// RemoveTopic removes the named topic if present; otherwise a no-op
// (§4.5).
func (c *SampleCache) RemoveTopic(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.topics, name)
}

// GetTopicQoS returns a copy of the named topic's QoS, or false if the
// topic is unknown (§4.5/§6.3).
func (c *SampleCache) GetTopicQoS(name string) (qos.Policies, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.topics[name]
	if !ok {
		return qos.Policies{}, false
	}
	return t.QoS(), true
}

// SetTopicQoS replaces the named topic's QoS, or returns false if the
// topic is unknown (§4.5's get_topic_qos_mut, expressed as a setter since
// Go has no safe way to hand out a mutable borrow across the lock
// boundary).
func (c *SampleCache) SetTopicQoS(name string, p qos.Policies) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.topics[name]
	if !ok {
		return false
	}
	t.SetQoS(p)
	return true
}

// AddChange delegates to the named TopicCache. If the topic is unknown,
// the change is dropped without an error return per §4.5/§7 (UnknownTopic
// is never fatal); resolving the §9 open question, the drop is logged as a
// warning and counted in Stats().UnknownTopicDrops so it is observable.
func (c *SampleCache) AddChange(name string, instant Instant, change sample.CacheChange) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.topics[name]
	if !ok {
		c.unknownTopicDrops.Add(1)
		logging.Warn("add_change for unknown topic, dropping sample", zap.String("topic", name))
		return
	}
	t.AddChange(instant, change)
}

// GetChange delegates to the named TopicCache; returns false if the
// topic is unknown or no change exists at instant (§4.5/P5).
func (c *SampleCache) GetChange(name string, instant Instant) (sample.CacheChange, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.topics[name]
	if !ok {
		return sample.CacheChange{}, false
	}
	return t.GetChange(instant)
}

// GetChangesInRange delegates to the named TopicCache; returns an empty
// slice if the topic is unknown (§4.5/P4).
func (c *SampleCache) GetChangesInRange(name string, start, end Instant) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.topics[name]
	if !ok {
		return nil
	}
	return t.GetRange(start, end)
}

// Stats returns a snapshot of the cache's recoverable-condition counters.
func (c *SampleCache) Stats() Stats {
	return Stats{UnknownTopicDrops: c.unknownTopicDrops.Load()}
}
