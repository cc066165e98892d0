package cache

import (
	"github.com/rtpscore/corecache/pkg/qos"
	"github.com/rtpscore/corecache/pkg/sample"
)

// TopicKind distinguishes with-key (instance-keyed) topics from no-key
// topics, per §3.
type TopicKind int

const (
	NoKey TopicKind = iota
	WithKey
)

// TopicCache wraps one HistoryCache with the topic's kind, type name, and
// QoS (§4.4). It is a thin composite: all add/get/range calls forward
// straight to the HistoryCache.
type TopicCache struct {
	kind     TopicKind
	typeName string
	qosVal   qos.Policies
	history  *HistoryCache
}

// NewTopicCache creates a TopicCache with the given kind/type name and
// default QoS, per original_source's TopicCache::new.
func NewTopicCache(kind TopicKind, typeName string) *TopicCache {
	return &TopicCache{
		kind:     kind,
		typeName: typeName,
		qosVal:   qos.Default(),
		history:  NewHistoryCache(),
	}
}

// Kind returns the topic's with-key/no-key classification.
func (t *TopicCache) Kind() TopicKind { return t.kind }

// TypeName returns the topic's serialized data type name.
func (t *TopicCache) TypeName() string { return t.typeName }

// QoS returns the topic's current QoS policies (a value copy).
func (t *TopicCache) QoS() qos.Policies { return t.qosVal }

// SetQoS replaces the topic's QoS atomically (as a value, never mutated
// in place), per §3/§9.
func (t *TopicCache) SetQoS(p qos.Policies) { t.qosVal = p }

// AddChange forwards to the HistoryCache (§4.4).
func (t *TopicCache) AddChange(instant Instant, change sample.CacheChange) {
	t.history.AddChange(instant, change)
}

// GetChange forwards to the HistoryCache (§4.4).
func (t *TopicCache) GetChange(instant Instant) (sample.CacheChange, bool) {
	return t.history.GetChange(instant)
}

// GetRange forwards to the HistoryCache (§4.4).
func (t *TopicCache) GetRange(start, end Instant) []Entry {
	return t.history.GetRange(start, end)
}

// RemoveChange forwards to the HistoryCache.
func (t *TopicCache) RemoveChange(instant Instant) (sample.CacheChange, bool) {
	return t.history.RemoveChange(instant)
}
