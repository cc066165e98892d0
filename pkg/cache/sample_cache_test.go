package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/rtpscore/corecache/internal/guid"
	"github.com/rtpscore/corecache/internal/wire"
	"github.com/rtpscore/corecache/pkg/qos"
	"github.com/rtpscore/corecache/pkg/sample"
	"github.com/stretchr/testify/require"
)

func TestSampleCache_AddNewTopic(t *testing.T) {
	c := NewSampleCache()
	require.True(t, c.AddNewTopic("chatter", WithKey, "std_msgs/String"))
	require.False(t, c.AddNewTopic("chatter", WithKey, "std_msgs/String"))
}

func TestSampleCache_AddChangeOnUnknownTopicDropsAndCounts(t *testing.T) {
	c := NewSampleCache()
	require.Equal(t, uint64(0), c.Stats().UnknownTopicDrops)

	c.AddChange("missing", time.Now(), changeAt(1))
	require.Equal(t, uint64(1), c.Stats().UnknownTopicDrops)

	c.AddChange("missing", time.Now(), changeAt(2))
	require.Equal(t, uint64(2), c.Stats().UnknownTopicDrops)
}

func TestSampleCache_AddChangeAndGetChangeRoundTrip(t *testing.T) {
	c := NewSampleCache()
	c.AddNewTopic("chatter", NoKey, "std_msgs/String")

	now := time.Now()
	change := changeAt(1)
	c.AddChange("chatter", now, change)

	got, ok := c.GetChange("chatter", now)
	require.True(t, ok)
	require.Equal(t, change, got)

	_, ok = c.GetChange("other", now)
	require.False(t, ok)
}

func TestSampleCache_GetChangesInRangeUnknownTopic(t *testing.T) {
	c := NewSampleCache()
	entries := c.GetChangesInRange("missing", time.Now(), time.Now())
	require.Nil(t, entries)
}

func TestSampleCache_RemoveTopic(t *testing.T) {
	c := NewSampleCache()
	c.AddNewTopic("chatter", NoKey, "std_msgs/String")
	c.AddChange("chatter", time.Now(), changeAt(1))

	c.RemoveTopic("chatter")

	_, ok := c.GetTopicQoS("chatter")
	require.False(t, ok)

	// Removing an already-removed (or never-existing) topic is a no-op.
	c.RemoveTopic("chatter")
}

func TestSampleCache_QoSGetSet(t *testing.T) {
	c := NewSampleCache()
	c.AddNewTopic("chatter", NoKey, "std_msgs/String")

	got, ok := c.GetTopicQoS("chatter")
	require.True(t, ok)
	require.Equal(t, qos.Default(), got)

	newPolicies := qos.Policies{History: qos.KeepAll, Reliability: qos.Reliable}
	require.True(t, c.SetTopicQoS("chatter", newPolicies))

	got, ok = c.GetTopicQoS("chatter")
	require.True(t, ok)
	require.Equal(t, newPolicies, got)

	require.False(t, c.SetTopicQoS("missing", newPolicies))
}

// TestSampleCache_ConcurrentAccess mirrors original_source's
// Arc<RwLock<DDSCache>> + spawned-thread test: many goroutines add
// changes to distinct instants on the same topic concurrently while
// readers poll range queries, and the race detector (not run here, but
// the design is built for -race) must find no data race.
func TestSampleCache_ConcurrentAccess(t *testing.T) {
	c := NewSampleCache()
	c.AddNewTopic("chatter", NoKey, "std_msgs/String")

	base := time.Now()
	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				instant := base.Add(time.Duration(w*perWriter+i) * time.Nanosecond)
				c.AddChange("chatter", instant, sample.CacheChange{
					WriterGUID: guid.New(),
					WriterSN:   wire.SequenceNumber(i + 1),
					Data:       &sample.Data{Kind: sample.Alive},
				})
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				c.GetChangesInRange("chatter", base, base.Add(time.Second))
			}
		}
	}()

	wg.Wait()
	close(done)

	all := c.GetChangesInRange("chatter", base, base.Add(time.Second))
	require.Len(t, all, writers*perWriter)
}
