// Package router ties fragment reassembly to the sample cache: it routes
// incoming DATA_FRAG submessages by (remote writer identity, topic) to a
// per-writer FragmentAssembler, and forwards completed samples into the
// SampleCache (§2 "Data flow"). The routing key is (writer GUID, topic
// name) and each key owns exactly one Assembler.
package router

import (
	"fmt"
	"sync"
	"time"

	"github.com/rtpscore/corecache/internal/guid"
	"github.com/rtpscore/corecache/internal/wire"
	"github.com/rtpscore/corecache/pkg/cache"
	"github.com/rtpscore/corecache/pkg/fragment"
	"github.com/rtpscore/corecache/pkg/logging"
	"go.uber.org/zap"
)

// key identifies one remote writer's reassembly state for one topic.
type key struct {
	writer guid.GUID
	topic  string
}

func (k key) String() string {
	return fmt.Sprintf("%s/%s", k.writer, k.topic)
}

// Router owns the registry of per-writer Assemblers and the SampleCache
// they feed. Its own mutex protects only assembler lookup/creation —
// never the SampleCache, which has its own lock (§5) — so a burst of
// first-sight writers never blocks an unrelated cache read.
type Router struct {
	fragmentSize func(writer guid.GUID, topic string) uint16

	mu         sync.Mutex
	assemblers map[key]*fragment.Assembler

	cache *cache.SampleCache
	gc    *fragment.GCLoop
}

// New constructs a Router over an existing SampleCache. fragmentSize
// supplies the writer's fixed fragment size the first time a writer is
// seen on a topic (§4.2: "the writer's fragment_size is fixed at
// construction"). gc, if non-nil, has every new Assembler registered with
// it for periodic sweeping (§4.2's GC operation).
func New(sampleCache *cache.SampleCache, fragmentSize func(writer guid.GUID, topic string) uint16, gc *fragment.GCLoop) *Router {
	return &Router{
		fragmentSize: fragmentSize,
		assemblers:   make(map[key]*fragment.Assembler),
		cache:        sampleCache,
		gc:           gc,
	}
}

// Deliver feeds one DATA_FRAG submessage through reassembly and, on
// completion, into the sample cache (§2 "Data flow"). now is the local
// receive instant used both for GC timestamps and, on completion, as the
// cache key.
func (r *Router) Deliver(topic string, df *wire.DataFrag, now time.Time) {
	k := key{writer: df.WriterGUID, topic: topic}

	r.mu.Lock()
	a, exists := r.assemblers[k]
	if !exists {
		a = fragment.New(r.fragmentSize(df.WriterGUID, topic))
		r.assemblers[k] = a
		if r.gc != nil {
			r.gc.Track(k.String(), a)
		}
	}
	r.mu.Unlock()

	change, complete := a.NewDataFrag(df, now)
	if !complete {
		return
	}

	logging.Debug("fragment reassembly complete, adding change to sample cache",
		zap.String("topic", topic),
		zap.String("writer", df.WriterGUID.String()),
		zap.Uint64("writerSN", uint64(df.WriterSN)))

	r.cache.AddChange(topic, now, *change)
}

// Forget drops the Assembler for (writer, topic), e.g. once discovery
// reports the writer gone. Safe to call even if none exists.
func (r *Router) Forget(topic string, writer guid.GUID) {
	k := key{writer: writer, topic: topic}

	r.mu.Lock()
	delete(r.assemblers, k)
	r.mu.Unlock()

	if r.gc != nil {
		r.gc.Untrack(k.String())
	}
}
