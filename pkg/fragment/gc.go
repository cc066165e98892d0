package fragment

import (
	"sync"
	"time"

	"github.com/rtpscore/corecache/pkg/logging"
	"go.uber.org/zap"
)

// GCLoop periodically sweeps a set of Assemblers for stale in-progress
// buffers. One periodic job per process is all this module needs, so
// GCLoop is deliberately just a ticker plus a registry to sweep, not a
// general per-key scheduler.
type GCLoop struct {
	interval  time.Duration
	threshold time.Duration

	mu        sync.Mutex
	registry  map[string]*Assembler
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewGCLoop creates a GCLoop that sweeps every interval, evicting buffers
// older than threshold. It does not start sweeping until Start is called.
func NewGCLoop(interval, threshold time.Duration) *GCLoop {
	return &GCLoop{
		interval:  interval,
		threshold: threshold,
		registry:  make(map[string]*Assembler),
		stop:      make(chan struct{}),
	}
}

// Track registers an Assembler under key so future sweeps include it.
// Safe to call concurrently with Start/running sweeps.
func (g *GCLoop) Track(key string, a *Assembler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registry[key] = a
}

// Untrack removes an Assembler from future sweeps, e.g. once its writer
// is no longer known to discovery.
func (g *GCLoop) Untrack(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.registry, key)
}

// Start begins the periodic sweep in a background goroutine.
func (g *GCLoop) Start() {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		ticker := time.NewTicker(g.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				g.sweep()
			case <-g.stop:
				return
			}
		}
	}()
}

// sweep runs one GC pass over every tracked Assembler. Safe to call
// directly in tests without starting the background goroutine.
func (g *GCLoop) sweep() {
	g.mu.Lock()
	snapshot := make(map[string]*Assembler, len(g.registry))
	for k, v := range g.registry {
		snapshot[k] = v
	}
	g.mu.Unlock()

	now := time.Now()
	for key, a := range snapshot {
		if evicted := a.GC(now, g.threshold); evicted > 0 {
			logging.Info("fragment assembler GC evicted stale buffers",
				zap.String("writer", key),
				zap.Int("evicted", evicted))
		}
	}
}

// Stop halts the background goroutine and waits for it to exit. Safe to
// call multiple times.
func (g *GCLoop) Stop() {
	g.stopOnce.Do(func() {
		close(g.stop)
	})
	g.wg.Wait()
}
