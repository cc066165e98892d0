package fragment

import (
	"testing"
	"time"

	"github.com/rtpscore/corecache/internal/guid"
	"github.com/stretchr/testify/require"
)

func TestGCLoop_SweepEvictsStaleAssemblerBuffers(t *testing.T) {
	writer := guid.New()
	full := buildFullMessage(996)
	frags := splitIntoSingleFragSubmessages(writer, 1, full, 256, 0)

	a := New(256)
	old := time.Now().Add(-time.Minute)
	_, complete := a.NewDataFrag(frags[0], old)
	require.False(t, complete)
	require.Equal(t, 1, a.InProgress())

	g := NewGCLoop(10*time.Millisecond, 10*time.Millisecond)
	g.Track("writer-1", a)
	g.sweep()

	require.Equal(t, 0, a.InProgress())
}

func TestGCLoop_UntrackStopsFutureSweeps(t *testing.T) {
	writer := guid.New()
	full := buildFullMessage(996)
	frags := splitIntoSingleFragSubmessages(writer, 1, full, 256, 0)

	a := New(256)
	old := time.Now().Add(-time.Minute)
	a.NewDataFrag(frags[0], old)

	g := NewGCLoop(10*time.Millisecond, 10*time.Millisecond)
	g.Track("writer-1", a)
	g.Untrack("writer-1")
	g.sweep()

	// Untracked before the sweep, so the stale buffer is left untouched.
	require.Equal(t, 1, a.InProgress())
}

func TestGCLoop_StartAndStop(t *testing.T) {
	g := NewGCLoop(5*time.Millisecond, time.Hour)
	g.Start()
	time.Sleep(20 * time.Millisecond)
	g.Stop()
}
