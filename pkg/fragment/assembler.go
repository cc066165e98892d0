// Package fragment implements reassembly of large samples split by a
// writer into many DATA_FRAG submessages (§4.1/§4.2).
package fragment

import (
	"time"

	"github.com/rtpscore/corecache/internal/wire"
	"github.com/rtpscore/corecache/pkg/logging"
	"github.com/rtpscore/corecache/pkg/sample"
	"go.uber.org/zap"
)

// Assembler owns the set of in-progress AssemblyBuffers for one remote
// writer (§4.2). It is single-owner: callers MUST serialize access to one
// Assembler (typically by giving each remote writer its own receive
// goroutine); cross-writer parallelism is achieved by constructing one
// Assembler per writer, not by locking inside this type.
type Assembler struct {
	fragmentSize uint16
	buffers      map[wire.SequenceNumber]*assemblyBuffer
}

// New constructs an Assembler for a writer whose fragment_size is fixed
// for the writer's lifetime, per §4.2.
func New(fragmentSize uint16) *Assembler {
	return &Assembler{
		fragmentSize: fragmentSize,
		buffers:      make(map[wire.SequenceNumber]*assemblyBuffer),
	}
}

// NewDataFrag consumes one DATA_FRAG submessage and returns the completed
// sample once reassembly finishes, per §4.2. A nil, false return means
// accumulation continues; malformed fragments are dropped (logged) rather
// than propagated as an error, per §7.
func (a *Assembler) NewDataFrag(df *wire.DataFrag, now time.Time) (*sample.CacheChange, bool) {
	buf, exists := a.buffers[df.WriterSN]
	if !exists {
		buf = newAssemblyBuffer(df.DataSize, a.fragmentSize, now)
		a.buffers[df.WriterSN] = buf
	}

	if err := buf.insertFrags(df, now); err != nil {
		logging.Warn("dropping malformed fragment",
			zap.Uint64("writerSN", uint64(df.WriterSN)),
			zap.Error(err))
		return nil, false
	}

	if !buf.isComplete() {
		return nil, false
	}

	// Ownership transfer: remove-then-finalize, so the finished bytes are
	// never aliased by a map entry still considered "in progress" (§9).
	delete(a.buffers, df.WriterSN)

	if len(buf.bytes) < prefixLen {
		logging.Warn("dropping fragment with undersized buffer",
			zap.Uint64("writerSN", uint64(df.WriterSN)),
			zap.Int("size", len(buf.bytes)))
		return nil, false
	}

	repID := wire.RepresentationIdentifier(uint16(buf.bytes[0])<<8 | uint16(buf.bytes[1]))
	if !repID.Known() {
		logging.Warn("dropping fragment with unrecognized representation identifier",
			zap.Uint64("writerSN", uint64(df.WriterSN)),
			zap.Stringer("representationIdentifier", repID))
		return nil, false
	}

	payload := wire.SerializedPayload{
		RepresentationIdentifier: repID,
		RepresentationOptions:    [2]byte{buf.bytes[2], buf.bytes[3]},
		Value:                    buf.bytes[prefixLen:],
	}

	kind := sample.Alive
	if df.Flags.Has(wire.FlagKey) {
		kind = sample.NotAliveDisposed
	}

	return &sample.CacheChange{
		WriterGUID: df.WriterGUID,
		WriterSN:   df.WriterSN,
		Data: &sample.Data{
			Kind:    kind,
			Payload: payload,
		},
	}, true
}

// InProgress returns the number of samples currently being reassembled.
// Exposed for GC accounting and tests.
func (a *Assembler) InProgress() int {
	return len(a.buffers)
}

// GC evicts in-progress buffers whose modifiedAt is older than threshold,
// per §4.2/§9. Returns the number of buffers evicted.
func (a *Assembler) GC(now time.Time, threshold time.Duration) int {
	evicted := 0
	for sn, buf := range a.buffers {
		if now.Sub(buf.modifiedAt) > threshold {
			delete(a.buffers, sn)
			evicted++
			logging.Debug("evicted stale assembly buffer",
				zap.Uint64("writerSN", uint64(sn)),
				zap.Duration("age", now.Sub(buf.modifiedAt)))
		}
	}
	return evicted
}
