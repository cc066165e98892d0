// Package sample defines the unit stored in the sample cache: a
// CacheChange produced either directly or by completed fragment
// reassembly (pkg/fragment).
package sample

import (
	"github.com/rtpscore/corecache/internal/guid"
	"github.com/rtpscore/corecache/internal/wire"
)

// ChangeKind is the lifecycle tag of a sample (GLOSSARY).
type ChangeKind int

const (
	Alive ChangeKind = iota
	NotAliveDisposed
	NotAliveUnregistered
)

func (k ChangeKind) String() string {
	switch k {
	case Alive:
		return "Alive"
	case NotAliveDisposed:
		return "NotAliveDisposed"
	case NotAliveUnregistered:
		return "NotAliveUnregistered"
	default:
		return "Unknown"
	}
}

// Data is the reconstructed user payload plus its lifecycle tag. A
// key-only (dispose) sample still carries Payload — it holds only the
// key fields the writer serialized.
type Data struct {
	Kind    ChangeKind
	Payload wire.SerializedPayload
}

// CacheChange is the unit stored in the sample cache (§3). No CacheChange
// is mutated after insertion, so copying one is always safe; Data may be
// nil for an unregister notification that carries no payload.
type CacheChange struct {
	WriterGUID guid.GUID
	WriterSN   wire.SequenceNumber
	Data       *Data
}
