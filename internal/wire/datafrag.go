package wire

import "github.com/rtpscore/corecache/internal/guid"

// SequenceNumber is a 64-bit monotonic per-writer counter (§3).
type SequenceNumber uint64

// FragmentNumber is the 1-based wire index of a fragment (§3). Helpers
// below convert to/from the 0-based indices the assembler works with.
type FragmentNumber uint32

// ZeroBased returns the 0-based fragment index for n, which must be >= 1.
func (n FragmentNumber) ZeroBased() int {
	return int(n) - 1
}

// Flag is a bit in the DATAFRAG flags set (§3).
type Flag uint8

const (
	// FlagKey marks the submessage as carrying a key-only (dispose) sample.
	FlagKey Flag = 1 << 0
)

// Flags is the flag set carried alongside a DataFrag.
type Flags uint8

// Has reports whether f is set.
func (fl Flags) Has(f Flag) bool {
	return fl&Flags(f) != 0
}

// DataFrag is the structured form of a DATA_FRAG submessage (§3/§6.1).
// The core consumes this; it does not parse RTPS submessage headers.
type DataFrag struct {
	WriterGUID            guid.GUID
	WriterSN              SequenceNumber
	DataSize              uint32
	FragmentSize          uint16
	FragmentStartingNum   FragmentNumber
	FragmentsInSubmessage uint16
	SerializedPayload     SerializedPayload
	Flags                 Flags
}
