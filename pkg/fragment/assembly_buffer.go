package fragment

import (
	"fmt"
	"time"

	"github.com/rtpscore/corecache/internal/wire"
)

// ErrFragmentOutOfRange is a MalformedFragment condition (§7): the
// submessage's fragment_starting_num does not address a valid fragment.
var ErrFragmentOutOfRange = fmt.Errorf("fragment: fragment_starting_num out of range")

// ErrFragmentOverrun is a MalformedFragment condition (§7): writing this
// submessage's fragments would run past the end of the sample buffer.
var ErrFragmentOverrun = fmt.Errorf("fragment: write would overrun data_size")

// prefixLen is the width of the SerializedPayload prefix (representation
// identifier + representation options) carried at the head of fragment 1.
const prefixLen = 4

// assemblyBuffer holds the partial payload of one in-progress sample from
// one writer (§3/§4.1).
type assemblyBuffer struct {
	bytes         []byte
	fragmentCount uint32
	received      *bitset
	createdAt     time.Time
	modifiedAt    time.Time
}

// newAssemblyBuffer allocates a zeroed buffer of dataSize bytes and
// computes fragmentCount = ceil(dataSize / fragmentSize), per §4.1.
func newAssemblyBuffer(dataSize uint32, fragmentSize uint16, now time.Time) *assemblyBuffer {
	fragmentCount := dataSize / uint32(fragmentSize)
	if dataSize%uint32(fragmentSize) != 0 {
		fragmentCount++
	}
	return &assemblyBuffer{
		bytes:         make([]byte, dataSize),
		fragmentCount: fragmentCount,
		received:      newBitset(fragmentCount),
		createdAt:     now,
		modifiedAt:    now,
	}
}

// insertFrags writes the payload bytes of one DATA_FRAG into their
// correct offsets, per §4.1.
func (b *assemblyBuffer) insertFrags(df *wire.DataFrag, now time.Time) error {
	startNum := df.FragmentStartingNum
	if startNum < 1 || uint32(startNum.ZeroBased()) >= b.fragmentCount {
		return fmt.Errorf("%w: fragment_starting_num=%d fragment_count=%d", ErrFragmentOutOfRange, startNum, b.fragmentCount)
	}
	s := uint32(startNum.ZeroBased())
	n := uint32(df.FragmentsInSubmessage)
	fragSize := uint32(df.FragmentSize)

	from := s * fragSize
	// The submessage covers fragments [startNum, startNum+n-1] (1-based);
	// it reaches the final fragment whenever that range's end does,
	// whether it's a single trailing fragment or a single batched
	// submessage spanning every fragment at once (§4.1 scenario: batched
	// submessage). Checking only startNum (as a literal reading of "If
	// fragment_starting_num < fragment_count" might suggest) mishandles
	// the batched case, so the end of the submessage's range is what
	// decides which branch applies.
	endNum := uint32(startNum) + n - 1
	var to uint32
	if endNum < b.fragmentCount {
		to = from + n*fragSize
	} else {
		to = from + uint32(len(df.SerializedPayload.Value))
		if s == 0 {
			// Value excludes the 4-byte prefix, which occupies bytes[0:4].
			to += prefixLen
		}
	}

	if s == 0 {
		from += prefixLen
	}

	if to > uint32(len(b.bytes)) || from > to {
		return fmt.Errorf("%w: from=%d to=%d data_size=%d", ErrFragmentOverrun, from, to, len(b.bytes))
	}

	if s == 0 {
		var prefix [prefixLen]byte
		prefix[0] = byte(df.SerializedPayload.RepresentationIdentifier >> 8)
		prefix[1] = byte(df.SerializedPayload.RepresentationIdentifier)
		prefix[2] = df.SerializedPayload.RepresentationOptions[0]
		prefix[3] = df.SerializedPayload.RepresentationOptions[1]
		copy(b.bytes[0:prefixLen], prefix[:])
	}

	copy(b.bytes[from:to], df.SerializedPayload.Value)

	for f := uint32(0); f < n; f++ {
		b.received.set(s + f)
	}
	b.modifiedAt = now
	return nil
}

// isComplete reports whether every fragment has been written (§4.1).
func (b *assemblyBuffer) isComplete() bool {
	return b.received.all()
}
