// Package guid implements the RTPS GUID: a 16-byte identifier for a
// participant, writer, or reader entity, used throughout this module as
// the routing key for per-writer fragment reassembly state.
package guid

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Size is the wire length of a GUID: 12-byte GuidPrefix + 4-byte EntityId.
const Size = 16

// GUID is an RTPS entity identifier. It is comparable and usable as a map
// key, matching its role as the routing key in pkg/router and pkg/fragment.
type GUID [Size]byte

// Unknown is the all-zero GUID, used where no writer identity is known.
var Unknown = GUID{}

// New synthesizes a GUID from a fresh random UUID. Used by callers (demo
// CLI, tests) that need a writer identity without a real discovery
// subsystem; it carries no RTPS GuidPrefix/EntityId structure.
func New() GUID {
	id := uuid.New()
	var g GUID
	copy(g[:], id[:])
	return g
}

// FromBytes copies b into a GUID. b must be exactly Size bytes long.
func FromBytes(b []byte) (GUID, error) {
	var g GUID
	if len(b) != Size {
		return g, fmt.Errorf("guid: want %d bytes, got %d", Size, len(b))
	}
	copy(g[:], b)
	return g, nil
}

// Bytes returns the GUID's wire bytes.
func (g GUID) Bytes() []byte {
	return g[:]
}

// String renders the GUID as hex, prefix and entity id separated by a dash.
func (g GUID) String() string {
	return fmt.Sprintf("%s-%s", hex.EncodeToString(g[0:12]), hex.EncodeToString(g[12:16]))
}

// IsUnknown reports whether g is the zero GUID.
func (g GUID) IsUnknown() bool {
	return g == Unknown
}
