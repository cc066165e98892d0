// Package wire defines the structured form of the DATA_FRAG submessage and
// the SerializedPayload it carries, plus the binary codec used to move
// them on and off the network byte order wire. The module never parses a
// full RTPS message header; it only depends on the fields documented
// below being supplied by an external parser.
package wire

import "fmt"

// RepresentationIdentifier is the 2-byte encoding tag at the head of a
// SerializedPayload (RTPS 2.5 §10.5). Only the values this module needs
// to recognize on completion are named; any other value is treated as
// unrecognized and causes the fragment assembler to drop the sample.
type RepresentationIdentifier uint16

const (
	CDR_BE     RepresentationIdentifier = 0x0000
	CDR_LE     RepresentationIdentifier = 0x0001
	PL_CDR_BE  RepresentationIdentifier = 0x0002
	PL_CDR_LE  RepresentationIdentifier = 0x0003
	CDR2_BE    RepresentationIdentifier = 0x0010
	CDR2_LE    RepresentationIdentifier = 0x0011
	D_CDR2_BE  RepresentationIdentifier = 0x0012
	D_CDR2_LE  RepresentationIdentifier = 0x0013
	PL_CDR2_BE RepresentationIdentifier = 0x0014
	PL_CDR2_LE RepresentationIdentifier = 0x0015
)

// knownRepresentations is consulted by RepresentationIdentifier.Known.
var knownRepresentations = map[RepresentationIdentifier]bool{
	CDR_BE: true, CDR_LE: true, PL_CDR_BE: true, PL_CDR_LE: true,
	CDR2_BE: true, CDR2_LE: true, D_CDR2_BE: true, D_CDR2_LE: true,
	PL_CDR2_BE: true, PL_CDR2_LE: true,
}

// Known reports whether id is one this module recognizes on reassembly
// completion. An unrecognized id is a MalformedFragment condition (§7).
func (id RepresentationIdentifier) Known() bool {
	return knownRepresentations[id]
}

func (id RepresentationIdentifier) String() string {
	return fmt.Sprintf("RepresentationIdentifier(0x%04x)", uint16(id))
}

// SerializedPayload is opaque user data with its 4-byte prefix split out:
// a RepresentationIdentifier and 2 bytes of reserved RepresentationOptions.
type SerializedPayload struct {
	RepresentationIdentifier RepresentationIdentifier
	RepresentationOptions    [2]byte
	Value                    []byte
}
