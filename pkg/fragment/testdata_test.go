package fragment

import (
	"github.com/rtpscore/corecache/internal/guid"
	"github.com/rtpscore/corecache/internal/wire"
)

// buildFullMessage constructs the fully-reassembled buffer layout a
// correct Assembler run should produce: a 4-byte SerializedPayload
// prefix (CDR_LE, zero options) followed by userLen bytes of
// deterministic filler.
func buildFullMessage(userLen int) []byte {
	full := make([]byte, prefixLen+userLen)
	full[0] = byte(wire.CDR_LE >> 8)
	full[1] = byte(wire.CDR_LE)
	full[2] = 0
	full[3] = 0
	for i := 0; i < userLen; i++ {
		full[prefixLen+i] = byte(i % 251)
	}
	return full
}

// fragGroup describes one DATA_FRAG submessage to synthesize: it starts
// at the 1-based fragment startNum and carries n consecutive fragments.
func fragGroup(writer guid.GUID, sn wire.SequenceNumber, full []byte, fragSize uint16, startNum, n int, flags wire.Flags) *wire.DataFrag {
	dataSize := uint32(len(full))
	fragSizeU := int(fragSize)
	fragmentCount := int(dataSize) / fragSizeU
	if int(dataSize)%fragSizeU != 0 {
		fragmentCount++
	}

	s := startNum - 1
	endNum := startNum + n - 1
	fromUnshifted := s * fragSizeU

	var to int
	if endNum < fragmentCount {
		to = fromUnshifted + n*fragSizeU
	} else {
		to = int(dataSize)
	}

	fromShifted := fromUnshifted
	var repID wire.RepresentationIdentifier
	var opts [2]byte
	if s == 0 {
		fromShifted += prefixLen
		repID = wire.RepresentationIdentifier(uint16(full[0])<<8 | uint16(full[1]))
		opts = [2]byte{full[2], full[3]}
	}

	return &wire.DataFrag{
		WriterGUID:            writer,
		WriterSN:              sn,
		DataSize:              dataSize,
		FragmentSize:          fragSize,
		FragmentStartingNum:   wire.FragmentNumber(startNum),
		FragmentsInSubmessage: uint16(n),
		Flags:                 flags,
		SerializedPayload: wire.SerializedPayload{
			RepresentationIdentifier: repID,
			RepresentationOptions:    opts,
			Value:                    append([]byte(nil), full[fromShifted:to]...),
		},
	}
}

// splitIntoSingleFragSubmessages builds one DataFrag per fragment (n=1
// each), in ascending fragment order.
func splitIntoSingleFragSubmessages(writer guid.GUID, sn wire.SequenceNumber, full []byte, fragSize uint16, flags wire.Flags) []*wire.DataFrag {
	dataSize := len(full)
	fragSizeU := int(fragSize)
	fragmentCount := dataSize / fragSizeU
	if dataSize%fragSizeU != 0 {
		fragmentCount++
	}

	frags := make([]*wire.DataFrag, 0, fragmentCount)
	for i := 0; i < fragmentCount; i++ {
		frags = append(frags, fragGroup(writer, sn, full, fragSize, i+1, 1, flags))
	}
	return frags
}
