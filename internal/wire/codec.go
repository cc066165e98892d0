package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rtpscore/corecache/internal/guid"
)

// ErrShortBuffer is returned by Decode when data is truncated.
var ErrShortBuffer = errors.New("wire: buffer too short to decode DataFrag")

// Encode serializes a DataFrag into its wire form (network byte order):
//
//	WriterGUID             [16]byte
//	WriterSN               uint64
//	DataSize               uint32
//	FragmentSize           uint16
//	FragmentStartingNum    uint32
//	FragmentsInSubmessage  uint16
//	Flags                  uint8
//	RepresentationIdentifier uint16   (only meaningful when FragmentStartingNum == 1)
//	RepresentationOptions  [2]byte
//	PayloadLen             uint32
//	Payload                []byte
func Encode(df *DataFrag) ([]byte, error) {
	buf := new(bytes.Buffer)

	if _, err := buf.Write(df.WriterGUID.Bytes()); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, uint64(df.WriterSN)); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, df.DataSize); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, df.FragmentSize); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, uint32(df.FragmentStartingNum)); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, df.FragmentsInSubmessage); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, uint8(df.Flags)); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, uint16(df.SerializedPayload.RepresentationIdentifier)); err != nil {
		return nil, err
	}
	if _, err := buf.Write(df.SerializedPayload.RepresentationOptions[:]); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, uint32(len(df.SerializedPayload.Value))); err != nil {
		return nil, err
	}
	if _, err := buf.Write(df.SerializedPayload.Value); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode parses the wire form produced by Encode.
func Decode(data []byte) (*DataFrag, error) {
	const fixedLen = guid.Size + 8 + 4 + 2 + 4 + 2 + 1 + 2 + 2 + 4
	if len(data) < fixedLen {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, fixedLen, len(data))
	}

	r := bytes.NewReader(data)
	df := &DataFrag{}

	guidBytes := make([]byte, guid.Size)
	if _, err := r.Read(guidBytes); err != nil {
		return nil, err
	}
	g, err := guid.FromBytes(guidBytes)
	if err != nil {
		return nil, err
	}
	df.WriterGUID = g

	var sn uint64
	if err := binary.Read(r, binary.BigEndian, &sn); err != nil {
		return nil, err
	}
	df.WriterSN = SequenceNumber(sn)

	if err := binary.Read(r, binary.BigEndian, &df.DataSize); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &df.FragmentSize); err != nil {
		return nil, err
	}

	var startNum uint32
	if err := binary.Read(r, binary.BigEndian, &startNum); err != nil {
		return nil, err
	}
	df.FragmentStartingNum = FragmentNumber(startNum)

	if err := binary.Read(r, binary.BigEndian, &df.FragmentsInSubmessage); err != nil {
		return nil, err
	}

	var flags uint8
	if err := binary.Read(r, binary.BigEndian, &flags); err != nil {
		return nil, err
	}
	df.Flags = Flags(flags)

	var repID uint16
	if err := binary.Read(r, binary.BigEndian, &repID); err != nil {
		return nil, err
	}
	df.SerializedPayload.RepresentationIdentifier = RepresentationIdentifier(repID)

	if _, err := r.Read(df.SerializedPayload.RepresentationOptions[:]); err != nil {
		return nil, err
	}

	var payloadLen uint32
	if err := binary.Read(r, binary.BigEndian, &payloadLen); err != nil {
		return nil, err
	}

	if uint32(r.Len()) < payloadLen {
		return nil, fmt.Errorf("%w: payload needs %d, have %d", ErrShortBuffer, payloadLen, r.Len())
	}

	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := r.Read(payload); err != nil {
			return nil, err
		}
	}
	df.SerializedPayload.Value = payload

	return df, nil
}
