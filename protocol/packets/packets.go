package packets

import (
	"bytes"
	"fmt"
	"io"
)

// MaxPacketLength is the largest frame length a 3-byte VarInt can declare.
const MaxPacketLength = 1<<21 - 1

// DataField wraps types that implement both WritableField and ReadableField.
//
// It represents a field in a packet that can be serialized and deserialized.
type DataField interface {
	WritableField
	ReadableField
}

// A WritableField represents a field in a packet that can be serialized.
type WritableField interface {
	Write(buf *bytes.Buffer) error
}

// A ReadableField represents a field in a packet that can be deserialized.
type ReadableField interface {
	Read(r *bytes.Reader) error
}

type ServerboundPacket interface {
	ReadableField
}

type ClientboundPacket interface {
	WritableField
}

// Frame wraps a packet type and payload as
// VarInt(len(inner)) + inner, where inner is VarInt(packetType) + payload.
func Frame(packetType uint64, payload []byte) []byte {
	innerLen := VarIntSize(packetType) + len(payload)

	out := make([]byte, 0, VarIntSize(uint64(innerLen))+innerLen)
	out = AppendVarint(out, uint64(innerLen))
	out = AppendVarint(out, packetType)
	return append(out, payload...)
}

// Unframe reads one frame from r and splits it into packet type and payload.
func Unframe(r io.Reader) (packetType uint64, payload []byte, err error) {
	inner, err := ReadFrame(r)
	if err != nil {
		return 0, nil, err
	}

	reader := bytes.NewReader(inner)
	packetType, err = ReadVarint(reader)
	if err != nil {
		return 0, nil, fmt.Errorf("packet type: %w", err)
	}

	return packetType, inner[len(inner)-reader.Len():], nil
}

// ReadFrame reads one frame from r and returns its inner content,
// the packet type VarInt followed by the payload.
func ReadFrame(r io.Reader) ([]byte, error) {
	length, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}

	if length > MaxPacketLength {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrPacketTooLarge, length, MaxPacketLength)
	}

	inner, err := readN(r, length)
	if err != nil {
		return nil, fmt.Errorf("packet body: %w", err)
	}

	return inner, nil
}

// ReadPacket reads one frame from r and returns its packet ID
// and a reader positioned at the start of the payload.
func ReadPacket(r io.Reader) (packetID VarInt, bufreader *bytes.Reader, err error) {
	inner, err := ReadFrame(r)
	if err != nil {
		return 0, nil, err
	}

	bufreader = bytes.NewReader(inner)
	if err = packetID.Read(bufreader); err != nil {
		return 0, nil, fmt.Errorf("packet id: %w", err)
	}

	return packetID, bufreader, nil
}

// BuildPacket takes a series of WritableFields composing a packet,
// builds and serializes a packet to buf
func BuildPacket(buf *bytes.Buffer, fields ...WritableField) error {
	contentbuf := bytes.NewBuffer(make([]byte, 0))
	for _, f := range fields {
		err := f.Write(contentbuf)
		if err != nil {
			return err
		}
	}

	err := VarInt(contentbuf.Len()).Write(buf)
	if err != nil {
		return err
	}

	_, err = contentbuf.WriteTo(buf)
	return err
}

// WritableDataField RawBytes is serialized directly into its byte contents.
//
// Use it to flexibly serialize a field and integrate it with BuildPacket
type RawBytes []byte

func (df RawBytes) Write(buf *bytes.Buffer) error {
	_, err := buf.Write(df)

	return err
}

// Read consumes the rest of r.
func (df *RawBytes) Read(r *bytes.Reader) error {
	rest := make([]byte, r.Len())
	_, err := io.ReadFull(r, rest)
	*df = rest

	return err
}
