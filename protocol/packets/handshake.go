package packets

import (
	"bytes"
	"fmt"
)

// NextState is the connection state a client asks for in its handshake.
type NextState byte

const (
	NextStateStatus NextState = 1
	NextStateLogin  NextState = 2
)

func (df NextState) Valid() bool {
	return df == NextStateStatus || df == NextStateLogin
}

func (df NextState) String() string {
	switch df {
	case NextStateStatus:
		return "status"
	case NextStateLogin:
		return "login"
	}
	return fmt.Sprintf("NextState(%d)", byte(df))
}

func (df NextState) Write(buf *bytes.Buffer) error {
	if !df.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidNextState, byte(df))
	}

	return UnsignedByte(df).Write(buf)
}

func (df *NextState) Read(r *bytes.Reader) error {
	var b UnsignedByte
	if err := b.Read(r); err != nil {
		return err
	}

	if !NextState(b).Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidNextState, byte(b))
	}

	*df = NextState(b)
	return nil
}

const HandshakePacketID = 0x00

type HandshakePacket struct {
	ProtocolVersion VarInt
	ServerAddr      String
	ServerPort      UnsignedShort
	NextState       NextState
}

func (p *HandshakePacket) Read(r *bytes.Reader) error {
	fields := []ReadableField{&p.ProtocolVersion, &p.ServerAddr, &p.ServerPort, &p.NextState}
	for _, f := range fields {
		if err := f.Read(r); err != nil {
			return err
		}
	}

	return nil
}

func (p HandshakePacket) Write(buf *bytes.Buffer) error {
	if !p.NextState.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidNextState, byte(p.NextState))
	}

	_, err := buf.Write(Frame(HandshakePacketID, handshakePayload(
		uint64(p.ProtocolVersion), string(p.ServerAddr), uint16(p.ServerPort), p.NextState,
	)))
	return err
}

// BuildHandshake returns the framed handshake packet that opens a connection.
//
// next is written as given, without the check HandshakePacket.Write applies,
// so callers can produce handshakes for states this package doesn't model.
func BuildHandshake(protocolVersion uint64, address string, port uint16, next NextState) []byte {
	return Frame(HandshakePacketID, handshakePayload(protocolVersion, address, port, next))
}

func handshakePayload(protocolVersion uint64, address string, port uint16, next NextState) []byte {
	payload := AppendVarint(nil, protocolVersion)
	payload = AppendString(payload, address)
	payload = append(payload, bigEndian(uint64(port), WidthShort)...)
	return append(payload, byte(next))
}
