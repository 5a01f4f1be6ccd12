package packets

import "bytes"

const (
	StatusPacketID = 0x00
	PingPacketID   = 0x01
)

// StatusPacketRegistry holds the serverbound packets of the status state.
var StatusPacketRegistry = map[VarInt]func() ServerboundPacket{
	StatusPacketID: func() ServerboundPacket { return &StatusReqPacket{} },
	PingPacketID:   func() ServerboundPacket { return &PingReqPacket{} },
}

type StatusReqPacket struct{}

func (p *StatusReqPacket) Read(r *bytes.Reader) error {
	return nil
}

func (p StatusReqPacket) Write(buf *bytes.Buffer) error {
	return BuildPacket(
		buf,
		VarInt(StatusPacketID),
	)
}

type PingReqPacket struct {
	Timestamp Long
}

func (p *PingReqPacket) Read(r *bytes.Reader) error {
	return p.Timestamp.Read(r)
}

func (p PingReqPacket) Write(buf *bytes.Buffer) error {
	return BuildPacket(
		buf,
		VarInt(PingPacketID),
		p.Timestamp,
	)
}

type StatusRespPacket struct {
	Response String
}

func (p *StatusRespPacket) Read(r *bytes.Reader) error {
	return p.Response.Read(r)
}

func (p StatusRespPacket) Write(buf *bytes.Buffer) error {
	return BuildPacket(
		buf,
		VarInt(StatusPacketID),
		p.Response,
	)
}

type PongRespPacket struct {
	Timestamp Long
}

func (p *PongRespPacket) Read(r *bytes.Reader) error {
	return p.Timestamp.Read(r)
}

func (p PongRespPacket) Write(buf *bytes.Buffer) error {
	return BuildPacket(
		buf,
		VarInt(PingPacketID),
		p.Timestamp,
	)
}

// BuildStatusRequest returns the framed, empty status request.
func BuildStatusRequest() []byte {
	return Frame(StatusPacketID, nil)
}

// BuildPing returns a framed ping carrying timestampMillis as a signed 8-byte integer.
func BuildPing(timestampMillis int64) []byte {
	return Frame(PingPacketID, bigEndian(uint64(timestampMillis), WidthLong))
}
