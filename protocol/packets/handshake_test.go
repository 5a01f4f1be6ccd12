package packets

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildHandshake(t *testing.T) {
	framed := BuildHandshake(754, "localhost", 25565, NextStateStatus)

	packetType, payload, err := Unframe(bytes.NewReader(framed))
	require.NoError(t, err)
	require.Equal(t, uint64(HandshakePacketID), packetType)

	var hs HandshakePacket
	r := bytes.NewReader(payload)
	require.NoError(t, hs.Read(r))
	require.Zero(t, r.Len())

	require.Equal(t, VarInt(754), hs.ProtocolVersion)
	require.Equal(t, String("localhost"), hs.ServerAddr)
	require.Equal(t, UnsignedShort(25565), hs.ServerPort)
	require.Equal(t, NextStateStatus, hs.NextState)
}

func TestBuildHandshakeWireBytes(t *testing.T) {
	want := []byte{
		0x10,       // frame length
		0x00,       // packet type
		0xf2, 0x05, // protocol version 754
		0x09, 'l', 'o', 'c', 'a', 'l', 'h', 'o', 's', 't',
		0x63, 0xdd, // port 25565
		0x01,       // next state
	}
	require.Equal(t, want, BuildHandshake(754, "localhost", 25565, NextStateStatus))
}

func TestHandshakePacketWriteMatchesBuilder(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	err := HandshakePacket{
		ProtocolVersion: 767,
		ServerAddr:      "mc.example.org",
		ServerPort:      25566,
		NextState:       NextStateLogin,
	}.Write(buf)
	require.NoError(t, err)
	require.Equal(t, BuildHandshake(767, "mc.example.org", 25566, NextStateLogin), buf.Bytes())
}

func TestHandshakeRejectsUnknownNextState(t *testing.T) {
	framed := BuildHandshake(754, "localhost", 25565, NextState(3))

	_, r, err := ReadPacket(bytes.NewReader(framed))
	require.NoError(t, err)

	var hs HandshakePacket
	require.ErrorIs(t, hs.Read(r), ErrInvalidNextState)

	err = HandshakePacket{NextState: NextState(0)}.Write(bytes.NewBuffer(nil))
	require.ErrorIs(t, err, ErrInvalidNextState)
}

func TestBuildStatusRequest(t *testing.T) {
	require.Equal(t, []byte{0x01, 0x00}, BuildStatusRequest())

	buf := bytes.NewBuffer(nil)
	require.NoError(t, StatusReqPacket{}.Write(buf))
	require.Equal(t, BuildStatusRequest(), buf.Bytes())
}

func TestBuildPing(t *testing.T) {
	const ts = int64(1700000000123)
	framed := BuildPing(ts)
	require.Len(t, framed, 10)

	packetType, payload, err := Unframe(bytes.NewReader(framed))
	require.NoError(t, err)
	require.Equal(t, uint64(PingPacketID), packetType)

	got, err := DecodeSigned(payload)
	require.NoError(t, err)
	require.Equal(t, ts, got)

	buf := bytes.NewBuffer(nil)
	require.NoError(t, PingReqPacket{Timestamp: Long(ts)}.Write(buf))
	require.Equal(t, framed, buf.Bytes())
}

func TestBuildPingNegativeTimestamp(t *testing.T) {
	_, payload, err := Unframe(bytes.NewReader(BuildPing(-1)))
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{0xff}, 8), payload)
}
