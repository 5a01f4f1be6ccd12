package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gardenstoney/mcstatus/protocol/packets"
)

func TestServe_ShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := New(StatusHandler(NewStatusProvider(testStatus())), zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	conn, err := net.Dial("tcp", listener.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write(append(
		packets.BuildHandshake(767, "127.0.0.1", 25565, packets.NextStateStatus),
		packets.BuildStatusRequest()...,
	))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	packetType, _, err := packets.Unframe(conn)
	require.NoError(t, err)
	require.Equal(t, uint64(packets.StatusPacketID), packetType)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
