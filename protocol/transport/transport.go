// Package transport moves whole frames over a connection.
package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gardenstoney/mcstatus/protocol/packets"
)

// Low level communication interface reading and writing whole frames
type Transporter interface {
	Read(context.Context) ([]byte, error)
	Write(buf []byte) error
	Close() error
	fmt.Stringer
}

// Transporter wrapper for net.Conn
type NetTransport struct {
	Conn net.Conn
}

// Read a frame from net.Conn, cancelable via context
//
// The returned slice is the frame's inner content: packet type VarInt and payload.
// ctx.Err() is prioritized to be returned if it's not nil.
func (t *NetTransport) Read(ctx context.Context) (inner []byte, err error) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = t.Conn.SetReadDeadline(time.Now()) // force read to unblock
		case <-done:
		}
	}()

	inner, err = packets.ReadFrame(t.Conn)
	if e := ctx.Err(); e != nil {
		err = e
	}
	return inner, err
}

func (t *NetTransport) Write(buf []byte) error {
	_, err := t.Conn.Write(buf)
	return err
}

func (t *NetTransport) Close() error {
	return t.Conn.Close()
}

func (t *NetTransport) String() string {
	return t.Conn.RemoteAddr().String()
}
