// Package client queries a server's status over the handshake/status exchange.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gardenstoney/mcstatus/protocol/packets"
	"github.com/gardenstoney/mcstatus/protocol/transport"
	"github.com/gardenstoney/mcstatus/status"
)

const (
	DefaultPort            = 25565
	DefaultProtocolVersion = 767
	DefaultTimeout         = 5 * time.Second
)

var ErrUnexpectedPacket = errors.New("unexpected packet")

type Client struct {
	ProtocolVersion uint64
	Timeout         time.Duration
	// Dial opens the connection. Defaults to a TCP net.Dialer.
	Dial   func(ctx context.Context, network, addr string) (net.Conn, error)
	Logger zerolog.Logger
}

type Result struct {
	Address string
	Status  *status.Response
	// Raw is the status JSON exactly as the server sent it.
	Raw     string
	Latency time.Duration
}

func New(logger zerolog.Logger) *Client {
	return &Client{
		ProtocolVersion: DefaultProtocolVersion,
		Timeout:         DefaultTimeout,
		Logger:          logger.With().Str("component", "client").Logger(),
	}
}

// Query performs one handshake + status request against host:port.
func (c *Client) Query(ctx context.Context, host string, port uint16) (*Result, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	conn, err := c.dial(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	t := &transport.NetTransport{Conn: conn}
	defer t.Close()

	c.Logger.Debug().Str("addr", addr).Uint64("protocol", c.ProtocolVersion).Msg("connected")

	return c.exchange(ctx, t, host, port)
}

func (c *Client) exchange(ctx context.Context, t transport.Transporter, host string, port uint16) (*Result, error) {
	request := packets.BuildHandshake(c.ProtocolVersion, host, port, packets.NextStateStatus)
	request = append(request, packets.BuildStatusRequest()...)

	start := time.Now()
	if err := t.Write(request); err != nil {
		return nil, fmt.Errorf("send status request: %w", err)
	}

	inner, err := t.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read status response: %w", err)
	}
	latency := time.Since(start)

	reader := bytes.NewReader(inner)
	var packetID packets.VarInt
	if err := packetID.Read(reader); err != nil {
		return nil, fmt.Errorf("read status response id: %w", err)
	}

	if packetID != packets.StatusPacketID {
		return nil, fmt.Errorf("%w: id %d", ErrUnexpectedPacket, packetID)
	}

	var resp packets.StatusRespPacket
	if err := resp.Read(reader); err != nil {
		return nil, fmt.Errorf("read status response: %w", err)
	}

	c.Logger.Debug().Int("bytes", len(inner)).Dur("latency", latency).Msg("status response received")

	parsed, err := status.Parse([]byte(resp.Response))
	if err != nil {
		return nil, err
	}

	return &Result{
		Address: t.String(),
		Status:  parsed,
		Raw:     string(resp.Response),
		Latency: latency,
	}, nil
}

func (c *Client) dial(ctx context.Context, addr string) (net.Conn, error) {
	if c.Dial != nil {
		return c.Dial(ctx, "tcp", addr)
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	return conn, nil
}
