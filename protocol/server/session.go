package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gardenstoney/mcstatus/protocol/packets"
	"github.com/gardenstoney/mcstatus/protocol/transport"
)

type ConnectionMode byte

const (
	Handshaking ConnectionMode = iota
	Status
	Login
)

var ErrLoginUnsupported = errors.New("login is not supported")

type PacketHandler func(session *Session, packet packets.ServerboundPacket)

type Session struct {
	Ctx       context.Context
	Cancel    context.CancelFunc
	Transport transport.Transporter
	Mode      ConnectionMode
	Handshake packets.HandshakePacket
	Logger    zerolog.Logger
	once      sync.Once
}

func NewSession(t transport.Transporter, parentCtx context.Context, logger zerolog.Logger) *Session {
	ctx, cancel := context.WithCancel(parentCtx)

	return &Session{
		Ctx:       ctx,
		Cancel:    cancel,
		Transport: t,
		Logger:    logger.With().Str("remote", t.String()).Logger(),
	}
}

func (s *Session) Shutdown() {
	s.once.Do(func() {
		s.Cancel()
		s.Logger.Debug().Msg("closing session")
		s.Transport.Close()
	})
}

// Send serializes packet and writes it to the session's transport.
func (s *Session) Send(packet packets.ClientboundPacket) error {
	buf := bytes.NewBuffer(make([]byte, 0))
	if err := packet.Write(buf); err != nil {
		return err
	}

	return s.Transport.Write(buf.Bytes())
}

// HandleSession reads the handshake and then serves status-state packets
// until the peer disconnects, the handler shuts the session down,
// or the context is canceled.
func HandleSession(session *Session, handler PacketHandler) error {
	defer session.Shutdown()

	payload, err := session.Transport.Read(session.Ctx)
	if err != nil {
		return fmt.Errorf("read handshake: %w", err)
	}

	reader := bytes.NewReader(payload)
	var packetID packets.VarInt
	if err := packetID.Read(reader); err != nil {
		return fmt.Errorf("read handshake id: %w", err)
	}

	if packetID != packets.HandshakePacketID {
		return fmt.Errorf("handshake: unexpected packet id %d", packetID)
	}

	if err := session.Handshake.Read(reader); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}

	session.Logger.Debug().
		Uint64("protocol", uint64(session.Handshake.ProtocolVersion)).
		Str("addr", string(session.Handshake.ServerAddr)).
		Uint16("port", uint16(session.Handshake.ServerPort)).
		Stringer("next", session.Handshake.NextState).
		Msg("received handshake")

	session.Mode = ConnectionMode(session.Handshake.NextState)
	if session.Mode != Status {
		return ErrLoginUnsupported
	}

	for {
		// Return if the context was canceled
		select {
		case <-session.Ctx.Done():
			return nil
		default:
		}

		payload, err := session.Transport.Read(session.Ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read packet: %w", err)
		}

		reader := bytes.NewReader(payload)
		var packetID packets.VarInt
		if err := packetID.Read(reader); err != nil {
			return fmt.Errorf("read packet id: %w", err)
		}

		packetFactory, exists := packets.StatusPacketRegistry[packetID]
		if !exists {
			return fmt.Errorf("unknown packet id %d", packetID)
		}

		packet := packetFactory()
		if err := packet.Read(reader); err != nil {
			return fmt.Errorf("read packet %d: %w", packetID, err)
		}

		handler(session, packet)
	}
}
