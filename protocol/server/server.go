// Package server answers handshake and status-state packets.
package server

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gardenstoney/mcstatus/protocol/transport"
)

type Server struct {
	Handler PacketHandler
	Logger  zerolog.Logger
}

func New(handler PacketHandler, logger zerolog.Logger) *Server {
	return &Server{
		Handler: handler,
		Logger:  logger.With().Str("component", "server").Logger(),
	}
}

// ListenAndServe listens on addr and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.Logger.Info().Str("addr", listener.Addr().String()).Msg("server started")
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener, handling each in its own goroutine.
// It closes listener and waits for open sessions once ctx is canceled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	var wg sync.WaitGroup

	stop := context.AfterFunc(ctx, func() {
		listener.Close()
	})
	defer stop()

accept:
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				break accept
			default:
			}

			if errors.Is(err, net.ErrClosed) {
				wg.Wait()
				return err
			}

			s.Logger.Warn().Err(err).Msg("connection error")
			continue accept
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			session := NewSession(&transport.NetTransport{Conn: conn}, ctx, s.Logger)
			if err := HandleSession(session, s.Handler); err != nil {
				session.Logger.Debug().Err(err).Msg("session ended")
			}
		}()
	}

	wg.Wait()
	s.Logger.Info().Msg("server stopped")
	return nil
}
