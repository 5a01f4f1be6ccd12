package server

import (
	"github.com/gardenstoney/mcstatus/protocol/packets"
	"github.com/gardenstoney/mcstatus/status"
)

// StatusProvider supplies the document served to status requests.
type StatusProvider interface {
	ServerStatus() *status.Response
}

type staticStatus struct {
	resp *status.Response
}

func NewStatusProvider(resp *status.Response) StatusProvider {
	return staticStatus{resp: resp}
}

func (s staticStatus) ServerStatus() *status.Response {
	return s.resp
}

// StatusHandler answers status requests from provider and echoes pings.
// The session is shut down after the pong, as vanilla servers do.
func StatusHandler(provider StatusProvider) PacketHandler {
	return func(session *Session, packet packets.ServerboundPacket) {
		switch p := packet.(type) {
		case *packets.StatusReqPacket:
			data, err := provider.ServerStatus().Marshal()
			if err != nil {
				session.Logger.Error().Err(err).Msg("failed to marshal status")
				session.Shutdown()
				return
			}

			if err := session.Send(packets.StatusRespPacket{Response: packets.String(data)}); err != nil {
				session.Logger.Error().Err(err).Msg("failed to send status response")
				session.Shutdown()
			}

		case *packets.PingReqPacket:
			if err := session.Send(packets.PongRespPacket{Timestamp: p.Timestamp}); err != nil {
				session.Logger.Error().Err(err).Msg("failed to send pong")
			}
			session.Shutdown()
		}
	}
}
