package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gardenstoney/mcstatus/protocol/server"
	"github.com/gardenstoney/mcstatus/status"
)

func serveCmd(a *app) *cobra.Command {
	var (
		listen      string
		motd        string
		maxPlayers  int
		favicon     string
		versionName string
		protocol    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer status requests with a fixed description",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Server

			flags := cmd.Flags()
			if flags.Changed("listen") {
				sc.Listen = listen
			}
			if flags.Changed("motd") {
				sc.MOTD = motd
			}
			if flags.Changed("max-players") {
				sc.MaxPlayers = maxPlayers
			}
			if flags.Changed("favicon") {
				sc.Favicon = favicon
			}
			if flags.Changed("version-name") {
				sc.VersionName = versionName
			}
			if flags.Changed("protocol") {
				sc.Protocol = protocol
			}

			resp, err := buildServerStatus(sc)
			if err != nil {
				return err
			}

			// Shutdown on Ctrl+C
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.StatusHandler(server.NewStatusProvider(resp)), log.Logger)
			return srv.ListenAndServe(ctx, sc.Listen)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&listen, "listen", "l", ":25565", "address to listen on")
	flags.StringVar(&motd, "motd", "A Minecraft Server", "description shown in the server list")
	flags.IntVar(&maxPlayers, "max-players", 20, "advertised player limit")
	flags.StringVar(&favicon, "favicon", "", "64x64 PNG served as the server icon")
	flags.StringVar(&versionName, "version-name", "mcstatus", "advertised version name")
	flags.IntVar(&protocol, "protocol", 767, "advertised protocol version")

	return cmd
}

func buildServerStatus(sc ServerConfig) (*status.Response, error) {
	resp := &status.Response{
		Version:     status.Version{Name: sc.VersionName, Protocol: sc.Protocol},
		Players:     status.Players{Max: sc.MaxPlayers},
		Description: status.Description{Text: sc.MOTD},
	}

	if sc.Favicon != "" {
		png, err := os.ReadFile(sc.Favicon)
		if err != nil {
			return nil, fmt.Errorf("read favicon: %w", err)
		}
		resp.Favicon = status.EncodeFavicon(png)
	}

	return resp, nil
}
