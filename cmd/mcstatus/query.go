package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gardenstoney/mcstatus/protocol/client"
	"github.com/gardenstoney/mcstatus/status"
)

func queryCmd(a *app) *cobra.Command {
	var (
		port       uint16
		protocol   uint64
		timeout    time.Duration
		instanceID string
		region     string
		favicon    string
		rawJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "query [host[:port]]",
		Short: "Query a server's status",
		Long: `Send a handshake and a status request to a server and print the reply.

Without a host argument the host comes from the config file, from
--instance-id (the public address of a running EC2 instance), or is
asked for interactively. An explicit --instance-id takes precedence over
a host from the config file or environment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qc := a.cfg.Query

			flags := cmd.Flags()
			if flags.Changed("port") {
				qc.Port = port
			}
			if flags.Changed("protocol") {
				qc.ProtocolVersion = protocol
			}
			if flags.Changed("timeout") {
				qc.Timeout = timeout
			}
			if flags.Changed("instance-id") {
				qc.InstanceID = instanceID
			}
			if flags.Changed("region") {
				qc.Region = region
			}
			if flags.Changed("favicon") {
				qc.Favicon = favicon
			}

			if len(args) == 1 {
				host, p, err := splitHostPort(args[0], qc.Port)
				if err != nil {
					return err
				}
				qc.Host, qc.Port = host, p
			}

			ctx := cmd.Context()

			err := applyInstanceHost(ctx, &qc, len(args) == 1, flags.Changed("instance-id"), newInstanceDescriber)
			if err != nil {
				return err
			}

			if qc.Host == "" {
				if err := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).askQuery(&qc); err != nil {
					return err
				}
			}

			return runQuery(ctx, cmd.OutOrStdout(), qc, rawJSON, newFaviconWriter(qc.Region))
		},
	}

	flags := cmd.Flags()
	flags.Uint16VarP(&port, "port", "p", client.DefaultPort, "server port")
	flags.Uint64Var(&protocol, "protocol", client.DefaultProtocolVersion, "protocol version sent in the handshake")
	flags.DurationVar(&timeout, "timeout", client.DefaultTimeout, "dial and read timeout")
	flags.StringVar(&instanceID, "instance-id", "", "EC2 instance whose public address is queried")
	flags.StringVar(&region, "region", "", "AWS region for --instance-id and s3:// favicon destinations")
	flags.StringVar(&favicon, "favicon", "favicon.png", `where to store the icon: a file path, s3://bucket/key, or "-" to skip`)
	flags.BoolVar(&rawJSON, "json", false, "print the raw status JSON instead of a table")

	return cmd
}

func runQuery(ctx context.Context, out io.Writer, qc QueryConfig, rawJSON bool, fw *faviconWriter) error {
	c := client.New(log.Logger)
	c.ProtocolVersion = qc.ProtocolVersion
	c.Timeout = qc.Timeout

	log.Debug().Str("host", qc.Host).Uint16("port", qc.Port).Msg("querying")

	result, err := c.Query(ctx, qc.Host, qc.Port)
	if err != nil {
		return err
	}

	if rawJSON {
		fmt.Fprintln(out, result.Raw)
		return nil
	}

	var icon string
	png, err := result.Status.FaviconPNG()
	switch {
	case errors.Is(err, status.ErrNoFavicon):
	case err != nil:
		log.Warn().Err(err).Msg("could not decode favicon")
	default:
		written, err := fw.Write(ctx, qc.Favicon, png)
		if err != nil {
			log.Warn().Err(err).Str("dest", qc.Favicon).Msg("could not store favicon")
		} else if written {
			icon = qc.Favicon
		}
	}

	renderResult(out, qc.Host, qc.Port, result, icon)
	return nil
}

// splitHostPort accepts "host", "host:port" and "[v6]:port".
func splitHostPort(arg string, defaultPort uint16) (string, uint16, error) {
	if !strings.Contains(arg, ":") || strings.Count(arg, ":") > 1 && !strings.HasPrefix(arg, "[") {
		return arg, defaultPort, nil
	}

	host, portStr, err := net.SplitHostPort(arg)
	if err != nil {
		return "", 0, err
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q: %w", portStr, err)
	}

	return host, uint16(port), nil
}
