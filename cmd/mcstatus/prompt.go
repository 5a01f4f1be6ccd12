package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter asks for query parameters that weren't given on the command line.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}

	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// askQuery fills host, port and protocol version, offering cfg values as defaults.
func (p *prompter) askQuery(cfg *QueryConfig) error {
	host, err := p.ask("Host", cfg.Host)
	if err != nil {
		return err
	}
	if host == "" {
		return fmt.Errorf("host is required")
	}

	portStr, err := p.ask("Port", strconv.Itoa(int(cfg.Port)))
	if err != nil {
		return err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", portStr, err)
	}

	versionStr, err := p.ask("Protocol version", strconv.FormatUint(cfg.ProtocolVersion, 10))
	if err != nil {
		return err
	}
	version, err := strconv.ParseUint(versionStr, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid protocol version %q: %w", versionStr, err)
	}

	cfg.Host, cfg.Port, cfg.ProtocolVersion = host, uint16(port), version
	return nil
}
