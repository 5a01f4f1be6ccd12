package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "mcstatus.yaml", `
log_level: debug
query:
  host: mc.example.org
  port: 25566
  protocol_version: 754
  timeout: 2s
  favicon: s3://icons/example.png
server:
  motd: hello
  max_players: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "mc.example.org", cfg.Query.Host)
	require.Equal(t, uint16(25566), cfg.Query.Port)
	require.Equal(t, uint64(754), cfg.Query.ProtocolVersion)
	require.Equal(t, 2*time.Second, cfg.Query.Timeout)
	require.Equal(t, "s3://icons/example.png", cfg.Query.Favicon)
	require.Equal(t, "hello", cfg.Server.MOTD)
	require.Equal(t, 5, cfg.Server.MaxPlayers)
	require.Equal(t, ":25565", cfg.Server.Listen)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "mcstatus.toml", `
[query]
host = "play.example.net"
instance_id = "i-0123456789abcdef0"
region = "eu-west-1"

[server]
listen = "127.0.0.1:25570"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "play.example.net", cfg.Query.Host)
	require.Equal(t, "i-0123456789abcdef0", cfg.Query.InstanceID)
	require.Equal(t, "eu-west-1", cfg.Query.Region)
	require.Equal(t, uint16(25565), cfg.Query.Port)
	require.Equal(t, "127.0.0.1:25570", cfg.Server.Listen)
}

func TestLoadConfigUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "mcstatus.json", `{}`)

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("MCSTATUS_HOST", "env.example.org")
	t.Setenv("MCSTATUS_PORT", "19132")
	t.Setenv("MCSTATUS_PROTOCOL", "47")
	t.Setenv("MCSTATUS_MOTD", "from env")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "env.example.org", cfg.Query.Host)
	require.Equal(t, uint16(19132), cfg.Query.Port)
	require.Equal(t, uint64(47), cfg.Query.ProtocolVersion)
	require.Equal(t, "from env", cfg.Server.MOTD)
}

func TestApplyEnvOverridesInvalidPort(t *testing.T) {
	t.Setenv("MCSTATUS_PORT", "70000")

	_, err := LoadConfig("")
	require.Error(t, err)
}
