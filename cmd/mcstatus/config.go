package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/gardenstoney/mcstatus/protocol/client"
)

type (
	Config struct {
		LogLevel string       `yaml:"log_level" toml:"log_level"`
		Query    QueryConfig  `yaml:"query" toml:"query"`
		Server   ServerConfig `yaml:"server" toml:"server"`
	}

	QueryConfig struct {
		Host            string        `yaml:"host" toml:"host"`
		Port            uint16        `yaml:"port" toml:"port"`
		ProtocolVersion uint64        `yaml:"protocol_version" toml:"protocol_version"`
		Timeout         time.Duration `yaml:"timeout" toml:"timeout"`
		// InstanceID resolves Host from an EC2 instance's public address.
		InstanceID string `yaml:"instance_id" toml:"instance_id"`
		Region     string `yaml:"region" toml:"region"`
		// Favicon is a file path or s3://bucket/key. "-" skips writing it.
		Favicon string `yaml:"favicon" toml:"favicon"`
	}

	ServerConfig struct {
		Listen      string `yaml:"listen" toml:"listen"`
		MOTD        string `yaml:"motd" toml:"motd"`
		MaxPlayers  int    `yaml:"max_players" toml:"max_players"`
		VersionName string `yaml:"version_name" toml:"version_name"`
		Protocol    int    `yaml:"protocol" toml:"protocol"`
		Favicon     string `yaml:"favicon" toml:"favicon"`
	}
)

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Query: QueryConfig{
			Port:            client.DefaultPort,
			ProtocolVersion: client.DefaultProtocolVersion,
			Timeout:         client.DefaultTimeout,
			Favicon:         "favicon.png",
		},
		Server: ServerConfig{
			Listen:      ":25565",
			MOTD:        "A Minecraft Server",
			MaxPlayers:  20,
			VersionName: "mcstatus",
			Protocol:    client.DefaultProtocolVersion,
		},
	}
}

// LoadConfig reads path (YAML or TOML, by extension) over the defaults and
// applies environment overrides. An empty path only applies the overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		case ".toml":
			if _, err := toml.NewDecoder(file).Decode(cfg); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		default:
			return nil, fmt.Errorf("unsupported config format %q", ext)
		}
	}

	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ApplyEnvOverrides(cfg *Config) error {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	if v := os.Getenv("MCSTATUS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("MCSTATUS_HOST"); v != "" {
		cfg.Query.Host = v
	}

	if v := os.Getenv("MCSTATUS_PORT"); v != "" {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return fmt.Errorf("MCSTATUS_PORT: %w", err)
		}
		cfg.Query.Port = uint16(port)
	}

	if v := os.Getenv("MCSTATUS_PROTOCOL"); v != "" {
		version, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MCSTATUS_PROTOCOL: %w", err)
		}
		cfg.Query.ProtocolVersion = version
	}

	if v := os.Getenv("MCSTATUS_INSTANCE_ID"); v != "" {
		cfg.Query.InstanceID = v
	}

	if v := os.Getenv("MCSTATUS_MOTD"); v != "" {
		cfg.Server.MOTD = v
	}

	return nil
}
