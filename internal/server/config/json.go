package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/batiknft/internal/flagx"
	"github.com/dmitrijs2005/batiknft/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration file.
// Durations accept both "720h" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	TokenValidity    timex.Duration `json:"token_validity"`
	LogFormat        string         `json:"log_format"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config in args.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.EndpointAddrGRPC != "" {
		cfg.EndpointAddrGRPC = jc.EndpointAddrGRPC
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidity.Duration > 0 {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
