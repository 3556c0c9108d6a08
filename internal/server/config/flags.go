package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/batiknft/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string        gRPC bind address (e.g. ":50051")
//	-d string        PostgreSQL DSN
//	-s string        JWT HMAC secret
//	-t duration      validity of issued tokens
//	-issue string    print a token for the operator and exit
//	-log-format      text|json|zap
//	-log-level       debug|info|warn|error
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-issue", "-log-format", "-log-level"})

	fs := flag.NewFlagSet("batiknft-seq", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrGRPC, "a", cfg.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.TokenValidity, "t", cfg.TokenValidity, "issued token validity")
	fs.StringVar(&cfg.IssueFor, "issue", cfg.IssueFor, "print an access token for the operator and exit")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
