package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/batiknft/internal/flagx"
)

var knownFlags = []string{
	"-rpc", "-chain", "-contract", "-pinner", "-gateway", "-data",
	"-sequencer", "-seq-addr", "-concurrency", "-timeout",
	"-log-format", "-log-level",
}

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed in knownFlags are considered.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("batiknft", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.RPCURL, "rpc", cfg.RPCURL, "Ethereum JSON-RPC endpoint")
	fs.Int64Var(&cfg.ChainID, "chain", cfg.ChainID, "expected chain id")
	fs.StringVar(&cfg.ContractAddress, "contract", cfg.ContractAddress, "marketplace contract address")
	fs.StringVar(&cfg.Pinner, "pinner", cfg.Pinner, "pinning backend (pinata|s3)")
	fs.StringVar(&cfg.GatewayURL, "gateway", cfg.GatewayURL, "IPFS retrieval gateway")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "local data directory")
	fs.StringVar(&cfg.Sequencer, "sequencer", cfg.Sequencer, "serial source (local|remote|time)")
	fs.StringVar(&cfg.SequenceAddr, "seq-addr", cfg.SequenceAddr, "sequence issuer address")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "metadata fetch concurrency")
	fs.DurationVar(&cfg.ItemTimeout, "timeout", cfg.ItemTimeout, "per-listing metadata timeout")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text|json|zap)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
