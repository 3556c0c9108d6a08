// Package config loads runtime configuration for the batiknft CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional .env file (joho/godotenv); it never overrides variables
//     already present in the environment.
//  3. Environment variables prefixed BATIK_ (caarlos0/env struct tags).
//  4. Optional JSON file selected via -c or -config.
//  5. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-rpc string          Ethereum JSON-RPC endpoint
//	-chain int           expected chain id
//	-contract string     marketplace contract address
//	-pinner string       pinning backend: pinata or s3
//	-gateway string      IPFS retrieval gateway
//	-data string         directory of the local SQLite store
//	-sequencer string    serial source: local, remote or time
//	-seq-addr string     sequence issuer gRPC address
//	-concurrency int     metadata fetch concurrency
//	-timeout duration    per-listing metadata timeout
//	-log-format string   text, json or zap
//	-log-level string    debug, info, warn or error
//
// Secrets (private key, Pinata credentials, S3 keys, issuer token) are read
// from the environment or the JSON file only.
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "rpc_url": "http://127.0.0.1:8545",
//	  "chain_id": 31337,
//	  "pinner": "s3",
//	  "item_timeout": "5s"
//	}
package config
