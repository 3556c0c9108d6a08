package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/batiknft/internal/pinning"
	"github.com/dmitrijs2005/batiknft/internal/reconstruct"
)

// Pinning backends.
const (
	PinnerPinata = "pinata"
	PinnerS3     = "s3"
)

// Serial sequence sources.
const (
	SequencerLocal  = "local"
	SequencerRemote = "remote"
	SequencerTime   = "time"
)

const (
	DefaultRPCURL          = "https://ethereum-sepolia-rpc.publicnode.com"
	DefaultChainID         = 11155111
	DefaultContractAddress = "0xCdE5FE44960F36459d32A538A203119F0E40ed48"
	DefaultDataDir         = ".batiknft"
	DefaultSequenceAddr    = "127.0.0.1:50051"
	DefaultEnvFile         = ".env"
)

// Config holds runtime settings for the batiknft CLI.
type Config struct {
	RPCURL          string `env:"BATIK_RPC_URL"`
	ChainID         int64  `env:"BATIK_CHAIN_ID"`
	ContractAddress string `env:"BATIK_CONTRACT_ADDRESS"`
	PrivateKey      string `env:"BATIK_PRIVATE_KEY"`

	Pinner          string `env:"BATIK_PINNER"`
	PinataBaseURL   string `env:"BATIK_PINATA_URL"`
	PinataAPIKey    string `env:"BATIK_PINATA_API_KEY"`
	PinataAPISecret string `env:"BATIK_PINATA_API_SECRET"`
	PinataJWT       string `env:"BATIK_PINATA_JWT"`
	GatewayURL      string `env:"BATIK_GATEWAY_URL"`

	S3Endpoint  string `env:"BATIK_S3_ENDPOINT"`
	S3Region    string `env:"BATIK_S3_REGION"`
	S3Bucket    string `env:"BATIK_S3_BUCKET"`
	S3AccessKey string `env:"BATIK_S3_ACCESS_KEY"`
	S3SecretKey string `env:"BATIK_S3_SECRET_KEY"`
	S3Prefix    string `env:"BATIK_S3_PREFIX"`

	DataDir       string `env:"BATIK_DATA_DIR"`
	Sequencer     string `env:"BATIK_SEQUENCER"`
	SequenceAddr  string `env:"BATIK_SEQUENCE_ADDR"`
	SequenceToken string `env:"BATIK_SEQUENCE_TOKEN"`

	Concurrency int           `env:"BATIK_CONCURRENCY"`
	ItemTimeout time.Duration `env:"BATIK_ITEM_TIMEOUT"`

	LogFormat string `env:"BATIK_LOG_FORMAT"`
	LogLevel  string `env:"BATIK_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RPCURL = DefaultRPCURL
	c.ChainID = DefaultChainID
	c.ContractAddress = DefaultContractAddress
	c.Pinner = PinnerPinata
	c.PinataBaseURL = pinning.DefaultPinataURL
	c.GatewayURL = pinning.DefaultGatewayURL
	c.S3Region = "us-east-1"
	c.DataDir = DefaultDataDir
	c.Sequencer = SequencerLocal
	c.SequenceAddr = DefaultSequenceAddr
	c.Concurrency = reconstruct.DefaultConcurrency
	c.ItemTimeout = reconstruct.DefaultItemTimeout
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the .env file(s), the environment, the
// JSON file named in args and finally the flags in args. Missing .env files
// are ignored. With no envFiles, DefaultEnvFile is tried.
func Load(args []string, envFiles ...string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args; it panics on error.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	switch c.Pinner {
	case PinnerPinata:
	case PinnerS3:
		if c.S3Bucket == "" {
			return errors.New("s3 pinner needs a bucket")
		}
	default:
		return fmt.Errorf("unknown pinner %q", c.Pinner)
	}

	switch c.Sequencer {
	case SequencerLocal, SequencerTime:
	case SequencerRemote:
		if c.SequenceAddr == "" {
			return errors.New("remote sequencer needs an address")
		}
	default:
		return fmt.Errorf("unknown sequencer %q", c.Sequencer)
	}

	if !ethcommon.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("invalid contract address %q", c.ContractAddress)
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("invalid chain id %d", c.ChainID)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.ItemTimeout <= 0 {
		return fmt.Errorf("item timeout must be positive, got %s", c.ItemTimeout)
	}
	return nil
}

// DatabasePath is the SQLite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "batiknft.db")
}

func (c *Config) S3() pinning.S3Config {
	return pinning.S3Config{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Prefix:    c.S3Prefix,
	}
}

func (c *Config) Pinata() pinning.PinataConfig {
	return pinning.PinataConfig{
		BaseURL:   c.PinataBaseURL,
		APIKey:    c.PinataAPIKey,
		APISecret: c.PinataAPISecret,
		JWT:       c.PinataJWT,
	}
}
