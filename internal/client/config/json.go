package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/batiknft/internal/flagx"
	"github.com/dmitrijs2005/batiknft/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty
// fields leave the current value untouched.
type JsonConfig struct {
	RPCURL          string `json:"rpc_url"`
	ChainID         int64  `json:"chain_id"`
	ContractAddress string `json:"contract_address"`
	PrivateKey      string `json:"private_key"`

	Pinner          string `json:"pinner"`
	PinataBaseURL   string `json:"pinata_url"`
	PinataAPIKey    string `json:"pinata_api_key"`
	PinataAPISecret string `json:"pinata_api_secret"`
	PinataJWT       string `json:"pinata_jwt"`
	GatewayURL      string `json:"gateway_url"`

	S3Endpoint  string `json:"s3_endpoint"`
	S3Region    string `json:"s3_region"`
	S3Bucket    string `json:"s3_bucket"`
	S3AccessKey string `json:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key"`
	S3Prefix    string `json:"s3_prefix"`

	DataDir       string `json:"data_dir"`
	Sequencer     string `json:"sequencer"`
	SequenceAddr  string `json:"sequence_addr"`
	SequenceToken string `json:"sequence_token"`

	Concurrency int            `json:"concurrency"`
	ItemTimeout timex.Duration `json:"item_timeout"`

	LogFormat string `json:"log_format"`
	LogLevel  string `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without such a flag it does nothing.
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

	setString(&cfg.RPCURL, jc.RPCURL)
	if jc.ChainID != 0 {
		cfg.ChainID = jc.ChainID
	}
	setString(&cfg.ContractAddress, jc.ContractAddress)
	setString(&cfg.PrivateKey, jc.PrivateKey)

	setString(&cfg.Pinner, jc.Pinner)
	setString(&cfg.PinataBaseURL, jc.PinataBaseURL)
	setString(&cfg.PinataAPIKey, jc.PinataAPIKey)
	setString(&cfg.PinataAPISecret, jc.PinataAPISecret)
	setString(&cfg.PinataJWT, jc.PinataJWT)
	setString(&cfg.GatewayURL, jc.GatewayURL)

	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Prefix, jc.S3Prefix)

	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.Sequencer, jc.Sequencer)
	setString(&cfg.SequenceAddr, jc.SequenceAddr)
	setString(&cfg.SequenceToken, jc.SequenceToken)

	if jc.Concurrency != 0 {
		cfg.Concurrency = jc.Concurrency
	}
	if jc.ItemTimeout.Duration != 0 {
		cfg.ItemTimeout = jc.ItemTimeout.Duration
	}

	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
