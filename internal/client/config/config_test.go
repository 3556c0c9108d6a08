package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

// noEnvFile points Load at a file that does not exist.
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

// clearEnv makes sure key is unset for the test and restored afterwards.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, int64(11155111), c.ChainID)
	assert.Equal(t, "0xCdE5FE44960F36459d32A538A203119F0E40ed48", c.ContractAddress)
	assert.Equal(t, PinnerPinata, c.Pinner)
	assert.Equal(t, SequencerLocal, c.Sequencer)
	assert.Equal(t, 8, c.Concurrency)
	assert.Equal(t, 10*time.Second, c.ItemTimeout)
	assert.NoError(t, c.Validate())
}

func TestLoad_NoSourcesGivesDefaults(t *testing.T) {
	cfg, err := Load(nil, noEnvFile(t))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("BATIK_RPC_URL", "http://127.0.0.1:8545")
	t.Setenv("BATIK_CHAIN_ID", "31337")
	t.Setenv("BATIK_PINNER", "s3")
	t.Setenv("BATIK_S3_BUCKET", "batik")
	t.Setenv("BATIK_ITEM_TIMEOUT", "3s")

	cfg, err := Load(nil, noEnvFile(t))
	require.NoError(t, err)

	want := defaults()
	want.RPCURL = "http://127.0.0.1:8545"
	want.ChainID = 31337
	want.Pinner = PinnerS3
	want.S3Bucket = "batik"
	want.ItemTimeout = 3 * time.Second
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t, "BATIK_PINATA_JWT")
	t.Setenv("BATIK_DATA_DIR", "/from/env")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BATIK_PINATA_JWT=jwt-from-file\nBATIK_DATA_DIR=/from/file\n"), 0o600))

	cfg, err := Load(nil, envFile)
	require.NoError(t, err)
	assert.Equal(t, "jwt-from-file", cfg.PinataJWT)
	assert.Equal(t, "/from/env", cfg.DataDir)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("BATIK_RPC_URL", "http://env:8545")
	t.Setenv("BATIK_CONCURRENCY", "2")

	path := writeTempJSON(t, map[string]any{
		"rpc_url":      "http://json:8545",
		"concurrency":  4,
		"item_timeout": "7s",
		"sequencer":    "remote",
	})

	cfg, err := Load([]string{"-c", path, "-concurrency", "16", "-seq-addr", "issuer:7000", "stray"}, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "http://json:8545", cfg.RPCURL)
	assert.Equal(t, 16, cfg.Concurrency)
	assert.Equal(t, 7*time.Second, cfg.ItemTimeout)
	assert.Equal(t, SequencerRemote, cfg.Sequencer)
	assert.Equal(t, "issuer:7000", cfg.SequenceAddr)
}

func TestLoad_JSONEmptyFieldsKeepValues(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"log_level": "debug"})

	cfg, err := Load([]string{"-config", path}, noEnvFile(t))
	require.NoError(t, err)

	want := defaults()
	want.LogLevel = "debug"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_Errors(t *testing.T) {
	badJSON := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{"), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"missing json", []string{"-c", filepath.Join(t.TempDir(), "nope.json")}},
		{"broken json", []string{"-c", badJSON}},
		{"bad duration flag", []string{"-timeout", "soon"}},
		{"unknown pinner", []string{"-pinner", "ftp"}},
		{"s3 without bucket", []string{"-pinner", "s3"}},
		{"unknown sequencer", []string{"-sequencer", "dice"}},
		{"bad contract", []string{"-contract", "0x123"}},
		{"zero concurrency", []string{"-concurrency", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, noEnvFile(t))
			require.Error(t, err)
		})
	}
}

func TestHelpers(t *testing.T) {
	c := defaults()
	c.DataDir = "/tmp/batik"
	c.S3Bucket = "b"
	c.PinataJWT = "j"

	assert.Equal(t, filepath.Join("/tmp/batik", "batiknft.db"), c.DatabasePath())
	assert.Equal(t, "b", c.S3().Bucket)
	assert.Equal(t, "j", c.Pinata().JWT)
}
