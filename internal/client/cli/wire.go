package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/dmitrijs2005/batiknft/internal/client/client"
	"github.com/dmitrijs2005/batiknft/internal/client/config"
	"github.com/dmitrijs2005/batiknft/internal/client/services"
	"github.com/dmitrijs2005/batiknft/internal/filex"
	"github.com/dmitrijs2005/batiknft/internal/ledger"
	"github.com/dmitrijs2005/batiknft/internal/logging"
	"github.com/dmitrijs2005/batiknft/internal/pinning"
	"github.com/dmitrijs2005/batiknft/internal/reconstruct"
	"github.com/dmitrijs2005/batiknft/internal/serial"
	"github.com/dmitrijs2005/batiknft/internal/session"
	"github.com/dmitrijs2005/batiknft/internal/wallet"
)

const httpTimeout = 60 * time.Second

// NewApp builds the client from cfg: local store, wallet, pinning backend,
// retrieval gateway, ledger connection and sequencer. The returned App owns
// every resource and releases them when Run returns.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	var closers []func() error
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	fail := func(err error) (*App, error) {
		_ = closeAll()
		return nil, err
	}

	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	repos, err := client.InitDatabase(ctx, filepath.Join(dataDir, filepath.Base(cfg.DatabasePath())))
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	closers = append(closers, repos.Close)

	httpClient := &http.Client{Timeout: httpTimeout}

	pinner, err := buildPinner(ctx, cfg, httpClient)
	if err != nil {
		return fail(err)
	}

	seq, closeSeq, err := buildSequencer(cfg, repos)
	if err != nil {
		return fail(err)
	}
	if closeSeq != nil {
		closers = append(closers, closeSeq)
	}

	eth, err := ledger.Dial(ctx, cfg.RPCURL, cfg.ChainID)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, func() error { eth.Close(); return nil })

	sess := session.New()
	sess.Observe(func(state session.State, tx ethcommon.Hash) {
		if tx == (ethcommon.Hash{}) {
			logger.Debug(ctx, "transaction state", "state", state.String())
			return
		}
		logger.Debug(ctx, "transaction state", "state", state.String(), "tx", tx.Hex())
	})

	app := newApp(nil, nil, sess, logger, in, out)

	var provider wallet.Provider
	if cfg.PrivateKey != "" {
		kp, err := wallet.NewKeyProvider(cfg.PrivateKey, cfg.ChainID)
		if err != nil {
			return fail(err)
		}
		provider = kp
	} else {
		vault := wallet.NewVault(repos.Keys, cfg.ChainID, app.promptPassphrase)
		provider = vault
		app.vault = vault
	}

	app.market = services.NewMarketService(services.Deps{
		Wallet:    provider,
		Ledger:    ledger.NewEthGateway(eth, ethcommon.HexToAddress(cfg.ContractAddress), logger.With("module", "ledger")),
		Pinner:    pinner,
		Retrieval: pinning.NewGateway(cfg.GatewayURL, httpClient),
		Sequencer: seq,
		Session:   sess,
		Settings:  repos.Metadata,
		Logger:    logger,
		Options:   reconstruct.Options{Concurrency: cfg.Concurrency, ItemTimeout: cfg.ItemTimeout},
	})
	app.closer = closeAll

	logger.Info(ctx, "client ready",
		"rpc", cfg.RPCURL,
		"chain_id", cfg.ChainID,
		"contract", cfg.ContractAddress,
		"pinner", cfg.Pinner,
		"sequencer", cfg.Sequencer,
		"data_dir", dataDir,
	)
	return app, nil
}

func (a *App) promptPassphrase(_ context.Context, account ethcommon.Address) ([]byte, error) {
	return GetSecret("Passphrase for "+account.Hex(), a.out)
}

func buildPinner(ctx context.Context, cfg *config.Config, httpClient *http.Client) (pinning.Pinner, error) {
	switch cfg.Pinner {
	case config.PinnerS3:
		api, err := pinning.NewS3Client(ctx, cfg.S3())
		if err != nil {
			return nil, err
		}
		return pinning.NewS3Pinner(api, cfg.S3Bucket, cfg.S3Prefix), nil
	case config.PinnerPinata:
		return pinning.NewPinataClient(cfg.Pinata(), httpClient), nil
	default:
		return nil, fmt.Errorf("unknown pinner %q", cfg.Pinner)
	}
}

// buildSequencer returns the configured serial source and, for the remote
// issuer, a function closing its connection.
func buildSequencer(cfg *config.Config, repos *client.Repositories) (serial.Sequencer, func() error, error) {
	switch cfg.Sequencer {
	case config.SequencerLocal:
		return repos.Sequence, nil, nil
	case config.SequencerTime:
		return serial.TimeSequencer{}, nil, nil
	case config.SequencerRemote:
		c, err := client.NewSequenceClient(cfg.SequenceAddr, cfg.SequenceToken)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown sequencer %q", cfg.Sequencer)
	}
}
