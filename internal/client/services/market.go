package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/dmitrijs2005/batiknft/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/filex"
	"github.com/dmitrijs2005/batiknft/internal/ledger"
	"github.com/dmitrijs2005/batiknft/internal/logging"
	meta "github.com/dmitrijs2005/batiknft/internal/metadata"
	"github.com/dmitrijs2005/batiknft/internal/pinning"
	"github.com/dmitrijs2005/batiknft/internal/price"
	"github.com/dmitrijs2005/batiknft/internal/reconstruct"
	"github.com/dmitrijs2005/batiknft/internal/serial"
	"github.com/dmitrijs2005/batiknft/internal/session"
	"github.com/dmitrijs2005/batiknft/internal/wallet"
)

type MarketService interface {
	ConnectWallet(ctx context.Context) (ethcommon.Address, error)
	CurrentAccount(ctx context.Context) (ethcommon.Address, error)

	UploadImage(ctx context.Context, path string) (string, error)
	NewCertificate(ctx context.Context) (CertificateDraft, error)
	ListingFee(ctx context.Context) (string, error)

	CreateNFT(ctx context.Context, in CreateInput) (*CreateResult, error)
	Resell(ctx context.Context, tokenID *big.Int, amount string) (*ledger.Receipt, error)
	Buy(ctx context.Context, rec reconstruct.ListingRecord) (*ledger.Receipt, error)
	Cancel(ctx context.Context, tokenID *big.Int) (*ledger.Receipt, error)

	FetchAll(ctx context.Context) ([]reconstruct.Result, error)
	FetchMine(ctx context.Context) ([]reconstruct.Result, error)
	FetchListed(ctx context.Context) ([]reconstruct.Result, error)
	Details(ctx context.Context, tokenID *big.Int) (*DetailView, error)
}

// Retrieval maps content ids to gateway URLs and loads pinned metadata.
type Retrieval interface {
	reconstruct.MetadataSource
	URL(cid string) string
}

// Deps are the collaborators of the marketplace service. Settings may be
// nil; Logger and Now default to no-op logging and time.Now.
type Deps struct {
	Wallet    wallet.Provider
	Ledger    ledger.Gateway
	Pinner    pinning.Pinner
	Retrieval Retrieval
	Sequencer serial.Sequencer
	Session   *session.Session
	Settings  metadata.Repository
	Logger    logging.Logger
	Options   reconstruct.Options
	Now       func() time.Time
}

// CertificateDraft is a freshly issued serial number and its barcode.
type CertificateDraft struct {
	SerialNumber string
	Barcode      string
}

// CreateInput is what the creator fills in. Serial number and barcode are
// issued automatically when left empty. Price is required only when
// ListForSale is set.
type CreateInput struct {
	Name         string
	Description  string
	Price        string
	ImageURI     string
	SerialNumber string
	Barcode      string
	Origin       string
	PatternType  string
	ListForSale  bool
}

type CreateResult struct {
	TokenURI string
	Document meta.Document
	Receipt  *ledger.Receipt
}

type marketService struct {
	wallet    wallet.Provider
	ledger    ledger.Gateway
	pinner    pinning.Pinner
	retrieval Retrieval
	sequencer serial.Sequencer
	session   *session.Session
	settings  metadata.Repository
	logger    logging.Logger
	opts      reconstruct.Options
	now       func() time.Time
}

func NewMarketService(d Deps) MarketService {
	s := &marketService{
		wallet:    d.Wallet,
		ledger:    d.Ledger,
		pinner:    d.Pinner,
		retrieval: d.Retrieval,
		sequencer: d.Sequencer,
		session:   d.Session,
		settings:  d.Settings,
		logger:    d.Logger,
		opts:      d.Options,
		now:       d.Now,
	}
	if s.wallet == nil {
		s.wallet = wallet.None{}
	}
	if s.session == nil {
		s.session = session.New()
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.logger = s.logger.With("module", "market")
	return s
}

// ConnectWallet asks the provider for access and makes the first granted
// account active.
func (s *marketService) ConnectWallet(ctx context.Context) (ethcommon.Address, error) {
	accounts, err := s.wallet.RequestAccounts(ctx)
	if err != nil {
		return ethcommon.Address{}, fmt.Errorf("connect wallet: %w", err)
	}
	if len(accounts) == 0 {
		return ethcommon.Address{}, fmt.Errorf("connect wallet: %w", common.ErrWalletUnavailable)
	}

	account := s.preferred(ctx, accounts)
	s.activate(ctx, account)
	return account, nil
}

// CurrentAccount returns the active account without prompting. The zero
// address means no wallet is connected.
func (s *marketService) CurrentAccount(ctx context.Context) (ethcommon.Address, error) {
	if s.session.Connected() {
		return s.session.Account(), nil
	}

	accounts, err := s.wallet.Accounts(ctx)
	if err != nil {
		return ethcommon.Address{}, fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts) == 0 {
		return ethcommon.Address{}, nil
	}

	account := s.preferred(ctx, accounts)
	s.activate(ctx, account)
	return account, nil
}

// preferred picks the last used account when the provider still offers it.
func (s *marketService) preferred(ctx context.Context, accounts []ethcommon.Address) ethcommon.Address {
	if s.settings != nil {
		last, err := s.settings.Get(ctx, metadata.KeyAccount)
		if err != nil {
			s.logger.Warn(ctx, "read last account", "error", err)
		}
		if len(last) > 0 {
			want := ethcommon.HexToAddress(string(last))
			for _, a := range accounts {
				if a == want {
					return a
				}
			}
		}
	}
	return accounts[0]
}

func (s *marketService) activate(ctx context.Context, account ethcommon.Address) {
	s.session.SetAccount(account)
	if s.settings == nil {
		return
	}
	if err := s.settings.Set(ctx, metadata.KeyAccount, []byte(account.Hex())); err != nil {
		s.logger.Warn(ctx, "remember account", "error", err)
	}
}

func (s *marketService) signer(ctx context.Context) (ledger.Signer, error) {
	if !s.session.Connected() {
		if _, err := s.CurrentAccount(ctx); err != nil {
			return nil, err
		}
	}
	if !s.session.Connected() {
		return nil, fmt.Errorf("%w: connect a wallet first", common.ErrWalletUnavailable)
	}
	return s.wallet.Signer(ctx, s.session.Account())
}

func (s *marketService) account(ctx context.Context) (ethcommon.Address, error) {
	account, err := s.CurrentAccount(ctx)
	if err != nil {
		return ethcommon.Address{}, err
	}
	if account == (ethcommon.Address{}) {
		return ethcommon.Address{}, fmt.Errorf("%w: connect a wallet first", common.ErrWalletUnavailable)
	}
	return account, nil
}

// UploadImage pins the image at path and returns its gateway URL.
func (s *marketService) UploadImage(ctx context.Context, path string) (string, error) {
	img, err := filex.ReadImage(path, filex.MaxImageSize)
	if err != nil {
		return "", err
	}

	cid, err := s.pinner.PinFile(ctx, img.Name, bytes.NewReader(img.Data))
	if err != nil {
		return "", err
	}

	url := s.retrieval.URL(cid)
	s.logger.Info(ctx, "image pinned", "cid", cid, "size", len(img.Data), "content_type", img.ContentType)
	return url, nil
}

func (s *marketService) NewCertificate(ctx context.Context) (CertificateDraft, error) {
	sn, err := serial.Generate(ctx, s.sequencer, s.now())
	if err != nil {
		return CertificateDraft{}, fmt.Errorf("issue serial: %w", err)
	}
	return CertificateDraft{SerialNumber: sn, Barcode: serial.Barcode(sn)}, nil
}

func (s *marketService) ListingFee(ctx context.Context) (string, error) {
	fee, err := s.ledger.ListingFee(ctx)
	if err != nil {
		return "", err
	}
	return price.ToDisplay(fee), nil
}

// CreateNFT validates the input, pins the metadata document and submits
// either a listing or a plain mint, waiting until it is mined.
func (s *marketService) CreateNFT(ctx context.Context, in CreateInput) (*CreateResult, error) {
	var wei *big.Int
	if in.ListForSale {
		v, err := positivePrice(in.Price)
		if err != nil {
			return nil, err
		}
		wei = v
	}

	if in.SerialNumber == "" {
		draft, err := s.NewCertificate(ctx)
		if err != nil {
			return nil, err
		}
		in.SerialNumber = draft.SerialNumber
		if in.Barcode == "" {
			in.Barcode = draft.Barcode
		}
	} else if !serial.Validate(in.SerialNumber) {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidSerial, in.SerialNumber)
	}
	if in.Barcode == "" {
		in.Barcode = serial.Barcode(in.SerialNumber)
	}

	doc, err := meta.Build(meta.Input{
		Name:         in.Name,
		Description:  in.Description,
		ImageURI:     in.ImageURI,
		SerialNumber: in.SerialNumber,
		Barcode:      in.Barcode,
		Origin:       in.Origin,
		PatternType:  in.PatternType,
	}, s.now())
	if err != nil {
		return nil, err
	}

	signer, err := s.signer(ctx)
	if err != nil {
		return nil, err
	}

	cid, err := s.pinner.PinJSON(ctx, in.Name, doc)
	if err != nil {
		return nil, err
	}
	uri := s.retrieval.URL(cid)

	receipt, err := s.session.Track(ctx, func(ctx context.Context) (*ledger.PendingTx, error) {
		if in.ListForSale {
			return s.ledger.SubmitListing(ctx, signer, uri, wei, nil)
		}
		return s.ledger.MintWithoutListing(ctx, signer, uri)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "token created", "tx", receipt.Hash.Hex(), "token_id", receipt.TokenID, "listed", in.ListForSale, "serial", in.SerialNumber)
	return &CreateResult{TokenURI: uri, Document: doc, Receipt: receipt}, nil
}

func (s *marketService) Resell(ctx context.Context, tokenID *big.Int, amount string) (*ledger.Receipt, error) {
	wei, err := positivePrice(amount)
	if err != nil {
		return nil, err
	}
	signer, err := s.signer(ctx)
	if err != nil {
		return nil, err
	}

	return s.track(ctx, "resell", tokenID, func(ctx context.Context) (*ledger.PendingTx, error) {
		return s.ledger.SubmitListing(ctx, signer, "", wei, tokenID)
	})
}

// Buy pays the listed price of rec; the ledger rejects any mismatch.
func (s *marketService) Buy(ctx context.Context, rec reconstruct.ListingRecord) (*ledger.Receipt, error) {
	wei, err := price.ToBaseUnits(rec.Price)
	if err != nil {
		return nil, err
	}
	signer, err := s.signer(ctx)
	if err != nil {
		return nil, err
	}

	return s.track(ctx, "buy", rec.TokenID, func(ctx context.Context) (*ledger.PendingTx, error) {
		return s.ledger.Purchase(ctx, signer, rec.TokenID, wei)
	})
}

func (s *marketService) Cancel(ctx context.Context, tokenID *big.Int) (*ledger.Receipt, error) {
	signer, err := s.signer(ctx)
	if err != nil {
		return nil, err
	}

	return s.track(ctx, "cancel", tokenID, func(ctx context.Context) (*ledger.PendingTx, error) {
		return s.ledger.CancelListing(ctx, signer, tokenID)
	})
}

func (s *marketService) track(ctx context.Context, op string, tokenID *big.Int, submit func(ctx context.Context) (*ledger.PendingTx, error)) (*ledger.Receipt, error) {
	receipt, err := s.session.Track(ctx, submit)
	if err != nil {
		s.logger.Warn(ctx, op+" failed", "token_id", tokenID, "error", err)
		return nil, err
	}
	s.logger.Info(ctx, op+" confirmed", "token_id", tokenID, "tx", receipt.Hash.Hex(), "block", receipt.BlockNumber)
	return receipt, nil
}

func (s *marketService) FetchAll(ctx context.Context) ([]reconstruct.Result, error) {
	raws, err := s.ledger.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, raws), nil
}

func (s *marketService) FetchMine(ctx context.Context) ([]reconstruct.Result, error) {
	account, err := s.account(ctx)
	if err != nil {
		return nil, err
	}
	raws, err := s.ledger.FetchMine(ctx, account)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, raws), nil
}

func (s *marketService) FetchListed(ctx context.Context) ([]reconstruct.Result, error) {
	account, err := s.account(ctx)
	if err != nil {
		return nil, err
	}
	raws, err := s.ledger.FetchListed(ctx, account)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, raws), nil
}

func (s *marketService) resolve(ctx context.Context, raws []ledger.RawRecord) []reconstruct.Result {
	results := reconstruct.Batch(ctx, raws, s.resolver(), s.opts)
	for _, f := range reconstruct.Failures(results) {
		s.logger.Warn(ctx, "listing skipped", "token_id", f.Raw.TokenID, "error", f.Err)
	}
	return results
}

func (s *marketService) resolver() reconstruct.Resolver {
	return reconstruct.Resolver{Ledger: s.ledger, Metadata: s.retrieval}
}

func positivePrice(amount string) (*big.Int, error) {
	wei, err := price.ToBaseUnits(amount)
	if err != nil {
		return nil, err
	}
	if wei.Sign() <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than zero", common.ErrInvalidPrice)
	}
	return wei, nil
}

// IsUserError reports whether err is caused by input the user can fix.
func IsUserError(err error) bool {
	for _, target := range []error{
		common.ErrInvalidPrice,
		common.ErrIncompleteMetadata,
		common.ErrInvalidSerial,
		common.ErrUploadRejected,
		common.ErrWalletUnavailable,
		common.ErrWalletLocked,
		session.ErrBusy,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
