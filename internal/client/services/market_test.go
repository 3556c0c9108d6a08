package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/batiknft/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/ledger"
	meta "github.com/dmitrijs2005/batiknft/internal/metadata"
	"github.com/dmitrijs2005/batiknft/internal/reconstruct"
	"github.com/dmitrijs2005/batiknft/internal/session"
)

var (
	alice = ethcommon.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob   = ethcommon.HexToAddress("0x00000000000000000000000000000000000000b0")
	mkt   = ethcommon.HexToAddress("0xCdE5FE44960F36459d32A538A203119F0E40ed48")

	fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
)

/*************
 * Fakes
 *************/

type fakeSigner struct{ account ethcommon.Address }

func (s fakeSigner) Account() ethcommon.Address { return s.account }
func (s fakeSigner) TransactOpts(context.Context) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: s.account}, nil
}

type fakeWallet struct {
	granted   []ethcommon.Address
	silent    []ethcommon.Address
	reqErr    error
	signerErr error
}

func (w *fakeWallet) Accounts(context.Context) ([]ethcommon.Address, error) { return w.silent, nil }
func (w *fakeWallet) RequestAccounts(context.Context) ([]ethcommon.Address, error) {
	if w.reqErr != nil {
		return nil, w.reqErr
	}
	w.silent = w.granted
	return w.granted, nil
}
func (w *fakeWallet) Signer(_ context.Context, a ethcommon.Address) (ledger.Signer, error) {
	if w.signerErr != nil {
		return nil, w.signerErr
	}
	return fakeSigner{account: a}, nil
}

type call struct {
	Kind    ledger.TxKind
	From    ethcommon.Address
	URI     string
	Price   *big.Int
	TokenID *big.Int
}

type fakeLedger struct {
	mu    sync.Mutex
	calls []call

	fee    *big.Int
	all    []ledger.RawRecord
	mine   []ledger.RawRecord
	listed []ledger.RawRecord
	uris   map[string]string

	submitErr error
	status    uint64
}

func (l *fakeLedger) pending(c call) (*ledger.PendingTx, error) {
	l.mu.Lock()
	l.calls = append(l.calls, c)
	l.mu.Unlock()
	if l.submitErr != nil {
		return nil, l.submitErr
	}
	hash := ethcommon.BytesToHash([]byte{byte(len(l.calls))})
	status := l.status
	return ledger.NewPendingTx(hash, c.Kind, func(context.Context) (*types.Receipt, error) {
		return &types.Receipt{Status: status, TxHash: hash, BlockNumber: big.NewInt(7)}, nil
	}), nil
}

func (l *fakeLedger) ListingFee(context.Context) (*big.Int, error) { return l.fee, nil }
func (l *fakeLedger) SubmitListing(_ context.Context, s ledger.Signer, uri string, price, resale *big.Int) (*ledger.PendingTx, error) {
	kind := ledger.KindCreate
	if resale != nil {
		kind = ledger.KindResell
	}
	return l.pending(call{Kind: kind, From: s.Account(), URI: uri, Price: price, TokenID: resale})
}
func (l *fakeLedger) MintWithoutListing(_ context.Context, s ledger.Signer, uri string) (*ledger.PendingTx, error) {
	return l.pending(call{Kind: ledger.KindMint, From: s.Account(), URI: uri})
}
func (l *fakeLedger) Purchase(_ context.Context, s ledger.Signer, id, price *big.Int) (*ledger.PendingTx, error) {
	return l.pending(call{Kind: ledger.KindPurchase, From: s.Account(), Price: price, TokenID: id})
}
func (l *fakeLedger) CancelListing(_ context.Context, s ledger.Signer, id *big.Int) (*ledger.PendingTx, error) {
	return l.pending(call{Kind: ledger.KindCancel, From: s.Account(), TokenID: id})
}
func (l *fakeLedger) FetchAll(context.Context) ([]ledger.RawRecord, error) { return l.all, nil }
func (l *fakeLedger) FetchMine(_ context.Context, _ ethcommon.Address) ([]ledger.RawRecord, error) {
	return l.mine, nil
}
func (l *fakeLedger) FetchListed(_ context.Context, _ ethcommon.Address) ([]ledger.RawRecord, error) {
	return l.listed, nil
}
func (l *fakeLedger) TokenURI(_ context.Context, id *big.Int) (string, error) {
	uri, ok := l.uris[id.String()]
	if !ok {
		return "", errors.New("nonexistent token")
	}
	return uri, nil
}

type fakePinner struct {
	files map[string][]byte
	docs  map[string]any
	err   error
}

func (p *fakePinner) PinFile(_ context.Context, name string, r io.Reader) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	b, _ := io.ReadAll(r)
	if p.files == nil {
		p.files = map[string][]byte{}
	}
	p.files[name] = b
	return "QmImage", nil
}

func (p *fakePinner) PinJSON(_ context.Context, name string, v any) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if p.docs == nil {
		p.docs = map[string]any{}
	}
	p.docs[name] = v
	return "QmDoc", nil
}

type fakeRetrieval struct {
	docs map[string]meta.Document
}

func (r *fakeRetrieval) URL(cid string) string { return "https://gw.test/ipfs/" + cid }
func (r *fakeRetrieval) Resolve(uri string) string {
	return strings.Replace(uri, "ipfs://", "https://gw.test/ipfs/", 1)
}
func (r *fakeRetrieval) FetchMetadata(_ context.Context, uri string) (meta.Document, error) {
	d, ok := r.docs[uri]
	if !ok {
		return meta.Document{}, common.ErrMetadataUnavailable
	}
	return d, nil
}

type fixedSequencer struct {
	next  int64
	scope string
	err   error
}

func (s *fixedSequencer) Next(_ context.Context, scope string) (int64, error) {
	s.scope = scope
	return s.next, s.err
}

type memSettings struct {
	m map[string][]byte
}

func (s *memSettings) Get(_ context.Context, k string) ([]byte, error) { return s.m[k], nil }
func (s *memSettings) Set(_ context.Context, k string, v []byte) error {
	if s.m == nil {
		s.m = map[string][]byte{}
	}
	s.m[k] = v
	return nil
}
func (s *memSettings) Delete(_ context.Context, k string) error { delete(s.m, k); return nil }
func (s *memSettings) List(context.Context) (map[string][]byte, error) {
	return s.m, nil
}

var _ metadata.Repository = (*memSettings)(nil)

type fixture struct {
	svc      MarketService
	wallet   *fakeWallet
	ledger   *fakeLedger
	pinner   *fakePinner
	docs     *fakeRetrieval
	seq      *fixedSequencer
	session  *session.Session
	settings *memSettings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		wallet:   &fakeWallet{granted: []ethcommon.Address{alice}},
		ledger:   &fakeLedger{fee: big.NewInt(25_000_000_000_000_000), uris: map[string]string{}, status: types.ReceiptStatusSuccessful},
		pinner:   &fakePinner{},
		docs:     &fakeRetrieval{docs: map[string]meta.Document{}},
		seq:      &fixedSequencer{next: 1},
		session:  session.New(),
		settings: &memSettings{},
	}
	f.svc = NewMarketService(Deps{
		Wallet:    f.wallet,
		Ledger:    f.ledger,
		Pinner:    f.pinner,
		Retrieval: f.docs,
		Sequencer: f.seq,
		Session:   f.session,
		Settings:  f.settings,
		Now:       func() time.Time { return fixedNow },
	})
	return f
}

// token registers a ledger record with pinned metadata.
func (f *fixture) token(id int64, seller, owner ethcommon.Address, wei *big.Int, sold bool, attrs []meta.Attribute) ledger.RawRecord {
	uri := "https://gw.test/ipfs/doc-" + big.NewInt(id).String()
	f.ledger.uris[big.NewInt(id).String()] = uri
	f.docs.docs[uri] = meta.Document{Name: "Parang", Description: "hand drawn", Image: "ipfs://img", Attributes: attrs}
	return ledger.RawRecord{TokenID: big.NewInt(id), Seller: seller, Owner: owner, Price: wei, Sold: sold}
}

func certAttrs() []meta.Attribute {
	return meta.Certificate{
		SerialNumber:      "BATIK-2026-000001",
		Barcode:           "0002026000001",
		AssetType:         "Batik",
		AuthenticatedDate: "2026-10-18T09:30:00.000Z",
		Origin:            "Solo",
		PatternType:       "Parang",
	}.Attributes()
}

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "kawung.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

/*************
 * Wallet
 *************/

func TestConnectWallet(t *testing.T) {
	f := newFixture(t)

	a, err := f.svc.ConnectWallet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, alice, a)
	assert.Equal(t, alice, f.session.Account())
	assert.Equal(t, []byte(alice.Hex()), f.settings.m[metadata.KeyAccount])
}

func TestConnectWallet_Errors(t *testing.T) {
	f := newFixture(t)
	f.wallet.reqErr = common.ErrWalletUnavailable

	_, err := f.svc.ConnectWallet(context.Background())
	require.ErrorIs(t, err, common.ErrWalletUnavailable)

	f = newFixture(t)
	f.wallet.granted = nil
	_, err = f.svc.ConnectWallet(context.Background())
	require.ErrorIs(t, err, common.ErrWalletUnavailable)
	assert.False(t, f.session.Connected())
}

func TestCurrentAccount_SilentAndPreferred(t *testing.T) {
	f := newFixture(t)

	a, err := f.svc.CurrentAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ethcommon.Address{}, a)

	f.wallet.silent = []ethcommon.Address{alice, bob}
	f.settings.m = map[string][]byte{metadata.KeyAccount: []byte(strings.ToLower(bob.Hex()))}

	a, err = f.svc.CurrentAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bob, a)
	assert.True(t, f.session.Connected())
}

/*************
 * Upload & certificate
 *************/

func TestUploadImage(t *testing.T) {
	f := newFixture(t)

	url, err := f.svc.UploadImage(context.Background(), writePNG(t))
	require.NoError(t, err)
	assert.Equal(t, "https://gw.test/ipfs/QmImage", url)
	assert.Contains(t, f.pinner.files, "kawung.png")
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a picture"), 0o600))

	_, err := f.svc.UploadImage(context.Background(), path)
	require.ErrorIs(t, err, common.ErrUploadRejected)
	assert.Empty(t, f.pinner.files)
}

func TestUploadImage_PinFailure(t *testing.T) {
	f := newFixture(t)
	f.pinner.err = common.ErrUploadFailed

	_, err := f.svc.UploadImage(context.Background(), writePNG(t))
	require.ErrorIs(t, err, common.ErrUploadFailed)
}

func TestNewCertificate(t *testing.T) {
	f := newFixture(t)
	f.seq.next = 42

	c, err := f.svc.NewCertificate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BATIK-2026-000042", c.SerialNumber)
	assert.Equal(t, "0002026000042", c.Barcode)
	assert.Equal(t, "BATIK-2026", f.seq.scope)

	f.seq.err = common.ErrUnavailable
	_, err = f.svc.NewCertificate(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestListingFee(t *testing.T) {
	f := newFixture(t)

	fee, err := f.svc.ListingFee(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.025", fee)
}

/*************
 * Writes
 *************/

func TestCreateNFT_ListForSale(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ConnectWallet(context.Background())
	require.NoError(t, err)

	faker := gofakeit.New(5)
	name := faker.Word()
	res, err := f.svc.CreateNFT(context.Background(), CreateInput{
		Name:        name,
		Description: faker.Sentence(6),
		Price:       "1.5",
		ImageURI:    "https://gw.test/ipfs/QmImage",
		Origin:      "Pekalongan",
		ListForSale: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://gw.test/ipfs/QmDoc", res.TokenURI)
	require.Len(t, f.ledger.calls, 1)
	c := f.ledger.calls[0]
	assert.Equal(t, ledger.KindCreate, c.Kind)
	assert.Equal(t, alice, c.From)
	assert.Equal(t, res.TokenURI, c.URI)
	assert.Equal(t, "1500000000000000000", c.Price.String())

	cert := meta.CertificateFromAttributes(res.Document.Attributes)
	assert.Equal(t, "BATIK-2026-000001", cert.SerialNumber)
	assert.Equal(t, "0002026000001", cert.Barcode)
	assert.Equal(t, "Pekalongan", cert.Origin)
	assert.Equal(t, "Traditional", cert.PatternType)
	assert.Equal(t, "2026-10-18T09:30:00.000Z", cert.AuthenticatedDate)

	assert.Equal(t, res.Document, f.pinner.docs[name])
	assert.Equal(t, session.Confirmed, f.session.State())
}

func TestCreateNFT_MintWithoutListing(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ConnectWallet(context.Background())
	require.NoError(t, err)

	res, err := f.svc.CreateNFT(context.Background(), CreateInput{
		Name:         "Mega Mendung",
		Description:  "Cirebon cloud motif",
		ImageURI:     "https://gw.test/ipfs/QmImage",
		SerialNumber: "BATIK-2025-000777",
	})
	require.NoError(t, err)

	require.Len(t, f.ledger.calls, 1)
	assert.Equal(t, ledger.KindMint, f.ledger.calls[0].Kind)
	assert.Equal(t, "", f.seq.scope, "explicit serial must not consume a sequence")
	v, _ := meta.Value(res.Document.Attributes, meta.TraitBarcode)
	assert.Equal(t, "0002025000777", v)
}

func TestCreateNFT_ValidationHappensBeforeAnyIO(t *testing.T) {
	tests := []struct {
		name string
		in   CreateInput
		want error
	}{
		{"missing price", CreateInput{Name: "a", Description: "b", ImageURI: "c", ListForSale: true}, common.ErrInvalidPrice},
		{"zero price", CreateInput{Name: "a", Description: "b", ImageURI: "c", Price: "0.0", ListForSale: true}, common.ErrInvalidPrice},
		{"bad serial", CreateInput{Name: "a", Description: "b", ImageURI: "c", SerialNumber: "BATIK-25-1"}, common.ErrInvalidSerial},
		{"missing image", CreateInput{Name: "a", Description: "b", SerialNumber: "BATIK-2025-000001"}, common.ErrIncompleteMetadata},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.CreateNFT(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, IsUserError(err))
			assert.Empty(t, f.pinner.docs)
			assert.Empty(t, f.ledger.calls)
		})
	}
}

func TestCreateNFT_NoWallet(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateNFT(context.Background(), CreateInput{
		Name: "a", Description: "b", ImageURI: "c", SerialNumber: "BATIK-2025-000001",
	})
	require.ErrorIs(t, err, common.ErrWalletUnavailable)
	assert.Empty(t, f.pinner.docs)
}

func TestCreateNFT_RejectedClearsBusy(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ConnectWallet(context.Background())
	require.NoError(t, err)
	f.ledger.submitErr = common.ErrTransactionRejected

	_, err = f.svc.CreateNFT(context.Background(), CreateInput{
		Name: "a", Description: "b", ImageURI: "c", Price: "2", ListForSale: true,
	})
	require.ErrorIs(t, err, common.ErrTransactionRejected)
	assert.Equal(t, session.Rejected, f.session.State())
	assert.False(t, f.session.Busy())
}

func TestResellBuyCancel(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ConnectWallet(context.Background())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = f.svc.Resell(ctx, big.NewInt(3), "0.75")
	require.NoError(t, err)

	r, err := f.svc.Buy(ctx, reconstruct.ListingRecord{TokenID: big.NewInt(4), Price: "1.5"})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), r.BlockNumber)

	_, err = f.svc.Cancel(ctx, big.NewInt(5))
	require.NoError(t, err)

	require.Len(t, f.ledger.calls, 3)
	resell := f.ledger.calls[0]
	assert.Equal(t, ledger.KindResell, resell.Kind)
	assert.Equal(t, alice, resell.From)
	assert.Equal(t, "750000000000000000", resell.Price.String())
	assert.Equal(t, "3", resell.TokenID.String())
	assert.Equal(t, ledger.KindPurchase, f.ledger.calls[1].Kind)
	assert.Equal(t, "1500000000000000000", f.ledger.calls[1].Price.String())
	assert.Equal(t, ledger.KindCancel, f.ledger.calls[2].Kind)
	assert.Equal(t, "5", f.ledger.calls[2].TokenID.String())
}

func TestResell_InvalidPrice(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Resell(context.Background(), big.NewInt(1), "-1")
	require.ErrorIs(t, err, common.ErrInvalidPrice)
	assert.Empty(t, f.ledger.calls)
}

func TestBuy_Reverted(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ConnectWallet(context.Background())
	require.NoError(t, err)
	f.ledger.status = types.ReceiptStatusFailed

	_, err = f.svc.Buy(context.Background(), reconstruct.ListingRecord{TokenID: big.NewInt(1), Price: "1.0"})
	require.ErrorIs(t, err, common.ErrTransactionReverted)
	assert.False(t, f.session.Busy())
	assert.ErrorIs(t, f.session.LastError(), common.ErrTransactionReverted)
}

func TestSignerFailure(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ConnectWallet(context.Background())
	require.NoError(t, err)
	f.wallet.signerErr = common.ErrWalletLocked

	_, err = f.svc.Cancel(context.Background(), big.NewInt(1))
	require.ErrorIs(t, err, common.ErrWalletLocked)
	assert.Equal(t, session.Idle, f.session.State())
}

/*************
 * Reads
 *************/

func TestFetchAll_SkipsBrokenMetadata(t *testing.T) {
	f := newFixture(t)
	one := f.token(1, alice, mkt, big.NewInt(1e18), false, certAttrs())
	two := ledger.RawRecord{TokenID: big.NewInt(2), Seller: bob, Owner: mkt, Price: big.NewInt(2e18)}
	f.ledger.uris["2"] = "https://gw.test/ipfs/missing"
	three := f.token(3, bob, mkt, big.NewInt(3e18), false, nil)
	f.ledger.all = []ledger.RawRecord{one, two, three}

	results, err := f.svc.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	records := reconstruct.Records(results)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].TokenID.String())
	assert.Equal(t, "1.0", records[0].Price)
	assert.Equal(t, "https://gw.test/ipfs/img", records[0].Image)
	assert.Equal(t, "3", records[1].TokenID.String())
	assert.ErrorIs(t, results[1].Err, common.ErrMetadataUnavailable)
}

func TestFetchMine_RequiresAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FetchMine(context.Background())
	require.ErrorIs(t, err, common.ErrWalletUnavailable)
	_, err = f.svc.FetchListed(context.Background())
	require.ErrorIs(t, err, common.ErrWalletUnavailable)

	_, err = f.svc.ConnectWallet(context.Background())
	require.NoError(t, err)
	f.ledger.mine = []ledger.RawRecord{f.token(9, ethcommon.Address{}, alice, big.NewInt(0), true, nil)}

	results, err := f.svc.FetchMine(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
}

func TestDetails(t *testing.T) {
	tests := []struct {
		name       string
		raw        func(f *fixture) ledger.RawRecord
		mine       bool
		wantRole   reconstruct.Role
		wantCert   bool
		wantAction []Action
	}{
		{
			name:       "viewer sees listed token with buy",
			raw:        func(f *fixture) ledger.RawRecord { return f.token(1, bob, mkt, big.NewInt(1e18), false, certAttrs()) },
			wantRole:   reconstruct.RoleViewer,
			wantAction: []Action{ActionBuy},
		},
		{
			name:       "seller can cancel",
			raw:        func(f *fixture) ledger.RawRecord { return f.token(1, alice, mkt, big.NewInt(1e18), false, certAttrs()) },
			wantRole:   reconstruct.RoleSeller,
			wantAction: []Action{ActionCancel},
		},
		{
			name:       "owner sees certificate and can resell",
			raw:        func(f *fixture) ledger.RawRecord { return f.token(1, ethcommon.Address{}, alice, big.NewInt(1e18), true, certAttrs()) },
			mine:       true,
			wantRole:   reconstruct.RoleOwner,
			wantCert:   true,
			wantAction: []Action{ActionResell},
		},
		{
			name:     "sold token of someone else has no actions",
			raw:      func(f *fixture) ledger.RawRecord { return f.token(1, ethcommon.Address{}, bob, big.NewInt(1e18), true, certAttrs()) },
			wantRole: reconstruct.RoleViewer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.ConnectWallet(context.Background())
			require.NoError(t, err)

			raw := tt.raw(f)
			if tt.mine {
				f.ledger.mine = []ledger.RawRecord{raw}
			} else {
				f.ledger.all = []ledger.RawRecord{raw}
			}

			v, err := f.svc.Details(context.Background(), big.NewInt(1))
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, v.Role)
			assert.Equal(t, tt.wantAction, v.Actions)
			assert.Len(t, v.Public, 3)
			for _, a := range v.Public {
				assert.NotEqual(t, meta.TraitSerialNumber, a.TraitType)
			}
			if tt.wantCert {
				require.NotNil(t, v.Certificate)
				assert.Equal(t, "BATIK-2026-000001", v.Certificate.SerialNumber)
				assert.True(t, v.Can(ActionResell))
			} else {
				assert.Nil(t, v.Certificate)
			}
		})
	}
}

func TestDetails_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Details(context.Background(), big.NewInt(99))
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.svc.Details(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrNotFound)
}
