package ledger

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

//go:embed marketplace.abi.json
var marketplaceABI []byte

// MarketplaceABI is the parsed contract interface.
var MarketplaceABI = mustParseABI(marketplaceABI)

func mustParseABI(data []byte) abi.ABI {
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		panic(fmt.Sprintf("marketplace abi: %v", err))
	}
	return parsed
}

// Backend is what EthGateway needs from a JSON-RPC connection.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// marketItem mirrors the contract struct; field names follow the ABI so
// abi.ConvertType can map the anonymous tuple onto it.
type marketItem struct {
	TokenId *big.Int
	Seller  ethcommon.Address
	Owner   ethcommon.Address
	Price   *big.Int
	Sold    bool
}

// EthGateway implements Gateway over go-ethereum's bound contract.
type EthGateway struct {
	backend  Backend
	address  ethcommon.Address
	contract *bind.BoundContract
	logger   logging.Logger
}

var _ Gateway = (*EthGateway)(nil)

func NewEthGateway(backend Backend, address ethcommon.Address, logger logging.Logger) *EthGateway {
	return &EthGateway{
		backend:  backend,
		address:  address,
		contract: bind.NewBoundContract(address, MarketplaceABI, backend, backend, backend),
		logger:   logger,
	}
}

// Dial connects to rpcURL and checks that the node serves chainID.
func Dial(ctx context.Context, rpcURL string, chainID int64) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}

	got, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("chain id: %w", err)
	}
	if got.Int64() != chainID {
		client.Close()
		return nil, fmt.Errorf("rpc serves chain %s, want %d", got, chainID)
	}

	return client, nil
}

func (g *EthGateway) call(ctx context.Context, from ethcommon.Address, method string, params ...any) ([]any, error) {
	var out []any
	opts := &bind.CallOpts{Context: ctx, From: from}
	if err := g.contract.Call(opts, &out, method, params...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return out, nil
}

func (g *EthGateway) ListingFee(ctx context.Context) (*big.Int, error) {
	out, err := g.call(ctx, ethcommon.Address{}, "getListingPrice")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (g *EthGateway) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	out, err := g.call(ctx, ethcommon.Address{}, "tokenURI", tokenID)
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (g *EthGateway) FetchAll(ctx context.Context) ([]RawRecord, error) {
	return g.fetch(ctx, ethcommon.Address{}, "fetchMarketItems")
}

func (g *EthGateway) FetchMine(ctx context.Context, account ethcommon.Address) ([]RawRecord, error) {
	return g.fetch(ctx, account, "fetchMyNFTs")
}

func (g *EthGateway) FetchListed(ctx context.Context, account ethcommon.Address) ([]RawRecord, error) {
	return g.fetch(ctx, account, "fetchItemsListed")
}

func (g *EthGateway) fetch(ctx context.Context, from ethcommon.Address, method string) ([]RawRecord, error) {
	out, err := g.call(ctx, from, method)
	if err != nil {
		return nil, err
	}

	items := *abi.ConvertType(out[0], new([]marketItem)).(*[]marketItem)

	records := make([]RawRecord, 0, len(items))
	for _, it := range items {
		records = append(records, RawRecord{
			TokenID: it.TokenId,
			Seller:  it.Seller,
			Owner:   it.Owner,
			Price:   it.Price,
			Sold:    it.Sold,
		})
	}
	return records, nil
}

func (g *EthGateway) SubmitListing(ctx context.Context, signer Signer, metadataURI string, price, resaleTokenID *big.Int) (*PendingTx, error) {
	if price == nil || price.Sign() <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", common.ErrInvalidPrice)
	}

	fee, err := g.ListingFee(ctx)
	if err != nil {
		return nil, err
	}

	if resaleTokenID == nil {
		return g.transact(ctx, signer, KindCreate, fee, "createToken", metadataURI, price)
	}
	return g.transact(ctx, signer, KindResell, fee, "resellToken", resaleTokenID, price)
}

func (g *EthGateway) MintWithoutListing(ctx context.Context, signer Signer, metadataURI string) (*PendingTx, error) {
	return g.transact(ctx, signer, KindMint, nil, "mintToken", metadataURI)
}

func (g *EthGateway) Purchase(ctx context.Context, signer Signer, tokenID, price *big.Int) (*PendingTx, error) {
	return g.transact(ctx, signer, KindPurchase, price, "createMarketSale", tokenID)
}

func (g *EthGateway) CancelListing(ctx context.Context, signer Signer, tokenID *big.Int) (*PendingTx, error) {
	return g.transact(ctx, signer, KindCancel, nil, "cancelListing", tokenID)
}

func (g *EthGateway) transact(ctx context.Context, signer Signer, kind TxKind, value *big.Int, method string, params ...any) (*PendingTx, error) {
	opts, err := signer.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	opts.Value = value

	tx, err := g.contract.Transact(opts, method, params...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrTransactionRejected, method, err)
	}

	g.logger.Info(ctx, "transaction submitted", "kind", kind.String(), "hash", tx.Hash().Hex(), "from", opts.From.Hex())

	return &PendingTx{
		Hash: tx.Hash(),
		Kind: kind,
		wait: func(ctx context.Context) (*types.Receipt, error) {
			return bind.WaitMined(ctx, g.backend, tx)
		},
		tokenID: g.mintedTokenID,
	}, nil
}

// mintedTokenID finds the Transfer from the zero address emitted by the
// contract and returns its token id.
func (g *EthGateway) mintedTokenID(logs []*types.Log) *big.Int {
	transfer := MarketplaceABI.Events["Transfer"].ID

	for _, l := range logs {
		if l.Address != g.address || len(l.Topics) != 4 || l.Topics[0] != transfer {
			continue
		}
		if l.Topics[1] != (ethcommon.Hash{}) {
			continue
		}
		return new(big.Int).SetBytes(l.Topics[3].Bytes())
	}
	return nil
}
