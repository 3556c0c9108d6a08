// Package ledger talks to the marketplace contract: listing fee, listing and
// resale, mint without listing, purchase, cancel, the three item queries and
// token URIs. Writes return a PendingTx whose Wait blocks until the
// transaction is mined.
package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// RawRecord is one MarketItem as the contract returns it.
type RawRecord struct {
	TokenID *big.Int
	Seller  common.Address
	Owner   common.Address
	Price   *big.Int
	Sold    bool
}

// Signer authorizes transactions for a single account.
type Signer interface {
	Account() common.Address
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
}

// Gateway is the contract surface the marketplace service depends on.
type Gateway interface {
	ListingFee(ctx context.Context) (*big.Int, error)

	// SubmitListing lists a new token at metadataURI, or relists
	// resaleTokenID when it is non-nil. The listing fee is attached.
	SubmitListing(ctx context.Context, signer Signer, metadataURI string, price, resaleTokenID *big.Int) (*PendingTx, error)
	MintWithoutListing(ctx context.Context, signer Signer, metadataURI string) (*PendingTx, error)
	Purchase(ctx context.Context, signer Signer, tokenID, price *big.Int) (*PendingTx, error)
	CancelListing(ctx context.Context, signer Signer, tokenID *big.Int) (*PendingTx, error)

	FetchAll(ctx context.Context) ([]RawRecord, error)
	FetchMine(ctx context.Context, account common.Address) ([]RawRecord, error)
	FetchListed(ctx context.Context, account common.Address) ([]RawRecord, error)
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)
}
