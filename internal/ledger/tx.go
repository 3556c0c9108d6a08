package ledger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/batiknft/internal/common"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxKind names the contract write behind a transaction.
type TxKind int

const (
	KindCreate TxKind = iota
	KindResell
	KindMint
	KindPurchase
	KindCancel
)

func (k TxKind) String() string {
	switch k {
	case KindCreate:
		return "createToken"
	case KindResell:
		return "resellToken"
	case KindMint:
		return "mintToken"
	case KindPurchase:
		return "createMarketSale"
	case KindCancel:
		return "cancelListing"
	default:
		return fmt.Sprintf("TxKind(%d)", int(k))
	}
}

// TxState is the lifecycle of a write: Submitted -> Pending -> Confirmed,
// with Rejected for failures before inclusion and Reverted for a mined
// transaction whose status is failed.
type TxState int

const (
	TxSubmitted TxState = iota
	TxPending
	TxConfirmed
	TxRejected
	TxReverted
)

func (s TxState) String() string {
	switch s {
	case TxSubmitted:
		return "submitted"
	case TxPending:
		return "pending"
	case TxConfirmed:
		return "confirmed"
	case TxRejected:
		return "rejected"
	case TxReverted:
		return "reverted"
	default:
		return fmt.Sprintf("TxState(%d)", int(s))
	}
}

// Terminal reports whether no further transition can happen.
func (s TxState) Terminal() bool {
	return s == TxConfirmed || s == TxRejected || s == TxReverted
}

// Receipt is the outcome of a mined transaction.
type Receipt struct {
	Hash        ethcommon.Hash
	BlockNumber uint64
	GasUsed     uint64

	// TokenID is set for mints (create and mintToken), taken from the
	// ERC-721 Transfer log emitted by the contract.
	TokenID *big.Int
}

// PendingTx is a broadcast transaction awaiting inclusion.
type PendingTx struct {
	Hash ethcommon.Hash
	Kind TxKind

	wait func(ctx context.Context) (*types.Receipt, error)
	// tokenID extracts a minted token id from receipt logs.
	tokenID func(logs []*types.Log) *big.Int
}

// NewPendingTx builds a PendingTx around a custom wait function. Used by
// alternative gateways and tests.
func NewPendingTx(hash ethcommon.Hash, kind TxKind, wait func(ctx context.Context) (*types.Receipt, error)) *PendingTx {
	return &PendingTx{Hash: hash, Kind: kind, wait: wait}
}

// Wait blocks until the transaction is mined or ctx ends. A failed receipt
// status yields common.ErrTransactionReverted.
func (p *PendingTx) Wait(ctx context.Context) (*Receipt, error) {
	r, err := p.wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("wait %s %s: %w", p.Kind, p.Hash.Hex(), err)
	}

	if r.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s %s: %w", p.Kind, p.Hash.Hex(), common.ErrTransactionReverted)
	}

	out := &Receipt{Hash: r.TxHash, GasUsed: r.GasUsed}
	if r.BlockNumber != nil {
		out.BlockNumber = r.BlockNumber.Uint64()
	}
	if p.tokenID != nil && (p.Kind == KindCreate || p.Kind == KindMint) {
		out.TokenID = p.tokenID(r.Logs)
	}
	return out, nil
}
