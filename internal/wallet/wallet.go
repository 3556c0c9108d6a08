// Package wallet provides the accounts that sign marketplace transactions.
//
// Two providers exist: KeyProvider wraps a single raw private key taken from
// configuration, and Vault keeps passphrase-encrypted keys in the local
// store and unlocks them on demand. Both follow the browser wallet contract:
// Accounts never prompts and may return nothing, RequestAccounts may prompt
// and fails with common.ErrWalletUnavailable when no account can be had.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/ledger"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

type Provider interface {
	Accounts(ctx context.Context) ([]ethcommon.Address, error)
	RequestAccounts(ctx context.Context) ([]ethcommon.Address, error)
	Signer(ctx context.Context, account ethcommon.Address) (ledger.Signer, error)
}

type keySigner struct {
	key     *ecdsa.PrivateKey
	chainID *big.Int
}

func (s *keySigner) Account() ethcommon.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

func (s *keySigner) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, s.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// ParseKey accepts a hex private key with or without the 0x prefix.
func ParseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}

// KeyProvider serves one configured key.
type KeyProvider struct {
	signer *keySigner
}

var _ Provider = (*KeyProvider)(nil)

func NewKeyProvider(hexKey string, chainID int64) (*KeyProvider, error) {
	if strings.TrimSpace(hexKey) == "" {
		return nil, fmt.Errorf("%w: no private key configured", common.ErrWalletUnavailable)
	}
	key, err := ParseKey(hexKey)
	if err != nil {
		return nil, err
	}
	return &KeyProvider{signer: &keySigner{key: key, chainID: big.NewInt(chainID)}}, nil
}

func (p *KeyProvider) Accounts(context.Context) ([]ethcommon.Address, error) {
	return []ethcommon.Address{p.signer.Account()}, nil
}

func (p *KeyProvider) RequestAccounts(ctx context.Context) ([]ethcommon.Address, error) {
	return p.Accounts(ctx)
}

func (p *KeyProvider) Signer(_ context.Context, account ethcommon.Address) (ledger.Signer, error) {
	if account != p.signer.Account() {
		return nil, fmt.Errorf("%w: %s is not managed here", common.ErrWalletUnavailable, account.Hex())
	}
	return p.signer, nil
}

// None is the provider used when nothing is configured.
type None struct{}

var _ Provider = None{}

func (None) Accounts(context.Context) ([]ethcommon.Address, error) { return nil, nil }

func (None) RequestAccounts(context.Context) ([]ethcommon.Address, error) {
	return nil, fmt.Errorf("%w: no wallet configured", common.ErrWalletUnavailable)
}

func (None) Signer(context.Context, ethcommon.Address) (ledger.Signer, error) {
	return nil, fmt.Errorf("%w: no wallet configured", common.ErrWalletUnavailable)
}
