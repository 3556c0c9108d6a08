package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/cryptox"
	"github.com/dmitrijs2005/batiknft/internal/ledger"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// StoredKey is a sealed private key as persisted.
type StoredKey struct {
	Address   ethcommon.Address
	Sealed    cryptox.Sealed
	CreatedAt time.Time
}

// KeyStore persists sealed keys. List returns them oldest first.
type KeyStore interface {
	Save(ctx context.Context, key StoredKey) error
	Get(ctx context.Context, address ethcommon.Address) (*StoredKey, error)
	List(ctx context.Context) ([]StoredKey, error)
}

// PassphraseFunc asks the user for the passphrase of account.
type PassphraseFunc func(ctx context.Context, account ethcommon.Address) ([]byte, error)

type Vault struct {
	store   KeyStore
	chainID *big.Int
	prompt  PassphraseFunc

	mu       sync.RWMutex
	unlocked map[ethcommon.Address]*ecdsa.PrivateKey
}

var _ Provider = (*Vault)(nil)

func NewVault(store KeyStore, chainID int64, prompt PassphraseFunc) *Vault {
	return &Vault{
		store:    store,
		chainID:  big.NewInt(chainID),
		prompt:   prompt,
		unlocked: map[ethcommon.Address]*ecdsa.PrivateKey{},
	}
}

// Import seals hexKey under passphrase and stores it. The key stays unlocked.
func (v *Vault) Import(ctx context.Context, hexKey string, passphrase []byte) (ethcommon.Address, error) {
	key, err := ParseKey(hexKey)
	if err != nil {
		return ethcommon.Address{}, err
	}
	return v.add(ctx, key, passphrase)
}

// Generate creates a fresh key, seals and stores it.
func (v *Vault) Generate(ctx context.Context, passphrase []byte) (ethcommon.Address, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return ethcommon.Address{}, fmt.Errorf("generate key: %w", err)
	}
	return v.add(ctx, key, passphrase)
}

func (v *Vault) add(ctx context.Context, key *ecdsa.PrivateKey, passphrase []byte) (ethcommon.Address, error) {
	if len(passphrase) == 0 {
		return ethcommon.Address{}, errors.New("empty passphrase")
	}

	raw := crypto.FromECDSA(key)
	defer common.WipeByteArray(raw)

	sealed, err := cryptox.Seal(raw, passphrase)
	if err != nil {
		return ethcommon.Address{}, err
	}

	addr := crypto.PubkeyToAddress(key.PublicKey)
	if err := v.store.Save(ctx, StoredKey{Address: addr, Sealed: *sealed, CreatedAt: time.Now().UTC()}); err != nil {
		return ethcommon.Address{}, fmt.Errorf("save key: %w", err)
	}

	v.mu.Lock()
	v.unlocked[addr] = key
	v.mu.Unlock()

	return addr, nil
}

// Accounts lists unlocked accounts in store order. It never prompts.
func (v *Vault) Accounts(ctx context.Context) ([]ethcommon.Address, error) {
	keys, err := v.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	var out []ethcommon.Address
	for _, k := range keys {
		if _, ok := v.unlocked[k.Address]; ok {
			out = append(out, k.Address)
		}
	}
	return out, nil
}

// RequestAccounts unlocks the first stored key if nothing is unlocked yet.
func (v *Vault) RequestAccounts(ctx context.Context) ([]ethcommon.Address, error) {
	accounts, err := v.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		return accounts, nil
	}

	keys, err := v.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: vault is empty, import a key first", common.ErrWalletUnavailable)
	}

	if err := v.Unlock(ctx, keys[0].Address); err != nil {
		return nil, err
	}
	return []ethcommon.Address{keys[0].Address}, nil
}

// Unlock decrypts the key of account with a prompted passphrase.
func (v *Vault) Unlock(ctx context.Context, account ethcommon.Address) error {
	if v.prompt == nil {
		return fmt.Errorf("%w: no passphrase prompt", common.ErrWalletLocked)
	}

	stored, err := v.store.Get(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: %s", common.ErrWalletUnavailable, account.Hex())
		}
		return err
	}

	passphrase, err := v.prompt(ctx, account)
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	defer common.WipeByteArray(passphrase)

	raw, err := cryptox.Open(&stored.Sealed, passphrase)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrWalletLocked, err)
	}
	defer common.WipeByteArray(raw)

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return fmt.Errorf("decode key: %w", err)
	}

	v.mu.Lock()
	v.unlocked[account] = key
	v.mu.Unlock()
	return nil
}

// Lock forgets every unlocked key.
func (v *Vault) Lock() {
	v.mu.Lock()
	defer v.mu.Unlock()
	clear(v.unlocked)
}

func (v *Vault) Signer(_ context.Context, account ethcommon.Address) (ledger.Signer, error) {
	v.mu.RLock()
	key, ok := v.unlocked[account]
	v.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrWalletLocked, account.Hex())
	}
	return &keySigner{key: key, chainID: v.chainID}, nil
}
