package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/dmitrijs2005/batiknft/internal/common"
)

var errNoVault = errors.New("a private key is configured; the key vault is disabled")

func (a *App) Connect(ctx context.Context, _ []string) error {
	account, err := a.market.ConnectWallet(ctx)
	if err != nil {
		return err
	}
	printlnFn("Connected as", account.Hex())
	return nil
}

func (a *App) Account(ctx context.Context, _ []string) error {
	account, err := a.market.CurrentAccount(ctx)
	if err != nil {
		return err
	}
	if account == (ethcommon.Address{}) {
		printlnFn("No wallet connected. Use 'connect'.")
		return nil
	}
	printlnFn("Account:", account.Hex())
	return nil
}

// newPassphrase asks twice and returns the passphrase when both match.
func (a *App) newPassphrase() ([]byte, error) {
	p1, err := GetSecret("New passphrase", a.out)
	if err != nil {
		return nil, err
	}
	p2, err := GetSecret("Repeat passphrase", a.out)
	if err != nil {
		common.WipeByteArray(p1)
		return nil, err
	}
	defer common.WipeByteArray(p2)

	if len(p1) == 0 || !bytes.Equal(p1, p2) {
		common.WipeByteArray(p1)
		return nil, errors.New("passphrases are empty or do not match")
	}
	return p1, nil
}

func (a *App) ImportKey(ctx context.Context, _ []string) error {
	if a.vault == nil {
		return errNoVault
	}

	key, err := GetSecret("Private key (hex)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	pass, err := a.newPassphrase()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	addr, err := a.vault.Import(ctx, strings.TrimSpace(string(key)), pass)
	if err != nil {
		return err
	}
	printlnFn("Imported", addr.Hex())
	return nil
}

func (a *App) GenerateKey(ctx context.Context, _ []string) error {
	if a.vault == nil {
		return errNoVault
	}

	pass, err := a.newPassphrase()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	addr, err := a.vault.Generate(ctx, pass)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Generated %s. Fund it before creating tokens.", addr.Hex()))
	return nil
}

func (a *App) Lock(context.Context, []string) error {
	if a.vault == nil {
		return errNoVault
	}
	a.vault.Lock()
	a.session.SetAccount(ethcommon.Address{})
	printlnFn("Vault locked.")
	return nil
}
