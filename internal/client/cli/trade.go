package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/batiknft/internal/client/services"
	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/ledger"
)

func (a *App) Buy(ctx context.Context, args []string) error {
	id, err := tokenArg(args, "buy <id>")
	if err != nil {
		return err
	}
	v, err := a.market.Details(ctx, id)
	if err != nil {
		return err
	}
	if !v.Can(services.ActionBuy) {
		return fmt.Errorf("token %s is not for sale to you", id)
	}

	ok, err := GetYesNo(a.reader, fmt.Sprintf("Buy %q for %s %s?", v.Record.Name, v.Record.Price, common.Currency), false, a.out)
	if err != nil || !ok {
		return err
	}

	printlnFn("Submitting, confirm in your wallet and wait for the block...")
	r, err := a.market.Buy(ctx, v.Record)
	return a.reportReceipt(r, err)
}

func (a *App) Resell(ctx context.Context, args []string) error {
	id, err := tokenArg(args, "resell <id> <price>")
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: resell <id> <price>")
	}

	printlnFn("Submitting, confirm in your wallet and wait for the block...")
	r, err := a.market.Resell(ctx, id, args[1])
	return a.reportReceipt(r, err)
}

func (a *App) Cancel(ctx context.Context, args []string) error {
	id, err := tokenArg(args, "cancel <id>")
	if err != nil {
		return err
	}

	printlnFn("Submitting, confirm in your wallet and wait for the block...")
	r, err := a.market.Cancel(ctx, id)
	return a.reportReceipt(r, err)
}

func (a *App) reportReceipt(r *ledger.Receipt, err error) error {
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Confirmed in block %d: %s", r.BlockNumber, r.Hash.Hex()))
	return nil
}
