package cli

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/batiknft/internal/client/services"
	"github.com/dmitrijs2005/batiknft/internal/reconstruct"
)

func (a *App) Market(ctx context.Context, _ []string) error {
	return a.browse(ctx, "Market", a.market.FetchAll)
}

func (a *App) Mine(ctx context.Context, _ []string) error {
	return a.browse(ctx, "My tokens", a.market.FetchMine)
}

func (a *App) Listed(ctx context.Context, _ []string) error {
	return a.browse(ctx, "My listings", a.market.FetchListed)
}

func (a *App) browse(ctx context.Context, title string, fetch func(context.Context) ([]reconstruct.Result, error)) error {
	results, err := fetch(ctx)
	if err != nil {
		return err
	}

	a.records = reconstruct.Records(results)
	skipped := len(reconstruct.Failures(results))

	printlnFn(fmt.Sprintf("%s: %d item(s)", title, len(a.records)))
	for _, rec := range a.records {
		printlnFn(formatRow(rec))
	}
	if a.session.Connected() {
		owned, selling, _ := reconstruct.Partition(a.records, a.session.Account())
		if len(owned)+len(selling) > 0 {
			printlnFn(fmt.Sprintf("%d owned by you, %d listed by you", len(owned), len(selling)))
		}
	}
	if skipped > 0 {
		printlnFn(fmt.Sprintf("%d item(s) skipped: metadata unavailable", skipped))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := tokenArg(args, "show <id>")
	if err != nil {
		return err
	}
	v, err := a.market.Details(ctx, id)
	if err != nil {
		return err
	}
	printlnFn(formatDetail(v))
	return nil
}

func tokenArg(args []string, usage string) (*big.Int, error) {
	if len(args) == 0 {
		return nil, errors.New("usage: " + usage)
	}
	id, ok := new(big.Int).SetString(args[0], 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid token id %q", args[0])
	}
	return id, nil
}

func actionNames(v *services.DetailView) []string {
	out := make([]string, 0, len(v.Actions))
	for _, act := range v.Actions {
		out = append(out, string(act))
	}
	return out
}
