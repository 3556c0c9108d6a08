package reconstruct

import (
	"context"
	"time"

	"github.com/dmitrijs2005/batiknft/internal/ledger"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 8
	DefaultItemTimeout = 10 * time.Second
)

type Options struct {
	Concurrency int
	ItemTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.ItemTimeout <= 0 {
		o.ItemTimeout = DefaultItemTimeout
	}
	return o
}

// Result is the outcome for one input record; exactly one of Record and
// Err is meaningful.
type Result struct {
	Raw    ledger.RawRecord
	Record ListingRecord
	Err    error
}

// Batch reconstructs raws with bounded concurrency. One failing item does
// not affect the others; results are in input order.
func Batch(ctx context.Context, raws []ledger.RawRecord, r Resolver, opts Options) []Result {
	opts = opts.withDefaults()
	results := make([]Result, len(raws))

	var g errgroup.Group
	g.SetLimit(opts.Concurrency)

	for i, raw := range raws {
		results[i].Raw = raw

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			itemCtx, cancel := context.WithTimeout(ctx, opts.ItemTimeout)
			defer cancel()

			results[i].Record, results[i].Err = Reconstruct(itemCtx, raw, r)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Records returns the successful records, keeping order.
func Records(results []Result) []ListingRecord {
	out := make([]ListingRecord, 0, len(results))
	for _, res := range results {
		if res.Err == nil {
			out = append(out, res.Record)
		}
	}
	return out
}

// Failures returns the failed results.
func Failures(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
