// Package reconstruct joins ledger records with their pinned metadata into
// display-ready listing records.
package reconstruct

import (
	"context"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/batiknft/internal/ledger"
	"github.com/dmitrijs2005/batiknft/internal/metadata"
	"github.com/dmitrijs2005/batiknft/internal/price"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// ListingRecord is a token as the marketplace shows it. Price is the
// decimal display form, never base units.
type ListingRecord struct {
	TokenID     *big.Int
	Seller      ethcommon.Address
	Owner       ethcommon.Address
	Price       string
	Sold        bool
	Name        string
	Description string
	Image       string
	Attributes  []metadata.Attribute
	TokenURI    string
}

type URISource interface {
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)
}

type MetadataSource interface {
	FetchMetadata(ctx context.Context, uri string) (metadata.Document, error)
	Resolve(uri string) string
}

// Resolver bundles the two lookups needed per record.
type Resolver struct {
	Ledger   URISource
	Metadata MetadataSource
}

// Reconstruct builds the listing record for raw. Metadata failures keep
// the retrieval gateway's common.ErrMetadataUnavailable in the chain.
func Reconstruct(ctx context.Context, raw ledger.RawRecord, r Resolver) (ListingRecord, error) {
	uri, err := r.Ledger.TokenURI(ctx, raw.TokenID)
	if err != nil {
		return ListingRecord{}, fmt.Errorf("token %s: %w", raw.TokenID, err)
	}

	doc, err := r.Metadata.FetchMetadata(ctx, uri)
	if err != nil {
		return ListingRecord{}, fmt.Errorf("token %s: %w", raw.TokenID, err)
	}

	return ListingRecord{
		TokenID:     raw.TokenID,
		Seller:      raw.Seller,
		Owner:       raw.Owner,
		Price:       price.ToDisplay(raw.Price),
		Sold:        raw.Sold,
		Name:        doc.Name,
		Description: doc.Description,
		Image:       r.Metadata.Resolve(doc.Image),
		Attributes:  doc.Attributes,
		TokenURI:    uri,
	}, nil
}
