package pinning

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/metadata"
	"github.com/dmitrijs2005/batiknft/internal/netx"
)

const DefaultGatewayURL = "https://gateway.pinata.cloud/ipfs/"

// Gateway turns content ids into HTTP URLs and fetches metadata documents.
type Gateway struct {
	base   string
	client *http.Client
}

// NewGateway accepts either the gateway host ("https://x.mypinata.cloud")
// or its /ipfs/ prefix.
func NewGateway(baseURL string, client *http.Client) *Gateway {
	if baseURL == "" {
		baseURL = DefaultGatewayURL
	}
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(base, "/ipfs") {
		base += "/ipfs"
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Gateway{base: base + "/", client: client}
}

// URL is the gateway address of cid.
func (g *Gateway) URL(cid string) string {
	return g.base + cid
}

// Resolve rewrites ipfs:// URIs onto the gateway. Other URIs are returned
// unchanged.
func (g *Gateway) Resolve(uri string) string {
	rest, ok := strings.CutPrefix(uri, "ipfs://")
	if !ok {
		return uri
	}
	rest = strings.TrimPrefix(rest, "ipfs/")
	return g.base + rest
}

// FetchMetadata downloads and decodes the document at uri. Every failure,
// transport or decoding, is reported as common.ErrMetadataUnavailable.
func (g *Gateway) FetchMetadata(ctx context.Context, uri string) (metadata.Document, error) {
	url := g.Resolve(uri)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return metadata.Document{}, fmt.Errorf("%w: %s: %w", common.ErrMetadataUnavailable, url, err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := netx.Do(ctx, g.client, req)
	if err != nil {
		return metadata.Document{}, fmt.Errorf("%w: %s: %w", common.ErrMetadataUnavailable, url, err)
	}

	doc, err := metadata.Decode(body)
	if err != nil {
		return metadata.Document{}, fmt.Errorf("%w: %s: %w", common.ErrMetadataUnavailable, url, err)
	}
	return doc, nil
}
