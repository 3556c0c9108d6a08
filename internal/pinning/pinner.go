// Package pinning stores images and metadata documents on IPFS through a
// pinning service, and maps the resulting content ids back to HTTP URLs
// through a retrieval gateway.
package pinning

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/google/uuid"
)

// Pinner uploads content and returns its IPFS content id. Failures are
// reported as common.ErrUploadFailed and are not retried.
type Pinner interface {
	PinFile(ctx context.Context, name string, r io.Reader) (string, error)
	PinJSON(ctx context.Context, name string, v any) (string, error)
}

func uploadFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrUploadFailed, op, err)
}

// PinName returns name, or a generated one when name is blank.
func PinName(name string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return "batik-" + uuid.NewString()
}
