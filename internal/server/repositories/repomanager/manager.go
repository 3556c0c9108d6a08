package repomanager

import (
	"context"

	"github.com/dmitrijs2005/batiknft/internal/server/repositories/sequence"
)

// RepositoryManager owns the issuer's database handle and vends the
// repositories built on it.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Sequences() sequence.Repository
	Ping(ctx context.Context) error
	Close() error
}
