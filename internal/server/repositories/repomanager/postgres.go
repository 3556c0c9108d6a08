// Package repomanager provides the PostgreSQL RepositoryManager, wiring the
// repository constructors to a pgx connection and goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/batiknft/internal/dbx"
	"github.com/dmitrijs2005/batiknft/internal/server/migrations"
	"github.com/dmitrijs2005/batiknft/internal/server/repositories/sequence"
)

// migrate is a seam for tests.
var migrate = dbx.Migrate

type PostgresRepositoryManager struct {
	db        *sql.DB
	sequences *sequence.PostgresRepository
}

// NewPostgresRepositoryManager opens dsn with the pgx driver. The connection
// is established lazily; call Ping to check it.
func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return newManager(db), nil
}

func newManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{
		db:        db,
		sequences: sequence.NewPostgresRepository(db),
	}
}

func (m *PostgresRepositoryManager) Sequences() sequence.Repository {
	return m.sequences
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}
	return nil
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	if _, err := migrate(ctx, m.db, goose.DialectPostgres, migrations.Migrations); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
