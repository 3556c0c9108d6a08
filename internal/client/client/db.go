package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/batiknft/internal/client/migrations"
	"github.com/dmitrijs2005/batiknft/internal/client/repositories/keys"
	"github.com/dmitrijs2005/batiknft/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/batiknft/internal/client/repositories/sequence"
	"github.com/dmitrijs2005/batiknft/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Metadata metadata.Repository
	Keys     *keys.SQLiteRepository
	Sequence *sequence.SQLiteRepository
	DB       *sql.DB
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	_, err := dbx.Migrate(ctx, db, goose.DialectSQLite3, migrations.Migrations)
	return err
}

// InitDatabase opens the SQLite file at dsn and brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	// one writer keeps the sequence UPSERT from hitting SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Keys:     keys.NewSQLiteRepository(db),
		Sequence: sequence.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}
