// Package keys persists sealed wallet keys in the client SQLite store.
package keys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/cryptox"
	"github.com/dmitrijs2005/batiknft/internal/dbx"
	"github.com/dmitrijs2005/batiknft/internal/wallet"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ wallet.KeyStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save inserts or replaces the sealed key of an address.
func (r *SQLiteRepository) Save(ctx context.Context, k wallet.StoredKey) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallet_keys (address, salt, nonce, ciphertext, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			salt = excluded.salt,
			nonce = excluded.nonce,
			ciphertext = excluded.ciphertext
	`, k.Address.Hex(), k.Sealed.Salt, k.Sealed.Nonce, k.Sealed.Ciphertext, k.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save key %s: %w", k.Address.Hex(), err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, address ethcommon.Address) (*wallet.StoredKey, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT address, salt, nonce, ciphertext, created_at
		FROM wallet_keys WHERE address = ?`, address.Hex())

	k, err := scanKey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get key %s: %w", address.Hex(), err)
	}
	return k, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]wallet.StoredKey, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT address, salt, nonce, ciphertext, created_at
		FROM wallet_keys ORDER BY created_at, address`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var out []wallet.StoredKey
	for rows.Next() {
		k, err := scanKey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		out = append(out, *k)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanKey(s scanner) (*wallet.StoredKey, error) {
	var (
		address, created string
		sealed           cryptox.Sealed
	)
	if err := s.Scan(&address, &sealed.Salt, &sealed.Nonce, &sealed.Ciphertext, &created); err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}

	return &wallet.StoredKey{
		Address:   ethcommon.HexToAddress(address),
		Sealed:    sealed,
		CreatedAt: createdAt,
	}, nil
}
