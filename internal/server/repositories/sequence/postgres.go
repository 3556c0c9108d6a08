// Package sequence is the issuer's authoritative store of per-year serial
// counters.
package sequence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/dbx"
	"github.com/dmitrijs2005/batiknft/internal/serial"
)

type Repository interface {
	// Next advances scope and records which operator received the value.
	Next(ctx context.Context, scope, operator string) (int64, error)
	// Current is the last value handed out for scope, 0 when none was.
	Current(ctx context.Context, scope string) (int64, error)
}

type PostgresRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresRepository) Next(ctx context.Context, scope, operator string) (int64, error) {
	var value int64

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query, args, err := r.sb.
			Insert("sequences").
			Columns("scope", "value").
			Values(scope, 1).
			Suffix("ON CONFLICT (scope) DO UPDATE SET value = sequences.value + 1 RETURNING value").
			ToSql()
		if err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		// rolling back keeps the counter parked at the last valid value
		if value > serial.MaxSequence {
			return fmt.Errorf("%w: %s", common.ErrSequenceOutOfRange, scope)
		}

		query, args, err = r.sb.
			Insert("sequence_issues").
			Columns("scope", "value", "operator").
			Values(scope, value, operator).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return value, nil
}

func (r *PostgresRepository) Current(ctx context.Context, scope string) (int64, error) {
	query, args, err := r.sb.
		Select("value").
		From("sequences").
		Where(sq.Eq{"scope": scope}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var value int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return value, nil
}
