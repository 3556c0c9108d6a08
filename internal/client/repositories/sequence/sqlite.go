// Package sequence keeps the local per-scope serial counters.
package sequence

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/dbx"
	"github.com/dmitrijs2005/batiknft/internal/serial"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ serial.Sequencer = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Next increments the counter of scope and returns the new value. The first
// value handed out for a scope is 1.
func (r *SQLiteRepository) Next(ctx context.Context, scope string) (int64, error) {
	var v int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO sequences (scope, value) VALUES (?, 1)
		ON CONFLICT(scope) DO UPDATE SET value = value + 1
		RETURNING value`, scope).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", scope, err)
	}
	if v > serial.MaxSequence {
		return 0, fmt.Errorf("%w: %s reached %d", common.ErrSequenceOutOfRange, scope, v)
	}
	return v, nil
}

// Current returns the last value handed out for scope, 0 when none was.
func (r *SQLiteRepository) Current(ctx context.Context, scope string) (int64, error) {
	var v int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE((SELECT value FROM sequences WHERE scope = ?), 0)`, scope).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("current sequence %s: %w", scope, err)
	}
	return v, nil
}
