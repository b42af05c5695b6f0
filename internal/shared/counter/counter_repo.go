package counter

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

const TypeLeaveReference = "LEAVE_REFERENCE"

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, counterType string, scope string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) GetNextValue(ctx context.Context, counterType string, scope string) (int64, error) {
	var nextValue int64

	// Atomic upsert so concurrent callers never receive the same value.
	err := r.conn(ctx).Raw(`
		INSERT INTO counters (counter_type, scope, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (counter_type, scope) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType, scope).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// LeaveReference formats the n-th leave of year as LV-2025-000042.
func LeaveReference(year int, n int64) string {
	return fmt.Sprintf("LV-%d-%06d", year, n)
}
