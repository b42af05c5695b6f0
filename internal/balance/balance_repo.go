package balance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrVersionMismatch is returned by UpdateWithCAS when the row moved on.
var ErrVersionMismatch = errors.New("balance version mismatch")

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByKey(ctx context.Context, userID, leaveType string, year int) (*Balance, error)
	GetOrCreate(ctx context.Context, userID uuid.UUID, leaveType string, year int) (*Balance, error)
	UpdateWithCAS(ctx context.Context, b *Balance, expectedVersion int) error
	InsertTransaction(ctx context.Context, t *Transaction) error
	TransactionExists(ctx context.Context, idempotencyKey string) (bool, error)
	FindByUserYear(ctx context.Context, userID string, year int) ([]Balance, error)
	FindByYear(ctx context.Context, year int) ([]Balance, error)
	FindTransactions(ctx context.Context, userID, leaveType string, year int) ([]Transaction, error)
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

func (r *repository) FindByKey(ctx context.Context, userID, leaveType string, year int) (*Balance, error) {
	var b Balance
	err := r.conn(ctx).
		Where("user_id = ? AND leave_type = ? AND year = ?", userID, leaveType, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) GetOrCreate(ctx context.Context, userID uuid.UUID, leaveType string, year int) (*Balance, error) {
	fresh := Balance{
		ID:        uuid.New(),
		UserID:    userID,
		LeaveType: leaveType,
		Year:      year,
		Version:   1,
	}
	err := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "leave_type"}, {Name: "year"}},
			DoNothing: true,
		}).
		Create(&fresh).Error
	if err != nil {
		return nil, err
	}

	var b Balance
	err = r.conn(ctx).
		Where("user_id = ? AND leave_type = ? AND year = ?", userID, leaveType, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateWithCAS writes every amount column of b only when the stored
// version still equals expectedVersion, then sets b.Version to the new one.
func (r *repository) UpdateWithCAS(ctx context.Context, b *Balance, expectedVersion int) error {
	res := r.conn(ctx).
		Model(&Balance{}).
		Where("id = ? AND version = ?", b.ID, expectedVersion).
		Updates(map[string]interface{}{
			"opening":          b.Opening,
			"accrued":          b.Accrued,
			"used":             b.Used,
			"lapsed":           b.Lapsed,
			"excess":           b.Excess,
			"closing_override": b.ClosingOverride,
			"version":          expectedVersion + 1,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	b.Version = expectedVersion + 1
	return nil
}

func (r *repository) InsertTransaction(ctx context.Context, t *Transaction) error {
	return r.conn(ctx).Create(t).Error
}

func (r *repository) TransactionExists(ctx context.Context, idempotencyKey string) (bool, error) {
	var n int64
	err := r.conn(ctx).Model(&Transaction{}).Where("idempotency_key = ?", idempotencyKey).Count(&n).Error
	return n > 0, err
}

func (r *repository) FindByUserYear(ctx context.Context, userID string, year int) ([]Balance, error) {
	var balances []Balance
	err := r.conn(ctx).
		Where("user_id = ? AND year = ?", userID, year).
		Order("leave_type ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindByYear(ctx context.Context, year int) ([]Balance, error) {
	var balances []Balance
	err := r.conn(ctx).
		Where("year = ?", year).
		Order("user_id ASC, leave_type ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindTransactions(ctx context.Context, userID, leaveType string, year int) ([]Transaction, error) {
	q := r.conn(ctx).Where("user_id = ? AND year = ?", userID, year)
	if leaveType != "" {
		q = q.Where("leave_type = ?", leaveType)
	}

	var txs []Transaction
	err := q.Order("created_at ASC").Find(&txs).Error
	return txs, err
}
