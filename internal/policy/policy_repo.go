package policy

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]LeavePolicy, error)
	FindByType(ctx context.Context, leaveType string) (*LeavePolicy, error)
	Save(ctx context.Context, p *LeavePolicy) error
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, policies []LeavePolicy) error
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

func (r *repository) FindAll(ctx context.Context) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.conn(ctx).Order("leave_type ASC").Find(&policies).Error
	return policies, err
}

func (r *repository) FindByType(ctx context.Context, leaveType string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.conn(ctx).Where("leave_type = ?", leaveType).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Save(ctx context.Context, p *LeavePolicy) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&LeavePolicy{}).Count(&n).Error
	return n, err
}

func (r *repository) CreateBatch(ctx context.Context, policies []LeavePolicy) error {
	return r.conn(ctx).Create(&policies).Error
}
