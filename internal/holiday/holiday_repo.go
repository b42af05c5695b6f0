package holiday

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Holiday) error
	InsertIgnoreDuplicates(ctx context.Context, holidays []Holiday) (int64, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
	FindByID(ctx context.Context, id string) (*Holiday, error)
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.conn(ctx).Create(h).Error
}

func (r *repository) InsertIgnoreDuplicates(ctx context.Context, holidays []Holiday) (int64, error) {
	if len(holidays) == 0 {
		return 0, nil
	}
	res := r.conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "date"}}, DoNothing: true}).
		Create(&holidays)
	return res.RowsAffected, res.Error
}

// FindBetween returns holidays with from <= date <= to.
func (r *repository) FindBetween(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.conn(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Holiday, error) {
	var h Holiday
	err := r.conn(ctx).First(&h, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Holiday{}, "id = ?", id).Error
}
