package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	InsertIgnoreDuplicates(ctx context.Context, notifications []Notification) (int64, error)
	FindByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id, recipientID string, at time.Time) (int64, error)
	MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertIgnoreDuplicates(ctx context.Context, notifications []Notification) (int64, error) {
	if len(notifications) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "dedup_key"}}, DoNothing: true}).
		Create(&notifications)
	return res.RowsAffected, res.Error
}

func (r *repository) FindByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error) {
	q := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var notifications []Notification
	err := q.Order("created_at DESC").Limit(200).Find(&notifications).Error
	return notifications, err
}

func (r *repository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&n).Error
	return n, err
}

func (r *repository) MarkRead(ctx context.Context, id, recipientID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}

func (r *repository) MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}
