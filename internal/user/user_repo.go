package user

import (
	"context"

	"gorm.io/gorm"

	"cdbl-lms/internal/shared/scope"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter ListFilter) ([]User, error)
	Update(ctx context.Context, u *User) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]User, error) {
	var users []User

	db := r.db.WithContext(ctx).Model(&User{})
	if filter.DepartmentID != "" {
		db = db.Scopes(scope.Department(filter.DepartmentID))
	}
	if filter.Role != "" {
		db = db.Where("role = ?", filter.Role)
	}
	if filter.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}

	err := db.Order("full_name ASC").Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
