package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cdbl-lms/internal/domain"
)

type User struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName       string         `gorm:"column:full_name;type:varchar(255);not null"`
	Email          string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	PasswordHash   string         `gorm:"column:password_hash;type:text;not null"`
	Role           string         `gorm:"column:role;type:varchar(30);not null;default:EMPLOYEE"`
	DepartmentID   *uuid.UUID     `gorm:"column:department_id;type:uuid;index"`
	JoinDate       time.Time      `gorm:"column:join_date;type:date;not null"`
	RetirementDate *time.Time     `gorm:"column:retirement_date;type:date"`
	IsActive       bool           `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

func (u User) RoleName() domain.Role {
	return domain.Role(u.Role)
}

type ListFilter struct {
	DepartmentID string
	Role         string
	ActiveOnly   bool
}
