package leave

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cdbl-lms/internal/department"
	"cdbl-lms/internal/user"
)

// Directory resolves requesters and department heads for step building.
type Directory interface {
	FindUser(ctx context.Context, id string) (*user.User, error)
	DepartmentHead(ctx context.Context, departmentID *uuid.UUID) (*uuid.UUID, error)
}

type directory struct {
	users       user.Repository
	departments department.Repository
}

func NewDirectory(users user.Repository, departments department.Repository) Directory {
	return &directory{users: users, departments: departments}
}

func (d *directory) FindUser(ctx context.Context, id string) (*user.User, error) {
	return d.users.FindByID(ctx, id)
}

func (d *directory) DepartmentHead(ctx context.Context, departmentID *uuid.UUID) (*uuid.UUID, error) {
	if departmentID == nil {
		return nil, nil
	}
	dept, err := d.departments.FindByID(ctx, departmentID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dept.HeadID, nil
}
