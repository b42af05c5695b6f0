package user

type CreateUserRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	Role           string  `json:"role" binding:"required,oneof=EMPLOYEE DEPT_HEAD HR_ADMIN HR_HEAD CEO SYSTEM_ADMIN"`
	DepartmentID   *string `json:"department_id" binding:"omitempty,uuid"`
	JoinDate       string  `json:"join_date" binding:"required"`
	RetirementDate *string `json:"retirement_date"`
}

type UpdateUserRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Role           string  `json:"role" binding:"required,oneof=EMPLOYEE DEPT_HEAD HR_ADMIN HR_HEAD CEO SYSTEM_ADMIN"`
	DepartmentID   *string `json:"department_id" binding:"omitempty,uuid"`
	JoinDate       string  `json:"join_date" binding:"required"`
	RetirementDate *string `json:"retirement_date"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type ForceResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UserResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	DepartmentID   *string `json:"department_id,omitempty"`
	JoinDate       string  `json:"join_date"`
	RetirementDate *string `json:"retirement_date,omitempty"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
}
