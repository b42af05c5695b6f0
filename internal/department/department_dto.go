package department

type CreateDepartmentRequest struct {
	Name   string  `json:"name" binding:"required"`
	HeadID *string `json:"head_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name   string  `json:"name" binding:"required"`
	HeadID *string `json:"head_id" binding:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	HeadID    *string `json:"head_id,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
