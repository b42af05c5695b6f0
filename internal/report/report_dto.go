package report

type DashboardResponse struct {
	Year             int              `json:"year"`
	ByStatus         map[string]int64 `json:"by_status"`
	ApprovedDays     map[string]int   `json:"approved_days_by_type"`
	PendingApprovals int64            `json:"pending_approvals"`
	OnLeaveToday     int              `json:"on_leave_today"`
}

type ExportQuery struct {
	From         string `form:"from"`
	To           string `form:"to"`
	Status       string `form:"status"`
	LeaveType    string `form:"leave_type"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
}

// File is a generated document ready to be streamed to the client.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)
