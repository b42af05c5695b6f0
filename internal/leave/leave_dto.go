package leave

import (
	"time"

	"cdbl-lms/internal/shared/dateutil"
)

type CreateLeaveRequest struct {
	LeaveType           string `json:"leave_type" binding:"required,oneof=EARNED CASUAL MEDICAL EXTRAORDINARY MATERNITY PATERNITY STUDY"`
	StartDate           string `json:"start_date" binding:"required"`
	EndDate             string `json:"end_date" binding:"required"`
	Reason              string `json:"reason" binding:"max=1000"`
	CertificateAttached bool   `json:"certificate_attached"`
	Submit              bool   `json:"submit"`
}

type UpdateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=EARNED CASUAL MEDICAL EXTRAORDINARY MATERNITY PATERNITY STUDY"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"max=1000"`
}

type DecisionRequest struct {
	Comment string `json:"comment" binding:"max=1000"`
}

type ListLeaveQuery struct {
	Status    string `form:"status"`
	LeaveType string `form:"leave_type"`
	From      string `form:"from"`
	To        string `form:"to"`
	UserID    string `form:"user_id"`
	All       bool   `form:"all"`
}

type LeaveResponse struct {
	ID                  string  `json:"id"`
	ReferenceNo         string  `json:"reference_no"`
	RequesterID         string  `json:"requester_id"`
	LeaveType           string  `json:"leave_type"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	WorkingDays         int     `json:"working_days"`
	Reason              string  `json:"reason"`
	Status              string  `json:"status"`
	CurrentStage        int     `json:"current_stage"`
	CertificateAttached bool    `json:"certificate_attached"`
	SubmittedAt         *string `json:"submitted_at,omitempty"`
	Version             int     `json:"version"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type StepResponse struct {
	Sequence     int     `json:"sequence"`
	ApproverRole string  `json:"approver_role"`
	ApproverID   *string `json:"approver_id,omitempty"`
	Decision     string  `json:"decision"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	Comment      string  `json:"comment,omitempty"`
}

type VersionResponse struct {
	Version   int      `json:"version"`
	Action    string   `json:"action"`
	ActorID   string   `json:"actor_id"`
	ActorRole string   `json:"actor_role"`
	Snapshot  Snapshot `json:"snapshot"`
	CreatedAt string   `json:"created_at"`
}

type LeaveDetailResponse struct {
	LeaveResponse
	Steps []StepResponse `json:"steps"`
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                  l.ID.String(),
		ReferenceNo:         l.ReferenceNo,
		RequesterID:         l.RequesterID.String(),
		LeaveType:           l.LeaveType,
		StartDate:           dateutil.Format(l.StartDate),
		EndDate:             dateutil.Format(l.EndDate),
		WorkingDays:         l.WorkingDays,
		Reason:              l.Reason,
		Status:              l.Status,
		CurrentStage:        l.CurrentStage,
		CertificateAttached: l.CertificateAttached,
		Version:             l.Version,
		CreatedAt:           l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           l.UpdatedAt.Format(time.RFC3339),
	}
	if l.SubmittedAt != nil {
		v := l.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, mapToResponse(l))
	}
	return out
}

func mapStepResponse(s ApprovalStep) StepResponse {
	resp := StepResponse{
		Sequence:     s.Sequence,
		ApproverRole: s.ApproverRole,
		Decision:     s.Decision,
		Comment:      s.Comment,
	}
	if s.ApproverID != nil {
		v := s.ApproverID.String()
		resp.ApproverID = &v
	}
	if s.DecidedBy != nil {
		v := s.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if s.DecidedAt != nil {
		v := s.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapStepsResponse(steps []ApprovalStep) []StepResponse {
	out := make([]StepResponse, 0, len(steps))
	for _, s := range steps {
		out = append(out, mapStepResponse(s))
	}
	return out
}
