package leave

import "github.com/shopspring/decimal"

type ApplyLeaveRequest struct {
	LeaveType  string           `json:"leave_type" binding:"required"`
	StartDate  string           `json:"start_date" binding:"required"`
	EndDate    string           `json:"end_date" binding:"required"`
	Days       *decimal.Decimal `json:"days"`
	Reason     string           `json:"reason"`
	IsSandwich bool             `json:"is_sandwich"`
	ProofURL   string           `json:"proof_url"`
}

type DecideLeaveRequest struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

type LeaveResponse struct {
	ID              uint            `json:"id"`
	EmployeeID      uint            `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	EmployeeCode    string          `json:"employee_code,omitempty"`
	LeaveType       string          `json:"leave_type"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	TotalDays       decimal.Decimal `json:"total_days"`
	Reason          string          `json:"reason"`
	IsSandwich      bool            `json:"is_sandwich"`
	ProofURL        *string         `json:"proof_url,omitempty"`
	Status          Status          `json:"status"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	ApprovedBy      *uint           `json:"approved_by,omitempty"`
	ApprovedAt      *string         `json:"approved_at,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

// PendingLeaveResponse is a queue entry for reviewers, with the balances
// they need to judge the request.
type PendingLeaveResponse struct {
	LeaveResponse
	Department         *string         `json:"department,omitempty"`
	SickLeaveBalance   decimal.Decimal `json:"sick_leave_balance"`
	CasualLeaveBalance decimal.Decimal `json:"casual_leave_balance"`
}
