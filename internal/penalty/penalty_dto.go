package penalty

import "github.com/shopspring/decimal"

type IssuePenaltyRequest struct {
	EmployeeID  uint            `json:"employee_id" binding:"required"`
	PenaltyType string          `json:"penalty_type" binding:"required"`
	Description string          `json:"description"`
	PenaltyDays decimal.Decimal `json:"penalty_days"`
}

type UpdatePenaltyStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active resolved"`
}

type PenaltyResponse struct {
	ID           uint            `json:"id"`
	EmployeeID   uint            `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	EmployeeCode string          `json:"employee_code,omitempty"`
	Department   *string         `json:"department,omitempty"`
	PenaltyType  string          `json:"penalty_type"`
	Description  string          `json:"description"`
	PenaltyDays  decimal.Decimal `json:"penalty_days"`
	AppliedDate  string          `json:"applied_date"`
	Status       string          `json:"status"`
	IssuedBy     *uint           `json:"issued_by,omitempty"`
}
