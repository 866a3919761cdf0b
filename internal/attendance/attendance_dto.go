package attendance

import "github.com/shopspring/decimal"

type CheckInRequest struct {
	Notes *string `json:"notes"`
}

type CheckOutRequest struct {
	Notes *string `json:"notes"`
}

type AttendanceResponse struct {
	ID           uint            `json:"id"`
	EmployeeID   uint            `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	EmployeeCode string          `json:"employee_code,omitempty"`
	Department   *string         `json:"department,omitempty"`
	Date         string          `json:"date"`
	CheckIn      *string         `json:"check_in,omitempty"`
	CheckOut     *string         `json:"check_out,omitempty"`
	Status       string          `json:"status"`
	IsLate       bool            `json:"is_late"`
	HoursWorked  decimal.Decimal `json:"hours_worked"`
	Notes        *string         `json:"notes,omitempty"`
}
