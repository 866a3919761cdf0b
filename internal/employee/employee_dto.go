package employee

import (
	"leavesync/internal/attendance"

	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode        string           `json:"employee_code" binding:"required,max=32"`
	Name                string           `json:"name" binding:"required"`
	Email               string           `json:"email" binding:"required,email"`
	Password            string           `json:"password" binding:"required,min=6"`
	Role                string           `json:"role" binding:"omitempty,oneof=admin manager employee"`
	Department          *string          `json:"department"`
	Position            *string          `json:"position"`
	JoinDate            string           `json:"join_date"`
	SickLeaveBalance    *decimal.Decimal `json:"sick_leave_balance"`
	CasualLeaveBalance  *decimal.Decimal `json:"casual_leave_balance"`
	MedicalLeaveBalance *decimal.Decimal `json:"medical_leave_balance"`
	WorkFromHomeBalance *decimal.Decimal `json:"work_from_home_balance"`
}

type EmployeeResponse struct {
	ID                  uint            `json:"id"`
	EmployeeCode        string          `json:"employee_code"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	Role                string          `json:"role"`
	Department          *string         `json:"department"`
	Position            *string         `json:"position"`
	JoinDate            string          `json:"join_date"`
	SickLeaveBalance    decimal.Decimal `json:"sick_leave_balance"`
	CasualLeaveBalance  decimal.Decimal `json:"casual_leave_balance"`
	MedicalLeaveBalance decimal.Decimal `json:"medical_leave_balance"`
	WorkFromHomeBalance decimal.Decimal `json:"work_from_home_balance"`
}

type ProfileResponse struct {
	EmployeeResponse
	TodayAttendance *attendance.AttendanceResponse `json:"today_attendance"`
}
