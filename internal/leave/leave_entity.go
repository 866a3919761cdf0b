package leave

import (
	"time"

	"leavesync/internal/domain"

	"github.com/shopspring/decimal"
)

type Leave struct {
	ID         uint `gorm:"column:id;primaryKey"`
	EmployeeID uint `gorm:"column:employee_id;not null;index:idx_leaves_employee_dates"`

	LeaveType  domain.LeaveType `gorm:"column:leave_type;type:varchar(30);not null"`
	StartDate  time.Time        `gorm:"column:start_date;type:date;not null;index:idx_leaves_employee_dates"`
	EndDate    time.Time        `gorm:"column:end_date;type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays  decimal.Decimal  `gorm:"column:total_days;type:numeric(6,2);not null"`
	Reason     string           `gorm:"column:reason;type:text"`
	IsSandwich bool             `gorm:"column:is_sandwich;not null;default:false"`
	ProofURL   *string          `gorm:"column:proof_url;type:text"`

	Status          Status     `gorm:"column:status;type:varchar(20);not null;default:pending;index:idx_leaves_status"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text"`
	ApprovedBy      *uint      `gorm:"column:approved_by"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID;-:migration"`
}

func (Leave) TableName() string {
	return "leaves"
}

// EmployeeRef is the read-only slice of an employee shown next to a leave.
type EmployeeRef struct {
	ID                 uint            `gorm:"primaryKey"`
	Name               string          `gorm:"column:name"`
	EmployeeCode       string          `gorm:"column:employee_code"`
	Department         *string         `gorm:"column:department"`
	SickLeaveBalance   decimal.Decimal `gorm:"column:sick_leave_balance"`
	CasualLeaveBalance decimal.Decimal `gorm:"column:casual_leave_balance"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
