package employee

import (
	"time"

	"leavesync/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	RoleAdmin    = string(domain.RoleAdmin)
	RoleManager  = string(domain.RoleManager)
	RoleEmployee = string(domain.RoleEmployee)
)

func ValidRole(role string) bool {
	return domain.Role(role).Valid()
}

var (
	DefaultSickBalance         = decimal.NewFromInt(7)
	DefaultCasualBalance       = decimal.NewFromInt(7)
	DefaultMedicalBalance      = decimal.Zero
	DefaultWorkFromHomeBalance = decimal.NewFromInt(5)
)

type Employee struct {
	ID                  uint            `gorm:"primaryKey"`
	EmployeeCode        string          `gorm:"type:varchar(32);not null;uniqueIndex:uq_employees_employee_code"`
	Name                string          `gorm:"type:varchar(255);not null"`
	Email               string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	PasswordHash        string          `gorm:"type:varchar(255);not null"`
	Role                string          `gorm:"type:varchar(20);not null;default:'employee'"`
	Department          *string         `gorm:"type:varchar(100)"`
	Position            *string         `gorm:"type:varchar(100)"`
	JoinDate            time.Time       `gorm:"type:date;not null"`
	SickLeaveBalance    decimal.Decimal `gorm:"type:numeric(6,2);not null;default:7"`
	CasualLeaveBalance  decimal.Decimal `gorm:"type:numeric(6,2);not null;default:7"`
	MedicalLeaveBalance decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	WorkFromHomeBalance decimal.Decimal `gorm:"type:numeric(6,2);not null;default:5"`
	ResetToken          *string         `gorm:"type:varchar(64);index"`
	ResetTokenExpiry    *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Employee) TableName() string {
	return "employees"
}
