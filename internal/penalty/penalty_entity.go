package penalty

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeLateArrival   Type = "late_arrival"
	TypeMissedCheckIn Type = "missed_check_in"
	TypeDisciplinary  Type = "disciplinary"
	TypeOther         Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeLateArrival, TypeMissedCheckIn, TypeDisciplinary, TypeOther:
		return true
	}
	return false
}

const (
	StatusActive   = "active"
	StatusResolved = "resolved"
)

type Penalty struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	EmployeeID  uint            `gorm:"column:employee_id;not null;index"`
	PenaltyType Type            `gorm:"column:penalty_type;type:varchar(30);not null"`
	Description string          `gorm:"column:description;type:text"`
	PenaltyDays decimal.Decimal `gorm:"column:penalty_days;type:numeric(6,2);not null"`
	AppliedDate time.Time       `gorm:"column:applied_date;type:date;not null;index"`
	Status      string          `gorm:"column:status;type:varchar(20);not null;default:active;index"`
	// IssuedBy is nil for penalties raised automatically at check-in.
	IssuedBy  *uint     `gorm:"column:issued_by"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID;-:migration"`
}

func (Penalty) TableName() string {
	return "penalties"
}

type EmployeeRef struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"column:name"`
	EmployeeCode string  `gorm:"column:employee_code"`
	Department   *string `gorm:"column:department"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
