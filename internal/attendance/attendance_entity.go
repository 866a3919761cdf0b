package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "present"
	StatusHalfDay = "half_day"
)

const WorkFromHomeNote = "Work From Home - Auto Marked"

type Attendance struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	EmployeeID  uint            `gorm:"column:employee_id;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Date        time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2;index"`
	CheckIn     *time.Time      `gorm:"column:check_in;type:timestamptz"`
	CheckOut    *time.Time      `gorm:"column:check_out;type:timestamptz"`
	Status      string          `gorm:"column:status;type:varchar(20);not null;default:present"`
	IsLate      bool            `gorm:"column:is_late;not null;default:false"`
	HoursWorked decimal.Decimal `gorm:"column:hours_worked;type:numeric(5,2);not null;default:0"`
	Notes       *string         `gorm:"column:notes;type:text"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
	Employee    *EmployeeRef    `gorm:"foreignKey:EmployeeID;references:ID;-:migration"`
}

func (Attendance) TableName() string {
	return "attendances"
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
