package rollover

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ModeDryRun   = "DRY-RUN"
	ModeExecuted = "EXECUTED"
)

var (
	MaxCasualCarryOver = decimal.NewFromInt(5)
	AnnualSickDays     = decimal.NewFromInt(7)
	AnnualCasualDays   = decimal.NewFromInt(7)
)

// Run marks a year as rolled over; the unique year blocks a second execution.
type Run struct {
	ID            uint      `gorm:"primaryKey"`
	Year          int       `gorm:"not null;uniqueIndex:uq_rollover_runs_year"`
	ExecutedBy    uint      `gorm:"not null"`
	EmployeeCount int       `gorm:"not null"`
	ExecutedAt    time.Time `gorm:"not null"`
}

func (Run) TableName() string {
	return "rollover_runs"
}
