package rules

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type LatenessPolicy struct {
	ScheduledHour   int
	ScheduledMinute int
	Grace           time.Duration
	PenaltyDays     decimal.Decimal
	Location        *time.Location
}

// NewLatenessPolicy parses scheduledStart as HH:MM.
func NewLatenessPolicy(scheduledStart string, grace time.Duration, penaltyDays decimal.Decimal, loc *time.Location) (LatenessPolicy, error) {
	t, err := time.Parse("15:04", scheduledStart)
	if err != nil {
		return LatenessPolicy{}, fmt.Errorf("invalid scheduled start %q: %w", scheduledStart, err)
	}
	if loc == nil {
		loc = time.Local
	}
	return LatenessPolicy{
		ScheduledHour:   t.Hour(),
		ScheduledMinute: t.Minute(),
		Grace:           grace,
		PenaltyDays:     penaltyDays,
		Location:        loc,
	}, nil
}

func DefaultLatenessPolicy(loc *time.Location) LatenessPolicy {
	p, _ := NewLatenessPolicy("09:00", 15*time.Minute, decimal.RequireFromString("0.25"), loc)
	return p
}

// Threshold is scheduled start plus grace on the check-in's calendar day.
func (p LatenessPolicy) Threshold(checkIn time.Time) time.Time {
	local := checkIn.In(p.Location)
	y, m, d := local.Date()
	return time.Date(y, m, d, p.ScheduledHour, p.ScheduledMinute, 0, 0, p.Location).Add(p.Grace)
}

// IsLate is true only strictly after the threshold.
func (p LatenessPolicy) IsLate(checkIn time.Time) bool {
	return checkIn.After(p.Threshold(checkIn))
}

func (p LatenessPolicy) Penalty(checkIn time.Time) decimal.Decimal {
	if p.IsLate(checkIn) {
		return p.PenaltyDays
	}
	return decimal.Zero
}
