package rules

import (
	"context"
	"time"

	ruleserrors "leavesync/internal/rules/errors"
)

const (
	MaxSandwichInWindow  = 2
	SandwichWindowMonths = 4
	SandwichNoticeDays   = 7
)

type SandwichCounter interface {
	// CountApprovedSandwich counts approved sandwich requests starting on or after since.
	CountApprovedSandwich(ctx context.Context, employeeID uint, since time.Time) (int64, error)
}

// SandwichPolicy caps approved sandwich leave per rolling window and enforces
// the notice period. Notice is measured in calendar days in loc.
type SandwichPolicy struct {
	counter SandwichCounter
	loc     *time.Location
}

func NewSandwichPolicy(counter SandwichCounter, loc *time.Location) *SandwichPolicy {
	if loc == nil {
		loc = time.Local
	}
	return &SandwichPolicy{counter: counter, loc: loc}
}

// Check runs the cap then the notice rule.
func (p *SandwichPolicy) Check(ctx context.Context, employeeID uint, startDate, now time.Time) error {
	if err := p.CheckCap(ctx, employeeID, now); err != nil {
		return err
	}
	return p.CheckNotice(startDate, now)
}

func (p *SandwichPolicy) CheckCap(ctx context.Context, employeeID uint, now time.Time) error {
	since := now.In(p.loc).AddDate(0, -SandwichWindowMonths, 0)
	count, err := p.counter.CountApprovedSandwich(ctx, employeeID, since)
	if err != nil {
		return err
	}
	if count >= MaxSandwichInWindow {
		return ruleserrors.ErrSandwichCapReached
	}
	return nil
}

func (p *SandwichPolicy) CheckNotice(startDate, now time.Time) error {
	if CalendarDaysBetween(now, startDate, p.loc) < SandwichNoticeDays {
		return ruleserrors.ErrSandwichNotice
	}
	return nil
}

// CalendarDaysBetween counts whole calendar days from a to b in loc. Times of day are ignored.
func CalendarDaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
