package rollover

import "github.com/shopspring/decimal"

// Plan computes one employee's year-end figures: at most five casual days carry
// over, the excess is encashed, and both sick and casual restart at seven.
// A negative casual balance carries over as-is and nothing is encashed.
func Plan(employeeID uint, name string, casual decimal.Decimal) ReportRow {
	carry := decimal.Min(casual, MaxCasualCarryOver)
	encash := decimal.Max(decimal.Zero, casual.Sub(MaxCasualCarryOver))
	return ReportRow{
		EmployeeID:       employeeID,
		Employee:         name,
		OldCasual:        casual,
		CasualRollover:   carry,
		CasualEncash:     encash,
		NewCasualBalance: AnnualCasualDays.Add(carry),
		NewSickBalance:   AnnualSickDays,
	}
}
