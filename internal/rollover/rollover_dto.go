package rollover

import "github.com/shopspring/decimal"

type ReportRow struct {
	EmployeeID       uint            `json:"employee_id"`
	Employee         string          `json:"employee"`
	OldCasual        decimal.Decimal `json:"old_casual"`
	CasualRollover   decimal.Decimal `json:"casual_rollover"`
	CasualEncash     decimal.Decimal `json:"casual_encash"`
	NewCasualBalance decimal.Decimal `json:"new_casual_balance"`
	NewSickBalance   decimal.Decimal `json:"new_sick_balance"`
}

type Result struct {
	Mode   string      `json:"mode"`
	Year   int         `json:"year"`
	Report []ReportRow `json:"report"`
}
