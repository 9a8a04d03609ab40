package payrollrun

import (
	"time"

	"github.com/shopspring/decimal"
)

type RunStatus string

const (
	StatusDraft    RunStatus = "draft"
	StatusImported RunStatus = "imported"
)

// PayrollRun is the monthly payroll container for a company. There is at
// most one per (company_id, month); re-imports mutate it in place.
type PayrollRun struct {
	ID          string
	CompanyID   string
	Month       string // YYYY-MM
	WorkingDays int
	Status      RunStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Attendance is one employee's attendance for a payroll run. Rows are
// replaced wholesale on re-import, never merged field by field.
type Attendance struct {
	ID           string
	PayrollRunID string
	EmployeeID   string
	DaysPresent  int
	UnpaidLeave  int
	DailyMarks   []string
	CreatedAt    time.Time
}

// PayrollDetail carries the derived payroll figures for one employee in one
// run. Every field is recomputed from the current import, nothing is cached
// from an earlier run.
type PayrollDetail struct {
	ID            string
	PayrollRunID  string
	EmployeeID    string
	DaysWorked    int
	BasicEarned   decimal.Decimal
	HRAEarned     decimal.Decimal
	GrossEarned   decimal.Decimal
	EPFEmployee   decimal.Decimal
	EPFEmployer   decimal.Decimal
	EPSEmployer   decimal.Decimal
	ESICEmployee  decimal.Decimal
	ESICEmployer  decimal.Decimal
	PTAmount      decimal.Decimal
	TDSAmount     decimal.Decimal
	LWFEmployee   decimal.Decimal
	LWFEmployer   decimal.Decimal
	Advances      decimal.Decimal
	Fines         decimal.Decimal
	Damages       decimal.Decimal
	TotalDeducted decimal.Decimal
	NetPay        decimal.Decimal
	CreatedAt     time.Time
}
