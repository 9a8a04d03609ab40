package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is one worker on a company's muster roll. The (CompanyID,
// EmployeeCode) pair is the identity key; wage fields and the statutory
// applicability flags are re-derived from the latest imported workbook,
// not carried forward.
type Employee struct {
	ID             string
	CompanyID      string
	EmployeeCode   string
	FullName       string
	Designation    *string
	Gender         Gender
	DateOfJoining  *time.Time
	NormalWages    decimal.Decimal
	HRAPayable     decimal.Decimal
	GrossWages     decimal.Decimal
	EPFApplicable  bool
	ESICApplicable bool
	PTApplicable   bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Gender string

const (
	Male        Gender = "Male"
	Female      Gender = "Female"
	Unspecified Gender = "Unspecified"
)
