package payrollrun

import "github.com/shopspring/decimal"

// WageBase is the outcome of the statutory wage-definition test.
type WageBase struct {
	Wages     decimal.Decimal
	Compliant bool
}

type EPFShares struct {
	EmployeeShare decimal.Decimal
	EmployerEPF   decimal.Decimal
	EmployerEPS   decimal.Decimal
}

type ESICShares struct {
	EmployeeShare decimal.Decimal
	EmployerShare decimal.Decimal
	Applicable    bool
}

type TDSResult struct {
	MonthlyTDS decimal.Decimal
	AnnualTax  decimal.Decimal
}

type LWFShares struct {
	EmployeeShare decimal.Decimal
	EmployerShare decimal.Decimal
}

// Calculator is the statutory calculation engine the import pipeline uses
// to derive payroll figures. All methods are pure.
type Calculator interface {
	WageDefinition(basic, da, retaining, exclusions decimal.Decimal) WageBase
	EPF(wageBase decimal.Decimal) EPFShares
	ESIC(gross decimal.Decimal) ESICShares
	ProfessionalTax(gross decimal.Decimal, month int) decimal.Decimal
	TDS(annualGross decimal.Decimal) TDSResult
	LWF(month int, applicable bool) LWFShares
}
