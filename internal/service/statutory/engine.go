package statutory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagebook/wagebook-backend-go/internal/domain/payrollrun"
)

// Statutory rates and ceilings. PT and LWF follow the Maharashtra schedules.
var (
	epfEmployeeRate = decimal.NewFromFloat(0.12)
	epsRate         = decimal.NewFromFloat(0.0833)
	epsWageCeiling  = decimal.NewFromInt(15000)

	esicEmployeeRate = decimal.NewFromFloat(0.0075)
	esicEmployerRate = decimal.NewFromFloat(0.0325)
	esicWageCeiling  = decimal.NewFromInt(21000)

	ptSlabLower     = decimal.NewFromInt(7500)
	ptSlabUpper     = decimal.NewFromInt(10000)
	ptLowerAmount   = decimal.NewFromInt(175)
	ptUpperAmount   = decimal.NewFromInt(200)
	ptFebruaryExtra = decimal.NewFromInt(300)

	tdsStandardDeduction = decimal.NewFromInt(50000)
	tdsRebateThreshold   = decimal.NewFromInt(700000)
	tdsCessRate          = decimal.NewFromFloat(0.04)

	lwfEmployeeShare = decimal.NewFromInt(12)
	lwfEmployerShare = decimal.NewFromInt(36)
)

// tdsSlabs is the new-regime schedule: upper bound (zero = open-ended) and
// marginal rate, applied to taxable income after the standard deduction.
var tdsSlabs = []struct {
	upTo decimal.Decimal
	rate decimal.Decimal
}{
	{decimal.NewFromInt(300000), decimal.Zero},
	{decimal.NewFromInt(700000), decimal.NewFromFloat(0.05)},
	{decimal.NewFromInt(1000000), decimal.NewFromFloat(0.10)},
	{decimal.NewFromInt(1200000), decimal.NewFromFloat(0.15)},
	{decimal.NewFromInt(1500000), decimal.NewFromFloat(0.20)},
	{decimal.Zero, decimal.NewFromFloat(0.30)},
}

// Engine implements payrollrun.Calculator with pure arithmetic; it holds no
// state and is safe for concurrent use.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

var _ payrollrun.Calculator = (*Engine)(nil)

// WageDefinition computes the PF wage base: basic + DA + retaining
// allowance. The definition is compliant only while the excluded allowances
// do not exceed that base (the half-of-total-remuneration test).
func (e *Engine) WageDefinition(basic, da, retaining, exclusions decimal.Decimal) payrollrun.WageBase {
	wages := basic.Add(da).Add(retaining)
	return payrollrun.WageBase{
		Wages:     wages,
		Compliant: exclusions.LessThanOrEqual(wages),
	}
}

// EPF splits the 12% contributions: the employee side is 12% of the wage
// base, the employer side is 8.33% EPS on the base capped at 15000 with the
// remainder of 12% going to EPF. Rounded to the nearest rupee.
func (e *Engine) EPF(wageBase decimal.Decimal) payrollrun.EPFShares {
	if !wageBase.IsPositive() {
		return payrollrun.EPFShares{
			EmployeeShare: decimal.Zero,
			EmployerEPF:   decimal.Zero,
			EmployerEPS:   decimal.Zero,
		}
	}

	employeeShare := wageBase.Mul(epfEmployeeRate).Round(0)

	epsBase := wageBase
	if epsBase.GreaterThan(epsWageCeiling) {
		epsBase = epsWageCeiling
	}
	eps := epsBase.Mul(epsRate).Round(0)
	employerEPF := wageBase.Mul(epfEmployeeRate).Round(0).Sub(eps)

	return payrollrun.EPFShares{
		EmployeeShare: employeeShare,
		EmployerEPF:   employerEPF,
		EmployerEPS:   eps,
	}
}

// ESIC applies only while gross stays within the wage ceiling. Shares are
// rounded up to the next rupee, as the scheme prescribes.
func (e *Engine) ESIC(gross decimal.Decimal) payrollrun.ESICShares {
	if !gross.IsPositive() || gross.GreaterThan(esicWageCeiling) {
		return payrollrun.ESICShares{
			EmployeeShare: decimal.Zero,
			EmployerShare: decimal.Zero,
			Applicable:    false,
		}
	}
	return payrollrun.ESICShares{
		EmployeeShare: gross.Mul(esicEmployeeRate).RoundUp(0),
		EmployerShare: gross.Mul(esicEmployerRate).RoundUp(0),
		Applicable:    true,
	}
}

// ProfessionalTax is slab-based on monthly gross; February carries the
// year-balancing surcharge in place of the normal top-slab amount.
func (e *Engine) ProfessionalTax(gross decimal.Decimal, month int) decimal.Decimal {
	switch {
	case gross.LessThanOrEqual(ptSlabLower):
		return decimal.Zero
	case gross.LessThanOrEqual(ptSlabUpper):
		return ptLowerAmount
	case month == int(time.February):
		return ptFebruaryExtra
	default:
		return ptUpperAmount
	}
}

// TDS estimates salary TDS for the year: standard deduction, slab tax,
// full section 87A rebate under the threshold, then 4% cess. The monthly
// figure is a flat one-twelfth.
func (e *Engine) TDS(annualGross decimal.Decimal) payrollrun.TDSResult {
	taxable := annualGross.Sub(tdsStandardDeduction)
	if !taxable.IsPositive() {
		return payrollrun.TDSResult{MonthlyTDS: decimal.Zero, AnnualTax: decimal.Zero}
	}
	if taxable.LessThanOrEqual(tdsRebateThreshold) {
		return payrollrun.TDSResult{MonthlyTDS: decimal.Zero, AnnualTax: decimal.Zero}
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, slab := range tdsSlabs {
		upper := slab.upTo
		open := upper.IsZero()
		if !open && taxable.LessThanOrEqual(lower) {
			break
		}

		var span decimal.Decimal
		if open || taxable.LessThanOrEqual(upper) {
			span = taxable.Sub(lower)
		} else {
			span = upper.Sub(lower)
		}
		if span.IsPositive() {
			tax = tax.Add(span.Mul(slab.rate))
		}
		if open || taxable.LessThanOrEqual(upper) {
			break
		}
		lower = upper
	}

	annual := tax.Add(tax.Mul(tdsCessRate)).Round(0)
	monthly := annual.Div(decimal.NewFromInt(12)).Round(0)
	return payrollrun.TDSResult{MonthlyTDS: monthly, AnnualTax: annual}
}

// LWF is the flat half-yearly contribution, collected with the June and
// December payrolls only.
func (e *Engine) LWF(month int, applicable bool) payrollrun.LWFShares {
	if !applicable || (month != int(time.June) && month != int(time.December)) {
		return payrollrun.LWFShares{EmployeeShare: decimal.Zero, EmployerShare: decimal.Zero}
	}
	return payrollrun.LWFShares{
		EmployeeShare: lwfEmployeeShare,
		EmployerShare: lwfEmployerShare,
	}
}
