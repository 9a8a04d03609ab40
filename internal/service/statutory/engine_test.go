package statutory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestWageDefinition(t *testing.T) {
	t.Parallel()

	e := NewEngine()

	base := e.WageDefinition(d(10000), d(2000), d(500), d(5000))
	assert.True(t, base.Wages.Equal(d(12500)))
	assert.True(t, base.Compliant)

	// Exclusions above the PF base fail the half-of-remuneration test.
	base = e.WageDefinition(d(6000), d(0), d(0), d(9000))
	assert.True(t, base.Wages.Equal(d(6000)))
	assert.False(t, base.Compliant)
}

func TestEPF(t *testing.T) {
	t.Parallel()

	e := NewEngine()

	tests := []struct {
		name     string
		wageBase int64
		employee int64
		eps      int64
		epf      int64
	}{
		{"below eps ceiling", 12000, 1440, 1000, 440},
		{"at eps ceiling", 15000, 1800, 1250, 550},
		{"above eps ceiling eps stays capped", 30000, 3600, 1250, 2350},
		{"zero base", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.EPF(d(tt.wageBase))
			assert.True(t, got.EmployeeShare.Equal(d(tt.employee)), "employee share %s", got.EmployeeShare)
			assert.True(t, got.EmployerEPS.Equal(d(tt.eps)), "eps %s", got.EmployerEPS)
			assert.True(t, got.EmployerEPF.Equal(d(tt.epf)), "employer epf %s", got.EmployerEPF)

			// The employer side always adds back up to the 12%.
			total := got.EmployerEPF.Add(got.EmployerEPS)
			assert.True(t, total.Equal(got.EmployeeShare))
		})
	}
}

func TestESIC(t *testing.T) {
	t.Parallel()

	e := NewEngine()

	got := e.ESIC(d(18000))
	assert.True(t, got.Applicable)
	assert.True(t, got.EmployeeShare.Equal(d(135)))
	assert.True(t, got.EmployerShare.Equal(d(585)))

	// Fractional paise round up to the next rupee.
	got = e.ESIC(d(18100))
	assert.True(t, got.EmployeeShare.Equal(d(136)), "135.75 rounds up")
	assert.True(t, got.EmployerShare.Equal(d(589)), "588.25 rounds up")

	got = e.ESIC(d(21000))
	assert.True(t, got.Applicable, "the ceiling itself is in scheme")

	got = e.ESIC(d(21001))
	assert.False(t, got.Applicable)
	assert.True(t, got.EmployeeShare.IsZero())
	assert.True(t, got.EmployerShare.IsZero())

	got = e.ESIC(d(0))
	assert.False(t, got.Applicable)
}

func TestProfessionalTax(t *testing.T) {
	t.Parallel()

	e := NewEngine()

	assert.True(t, e.ProfessionalTax(d(7500), 6).IsZero())
	assert.True(t, e.ProfessionalTax(d(7501), 6).Equal(d(175)))
	assert.True(t, e.ProfessionalTax(d(10000), 6).Equal(d(175)))
	assert.True(t, e.ProfessionalTax(d(10001), 6).Equal(d(200)))
	assert.True(t, e.ProfessionalTax(d(50000), 6).Equal(d(200)))

	// February collects the year-balancing amount on the top slab only.
	assert.True(t, e.ProfessionalTax(d(12000), 2).Equal(d(300)))
	assert.True(t, e.ProfessionalTax(d(9000), 2).Equal(d(175)))
}

func TestTDS(t *testing.T) {
	t.Parallel()

	e := NewEngine()

	// Below the standard deduction.
	got := e.TDS(d(40000))
	assert.True(t, got.AnnualTax.IsZero())
	assert.True(t, got.MonthlyTDS.IsZero())

	// Taxable income within the 87A rebate threshold pays nothing.
	got = e.TDS(d(750000))
	assert.True(t, got.AnnualTax.IsZero())

	// 850000 gross: taxable 800000, slab tax 20000 + 10000, plus cess.
	got = e.TDS(d(850000))
	assert.True(t, got.AnnualTax.Equal(d(31200)), "annual %s", got.AnnualTax)
	assert.True(t, got.MonthlyTDS.Equal(d(2600)), "monthly %s", got.MonthlyTDS)

	// 2000000 gross: taxable 1950000 reaches the open-ended 30% slab.
	// 20000 + 30000 + 30000 + 60000 + 135000 = 275000, cess 11000.
	got = e.TDS(d(2000000))
	assert.True(t, got.AnnualTax.Equal(d(286000)), "annual %s", got.AnnualTax)
	assert.True(t, got.MonthlyTDS.Equal(d(23833)), "monthly %s", got.MonthlyTDS)
}

func TestLWF(t *testing.T) {
	t.Parallel()

	e := NewEngine()

	for month := 1; month <= 12; month++ {
		got := e.LWF(month, true)
		if month == 6 || month == 12 {
			assert.True(t, got.EmployeeShare.Equal(d(12)), "month %d", month)
			assert.True(t, got.EmployerShare.Equal(d(36)), "month %d", month)
		} else {
			assert.True(t, got.EmployeeShare.IsZero(), "month %d", month)
			assert.True(t, got.EmployerShare.IsZero(), "month %d", month)
		}
	}

	got := e.LWF(6, false)
	assert.True(t, got.EmployeeShare.IsZero(), "not applicable overrides the month")
}
