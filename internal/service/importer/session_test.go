package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
	"github.com/wagebook/wagebook-backend-go/internal/domain/payrollrun"
	"github.com/wagebook/wagebook-backend-go/internal/repository/memory"
)

// musterMatrix is a realistic register: title block, canonical header with
// the 1..31 attendance block and no code or total-days column, one data row,
// and a totals footer.
func musterMatrix() importer.Matrix {
	dataRow := []string{"1", "Asha Rao", "12000", "2000", "14000"}
	for i := 0; i < 24; i++ {
		dataRow = append(dataRow, "P")
	}
	for i := 0; i < 7; i++ {
		dataRow = append(dataRow, "A")
	}
	dataRow = append(dataRow, "13800")

	return importer.Matrix{
		{"Name of Establishment: Sharma Textiles"},
		{},
		musterHeader(
			[]string{"S.No", "Name", "Basic Wages", "HRA", "Gross Wages"},
			[]string{"Net Wages"},
		),
		dataRow,
		{"", "Grand Total", "12000", "2000", "14000"},
	}
}

func TestBuildSession_RegisterWorkbook(t *testing.T) {
	t.Parallel()

	session, err := BuildSession(musterMatrix(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, session.HeaderRow)
	assert.Equal(t, 3, session.DataStartRow)

	start, _ := session.Mapping.Get(importer.RoleAttendanceStart)
	end, _ := session.Mapping.Get(importer.RoleAttendanceEnd)
	assert.Equal(t, 5, start)
	assert.Equal(t, 35, end)

	// No total-days column, so one of the four anchor roles is missing.
	assert.InDelta(t, 0.75, session.Confidence, 0.0001)

	require.Len(t, session.Rows, 1, "the totals footer is not a data row")
	row := session.Rows[0]
	assert.True(t, row.Valid())
	assert.Equal(t, "Asha Rao", row.Name)
	assert.True(t, row.NormalWages.Equal(decimal.NewFromInt(12000)))
	assert.True(t, row.GrossWages.Equal(decimal.NewFromInt(14000)))
	assert.Equal(t, 24, row.Attendance.DaysWorked)
	assert.Len(t, row.Attendance.DailyMarks, 31)
}

func TestBuildSessionThenRun_EndToEnd(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	svc := newTestService(store)
	ctx := context.Background()

	session, err := BuildSession(musterMatrix(), nil)
	require.NoError(t, err)

	summary, err := svc.Run(ctx, session, "co-1", "2025-06", 26, importer.ModeAll)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.EmployeesImported)
	assert.Empty(t, summary.DBFailures)

	emps, err := store.GetByCompanyID(ctx, "co-1")
	require.NoError(t, err)
	require.Len(t, emps, 1)
	assert.Equal(t, "Asha Rao", emps[0].FullName)
	assert.True(t, strings.HasPrefix(emps[0].EmployeeCode, "EMP-"))
	assert.True(t, emps[0].EPFApplicable)
	assert.True(t, emps[0].ESICApplicable)

	run, err := store.GetByMonth(ctx, "co-1", "2025-06")
	require.NoError(t, err)
	assert.Equal(t, payrollrun.StatusImported, run.Status)
	assert.Equal(t, 26, run.WorkingDays)

	atts, err := store.Attendance().GetByRunID(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, 24, atts[0].DaysPresent)
	assert.Equal(t, 2, atts[0].UnpaidLeave)
	assert.Len(t, atts[0].DailyMarks, 31)

	details, err := store.Details().GetByRunID(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	d := details[0]

	// 24 of 26 days on 12000 basic / 14000 gross in June.
	assert.True(t, d.BasicEarned.Equal(decimal.RequireFromString("11076.92")), "basic %s", d.BasicEarned)
	assert.True(t, d.HRAEarned.Equal(decimal.RequireFromString("1846.15")), "hra %s", d.HRAEarned)
	assert.True(t, d.GrossEarned.Equal(decimal.RequireFromString("12923.08")), "gross %s", d.GrossEarned)
	assert.True(t, d.EPFEmployee.Equal(decimal.NewFromInt(1329)), "epf %s", d.EPFEmployee)
	assert.True(t, d.EPSEmployer.Equal(decimal.NewFromInt(923)), "eps %s", d.EPSEmployer)
	assert.True(t, d.EPFEmployer.Equal(decimal.NewFromInt(406)), "employer epf %s", d.EPFEmployer)
	assert.True(t, d.ESICEmployee.Equal(decimal.NewFromInt(97)), "esic %s", d.ESICEmployee)
	assert.True(t, d.ESICEmployer.Equal(decimal.NewFromInt(421)), "employer esic %s", d.ESICEmployer)
	assert.True(t, d.PTAmount.Equal(decimal.NewFromInt(200)), "pt %s", d.PTAmount)
	assert.True(t, d.TDSAmount.IsZero(), "tds %s", d.TDSAmount)
	assert.True(t, d.LWFEmployee.Equal(decimal.NewFromInt(12)), "lwf %s", d.LWFEmployee)
	assert.True(t, d.TotalDeducted.Equal(decimal.NewFromInt(1638)), "deducted %s", d.TotalDeducted)
	assert.True(t, d.NetPay.Equal(decimal.RequireFromString("11285.08")), "net %s", d.NetPay)
}
