package importer

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
)

var testMapping = importer.ColumnMapping{
	importer.RoleName:            1,
	importer.RoleNormalWages:     2,
	importer.RoleGrossWages:      3,
	importer.RoleNetWages:        4,
	importer.RoleTotalDaysWorked: 5,
}

func dataRow(name, basic, gross, net, days string) []string {
	return []string{"1", name, basic, gross, net, days}
}

func TestParseMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		want     string
		negative bool
	}{
		{"plain", "12000", "12000", false},
		{"thousands separator", "12,000.50", "12000.5", false},
		{"currency glyph", "₹ 14,000", "14000", false},
		{"rs prefix", "Rs.500", "500", false},
		{"blank coerces to zero", "", "0", false},
		{"garbage coerces to zero", "n/a", "0", false},
		{"negative rejected via abs", "-500", "500", true},
		{"bare minus", "-", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, neg := ParseMoney(tt.raw)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
			assert.Equal(t, tt.negative, neg)
			assert.False(t, got.IsNegative(), "money is never negative")
		})
	}
}

func TestParseMoney_IdempotentOnCleanInput(t *testing.T) {
	t.Parallel()

	once, _ := ParseMoney("1200.75")
	twice, _ := ParseMoney(once.String())
	assert.True(t, once.Equal(twice))
}

func TestParseRows_SkipsShortNamesSilently(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{
		dataRow("Asha Rao", "12000", "14000", "13800", "24"),
		dataRow("", "9000", "9500", "9400", "20"),
		dataRow("X", "9000", "9500", "9400", "20"),
		dataRow("Binod Kumar", "9000", "9500", "9400", "20"),
	}

	rows := ParseRows(m, testMapping, 0)

	require.Len(t, rows, 2, "blank and one-character names are structural rows")
	assert.Equal(t, "Asha Rao", rows[0].Name)
	assert.Equal(t, "Binod Kumar", rows[1].Name)
}

func TestParseRows_FooterHaltsScan(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{
		dataRow("Asha Rao", "12000", "14000", "13800", "24"),
		dataRow("Grand Total", "21000", "23500", "23200", ""),
		dataRow("Binod Kumar", "9000", "9500", "9400", "20"),
	}

	rows := ParseRows(m, testMapping, 0)

	require.Len(t, rows, 1, "everything after the footer row is trailer content")
	assert.Equal(t, "Asha Rao", rows[0].Name)
}

func TestParseRows_MissingWages(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{
		dataRow("Asha Rao", "0", "0", "0", "24"),
	}

	rows := ParseRows(m, testMapping, 0)

	require.Len(t, rows, 1)
	assert.False(t, rows[0].Valid())
	assert.Contains(t, rows[0].Errors, ErrMsgMissingWages)
}

func TestParseRows_ZeroDays(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{
		dataRow("Asha Rao", "12000", "14000", "13800", "0"),
	}

	rows := ParseRows(m, testMapping, 0)

	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].Errors, ErrMsgZeroDays)
}

func TestParseRows_NegativeInput(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{
		dataRow("Asha Rao", "-12000", "14000", "13800", "24"),
	}

	rows := ParseRows(m, testMapping, 0)

	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].Errors, ErrMsgNegativeInput)
	assert.True(t, rows[0].NormalWages.Equal(decimal.NewFromInt(12000)), "value is coerced to absolute")
}

func TestParseRows_DeductionsExceedNet(t *testing.T) {
	t.Parallel()

	mapping := importer.ColumnMapping{
		importer.RoleName:            0,
		importer.RoleGrossWages:      1,
		importer.RoleNetWages:        2,
		importer.RoleAdvances:        3,
		importer.RoleTotalDaysWorked: 4,
	}
	m := importer.Matrix{
		{"Asha Rao", "14000", "1000", "2000", "24"},
	}

	rows := ParseRows(m, mapping, 0)

	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].Errors, ErrMsgExcessDeductions)
}

func TestParseRows_AccumulatesAllProblems(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{
		dataRow("Asha Rao", "0", "0", "0", "0"),
	}

	rows := ParseRows(m, testMapping, 0)

	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].Errors, ErrMsgMissingWages)
	assert.Contains(t, rows[0].Errors, ErrMsgZeroDays)
}

func TestParseRows_BadJoiningDate(t *testing.T) {
	t.Parallel()

	mapping := importer.ColumnMapping{
		importer.RoleName:            0,
		importer.RoleDateOfJoining:   1,
		importer.RoleGrossWages:      2,
		importer.RoleNetWages:        3,
		importer.RoleTotalDaysWorked: 4,
	}
	m := importer.Matrix{
		{"Asha Rao", "not-a-date", "14000", "13800", "24"},
		{"Binod Kumar", "15.6.2019", "9500", "9400", "20"},
		{"Chitra Devi", "15/6/19", "9500", "9400", "20"},
	}

	rows := ParseRows(m, mapping, 0)
	require.Len(t, rows, 3)

	assert.Contains(t, rows[0].Errors, ErrMsgBadJoiningDate)
	assert.Nil(t, rows[0].DateOfJoining)

	require.NotNil(t, rows[1].DateOfJoining)
	assert.Equal(t, "2019-06-15", *rows[1].DateOfJoining)

	require.NotNil(t, rows[2].DateOfJoining, "two-digit years are accepted")
	assert.Equal(t, "2019-06-15", *rows[2].DateOfJoining)
}

func TestParseRows_CountsAttendanceMarks(t *testing.T) {
	t.Parallel()

	mapping := importer.ColumnMapping{
		importer.RoleName:            0,
		importer.RoleGrossWages:      1,
		importer.RoleNetWages:        2,
		importer.RoleAttendanceStart: 3,
		importer.RoleAttendanceEnd:   8,
	}
	m := importer.Matrix{
		{"Asha Rao", "14000", "13800", "P", "p", "W", "PD", "A", "P/2"},
	}

	rows := ParseRows(m, mapping, 0)

	require.Len(t, rows, 1)
	// P, p, W, PD and the P-prefixed half day count; A does not.
	assert.Equal(t, 5, rows[0].Attendance.DaysWorked)
	assert.Len(t, rows[0].Attendance.DailyMarks, 6)
}

func TestParseRows_ExplicitTotalBeatsMarkCount(t *testing.T) {
	t.Parallel()

	mapping := importer.ColumnMapping{
		importer.RoleName:            0,
		importer.RoleGrossWages:      1,
		importer.RoleNetWages:        2,
		importer.RoleAttendanceStart: 3,
		importer.RoleAttendanceEnd:   5,
		importer.RoleTotalDaysWorked: 6,
	}
	m := importer.Matrix{
		{"Asha Rao", "14000", "13800", "P", "P", "P", "26"},
	}

	rows := ParseRows(m, mapping, 0)

	require.Len(t, rows, 1)
	assert.Equal(t, 26, rows[0].Attendance.DaysWorked)
}

func TestSanitizeDBError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a record with the same identity already exists",
		SanitizeDBError(errors.New(`ERROR: duplicate key value violates unique constraint "employees_company_id_employee_code_key"`)))
	assert.Equal(t, "the record references data that does not exist",
		SanitizeDBError(errors.New("ERROR: insert or update violates foreign key constraint")))
	assert.Equal(t, "a field value was rejected by the store",
		SanitizeDBError(errors.New("ERROR: invalid input syntax for type numeric")))
	assert.Equal(t, "the record could not be saved",
		SanitizeDBError(assert.AnError))
}
