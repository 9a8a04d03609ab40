package importer

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
)

// musterHeader builds the canonical register header: leading columns, the
// "1".."31" attendance block, then the trailing wage columns.
func musterHeader(leading []string, trailing []string) []string {
	header := append([]string{}, leading...)
	for d := 1; d <= 31; d++ {
		header = append(header, strconv.Itoa(d))
	}
	return append(header, trailing...)
}

func TestInferMapping_AttendanceBlock(t *testing.T) {
	t.Parallel()

	header := musterHeader(
		[]string{"S.No", "Name", "Basic Wages", "HRA", "Gross Wages"},
		[]string{"Net Wages"},
	)

	mapping, _ := InferMapping(header)

	start, ok := mapping.Get(importer.RoleAttendanceStart)
	require.True(t, ok)
	end, ok := mapping.Get(importer.RoleAttendanceEnd)
	require.True(t, ok)
	assert.Equal(t, 5, start)
	assert.Equal(t, 35, end)
}

func TestInferMapping_PatternRoles(t *testing.T) {
	t.Parallel()

	header := []string{"Emp Code", "Name of Employee", "Designation", "Date of Joining", "Basic Wages", "HRA", "Gross Wages", "Advances", "Fines", "Damages", "Net Wages Paid", "Total Days Worked"}

	mapping, confidence := InferMapping(header)

	expect := map[importer.Role]int{
		importer.RoleEmployeeCode:    0,
		importer.RoleName:            1,
		importer.RoleDesignation:     2,
		importer.RoleDateOfJoining:   3,
		importer.RoleNormalWages:     4,
		importer.RoleHRAPayable:      5,
		importer.RoleGrossWages:      6,
		importer.RoleAdvances:        7,
		importer.RoleFines:           8,
		importer.RoleDamages:         9,
		importer.RoleNetWages:        10,
		importer.RoleTotalDaysWorked: 11,
	}
	for role, want := range expect {
		got, ok := mapping.Get(role)
		require.True(t, ok, "role %s unmapped", role)
		assert.Equal(t, want, got, "role %s", role)
	}
	assert.Equal(t, 1.0, confidence)
}

func TestInferMapping_LongestPatternWins(t *testing.T) {
	t.Parallel()

	// "Net Wages Paid" matches both "net" and "net wages paid"; the
	// longer, more specific pattern must claim the column, and a bare
	// "Net" column elsewhere must not steal the role first.
	header := []string{"Name of Employee", "Net Wages Paid", "Gross Wages", "Days Worked"}

	mapping, _ := InferMapping(header)

	col, ok := mapping.Get(importer.RoleNetWages)
	require.True(t, ok)
	assert.Equal(t, 1, col)
}

func TestInferMapping_FirstClaimNeverReassigned(t *testing.T) {
	t.Parallel()

	// The attendance pass claims the "1" column before the pattern pass
	// runs; no wage role may take it afterwards.
	header := []string{"Name", "1", "31", "Gross Wages"}

	mapping, _ := InferMapping(header)

	start, _ := mapping.Get(importer.RoleAttendanceStart)
	end, _ := mapping.Get(importer.RoleAttendanceEnd)
	gross, _ := mapping.Get(importer.RoleGrossWages)
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, end)
	assert.Equal(t, 3, gross)
}

func TestInferMapping_Confidence(t *testing.T) {
	t.Parallel()

	// Only name and gross resolve out of the four confidence roles.
	header := []string{"Name", "Designation", "Gross Wages"}

	_, confidence := InferMapping(header)
	assert.InDelta(t, 0.5, confidence, 0.0001)
}

func TestValidateMapping_RequiresName(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{{"A", "B", "C", "D", "E"}}
	err := ValidateMapping(importer.ColumnMapping{importer.RoleGrossWages: 1}, m, 0)

	var schemaErr *importer.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestValidateMapping_IndexBeyondSheet(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{{"Name", "Gross"}}
	mapping := importer.ColumnMapping{
		importer.RoleName:       0,
		importer.RoleGrossWages: 7,
	}

	err := ValidateMapping(mapping, m, 0)

	var schemaErr *importer.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestMergeOverridesWin(t *testing.T) {
	t.Parallel()

	inferred := importer.ColumnMapping{importer.RoleName: 1, importer.RoleGrossWages: 4}
	overrides := importer.ColumnMapping{importer.RoleGrossWages: 6}

	merged := inferred.Merge(overrides)

	name, _ := merged.Get(importer.RoleName)
	gross, _ := merged.Get(importer.RoleGrossWages)
	assert.Equal(t, 1, name)
	assert.Equal(t, 6, gross)

	// Merge never mutates the receiver.
	orig, _ := inferred.Get(importer.RoleGrossWages)
	assert.Equal(t, 4, orig)
}
