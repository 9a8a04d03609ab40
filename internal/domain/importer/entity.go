package importer

import (
	"github.com/shopspring/decimal"
)

// Matrix is the raw row-major cell grid of the first worksheet. Blank rows
// are preserved so row and column indices stay stable across the pipeline.
// It is never mutated after loading.
type Matrix [][]string

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cell returns the trimmed-nothing raw value at (row, col), or "" when the
// coordinates fall outside the ragged grid.
func (m Matrix) Cell(row, col int) string {
	if row < 0 || row >= len(m) {
		return ""
	}
	if col < 0 || col >= len(m[row]) {
		return ""
	}
	return m[row][col]
}

// Role is a semantic column role. The set is closed: the mapper only ever
// assigns these values.
type Role string

const (
	RoleEmployeeCode    Role = "employeeCode"
	RoleName            Role = "name"
	RoleDesignation     Role = "designation"
	RoleDateOfJoining   Role = "dateOfJoining"
	RoleAttendanceStart Role = "attendanceStart"
	RoleAttendanceEnd   Role = "attendanceEnd"
	RoleTotalDaysWorked Role = "totalDaysWorked"
	RoleNormalWages     Role = "normalWages"
	RoleHRAPayable      Role = "hraPayable"
	RoleGrossWages      Role = "grossWages"
	RoleAdvances        Role = "advances"
	RoleFines           Role = "fines"
	RoleDamages         Role = "damages"
	RoleNetWages        Role = "netWages"
)

// AllRoles lists every role the mapper can assign, in pattern-pass order.
var AllRoles = []Role{
	RoleEmployeeCode,
	RoleName,
	RoleDesignation,
	RoleDateOfJoining,
	RoleAttendanceStart,
	RoleAttendanceEnd,
	RoleTotalDaysWorked,
	RoleNormalWages,
	RoleHRAPayable,
	RoleGrossWages,
	RoleAdvances,
	RoleFines,
	RoleDamages,
	RoleNetWages,
}

// ColumnMapping assigns column indices to roles. A missing key means the
// role is unmapped.
type ColumnMapping map[Role]int

// Get returns the index for role and whether it is mapped.
func (m ColumnMapping) Get(role Role) (int, bool) {
	idx, ok := m[role]
	return idx, ok
}

// Merge overlays the overrides on top of m and returns the result; m is not
// modified. Operator overrides always win over inferred assignments.
func (m ColumnMapping) Merge(overrides ColumnMapping) ColumnMapping {
	merged := make(ColumnMapping, len(m)+len(overrides))
	for role, idx := range m {
		merged[role] = idx
	}
	for role, idx := range overrides {
		merged[role] = idx
	}
	return merged
}

// Deductions groups the manual deduction columns of a parsed row.
type Deductions struct {
	Advances decimal.Decimal `json:"advances"`
	Fines    decimal.Decimal `json:"fines"`
	Damages  decimal.Decimal `json:"damages"`
	Total    decimal.Decimal `json:"total"`
}

// RowAttendance carries the attendance block of a parsed row.
type RowAttendance struct {
	DaysWorked int      `json:"days_worked"`
	DailyMarks []string `json:"daily_marks"`
}

// ParsedRow is one typed candidate record produced from a data row. A row is
// either clean (Errors empty, eligible for commit) or carries every problem
// found; there is no partially-valid state.
type ParsedRow struct {
	RowIndex      int             `json:"row_index"`
	EmpCode       string          `json:"emp_code,omitempty"`
	Name          string          `json:"name"`
	Designation   string          `json:"designation,omitempty"`
	DateOfJoining *string         `json:"date_of_joining,omitempty"` // YYYY-MM-DD
	NormalWages   decimal.Decimal `json:"normal_wages"`
	HRAPayable    decimal.Decimal `json:"hra_payable"`
	GrossWages    decimal.Decimal `json:"gross_wages"`
	Deductions    Deductions      `json:"deductions"`
	NetWagesPaid  decimal.Decimal `json:"net_wages_paid"`
	Attendance    RowAttendance   `json:"attendance"`
	Errors        []string        `json:"errors,omitempty"`
}

// Valid reports whether the row may be committed.
func (r ParsedRow) Valid() bool { return len(r.Errors) == 0 }

// Mode selects which import stages execute.
type Mode string

const (
	ModeAll        Mode = "all"
	ModeAttendance Mode = "attendance"
	ModeWages      Mode = "wages"
)

// ParseMode validates an operator-supplied mode string.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeAll, ModeAttendance, ModeWages:
		return Mode(s), true
	}
	return "", false
}

// DBFailure is one sanitized stage-1 persistence failure.
type DBFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ImportSummary is the terminal result of an import run.
type ImportSummary struct {
	RowsParsed        int         `json:"rows_parsed"`
	ValidRows         int         `json:"valid_rows"`
	RowErrorCount     int         `json:"row_error_count"`
	EmployeesImported int         `json:"employees_imported"`
	DBFailures        []DBFailure `json:"db_failures"`
}

// ImportSession is the explicit session value threaded through the stage
// functions: the loaded matrix plus everything derived from it so far.
// Stages take a session and return an updated copy, never mutate shared
// state.
type ImportSession struct {
	Matrix       Matrix        `json:"-"`
	HeaderRow    int           `json:"header_row"`
	DataStartRow int           `json:"data_start_row"`
	Mapping      ColumnMapping `json:"mapping"`
	Confidence   float64       `json:"confidence"`
	Rows         []ParsedRow   `json:"rows"`
}

// ValidRows returns the commit-eligible subset of the session's rows.
func (s ImportSession) ValidRows() []ParsedRow {
	var out []ParsedRow
	for _, r := range s.Rows {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}
