package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
)

// Row error messages. ErrMsgBadJoiningDate is special-cased by the
// orchestrator: attendance and wages imports tolerate it when it is the
// row's only problem.
const (
	ErrMsgMissingWages     = "Missing gross and net wages"
	ErrMsgZeroDays         = "Zero days worked"
	ErrMsgNegativeInput    = "Negative wage amount in workbook"
	ErrMsgExcessDeductions = "Deductions exceed net wages"
	ErrMsgBadJoiningDate   = "Missing or invalid date of joining"
)

// footerKeywords mark trailer content. Once a row's name matches one of
// these, the register body has ended and everything below is signature and
// totals block.
var footerKeywords = []string{
	"total", "signature", "manager", "employer",
	"muster roll", "name of establishment", "grand total",
	"checked by", "prepared by",
}

// attendance marks counted as a day worked: P, W, PD, or anything starting
// with P (covers P/2, PH and similar local conventions).
func isPresentMark(mark string) bool {
	mark = strings.ToUpper(strings.TrimSpace(mark))
	if mark == "" {
		return false
	}
	if mark == "P" || mark == "W" || mark == "PD" {
		return true
	}
	return strings.HasPrefix(mark, "P")
}

// ParseRows converts every data row of the session's matrix into a typed
// ParsedRow. Rows with blank or one-character names are structural noise and
// skipped without a trace; a footer keyword in the name column stops the
// scan outright. All other problems accumulate on the row itself — the loop
// never aborts because of one bad row.
func ParseRows(m importer.Matrix, mapping importer.ColumnMapping, dataStartRow int) []importer.ParsedRow {
	var rows []importer.ParsedRow

	nameCol, _ := mapping.Get(importer.RoleName)

	for i := dataStartRow; i < m.Rows(); i++ {
		name := strings.TrimSpace(m.Cell(i, nameCol))
		if len(name) < 2 {
			continue
		}
		if isFooterName(name) {
			break
		}
		rows = append(rows, parseRow(m, mapping, i, name))
	}

	return rows
}

func isFooterName(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range footerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func parseRow(m importer.Matrix, mapping importer.ColumnMapping, rowIdx int, name string) importer.ParsedRow {
	row := importer.ParsedRow{
		RowIndex: rowIdx,
		Name:     name,
	}
	var errs []string

	if col, ok := mapping.Get(importer.RoleEmployeeCode); ok {
		row.EmpCode = strings.TrimSpace(m.Cell(rowIdx, col))
	}
	if col, ok := mapping.Get(importer.RoleDesignation); ok {
		row.Designation = strings.TrimSpace(m.Cell(rowIdx, col))
	}

	// A workbook without a joining-date column is fine; the error applies
	// only when the mapped cell is blank or unparseable.
	dojErr := false
	if col, ok := mapping.Get(importer.RoleDateOfJoining); ok {
		raw := strings.TrimSpace(m.Cell(rowIdx, col))
		if d, ok := parseFlexibleDate(raw); ok {
			s := d.Format("2006-01-02")
			row.DateOfJoining = &s
		} else {
			dojErr = true
		}
	}

	var negative bool
	row.NormalWages, negative = parseMoneyCell(m, mapping, rowIdx, importer.RoleNormalWages)
	negativeAny := negative
	row.HRAPayable, negative = parseMoneyCell(m, mapping, rowIdx, importer.RoleHRAPayable)
	negativeAny = negativeAny || negative
	row.GrossWages, negative = parseMoneyCell(m, mapping, rowIdx, importer.RoleGrossWages)
	negativeAny = negativeAny || negative
	row.NetWagesPaid, negative = parseMoneyCell(m, mapping, rowIdx, importer.RoleNetWages)
	negativeAny = negativeAny || negative

	row.Deductions.Advances, negative = parseMoneyCell(m, mapping, rowIdx, importer.RoleAdvances)
	negativeAny = negativeAny || negative
	row.Deductions.Fines, negative = parseMoneyCell(m, mapping, rowIdx, importer.RoleFines)
	negativeAny = negativeAny || negative
	row.Deductions.Damages, negative = parseMoneyCell(m, mapping, rowIdx, importer.RoleDamages)
	negativeAny = negativeAny || negative
	row.Deductions.Total = row.Deductions.Advances.Add(row.Deductions.Fines).Add(row.Deductions.Damages)

	row.Attendance = parseAttendance(m, mapping, rowIdx)

	// Validation accumulates; a row is either clean or carries the full
	// set of problems found.
	if row.GrossWages.IsZero() && row.NetWagesPaid.IsZero() {
		errs = append(errs, ErrMsgMissingWages)
	}
	if row.Attendance.DaysWorked == 0 {
		errs = append(errs, ErrMsgZeroDays)
	}
	if negativeAny {
		errs = append(errs, ErrMsgNegativeInput)
	}
	if row.Deductions.Total.GreaterThan(row.NetWagesPaid) && row.Deductions.Total.IsPositive() {
		errs = append(errs, ErrMsgExcessDeductions)
	}
	if dojErr {
		errs = append(errs, ErrMsgBadJoiningDate)
	}

	row.Errors = errs
	return row
}

func parseAttendance(m importer.Matrix, mapping importer.ColumnMapping, rowIdx int) importer.RowAttendance {
	att := importer.RowAttendance{}

	start, hasStart := mapping.Get(importer.RoleAttendanceStart)
	end, hasEnd := mapping.Get(importer.RoleAttendanceEnd)
	if hasStart && hasEnd && start <= end {
		for col := start; col <= end; col++ {
			att.DailyMarks = append(att.DailyMarks, strings.TrimSpace(m.Cell(rowIdx, col)))
		}
	}

	// An explicit total-days column wins over counting marks.
	if col, ok := mapping.Get(importer.RoleTotalDaysWorked); ok {
		if n, ok := parseDayCount(m.Cell(rowIdx, col)); ok {
			att.DaysWorked = n
			return att
		}
	}
	for _, mark := range att.DailyMarks {
		if isPresentMark(mark) {
			att.DaysWorked++
		}
	}
	return att
}

func parseDayCount(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 {
		return int(f), true
	}
	return 0, false
}

var moneyCleaner = strings.NewReplacer(",", "", "₹", "", " ", "")

// parseMoneyCell reads a monetary cell tolerantly: thousands separators and
// currency glyphs are stripped, blank or unparseable values coerce to zero,
// and signs are rejected by taking the absolute value. The second return
// reports whether the original value was negative, which the caller records
// as a row error.
func parseMoneyCell(m importer.Matrix, mapping importer.ColumnMapping, rowIdx int, role importer.Role) (decimal.Decimal, bool) {
	col, ok := mapping.Get(role)
	if !ok {
		return decimal.Zero, false
	}
	return ParseMoney(m.Cell(rowIdx, col))
}

// ParseMoney is the tolerant monetary parser. It never returns a negative
// value and is idempotent on already-clean numeric strings.
func ParseMoney(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	raw = moneyCleaner.Replace(raw)
	raw = strings.TrimPrefix(raw, "Rs.")
	raw = strings.TrimPrefix(raw, "Rs")
	raw = strings.TrimPrefix(raw, "INR")
	if raw == "" || raw == "-" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	if d.IsNegative() {
		return d.Abs(), true
	}
	return d, false
}

var dmyRegex = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2}|\d{4})$`)

// genericDateLayouts cover workbook exports that carry dates in ISO or
// spreadsheet-default shapes.
var genericDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"01-02-06",
	time.RFC3339,
}

// parseFlexibleDate accepts D[./-]M[./-]Y with a 2- or 4-digit year, or any
// string one of the generic layouts can parse.
func parseFlexibleDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if m := dmyRegex.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			// time.Date normalizes overflow (e.g. 31.02 becomes March);
			// reject anything that moved.
			if t.Day() == day && int(t.Month()) == month {
				return t, true
			}
		}
		return time.Time{}, false
	}

	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SanitizeDBError reduces a store failure to an operator-safe reason without
// connection or constraint internals.
func SanitizeDBError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return "a record with the same identity already exists"
	case strings.Contains(msg, "foreign key"):
		return "the record references data that does not exist"
	case strings.Contains(msg, "invalid input syntax"), strings.Contains(msg, "out of range"):
		return "a field value was rejected by the store"
	default:
		return "the record could not be saved"
	}
}
