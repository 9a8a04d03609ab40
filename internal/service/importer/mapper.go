package importer

import (
	"strconv"
	"strings"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
)

// rolePatterns is the ordered substring table per role. Header text is
// lowercased and whitespace-normalized before matching; among the patterns
// of a role that match a cell, the longest one wins, so "net wages paid"
// beats a bare "net" on the same column.
var rolePatterns = map[importer.Role][]string{
	importer.RoleEmployeeCode:    {"employee code", "emp code", "emp. code", "emp no", "token no", "code"},
	importer.RoleName:            {"name of employee", "employee name", "name of the employee", "name"},
	importer.RoleDesignation:     {"designation", "nature of work"},
	importer.RoleDateOfJoining:   {"date of joining", "date of entry", "doj", "joining"},
	importer.RoleTotalDaysWorked: {"total days worked", "no of days worked", "days worked", "total days", "no of days"},
	importer.RoleNormalWages:     {"normal wages", "basic wages", "rate of wages", "basic"},
	importer.RoleHRAPayable:      {"hra payable", "house rent allowance", "hra"},
	importer.RoleGrossWages:      {"gross wages payable", "gross wages", "gross"},
	importer.RoleAdvances:        {"recovery of advance", "advances", "advance"},
	importer.RoleFines:           {"fines", "fine"},
	importer.RoleDamages:         {"deduction for damage", "damages", "damage"},
	importer.RoleNetWages:        {"net wages paid", "net wages payable", "net wages", "net paid", "net"},
}

// confidenceRoles are the roles whose resolution the operator-facing
// confidence score counts.
var confidenceRoles = []importer.Role{
	importer.RoleName,
	importer.RoleTotalDaysWorked,
	importer.RoleGrossWages,
	importer.RoleNetWages,
}

// InferMapping assigns semantic roles to header columns. Two passes, applied
// once each, first claim wins: the attendance-block pass picks the "1" and
// "31" day columns, then the pattern pass resolves the remaining roles from
// the header text. Returns the mapping and the operator confidence score.
func InferMapping(header []string) (importer.ColumnMapping, float64) {
	mapping := make(importer.ColumnMapping)
	claimed := make(map[int]bool)

	normalized := make([]string, len(header))
	for i, cell := range header {
		normalized[i] = normalizeHeader(cell)
	}

	// Attendance-block pass: integer headers in [1,31] form the daily
	// attendance block; the columns labelled 1 and 31 bound it.
	for idx, cell := range normalized {
		n, err := strconv.Atoi(cell)
		if err != nil || n < 1 || n > 31 {
			continue
		}
		if n == 1 {
			if _, ok := mapping[importer.RoleAttendanceStart]; !ok {
				mapping[importer.RoleAttendanceStart] = idx
				claimed[idx] = true
			}
		}
		if n == 31 {
			if _, ok := mapping[importer.RoleAttendanceEnd]; !ok {
				mapping[importer.RoleAttendanceEnd] = idx
				claimed[idx] = true
			}
		}
	}

	// Pattern pass.
	for _, role := range importer.AllRoles {
		if _, ok := mapping[role]; ok {
			continue
		}
		patterns, ok := rolePatterns[role]
		if !ok {
			continue
		}
		col, matched := bestPatternMatch(normalized, patterns, claimed)
		if matched {
			mapping[role] = col
			claimed[col] = true
		}
	}

	return mapping, confidence(mapping)
}

// bestPatternMatch scans every unclaimed header cell against the role's
// patterns and returns the column of the longest matching pattern.
func bestPatternMatch(header []string, patterns []string, claimed map[int]bool) (int, bool) {
	bestCol := -1
	bestLen := 0
	for idx, cell := range header {
		if claimed[idx] || cell == "" {
			continue
		}
		for _, p := range patterns {
			if strings.Contains(cell, p) && len(p) > bestLen {
				bestCol = idx
				bestLen = len(p)
			}
		}
	}
	return bestCol, bestCol >= 0
}

func confidence(mapping importer.ColumnMapping) float64 {
	resolved := 0
	for _, role := range confidenceRoles {
		if _, ok := mapping[role]; ok {
			resolved++
		}
	}
	return float64(resolved) / float64(len(confidenceRoles))
}

func normalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	cell = strings.ReplaceAll(cell, "\n", " ")
	cell = strings.ReplaceAll(cell, "\r", "")
	return strings.Join(strings.Fields(cell), " ")
}

// ValidateMapping rejects a mapping before any row is parsed: the name
// column is required, every mapped index must fall inside the sheet, and a
// mapped attendance block must be well ordered.
func ValidateMapping(mapping importer.ColumnMapping, m importer.Matrix, headerRow int) error {
	if _, ok := mapping.Get(importer.RoleName); !ok {
		return importer.NewSchemaError("could not locate the employee name column")
	}

	width := 0
	if headerRow >= 0 && headerRow < m.Rows() {
		width = len(m[headerRow])
	}
	for role, idx := range mapping {
		if idx < 0 || idx >= width {
			return importer.NewSchemaError("column for %s points at index %d, sheet has %d columns", role, idx, width)
		}
	}

	start, hasStart := mapping.Get(importer.RoleAttendanceStart)
	end, hasEnd := mapping.Get(importer.RoleAttendanceEnd)
	if hasStart && hasEnd && start > end {
		return importer.NewSchemaError("attendance block is reversed (start %d after end %d)", start, end)
	}

	return nil
}
