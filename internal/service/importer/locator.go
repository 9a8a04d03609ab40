package importer

import (
	"strings"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
	"github.com/wagebook/wagebook-backend-go/internal/pkg/validator"
)

const headerScanLimit = 30

// Muster-roll exports commonly open with establishment/title blocks and
// blank rows, so a fixed "row 0 is header" rule fails on most real files.
// A row qualifies as a header candidate when enough of its leading cells
// are filled and at least one of these keywords appears in them.
var headerKeywords = []string{
	"name", "emp", "code", "wages", "gross", "days",
	"designation", "serial", "sl no", "s.no",
}

// LocateSchema finds the header row and the first data row of the matrix.
// It scans at most the first 30 rows; a candidate header is accepted only
// when the row after it looks like a data row (numeric serial in the first
// cell, or a plausible name in the second), which rejects title blocks that
// merely mention "wages". Falls back to (1, 2) on sheets taller than 5 rows,
// else (0, 1).
func LocateSchema(m importer.Matrix) (headerRow, dataStartRow int) {
	limit := m.Rows()
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for i := 0; i < limit; i++ {
		if !isHeaderCandidate(m, i) {
			continue
		}
		if isPlausibleDataRow(m, i+1) {
			return i, i + 1
		}
	}

	if m.Rows() > 5 {
		return 1, 2
	}
	return 0, 1
}

func isHeaderCandidate(m importer.Matrix, row int) bool {
	filled := 0
	var joined strings.Builder
	for col := 0; col < 10; col++ {
		cell := strings.TrimSpace(m.Cell(row, col))
		if cell == "" {
			continue
		}
		filled++
		joined.WriteString(strings.ToLower(cell))
		joined.WriteByte(' ')
	}
	if filled < 5 {
		return false
	}

	text := joined.String()
	for _, kw := range headerKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func isPlausibleDataRow(m importer.Matrix, row int) bool {
	filled := 0
	for col := 0; col < 10; col++ {
		if strings.TrimSpace(m.Cell(row, col)) != "" {
			filled++
		}
	}
	if filled < 5 {
		return false
	}

	first := strings.TrimSpace(m.Cell(row, 0))
	if validator.IsNumeric(first) {
		return true
	}
	second := strings.TrimSpace(m.Cell(row, 1))
	return len(second) > 2
}
