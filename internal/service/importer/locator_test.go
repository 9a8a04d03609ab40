package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
)

func TestLocateSchema_HeaderAfterTitleBlock(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{
		{"Name of Establishment: Sharma Textiles"},
		{},
		{"Muster Roll cum Wages Register for the month of March"},
		{"S.No", "Name", "Designation", "Basic Wages", "Gross Wages", "Days"},
		{"1", "Asha Rao", "Weaver", "12000", "14000", "24"},
	}

	header, data := LocateSchema(m)
	assert.Equal(t, 3, header)
	assert.Equal(t, 4, data)
}

func TestLocateSchema_AcceptsNameInSecondCell(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{
		{"S.No", "Name", "Designation", "Basic Wages", "Gross Wages", "Days"},
		{"", "Asha Rao", "Weaver", "12000", "14000", "24"},
	}

	header, data := LocateSchema(m)
	assert.Equal(t, 0, header)
	assert.Equal(t, 1, data)
}

func TestLocateSchema_RejectsTitleRowMentioningWages(t *testing.T) {
	t.Parallel()

	// A title block mentioning "wages" across several cells is not a
	// header because the next row is blank.
	m := importer.Matrix{
		{"Register", "of", "Wages", "and", "Attendance", "2025"},
		{},
		{"S.No", "Name", "Designation", "Basic Wages", "Gross Wages", "Days"},
		{"1", "Asha Rao", "Weaver", "12000", "14000", "24"},
	}

	header, data := LocateSchema(m)
	assert.Equal(t, 2, header)
	assert.Equal(t, 3, data)
}

func TestLocateSchema_FallbackTallSheet(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{
		{"x"}, {"x"}, {"x"}, {"x"}, {"x"}, {"x"}, {"x"},
	}

	header, data := LocateSchema(m)
	assert.Equal(t, 1, header)
	assert.Equal(t, 2, data)
}

func TestLocateSchema_FallbackShortSheet(t *testing.T) {
	t.Parallel()

	m := importer.Matrix{
		{"x"}, {"y"},
	}

	header, data := LocateSchema(m)
	assert.Equal(t, 0, header)
	assert.Equal(t, 1, data)
}

func TestLocateSchema_ScanStopsAtThirtyRows(t *testing.T) {
	t.Parallel()

	var m importer.Matrix
	for i := 0; i < 35; i++ {
		m = append(m, []string{"filler"})
	}
	m = append(m, []string{"S.No", "Name", "Designation", "Basic Wages", "Gross Wages", "Days"})
	m = append(m, []string{"1", "Asha Rao", "Weaver", "12000", "14000", "24"})

	header, data := LocateSchema(m)
	assert.Equal(t, 1, header, "header beyond the scan limit falls back")
	assert.Equal(t, 2, data)
}
