package workbook

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
)

// Load decodes an uploaded workbook into the raw cell matrix consumed by the
// import pipeline. Only the first sheet is read. Blank rows come through as
// empty slices so row indices stay stable.
func Load(r io.Reader, filename string) (importer.Matrix, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return loadXLSX(r)
	case ".xls":
		return loadXLS(r)
	case ".csv":
		return loadCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", importer.ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func loadXLSX(r io.Reader) (importer.Matrix, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, importer.ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, importer.ErrEmptyWorkbook
	}
	return importer.Matrix(rows), nil
}

func loadXLS(r io.Reader) (importer.Matrix, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read xls: %w", err)
	}
	wb, err := xls.OpenReader(bytes.NewReader(buf), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, importer.ErrEmptyWorkbook
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil, importer.ErrEmptyWorkbook
	}
	return importer.Matrix(rows), nil
}

func loadCSV(r io.Reader) (importer.Matrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, importer.ErrEmptyWorkbook
	}
	return importer.Matrix(rows), nil
}
