package importer

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported workbook format")
	ErrEmptyWorkbook     = errors.New("workbook has no rows")
	ErrNoCompany         = errors.New("no company selected for import")
	ErrNoValidRows       = errors.New("no valid rows to import")
)

// SchemaError reports a structural problem detected before any row is
// processed: a required column that could not be mapped, or a mapped index
// pointing past the sheet's width. It always aborts the whole run.
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("workbook schema error: %s", e.Detail)
}

// NewSchemaError builds a SchemaError with a formatted detail message.
func NewSchemaError(format string, args ...interface{}) *SchemaError {
	return &SchemaError{Detail: fmt.Sprintf(format, args...)}
}
