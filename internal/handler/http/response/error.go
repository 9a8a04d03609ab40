package response

import (
	"errors"
	"net/http"

	"github.com/wagebook/wagebook-backend-go/internal/domain/employee"
	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
	"github.com/wagebook/wagebook-backend-go/internal/domain/mappingprofile"
	"github.com/wagebook/wagebook-backend-go/internal/domain/payrollrun"
	"github.com/wagebook/wagebook-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, "Validation failed", validationErrs.ToMap())
		return
	}

	// Schema errors carry the operator-facing detail verbatim.
	var schemaErr *importer.SchemaError
	if errors.As(err, &schemaErr) {
		UnprocessableEntity(w, schemaErr.Error())
		return
	}

	switch {
	// Import pipeline errors
	case errors.Is(err, importer.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported workbook format; upload .xlsx, .xls or .csv", nil)
	case errors.Is(err, importer.ErrEmptyWorkbook):
		UnprocessableEntity(w, "Workbook has no rows")
	case errors.Is(err, importer.ErrNoCompany):
		BadRequest(w, "No company selected for import", nil)
	case errors.Is(err, importer.ErrNoValidRows):
		UnprocessableEntity(w, "No valid rows to import")

	// Payroll run errors
	case errors.Is(err, payrollrun.ErrInvalidMonth):
		BadRequest(w, "Month must be in YYYY-MM form", nil)
	case errors.Is(err, payrollrun.ErrInvalidDays):
		BadRequest(w, "Working days must be between 1 and 31", nil)
	case errors.Is(err, payrollrun.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payrollrun.ErrRunLocked):
		Conflict(w, "Another import is running for this month")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Mapping profile errors
	case errors.Is(err, mappingprofile.ErrProfileNotFound):
		NotFound(w, "Mapping profile not found")
	case errors.Is(err, mappingprofile.ErrProfileNameExists):
		Conflict(w, "Mapping profile name already exists")
	case errors.Is(err, mappingprofile.ErrEmptyProfileName):
		BadRequest(w, "Mapping profile name is required", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
