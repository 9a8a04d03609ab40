package employee

import "context"

// EmployeeRepository defines data access methods for employees.
// All methods take companyID to prevent cross-company data access.
type EmployeeRepository interface {
	// UpsertByCode inserts or updates the employee keyed by
	// (company_id, employee_code) and returns the stored row.
	UpsertByCode(ctx context.Context, emp Employee) (Employee, error)

	GetByCode(ctx context.Context, companyID, code string) (Employee, error)

	// GetByExactName returns the single employee with this full name.
	// ErrEmployeeNotFound when none match, ErrAmbiguousName when more
	// than one does.
	GetByExactName(ctx context.Context, companyID, name string) (Employee, error)

	GetByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
}
