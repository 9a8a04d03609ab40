package payrollrun

import "context"

// RunRepository manages the one-per-(company, month) payroll run rows.
type RunRepository interface {
	GetByMonth(ctx context.Context, companyID, month string) (PayrollRun, error)
	Create(ctx context.Context, run PayrollRun) (PayrollRun, error)
	Update(ctx context.Context, run PayrollRun) (PayrollRun, error)

	// AcquireImportLease takes a per-(company, month) lock that lives for
	// the remainder of the surrounding transaction. Two concurrent imports
	// for the same month serialize on it.
	AcquireImportLease(ctx context.Context, companyID, month string) error
}

// AttendanceRepository replaces attendance wholesale per run.
type AttendanceRepository interface {
	DeleteByRunID(ctx context.Context, runID string) error
	BulkInsert(ctx context.Context, rows []Attendance) error
	GetByRunID(ctx context.Context, runID string) ([]Attendance, error)
}

// DetailRepository replaces payroll detail wholesale per run.
type DetailRepository interface {
	DeleteByRunID(ctx context.Context, runID string) error
	BulkInsert(ctx context.Context, rows []PayrollDetail) error
	GetByRunID(ctx context.Context, runID string) ([]PayrollDetail, error)
}
