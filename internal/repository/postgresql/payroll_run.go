package postgresql

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5"

	"github.com/wagebook/wagebook-backend-go/internal/domain/payrollrun"
	"github.com/wagebook/wagebook-backend-go/internal/pkg/database"
)

type runRepositoryImpl struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) payrollrun.RunRepository {
	return &runRepositoryImpl{db: db}
}

// GetByMonth implements payrollrun.RunRepository.
func (r *runRepositoryImpl) GetByMonth(ctx context.Context, companyID, month string) (payrollrun.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, month, working_days, status, created_at, updated_at
		FROM payroll_runs
		WHERE company_id = $1 AND month = $2
	`

	var run payrollrun.PayrollRun
	err := q.QueryRow(ctx, query, companyID, month).Scan(
		&run.ID, &run.CompanyID, &run.Month, &run.WorkingDays, &run.Status,
		&run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollrun.PayrollRun{}, payrollrun.ErrRunNotFound
		}
		return payrollrun.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return run, nil
}

// Create implements payrollrun.RunRepository.
func (r *runRepositoryImpl) Create(ctx context.Context, run payrollrun.PayrollRun) (payrollrun.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (id, company_id, month, working_days, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id, company_id, month, working_days, status, created_at, updated_at
	`

	var created payrollrun.PayrollRun
	err := q.QueryRow(ctx, query, run.CompanyID, run.Month, run.WorkingDays, run.Status).Scan(
		&created.ID, &created.CompanyID, &created.Month, &created.WorkingDays,
		&created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return payrollrun.PayrollRun{}, fmt.Errorf("failed to create payroll run: %w", err)
	}
	return created, nil
}

// Update implements payrollrun.RunRepository.
func (r *runRepositoryImpl) Update(ctx context.Context, run payrollrun.PayrollRun) (payrollrun.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET working_days = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, company_id, month, working_days, status, created_at, updated_at
	`

	var updated payrollrun.PayrollRun
	err := q.QueryRow(ctx, query, run.WorkingDays, run.Status, run.ID).Scan(
		&updated.ID, &updated.CompanyID, &updated.Month, &updated.WorkingDays,
		&updated.Status, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollrun.PayrollRun{}, payrollrun.ErrRunNotFound
		}
		return payrollrun.PayrollRun{}, fmt.Errorf("failed to update payroll run: %w", err)
	}
	return updated, nil
}

// AcquireImportLease implements payrollrun.RunRepository. The lock key is a
// hash of (company_id, month); the advisory lock is held until the
// surrounding transaction ends. The try variant is used so a concurrent
// import for the same month fails fast with ErrRunLocked instead of
// queueing behind the holder.
func (r *runRepositoryImpl) AcquireImportLease(ctx context.Context, companyID, month string) error {
	q := GetQuerier(ctx, r.db)

	h := fnv.New64a()
	h.Write([]byte(companyID))
	h.Write([]byte{0})
	h.Write([]byte(month))

	var acquired bool
	err := q.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock($1)`, int64(h.Sum64())).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire import lease: %w", err)
	}
	if !acquired {
		return payrollrun.ErrRunLocked
	}
	return nil
}
