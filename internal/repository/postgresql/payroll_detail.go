package postgresql

import (
	"context"
	"fmt"

	"github.com/wagebook/wagebook-backend-go/internal/domain/payrollrun"
	"github.com/wagebook/wagebook-backend-go/internal/pkg/database"
)

type detailRepositoryImpl struct {
	db *database.DB
}

func NewDetailRepository(db *database.DB) payrollrun.DetailRepository {
	return &detailRepositoryImpl{db: db}
}

// DeleteByRunID implements payrollrun.DetailRepository.
func (d *detailRepositoryImpl) DeleteByRunID(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, d.db)

	_, err := q.Exec(ctx, `DELETE FROM payroll_details WHERE payroll_run_id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll details for run %s: %w", runID, err)
	}
	return nil
}

// BulkInsert implements payrollrun.DetailRepository.
func (d *detailRepositoryImpl) BulkInsert(ctx context.Context, rows []payrollrun.PayrollDetail) error {
	q := GetQuerier(ctx, d.db)

	query := `
		INSERT INTO payroll_details (
			id, payroll_run_id, employee_id, days_worked,
			basic_earned, hra_earned, gross_earned,
			epf_employee, epf_employer, eps_employer,
			esic_employee, esic_employer, pt_amount, tds_amount,
			lwf_employee, lwf_employer,
			advances, fines, damages, total_deducted, net_pay
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)
	`
	for _, row := range rows {
		if _, err := q.Exec(ctx, query,
			row.PayrollRunID, row.EmployeeID, row.DaysWorked,
			row.BasicEarned, row.HRAEarned, row.GrossEarned,
			row.EPFEmployee, row.EPFEmployer, row.EPSEmployer,
			row.ESICEmployee, row.ESICEmployer, row.PTAmount, row.TDSAmount,
			row.LWFEmployee, row.LWFEmployer,
			row.Advances, row.Fines, row.Damages, row.TotalDeducted, row.NetPay,
		); err != nil {
			return fmt.Errorf("failed to insert payroll detail for employee %s: %w", row.EmployeeID, err)
		}
	}
	return nil
}

// GetByRunID implements payrollrun.DetailRepository.
func (d *detailRepositoryImpl) GetByRunID(ctx context.Context, runID string) ([]payrollrun.PayrollDetail, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT id, payroll_run_id, employee_id, days_worked,
			basic_earned, hra_earned, gross_earned,
			epf_employee, epf_employer, eps_employer,
			esic_employee, esic_employer, pt_amount, tds_amount,
			lwf_employee, lwf_employer,
			advances, fines, damages, total_deducted, net_pay, created_at
		FROM payroll_details
		WHERE payroll_run_id = $1
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []payrollrun.PayrollDetail
	for rows.Next() {
		var det payrollrun.PayrollDetail
		err := rows.Scan(
			&det.ID, &det.PayrollRunID, &det.EmployeeID, &det.DaysWorked,
			&det.BasicEarned, &det.HRAEarned, &det.GrossEarned,
			&det.EPFEmployee, &det.EPFEmployer, &det.EPSEmployer,
			&det.ESICEmployee, &det.ESICEmployer, &det.PTAmount, &det.TDSAmount,
			&det.LWFEmployee, &det.LWFEmployer,
			&det.Advances, &det.Fines, &det.Damages, &det.TotalDeducted,
			&det.NetPay, &det.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, det)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
