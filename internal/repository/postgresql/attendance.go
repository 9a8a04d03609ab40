package postgresql

import (
	"context"
	"fmt"

	"github.com/wagebook/wagebook-backend-go/internal/domain/payrollrun"
	"github.com/wagebook/wagebook-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) payrollrun.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// DeleteByRunID implements payrollrun.AttendanceRepository.
func (a *attendanceRepositoryImpl) DeleteByRunID(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, a.db)

	_, err := q.Exec(ctx, `DELETE FROM attendance WHERE payroll_run_id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance for run %s: %w", runID, err)
	}
	return nil
}

// BulkInsert implements payrollrun.AttendanceRepository.
func (a *attendanceRepositoryImpl) BulkInsert(ctx context.Context, rows []payrollrun.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (id, payroll_run_id, employee_id, days_present, unpaid_leave, daily_marks)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
	`
	for _, row := range rows {
		if _, err := q.Exec(ctx, query,
			row.PayrollRunID, row.EmployeeID, row.DaysPresent, row.UnpaidLeave, row.DailyMarks,
		); err != nil {
			return fmt.Errorf("failed to insert attendance for employee %s: %w", row.EmployeeID, err)
		}
	}
	return nil
}

// GetByRunID implements payrollrun.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByRunID(ctx context.Context, runID string) ([]payrollrun.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, payroll_run_id, employee_id, days_present, unpaid_leave, daily_marks, created_at
		FROM attendance
		WHERE payroll_run_id = $1
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []payrollrun.Attendance
	for rows.Next() {
		var att payrollrun.Attendance
		err := rows.Scan(
			&att.ID, &att.PayrollRunID, &att.EmployeeID, &att.DaysPresent,
			&att.UnpaidLeave, &att.DailyMarks, &att.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
