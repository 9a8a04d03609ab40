package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wagebook/wagebook-backend-go/internal/domain/employee"
	"github.com/wagebook/wagebook-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, employee_code, full_name, designation, gender,
	date_of_joining, normal_wages, hra_payable, gross_wages,
	epf_applicable, esic_applicable, pt_applicable, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.Designation,
		&emp.Gender, &emp.DateOfJoining, &emp.NormalWages, &emp.HRAPayable,
		&emp.GrossWages, &emp.EPFApplicable, &emp.ESICApplicable, &emp.PTApplicable,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// UpsertByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpsertByCode(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, company_id, employee_code, full_name, designation, gender,
			date_of_joining, normal_wages, hra_payable, gross_wages,
			epf_applicable, esic_applicable, pt_applicable
		) VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (company_id, employee_code) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			designation = COALESCE(EXCLUDED.designation, employees.designation),
			date_of_joining = COALESCE(EXCLUDED.date_of_joining, employees.date_of_joining),
			normal_wages = EXCLUDED.normal_wages,
			hra_payable = EXCLUDED.hra_payable,
			gross_wages = EXCLUDED.gross_wages,
			epf_applicable = EXCLUDED.epf_applicable,
			esic_applicable = EXCLUDED.esic_applicable,
			pt_applicable = EXCLUDED.pt_applicable,
			updated_at = NOW()
		RETURNING ` + employeeColumns

	stored, err := scanEmployee(q.QueryRow(ctx, query,
		emp.CompanyID, emp.EmployeeCode, emp.FullName, emp.Designation, emp.Gender,
		emp.DateOfJoining, emp.NormalWages, emp.HRAPayable, emp.GrossWages,
		emp.EPFApplicable, emp.ESICApplicable, emp.PTApplicable,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to upsert employee %s: %w", emp.EmployeeCode, err)
	}
	return stored, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCode(ctx context.Context, companyID, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 AND employee_code = $2`

	emp, err := scanEmployee(q.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}
	return emp, nil
}

// GetByExactName implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByExactName(ctx context.Context, companyID, name string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 AND full_name = $2`

	rows, err := q.Query(ctx, query, companyID, name)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee by name: %w", err)
	}
	defer rows.Close()

	var matches []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return employee.Employee{}, err
		}
		matches = append(matches, emp)
	}
	if err = rows.Err(); err != nil {
		return employee.Employee{}, err
	}

	switch len(matches) {
	case 0:
		return employee.Employee{}, employee.ErrEmployeeNotFound
	case 1:
		return matches[0], nil
	default:
		return employee.Employee{}, employee.ErrAmbiguousName
	}
}

// GetByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 ORDER BY employee_code`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}
