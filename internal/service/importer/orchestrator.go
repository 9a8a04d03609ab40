package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wagebook/wagebook-backend-go/internal/domain/employee"
	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
	"github.com/wagebook/wagebook-backend-go/internal/domain/payrollrun"
	"github.com/wagebook/wagebook-backend-go/internal/pkg/validator"
)

// TxRunner executes fn atomically. The postgres implementation opens a
// transaction and threads it through the context; the memory implementation
// used by tests just calls fn.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImportService is the four-stage import orchestrator. Stage 1 (employee
// resolution) is row-isolated and commits as it goes; stages 2-4 run inside
// one transaction under a per-(company, month) lease, so a rerun or a
// concurrent import can never interleave with the delete-then-insert
// replacement of attendance and payroll detail. That asymmetry is the
// design: row faults degrade gracefully, pipeline faults abort.
type ImportService struct {
	tx         TxRunner
	employees  employee.EmployeeRepository
	runs       payrollrun.RunRepository
	attendance payrollrun.AttendanceRepository
	details    payrollrun.DetailRepository
	calc       payrollrun.Calculator
	logger     *slog.Logger
}

func NewImportService(
	tx TxRunner,
	employees employee.EmployeeRepository,
	runs payrollrun.RunRepository,
	attendance payrollrun.AttendanceRepository,
	details payrollrun.DetailRepository,
	calc payrollrun.Calculator,
	logger *slog.Logger,
) *ImportService {
	return &ImportService{
		tx:         tx,
		employees:  employees,
		runs:       runs,
		attendance: attendance,
		details:    details,
		calc:       calc,
		logger:     logger,
	}
}

type resolvedEmployee struct {
	employeeID string
	gender     employee.Gender
	row        importer.ParsedRow
}

// commitEligible reports whether a row may be committed under the given
// mode. A bad date of joining only disqualifies a row from a full import;
// attendance and wages imports tolerate it when it is the only problem.
func commitEligible(row importer.ParsedRow, mode importer.Mode) bool {
	if row.Valid() {
		return true
	}
	if mode == importer.ModeAll {
		return false
	}
	return len(row.Errors) == 1 && row.Errors[0] == ErrMsgBadJoiningDate
}

// Run reconciles the session's rows into the store for one company-month.
// Preconditions reject the whole call with no effect; after that, stage 1
// failures accumulate per row while stage 2-4 failures abort the pipeline
// (stage 1's successes stay committed).
func (s *ImportService) Run(
	ctx context.Context,
	session importer.ImportSession,
	companyID string,
	month string,
	workingDays int,
	mode importer.Mode,
) (importer.ImportSummary, error) {
	summary := importer.ImportSummary{DBFailures: []importer.DBFailure{}}

	if companyID == "" {
		return summary, importer.ErrNoCompany
	}
	if !validator.IsValidMonth(month) {
		return summary, payrollrun.ErrInvalidMonth
	}
	if workingDays < 1 || workingDays > 31 {
		return summary, payrollrun.ErrInvalidDays
	}

	var eligible []importer.ParsedRow
	for _, row := range session.Rows {
		summary.RowsParsed++
		if row.Valid() {
			summary.ValidRows++
		} else {
			summary.RowErrorCount++
		}
		if commitEligible(row, mode) {
			eligible = append(eligible, row)
		}
	}
	if len(eligible) == 0 {
		return summary, importer.ErrNoValidRows
	}

	// Stage 1: employee resolution, strictly sequential so each failure
	// attributes to exactly one row.
	resolved := s.resolveEmployees(ctx, eligible, companyID, mode, &summary)
	summary.EmployeesImported = len(resolved)
	if len(resolved) == 0 {
		return summary, importer.ErrNoValidRows
	}

	// Stages 2-4: one transaction, one lease.
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.runs.AcquireImportLease(ctx, companyID, month); err != nil {
			return err
		}

		run, err := s.upsertRun(ctx, companyID, month, workingDays, mode)
		if err != nil {
			return fmt.Errorf("payroll run: %w", err)
		}

		if mode == importer.ModeAll || mode == importer.ModeAttendance {
			if err := s.replaceAttendance(ctx, run, resolved, workingDays); err != nil {
				return fmt.Errorf("attendance: %w", err)
			}
		}

		if mode == importer.ModeAll {
			if err := s.replaceDetails(ctx, run, resolved, workingDays, month); err != nil {
				return fmt.Errorf("payroll detail: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("import pipeline failed",
			"company_id", companyID, "month", month, "mode", string(mode), "error", err)
		return summary, err
	}

	s.logger.Info("import completed",
		"company_id", companyID, "month", month, "mode", string(mode),
		"employees", summary.EmployeesImported, "row_errors", summary.RowErrorCount,
		"db_failures", len(summary.DBFailures))
	return summary, nil
}

func (s *ImportService) resolveEmployees(
	ctx context.Context,
	rows []importer.ParsedRow,
	companyID string,
	mode importer.Mode,
	summary *importer.ImportSummary,
) []resolvedEmployee {
	var resolved []resolvedEmployee

	for _, row := range rows {
		var emp employee.Employee
		var err error

		if mode == importer.ModeAttendance {
			emp, err = s.lookupExisting(ctx, companyID, row)
		} else {
			emp, err = s.upsertFromRow(ctx, companyID, row)
		}
		if err != nil {
			summary.DBFailures = append(summary.DBFailures, importer.DBFailure{
				Name:   row.Name,
				Reason: failureReason(err),
			})
			continue
		}
		resolved = append(resolved, resolvedEmployee{
			employeeID: emp.ID,
			gender:     emp.Gender,
			row:        row,
		})
	}

	return resolved
}

func (s *ImportService) upsertFromRow(ctx context.Context, companyID string, row importer.ParsedRow) (employee.Employee, error) {
	code := strings.TrimSpace(row.EmpCode)
	if code == "" {
		// No code column or a blank cell. Reuse the code of the one
		// employee already carrying this exact name so a reimport lands on
		// the same record; only a genuinely new name gets a fresh code. A
		// name collision cannot be resolved without a code and fails the
		// row.
		existing, err := s.employees.GetByExactName(ctx, companyID, row.Name)
		switch {
		case err == nil:
			code = existing.EmployeeCode
		case errors.Is(err, employee.ErrEmployeeNotFound):
			code = "EMP-" + strings.ToUpper(uuid.NewString()[:8])
		default:
			return employee.Employee{}, err
		}
	}

	emp := employee.Employee{
		CompanyID:    companyID,
		EmployeeCode: code,
		FullName:     row.Name,
		Gender:       employee.Unspecified,
		NormalWages:  row.NormalWages,
		HRAPayable:   row.HRAPayable,
		GrossWages:   row.GrossWages,
		// Applicability is re-derived from this import's wages, never
		// copied forward from a previous one.
		EPFApplicable:  row.NormalWages.IsPositive(),
		ESICApplicable: s.calc.ESIC(row.GrossWages).Applicable,
		PTApplicable:   true,
	}
	if row.Designation != "" {
		emp.Designation = &row.Designation
	}
	if row.DateOfJoining != nil {
		if t, ok := parseFlexibleDate(*row.DateOfJoining); ok {
			emp.DateOfJoining = &t
		}
	}

	return s.employees.UpsertByCode(ctx, emp)
}

func (s *ImportService) lookupExisting(ctx context.Context, companyID string, row importer.ParsedRow) (employee.Employee, error) {
	if code := strings.TrimSpace(row.EmpCode); code != "" {
		emp, err := s.employees.GetByCode(ctx, companyID, code)
		if err == nil {
			return emp, nil
		}
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
	}
	// Name match only succeeds when it is unambiguous; colliding names
	// must be disambiguated by a wages/all import that assigns codes.
	return s.employees.GetByExactName(ctx, companyID, row.Name)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return "no matching employee; run a wages or all import first"
	case errors.Is(err, employee.ErrAmbiguousName):
		return "multiple employees share this name; add an employee code column to disambiguate"
	default:
		return SanitizeDBError(err)
	}
}

// upsertRun creates or refreshes the month's run. Only a full import marks
// the run imported; a wages- or attendance-only import leaves a new run in
// draft and never downgrades one a full import already completed.
func (s *ImportService) upsertRun(ctx context.Context, companyID, month string, workingDays int, mode importer.Mode) (payrollrun.PayrollRun, error) {
	run, err := s.runs.GetByMonth(ctx, companyID, month)
	if errors.Is(err, payrollrun.ErrRunNotFound) {
		status := payrollrun.StatusDraft
		if mode == importer.ModeAll {
			status = payrollrun.StatusImported
		}
		return s.runs.Create(ctx, payrollrun.PayrollRun{
			CompanyID:   companyID,
			Month:       month,
			WorkingDays: workingDays,
			Status:      status,
		})
	}
	if err != nil {
		return payrollrun.PayrollRun{}, err
	}

	run.WorkingDays = workingDays
	if mode == importer.ModeAll {
		run.Status = payrollrun.StatusImported
	}
	return s.runs.Update(ctx, run)
}

func (s *ImportService) replaceAttendance(ctx context.Context, run payrollrun.PayrollRun, resolved []resolvedEmployee, workingDays int) error {
	if err := s.attendance.DeleteByRunID(ctx, run.ID); err != nil {
		return err
	}

	rows := make([]payrollrun.Attendance, 0, len(resolved))
	for _, re := range resolved {
		unpaid := workingDays - re.row.Attendance.DaysWorked
		if unpaid < 0 {
			unpaid = 0
		}
		rows = append(rows, payrollrun.Attendance{
			PayrollRunID: run.ID,
			EmployeeID:   re.employeeID,
			DaysPresent:  re.row.Attendance.DaysWorked,
			UnpaidLeave:  unpaid,
			DailyMarks:   re.row.Attendance.DailyMarks,
		})
	}
	return s.attendance.BulkInsert(ctx, rows)
}

func (s *ImportService) replaceDetails(ctx context.Context, run payrollrun.PayrollRun, resolved []resolvedEmployee, workingDays int, month string) error {
	if err := s.details.DeleteByRunID(ctx, run.ID); err != nil {
		return err
	}

	monthNum, err := strconv.Atoi(month[5:])
	if err != nil {
		return payrollrun.ErrInvalidMonth
	}

	days := decimal.NewFromInt(int64(workingDays))
	rows := make([]payrollrun.PayrollDetail, 0, len(resolved))
	for _, re := range resolved {
		row := re.row
		worked := row.Attendance.DaysWorked
		if worked > workingDays {
			worked = workingDays
		}
		ratio := decimal.NewFromInt(int64(worked)).Div(days)

		basicEarned := row.NormalWages.Mul(ratio).Round(2)
		hraEarned := row.HRAPayable.Mul(ratio).Round(2)
		grossEarned := row.GrossWages.Mul(ratio).Round(2)

		epf := s.calc.EPF(basicEarned)
		esic := s.calc.ESIC(grossEarned)
		pt := s.calc.ProfessionalTax(grossEarned, monthNum)
		tds := s.calc.TDS(grossEarned.Mul(decimal.NewFromInt(12)))
		lwf := s.calc.LWF(monthNum, true)

		totalDeducted := epf.EmployeeShare.
			Add(esic.EmployeeShare).
			Add(pt).
			Add(tds.MonthlyTDS).
			Add(lwf.EmployeeShare).
			Add(row.Deductions.Total)

		netPay := grossEarned.Sub(totalDeducted)
		if netPay.IsNegative() {
			netPay = decimal.Zero
		}

		rows = append(rows, payrollrun.PayrollDetail{
			PayrollRunID:  run.ID,
			EmployeeID:    re.employeeID,
			DaysWorked:    worked,
			BasicEarned:   basicEarned,
			HRAEarned:     hraEarned,
			GrossEarned:   grossEarned,
			EPFEmployee:   epf.EmployeeShare,
			EPFEmployer:   epf.EmployerEPF,
			EPSEmployer:   epf.EmployerEPS,
			ESICEmployee:  esic.EmployeeShare,
			ESICEmployer:  esic.EmployerShare,
			PTAmount:      pt,
			TDSAmount:     tds.MonthlyTDS,
			LWFEmployee:   lwf.EmployeeShare,
			LWFEmployer:   lwf.EmployerShare,
			Advances:      row.Deductions.Advances,
			Fines:         row.Deductions.Fines,
			Damages:       row.Deductions.Damages,
			TotalDeducted: totalDeducted,
			NetPay:        netPay,
		})
	}
	return s.details.BulkInsert(ctx, rows)
}
