package payrollrun

import (
	"context"

	"github.com/wagebook/wagebook-backend-go/internal/domain/payrollrun"
)

// RunOverview is the operator verification view of an imported month: the
// run itself plus everything the import wrote for it.
type RunOverview struct {
	Run        payrollrun.PayrollRun      `json:"run"`
	Attendance []payrollrun.Attendance    `json:"attendance"`
	Details    []payrollrun.PayrollDetail `json:"details"`
}

type RunService struct {
	runs       payrollrun.RunRepository
	attendance payrollrun.AttendanceRepository
	details    payrollrun.DetailRepository
}

func NewRunService(
	runs payrollrun.RunRepository,
	attendance payrollrun.AttendanceRepository,
	details payrollrun.DetailRepository,
) *RunService {
	return &RunService{runs: runs, attendance: attendance, details: details}
}

func (s *RunService) GetOverview(ctx context.Context, companyID, month string) (RunOverview, error) {
	run, err := s.runs.GetByMonth(ctx, companyID, month)
	if err != nil {
		return RunOverview{}, err
	}

	attendance, err := s.attendance.GetByRunID(ctx, run.ID)
	if err != nil {
		return RunOverview{}, err
	}
	details, err := s.details.GetByRunID(ctx, run.ID)
	if err != nil {
		return RunOverview{}, err
	}

	return RunOverview{Run: run, Attendance: attendance, Details: details}, nil
}
