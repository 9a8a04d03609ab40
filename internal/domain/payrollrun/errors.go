package payrollrun

import "errors"

var (
	ErrRunNotFound  = errors.New("payroll run not found")
	ErrRunLocked    = errors.New("another import is running for this month")
	ErrInvalidMonth = errors.New("month must be in YYYY-MM form")
	ErrInvalidDays  = errors.New("working days must be between 1 and 31")
)
