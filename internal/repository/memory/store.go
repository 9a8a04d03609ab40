// Package memory provides in-memory repository implementations. They back
// the service tests and the default (non-synced) mapping-profile store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wagebook/wagebook-backend-go/internal/domain/employee"
	"github.com/wagebook/wagebook-backend-go/internal/domain/mappingprofile"
	"github.com/wagebook/wagebook-backend-go/internal/domain/payrollrun"
)

// Store holds every entity table behind one mutex. A Store satisfies all of
// the repository interfaces plus the orchestrator's TxRunner; RunInTx simply
// calls fn, since there is nothing to roll back in memory.
type Store struct {
	mu sync.RWMutex

	employees map[string]employee.Employee          // id -> employee
	runs      map[string]payrollrun.PayrollRun      // id -> run
	atts      map[string][]payrollrun.Attendance    // runID -> rows
	details   map[string][]payrollrun.PayrollDetail // runID -> rows
	profiles  map[string]mappingprofile.MappingProfile
}

func NewStore() *Store {
	return &Store{
		employees: make(map[string]employee.Employee),
		runs:      make(map[string]payrollrun.PayrollRun),
		atts:      make(map[string][]payrollrun.Attendance),
		details:   make(map[string][]payrollrun.PayrollDetail),
		profiles:  make(map[string]mappingprofile.MappingProfile),
	}
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ===== employees =====

func (s *Store) UpsertByCode(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, existing := range s.employees {
		if existing.CompanyID == emp.CompanyID && existing.EmployeeCode == emp.EmployeeCode {
			emp.ID = id
			emp.CreatedAt = existing.CreatedAt
			emp.UpdatedAt = now
			if emp.Designation == nil {
				emp.Designation = existing.Designation
			}
			if emp.DateOfJoining == nil {
				emp.DateOfJoining = existing.DateOfJoining
			}
			s.employees[id] = emp
			return emp, nil
		}
	}

	emp.ID = uuid.NewString()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	s.employees[emp.ID] = emp
	return emp, nil
}

func (s *Store) GetByCode(_ context.Context, companyID, code string) (employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, emp := range s.employees {
		if emp.CompanyID == companyID && emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *Store) GetByExactName(_ context.Context, companyID, name string) (employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []employee.Employee
	for _, emp := range s.employees {
		if emp.CompanyID == companyID && emp.FullName == name {
			matches = append(matches, emp)
		}
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

func (s *Store) GetByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []employee.Employee
	for _, emp := range s.employees {
		if emp.CompanyID == companyID {
			result = append(result, emp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeCode < result[j].EmployeeCode })
	return result, nil
}

// ===== payroll runs =====

func (s *Store) GetByMonth(_ context.Context, companyID, month string) (payrollrun.PayrollRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, run := range s.runs {
		if run.CompanyID == companyID && run.Month == month {
			return run, nil
		}
	}
	return payrollrun.PayrollRun{}, payrollrun.ErrRunNotFound
}

func (s *Store) Create(_ context.Context, run payrollrun.PayrollRun) (payrollrun.PayrollRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.ID = uuid.NewString()
	run.CreatedAt = time.Now()
	run.UpdatedAt = run.CreatedAt
	s.runs[run.ID] = run
	return run, nil
}

func (s *Store) Update(_ context.Context, run payrollrun.PayrollRun) (payrollrun.PayrollRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.runs[run.ID]
	if !ok {
		return payrollrun.PayrollRun{}, payrollrun.ErrRunNotFound
	}
	run.CreatedAt = existing.CreatedAt
	run.UpdatedAt = time.Now()
	s.runs[run.ID] = run
	return run, nil
}

func (s *Store) AcquireImportLease(_ context.Context, _, _ string) error {
	// The store mutex already serializes writers.
	return nil
}

// RunCount reports how many runs exist for a company, across months.
func (s *Store) RunCount(companyID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, run := range s.runs {
		if run.CompanyID == companyID {
			n++
		}
	}
	return n
}

// ===== attendance =====

type attendanceStore struct{ *Store }

// Attendance returns the store viewed as an AttendanceRepository.
func (s *Store) Attendance() payrollrun.AttendanceRepository { return attendanceStore{s} }

func (a attendanceStore) DeleteByRunID(_ context.Context, runID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.atts, runID)
	return nil
}

func (a attendanceStore) BulkInsert(_ context.Context, rows []payrollrun.Attendance) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, row := range rows {
		row.ID = uuid.NewString()
		row.CreatedAt = time.Now()
		a.atts[row.PayrollRunID] = append(a.atts[row.PayrollRunID], row)
	}
	return nil
}

func (a attendanceStore) GetByRunID(_ context.Context, runID string) ([]payrollrun.Attendance, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]payrollrun.Attendance(nil), a.atts[runID]...), nil
}

// ===== payroll details =====

type detailStore struct{ *Store }

// Details returns the store viewed as a DetailRepository.
func (s *Store) Details() payrollrun.DetailRepository { return detailStore{s} }

func (d detailStore) DeleteByRunID(_ context.Context, runID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.details, runID)
	return nil
}

func (d detailStore) BulkInsert(_ context.Context, rows []payrollrun.PayrollDetail) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, row := range rows {
		row.ID = uuid.NewString()
		row.CreatedAt = time.Now()
		d.details[row.PayrollRunID] = append(d.details[row.PayrollRunID], row)
	}
	return nil
}

func (d detailStore) GetByRunID(_ context.Context, runID string) ([]payrollrun.PayrollDetail, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]payrollrun.PayrollDetail(nil), d.details[runID]...), nil
}

// ===== mapping profiles =====

type profileStore struct{ *Store }

// Profiles returns the store viewed as a ProfileRepository.
func (s *Store) Profiles() mappingprofile.ProfileRepository { return profileStore{s} }

func profileKey(clientID, name string) string { return clientID + "\x00" + name }

func (p profileStore) Save(_ context.Context, profile mappingprofile.MappingProfile) (mappingprofile.MappingProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := profileKey(profile.ClientID, profile.Name)
	if _, exists := p.profiles[key]; exists {
		return mappingprofile.MappingProfile{}, mappingprofile.ErrProfileNameExists
	}
	p.profiles[key] = profile
	return profile, nil
}

func (p profileStore) GetByName(_ context.Context, clientID, name string) (mappingprofile.MappingProfile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	profile, ok := p.profiles[profileKey(clientID, name)]
	if !ok {
		return mappingprofile.MappingProfile{}, mappingprofile.ErrProfileNotFound
	}
	return profile, nil
}

func (p profileStore) ListByClientID(_ context.Context, clientID string) ([]mappingprofile.MappingProfile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []mappingprofile.MappingProfile
	for _, profile := range p.profiles {
		if profile.ClientID == clientID {
			result = append(result, profile)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (p profileStore) Delete(_ context.Context, clientID, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := profileKey(clientID, name)
	if _, ok := p.profiles[key]; !ok {
		return mappingprofile.ErrProfileNotFound
	}
	delete(p.profiles, key)
	return nil
}
