package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/leaveease/leaveease-backend-go/internal/domain/employee"
	"github.com/leaveease/leaveease-backend-go/internal/domain/holiday"
	"github.com/leaveease/leaveease-backend-go/internal/domain/leave"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// fakeHolidayProvider serves canned per-year holiday sets and records which
// years were fetched.
type fakeHolidayProvider struct {
	sets       map[int]holiday.Set
	err        error
	fetchYears []int
}

func (f *fakeHolidayProvider) Fetch(_ context.Context, _ string, year int) (holiday.Set, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.fetchYears = append(f.fetchYears, year)
	if s, ok := f.sets[year]; ok {
		return s, nil
	}
	return holiday.Set{}, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, emp := range emps {
		repo.employees[emp.ID] = emp
	}
	return repo
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Create(_ context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	newEmployee.ID = fmt.Sprintf("emp-%d", len(f.employees)+1)
	f.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	result := make([]employee.Employee, 0, len(f.employees))
	for _, emp := range f.employees {
		result = append(result, emp)
	}
	return result, nil
}

func (f *fakeEmployeeRepo) UpdateAllocation(_ context.Context, id string, annualAllocation int) error {
	emp, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.AnnualAllocation = annualAllocation
	f.employees[id] = emp
	return nil
}

type fakeLeaveRequestRepo struct {
	requests map[string]leave.LeaveRequest
	order    []string
	seq      int
}

func newFakeLeaveRequestRepo() *fakeLeaveRequestRepo {
	return &fakeLeaveRequestRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRequestRepo) seed(lr leave.LeaveRequest) leave.LeaveRequest {
	created, _ := f.Create(context.Background(), lr)
	return created
}

func (f *fakeLeaveRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.seq++
	request.ID = fmt.Sprintf("req-%d", f.seq)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = request
	f.order = append(f.order, request.ID)
	return request, nil
}

func (f *fakeLeaveRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	lr, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return lr, nil
}

func (f *fakeLeaveRequestRepo) GetByEmployeeID(_ context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var result []leave.LeaveRequest
	for i := len(f.order) - 1; i >= 0; i-- {
		if lr := f.requests[f.order[i]]; lr.EmployeeID == employeeID {
			result = append(result, lr)
		}
	}
	return result, nil
}

func (f *fakeLeaveRequestRepo) GetByEmployeeAndStatus(_ context.Context, employeeID string, status leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	var result []leave.LeaveRequest
	for i := len(f.order) - 1; i >= 0; i-- {
		if lr := f.requests[f.order[i]]; lr.EmployeeID == employeeID && lr.Status == status {
			result = append(result, lr)
		}
	}
	return result, nil
}

func (f *fakeLeaveRequestRepo) Update(_ context.Context, update leave.UpdateLeaveRequestParams) error {
	lr, ok := f.requests[update.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if update.StartDate != nil {
		lr.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		lr.EndDate = *update.EndDate
	}
	if update.Days != nil {
		lr.Days = *update.Days
	}
	if update.Reason != nil {
		lr.Reason = update.Reason
	}
	if update.Status != nil {
		lr.Status = *update.Status
	}
	if update.ApprovedAt != nil {
		lr.ApprovedAt = update.ApprovedAt
	}
	if update.ApproverNote != nil {
		lr.ApproverNote = update.ApproverNote
	}
	lr.UpdatedAt = time.Now()
	f.requests[update.ID] = lr
	return nil
}

func (f *fakeLeaveRequestRepo) HasOverlapping(_ context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	for _, lr := range f.requests {
		if lr.EmployeeID != employeeID || !lr.Status.ConsumesRange() {
			continue
		}
		if excludeID != nil && lr.ID == *excludeID {
			continue
		}
		if leave.Overlaps(lr.StartDate, lr.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

// fakeTransactor runs the function inline and records which employees were
// locked, so tests can assert the serialization points. onLock, when set,
// runs while the lock is "held", standing in for a competing transaction that
// committed first.
type fakeTransactor struct {
	locked []string
	onLock func()
}

func (f *fakeTransactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTransactor) LockEmployee(_ context.Context, employeeID string) error {
	f.locked = append(f.locked, employeeID)
	if f.onLock != nil {
		f.onLock()
	}
	return nil
}
