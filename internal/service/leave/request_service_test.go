package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leaveease/leaveease-backend-go/internal/domain/employee"
	"github.com/leaveease/leaveease-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	tx           *fakeTransactor
	employeeRepo *fakeEmployeeRepo
	leaveRepo    *fakeLeaveRequestRepo
	provider     *fakeHolidayProvider
	service      *RequestService
}

func newServiceFixture(emps ...employee.Employee) *serviceFixture {
	tx := &fakeTransactor{}
	employeeRepo := newFakeEmployeeRepo(emps...)
	leaveRepo := newFakeLeaveRequestRepo()
	provider := &fakeHolidayProvider{}
	calculator := NewWorkdayCalculator(provider, "IN")
	ledger := NewBalanceLedger(leaveRepo)
	validator := NewRequestValidator(employeeRepo, leaveRepo, calculator, ledger)
	validator.now = func() time.Time { return testToday }

	return &serviceFixture{
		tx:           tx,
		employeeRepo: employeeRepo,
		leaveRepo:    leaveRepo,
		provider:     provider,
		service:      NewRequestService(tx, employeeRepo, leaveRepo, validator, ledger),
	}
}

func TestRequestService_Apply(t *testing.T) {
	f := newServiceFixture(testEmployee(24))

	created, err := f.service.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-06",
	})

	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
	assert.Equal(t, 5, created.Days)
	assert.Equal(t, []string{"emp-1"}, f.tx.locked)

	stored, err := f.leaveRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, stored.Status)
}

func TestRequestService_Apply_ViolationsPersistNothing(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 4),
		EndDate:    date(2026, time.March, 5),
		Days:       2,
		Status:     leave.LeaveRequestStatusPending,
	})

	_, err := f.service.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  "2026-03-05",
		EndDate:    "2026-03-06",
	})

	var violations leave.Violations
	require.True(t, errors.As(err, &violations))
	assert.Equal(t, leave.ViolationOverlappingRequest, violations[0].Code)
	assert.Len(t, f.leaveRepo.requests, 1, "failed apply must not persist a request")
}

func TestRequestService_Act_Approve(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	pending := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusPending,
	})

	acted, err := f.service.Act(context.Background(), leave.ActOnLeaveRequest{
		RequestID: pending.ID,
		Action:    "APPROVE",
	})

	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, acted.Status)
	require.NotNil(t, acted.ApprovedAt)
	assert.Equal(t, []string{"emp-1"}, f.tx.locked)
}

func TestRequestService_Act_ApproveInsufficientBalance(t *testing.T) {
	// Both requests were admissible at apply time against the same balance;
	// only one fits at approval time.
	f := newServiceFixture(testEmployee(8))
	first := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusPending,
	})
	second := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 9),
		EndDate:    date(2026, time.March, 13),
		Days:       5,
		Status:     leave.LeaveRequestStatusPending,
	})

	_, err := f.service.Act(context.Background(), leave.ActOnLeaveRequest{RequestID: first.ID, Action: "APPROVE"})
	require.NoError(t, err)

	_, err = f.service.Act(context.Background(), leave.ActOnLeaveRequest{RequestID: second.ID, Action: "APPROVE"})

	var violations leave.Violations
	require.True(t, errors.As(err, &violations))
	require.Len(t, violations, 1)
	assert.Equal(t, leave.ViolationInsufficientBalance, violations[0].Code)
	assert.Contains(t, violations[0].Message, "remaining: 3")

	stored, getErr := f.leaveRepo.GetByID(context.Background(), second.ID)
	require.NoError(t, getErr)
	assert.Equal(t, leave.LeaveRequestStatusPending, stored.Status, "failed approval must leave the request pending")
}

func TestRequestService_Act_RejectRequiresNote(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	pending := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusPending,
	})

	_, err := f.service.Act(context.Background(), leave.ActOnLeaveRequest{
		RequestID: pending.ID,
		Action:    "REJECT",
	})
	assert.True(t, errors.Is(err, leave.ErrMissingApproverNote))

	note := "headcount too low that week"
	acted, err := f.service.Act(context.Background(), leave.ActOnLeaveRequest{
		RequestID:    pending.ID,
		Action:       "REJECT",
		ApproverNote: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, acted.Status)
	require.NotNil(t, acted.ApproverNote)
	assert.Equal(t, note, *acted.ApproverNote)
}

func TestRequestService_Act_TerminalRequest(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	approved := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusApproved,
	})

	_, err := f.service.Act(context.Background(), leave.ActOnLeaveRequest{
		RequestID: approved.ID,
		Action:    "APPROVE",
	})

	assert.True(t, errors.Is(err, leave.ErrInvalidTransition))
}

func TestRequestService_Act_LostRaceIsConcurrentModification(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	pending := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusPending,
	})

	// A competing cancel commits while this approval waits for the lock.
	f.tx.onLock = func() {
		cancelled := leave.LeaveRequestStatusCancelled
		_ = f.leaveRepo.Update(context.Background(), leave.UpdateLeaveRequestParams{
			ID:     pending.ID,
			Status: &cancelled,
		})
	}

	_, err := f.service.Act(context.Background(), leave.ActOnLeaveRequest{
		RequestID: pending.ID,
		Action:    "APPROVE",
	})

	assert.True(t, errors.Is(err, leave.ErrConcurrentModification))
}

func TestRequestService_Act_NotFound(t *testing.T) {
	f := newServiceFixture(testEmployee(24))

	_, err := f.service.Act(context.Background(), leave.ActOnLeaveRequest{
		RequestID: "req-missing",
		Action:    "APPROVE",
	})

	assert.True(t, errors.Is(err, leave.ErrLeaveRequestNotFound))
}

func TestRequestService_Cancel(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	pending := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusPending,
	})

	err := f.service.Cancel(context.Background(), leave.CancelLeaveRequest{
		RequestID:  pending.ID,
		EmployeeID: "emp-1",
	})

	require.NoError(t, err)
	stored, err := f.leaveRepo.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusCancelled, stored.Status)
}

func TestRequestService_Cancel_ApprovedRequest(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	approved := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusApproved,
	})

	err := f.service.Cancel(context.Background(), leave.CancelLeaveRequest{
		RequestID:  approved.ID,
		EmployeeID: "emp-1",
	})

	assert.True(t, errors.Is(err, leave.ErrInvalidTransition))
}

func TestRequestService_Cancel_OwnershipMismatch(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	pending := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusPending,
	})

	err := f.service.Cancel(context.Background(), leave.CancelLeaveRequest{
		RequestID:  pending.ID,
		EmployeeID: "emp-2",
	})

	assert.True(t, errors.Is(err, leave.ErrOwnershipMismatch))
}

func TestRequestService_Modify(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	pending := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusPending,
	})

	reason := "shortened trip"
	modified, err := f.service.Modify(context.Background(), leave.ModifyLeaveRequest{
		RequestID:  pending.ID,
		EmployeeID: "emp-1",
		StartDate:  "2026-03-04",
		EndDate:    "2026-03-06",
		Reason:     &reason,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, modified.Days)
	assert.Equal(t, leave.LeaveRequestStatusPending, modified.Status)

	stored, err := f.leaveRepo.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.March, 4), stored.StartDate)
	assert.Equal(t, 3, stored.Days)
	require.NotNil(t, stored.Reason)
	assert.Equal(t, reason, *stored.Reason)
}

func TestRequestService_Modify_InvalidRangeLeavesRecordUntouched(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	pending := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusPending,
	})

	_, err := f.service.Modify(context.Background(), leave.ModifyLeaveRequest{
		RequestID:  pending.ID,
		EmployeeID: "emp-1",
		StartDate:  "2026-02-02",
		EndDate:    "2026-02-06",
	})

	var violations leave.Violations
	require.True(t, errors.As(err, &violations))
	assert.Equal(t, leave.ViolationPastStartDate, violations[0].Code)

	stored, getErr := f.leaveRepo.GetByID(context.Background(), pending.ID)
	require.NoError(t, getErr)
	assert.Equal(t, date(2026, time.March, 2), stored.StartDate)
	assert.Equal(t, 5, stored.Days)
}

func TestRequestService_Modify_TerminalRequest(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	rejected := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusRejected,
	})

	_, err := f.service.Modify(context.Background(), leave.ModifyLeaveRequest{
		RequestID:  rejected.ID,
		EmployeeID: "emp-1",
		StartDate:  "2026-03-09",
		EndDate:    "2026-03-13",
	})

	assert.True(t, errors.Is(err, leave.ErrInvalidTransition))
}

func TestRequestService_Balance(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		Days:       5,
		Status:     leave.LeaveRequestStatusApproved,
	})

	snapshot, err := f.service.Balance(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, 24, snapshot.Allocation)
	assert.Equal(t, 5, snapshot.Used)
	assert.Equal(t, 19, snapshot.Remaining)
}

func TestRequestService_Balance_UnknownEmployee(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.Balance(context.Background(), "emp-missing")

	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
}

func TestRequestService_ListByEmployee(t *testing.T) {
	f := newServiceFixture(testEmployee(24))
	approved := f.leaveRepo.seed(leave.LeaveRequest{EmployeeID: "emp-1", Days: 2, Status: leave.LeaveRequestStatusApproved})
	newest := f.leaveRepo.seed(leave.LeaveRequest{EmployeeID: "emp-1", Days: 3, Status: leave.LeaveRequestStatusPending})
	f.leaveRepo.seed(leave.LeaveRequest{EmployeeID: "emp-2", Days: 4, Status: leave.LeaveRequestStatusPending})

	requests, err := f.service.ListByEmployee(context.Background(), "emp-1", nil)

	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, newest.ID, requests[0].ID)

	status := leave.LeaveRequestStatusApproved
	filtered, err := f.service.ListByEmployee(context.Background(), "emp-1", &status)

	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, approved.ID, filtered[0].ID)
}
