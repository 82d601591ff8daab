package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leaveease/leaveease-backend-go/internal/domain/employee"
	"github.com/leaveease/leaveease-backend-go/internal/domain/holiday"
	"github.com/leaveease/leaveease-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday, so a same-week Mon-Fri range is entirely in the future.
var testToday = date(2026, time.March, 2)

type validatorFixture struct {
	employeeRepo *fakeEmployeeRepo
	leaveRepo    *fakeLeaveRequestRepo
	provider     *fakeHolidayProvider
	validator    *RequestValidator
}

func newValidatorFixture(emps ...employee.Employee) *validatorFixture {
	employeeRepo := newFakeEmployeeRepo(emps...)
	leaveRepo := newFakeLeaveRequestRepo()
	provider := &fakeHolidayProvider{sets: map[int]holiday.Set{}}
	calculator := NewWorkdayCalculator(provider, "IN")
	ledger := NewBalanceLedger(leaveRepo)
	v := NewRequestValidator(employeeRepo, leaveRepo, calculator, ledger)
	v.now = func() time.Time { return testToday }
	return &validatorFixture{
		employeeRepo: employeeRepo,
		leaveRepo:    leaveRepo,
		provider:     provider,
		validator:    v,
	}
}

func testEmployee(allocation int) employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		Name:             "Asha Rao",
		Email:            "asha@example.com",
		JoiningDate:      date(2025, time.January, 6),
		AnnualAllocation: allocation,
	}
}

func violationCodes(t *testing.T, err error) []leave.ViolationCode {
	t.Helper()
	var violations leave.Violations
	require.True(t, errors.As(err, &violations), "expected leave.Violations, got %v", err)
	codes := make([]leave.ViolationCode, 0, len(violations))
	for _, v := range violations {
		codes = append(codes, v.Code)
	}
	return codes
}

func TestRequestValidator_AdmissibleRequest(t *testing.T) {
	f := newValidatorFixture(testEmployee(24))

	days, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
	})

	require.NoError(t, err)
	assert.Equal(t, 5, days)
}

func TestRequestValidator_HolidayShortensCount(t *testing.T) {
	f := newValidatorFixture(testEmployee(24))
	f.provider.sets[2026] = holiday.NewSet(date(2026, time.March, 4))

	days, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, days)
}

func TestRequestValidator_EmployeeNotFoundSkipsHolidaySource(t *testing.T) {
	f := newValidatorFixture()

	_, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "missing",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
	})

	assert.Equal(t, []leave.ViolationCode{leave.ViolationEmployeeNotFound}, violationCodes(t, err))
	assert.Empty(t, f.provider.fetchYears, "holiday source must not be consulted for a missing employee")
}

func TestRequestValidator_PastStartDate(t *testing.T) {
	f := newValidatorFixture(testEmployee(24))

	_, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.February, 23),
		EndDate:    date(2026, time.March, 6),
	})

	assert.Equal(t, []leave.ViolationCode{leave.ViolationPastStartDate}, violationCodes(t, err))
}

func TestRequestValidator_PastEndAndInvertedCollected(t *testing.T) {
	f := newValidatorFixture(testEmployee(24))

	_, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 5),
		EndDate:    date(2026, time.February, 25),
	})

	assert.Equal(t, []leave.ViolationCode{
		leave.ViolationPastEndDate,
		leave.ViolationInvertedRange,
	}, violationCodes(t, err))
}

func TestRequestValidator_PreJoiningLeave(t *testing.T) {
	emp := testEmployee(24)
	emp.JoiningDate = date(2026, time.June, 1)
	f := newValidatorFixture(emp)

	_, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 9),
		EndDate:    date(2026, time.March, 13),
	})

	assert.Equal(t, []leave.ViolationCode{leave.ViolationPreJoiningLeave}, violationCodes(t, err))
}

func TestRequestValidator_OverlappingRequest(t *testing.T) {
	f := newValidatorFixture(testEmployee(24))
	f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 4),
		EndDate:    date(2026, time.March, 5),
		Days:       2,
		Status:     leave.LeaveRequestStatusPending,
	})

	_, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 5),
		EndDate:    date(2026, time.March, 6),
	})

	assert.Equal(t, []leave.ViolationCode{leave.ViolationOverlappingRequest}, violationCodes(t, err))
}

func TestRequestValidator_RejectedRequestFreesRange(t *testing.T) {
	f := newValidatorFixture(testEmployee(24))
	f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 4),
		EndDate:    date(2026, time.March, 5),
		Days:       2,
		Status:     leave.LeaveRequestStatusRejected,
	})

	days, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 4),
		EndDate:    date(2026, time.March, 5),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, days)
}

func TestRequestValidator_ModifyExcludesOwnRequest(t *testing.T) {
	f := newValidatorFixture(testEmployee(24))
	existing := f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 4),
		EndDate:    date(2026, time.March, 5),
		Days:       2,
		Status:     leave.LeaveRequestStatusPending,
	})

	days, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID:       "emp-1",
		StartDate:        date(2026, time.March, 4),
		EndDate:          date(2026, time.March, 6),
		ExcludeRequestID: &existing.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, days)
}

func TestRequestValidator_NoWorkingDays(t *testing.T) {
	f := newValidatorFixture(testEmployee(24))

	_, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 7),
		EndDate:    date(2026, time.March, 8),
	})

	assert.Equal(t, []leave.ViolationCode{leave.ViolationNoWorkingDays}, violationCodes(t, err))
}

func TestRequestValidator_InsufficientBalance(t *testing.T) {
	f := newValidatorFixture(testEmployee(3))

	_, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
	})

	var violations leave.Violations
	require.True(t, errors.As(err, &violations))
	require.Len(t, violations, 1)
	assert.Equal(t, leave.ViolationInsufficientBalance, violations[0].Code)
	assert.Contains(t, violations[0].Message, "remaining: 3")
}

func TestRequestValidator_ApprovedDaysReduceBalance(t *testing.T) {
	f := newValidatorFixture(testEmployee(6))
	f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.February, 2),
		EndDate:    date(2026, time.February, 6),
		Days:       5,
		Status:     leave.LeaveRequestStatusApproved,
	})

	_, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
	})

	assert.Equal(t, []leave.ViolationCode{leave.ViolationInsufficientBalance}, violationCodes(t, err))
}

func TestRequestValidator_CollectsMultipleViolations(t *testing.T) {
	emp := testEmployee(2)
	emp.JoiningDate = date(2026, time.June, 1)
	f := newValidatorFixture(emp)
	f.leaveRepo.seed(leave.LeaveRequest{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 4),
		EndDate:    date(2026, time.March, 5),
		Days:       2,
		Status:     leave.LeaveRequestStatusPending,
	})

	_, err := f.validator.Validate(context.Background(), ValidationInput{
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
	})

	assert.Equal(t, []leave.ViolationCode{
		leave.ViolationPreJoiningLeave,
		leave.ViolationOverlappingRequest,
		leave.ViolationInsufficientBalance,
	}, violationCodes(t, err))
}
