package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leaveease/leaveease-backend-go/internal/config"
	"github.com/leaveease/leaveease-backend-go/internal/domain/employee"
	"github.com/leaveease/leaveease-backend-go/internal/domain/user"
	"github.com/leaveease/leaveease-backend-go/internal/pkg/email"
	leaveservice "github.com/leaveease/leaveease-backend-go/internal/service/leave"
)

type EmployeeService interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error)
	GetByID(ctx context.Context, id string) (employee.Employee, error)
	List(ctx context.Context) ([]employee.Employee, error)
	UpdateAllocation(ctx context.Context, id string, annualAllocation int) error
}

type EmployeeServiceImpl struct {
	tx           leaveservice.Transactor
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	emailService email.EmailService
	appCfg       config.AppConfig
	leaveCfg     config.LeaveConfig
}

func NewEmployeeService(
	tx leaveservice.Transactor,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	emailService email.EmailService,
	appCfg config.AppConfig,
	leaveCfg config.LeaveConfig,
) EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		emailService: emailService,
		appCfg:       appCfg,
		leaveCfg:     leaveCfg,
	}
}

// Create persists the employee record together with its login account and a
// one-time password setup token, then dispatches the setup email. The email
// is best-effort: a send failure is logged and never rolls back the creation.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	joiningDate, err := time.Parse("2006-01-02", req.JoiningDate)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to parse joining date: %w", err)
	}

	allocation := s.leaveCfg.DefaultAnnualAllocation
	if req.AnnualAllocation != nil {
		allocation = *req.AnnualAllocation
	}
	if allocation < 0 {
		return employee.Employee{}, employee.ErrInvalidAllocation
	}

	setupToken := uuid.NewString()

	var created employee.Employee
	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			Name:             req.Name,
			Email:            req.Email,
			Department:       req.Department,
			PhoneNumber:      req.PhoneNumber,
			JobType:          req.JobType,
			JoiningDate:      joiningDate,
			AnnualAllocation: allocation,
		})
		if err != nil {
			return err
		}

		_, err = s.userRepo.Create(ctx, user.User{
			Email:      req.Email,
			Role:       user.RoleEmployee,
			EmployeeID: &created.ID,
			SetupToken: &setupToken,
			FirstLogin: true,
		})
		if err != nil {
			return fmt.Errorf("failed to create user account: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	setupLink := fmt.Sprintf("%s/setup-password?token=%s", s.appCfg.BaseURL, setupToken)
	go func() {
		if err := s.emailService.SendPasswordSetup(created.Email, created.Name, setupLink); err != nil {
			slog.Error("Failed to send password setup email", "email", created.Email, "error", err)
		}
	}()

	return created, nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.Employee, error) {
	return s.employeeRepo.List(ctx)
}

func (s *EmployeeServiceImpl) UpdateAllocation(ctx context.Context, id string, annualAllocation int) error {
	if annualAllocation < 0 {
		return employee.ErrInvalidAllocation
	}
	return s.employeeRepo.UpdateAllocation(ctx, id, annualAllocation)
}
