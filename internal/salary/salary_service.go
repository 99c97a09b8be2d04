package salary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	salaryerrors "go-hrms/internal/salary/errors"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, employeeID string, monthlyWage decimal.Decimal) (SalaryResponse, error)
	Get(ctx context.Context, employeeID string) (SalaryResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{db: db, repo: repo, employees: employees, logger: l}
}

func (s *service) Upsert(ctx context.Context, employeeID string, monthlyWage decimal.Decimal) (SalaryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEmployeeID
	}
	if !monthlyWage.IsPositive() {
		return SalaryResponse{}, salaryerrors.ErrInvalidMonthlyWage
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("upsert salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	if _, err := s.employees.WithTx(tx).FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return SalaryResponse{}, salaryerrors.ErrEmployeeNotFound
		}
		log.Error("upsert salary load employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SalaryResponse{}, err
	}

	row := &SalaryStructure{
		ID:          uuid.New(),
		EmployeeID:  empID,
		MonthlyWage: monthlyWage.Round(2),
	}
	if err := s.repo.WithTx(tx).Upsert(ctx, row); err != nil {
		log.Error("upsert salary persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("upsert salary commit failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	log.Info("salary structure saved",
		zap.String("employee_id", employeeID),
		zap.String("monthly_wage", row.MonthlyWage.StringFixed(2)),
	)

	return mapToResponse(*row), nil
}

func (s *service) Get(ctx context.Context, employeeID string) (SalaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEmployeeID
	}

	row, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		err = mapRepositoryError(err)
		if !errors.Is(err, salaryerrors.ErrSalaryNotConfigured) {
			contextutil.GetLogger(ctx, s.logger).Error("get salary failed", zap.String("employee_id", employeeID), zap.Error(err))
		}
		return SalaryResponse{}, err
	}

	return mapToResponse(*row), nil
}

func mapToResponse(s SalaryStructure) SalaryResponse {
	resp := SalaryResponse{
		EmployeeID:  s.EmployeeID.String(),
		MonthlyWage: s.MonthlyWage.StringFixed(2),
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
