package payroll

import (
	"context"

	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/salary"
	"go-hrms/internal/shared/daterange"
)

// Payroll owns no table. It reads three stores through these interfaces,
// which employee.Repository, salary.Repository and leave.Repository satisfy.

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type EmployeeReader interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

type SalaryReader interface {
	FindByEmployeeID(ctx context.Context, employeeID string) (*salary.SalaryStructure, error)
}

type LeaveReader interface {
	FindApprovedInRange(ctx context.Context, employeeID, leaveType string, r daterange.Range) ([]leave.LeaveRequest, error)
}
