package attendance

import (
	"context"
	"time"
)

// LeaveChecker is the only thing attendance needs from leave. It must read
// committed state on every call.
//
//go:generate mockgen -source=leave_checker.go -destination=mock/leave_checker_mock.go -package=mock
type LeaveChecker interface {
	IsEmployeeOnLeave(ctx context.Context, employeeID string, day time.Time) (bool, error)
}
