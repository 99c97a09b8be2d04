package leave

import (
	"time"

	"go-hrms/internal/employee"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	TypePaid   = "PAID"
	TypeSick   = "SICK"
	TypeUnpaid = "UNPAID"
	// TypeCasual is legacy and only accepted as an override at approval time.
	TypeCasual = "CASUAL"
)

// LeaveRequest covers StartDate..EndDate, both days included. Dates are
// stored as date columns.
type LeaveRequest struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID          `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	Employee   *employee.Employee `gorm:"foreignKey:EmployeeID"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Reason    string    `gorm:"type:text"`

	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	AppliedAt   time.Time  `gorm:"not null"`
	ProcessedBy *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func IsApplicableType(t string) bool {
	switch t {
	case TypePaid, TypeSick, TypeUnpaid:
		return true
	default:
		return false
	}
}
