package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/shared/daterange"
	"go-hrms/internal/visibility"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// LockEmployee serializes writers for one employee until the tx ends.
	LockEmployee(ctx context.Context, employeeID string) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, scope visibility.Scope) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	UpdateStatus(ctx context.Context, l *LeaveRequest) error
	HasOverlap(ctx context.Context, employeeID string, r daterange.Range) (bool, error)
	HasAttendanceInRange(ctx context.Context, employeeID string, r daterange.Range) (bool, error)
	IsOnApprovedLeave(ctx context.Context, employeeID string, day time.Time) (bool, error)
	FindApprovedInRange(ctx context.Context, employeeID, leaveType string, r daterange.Range) ([]LeaveRequest, error)
	CountByStatus(ctx context.Context, scope visibility.Scope) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) LockEmployee(ctx context.Context, employeeID string) error {
	return connection.LockEmployee(connection.Session(ctx, r.db, r.tx), employeeID)
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := connection.Session(ctx, r.db, r.tx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return connection.Session(ctx, r.db, r.tx).Omit("Employee").Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, scope visibility.Scope) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := connection.Session(ctx, r.db, r.tx).
		Scopes(scope.Apply("employee_id")).
		Preload("Employee").
		Order("applied_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := connection.Session(ctx, r.db, r.tx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// FindByIDForUpdate row-locks the request so two reviewers cannot both
// move it out of PENDING.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := connection.Session(ctx, r.db, r.tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) UpdateStatus(ctx context.Context, l *LeaveRequest) error {
	return connection.Session(ctx, r.db, r.tx).
		Model(&LeaveRequest{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"status":       l.Status,
			"leave_type":   l.LeaveType,
			"processed_by": l.ProcessedBy,
			"processed_at": l.ProcessedAt,
			"updated_at":   time.Now().UTC(),
		}).Error
}

// HasOverlap looks for PENDING/APPROVED requests with start <= r.End and end >= r.Start.
func (r *repository) HasOverlap(ctx context.Context, employeeID string, rng daterange.Range) (bool, error) {
	var count int64
	err := connection.Session(ctx, r.db, r.tx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", rng.End, rng.Start).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasAttendanceInRange(ctx context.Context, employeeID string, rng daterange.Range) (bool, error) {
	var count int64
	err := connection.Session(ctx, r.db, r.tx).
		Table("attendance_records").
		Where("employee_id = ?", employeeID).
		Where("attendance_date BETWEEN ? AND ?", rng.Start, rng.End).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) IsOnApprovedLeave(ctx context.Context, employeeID string, day time.Time) (bool, error) {
	var count int64
	err := connection.Session(ctx, r.db, r.tx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count > 0, err
}

// FindApprovedInRange returns APPROVED requests of one type that start in,
// end in, or span across rng.
func (r *repository) FindApprovedInRange(ctx context.Context, employeeID, leaveType string, rng daterange.Range) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := connection.Session(ctx, r.db, r.tx).
		Where("employee_id = ?", employeeID).
		Where("leave_type = ?", leaveType).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", rng.End, rng.Start).
		Order("start_date").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) CountByStatus(ctx context.Context, scope visibility.Scope) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := connection.Session(ctx, r.db, r.tx).
		Model(&LeaveRequest{}).
		Scopes(scope.Apply("employee_id")).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
