package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/shared/daterange"
	"go-hrms/internal/visibility"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter narrows a record listing. Zero From/To leave that side unbounded;
// zero Limit means no limit.
type Filter struct {
	Scope visibility.Scope
	From  *time.Time
	To    *time.Time
	Limit int
}

type Stats struct {
	Total        int64
	Present      int64
	AverageHours decimal.NullDecimal
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockEmployee(ctx context.Context, employeeID string) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	Create(ctx context.Context, a *AttendanceRecord) error
	FindByID(ctx context.Context, id string) (*AttendanceRecord, error)
	// FindOpen returns the record without a check-out for the given day.
	FindOpen(ctx context.Context, employeeID string, day time.Time) (*AttendanceRecord, error)
	// FindForDay prefers the open record, then the latest check-in.
	FindForDay(ctx context.Context, employeeID string, day time.Time) (*AttendanceRecord, error)
	UpdateCheckOut(ctx context.Context, a *AttendanceRecord) error
	FindAll(ctx context.Context, f Filter) ([]AttendanceRecord, error)
	Statistics(ctx context.Context, scope visibility.Scope) (Stats, error)
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

func (r *repository) Create(ctx context.Context, a *AttendanceRecord) error {
	return connection.Session(ctx, r.db, r.tx).Omit("Employee").Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*AttendanceRecord, error) {
	var a AttendanceRecord
	err := connection.Session(ctx, r.db, r.tx).
		Preload("Employee").
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindOpen(ctx context.Context, employeeID string, day time.Time) (*AttendanceRecord, error) {
	var a AttendanceRecord
	err := connection.Session(ctx, r.db, r.tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", day.Format(daterange.Layout)).
		Where("check_out IS NULL").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindForDay(ctx context.Context, employeeID string, day time.Time) (*AttendanceRecord, error) {
	var a AttendanceRecord
	err := connection.Session(ctx, r.db, r.tx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", day.Format(daterange.Layout)).
		Order("check_out IS NOT NULL, check_in DESC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) UpdateCheckOut(ctx context.Context, a *AttendanceRecord) error {
	return connection.Session(ctx, r.db, r.tx).
		Model(&AttendanceRecord{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"check_out":   a.CheckOut,
			"total_hours": a.TotalHours,
			"updated_at":  a.UpdatedAt,
		}).Error
}

func (r *repository) FindAll(ctx context.Context, f Filter) ([]AttendanceRecord, error) {
	q := connection.Session(ctx, r.db, r.tx).
		Scopes(f.Scope.Apply("employee_id")).
		Preload("Employee")
	if f.From != nil {
		q = q.Where("attendance_date >= ?", f.From.Format(daterange.Layout))
	}
	if f.To != nil {
		q = q.Where("attendance_date <= ?", f.To.Format(daterange.Layout))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []AttendanceRecord
	err := q.Order("attendance_date DESC, check_in DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Statistics(ctx context.Context, scope visibility.Scope) (Stats, error) {
	var s Stats
	err := connection.Session(ctx, r.db, r.tx).
		Model(&AttendanceRecord{}).
		Scopes(scope.Apply("employee_id")).
		Select(
			"COUNT(*) AS total, "+
				"COUNT(*) FILTER (WHERE status = ?) AS present, "+
				"AVG(total_hours) AS average_hours",
			StatusPresent,
		).
		Scan(&s).Error
	return s, err
}
