package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/daterange"
	"go-hrms/internal/visibility"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 30
	MaxHistoryLimit     = 365
)

var (
	hundred       = decimal.NewFromInt(100)
	millisPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))
)

type Service interface {
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	GetTodayStatus(ctx context.Context, employeeID string) (TodayStatusResponse, error)
	GetHistory(ctx context.Context, scope visibility.Scope, limit int) ([]AttendanceResponse, error)
	GetEmployeeAttendance(ctx context.Context, employeeID string, q DateRangeQuery) ([]AttendanceResponse, error)
	GetStatistics(ctx context.Context, scope visibility.Scope) (StatisticsResponse, error)
	ExportXLSX(ctx context.Context, scope visibility.Scope, q DateRangeQuery) ([]byte, error)
}

type Option func(*service)

func WithLogger(l *zap.Logger) Option {
	return func(s *service) {
		if l != nil {
			s.logger = l.Named("attendance.service")
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone whose calendar date counts as "today".
func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

type service struct {
	db     *sql.DB
	repo   Repository
	leaves LeaveChecker
	now    func() time.Time
	loc    *time.Location
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, leaves LeaveChecker, opts ...Option) Service {
	s := &service{
		db:     db,
		repo:   repo,
		leaves: leaves,
		now:    time.Now,
		loc:    time.UTC,
		logger: zap.L().Named("attendance.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) today() time.Time {
	return daterange.Today(s.now(), s.loc)
}

func validateEmployeeID(employeeID string) error {
	if employeeID == "" {
		return apperror.ErrProfileNotFound
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return attendanceerrors.ErrInvalidEmployeeID
	}
	return nil
}

func (s *service) CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := validateEmployeeID(employeeID); err != nil {
		return AttendanceResponse{}, err
	}
	today := s.today()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("check-in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.LockEmployee(ctx, employeeID); err != nil {
		log.Error("check-in lock failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		log.Error("check-in employee lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !exists {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	// The open record check runs before the leave lookup.
	_, err = qtx.FindOpen(ctx, employeeID, today)
	switch {
	case err == nil:
		log.Warn("check-in rejected, already checked in", zap.String("employee_id", employeeID))
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error("check-in open record lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	onLeave, err := s.leaves.IsEmployeeOnLeave(ctx, employeeID, today)
	if err != nil {
		log.Error("check-in leave lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if onLeave {
		log.Warn("check-in rejected, on approved leave", zap.String("employee_id", employeeID))
		return AttendanceResponse{}, attendanceerrors.ErrOnApprovedLeave
	}

	now := s.now().UTC()
	record := &AttendanceRecord{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(employeeID),
		AttendanceDate: today,
		CheckIn:        now,
		Status:         StatusPresent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := qtx.Create(ctx, record); err != nil {
		err = mapRepositoryError(err)
		if apperror.IsExpected(err) {
			log.Warn("check-in rejected by store", zap.String("employee_id", employeeID), zap.Error(err))
		} else {
			log.Error("check-in persist failed", zap.Error(err))
		}
		return AttendanceResponse{}, err
	}

	saved, err := qtx.FindByID(ctx, record.ID.String())
	if err != nil {
		log.Error("check-in reload failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("check-in commit failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	log.Info("check-in success",
		zap.String("attendance_id", saved.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("date", today.Format(daterange.Layout)),
	)
	return mapToResponse(*saved), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := validateEmployeeID(employeeID); err != nil {
		return AttendanceResponse{}, err
	}
	today := s.today()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("check-out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.LockEmployee(ctx, employeeID); err != nil {
		log.Error("check-out lock failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	record, err := qtx.FindOpen(ctx, employeeID, today)
	if err != nil {
		err = mapRepositoryError(err)
		if !apperror.IsExpected(err) {
			log.Error("check-out open record lookup failed", zap.Error(err))
		}
		return AttendanceResponse{}, err
	}
	if record.CheckIn.IsZero() {
		log.Error("check-out found record without check-in", zap.String("attendance_id", record.ID.String()))
		return AttendanceResponse{}, attendanceerrors.ErrInvalidRecord
	}

	now := s.now().UTC()
	record.CheckOut = &now
	record.TotalHours = decimal.NewNullDecimal(TotalHours(record.CheckIn, now))
	record.UpdatedAt = now

	if err := qtx.UpdateCheckOut(ctx, record); err != nil {
		log.Error("check-out persist failed", zap.String("attendance_id", record.ID.String()), zap.Error(err))
		return AttendanceResponse{}, err
	}

	saved, err := qtx.FindByID(ctx, record.ID.String())
	if err != nil {
		log.Error("check-out reload failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("check-out commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	log.Info("check-out success",
		zap.String("attendance_id", saved.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("total_hours", record.TotalHours.Decimal.StringFixed(2)),
	)
	return mapToResponse(*saved), nil
}

// TotalHours is wall-clock time between check-in and check-out, in hours
// rounded to two decimals.
func TotalHours(checkIn, checkOut time.Time) decimal.Decimal {
	elapsed := decimal.NewFromInt(checkOut.Sub(checkIn).Milliseconds())
	return elapsed.Div(millisPerHour).Round(2)
}

func (s *service) GetTodayStatus(ctx context.Context, employeeID string) (TodayStatusResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	today := s.today()
	resp := TodayStatusResponse{Date: today.Format(daterange.Layout)}

	// a principal without a linked profile has no attendance to report
	if err := validateEmployeeID(employeeID); err != nil {
		resp.Status = TodayUnknown
		return resp, nil
	}

	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		log.Error("today status employee lookup failed", zap.Error(err))
		return TodayStatusResponse{}, err
	}
	if !exists {
		resp.Status = TodayUnknown
		return resp, nil
	}

	onLeave, err := s.leaves.IsEmployeeOnLeave(ctx, employeeID, today)
	if err != nil {
		log.Error("today status leave lookup failed", zap.Error(err))
		return TodayStatusResponse{}, err
	}
	if onLeave {
		resp.Status = TodayOnLeave
		return resp, nil
	}

	record, err := s.repo.FindForDay(ctx, employeeID, today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.Status = TodayAbsent
		resp.CanCheckIn = true
		return resp, nil
	}
	if err != nil {
		log.Error("today status record lookup failed", zap.Error(err))
		return TodayStatusResponse{}, err
	}

	r := mapToResponse(*record)
	resp.Record = &r
	if record.IsOpen() {
		resp.Status = TodayPresent
		resp.CanCheckOut = true
	} else {
		resp.Status = TodayCompleted
	}
	return resp, nil
}

func (s *service) GetHistory(ctx context.Context, scope visibility.Scope, limit int) ([]AttendanceResponse, error) {
	if !scope.HasProfile() {
		return []AttendanceResponse{}, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	rows, err := s.repo.FindAll(ctx, Filter{Scope: scope, Limit: limit})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("attendance history failed",
			zap.String("scope", scope.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetEmployeeAttendance(ctx context.Context, employeeID string, q DateRangeQuery) ([]AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}
	from, to, err := parseBounds(q)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		log.Error("employee attendance lookup failed", zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}

	rows, err := s.repo.FindAll(ctx, Filter{Scope: visibility.Self(employeeID), From: from, To: to})
	if err != nil {
		log.Error("employee attendance list failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetStatistics(ctx context.Context, scope visibility.Scope) (StatisticsResponse, error) {
	if !scope.HasProfile() {
		return StatisticsResponse{}, nil
	}

	stats, err := s.repo.Statistics(ctx, scope)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("attendance statistics failed", zap.Error(err))
		return StatisticsResponse{}, err
	}
	return buildStatistics(stats), nil
}

func buildStatistics(stats Stats) StatisticsResponse {
	resp := StatisticsResponse{
		TotalRecords: stats.Total,
		PresentCount: stats.Present,
	}
	if stats.AverageHours.Valid {
		resp.AverageHours = stats.AverageHours.Decimal.Round(2).InexactFloat64()
	}
	if stats.Total > 0 {
		resp.AttendanceRate = decimal.NewFromInt(stats.Present).
			Div(decimal.NewFromInt(stats.Total)).
			Mul(hundred).
			Round(2).
			InexactFloat64()
	}
	return resp
}

// parseBounds reads an optional inclusive from/to pair.
func parseBounds(q DateRangeQuery) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if q.From != "" {
		d, err := daterange.Parse(q.From)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateFormat
		}
		from = &d
	}
	if q.To != "" {
		d, err := daterange.Parse(q.To)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateFormat
		}
		to = &d
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, attendanceerrors.ErrInvalidDateRange
	}
	return from, to, nil
}

func mapToResponse(a AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(daterange.Layout),
		CheckIn:        a.CheckIn.UTC().Format(time.RFC3339),
		Status:         a.Status,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName()
		resp.EmployeeCode = a.Employee.EmployeeCode
	}
	if a.CheckOut != nil {
		v := a.CheckOut.UTC().Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if a.TotalHours.Valid {
		v := a.TotalHours.Decimal.StringFixed(2)
		resp.TotalHours = &v
	}
	return resp
}

func mapToListResponse(rows []AttendanceRecord) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp
}
