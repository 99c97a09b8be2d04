package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-hrms/internal/events"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/daterange"
	"go-hrms/internal/visibility"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const leaveAggregateType = "leave_request"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, caller visibility.Principal, req ApplyLeaveRequest) (LeaveResponse, error)
	FindAll(ctx context.Context, scope visibility.Scope) ([]LeaveResponse, error)
	GetByID(ctx context.Context, scope visibility.Scope, id string) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, actor visibility.Principal, id string, req UpdateStatusRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, caller visibility.Principal, id string) (LeaveResponse, error)
	IsEmployeeOnLeave(ctx context.Context, employeeID string, day time.Time) (bool, error)
	GetStatistics(ctx context.Context, scope visibility.Scope) (StatisticsResponse, error)
}

type Option func(*service)

func WithLogger(l *zap.Logger) Option {
	return func(s *service) {
		if l != nil {
			s.logger = l.Named("leave.service")
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, opts ...Option) Service {
	s := &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		now:    time.Now,
		logger: zap.L().Named("leave.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Apply(ctx context.Context, caller visibility.Principal, req ApplyLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	targetID, err := resolveTarget(caller, req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	employeeUUID, err := uuid.Parse(targetID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	leaveType := strings.ToUpper(strings.TrimSpace(req.LeaveType))
	if !IsApplicableType(leaveType) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	rng, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	log.Debug("apply leave requested",
		zap.String("employee_id", targetID),
		zap.String("leave_type", leaveType),
		zap.String("range", rng.String()),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.LockEmployee(ctx, targetID); err != nil {
		log.Error("apply leave lock failed", zap.String("employee_id", targetID), zap.Error(err))
		return LeaveResponse{}, err
	}

	exists, err := qtx.EmployeeExists(ctx, targetID)
	if err != nil {
		log.Error("apply leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	overlap, err := qtx.HasOverlap(ctx, targetID, rng)
	if err != nil {
		log.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		log.Warn("apply leave overlap detected", zap.String("employee_id", targetID), zap.String("range", rng.String()))
		return LeaveResponse{}, leaveerrors.ErrOverlappingLeave
	}

	worked, err := qtx.HasAttendanceInRange(ctx, targetID, rng)
	if err != nil {
		log.Error("apply leave attendance check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if worked {
		log.Warn("apply leave blocked by attendance", zap.String("employee_id", targetID), zap.String("range", rng.String()))
		return LeaveResponse{}, leaveerrors.ErrRetroactiveLeaveBlocked
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  leaveType,
		StartDate:  rng.Start,
		EndDate:    rng.End,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusPending,
		AppliedAt:  s.now().UTC(),
	}
	if err := qtx.Create(ctx, l); err != nil {
		err = mapRepositoryError(err)
		if apperror.IsExpected(err) {
			log.Warn("apply leave rejected by store", zap.String("employee_id", targetID), zap.Error(err))
		} else {
			log.Error("apply leave persist failed", zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	log.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", targetID),
	)
	return mapToResponse(*l), nil
}

// resolveTarget picks the employee the leave is for: an explicit id when the
// caller may act for others, otherwise the caller's own profile.
func resolveTarget(caller visibility.Principal, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" && requested != caller.EmployeeID {
		if !caller.IsPrivileged() {
			return "", leaveerrors.ErrApplyOnBehalfForbidden
		}
		return requested, nil
	}
	if caller.EmployeeID == "" {
		return "", apperror.ErrProfileNotFound
	}
	return caller.EmployeeID, nil
}

func parseRange(start, end string) (daterange.Range, error) {
	startDate, err := daterange.Parse(start)
	if err != nil {
		return daterange.Range{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := daterange.Parse(end)
	if err != nil {
		return daterange.Range{}, leaveerrors.ErrInvalidDateFormat
	}
	rng, err := daterange.New(startDate, endDate)
	if err != nil {
		return daterange.Range{}, leaveerrors.ErrInvalidDateRange
	}
	return rng, nil
}

func (s *service) FindAll(ctx context.Context, scope visibility.Scope) ([]LeaveResponse, error) {
	if !scope.HasProfile() {
		return []LeaveResponse{}, nil
	}

	leaves, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("find all leaves failed", zap.String("scope", scope.String()), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, scope visibility.Scope, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	// Requests outside the caller's scope look missing rather than forbidden.
	if !scope.Permits(l.EmployeeID.String()) {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*l), nil
}

func (s *service) UpdateStatus(ctx context.Context, actor visibility.Principal, id string, req UpdateStatusRequest) (LeaveResponse, error) {
	target := strings.ToUpper(strings.TrimSpace(req.Status))
	if target != StatusApproved && target != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}
	override := strings.ToUpper(strings.TrimSpace(req.LeaveType))
	if override != "" && !IsApplicableType(override) && override != TypeCasual {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	return s.transition(ctx, actor, id, func(l *LeaveRequest) error {
		if l.Status != StatusPending {
			return leaveerrors.AlreadyProcessed(l.Status)
		}
		l.Status = target
		// the type can only be reclassified when approving
		if override != "" && target == StatusApproved {
			l.LeaveType = override
		}
		return nil
	}, false)
}

// Cancel moves the caller's own PENDING request to REJECTED.
func (s *service) Cancel(ctx context.Context, caller visibility.Principal, id string) (LeaveResponse, error) {
	return s.transition(ctx, caller, id, func(l *LeaveRequest) error {
		if caller.EmployeeID == "" || l.EmployeeID.String() != caller.EmployeeID {
			return leaveerrors.ErrNotOwner
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrNotCancellable
		}
		l.Status = StatusRejected
		return nil
	}, true)
}

func (s *service) transition(
	ctx context.Context,
	actor visibility.Principal,
	id string,
	apply func(l *LeaveRequest) error,
	cancelled bool,
) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("leave transition begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		err = mapRepositoryError(err)
		if !apperror.IsExpected(err) {
			log.Error("leave transition load failed", zap.String("leave_id", id), zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	from := l.Status
	if err := apply(l); err != nil {
		log.Warn("leave transition rejected",
			zap.String("leave_id", id),
			zap.String("status", from),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	now := s.now().UTC()
	l.ProcessedAt = &now
	if actorID, err := uuid.Parse(actor.UserID); err == nil {
		l.ProcessedBy = &actorID
	}

	if err := qtx.UpdateStatus(ctx, l); err != nil {
		log.Error("leave transition persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		leaveAggregateType,
		l.ID.String(),
		events.LeaveStatusChangedType,
		events.LeaveStatusChangedTopic,
		events.LeaveStatusChangedEvent{
			EventType:   events.LeaveStatusChangedType,
			RequestID:   contextutil.GetRequestID(ctx),
			LeaveID:     l.ID.String(),
			EmployeeID:  l.EmployeeID.String(),
			LeaveType:   l.LeaveType,
			StartDate:   l.StartDate.Format(daterange.Layout),
			EndDate:     l.EndDate.Format(daterange.Layout),
			FromStatus:  from,
			ToStatus:    l.Status,
			Cancelled:   cancelled,
			ActorUserID: actor.UserID,
			OccurredAt:  now,
		},
	)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("leave transition outbox persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("leave transition commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("leave status changed",
		zap.String("leave_id", id),
		zap.String("from_status", from),
		zap.String("to_status", l.Status),
		zap.Bool("cancelled", cancelled),
	)
	return mapToResponse(*l), nil
}

// IsEmployeeOnLeave reads committed state on every call; approvals are
// visible to the very next check.
func (s *service) IsEmployeeOnLeave(ctx context.Context, employeeID string, day time.Time) (bool, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return false, leaveerrors.ErrInvalidEmployeeID
	}
	onLeave, err := s.repo.IsOnApprovedLeave(ctx, employeeID, daterange.StartOfDay(day))
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("approved leave lookup failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return false, err
	}
	return onLeave, nil
}

func (s *service) GetStatistics(ctx context.Context, scope visibility.Scope) (StatisticsResponse, error) {
	if !scope.HasProfile() {
		return StatisticsResponse{}, nil
	}

	counts, err := s.repo.CountByStatus(ctx, scope)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("leave statistics failed", zap.Error(err))
		return StatisticsResponse{}, err
	}

	stats := StatisticsResponse{
		Pending:  counts[StatusPending],
		Approved: counts[StatusApproved],
		Rejected: counts[StatusRejected],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	rng := daterange.Range{Start: daterange.StartOfDay(l.StartDate), End: daterange.StartOfDay(l.EndDate)}
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  rng.Start.Format(daterange.Layout),
		EndDate:    rng.End.Format(daterange.Layout),
		TotalDays:  rng.Days(),
		Reason:     l.Reason,
		Status:     l.Status,
		AppliedAt:  l.AppliedAt.UTC().Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName()
		resp.EmployeeCode = l.Employee.EmployeeCode
	}
	if l.ProcessedBy != nil {
		v := l.ProcessedBy.String()
		resp.ProcessedBy = &v
	}
	if l.ProcessedAt != nil {
		v := l.ProcessedAt.UTC().Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
