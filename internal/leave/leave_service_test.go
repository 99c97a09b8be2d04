package leave_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/messaging/kafka"
	kafkaMock "go-hrms/internal/messaging/kafka/mock"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/daterange"
	"go-hrms/internal/visibility"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// memRepository keeps leave rows in memory and rejects overlapping
// PENDING/APPROVED inserts the way the exclusion constraint does.
type memRepository struct {
	mu         sync.Mutex
	employees  map[string]bool
	leaves     []leave.LeaveRequest
	attendance map[string][]time.Time
	lockCalls  int

	findAllFn func(ctx context.Context, scope visibility.Scope) ([]leave.LeaveRequest, error)
}

func newMemRepository(employeeIDs ...string) *memRepository {
	r := &memRepository{employees: map[string]bool{}, attendance: map[string][]time.Time{}}
	for _, id := range employeeIDs {
		r.employees[id] = true
	}
	return r
}

func (r *memRepository) seed(employeeID, status, leaveType, start, end string) leave.LeaveRequest {
	s, _ := daterange.Parse(start)
	e, _ := daterange.Parse(end)
	l := leave.LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		LeaveType:  leaveType,
		StartDate:  s,
		EndDate:    e,
		Status:     status,
		AppliedAt:  time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
	r.mu.Lock()
	r.leaves = append(r.leaves, l)
	r.mu.Unlock()
	return l
}

func (r *memRepository) WithTx(tx *sql.Tx) leave.Repository { return r }

func (r *memRepository) LockEmployee(ctx context.Context, employeeID string) error {
	r.mu.Lock()
	r.lockCalls++
	r.mu.Unlock()
	return nil
}

func (r *memRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.employees[employeeID], nil
}

func (r *memRepository) overlapsLocked(employeeID string, rng daterange.Range) bool {
	for _, l := range r.leaves {
		if l.EmployeeID.String() != employeeID {
			continue
		}
		if l.Status != leave.StatusPending && l.Status != leave.StatusApproved {
			continue
		}
		if (daterange.Range{Start: l.StartDate, End: l.EndDate}).Overlaps(rng) {
			return true
		}
	}
	return false
}

func (r *memRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overlapsLocked(l.EmployeeID.String(), daterange.Range{Start: l.StartDate, End: l.EndDate}) {
		return &pgconn.PgError{Code: "23P01", ConstraintName: "ex_leave_requests_no_overlap"}
	}
	r.leaves = append(r.leaves, *l)
	return nil
}

func (r *memRepository) FindAll(ctx context.Context, scope visibility.Scope) ([]leave.LeaveRequest, error) {
	if r.findAllFn != nil {
		return r.findAllFn(ctx, scope)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range r.leaves {
		if scope.Permits(l.EmployeeID.String()) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leaves {
		if r.leaves[i].ID.String() == id {
			l := r.leaves[i]
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepository) FindByIDForUpdate(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	return r.FindByID(ctx, id)
}

func (r *memRepository) UpdateStatus(ctx context.Context, l *leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leaves {
		if r.leaves[i].ID == l.ID {
			r.leaves[i] = *l
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memRepository) HasOverlap(ctx context.Context, employeeID string, rng daterange.Range) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlapsLocked(employeeID, rng), nil
}

func (r *memRepository) HasAttendanceInRange(ctx context.Context, employeeID string, rng daterange.Range) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.attendance[employeeID] {
		if rng.Contains(d) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepository) IsOnApprovedLeave(ctx context.Context, employeeID string, day time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leaves {
		if l.EmployeeID.String() == employeeID && l.Status == leave.StatusApproved &&
			(daterange.Range{Start: l.StartDate, End: l.EndDate}).Contains(day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepository) FindApprovedInRange(ctx context.Context, employeeID, leaveType string, rng daterange.Range) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range r.leaves {
		if l.EmployeeID.String() == employeeID && l.LeaveType == leaveType && l.Status == leave.StatusApproved &&
			(daterange.Range{Start: l.StartDate, End: l.EndDate}).Overlaps(rng) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memRepository) CountByStatus(ctx context.Context, scope visibility.Scope) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, l := range r.leaves {
		if scope.Permits(l.EmployeeID.String()) {
			counts[l.Status]++
		}
	}
	return counts, nil
}

type leaveServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *memRepository
	outbox  *kafkaMock.MockOutboxRepository
}

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func setupLeaveServiceTest(t *testing.T, repo *memRepository) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	outbox := kafkaMock.NewMockOutboxRepository(gomock.NewController(t))
	svc := leave.NewService(db, repo, outbox, leave.WithClock(func() time.Time { return fixedNow }))

	return &leaveServiceDeps{sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func employeePrincipal(employeeID string) visibility.Principal {
	return visibility.Principal{UserID: uuid.NewString(), EmployeeID: employeeID, Role: visibility.RoleEmployee}
}

func TestLeaveService_Apply(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()
	otherID := uuid.NewString()

	t.Run("success for own profile", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, newMemRepository(employeeID))
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Apply(ctx, employeePrincipal(employeeID), leave.ApplyLeaveRequest{
			LeaveType: "PAID",
			StartDate: "2026-03-10",
			EndDate:   "2026-03-12",
			Reason:    "Family event",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, fixedNow.Format(time.RFC3339), resp.AppliedAt)
		assert.Equal(t, 1, deps.repo.lockCalls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no profile and no employee id", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, newMemRepository())

		_, err := deps.service.Apply(ctx, employeePrincipal(""), leave.ApplyLeaveRequest{
			LeaveType: "PAID", StartDate: "2026-03-10", EndDate: "2026-03-10",
		})
		assert.ErrorIs(t, err, apperror.ErrProfileNotFound)
	})

	t.Run("employee cannot apply on behalf of another", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, newMemRepository(employeeID, otherID))

		_, err := deps.service.Apply(ctx, employeePrincipal(employeeID), leave.ApplyLeaveRequest{
			EmployeeID: otherID, LeaveType: "PAID", StartDate: "2026-03-10", EndDate: "2026-03-10",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrApplyOnBehalfForbidden)
		assert.Equal(t, 403, apperror.ToHTTP(err).Status)
	})

	t.Run("hr applies on behalf", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, newMemRepository(otherID))
		expectTx(t, deps.sqlMock, true)
		hr := visibility.Principal{UserID: uuid.NewString(), Role: visibility.RoleHR}

		resp, err := deps.service.Apply(ctx, hr, leave.ApplyLeaveRequest{
			EmployeeID: otherID, LeaveType: "SICK", StartDate: "2026-03-10", EndDate: "2026-03-10",
		})
		assert.NoError(t, err)
		assert.Equal(t, otherID, resp.EmployeeID)
	})

	t.Run("hr applies for unknown employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, newMemRepository())
		expectTx(t, deps.sqlMock, false)
		hr := visibility.Principal{UserID: uuid.NewString(), Role: visibility.RoleHR}

		_, err := deps.service.Apply(ctx, hr, leave.ApplyLeaveRequest{
			EmployeeID: otherID, LeaveType: "SICK", StartDate: "2026-03-10", EndDate: "2026-03-10",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})

	t.Run("inverted range", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, newMemRepository(employeeID))

		_, err := deps.service.Apply(ctx, employeePrincipal(employeeID), leave.ApplyLeaveRequest{
			LeaveType: "PAID", StartDate: "2026-03-12", EndDate: "2026-03-10",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("bad date format", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, newMemRepository(employeeID))

		_, err := deps.service.Apply(ctx, employeePrincipal(employeeID), leave.ApplyLeaveRequest{
			LeaveType: "PAID", StartDate: "10-03-2026", EndDate: "2026-03-10",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("casual is not applicable on apply", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, newMemRepository(employeeID))

		_, err := deps.service.Apply(ctx, employeePrincipal(employeeID), leave.ApplyLeaveRequest{
			LeaveType: "CASUAL", StartDate: "2026-03-10", EndDate: "2026-03-10",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
	})

	t.Run("retroactive leave over recorded attendance", func(t *testing.T) {
		repo := newMemRepository(employeeID)
		repo.attendance[employeeID] = []time.Time{time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)}
		deps := setupLeaveServiceTest(t, repo)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Apply(ctx, employeePrincipal(employeeID), leave.ApplyLeaveRequest{
			LeaveType: "PAID", StartDate: "2026-01-08", EndDate: "2026-01-12",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrRetroactiveLeaveBlocked)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overlap is reported before retroactivity", func(t *testing.T) {
		repo := newMemRepository(employeeID)
		repo.attendance[employeeID] = []time.Time{time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)}
		repo.seed(employeeID, leave.StatusPending, leave.TypePaid, "2026-01-09", "2026-01-09")
		deps := setupLeaveServiceTest(t, repo)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Apply(ctx, employeePrincipal(employeeID), leave.ApplyLeaveRequest{
			LeaveType: "PAID", StartDate: "2026-01-08", EndDate: "2026-01-12",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrOverlappingLeave)
	})
}

func TestLeaveService_Apply_OverlapBoundaries(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()

	cases := []struct {
		name        string
		status      string
		seededStart string
		seededEnd   string
		start       string
		end         string
		wantOverlap bool
	}{
		{"single day on last day of multi-day", leave.StatusPending, "2026-03-10", "2026-03-12", "2026-03-12", "2026-03-12", true},
		{"single day on first day of multi-day", leave.StatusApproved, "2026-03-10", "2026-03-12", "2026-03-10", "2026-03-10", true},
		{"single day right after multi-day", leave.StatusApproved, "2026-03-10", "2026-03-12", "2026-03-13", "2026-03-13", false},
		{"same single day", leave.StatusPending, "2026-03-20", "2026-03-20", "2026-03-20", "2026-03-20", true},
		{"multi-day ending on existing single day", leave.StatusPending, "2026-03-20", "2026-03-20", "2026-03-18", "2026-03-20", true},
		{"multi-day ending the day before single day", leave.StatusPending, "2026-03-20", "2026-03-20", "2026-03-18", "2026-03-19", false},
		{"rejected leave does not block", leave.StatusRejected, "2026-03-10", "2026-03-12", "2026-03-11", "2026-03-11", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemRepository(employeeID)
			repo.seed(employeeID, tc.status, leave.TypePaid, tc.seededStart, tc.seededEnd)
			deps := setupLeaveServiceTest(t, repo)
			expectTx(t, deps.sqlMock, !tc.wantOverlap)

			_, err := deps.service.Apply(ctx, employeePrincipal(employeeID), leave.ApplyLeaveRequest{
				LeaveType: "PAID", StartDate: tc.start, EndDate: tc.end,
			})

			if tc.wantOverlap {
				assert.ErrorIs(t, err, leaveerrors.ErrOverlappingLeave)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLeaveService_Apply_ConcurrentOverlapping(t *testing.T) {
	const n = 10
	ctx := context.Background()
	employeeID := uuid.NewString()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	sqlMock.MatchExpectationsInOrder(false)
	for i := 0; i < n; i++ {
		sqlMock.ExpectBegin()
	}
	sqlMock.ExpectCommit()
	for i := 0; i < n-1; i++ {
		sqlMock.ExpectRollback()
	}

	repo := newMemRepository(employeeID)
	svc := leave.NewService(db, repo, kafkaMock.NewMockOutboxRepository(gomock.NewController(t)))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every range shares 2026-04-10
			start := time.Date(2026, 4, 1+i%5, 0, 0, 0, 0, time.UTC)
			_, err := svc.Apply(ctx, employeePrincipal(employeeID), leave.ApplyLeaveRequest{
				LeaveType: "PAID",
				StartDate: start.Format(daterange.Layout),
				EndDate:   "2026-04-10",
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if errors.Is(err, leaveerrors.ErrOverlappingLeave) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
}

func TestLeaveService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()
	hr := visibility.Principal{UserID: uuid.NewString(), Role: visibility.RoleHR}

	t.Run("approve pending with type override", func(t *testing.T) {
		repo := newMemRepository(employeeID)
		seeded := repo.seed(employeeID, leave.StatusPending, leave.TypePaid, "2026-03-10", "2026-03-11")
		deps := setupLeaveServiceTest(t, repo)
		expectTx(t, deps.sqlMock, true)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.LeaveStatusChangedTopic, ev.Topic)
				assert.Equal(t, seeded.ID.String(), ev.AggregateID)
				var payload events.LeaveStatusChangedEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, leave.StatusPending, payload.FromStatus)
				assert.Equal(t, leave.StatusApproved, payload.ToStatus)
				assert.Equal(t, hr.UserID, payload.ActorUserID)
				assert.False(t, payload.Cancelled)
				return nil
			})

		resp, err := deps.service.UpdateStatus(ctx, hr, seeded.ID.String(), leave.UpdateStatusRequest{
			Status: "APPROVED", LeaveType: "CASUAL",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, leave.TypeCasual, resp.LeaveType)
		assert.NotNil(t, resp.ProcessedBy)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject keeps the requested type", func(t *testing.T) {
		repo := newMemRepository(employeeID)
		seeded := repo.seed(employeeID, leave.StatusPending, leave.TypeSick, "2026-03-10", "2026-03-11")
		deps := setupLeaveServiceTest(t, repo)
		expectTx(t, deps.sqlMock, true)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.UpdateStatus(ctx, hr, seeded.ID.String(), leave.UpdateStatusRequest{
			Status: "REJECTED", LeaveType: "UNPAID",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.Equal(t, leave.TypeSick, resp.LeaveType)
	})

	t.Run("already processed echoes status", func(t *testing.T) {
		repo := newMemRepository(employeeID)
		seeded := repo.seed(employeeID, leave.StatusApproved, leave.TypePaid, "2026-03-10", "2026-03-11")
		deps := setupLeaveServiceTest(t, repo)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.UpdateStatus(ctx, hr, seeded.ID.String(), leave.UpdateStatusRequest{Status: "REJECTED"})

		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyProcessed)
		assert.EqualError(t, err, "leave request has already been approved")
		assert.Equal(t, apperror.CodeConflict, apperror.ToHTTP(err).Code)
	})

	t.Run("unknown leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, newMemRepository())
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.UpdateStatus(ctx, hr, uuid.NewString(), leave.UpdateStatusRequest{Status: "APPROVED"})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("pending is not a target", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, newMemRepository())

		_, err := deps.service.UpdateStatus(ctx, hr, uuid.NewString(), leave.UpdateStatusRequest{Status: "PENDING"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()

	t.Run("owner cancels pending", func(t *testing.T) {
		repo := newMemRepository(employeeID)
		seeded := repo.seed(employeeID, leave.StatusPending, leave.TypeSick, "2026-03-10", "2026-03-10")
		deps := setupLeaveServiceTest(t, repo)
		expectTx(t, deps.sqlMock, true)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				var payload events.LeaveStatusChangedEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.True(t, payload.Cancelled)
				assert.Equal(t, leave.StatusRejected, payload.ToStatus)
				return nil
			})

		resp, err := deps.service.Cancel(ctx, employeePrincipal(employeeID), seeded.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
	})

	t.Run("someone else cannot cancel", func(t *testing.T) {
		repo := newMemRepository(employeeID)
		seeded := repo.seed(employeeID, leave.StatusPending, leave.TypeSick, "2026-03-10", "2026-03-10")
		deps := setupLeaveServiceTest(t, repo)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Cancel(ctx, employeePrincipal(uuid.NewString()), seeded.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotOwner)
	})

	t.Run("approved leave is not cancellable", func(t *testing.T) {
		repo := newMemRepository(employeeID)
		seeded := repo.seed(employeeID, leave.StatusApproved, leave.TypeSick, "2026-03-10", "2026-03-10")
		deps := setupLeaveServiceTest(t, repo)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Cancel(ctx, employeePrincipal(employeeID), seeded.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotCancellable)
	})
}

func TestLeaveService_IsEmployeeOnLeave(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()
	repo := newMemRepository(employeeID)
	repo.seed(employeeID, leave.StatusApproved, leave.TypePaid, "2026-03-10", "2026-03-12")
	repo.seed(employeeID, leave.StatusPending, leave.TypePaid, "2026-03-20", "2026-03-20")
	deps := setupLeaveServiceTest(t, repo)

	cases := []struct {
		day  time.Time
		want bool
	}{
		{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2026, 3, 12, 23, 59, 0, 0, time.UTC), true},
		{time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		got, err := deps.service.IsEmployeeOnLeave(ctx, employeeID, tc.day)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.day.String())
	}
}

func TestLeaveService_FindAllAndStatistics(t *testing.T) {
	ctx := context.Background()
	mine := uuid.NewString()
	theirs := uuid.NewString()
	repo := newMemRepository(mine, theirs)
	repo.seed(mine, leave.StatusPending, leave.TypePaid, "2026-03-10", "2026-03-10")
	repo.seed(mine, leave.StatusApproved, leave.TypePaid, "2026-03-11", "2026-03-11")
	repo.seed(theirs, leave.StatusRejected, leave.TypePaid, "2026-03-10", "2026-03-10")
	deps := setupLeaveServiceTest(t, repo)

	t.Run("self scope", func(t *testing.T) {
		list, err := deps.service.FindAll(ctx, visibility.Self(mine))
		assert.NoError(t, err)
		assert.Len(t, list, 2)

		stats, err := deps.service.GetStatistics(ctx, visibility.Self(mine))
		assert.NoError(t, err)
		assert.Equal(t, leave.StatisticsResponse{Total: 2, Pending: 1, Approved: 1}, stats)
	})

	t.Run("all scope", func(t *testing.T) {
		list, err := deps.service.FindAll(ctx, visibility.All())
		assert.NoError(t, err)
		assert.Len(t, list, 3)

		stats, err := deps.service.GetStatistics(ctx, visibility.All())
		assert.NoError(t, err)
		assert.Equal(t, int64(3), stats.Total)
		assert.Equal(t, int64(1), stats.Rejected)
	})

	t.Run("no profile gives empty list without querying", func(t *testing.T) {
		repo.findAllFn = func(ctx context.Context, scope visibility.Scope) ([]leave.LeaveRequest, error) {
			t.Fatal("repository must not be queried")
			return nil, nil
		}
		defer func() { repo.findAllFn = nil }()

		list, err := deps.service.FindAll(ctx, visibility.Self(""))
		assert.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()
	mine := uuid.NewString()
	repo := newMemRepository(mine)
	seeded := repo.seed(mine, leave.StatusPending, leave.TypePaid, "2026-03-10", "2026-03-10")
	deps := setupLeaveServiceTest(t, repo)

	resp, err := deps.service.GetByID(ctx, visibility.Self(mine), seeded.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, seeded.ID.String(), resp.ID)

	_, err = deps.service.GetByID(ctx, visibility.Self(uuid.NewString()), seeded.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}
