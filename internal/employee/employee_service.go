package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrms/internal/auth"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/daterange"
	"go-hrms/internal/visibility"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey  = "employees:options"
	EmployeeCodePrefix  = "EMP"
	employeeOptionsTTL  = time.Hour
	employeeAggregateID = "employee"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor visibility.Principal, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetMe(ctx context.Context, userID string) (EmployeeResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	users   auth.Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users auth.Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		users:   users,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		now:     time.Now,
		logger:  l,
	}
}

// FormatEmployeeCode renders PREFIX-YYYY-NNN; the sequence widens past 999.
func FormatEmployeeCode(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%04d-%03d", prefix, year, seq)
}

// Create membuat user login + profil karyawan + outbox event dalam satu transaksi.
func (s *service) Create(ctx context.Context, actor visibility.Principal, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" {
		return EmployeeResponse{}, employeeerrors.ErrFirstNameRequired
	}
	if req.LastName == "" {
		return EmployeeResponse{}, employeeerrors.ErrLastNameRequired
	}

	joining := daterange.Today(s.now(), time.UTC)
	if strings.TrimSpace(req.DateOfJoining) != "" {
		d, err := daterange.Parse(req.DateOfJoining)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDateOfJoining
		}
		joining = d
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = visibility.RoleEmployee
	}
	if role == visibility.RoleAdmin && strings.ToUpper(actor.Role) != visibility.RoleAdmin {
		log.Warn("create employee admin role rejected",
			zap.String("actor_user_id", actor.UserID),
			zap.String("actor_role", actor.Role),
		)
		return EmployeeResponse{}, employeeerrors.ErrAdminRoleNotAllowed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	log.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", role),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	year := joining.Year()
	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, EmployeeCodePrefix, year)
	if err != nil {
		log.Error("create employee generate code failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	user := &auth.User{
		ID:       uuid.New(),
		Name:     req.FirstName + " " + req.LastName,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
		if apperror.IsExpected(err) {
			log.Warn("create employee user rejected", zap.String("email", req.Email), zap.Error(err))
		} else {
			log.Error("create employee user persist failed", zap.Error(err))
		}
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:            uuid.New(),
		UserID:        &user.ID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		EmployeeCode:  FormatEmployeeCode(EmployeeCodePrefix, year, seq),
		Department:    strings.TrimSpace(req.Department),
		Designation:   strings.TrimSpace(req.Designation),
		DateOfJoining: joining,
	}
	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	event, err := kafka.NewOutboxEvent(rid, employeeAggregateID, empl.ID.String(),
		events.EmployeeCreatedType, events.EmployeeCreatedTopic,
		events.EmployeeCreatedEvent{
			EventType:    events.EmployeeCreatedType,
			RequestID:    rid,
			EmployeeID:   empl.ID.String(),
			EmployeeCode: empl.EmployeeCode,
			UserID:       user.ID.String(),
			Role:         role,
			OccurredAt:   s.now().UTC(),
		})
	if err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("create employee outbox persist failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)

	log.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)

	empl.User = user
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight: form admin yang dibuka bersamaan cukup satu query
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOptionResponse{ID: e.ID.String(), EmployeeCode: e.EmployeeCode, Name: e.FullName()}
		}

		// 3. Simpan ke Redis (data master, TTL 1 jam)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, string(jsonData), employeeOptionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		err = mapRepositoryError(err)
		if !errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			contextutil.GetLogger(ctx, s.logger).Error("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		}
		return EmployeeResponse{}, err
	}

	return mapToResponse(*empl), nil
}

// GetMe resolves the caller's own profile through its login principal.
func (s *service) GetMe(ctx context.Context, userID string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return EmployeeResponse{}, apperror.ErrProfileNotFound
	}

	empl, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		err = mapRepositoryError(err)
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return EmployeeResponse{}, apperror.ErrProfileNotFound
		}
		contextutil.GetLogger(ctx, s.logger).Error("get own employee failed", zap.String("user_id", userID), zap.Error(err))
		return EmployeeResponse{}, err
	}

	return mapToResponse(*empl), nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            empl.ID.String(),
		EmployeeCode:  empl.EmployeeCode,
		FirstName:     empl.FirstName,
		LastName:      empl.LastName,
		FullName:      empl.FullName(),
		Department:    empl.Department,
		Designation:   empl.Designation,
		DateOfJoining: empl.DateOfJoining.Format(daterange.Layout),
	}
	if empl.UserID != nil {
		resp.UserID = empl.UserID.String()
	}
	if empl.User != nil {
		resp.Email = empl.User.Email
		resp.Role = empl.User.Role
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
