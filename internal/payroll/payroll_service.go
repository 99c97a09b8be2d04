package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-hrms/internal/leave"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/daterange"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	MinYear = 2020
	MaxYear = 2100

	DefaultHistoryLimit = 6
	DefaultHistoryMax   = 24

	historyConcurrency = 4
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GeneratePayslip(ctx context.Context, employeeID string, month, year int) (Payslip, error)
	GetCurrentMonthPayslip(ctx context.Context, employeeID string) (Payslip, error)
	GetPayslipHistory(ctx context.Context, employeeID string, limit int) ([]Payslip, error)
}

type Option func(*service)

func WithLogger(l *zap.Logger) Option {
	return func(s *service) {
		if l != nil {
			s.logger = l.Named("payroll.service")
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

func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithHistoryMax caps the history limit a caller may ask for.
func WithHistoryMax(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.historyMax = n
		}
	}
}

type service struct {
	employees  EmployeeReader
	salaries   SalaryReader
	leaves     LeaveReader
	now        func() time.Time
	loc        *time.Location
	historyMax int
	logger     *zap.Logger
}

func NewService(employees EmployeeReader, salaries SalaryReader, leaves LeaveReader, opts ...Option) Service {
	s := &service{
		employees:  employees,
		salaries:   salaries,
		leaves:     leaves,
		now:        time.Now,
		loc:        time.UTC,
		historyMax: DefaultHistoryMax,
		logger:     zap.L().Named("payroll.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < MinYear || year > MaxYear {
		return payrollerrors.ErrInvalidPeriod
	}
	return nil
}

func (s *service) GeneratePayslip(ctx context.Context, employeeID string, month, year int) (Payslip, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(employeeID); err != nil {
		return Payslip{}, payrollerrors.ErrInvalidEmployeeID
	}
	if err := ValidatePeriod(month, year); err != nil {
		return Payslip{}, err
	}

	empl, err := s.employees.FindByID(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Payslip{}, payrollerrors.ErrEmployeeNotFound
	}
	if err != nil {
		log.Error("payslip employee lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return Payslip{}, err
	}

	structure, err := s.salaries.FindByEmployeeID(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Payslip{}, payrollerrors.ErrSalaryNotConfigured
	}
	if err != nil {
		log.Error("payslip salary lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return Payslip{}, err
	}

	period := daterange.Month(year, time.Month(month))
	unpaid, err := s.leaves.FindApprovedInRange(ctx, employeeID, leave.TypeUnpaid, period)
	if err != nil {
		log.Error("payslip leave lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return Payslip{}, err
	}

	b := Compute(structure.MonthlyWage, year, time.Month(month), UnpaidDays(unpaid, period))

	log.Debug("payslip generated",
		zap.String("employee_id", employeeID),
		zap.String("period", fmt.Sprintf("%04d-%02d", year, month)),
		zap.Int("unpaid_leave_days", b.UnpaidLeaveDays),
	)

	return Payslip{
		Employee: PayslipEmployee{
			ID:           empl.ID.String(),
			EmployeeCode: empl.EmployeeCode,
			Name:         empl.FullName(),
			Department:   empl.Department,
			Designation:  empl.Designation,
		},
		Period: PayslipPeriod{
			Month:     month,
			Year:      year,
			Label:     fmt.Sprintf("%s %d", time.Month(month), year),
			StartDate: period.Start.Format(daterange.Layout),
			EndDate:   period.End.Format(daterange.Layout),
		},
		Earnings:   b.earnings(),
		Deductions: b.deductions(),
		Summary:    b.summary(),
		Stats:      b.stats(),
	}, nil
}

func (s *service) GetCurrentMonthPayslip(ctx context.Context, employeeID string) (Payslip, error) {
	today := daterange.Today(s.now(), s.loc)
	return s.GeneratePayslip(ctx, employeeID, int(today.Month()), today.Year())
}

// GetPayslipHistory walks back from the current month. A month that fails,
// usually for a missing salary structure, is left out instead of failing
// the whole list.
func (s *service) GetPayslipHistory(ctx context.Context, employeeID string, limit int) ([]Payslip, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > s.historyMax {
		limit = s.historyMax
	}

	current := daterange.Today(s.now(), s.loc)
	first := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, time.UTC)

	slots := make([]*Payslip, limit)
	var g errgroup.Group
	g.SetLimit(historyConcurrency)
	for i := 0; i < limit; i++ {
		i := i
		m := first.AddDate(0, -i, 0)
		g.Go(func() error {
			p, err := s.GeneratePayslip(ctx, employeeID, int(m.Month()), m.Year())
			if err != nil {
				log.Debug("payslip history month skipped",
					zap.String("employee_id", employeeID),
					zap.String("period", m.Format("2006-01")),
					zap.Error(err),
				)
				return nil
			}
			slots[i] = &p
			return nil
		})
	}
	_ = g.Wait()

	history := make([]Payslip, 0, limit)
	for _, p := range slots {
		if p != nil {
			history = append(history, *p)
		}
	}
	return history, nil
}
