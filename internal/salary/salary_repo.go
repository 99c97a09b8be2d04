package salary

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Upsert inserts or replaces the employee's row and refreshes s from the store.
	Upsert(ctx context.Context, s *SalaryStructure) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*SalaryStructure, error)
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

func (r *repository) Upsert(ctx context.Context, s *SalaryStructure) error {
	return connection.Session(ctx, r.db, r.tx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "employee_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"monthly_wage", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(s).Error
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*SalaryStructure, error) {
	var s SalaryStructure
	err := connection.Session(ctx, r.db, r.tx).
		Where("employee_id = ?", employeeID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
