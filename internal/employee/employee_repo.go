package employee

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return connection.Session(ctx, r.db, r.tx).Omit("User").Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := connection.Session(ctx, r.db, r.tx).
		Preload("User").
		Order("employee_code ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := connection.Session(ctx, r.db, r.tx).
		Preload("User").
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var empl Employee
	err := connection.Session(ctx, r.db, r.tx).
		Preload("User").
		First(&empl, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// FindOptions hanya kolom yang dibutuhkan dropdown
func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := connection.Session(ctx, r.db, r.tx).
		Select("id", "employee_code", "first_name", "last_name").
		Order("first_name ASC, last_name ASC").
		Find(&empls).Error
	return empls, err
}
