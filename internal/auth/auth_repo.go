package auth

import (
	"context"
	"database/sql"
	"strings"

	"go-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// GetEmployeeID returns "" when the user has no employee profile.
	GetEmployeeID(ctx context.Context, userID uuid.UUID) (string, error)
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

func (r *repository) Create(ctx context.Context, user *User) error {
	user.Email = normalizeEmail(user.Email)
	user.Role = strings.ToUpper(strings.TrimSpace(user.Role))
	return mapRepositoryError(connection.Session(ctx, r.db, r.tx).Create(user).Error)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := connection.Session(ctx, r.db, r.tx).
		Where("email = ?", normalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := connection.Session(ctx, r.db, r.tx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetEmployeeID(ctx context.Context, userID uuid.UUID) (string, error) {
	var employeeID string
	err := connection.Session(ctx, r.db, r.tx).
		Table("employees").
		Select("id::text").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Limit(1).
		Scan(&employeeID).Error
	return employeeID, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
