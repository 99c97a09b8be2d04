package counter

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// GetNextValue returns the next number of the (prefix, year) sequence,
	// starting at 1.
	GetNextValue(ctx context.Context, prefix string, year int) (int64, error)
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

func (r *repository) GetNextValue(ctx context.Context, prefix string, year int) (int64, error) {
	var nextValue int64

	// UPSERT atomik: aman dari race antar request untuk prefix/tahun yang sama
	err := connection.Session(ctx, r.db, r.tx).Raw(`
		INSERT INTO employee_code_counters (prefix, year, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (prefix, year) DO UPDATE
		SET last_value = employee_code_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, prefix, year).Scan(&nextValue).Error
	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
