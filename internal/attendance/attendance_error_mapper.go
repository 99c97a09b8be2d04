package attendance

import (
	"errors"

	attendanceerrors "go-hrms/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const constraintOpenPerDay = "uq_attendance_open_per_day"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrNoOpenCheckIn
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 unique_violation: a concurrent check-in for the same day won
		if pgErr.Code == "23505" && pgErr.ConstraintName == constraintOpenPerDay {
			return attendanceerrors.ErrAlreadyCheckedIn
		}
		if pgErr.Code == "23503" {
			return attendanceerrors.ErrEmployeeNotFound
		}
	}

	return err
}
