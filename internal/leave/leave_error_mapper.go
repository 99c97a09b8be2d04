package leave

import (
	"errors"

	leaveerrors "go-hrms/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const constraintNoOverlap = "ex_leave_requests_no_overlap"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23P01 exclusion_violation: a concurrent apply won the race
		if pgErr.Code == "23P01" && pgErr.ConstraintName == constraintNoOverlap {
			return leaveerrors.ErrOverlappingLeave
		}
		if pgErr.Code == "23503" && pgErr.ConstraintName == "fk_leave_requests_employee" {
			return leaveerrors.ErrEmployeeNotFound
		}
	}

	return err
}
