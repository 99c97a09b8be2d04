package auth

import (
	"errors"

	autherrors "go-hrms/internal/auth/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_users_email" {
		return autherrors.ErrEmailAlreadyRegistered
	}
	return err
}
