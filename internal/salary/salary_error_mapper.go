package salary

import (
	"errors"

	salaryerrors "go-hrms/internal/salary/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotConfigured
	}

	return err
}
