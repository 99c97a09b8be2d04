package salaryerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrSalaryNotConfigured = apperror.New(
		apperror.CodePreconditionFailed,
		"Salary structure is not configured for this employee",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidMonthlyWage = apperror.New(
		apperror.CodeInvalidInput,
		"monthly_wage must be greater than zero",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
