package employeeerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	// ErrAdminRoleNotAllowed: only ADMIN may onboard another ADMIN.
	ErrAdminRoleNotAllowed = apperror.ErrForbidden.WithMessage("Only ADMIN can create ADMIN accounts")
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee code already exists",
		http.StatusConflict,
	)
	ErrUserAlreadyLinked = apperror.New(
		apperror.CodeConflict,
		"User is already linked to another employee",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateOfJoining = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date_of_joining format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrFirstNameRequired = apperror.RequiredField("first_name")
	ErrLastNameRequired  = apperror.RequiredField("last_name")
)
