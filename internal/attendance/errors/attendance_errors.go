package attendanceerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"to must be on or after from",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"already checked in today",
		http.StatusConflict,
	)
	ErrOnApprovedLeave = apperror.New(
		apperror.CodeConflict,
		"cannot check in while on approved leave",
		http.StatusConflict,
	)
	ErrNoOpenCheckIn = apperror.New(
		apperror.CodeConflict,
		"no open check-in found for today",
		http.StatusConflict,
	)
	ErrInvalidRecord = apperror.New(
		apperror.CodeInternalError,
		"attendance record has no check-in time",
		http.StatusInternalServerError,
	)
)
