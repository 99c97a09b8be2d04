package leaveerrors

import (
	"net/http"
	"strings"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
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
		"end_date must be on or after start_date",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrOverlappingLeave = apperror.New(
		apperror.CodeConflict,
		"a pending or approved leave already overlaps this period",
		http.StatusConflict,
	)
	ErrRetroactiveLeaveBlocked = apperror.New(
		apperror.CodeConflict,
		"attendance is already recorded within this period",
		http.StatusConflict,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"leave request has already been processed",
		http.StatusConflict,
	)
	ErrNotCancellable = apperror.New(
		apperror.CodeConflict,
		"only pending leave requests can be cancelled",
		http.StatusConflict,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the owning employee can cancel this leave request",
		http.StatusForbidden,
	)
	ErrApplyOnBehalfForbidden = apperror.New(
		apperror.CodeForbidden,
		"you can only apply leave for yourself",
		http.StatusForbidden,
	)
)

// AlreadyProcessed echoes the current status, e.g. "leave request has already been approved".
func AlreadyProcessed(status string) *apperror.AppError {
	return ErrAlreadyProcessed.WithMessage("leave request has already been " + strings.ToLower(status))
}
