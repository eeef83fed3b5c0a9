package vacationerrors

import (
	"fmt"
	"net/http"

	"github.com/Lexio19/employee-hub/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start date cannot be in the past",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end date cannot be before start date",
		http.StatusBadRequest,
	)

	ErrInvalidDayCount = apperror.New(
		apperror.CodeInvalidInput,
		"days must be between 1 and 30",
		http.StatusBadRequest,
	)

	ErrOverlappingRequest = apperror.New(
		apperror.CodeInvalidInput,
		"request overlaps an existing vacation request",
		http.StatusBadRequest,
	)

	ErrVacationNotFound = apperror.New(
		apperror.CodeNotFound,
		"vacation request not found",
		http.StatusNotFound,
	)

	ErrAlreadyResolved = apperror.New(
		apperror.CodeInvalidState,
		"vacation request has already been resolved",
		http.StatusConflict,
	)

	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"you can only delete your own vacation requests",
		http.StatusForbidden,
	)

	ErrDeleteResolved = apperror.New(
		apperror.CodeInvalidState,
		"only pending vacation requests can be deleted",
		http.StatusConflict,
	)
)

// InsufficientDays carries the caller's remaining balance so the message
// tells them how many days they can still request.
func InsufficientDays(remaining int) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("insufficient vacation days available: %d remaining", remaining),
		http.StatusBadRequest,
	)
}
