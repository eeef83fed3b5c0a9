package shifterrors

import (
	"net/http"

	"github.com/Lexio19/employee-hub/internal/shared/apperror"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift not found",
		http.StatusNotFound,
	)

	ErrShiftEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"employee for shift not found",
		http.StatusBadRequest,
	)

	ErrInvalidShiftDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid shift date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrSwapNotFound = apperror.New(
		apperror.CodeNotFound,
		"swap request not found",
		http.StatusNotFound,
	)

	ErrNotShiftOwner = apperror.New(
		apperror.CodeForbidden,
		"you can only offer your own shifts for swap",
		http.StatusForbidden,
	)

	ErrPendingSwapExists = apperror.New(
		apperror.CodeConflict,
		"a pending swap request already exists for this shift",
		http.StatusConflict,
	)

	ErrSwapSelfAccept = apperror.New(
		apperror.CodeConflict,
		"you cannot accept your own swap request",
		http.StatusConflict,
	)

	ErrSwapNotPending = apperror.New(
		apperror.CodeInvalidState,
		"swap request is no longer pending",
		http.StatusConflict,
	)

	ErrSwapSelfReject = apperror.New(
		apperror.CodeConflict,
		"you cannot reject your own swap request",
		http.StatusConflict,
	)

	ErrNotSwapRequester = apperror.New(
		apperror.CodeForbidden,
		"you can only cancel your own swap requests",
		http.StatusForbidden,
	)
)
