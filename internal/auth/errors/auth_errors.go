package autherrors

import (
	"net/http"

	"github.com/Lexio19/employee-hub/internal/shared/apperror"
)

var (
	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid credentials",
		http.StatusUnauthorized,
	)
	ErrMissingToken = apperror.New(
		apperror.CodeUnauthorized,
		"authorization token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"employee for this token no longer exists",
		http.StatusUnauthorized,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusBadRequest,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"could not generate token",
		http.StatusInternalServerError,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"your role does not permit this operation",
		http.StatusForbidden,
	)
)
