package paysliperrors

import (
	"net/http"

	"github.com/Lexio19/employee-hub/internal/shared/apperror"
)

var (
	// ErrPayslipNotFound also covers payslips owned by someone else, so the
	// response does not reveal that the id exists.
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)

	ErrPayslipEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"employee for payslip not found",
		http.StatusBadRequest,
	)

	ErrPayslipPeriodExists = apperror.New(
		apperror.CodeConflict,
		"a payslip already exists for this employee and period",
		http.StatusConflict,
	)
)
