package apperror

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
}

// ToHTTP maps any error to the status and message the handler should write.
// Unknown errors become a generic 500 so internal details never leak.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		mapped := MapValidationError(validationErrs)
		if errors.As(mapped, &appErr) {
			return HTTPError{
				Status:  appErr.HTTPStatus,
				Code:    appErr.Code,
				Message: appErr.Message,
			}
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "Internal server error",
	}
}
