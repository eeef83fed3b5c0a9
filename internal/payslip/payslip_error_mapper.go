package payslip

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	paysliperrors "github.com/Lexio19/employee-hub/internal/payslip/errors"
)

const uniquePeriodConstraint = "uq_payslips_employee_period"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniquePeriodConstraint {
			return paysliperrors.ErrPayslipPeriodExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniquePeriodConstraint) {
		return paysliperrors.ErrPayslipPeriodExists
	}

	return err
}
