package payslip_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Lexio19/employee-hub/internal/access"
	"github.com/Lexio19/employee-hub/internal/employee"
	"github.com/Lexio19/employee-hub/internal/payslip"
	paysliperrors "github.com/Lexio19/employee-hub/internal/payslip/errors"
)

type fakePayslipRepository struct {
	createFn            func(ctx context.Context, p *payslip.Payslip) error
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]payslip.Payslip, error)
	findByIDFn          func(ctx context.Context, id string) (*payslip.Payslip, error)
}

func (f *fakePayslipRepository) WithTx(tx *sql.Tx) payslip.Repository { return f }

func (f *fakePayslipRepository) Create(ctx context.Context, p *payslip.Payslip) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayslipRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]payslip.Payslip, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePayslipRepository) FindByID(ctx context.Context, id string) (*payslip.Payslip, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &employee.Employee{ID: uuid.MustParse(id), Name: "Dana Riley"}, nil
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, errors.New("not found")
}

func (f *fakeEmployeeRepository) IncrementUsedVacationDays(ctx context.Context, id string, days int) error {
	return nil
}

type payslipServiceDeps struct {
	service   payslip.Service
	repo      *fakePayslipRepository
	employees *fakeEmployeeRepository
	redisMock redismock.ClientMock
}

func setupPayslipServiceTest(t *testing.T) *payslipServiceDeps {
	t.Helper()

	rdb, redisMock := redismock.NewClientMock()
	repo := &fakePayslipRepository{}
	employees := &fakeEmployeeRepository{}
	svc := payslip.NewService(repo, employees, rdb)

	return &payslipServiceDeps{
		service:   svc,
		repo:      repo,
		employees: employees,
		redisMock: redisMock,
	}
}

func storedPayslip(employeeID uuid.UUID) *payslip.Payslip {
	return &payslip.Payslip{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Month:       "March",
		Year:        2026,
		GrossSalary: 4200,
		NetSalary:   3150,
		Deductions:  1050,
		Bonus:       0,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestPayslipService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success stores figures verbatim and invalidates cache", func(t *testing.T) {
		deps := setupPayslipServiceTest(t)

		deps.redisMock.ExpectDel(payslip.ListCacheKey(employeeID.String())).SetVal(1)

		var created *payslip.Payslip
		deps.repo.createFn = func(ctx context.Context, p *payslip.Payslip) error {
			created = p
			return nil
		}

		resp, err := deps.service.Create(ctx, payslip.CreatePayslipRequest{
			EmployeeID:  employeeID.String(),
			Month:       "March",
			Year:        2026,
			GrossSalary: 4200,
			NetSalary:   3150,
			Deductions:  1050,
		})

		assert.NoError(t, err)
		assert.Equal(t, 4200.0, resp.GrossSalary)
		assert.Equal(t, 3150.0, resp.NetSalary)
		assert.NotNil(t, created)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate period maps to conflict", func(t *testing.T) {
		deps := setupPayslipServiceTest(t)

		deps.repo.createFn = func(ctx context.Context, p *payslip.Payslip) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_payslips_employee_period"}
		}

		_, err := deps.service.Create(ctx, payslip.CreatePayslipRequest{
			EmployeeID:  employeeID.String(),
			Month:       "March",
			Year:        2026,
			GrossSalary: 4200,
			NetSalary:   3150,
		})

		assert.ErrorIs(t, err, paysliperrors.ErrPayslipPeriodExists)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupPayslipServiceTest(t)

		deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, errors.New("record not found")
		}

		_, err := deps.service.Create(ctx, payslip.CreatePayslipRequest{
			EmployeeID:  employeeID.String(),
			Month:       "March",
			Year:        2026,
			GrossSalary: 4200,
			NetSalary:   3150,
		})

		assert.ErrorIs(t, err, paysliperrors.ErrPayslipEmployeeNotFound)
	})
}

func TestPayslipService_ListByEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	cacheKey := payslip.ListCacheKey(employeeID.String())

	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupPayslipServiceTest(t)

		cached := []payslip.PayslipResponse{
			{ID: uuid.NewString(), Month: "February", Year: 2026},
		}
		jsonResp, _ := json.Marshal(cached)
		deps.redisMock.ExpectGet(cacheKey).SetVal(string(jsonResp))

		repoCalled := false
		deps.repo.findAllByEmployeeFn = func(ctx context.Context, eid string) ([]payslip.Payslip, error) {
			repoCalled = true
			return nil, nil
		}

		resp, err := deps.service.ListByEmployee(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "February", resp[0].Month)
		assert.False(t, repoCalled)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss loads from repository and fills cache", func(t *testing.T) {
		deps := setupPayslipServiceTest(t)

		deps.redisMock.ExpectGet(cacheKey).RedisNil()
		deps.redisMock.Regexp().ExpectSet(cacheKey, `.*`, time.Hour).SetVal("OK")

		deps.repo.findAllByEmployeeFn = func(ctx context.Context, eid string) ([]payslip.Payslip, error) {
			return []payslip.Payslip{*storedPayslip(employeeID)}, nil
		}

		resp, err := deps.service.ListByEmployee(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "March", resp[0].Month)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})
}

func TestPayslipService_GetByID(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("success owner reads own payslip", func(t *testing.T) {
		deps := setupPayslipServiceTest(t)

		p := storedPayslip(ownerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payslip.Payslip, error) {
			return p, nil
		}

		resp, err := deps.service.GetByID(ctx, ownerID.String(), access.RoleEmployee, p.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, p.ID.String(), resp.ID)
	})

	t.Run("success admin reads any payslip", func(t *testing.T) {
		deps := setupPayslipServiceTest(t)

		p := storedPayslip(ownerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payslip.Payslip, error) {
			return p, nil
		}

		_, err := deps.service.GetByID(ctx, uuid.NewString(), access.RoleAdmin, p.ID.String())
		assert.NoError(t, err)
	})

	t.Run("negative non-owner gets not found, not forbidden", func(t *testing.T) {
		deps := setupPayslipServiceTest(t)

		p := storedPayslip(ownerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payslip.Payslip, error) {
			return p, nil
		}

		_, err := deps.service.GetByID(ctx, uuid.NewString(), access.RoleEmployee, p.ID.String())
		assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
	})
}

func TestPayslipService_RenderPDF(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := setupPayslipServiceTest(t)

	p := storedPayslip(ownerID)
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payslip.Payslip, error) {
		return p, nil
	}

	pdf, err := deps.service.RenderPDF(ctx, ownerID.String(), access.RoleEmployee, p.ID.String())

	assert.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF-1.4", string(pdf[:8]))
	assert.Contains(t, string(pdf), "March 2026")
}
