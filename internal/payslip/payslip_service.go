package payslip

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Lexio19/employee-hub/internal/access"
	"github.com/Lexio19/employee-hub/internal/employee"
	paysliperrors "github.com/Lexio19/employee-hub/internal/payslip/errors"
)

const listCacheTTL = time.Hour

// ListCacheKey is the redis key holding one employee's payslip listing.
func ListCacheKey(employeeID string) string {
	return fmt.Sprintf("payslips:employee:%s", employeeID)
}

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePayslipRequest) (PayslipResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]PayslipResponse, error)
	GetByID(ctx context.Context, actorID, role, id string) (PayslipResponse, error)
	RenderPDF(ctx context.Context, actorID, role, id string) ([]byte, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	employees employee.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	return &service{
		repo:      repo,
		employees: employees,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

// Create stores the submitted figures verbatim; no salary math happens here.
func (s *service) Create(ctx context.Context, req CreatePayslipRequest) (PayslipResponse, error) {
	s.logger.Debug("create payslip requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("month", req.Month),
		zap.Int("year", req.Year),
	)

	empl, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return PayslipResponse{}, paysliperrors.ErrPayslipEmployeeNotFound
	}

	p := &Payslip{
		ID:          uuid.New(),
		EmployeeID:  empl.ID,
		Month:       req.Month,
		Year:        req.Year,
		GrossSalary: req.GrossSalary,
		NetSalary:   req.NetSalary,
		Deductions:  req.Deductions,
		Bonus:       req.Bonus,
		PdfURL:      req.PdfURL,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create payslip persist failed", zap.Error(err))
		return PayslipResponse{}, mapRepositoryError(err)
	}

	if s.rdb != nil {
		cacheKey := ListCacheKey(req.EmployeeID)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Warn("payslip cache invalidation failed",
				zap.String("cache_key", cacheKey),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("create payslip success",
		zap.String("payslip_id", p.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*p), nil
}

// ListByEmployee serves the listing through a redis read-through cache.
// Payslips are immutable so a stale window only exists between create and the
// Del above; singleflight keeps a cold key from stampeding the database.
func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]PayslipResponse, error) {
	cacheKey := ListCacheKey(employeeID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []PayslipResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		payslips, err := s.repo.FindAllByEmployee(ctx, employeeID)
		if err != nil {
			return nil, err
		}

		resp := make([]PayslipResponse, 0, len(payslips))
		for _, p := range payslips {
			resp = append(resp, mapToResponse(p))
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, listCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		s.logger.Error("list payslips failed", zap.Error(err))
		return nil, err
	}

	return v.([]PayslipResponse), nil
}

func (s *service) GetByID(ctx context.Context, actorID, role, id string) (PayslipResponse, error) {
	p, err := s.findVisible(ctx, actorID, role, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) RenderPDF(ctx context.Context, actorID, role, id string) ([]byte, error) {
	p, err := s.findVisible(ctx, actorID, role, id)
	if err != nil {
		return nil, err
	}

	ownerName := p.EmployeeID.String()
	if empl, err := s.employees.FindByID(ctx, p.EmployeeID.String()); err == nil {
		ownerName = empl.Name
	}

	lines := []string{
		"Employee Hub - Payslip",
		"",
		fmt.Sprintf("Employee: %s", ownerName),
		fmt.Sprintf("Period: %s %d", p.Month, p.Year),
		"",
		fmt.Sprintf("Gross salary: %.2f", p.GrossSalary),
		fmt.Sprintf("Bonus: %.2f", p.Bonus),
		fmt.Sprintf("Deductions: %.2f", p.Deductions),
		fmt.Sprintf("Net salary: %.2f", p.NetSalary),
	}

	return buildPayslipPDF(lines)
}

// findVisible hides other people's payslips behind not-found so the id space
// cannot be probed by non-admins.
func (s *service) findVisible(ctx context.Context, actorID, role, id string) (*Payslip, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, paysliperrors.ErrPayslipNotFound
	}
	if p.EmployeeID.String() != actorID && role != access.RoleAdmin {
		return nil, paysliperrors.ErrPayslipNotFound
	}
	return p, nil
}

func mapToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:          p.ID.String(),
		EmployeeID:  p.EmployeeID.String(),
		Month:       p.Month,
		Year:        p.Year,
		GrossSalary: p.GrossSalary,
		NetSalary:   p.NetSalary,
		Deductions:  p.Deductions,
		Bonus:       p.Bonus,
		PdfURL:      p.PdfURL,
		CreatedAt:   p.CreatedAt,
	}
}
