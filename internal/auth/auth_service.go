package auth

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Lexio19/employee-hub/internal/access"
	autherrors "github.com/Lexio19/employee-hub/internal/auth/errors"
	"github.com/Lexio19/employee-hub/internal/employee"
)

const tokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (AuthResponse, error)
	GetMe(ctx context.Context, employeeID string) (employee.Profile, error)
}

type service struct {
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employees: employees, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.employees.FindByEmail(ctx, email); err == nil {
		s.logger.Warn("register rejected, email taken", zap.String("email", email))
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	empl := &employee.Employee{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        email,
		Password:     string(hashed),
		Position:     req.Position,
		Department:   req.Department,
		HireDate:     time.Now().UTC(),
		Avatar:       employee.DefaultAvatarURL(req.Name),
		Role:         access.RoleEmployee,
		VacationDays: employee.DefaultVacationDays,
	}

	if err := s.employees.Create(ctx, empl); err != nil {
		s.logger.Error("register persist failed", zap.Error(err))
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	token, err := generateToken(empl.ID.String(), empl.Role, tokenTTL)
	if err != nil {
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("employee registered", zap.String("employee_id", empl.ID.String()))
	return AuthResponse{Profile: employee.ToProfile(*empl), Token: token}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	empl, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		// Same error as a password mismatch so responses cannot be used to
		// probe which emails exist.
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empl.Password), []byte(password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := generateToken(empl.ID.String(), empl.Role, tokenTTL)
	if err != nil {
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("employee logged in", zap.String("employee_id", empl.ID.String()))
	return AuthResponse{Profile: employee.ToProfile(*empl), Token: token}, nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (employee.Profile, error) {
	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return employee.Profile{}, autherrors.ErrEmployeeNotFound
	}
	return employee.ToProfile(*empl), nil
}

func generateToken(employeeID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
