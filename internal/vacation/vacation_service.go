package vacation

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lexio19/employee-hub/internal/employee"
	"github.com/Lexio19/employee-hub/internal/events"
	"github.com/Lexio19/employee-hub/internal/messaging/kafka"
	"github.com/Lexio19/employee-hub/internal/shared/contextutil"
	vacationerrors "github.com/Lexio19/employee-hub/internal/vacation/errors"
)

const (
	dateLayout              = "2006-01-02"
	defaultRejectionMessage = "No reason provided"
)

//go:generate mockgen -source=vacation_service.go -destination=mock/vacation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateVacationRequest) (VacationResponse, error)
	ListOwn(ctx context.Context, employeeID string) ([]VacationResponse, error)
	ListPending(ctx context.Context) ([]VacationResponse, error)
	SetStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (VacationResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("vacation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.service")
	}
	return &service{db: db, repo: repo, employees: employees, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateVacationRequest) (VacationResponse, error) {
	s.logger.Debug("create vacation requested",
		zap.String("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int("days", req.Days),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrVacationNotFound
	}

	startDate, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidDateFormat
	}
	endDate, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidDateFormat
	}

	if startDate.Before(today()) {
		return VacationResponse{}, vacationerrors.ErrStartDateInPast
	}
	if endDate.Before(startDate) {
		return VacationResponse{}, vacationerrors.ErrInvalidDateRange
	}
	if req.Days < MinRequestDays || req.Days > MaxRequestDays {
		return VacationResponse{}, vacationerrors.ErrInvalidDayCount
	}

	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		s.logger.Error("create vacation employee lookup failed", zap.Error(err))
		return VacationResponse{}, err
	}
	if available := empl.AvailableVacationDays(); req.Days > available {
		s.logger.Warn("create vacation rejected, balance too low",
			zap.String("employee_id", employeeID),
			zap.Int("requested", req.Days),
			zap.Int("available", available),
		)
		return VacationResponse{}, vacationerrors.InsufficientDays(available)
	}

	overlap, err := s.repo.HasOverlappingRequest(ctx, employeeID, startDate, endDate)
	if err != nil {
		s.logger.Error("create vacation overlap check failed", zap.Error(err))
		return VacationResponse{}, err
	}
	if overlap {
		return VacationResponse{}, vacationerrors.ErrOverlappingRequest
	}

	v := &VacationRequest{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       req.Days,
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.Error("create vacation persist failed", zap.Error(err))
		return VacationResponse{}, err
	}

	s.logger.Info("create vacation success",
		zap.String("vacation_id", v.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*v), nil
}

func (s *service) ListOwn(ctx context.Context, employeeID string) ([]VacationResponse, error) {
	requests, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list own vacations failed", zap.Error(err))
		return nil, err
	}

	responses := make([]VacationResponse, 0, len(requests))
	for _, v := range requests {
		responses = append(responses, mapToResponse(v))
	}
	return responses, nil
}

func (s *service) ListPending(ctx context.Context) ([]VacationResponse, error) {
	rows, err := s.repo.FindAllPending(ctx)
	if err != nil {
		s.logger.Error("list pending vacations failed", zap.Error(err))
		return nil, err
	}

	responses := make([]VacationResponse, 0, len(rows))
	for _, row := range rows {
		resp := mapToResponse(row.VacationRequest)
		resp.EmployeeName = row.EmployeeName
		resp.EmployeeEmail = row.EmployeeEmail
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *service) SetStatus(ctx context.Context, actorID, id string, req UpdateStatusRequest) (VacationResponse, error) {
	s.logger.Debug("set vacation status requested",
		zap.String("vacation_id", id),
		zap.String("actor_id", actorID),
		zap.String("status", req.Status),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrVacationNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set vacation status begin tx failed", zap.Error(err))
		return VacationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByID(ctx, id)
	if err != nil {
		return VacationResponse{}, vacationerrors.ErrVacationNotFound
	}
	if v.IsResolved() {
		return VacationResponse{}, vacationerrors.ErrAlreadyResolved
	}

	now := time.Now().UTC()

	switch req.Status {
	case StatusApproved:
		empl, err := s.employees.FindByID(ctx, v.EmployeeID.String())
		if err != nil {
			s.logger.Error("set vacation status employee lookup failed", zap.Error(err))
			return VacationResponse{}, err
		}
		if available := empl.AvailableVacationDays(); v.Days > available {
			return VacationResponse{}, vacationerrors.InsufficientDays(available)
		}

		v.Status = StatusApproved
		v.ApprovedBy = &actorUUID
		v.ApprovedAt = &now

		if err := qtx.UpdateStatus(ctx, v); err != nil {
			s.logger.Error("approve vacation persist failed", zap.Error(err))
			return VacationResponse{}, err
		}
		if err := s.employees.WithTx(tx).IncrementUsedVacationDays(ctx, v.EmployeeID.String(), v.Days); err != nil {
			s.logger.Error("approve vacation balance update failed", zap.Error(err))
			return VacationResponse{}, err
		}
		if err := s.enqueueApprovedEvent(ctx, tx, v); err != nil {
			s.logger.Error("approve vacation outbox enqueue failed", zap.Error(err))
			return VacationResponse{}, err
		}

	case StatusRejected:
		reason := req.RejectionReason
		if reason == "" {
			reason = defaultRejectionMessage
		}

		v.Status = StatusRejected
		v.ApprovedBy = &actorUUID
		v.ApprovedAt = &now
		v.RejectionReason = &reason

		if err := qtx.UpdateStatus(ctx, v); err != nil {
			s.logger.Error("reject vacation persist failed", zap.Error(err))
			return VacationResponse{}, err
		}

	default:
		return VacationResponse{}, vacationerrors.ErrAlreadyResolved
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set vacation status commit failed", zap.Error(err))
		return VacationResponse{}, err
	}

	s.logger.Info("set vacation status success",
		zap.String("vacation_id", id),
		zap.String("status", v.Status),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*v), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return vacationerrors.ErrVacationNotFound
	}
	if v.EmployeeID.String() != actorID {
		return vacationerrors.ErrNotRequestOwner
	}
	if v.IsResolved() {
		return vacationerrors.ErrDeleteResolved
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete vacation failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete vacation success", zap.String("vacation_id", id))
	return nil
}

func (s *service) enqueueApprovedEvent(ctx context.Context, tx *sql.Tx, v *VacationRequest) error {
	if s.outbox == nil {
		return nil
	}

	event := events.VacationApprovedEvent{
		EventType:  "vacation_approved",
		RequestID:  contextutil.GetRequestID(ctx),
		VacationID: v.ID.String(),
		EmployeeID: v.EmployeeID.String(),
		ApprovedBy: v.ApprovedBy.String(),
		Days:       v.Days,
		StartDate:  v.StartDate.Format(dateLayout),
		EndDate:    v.EndDate.Format(dateLayout),
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "vacation_request",
		AggregateID:   v.ID.String(),
		EventType:     event.EventType,
		Topic:         events.VacationLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func mapToResponse(v VacationRequest) VacationResponse {
	resp := VacationResponse{
		ID:              v.ID.String(),
		EmployeeID:      v.EmployeeID.String(),
		StartDate:       v.StartDate.Format(dateLayout),
		EndDate:         v.EndDate.Format(dateLayout),
		Days:            v.Days,
		Reason:          v.Reason,
		Status:          v.Status,
		ApprovedAt:      v.ApprovedAt,
		RejectionReason: v.RejectionReason,
		CreatedAt:       v.CreatedAt,
	}
	if v.ApprovedBy != nil {
		approver := v.ApprovedBy.String()
		resp.ApprovedBy = &approver
	}
	return resp
}
