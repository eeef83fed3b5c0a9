package shift

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Lexio19/employee-hub/internal/employee"
	"github.com/Lexio19/employee-hub/internal/events"
	"github.com/Lexio19/employee-hub/internal/messaging/kafka"
	"github.com/Lexio19/employee-hub/internal/shared/contextutil"
	shifterrors "github.com/Lexio19/employee-hub/internal/shift/errors"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	ListOwnShifts(ctx context.Context, employeeID string) ([]ShiftResponse, error)
	ListAllShifts(ctx context.Context) ([]ShiftResponse, error)
	CreateSwap(ctx context.Context, requesterID string, req CreateSwapRequest) (SwapResponse, error)
	ListOwnSwaps(ctx context.Context, employeeID string) ([]SwapResponse, error)
	ListAvailableSwaps(ctx context.Context, employeeID string) ([]SwapResponse, error)
	AcceptSwap(ctx context.Context, actorID, id string) (SwapResponse, error)
	RejectSwap(ctx context.Context, actorID, id string) (SwapResponse, error)
	CancelSwap(ctx context.Context, actorID, id string) (SwapResponse, error)
}

type service struct {
	db        *sql.DB
	shifts    ShiftRepository
	swaps     SwapRepository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	shifts ShiftRepository,
	swaps SwapRepository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{
		db:        db,
		shifts:    shifts,
		swaps:     swaps,
		employees: employees,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error) {
	s.logger.Debug("create shift requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("type", req.Type),
	)

	empl, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrShiftEmployeeNotFound
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidShiftDate
	}

	sh := &Shift{
		ID:         uuid.New(),
		EmployeeID: empl.ID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Type:       req.Type,
	}

	if err := s.shifts.Create(ctx, sh); err != nil {
		s.logger.Error("create shift persist failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	s.logger.Info("create shift success",
		zap.String("shift_id", sh.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapShiftToResponse(*sh), nil
}

func (s *service) ListOwnShifts(ctx context.Context, employeeID string) ([]ShiftResponse, error) {
	shifts, err := s.shifts.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list own shifts failed", zap.Error(err))
		return nil, err
	}

	responses := make([]ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}
	return responses, nil
}

func (s *service) ListAllShifts(ctx context.Context) ([]ShiftResponse, error) {
	rows, err := s.shifts.FindAll(ctx)
	if err != nil {
		s.logger.Error("list all shifts failed", zap.Error(err))
		return nil, err
	}

	responses := make([]ShiftResponse, 0, len(rows))
	for _, row := range rows {
		resp := mapShiftToResponse(row.Shift)
		resp.EmployeeName = row.EmployeeName
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *service) CreateSwap(ctx context.Context, requesterID string, req CreateSwapRequest) (SwapResponse, error) {
	s.logger.Debug("create swap requested",
		zap.String("requester_id", requesterID),
		zap.String("shift_id", req.ShiftID),
	)

	sh, err := s.shifts.FindByID(ctx, req.ShiftID)
	if err != nil {
		return SwapResponse{}, shifterrors.ErrShiftNotFound
	}
	if sh.EmployeeID.String() != requesterID {
		return SwapResponse{}, shifterrors.ErrNotShiftOwner
	}

	pending, err := s.swaps.HasPendingForShift(ctx, req.ShiftID)
	if err != nil {
		s.logger.Error("create swap pending check failed", zap.Error(err))
		return SwapResponse{}, err
	}
	if pending {
		return SwapResponse{}, shifterrors.ErrPendingSwapExists
	}

	swap := &SwapRequest{
		ID:          uuid.New(),
		ShiftID:     sh.ID,
		RequesterID: sh.EmployeeID,
		Reason:      req.Reason,
		Status:      SwapStatusPending,
	}

	if err := s.swaps.Create(ctx, swap); err != nil {
		s.logger.Error("create swap persist failed", zap.Error(err))
		return SwapResponse{}, err
	}

	s.logger.Info("create swap success",
		zap.String("swap_id", swap.ID.String()),
		zap.String("shift_id", req.ShiftID),
	)
	return mapSwapToResponse(*swap), nil
}

func (s *service) ListOwnSwaps(ctx context.Context, employeeID string) ([]SwapResponse, error) {
	rows, err := s.swaps.FindAllByRequester(ctx, employeeID)
	if err != nil {
		s.logger.Error("list own swaps failed", zap.Error(err))
		return nil, err
	}
	return mapSwapRows(rows), nil
}

func (s *service) ListAvailableSwaps(ctx context.Context, employeeID string) ([]SwapResponse, error) {
	rows, err := s.swaps.FindAvailable(ctx, employeeID)
	if err != nil {
		s.logger.Error("list available swaps failed", zap.Error(err))
		return nil, err
	}
	return mapSwapRows(rows), nil
}

// AcceptSwap resolves a swap in one transaction: the offered shift moves to
// the accepter and, when the accepter has an upcoming shift of their own, that
// shift moves back to the requester.
func (s *service) AcceptSwap(ctx context.Context, actorID, id string) (SwapResponse, error) {
	s.logger.Debug("accept swap requested",
		zap.String("swap_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SwapResponse{}, shifterrors.ErrSwapNotFound
	}

	swap, err := s.swaps.FindByID(ctx, id)
	if err != nil {
		return SwapResponse{}, shifterrors.ErrSwapNotFound
	}
	if swap.RequesterID == actorUUID {
		return SwapResponse{}, shifterrors.ErrSwapSelfAccept
	}
	if !swap.IsPending() {
		return SwapResponse{}, shifterrors.ErrSwapNotPending
	}

	returnShift, err := s.shifts.FindNextOwnedShift(ctx, actorID, today(), swap.ShiftID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("accept swap return shift lookup failed", zap.Error(err))
		return SwapResponse{}, err
	}
	hasReturnShift := err == nil

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("accept swap begin tx failed", zap.Error(err))
		return SwapResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	swap.Status = SwapStatusAccepted
	swap.AcceptedBy = &actorUUID
	swap.AcceptedAt = &now

	if err := s.swaps.WithTx(tx).UpdateStatus(ctx, swap); err != nil {
		s.logger.Error("accept swap persist failed", zap.Error(err))
		return SwapResponse{}, err
	}

	qshifts := s.shifts.WithTx(tx)
	if err := qshifts.ReassignOwner(ctx, swap.ShiftID.String(), actorID); err != nil {
		s.logger.Error("accept swap shift reassign failed", zap.Error(err))
		return SwapResponse{}, err
	}

	returnedShiftID := ""
	if hasReturnShift {
		if err := qshifts.ReassignOwner(ctx, returnShift.ID.String(), swap.RequesterID.String()); err != nil {
			s.logger.Error("accept swap return reassign failed", zap.Error(err))
			return SwapResponse{}, err
		}
		returnedShiftID = returnShift.ID.String()
	}

	if err := s.enqueueAcceptedEvent(ctx, tx, swap, returnedShiftID); err != nil {
		s.logger.Error("accept swap outbox enqueue failed", zap.Error(err))
		return SwapResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("accept swap commit failed", zap.Error(err))
		return SwapResponse{}, err
	}

	s.logger.Info("accept swap success",
		zap.String("swap_id", id),
		zap.String("accepted_by", actorID),
		zap.Bool("return_shift", hasReturnShift),
	)
	return mapSwapToResponse(*swap), nil
}

// RejectSwap hides the request from the rejecting employee. The request stays
// pending for everyone else.
func (s *service) RejectSwap(ctx context.Context, actorID, id string) (SwapResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SwapResponse{}, shifterrors.ErrSwapNotFound
	}

	swap, err := s.swaps.FindByID(ctx, id)
	if err != nil {
		return SwapResponse{}, shifterrors.ErrSwapNotFound
	}
	if swap.RequesterID == actorUUID {
		return SwapResponse{}, shifterrors.ErrSwapSelfReject
	}
	if !swap.IsPending() {
		return SwapResponse{}, shifterrors.ErrSwapNotPending
	}

	if err := s.swaps.AddRejection(ctx, swap.ID, actorUUID); err != nil {
		s.logger.Error("reject swap persist failed", zap.Error(err))
		return SwapResponse{}, err
	}

	s.logger.Info("reject swap success",
		zap.String("swap_id", id),
		zap.String("rejected_by", actorID),
	)
	return mapSwapToResponse(*swap), nil
}

func (s *service) CancelSwap(ctx context.Context, actorID, id string) (SwapResponse, error) {
	swap, err := s.swaps.FindByID(ctx, id)
	if err != nil {
		return SwapResponse{}, shifterrors.ErrSwapNotFound
	}
	if swap.RequesterID.String() != actorID {
		return SwapResponse{}, shifterrors.ErrNotSwapRequester
	}
	if !swap.IsPending() {
		return SwapResponse{}, shifterrors.ErrSwapNotPending
	}

	swap.Status = SwapStatusCancelled
	if err := s.swaps.UpdateStatus(ctx, swap); err != nil {
		s.logger.Error("cancel swap persist failed", zap.Error(err))
		return SwapResponse{}, err
	}

	s.logger.Info("cancel swap success", zap.String("swap_id", id))
	return mapSwapToResponse(*swap), nil
}

func (s *service) enqueueAcceptedEvent(ctx context.Context, tx *sql.Tx, swap *SwapRequest, returnedShiftID string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ShiftSwapAcceptedEvent{
		EventType:       "swap_accepted",
		RequestID:       contextutil.GetRequestID(ctx),
		SwapRequestID:   swap.ID.String(),
		ShiftID:         swap.ShiftID.String(),
		RequesterID:     swap.RequesterID.String(),
		AcceptedBy:      swap.AcceptedBy.String(),
		ReturnedShiftID: returnedShiftID,
		OccurredAt:      time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "swap_request",
		AggregateID:   swap.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ShiftSwapTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func mapShiftToResponse(sh Shift) ShiftResponse {
	return ShiftResponse{
		ID:         sh.ID.String(),
		EmployeeID: sh.EmployeeID.String(),
		Date:       sh.Date.Format(dateLayout),
		StartTime:  sh.StartTime,
		EndTime:    sh.EndTime,
		Type:       sh.Type,
		CreatedAt:  sh.CreatedAt,
	}
}

func mapSwapToResponse(swap SwapRequest) SwapResponse {
	resp := SwapResponse{
		ID:          swap.ID.String(),
		ShiftID:     swap.ShiftID.String(),
		RequesterID: swap.RequesterID.String(),
		Reason:      swap.Reason,
		Status:      swap.Status,
		AcceptedAt:  swap.AcceptedAt,
		CreatedAt:   swap.CreatedAt,
	}
	if swap.AcceptedBy != nil {
		acceptedBy := swap.AcceptedBy.String()
		resp.AcceptedBy = &acceptedBy
	}
	return resp
}

func mapSwapRows(rows []SwapWithShift) []SwapResponse {
	responses := make([]SwapResponse, 0, len(rows))
	for _, row := range rows {
		resp := mapSwapToResponse(row.SwapRequest)
		resp.Shift = &ShiftResponse{
			ID:         row.ShiftID.String(),
			EmployeeID: row.ShiftEmployeeID.String(),
			Date:       row.ShiftDate.Format(dateLayout),
			StartTime:  row.ShiftStartTime,
			EndTime:    row.ShiftEndTime,
			Type:       row.ShiftType,
		}
		responses = append(responses, resp)
	}
	return responses
}
