package shift_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Lexio19/employee-hub/internal/employee"
	"github.com/Lexio19/employee-hub/internal/messaging/kafka"
	"github.com/Lexio19/employee-hub/internal/shift"
	shifterrors "github.com/Lexio19/employee-hub/internal/shift/errors"
)

type fakeShiftRepository struct {
	withTxFn             func(tx *sql.Tx) shift.ShiftRepository
	createFn             func(ctx context.Context, s *shift.Shift) error
	findAllByEmployeeFn  func(ctx context.Context, employeeID string) ([]shift.Shift, error)
	findAllFn            func(ctx context.Context) ([]shift.ShiftWithEmployee, error)
	findByIDFn           func(ctx context.Context, id string) (*shift.Shift, error)
	reassignOwnerFn      func(ctx context.Context, shiftID, employeeID string) error
	findNextOwnedShiftFn func(ctx context.Context, employeeID string, from time.Time, excludeShiftID string) (*shift.Shift, error)
}

func (f *fakeShiftRepository) WithTx(tx *sql.Tx) shift.ShiftRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeShiftRepository) Create(ctx context.Context, s *shift.Shift) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}

func (f *fakeShiftRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]shift.Shift, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeShiftRepository) FindAll(ctx context.Context) ([]shift.ShiftWithEmployee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeShiftRepository) FindByID(ctx context.Context, id string) (*shift.Shift, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func (f *fakeShiftRepository) ReassignOwner(ctx context.Context, shiftID, employeeID string) error {
	if f.reassignOwnerFn != nil {
		return f.reassignOwnerFn(ctx, shiftID, employeeID)
	}
	return nil
}

func (f *fakeShiftRepository) FindNextOwnedShift(ctx context.Context, employeeID string, from time.Time, excludeShiftID string) (*shift.Shift, error) {
	if f.findNextOwnedShiftFn != nil {
		return f.findNextOwnedShiftFn(ctx, employeeID, from, excludeShiftID)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSwapRepository struct {
	withTxFn             func(tx *sql.Tx) shift.SwapRepository
	createFn             func(ctx context.Context, s *shift.SwapRequest) error
	findByIDFn           func(ctx context.Context, id string) (*shift.SwapRequest, error)
	hasPendingForShiftFn func(ctx context.Context, shiftID string) (bool, error)
	findAllByRequesterFn func(ctx context.Context, employeeID string) ([]shift.SwapWithShift, error)
	findAvailableFn      func(ctx context.Context, employeeID string) ([]shift.SwapWithShift, error)
	updateStatusFn       func(ctx context.Context, s *shift.SwapRequest) error
	addRejectionFn       func(ctx context.Context, swapRequestID, employeeID uuid.UUID) error
}

func (f *fakeSwapRepository) WithTx(tx *sql.Tx) shift.SwapRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeSwapRepository) Create(ctx context.Context, s *shift.SwapRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}

func (f *fakeSwapRepository) FindByID(ctx context.Context, id string) (*shift.SwapRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func (f *fakeSwapRepository) HasPendingForShift(ctx context.Context, shiftID string) (bool, error) {
	if f.hasPendingForShiftFn != nil {
		return f.hasPendingForShiftFn(ctx, shiftID)
	}
	return false, nil
}

func (f *fakeSwapRepository) FindAllByRequester(ctx context.Context, employeeID string) ([]shift.SwapWithShift, error) {
	if f.findAllByRequesterFn != nil {
		return f.findAllByRequesterFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeSwapRepository) FindAvailable(ctx context.Context, employeeID string) ([]shift.SwapWithShift, error) {
	if f.findAvailableFn != nil {
		return f.findAvailableFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeSwapRepository) UpdateStatus(ctx context.Context, s *shift.SwapRequest) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, s)
	}
	return nil
}

func (f *fakeSwapRepository) AddRejection(ctx context.Context, swapRequestID, employeeID uuid.UUID) error {
	if f.addRejectionFn != nil {
		return f.addRejectionFn(ctx, swapRequestID, employeeID)
	}
	return nil
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
	return &employee.Employee{ID: uuid.MustParse(id)}, nil
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, errors.New("not found")
}

func (f *fakeEmployeeRepository) IncrementUsedVacationDays(ctx context.Context, id string, days int) error {
	return nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type shiftServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service shift.Service
	shifts  *fakeShiftRepository
	swaps   *fakeSwapRepository
	outbox  *fakeOutboxRepository
}

func setupShiftServiceTest(t *testing.T) *shiftServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	shifts := &fakeShiftRepository{}
	swaps := &fakeSwapRepository{}
	outbox := &fakeOutboxRepository{}
	svc := shift.NewService(db, shifts, swaps, &fakeEmployeeRepository{}, outbox)

	return &shiftServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		shifts:  shifts,
		swaps:   swaps,
		outbox:  outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func ownedShift(employeeID uuid.UUID, daysAhead int) *shift.Shift {
	return &shift.Shift{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       time.Now().UTC().AddDate(0, 0, daysAhead),
		StartTime:  "09:00",
		EndTime:    "17:00",
		Type:       shift.TypeMorning,
	}
}

func pendingSwap(requesterID, shiftID uuid.UUID) *shift.SwapRequest {
	return &shift.SwapRequest{
		ID:          uuid.New(),
		ShiftID:     shiftID,
		RequesterID: requesterID,
		Reason:      "Doctor appointment",
		Status:      shift.SwapStatusPending,
	}
}

func TestShiftService_CreateSwap(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()

	t.Run("success creates pending swap", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		sh := ownedShift(requesterID, 7)
		deps.shifts.findByIDFn = func(ctx context.Context, id string) (*shift.Shift, error) {
			return sh, nil
		}

		var created *shift.SwapRequest
		deps.swaps.createFn = func(ctx context.Context, s *shift.SwapRequest) error {
			created = s
			return nil
		}

		resp, err := deps.service.CreateSwap(ctx, requesterID.String(), shift.CreateSwapRequest{
			ShiftID: sh.ID.String(),
			Reason:  "Doctor appointment",
		})

		assert.NoError(t, err)
		assert.Equal(t, shift.SwapStatusPending, resp.Status)
		assert.NotNil(t, created)
		assert.Equal(t, requesterID, created.RequesterID)
	})

	t.Run("negative not shift owner", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		sh := ownedShift(uuid.New(), 7)
		deps.shifts.findByIDFn = func(ctx context.Context, id string) (*shift.Shift, error) {
			return sh, nil
		}

		_, err := deps.service.CreateSwap(ctx, requesterID.String(), shift.CreateSwapRequest{
			ShiftID: sh.ID.String(),
		})

		assert.ErrorIs(t, err, shifterrors.ErrNotShiftOwner)
	})

	t.Run("negative pending swap already exists for shift", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		sh := ownedShift(requesterID, 7)
		deps.shifts.findByIDFn = func(ctx context.Context, id string) (*shift.Shift, error) {
			return sh, nil
		}
		deps.swaps.hasPendingForShiftFn = func(ctx context.Context, shiftID string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.CreateSwap(ctx, requesterID.String(), shift.CreateSwapRequest{
			ShiftID: sh.ID.String(),
		})

		assert.ErrorIs(t, err, shifterrors.ErrPendingSwapExists)
	})
}

func TestShiftService_AcceptSwap(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	accepterID := uuid.New()

	t.Run("success two-sided swap retargets both shifts", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		offered := ownedShift(requesterID, 7)
		returned := ownedShift(accepterID, 9)
		swap := pendingSwap(requesterID, offered.ID)

		expectTx(t, deps.sqlMock, true)

		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}
		deps.shifts.findNextOwnedShiftFn = func(ctx context.Context, employeeID string, from time.Time, excludeShiftID string) (*shift.Shift, error) {
			assert.Equal(t, accepterID.String(), employeeID)
			assert.Equal(t, offered.ID.String(), excludeShiftID)
			return returned, nil
		}

		reassigned := map[string]string{}
		deps.shifts.reassignOwnerFn = func(ctx context.Context, shiftID, employeeID string) error {
			reassigned[shiftID] = employeeID
			return nil
		}

		var enqueued *kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			enqueued = &event
			return nil
		}

		resp, err := deps.service.AcceptSwap(ctx, accepterID.String(), swap.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, shift.SwapStatusAccepted, resp.Status)
		assert.Equal(t, accepterID.String(), reassigned[offered.ID.String()])
		assert.Equal(t, requesterID.String(), reassigned[returned.ID.String()])
		assert.NotNil(t, enqueued)
		assert.Equal(t, "swap_accepted", enqueued.EventType)
		assert.Equal(t, "hr.shift.swap.v1", enqueued.Topic)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success asymmetric accept when accepter has no upcoming shift", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		offered := ownedShift(requesterID, 7)
		swap := pendingSwap(requesterID, offered.ID)

		expectTx(t, deps.sqlMock, true)

		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}

		reassigned := map[string]string{}
		deps.shifts.reassignOwnerFn = func(ctx context.Context, shiftID, employeeID string) error {
			reassigned[shiftID] = employeeID
			return nil
		}

		resp, err := deps.service.AcceptSwap(ctx, accepterID.String(), swap.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, shift.SwapStatusAccepted, resp.Status)
		assert.Len(t, reassigned, 1)
		assert.Equal(t, accepterID.String(), reassigned[offered.ID.String()])
	})

	t.Run("negative self accept", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		offered := ownedShift(requesterID, 7)
		swap := pendingSwap(requesterID, offered.ID)

		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}

		_, err := deps.service.AcceptSwap(ctx, requesterID.String(), swap.ID.String())
		assert.ErrorIs(t, err, shifterrors.ErrSwapSelfAccept)
	})

	t.Run("negative double accept", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		offered := ownedShift(requesterID, 7)
		swap := pendingSwap(requesterID, offered.ID)
		swap.Status = shift.SwapStatusAccepted

		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}

		_, err := deps.service.AcceptSwap(ctx, accepterID.String(), swap.ID.String())
		assert.ErrorIs(t, err, shifterrors.ErrSwapNotPending)
	})

	t.Run("negative failed reassign rolls back", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		offered := ownedShift(requesterID, 7)
		swap := pendingSwap(requesterID, offered.ID)

		expectTx(t, deps.sqlMock, false)

		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}
		deps.shifts.reassignOwnerFn = func(ctx context.Context, shiftID, employeeID string) error {
			return errors.New("deadlock detected")
		}

		_, err := deps.service.AcceptSwap(ctx, accepterID.String(), swap.ID.String())
		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestShiftService_RejectSwap(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	rejecterID := uuid.New()

	t.Run("success rejection keeps request pending", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		swap := pendingSwap(requesterID, uuid.New())
		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}

		var rejected uuid.UUID
		deps.swaps.addRejectionFn = func(ctx context.Context, swapRequestID, employeeID uuid.UUID) error {
			assert.Equal(t, swap.ID, swapRequestID)
			rejected = employeeID
			return nil
		}

		resp, err := deps.service.RejectSwap(ctx, rejecterID.String(), swap.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, shift.SwapStatusPending, resp.Status)
		assert.Equal(t, rejecterID, rejected)
	})

	t.Run("negative requester rejecting own request", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		swap := pendingSwap(requesterID, uuid.New())
		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}

		_, err := deps.service.RejectSwap(ctx, requesterID.String(), swap.ID.String())
		assert.ErrorIs(t, err, shifterrors.ErrSwapSelfReject)
	})

	t.Run("negative resolved request", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		swap := pendingSwap(requesterID, uuid.New())
		swap.Status = shift.SwapStatusCancelled
		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}

		_, err := deps.service.RejectSwap(ctx, rejecterID.String(), swap.ID.String())
		assert.ErrorIs(t, err, shifterrors.ErrSwapNotPending)
	})
}

func TestShiftService_SwapMarketplaceScenario(t *testing.T) {
	// A rejected swap disappears from the rejecter's marketplace while staying
	// visible to every other employee and in the requester's own listing.
	ctx := context.Background()
	requesterID := uuid.New()
	rejecterID := uuid.New()
	bystanderID := uuid.New()

	deps := setupShiftServiceTest(t)
	defer deps.db.Close()

	offered := ownedShift(requesterID, 7)
	swap := pendingSwap(requesterID, offered.ID)
	row := shift.SwapWithShift{
		SwapRequest:     *swap,
		ShiftEmployeeID: offered.EmployeeID,
		ShiftDate:       offered.Date,
		ShiftStartTime:  offered.StartTime,
		ShiftEndTime:    offered.EndTime,
		ShiftType:       offered.Type,
	}

	rejections := map[uuid.UUID]bool{}
	deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
		return swap, nil
	}
	deps.swaps.addRejectionFn = func(ctx context.Context, swapRequestID, employeeID uuid.UUID) error {
		rejections[employeeID] = true
		return nil
	}
	deps.swaps.findAvailableFn = func(ctx context.Context, employeeID string) ([]shift.SwapWithShift, error) {
		if swap.Status != shift.SwapStatusPending ||
			swap.RequesterID.String() == employeeID ||
			rejections[uuid.MustParse(employeeID)] {
			return nil, nil
		}
		return []shift.SwapWithShift{row}, nil
	}
	deps.swaps.findAllByRequesterFn = func(ctx context.Context, employeeID string) ([]shift.SwapWithShift, error) {
		if swap.RequesterID.String() != employeeID {
			return nil, nil
		}
		return []shift.SwapWithShift{row}, nil
	}

	_, err := deps.service.RejectSwap(ctx, rejecterID.String(), swap.ID.String())
	assert.NoError(t, err)

	forRejecter, err := deps.service.ListAvailableSwaps(ctx, rejecterID.String())
	assert.NoError(t, err)
	assert.Empty(t, forRejecter)

	forBystander, err := deps.service.ListAvailableSwaps(ctx, bystanderID.String())
	assert.NoError(t, err)
	assert.Len(t, forBystander, 1)
	assert.Equal(t, swap.ID.String(), forBystander[0].ID)
	assert.Equal(t, shift.SwapStatusPending, forBystander[0].Status)

	forRequester, err := deps.service.ListAvailableSwaps(ctx, requesterID.String())
	assert.NoError(t, err)
	assert.Empty(t, forRequester)

	own, err := deps.service.ListOwnSwaps(ctx, requesterID.String())
	assert.NoError(t, err)
	assert.Len(t, own, 1)
	assert.Equal(t, shift.SwapStatusPending, own[0].Status)
}

func TestShiftService_ListOwnSwaps(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	accepterID := uuid.New()

	t.Run("success shift owner comes from the joined shift", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		swap := pendingSwap(requesterID, uuid.New())
		swap.Status = shift.SwapStatusAccepted
		swap.AcceptedBy = &accepterID

		deps.swaps.findAllByRequesterFn = func(ctx context.Context, employeeID string) ([]shift.SwapWithShift, error) {
			return []shift.SwapWithShift{{
				SwapRequest:     *swap,
				ShiftEmployeeID: accepterID,
				ShiftDate:       time.Now().UTC().AddDate(0, 0, 7),
				ShiftStartTime:  "09:00",
				ShiftEndTime:    "17:00",
				ShiftType:       shift.TypeMorning,
			}}, nil
		}

		resps, err := deps.service.ListOwnSwaps(ctx, requesterID.String())

		assert.NoError(t, err)
		assert.Len(t, resps, 1)
		assert.NotNil(t, resps[0].Shift)
		assert.Equal(t, accepterID.String(), resps[0].Shift.EmployeeID)
	})
}

func TestShiftService_CancelSwap(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()

	t.Run("success requester cancels own pending request", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		swap := pendingSwap(requesterID, uuid.New())
		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}

		resp, err := deps.service.CancelSwap(ctx, requesterID.String(), swap.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, shift.SwapStatusCancelled, resp.Status)
	})

	t.Run("negative non-requester", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		swap := pendingSwap(requesterID, uuid.New())
		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}

		_, err := deps.service.CancelSwap(ctx, uuid.NewString(), swap.ID.String())
		assert.ErrorIs(t, err, shifterrors.ErrNotSwapRequester)
	})

	t.Run("negative already accepted", func(t *testing.T) {
		deps := setupShiftServiceTest(t)
		defer deps.db.Close()

		swap := pendingSwap(requesterID, uuid.New())
		swap.Status = shift.SwapStatusAccepted
		deps.swaps.findByIDFn = func(ctx context.Context, id string) (*shift.SwapRequest, error) {
			return swap, nil
		}

		_, err := deps.service.CancelSwap(ctx, requesterID.String(), swap.ID.String())
		assert.ErrorIs(t, err, shifterrors.ErrSwapNotPending)
	})
}
