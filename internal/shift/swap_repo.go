package shift

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SwapWithShift is a swap request joined with its shift so marketplace
// listings show the slot being offered.
type SwapWithShift struct {
	SwapRequest
	ShiftEmployeeID uuid.UUID
	ShiftDate       time.Time
	ShiftStartTime  string
	ShiftEndTime    string
	ShiftType       string
}

//go:generate mockgen -source=swap_repo.go -destination=mock/swap_repo_mock.go -package=mock
type SwapRepository interface {
	WithTx(tx *sql.Tx) SwapRepository
	Create(ctx context.Context, s *SwapRequest) error
	FindByID(ctx context.Context, id string) (*SwapRequest, error)
	HasPendingForShift(ctx context.Context, shiftID string) (bool, error)
	FindAllByRequester(ctx context.Context, employeeID string) ([]SwapWithShift, error)
	FindAvailable(ctx context.Context, employeeID string) ([]SwapWithShift, error)
	UpdateStatus(ctx context.Context, s *SwapRequest) error
	AddRejection(ctx context.Context, swapRequestID, employeeID uuid.UUID) error
}

type swapRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) WithTx(tx *sql.Tx) SwapRepository {
	return &swapRepository{db: r.db, tx: tx}
}

func (r *swapRepository) Create(ctx context.Context, s *SwapRequest) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *swapRepository) FindByID(ctx context.Context, id string) (*SwapRequest, error) {
	var s SwapRequest
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *swapRepository) HasPendingForShift(ctx context.Context, shiftID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SwapRequest{}).
		Where("shift_id = ?", shiftID).
		Where("status = ?", SwapStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *swapRepository) FindAllByRequester(ctx context.Context, employeeID string) ([]SwapWithShift, error) {
	var rows []SwapWithShift
	err := r.db.WithContext(ctx).
		Table("swap_requests").
		Select(swapWithShiftColumns).
		Joins("JOIN shifts ON shifts.id = swap_requests.shift_id").
		Where("swap_requests.requester_id = ?", employeeID).
		Order("swap_requests.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// FindAvailable lists the marketplace for one employee: pending requests from
// other people that this employee has not already rejected.
func (r *swapRepository) FindAvailable(ctx context.Context, employeeID string) ([]SwapWithShift, error) {
	var rows []SwapWithShift
	err := r.db.WithContext(ctx).
		Table("swap_requests").
		Select(swapWithShiftColumns).
		Joins("JOIN shifts ON shifts.id = swap_requests.shift_id").
		Where("swap_requests.status = ?", SwapStatusPending).
		Where("swap_requests.requester_id <> ?", employeeID).
		Where(
			"NOT EXISTS (SELECT 1 FROM swap_rejections WHERE swap_rejections.swap_request_id = swap_requests.id AND swap_rejections.employee_id = ?)",
			employeeID,
		).
		Order("swap_requests.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

const swapWithShiftColumns = "swap_requests.*, " +
	"shifts.employee_id AS shift_employee_id, " +
	"shifts.date AS shift_date, shifts.start_time AS shift_start_time, " +
	"shifts.end_time AS shift_end_time, shifts.type AS shift_type"

// UpdateStatus persists a status transition. When a transaction is attached
// the write joins it so acceptance stays atomic with the shift reassignments.
func (r *swapRepository) UpdateStatus(ctx context.Context, s *SwapRequest) error {
	if r.tx != nil {
		query := `
UPDATE swap_requests
SET status = $2,
	accepted_by = $3,
	accepted_at = $4,
	updated_at = NOW()
WHERE id = $1
`
		_, err := r.tx.ExecContext(ctx, query, s.ID, s.Status, s.AcceptedBy, s.AcceptedAt)
		return err
	}
	return r.db.WithContext(ctx).Save(s).Error
}

// AddRejection upserts into the rejecter set; rejecting twice is a no-op.
func (r *swapRepository) AddRejection(ctx context.Context, swapRequestID, employeeID uuid.UUID) error {
	rejection := SwapRejection{
		SwapRequestID: swapRequestID,
		EmployeeID:    employeeID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rejection).Error
}
