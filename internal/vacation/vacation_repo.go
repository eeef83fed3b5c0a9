package vacation

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// PendingVacation is a request joined with the requester's identity for the
// management review screen.
type PendingVacation struct {
	VacationRequest
	EmployeeName  string
	EmployeeEmail string
}

//go:generate mockgen -source=vacation_repo.go -destination=mock/vacation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *VacationRequest) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]VacationRequest, error)
	FindAllPending(ctx context.Context) ([]PendingVacation, error)
	FindByID(ctx context.Context, id string) (*VacationRequest, error)
	UpdateStatus(ctx context.Context, v *VacationRequest) error
	Delete(ctx context.Context, id string) error
	HasOverlappingRequest(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, v *VacationRequest) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]VacationRequest, error) {
	var requests []VacationRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllPending(ctx context.Context) ([]PendingVacation, error) {
	var rows []PendingVacation
	err := r.db.WithContext(ctx).
		Table("vacation_requests").
		Select("vacation_requests.*, employees.name AS employee_name, employees.email AS employee_email").
		Joins("JOIN employees ON employees.id = vacation_requests.employee_id").
		Where("vacation_requests.status = ?", StatusPending).
		Order("vacation_requests.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*VacationRequest, error) {
	var v VacationRequest
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

// UpdateStatus persists the status transition. When a transaction is attached
// the write joins it so approval stays atomic with the balance increment and
// the outbox insert.
func (r *repository) UpdateStatus(ctx context.Context, v *VacationRequest) error {
	if r.tx != nil {
		query := `
UPDATE vacation_requests
SET status = $2,
	approved_by = $3,
	approved_at = $4,
	rejection_reason = $5,
	updated_at = NOW()
WHERE id = $1
`
		_, err := r.tx.ExecContext(ctx, query,
			v.ID, v.Status, v.ApprovedBy, v.ApprovedAt, v.RejectionReason,
		)
		return err
	}
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&VacationRequest{}, "id = ?", id).Error
}

func (r *repository) HasOverlappingRequest(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&VacationRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}
