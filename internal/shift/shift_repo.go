package shift

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// ShiftWithEmployee is a shift joined with its owner's name for the rota
// overview screen.
type ShiftWithEmployee struct {
	Shift
	EmployeeName string
}

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type ShiftRepository interface {
	WithTx(tx *sql.Tx) ShiftRepository
	Create(ctx context.Context, s *Shift) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Shift, error)
	FindAll(ctx context.Context) ([]ShiftWithEmployee, error)
	FindByID(ctx context.Context, id string) (*Shift, error)
	ReassignOwner(ctx context.Context, shiftID, employeeID string) error
	FindNextOwnedShift(ctx context.Context, employeeID string, from time.Time, excludeShiftID string) (*Shift, error)
}

type shiftRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) WithTx(tx *sql.Tx) ShiftRepository {
	return &shiftRepository{db: r.db, tx: tx}
}

func (r *shiftRepository) Create(ctx context.Context, s *Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shiftRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Shift, error) {
	var shifts []Shift
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date ASC, start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepository) FindAll(ctx context.Context) ([]ShiftWithEmployee, error) {
	var rows []ShiftWithEmployee
	err := r.db.WithContext(ctx).
		Table("shifts").
		Select("shifts.*, employees.name AS employee_name").
		Joins("JOIN employees ON employees.id = shifts.employee_id").
		Order("shifts.date ASC, shifts.start_time ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *shiftRepository) FindByID(ctx context.Context, id string) (*Shift, error) {
	var s Shift
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

// ReassignOwner hands a shift to another employee. When a transaction is
// attached the write joins it so both sides of a swap move together.
func (r *shiftRepository) ReassignOwner(ctx context.Context, shiftID, employeeID string) error {
	if r.tx != nil {
		query := `
UPDATE shifts
SET employee_id = $2,
	updated_at = NOW()
WHERE id = $1
`
		_, err := r.tx.ExecContext(ctx, query, shiftID, employeeID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&Shift{}).
		Where("id = ?", shiftID).
		Update("employee_id", employeeID).Error
}

func (r *shiftRepository) FindNextOwnedShift(ctx context.Context, employeeID string, from time.Time, excludeShiftID string) (*Shift, error) {
	var s Shift
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date >= ?", from).
		Where("id <> ?", excludeShiftID).
		Order("date ASC, start_time ASC").
		First(&s).Error
	return &s, err
}
