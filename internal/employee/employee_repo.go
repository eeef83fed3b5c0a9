package employee

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	IncrementUsedVacationDays(ctx context.Context, id string, days int) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&empl).Error
	return &empl, err
}

// IncrementUsedVacationDays applies the balance mutation as a single UPDATE so
// concurrent approvals cannot lose increments. When a transaction is attached
// the statement joins it, keeping the increment atomic with the request's
// status transition.
func (r *repository) IncrementUsedVacationDays(ctx context.Context, id string, days int) error {
	query := `
UPDATE employees
SET used_vacation_days = used_vacation_days + $2,
	updated_at = NOW()
WHERE id = $1
`
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, id, days)
		return err
	}
	return r.db.WithContext(ctx).Exec(
		"UPDATE employees SET used_vacation_days = used_vacation_days + ?, updated_at = NOW() WHERE id = ?",
		days, id,
	).Error
}
