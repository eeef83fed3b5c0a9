package payslip

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payslip) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Payslip, error)
	FindByID(ctx context.Context, id string) (*Payslip, error)
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

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Payslip, error) {
	var payslips []Payslip
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("year DESC, created_at DESC").
		Find(&payslips).Error
	return payslips, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}
