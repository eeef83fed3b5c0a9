package payslip

import "time"

type CreatePayslipRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	Month       string  `json:"month" binding:"required"`
	Year        int     `json:"year" binding:"required,min=2000,max=2100"`
	GrossSalary float64 `json:"gross_salary" binding:"required,gt=0"`
	NetSalary   float64 `json:"net_salary" binding:"required,gt=0"`
	Deductions  float64 `json:"deductions" binding:"min=0"`
	Bonus       float64 `json:"bonus" binding:"min=0"`
	PdfURL      string  `json:"pdf_url" binding:"omitempty,url"`
}

type PayslipResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Month       string    `json:"month"`
	Year        int       `json:"year"`
	GrossSalary float64   `json:"gross_salary"`
	NetSalary   float64   `json:"net_salary"`
	Deductions  float64   `json:"deductions"`
	Bonus       float64   `json:"bonus"`
	PdfURL      string    `json:"pdf_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
