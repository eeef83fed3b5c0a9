package employee

import "time"

// Profile is the employee representation every module returns to clients.
// The credential hash never leaves the entity.
type Profile struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Position         string `json:"position"`
	Department       string `json:"department"`
	HireDate         string `json:"hire_date"`
	Avatar           string `json:"avatar"`
	Role             string `json:"role"`
	VacationDays     int    `json:"vacation_days"`
	UsedVacationDays int    `json:"used_vacation_days"`
}

func ToProfile(e Employee) Profile {
	return Profile{
		ID:               e.ID.String(),
		Name:             e.Name,
		Email:            e.Email,
		Position:         e.Position,
		Department:       e.Department,
		HireDate:         e.HireDate.Format(time.RFC3339),
		Avatar:           e.Avatar,
		Role:             e.Role,
		VacationDays:     e.VacationDays,
		UsedVacationDays: e.UsedVacationDays,
	}
}
