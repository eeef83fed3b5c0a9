package auth

import "github.com/Lexio19/employee-hub/internal/employee"

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Position   string `json:"position" binding:"required"`
	Department string `json:"department" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the login/register payload: the profile plus a fresh token.
type AuthResponse struct {
	employee.Profile
	Token string `json:"token"`
}
