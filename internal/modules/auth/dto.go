package auth

import "inkspace/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=6"`
	Name      string          `json:"name" validate:"required,min=2"`
	Role      domain.UserRole `json:"type" validate:"required,oneof=artist client shop-owner dual"`
	City      string          `json:"city,omitempty"`
	Specialty string          `json:"specialty,omitempty"`
}

// Session is a signed-in user together with the bearer token that identifies
// the session.
type Session struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}
