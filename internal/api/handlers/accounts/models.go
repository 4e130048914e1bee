package accounts

import (
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse HTTP response model с парой токенов
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ProfileResponse HTTP модель профиля
type ProfileResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	IsStaff   bool   `json:"isStaff"`
}

// UpdateProfileRequest HTTP request model
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=150"`
}

// ChangePasswordRequest HTTP request model
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// UserResponse HTTP модель пользователя (admin-список)
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// FromProfile конвертирует wire-модель профиля в HTTP response
func FromProfile(p *salonapi.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		IsStaff:   p.IsStaff,
	}
}

// FromUsers конвертирует wire-модели пользователей в HTTP response
func FromUsers(users []salonapi.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{ID: u.ID, Username: u.Username, Email: u.Email})
	}
	return out
}
