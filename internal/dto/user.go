package dto

import (
	"github.com/kdverse/vidtube_backend/internal/core/domain"
)

// RegisterUserRequest defines the data required to register a new user.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest accepts either username or email as the identifier.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Identifier returns the username-or-email the caller supplied.
func (r LoginRequest) Identifier() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

// RefreshTokenRequest carries a refresh token presented in the body, used by
// clients that do not hold it in a cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest defines the data required to change the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UpdateAccountRequest defines the updatable account fields. Pointers
// differentiate omitted fields from zero values.
type UpdateAccountRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

// UserResponse is the outward-facing view of an identity. It deliberately has
// no slot for the password hash or refresh token.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// ToUserResponse converts a domain.User to its outward-facing view,
// stripping the secret fields.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}
}
