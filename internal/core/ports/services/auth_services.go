package services

import (
	"context"

	"github.com/kdverse/vidtube_backend/internal/core/domain"
	"github.com/kdverse/vidtube_backend/internal/dto"
)

// AuthSvcFacade orchestrates the credential and session token lifecycle:
// registration, login, logout, refresh token rotation and password changes.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	// Login authenticates by username-or-email and issues a fresh
	// access+refresh pair, persisting the refresh token onto the identity.
	// Only one refresh token is live per identity: a second login overwrites
	// the first session's token.
	Login(ctx context.Context, identifier, password string) (*domain.User, string, string, error)
	// Logout clears the stored refresh token. Idempotent.
	Logout(ctx context.Context, userID string) error
	// RotateRefreshToken redeems a presented refresh token for a new pair.
	// The presented token must match the stored current token byte for byte;
	// a mismatch is treated as reuse (possible theft) and revokes the session.
	RotateRefreshToken(ctx context.Context, presentedToken string) (string, string, error)
	ChangeCurrentPassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// TokenSvcFacade creates and verifies signed identity tokens. The access and
// refresh contexts use independent secrets and expiries.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, error)
	GenerateRefreshToken(ctx context.Context, userID string) (string, error)
	// ValidateAccessToken verifies signature and expiry and returns the
	// subject user ID. Pure; no storage access.
	ValidateAccessToken(ctx context.Context, tokenString string) (string, error)
	// ValidateRefreshToken verifies signature and expiry in the refresh
	// context and returns the subject user ID.
	ValidateRefreshToken(ctx context.Context, tokenString string) (string, error)
}
