package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kdverse/vidtube_backend/internal/apperrors"
	"github.com/kdverse/vidtube_backend/internal/core/domain"
	portsrepo "github.com/kdverse/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/kdverse/vidtube_backend/internal/core/ports/services"
	"github.com/kdverse/vidtube_backend/internal/dto"
	"github.com/kdverse/vidtube_backend/internal/middleware"
	"github.com/kdverse/vidtube_backend/internal/utils"
)

// authService implements AuthSvcFacade. It owns the session state machine:
// a user is logged out when no refresh token is stored, active when one is,
// and every successful rotation replaces the stored token with a new one.
type authService struct {
	userRepo     portsrepo.UserRepository
	tokenService portssvc.TokenSvcFacade
	bcryptCost   int
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo portsrepo.UserRepository, tokenService portssvc.TokenSvcFacade, bcryptCost int) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:     userRepo,
		tokenService: tokenService,
		bcryptCost:   bcryptCost,
	}
}

// Register validates, uniqueness-checks and persists a new identity with a
// freshly hashed password.
func (s *authService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)
	password := strings.TrimSpace(req.Password)

	if username == "" || email == "" || fullName == "" || password == "" {
		return nil, fmt.Errorf("all fields are required: %w", apperrors.ErrValidation)
	}

	if existing, err := s.userRepo.FindUserByUsername(ctx, username); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("user with username %s: %w", username, apperrors.ErrDuplicate)
	}
	if existing, err := s.userRepo.FindUserByEmail(ctx, email); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", apperrors.ErrInternal)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Login authenticates the identifier/password pair and issues a fresh token
// pair, overwriting any previously stored refresh token. The overwrite is
// what keeps the one-live-refresh-token-per-identity invariant.
func (s *authService) Login(ctx context.Context, identifier, password string) (*domain.User, string, string, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return nil, "", "", fmt.Errorf("identifier and password are required: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", "", apperrors.ErrNotFound
		}
		return nil, "", "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	accessToken, err := s.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	refreshToken, err := s.tokenService.GenerateRefreshToken(ctx, user.UserID)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, &refreshToken); err != nil {
		return nil, "", "", fmt.Errorf("failed to persist refresh token: %w", err)
	}
	user.RefreshToken = refreshToken

	return user, accessToken, refreshToken, nil
}

// Logout clears the stored refresh token unconditionally. Logging out an
// already-logged-out identity is not an error.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// RotateRefreshToken redeems a refresh token for a new pair. The swap against
// the stored token is a storage-level compare-and-swap, so two concurrent
// rotations can never both succeed with the same presented token. A compare
// failure means the token was already rotated out (or stolen and replayed);
// the session is revoked and no tokens are issued.
func (s *authService) RotateRefreshToken(ctx context.Context, presentedToken string) (string, string, error) {
	if presentedToken == "" {
		return "", "", apperrors.ErrUnauthorized
	}

	userID, err := s.tokenService.ValidateRefreshToken(ctx, presentedToken)
	if err != nil {
		return "", "", apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", "", apperrors.ErrUnauthorized
		}
		return "", "", fmt.Errorf("failed to load user for rotation: %w", err)
	}

	accessToken, err := s.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.tokenService.GenerateRefreshToken(ctx, user.UserID)
	if err != nil {
		return "", "", err
	}

	swapped, err := s.userRepo.RotateRefreshToken(ctx, user.UserID, presentedToken, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if !swapped {
		// Reuse of a rotated-out token is the theft signal; revoke the whole
		// session so the holder of the current token is cut off too.
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Warn("refresh token reuse detected, revoking session", "user_id", user.UserID)
		if clearErr := s.userRepo.UpdateRefreshToken(ctx, user.UserID, nil); clearErr != nil {
			logger.Error("failed to revoke session after reuse detection", "error", clearErr.Error())
		}
		return "", "", apperrors.ErrTokenReuse
	}

	return accessToken, refreshToken, nil
}

// ChangeCurrentPassword verifies the old password and re-hashes the new one.
// Only the password hash column changes; the stored refresh token is untouched.
func (s *authService) ChangeCurrentPassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("new password is required: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for password change: %w", err)
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	passwordHash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", apperrors.ErrInternal)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
