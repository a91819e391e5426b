package services

import (
	"context"
	"fmt"

	"github.com/kdverse/vidtube_backend/internal/apperrors"
	"github.com/kdverse/vidtube_backend/internal/core/domain"
	portssvc "github.com/kdverse/vidtube_backend/internal/core/ports/services"
	"github.com/kdverse/vidtube_backend/internal/platform/config"
	"github.com/kdverse/vidtube_backend/internal/utils"
)

// tokenService implements TokenSvcFacade over the two JWT signing contexts.
// Secrets and expiries come from the config constructed at process start.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a short-lived access token carrying the user's
// display claims alongside the subject.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := utils.GenerateAccessToken(
		user.UserID, user.Username, user.Email, user.FullName,
		s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiry, s.cfg.JWTIssuer,
	)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", apperrors.ErrInternal)
	}
	return token, nil
}

// GenerateRefreshToken creates a long-lived refresh token carrying only the subject.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, userID string) (string, error) {
	token, err := utils.GenerateRefreshToken(userID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiry, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", apperrors.ErrInternal)
	}
	return token, nil
}

// ValidateAccessToken verifies an access token and returns its subject.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateAccessToken(tokenString, s.cfg.AccessTokenSecret)
	if err != nil || claims.Subject == "" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}

// ValidateRefreshToken verifies a refresh token and returns its subject.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateRefreshToken(tokenString, s.cfg.RefreshTokenSecret)
	if err != nil || claims.Subject == "" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}
