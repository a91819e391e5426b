package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kdverse/vidtube_backend/internal/apperrors"
	"github.com/kdverse/vidtube_backend/internal/core/domain"
	portsrepo "github.com/kdverse/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/kdverse/vidtube_backend/internal/core/ports/services"
	"github.com/kdverse/vidtube_backend/internal/dto"
)

// userService implements UserSvcFacade. Every identity it returns has the
// secret fields stripped; callers that need the password hash go through the
// repository directly.
type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// GetUserByID returns the identity with secret fields cleared.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	stripSecrets(user)
	return user, nil
}

// UpdateAccountDetails updates full name and/or email. The password hash and
// refresh token columns are never written here.
func (s *userService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	if req.FullName == nil && req.Email == nil {
		return nil, fmt.Errorf("no fields to update: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for update: %w", err)
	}

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName == "" {
			return nil, fmt.Errorf("full name cannot be blank: %w", apperrors.ErrValidation)
		}
		user.FullName = fullName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, fmt.Errorf("email cannot be blank: %w", apperrors.ErrValidation)
		}
		if email != user.Email {
			if existing, err := s.userRepo.FindUserByEmail(ctx, email); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
			} else if existing != nil {
				return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrDuplicate)
			}
			user.Email = email
		}
	}
	user.LastUpdatedAt = time.Now()

	if err := s.userRepo.UpdateAccountDetails(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update account details: %w", err)
	}
	stripSecrets(user)
	return user, nil
}

// GetWatchHistory returns the user's watch history, most recent first.
func (s *userService) GetWatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.Video, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	videos, err := s.userRepo.FindWatchHistory(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	return videos, nil
}

func stripSecrets(user *domain.User) {
	if user == nil {
		return
	}
	user.PasswordHash = ""
	user.RefreshToken = ""
}
