package services

import (
	"context"

	"github.com/kdverse/vidtube_backend/internal/core/domain"
	"github.com/kdverse/vidtube_backend/internal/dto"
)

// UserSvcFacade exposes identity lookups and account maintenance.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error)
	GetWatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.Video, error)
}
