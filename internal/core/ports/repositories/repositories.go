package repositories

import (
	"context"
	"time"

	"github.com/kdverse/vidtube_backend/internal/core/domain"
)

// UserRepository defines persistence operations for identities. It is the
// single source of truth shared between requests; refresh token updates must
// be atomic at the storage layer (see RotateRefreshToken).
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindUserByUsernameOrEmail matches either column against the identifier.
	FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	// UpdateRefreshToken overwrites the stored refresh token. A nil token
	// clears it (logout). Idempotent.
	UpdateRefreshToken(ctx context.Context, userID string, refreshToken *string) error
	// RotateRefreshToken atomically replaces the stored refresh token with
	// next, but only if the stored value still equals presented. Returns
	// false when the compare fails, which distinguishes a stale/reused token
	// from the current one even under concurrent rotations.
	RotateRefreshToken(ctx context.Context, userID string, presented string, next string) (bool, error)
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
	UpdateAccountDetails(ctx context.Context, user domain.User) error
	AppendWatchHistory(ctx context.Context, userID string, videoID string, watchedAt time.Time) error
	FindWatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.Video, error)
}

// VideoRepository defines persistence operations for video metadata.
type VideoRepository interface {
	SaveVideo(ctx context.Context, video domain.Video) error
	// FindVideoByID returns the video and increments its view counter in one
	// round trip when countView is set.
	FindVideoByID(ctx context.Context, videoID string, countView bool) (*domain.Video, error)
	ListVideos(ctx context.Context, ownerID string, limit, offset int) ([]domain.Video, error)
}

// RepositoryProvider bundles all repositories for injection into the service layer.
type RepositoryProvider struct {
	UserRepo  UserRepository
	VideoRepo VideoRepository
}
