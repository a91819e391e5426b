package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kdverse/vidtube_backend/internal/apperrors"
	"github.com/kdverse/vidtube_backend/internal/core/domain"
	portsrepo "github.com/kdverse/vidtube_backend/internal/core/ports/repositories"
	"github.com/kdverse/vidtube_backend/internal/models"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.PasswordHash,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
	if d.RefreshToken != "" {
		token := d.RefreshToken
		m.RefreshToken = &token
	}
	return m
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if m.RefreshToken != nil {
		d.RefreshToken = *m.RefreshToken
	}
	return d
}

const userColumns = `user_id, username, email, full_name, password_hash, refresh_token, created_at, last_updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.FullName,
		&m.PasswordHash,
		&m.RefreshToken,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	d := toDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        INSERT INTO users (user_id, username, email, full_name, password_hash, refresh_token, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.FullName,
		m.PasswordHash,
		m.RefreshToken,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	return scanUser(r.Pool.QueryRow(ctx, query, username))
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return scanUser(r.Pool.QueryRow(ctx, query, email))
}

func (r *PgxUserRepository) FindUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1;`
	return scanUser(r.Pool.QueryRow(ctx, query, identifier))
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshToken *string) error {
	query := `
        UPDATE users
        SET refresh_token = $1, last_updated_at = $2
        WHERE user_id = $3;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, refreshToken, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// RotateRefreshToken swaps the stored refresh token for next only if it still
// equals presented. The WHERE clause makes the compare-and-swap atomic: of two
// concurrent rotations presenting the same token, exactly one sees a row update.
func (r *PgxUserRepository) RotateRefreshToken(ctx context.Context, userID string, presented string, next string) (bool, error) {
	query := `
        UPDATE users
        SET refresh_token = $1, last_updated_at = $2
        WHERE user_id = $3 AND refresh_token = $4;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, next, time.Now(), userID, presented)
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	query := `
        UPDATE users
        SET password_hash = $1, last_updated_at = $2
        WHERE user_id = $3;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, passwordHash, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateAccountDetails(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET full_name = $1, email = $2, last_updated_at = $3
        WHERE user_id = $4;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, user.FullName, user.Email, user.LastUpdatedAt, user.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update account details: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) AppendWatchHistory(ctx context.Context, userID string, videoID string, watchedAt time.Time) error {
	query := `
        INSERT INTO user_watch_history (user_id, video_id, watched_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = EXCLUDED.watched_at;
    `
	_, err := r.Pool.Exec(ctx, query, userID, videoID, watchedAt)
	if err != nil {
		return fmt.Errorf("failed to append watch history: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindWatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.Video, error) {
	query := `
        SELECT v.video_id, v.owner_id, v.title, v.description, v.video_file_url, v.thumbnail_url,
               v.duration_seconds, v.views, v.is_published, v.created_at, v.last_updated_at
        FROM user_watch_history h
        JOIN videos v ON v.video_id = h.video_id
        WHERE h.user_id = $1
        ORDER BY h.watched_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch history: %w", err)
	}
	defer rows.Close()

	videos := []domain.Video{}
	for rows.Next() {
		video, err := scanVideoFromRows(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *video)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating watch history rows: %w", rows.Err())
	}
	return videos, nil
}
