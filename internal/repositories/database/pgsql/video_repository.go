package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kdverse/vidtube_backend/internal/apperrors"
	"github.com/kdverse/vidtube_backend/internal/core/domain"
	portsrepo "github.com/kdverse/vidtube_backend/internal/core/ports/repositories"
	"github.com/kdverse/vidtube_backend/internal/models"
)

type PgxVideoRepository struct {
	BaseRepository
}

func newPgxVideoRepository(db *pgxpool.Pool) portsrepo.VideoRepository {
	return &PgxVideoRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.VideoRepository = (*PgxVideoRepository)(nil)

func toDomainVideo(m models.Video) domain.Video {
	return domain.Video{
		VideoID:         m.VideoID,
		OwnerID:         m.OwnerID,
		Title:           m.Title,
		Description:     m.Description,
		VideoFileURL:    m.VideoFileURL,
		ThumbnailURL:    m.ThumbnailURL,
		DurationSeconds: m.DurationSeconds,
		Views:           m.Views,
		IsPublished:     m.IsPublished,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const videoColumns = `video_id, owner_id, title, description, video_file_url, thumbnail_url, duration_seconds, views, is_published, created_at, last_updated_at`

func scanVideoFromRows(row pgx.Row) (*domain.Video, error) {
	var m models.Video
	err := row.Scan(
		&m.VideoID,
		&m.OwnerID,
		&m.Title,
		&m.Description,
		&m.VideoFileURL,
		&m.ThumbnailURL,
		&m.DurationSeconds,
		&m.Views,
		&m.IsPublished,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan video row: %w", err)
	}
	d := toDomainVideo(m)
	return &d, nil
}

func (r *PgxVideoRepository) SaveVideo(ctx context.Context, video domain.Video) error {
	query := `
        INSERT INTO videos (video_id, owner_id, title, description, video_file_url, thumbnail_url,
                            duration_seconds, views, is_published, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		video.VideoID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoFileURL,
		video.ThumbnailURL,
		video.DurationSeconds,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save video: %w", err)
	}
	return nil
}

func (r *PgxVideoRepository) FindVideoByID(ctx context.Context, videoID string, countView bool) (*domain.Video, error) {
	if countView {
		// Increment and read in one statement so concurrent views never lose a count.
		query := `
            UPDATE videos SET views = views + 1
            WHERE video_id = $1
            RETURNING ` + videoColumns + `;
        `
		return scanVideoFromRows(r.Pool.QueryRow(ctx, query, videoID))
	}

	query := `SELECT ` + videoColumns + ` FROM videos WHERE video_id = $1;`
	return scanVideoFromRows(r.Pool.QueryRow(ctx, query, videoID))
}

func (r *PgxVideoRepository) ListVideos(ctx context.Context, ownerID string, limit, offset int) ([]domain.Video, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + videoColumns + `
        FROM videos
        WHERE is_published AND ($1 = '' OR owner_id = $1)
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
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
		return nil, fmt.Errorf("error iterating video rows: %w", rows.Err())
	}
	return videos, nil
}
