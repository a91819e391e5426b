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
)

// videoService implements VideoSvcFacade over video metadata. Media files are
// staged and stored elsewhere; this service only records their URLs.
type videoService struct {
	videoRepo portsrepo.VideoRepository
	userRepo  portsrepo.UserRepository
}

// NewVideoService creates a new instance of videoService.
func NewVideoService(videoRepo portsrepo.VideoRepository, userRepo portsrepo.UserRepository) portssvc.VideoSvcFacade {
	return &videoService{videoRepo: videoRepo, userRepo: userRepo}
}

// PublishVideo persists new video metadata owned by ownerID.
func (s *videoService) PublishVideo(ctx context.Context, ownerID string, req dto.PublishVideoRequest) (*domain.Video, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.VideoFileURL == "" {
		return nil, fmt.Errorf("title and video file URL are required: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	video := domain.Video{
		VideoID:         uuid.NewString(),
		OwnerID:         ownerID,
		Title:           title,
		Description:     strings.TrimSpace(req.Description),
		VideoFileURL:    req.VideoFileURL,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: req.DurationSeconds,
		IsPublished:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.videoRepo.SaveVideo(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to save video: %w", err)
	}
	return &video, nil
}

// GetVideo fetches a video. A non-empty viewerID counts the view and appends
// the video to the viewer's watch history.
func (s *videoService) GetVideo(ctx context.Context, videoID string, viewerID string) (*domain.Video, error) {
	countView := viewerID != ""
	video, err := s.videoRepo.FindVideoByID(ctx, videoID, countView)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	if countView {
		if err := s.userRepo.AppendWatchHistory(ctx, viewerID, videoID, time.Now()); err != nil {
			// History is best-effort; the fetch itself succeeded.
			middleware.GetLoggerFromCtx(ctx).Warn("failed to append watch history",
				"user_id", viewerID, "video_id", videoID, "error", err.Error())
		}
	}
	return video, nil
}

// ListVideos returns a page of published videos, optionally filtered by owner.
func (s *videoService) ListVideos(ctx context.Context, params dto.ListVideosParams) ([]domain.Video, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	videos, err := s.videoRepo.ListVideos(ctx, params.Owner, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}
