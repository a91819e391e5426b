package services

import (
	"context"

	"github.com/kdverse/vidtube_backend/internal/core/domain"
	"github.com/kdverse/vidtube_backend/internal/dto"
)

// VideoSvcFacade exposes video metadata operations.
type VideoSvcFacade interface {
	PublishVideo(ctx context.Context, ownerID string, req dto.PublishVideoRequest) (*domain.Video, error)
	// GetVideo returns a video by ID. When viewerID is non-empty the view
	// counter is incremented and the video is appended to the viewer's watch
	// history.
	GetVideo(ctx context.Context, videoID string, viewerID string) (*domain.Video, error)
	ListVideos(ctx context.Context, params dto.ListVideosParams) ([]domain.Video, error)
}
