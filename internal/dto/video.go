package dto

import (
	"github.com/kdverse/vidtube_backend/internal/core/domain"
)

// PublishVideoRequest defines the metadata required to publish a video.
// Upload staging happens outside this service; only the resulting URLs arrive here.
type PublishVideoRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	VideoFileURL    string `json:"videoFileURL" binding:"required,url"`
	ThumbnailURL    string `json:"thumbnailURL" binding:"omitempty,url"`
	DurationSeconds int64  `json:"durationSeconds" binding:"gte=0"`
}

// ListVideosParams defines query parameters for listing videos.
type ListVideosParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
	Owner  string `form:"owner"`
}

// VideoResponse is the outward-facing view of a video.
type VideoResponse struct {
	VideoID         string `json:"videoID"`
	OwnerID         string `json:"ownerID"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoFileURL    string `json:"videoFileURL"`
	ThumbnailURL    string `json:"thumbnailURL"`
	DurationSeconds int64  `json:"durationSeconds"`
	Views           int64  `json:"views"`
	IsPublished     bool   `json:"isPublished"`
}

// VideoListResponse wraps a page of videos.
type VideoListResponse struct {
	Videos []VideoResponse `json:"videos"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// ToVideoResponse converts a domain.Video to its outward-facing view.
func ToVideoResponse(video *domain.Video) VideoResponse {
	return VideoResponse{
		VideoID:         video.VideoID,
		OwnerID:         video.OwnerID,
		Title:           video.Title,
		Description:     video.Description,
		VideoFileURL:    video.VideoFileURL,
		ThumbnailURL:    video.ThumbnailURL,
		DurationSeconds: video.DurationSeconds,
		Views:           video.Views,
		IsPublished:     video.IsPublished,
	}
}

// ToVideoListResponse converts a slice of domain.Video to a VideoListResponse DTO.
func ToVideoListResponse(videos []domain.Video, limit, offset int) VideoListResponse {
	videoResponses := make([]VideoResponse, len(videos))
	for i := range videos {
		videoResponses[i] = ToVideoResponse(&videos[i])
	}
	return VideoListResponse{Videos: videoResponses, Limit: limit, Offset: offset}
}
