package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdverse/vidtube_backend/internal/apperrors"
	portssvc "github.com/kdverse/vidtube_backend/internal/core/ports/services"
	"github.com/kdverse/vidtube_backend/internal/dto"
	"github.com/kdverse/vidtube_backend/internal/middleware"
)

// videoHandler handles HTTP requests for video metadata.
type videoHandler struct {
	videoService portssvc.VideoSvcFacade
}

func newVideoHandler(vs portssvc.VideoSvcFacade) *videoHandler {
	return &videoHandler{videoService: vs}
}

func registerVideoRoutes(rg *gin.RouterGroup, videoService portssvc.VideoSvcFacade) {
	h := newVideoHandler(videoService)

	videos := rg.Group("/videos")
	{
		videos.POST("", h.publishVideo)
		videos.GET("", h.listVideos)
		videos.GET("/:videoID", h.getVideo)
	}
}

// publishVideo godoc
// @Summary Publish video metadata
// @Description Records metadata for an already-uploaded video. File storage is handled outside this service.
// @Tags videos
// @Accept json
// @Produce json
// @Param video body dto.PublishVideoRequest true "Video metadata"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /videos [post]
func (h *videoHandler) publishVideo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewAPIErrorResponse(http.StatusUnauthorized, "unauthorized"))
		return
	}

	var req dto.PublishVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewAPIErrorResponse(http.StatusBadRequest, "Title and video file URL are required", err.Error()))
		return
	}

	video, err := h.videoService.PublishVideo(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			respondError(c, err, "Title and video file URL are required")
		} else {
			logger.Error("Failed to publish video", slog.String("error", err.Error()))
			respondError(c, err, "Failed to publish video")
		}
		return
	}

	logger.Info("Video published", slog.String("video_id", video.VideoID))
	respond(c, http.StatusCreated, dto.ToVideoResponse(video), "Video published successfully")
}

// listVideos godoc
// @Summary List published videos
// @Tags videos
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Param owner query string false "Filter by owner ID"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /videos [get]
func (h *videoHandler) listVideos(c *gin.Context) {
	var params dto.ListVideosParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewAPIErrorResponse(http.StatusBadRequest, "Invalid query parameters", err.Error()))
		return
	}

	videos, err := h.videoService.ListVideos(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list videos")
		return
	}

	respond(c, http.StatusOK, dto.ToVideoListResponse(videos, params.Limit, params.Offset), "Videos fetched successfully")
}

// getVideo godoc
// @Summary Get a video by ID
// @Description Fetches video metadata, counts the view and records it in the caller's watch history.
// @Tags videos
// @Produce json
// @Param videoID path string true "Video ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /videos/{videoID} [get]
func (h *videoHandler) getVideo(c *gin.Context) {
	viewerID, _ := middleware.GetUserIDFromContext(c)

	video, err := h.videoService.GetVideo(c.Request.Context(), c.Param("videoID"), viewerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, err, "Video not found")
		} else {
			respondError(c, err, "Failed to fetch video")
		}
		return
	}

	respond(c, http.StatusOK, dto.ToVideoResponse(video), "Video fetched successfully")
}
