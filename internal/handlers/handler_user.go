package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kdverse/vidtube_backend/internal/apperrors"
	portssvc "github.com/kdverse/vidtube_backend/internal/core/ports/services"
	"github.com/kdverse/vidtube_backend/internal/dto"
	"github.com/kdverse/vidtube_backend/internal/middleware"
)

// userHandler handles HTTP requests related to the authenticated user.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers user account routes on the protected group.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("/current-user", h.getCurrentUser)
		users.PATCH("/update-account", h.updateAccount)
		users.GET("/watch-history", h.getWatchHistory)
	}
}

// getCurrentUser godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/current-user [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	user, ok := middleware.GetAuthUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewAPIErrorResponse(http.StatusUnauthorized, "unauthorized"))
		return
	}
	respond(c, http.StatusOK, dto.ToUserResponse(user), "Current user fetched successfully")
}

// updateAccount godoc
// @Summary Update account details
// @Description Updates full name and/or email. Password and session state are untouched.
// @Tags users
// @Accept json
// @Produce json
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 409 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/update-account [patch]
func (h *userHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewAPIErrorResponse(http.StatusUnauthorized, "unauthorized"))
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewAPIErrorResponse(http.StatusBadRequest, "Invalid request body", err.Error()))
		return
	}

	user, err := h.userService.UpdateAccountDetails(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			respondError(c, err, "Full name or email is required")
		case errors.Is(err, apperrors.ErrDuplicate):
			respondError(c, err, "Email already in use")
		default:
			logger.Error("Failed to update account", slog.String("error", err.Error()))
			respondError(c, err, "Failed to update account")
		}
		return
	}

	respond(c, http.StatusOK, dto.ToUserResponse(user), "Account details updated successfully")
}

// getWatchHistory godoc
// @Summary Get the authenticated user's watch history
// @Tags users
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/watch-history [get]
func (h *userHandler) getWatchHistory(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewAPIErrorResponse(http.StatusUnauthorized, "unauthorized"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	videos, err := h.userService.GetWatchHistory(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err, "Failed to fetch watch history")
		return
	}

	respond(c, http.StatusOK, dto.ToVideoListResponse(videos, limit, offset).Videos, "Watch history fetched successfully")
}
