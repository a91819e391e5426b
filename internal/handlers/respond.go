package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdverse/vidtube_backend/internal/apperrors"
	"github.com/kdverse/vidtube_backend/internal/dto"
)

// respond writes a success envelope.
func respond(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, dto.NewAPIResponse(statusCode, data, message))
}

// respondError maps an error kind from the core onto a transport status and
// writes an error envelope. The core itself never formats HTTP responses.
func respondError(c *gin.Context, err error, message string) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		statusCode = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		statusCode = http.StatusConflict
	}
	if message == "" {
		message = err.Error()
	}
	c.JSON(statusCode, dto.NewAPIErrorResponse(statusCode, message))
}
