package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kdverse/vidtube_backend/internal/apperrors"
	"github.com/kdverse/vidtube_backend/internal/core/domain"
	"github.com/kdverse/vidtube_backend/internal/core/services"
	"github.com/kdverse/vidtube_backend/internal/dto"
	"github.com/kdverse/vidtube_backend/internal/middleware"
	"github.com/kdverse/vidtube_backend/internal/platform/config"
)

const accessCookieName = "accessToken"

// --- Mock UserSvcFacade ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetWatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.Video, error) {
	args := m.Called(ctx, userID, limit, offset)
	var videos []domain.Video
	if args.Get(0) != nil {
		videos = args.Get(0).([]domain.Video)
	}
	return videos, args.Error(1)
}

func middlewareTestConfig() *config.Config {
	return &config.Config{
		JWTIssuer:          "vidtube-test",
		AccessTokenSecret:  "test-access-secret",
		AccessTokenExpiry:  time.Minute,
		RefreshTokenSecret: "test-refresh-secret",
		RefreshTokenExpiry: time.Hour,
	}
}

// setupRouter wires the auth middleware in front of a probe handler that
// reports the identity bound to the request context.
func setupRouter(t *testing.T, userService *MockUserService) (*gin.Engine, func(userID string) string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := middlewareTestConfig()
	tokenService := services.NewTokenService(cfg)

	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(accessCookieName, tokenService, userService), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		require.True(t, ok)
		user, ok := middleware.GetAuthUserFromContext(c)
		require.True(t, ok)
		require.Equal(t, userID, user.UserID)
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})

	issue := func(userID string) string {
		token, err := tokenService.GenerateAccessToken(context.Background(), &domain.User{
			UserID:   userID,
			Username: "kd",
			Email:    "kd@example.com",
			FullName: "K D",
		})
		require.NoError(t, err)
		return token
	}
	return r, issue
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	userService := new(MockUserService)
	r, _ := setupRouter(t, userService)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	userService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	userService := new(MockUserService)
	r, _ := setupRouter(t, userService)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	userService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	userService := new(MockUserService)
	gin.SetMode(gin.TestMode)

	cfg := middlewareTestConfig()
	cfg.AccessTokenExpiry = -time.Minute
	tokenService := services.NewTokenService(cfg)

	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(accessCookieName, tokenService, userService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := tokenService.GenerateAccessToken(context.Background(), &domain.User{UserID: uuid.NewString()})
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	userService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_ValidCookie(t *testing.T) {
	userService := new(MockUserService)
	r, issue := setupRouter(t, userService)

	userID := uuid.NewString()
	userService.On("GetUserByID", mock.Anything, userID).
		Return(&domain.User{UserID: userID, Username: "kd"}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: accessCookieName, Value: issue(userID)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)
	userService.AssertExpectations(t)
}

func TestAuthMiddleware_ValidBearerHeader(t *testing.T) {
	userService := new(MockUserService)
	r, issue := setupRouter(t, userService)

	userID := uuid.NewString()
	userService.On("GetUserByID", mock.Anything, userID).
		Return(&domain.User{UserID: userID, Username: "kd"}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issue(userID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	userService.AssertExpectations(t)
}

func TestAuthMiddleware_CookieWinsOverHeader(t *testing.T) {
	userService := new(MockUserService)
	r, issue := setupRouter(t, userService)

	cookieUser := uuid.NewString()
	userService.On("GetUserByID", mock.Anything, cookieUser).
		Return(&domain.User{UserID: cookieUser}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: accessCookieName, Value: issue(cookieUser)})
	req.Header.Set("Authorization", "Bearer "+issue(uuid.NewString()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), cookieUser)
	userService.AssertExpectations(t)
}

func TestAuthMiddleware_SubjectDeleted(t *testing.T) {
	userService := new(MockUserService)
	r, issue := setupRouter(t, userService)

	userID := uuid.NewString()
	userService.On("GetUserByID", mock.Anything, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issue(userID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	userService.AssertExpectations(t)
}
