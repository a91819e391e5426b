package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
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
	portssvc "github.com/kdverse/vidtube_backend/internal/core/ports/services"
	"github.com/kdverse/vidtube_backend/internal/core/services"
	"github.com/kdverse/vidtube_backend/internal/dto"
	"github.com/kdverse/vidtube_backend/internal/handlers"
	"github.com/kdverse/vidtube_backend/internal/platform/config"
)

// --- Mock AuthSvcFacade ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*domain.User, string, string, error) {
	args := m.Called(ctx, identifier, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) RotateRefreshToken(ctx context.Context, presentedToken string) (string, string, error) {
	args := m.Called(ctx, presentedToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) ChangeCurrentPassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

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

// --- Mock VideoSvcFacade ---
type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) PublishVideo(ctx context.Context, ownerID string, req dto.PublishVideoRequest) (*domain.Video, error) {
	args := m.Called(ctx, ownerID, req)
	var video *domain.Video
	if args.Get(0) != nil {
		video = args.Get(0).(*domain.Video)
	}
	return video, args.Error(1)
}

func (m *MockVideoService) GetVideo(ctx context.Context, videoID string, viewerID string) (*domain.Video, error) {
	args := m.Called(ctx, videoID, viewerID)
	var video *domain.Video
	if args.Get(0) != nil {
		video = args.Get(0).(*domain.Video)
	}
	return video, args.Error(1)
}

func (m *MockVideoService) ListVideos(ctx context.Context, params dto.ListVideosParams) ([]domain.Video, error) {
	args := m.Called(ctx, params)
	var videos []domain.Video
	if args.Get(0) != nil {
		videos = args.Get(0).([]domain.Video)
	}
	return videos, args.Error(1)
}

type testEnv struct {
	router       *gin.Engine
	auth         *MockAuthService
	user         *MockUserService
	video        *MockVideoService
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		IsProduction:           true,
		JWTIssuer:              "vidtube-test",
		AccessTokenSecret:      "test-access-secret",
		AccessTokenExpiry:      time.Minute,
		AccessTokenCookieName:  "accessToken",
		RefreshTokenSecret:     "test-refresh-secret",
		RefreshTokenExpiry:     time.Hour,
		RefreshTokenCookieName: "refreshToken",
	}

	env := &testEnv{
		auth:         new(MockAuthService),
		user:         new(MockUserService),
		video:        new(MockVideoService),
		tokenService: services.NewTokenService(cfg),
		cfg:          cfg,
	}

	env.router = gin.New()
	handlers.RegisterRoutes(env.router, cfg, &portssvc.ServiceContainer{
		Auth:  env.auth,
		Token: env.tokenService,
		User:  env.user,
		Video: env.video,
	})
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body any, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, fn := range mutate {
		fn(req)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// authenticate issues a real access token for userID and primes the identity
// lookup the auth gate performs.
func (env *testEnv) authenticate(t *testing.T, userID string) func(*http.Request) {
	t.Helper()
	token, err := env.tokenService.GenerateAccessToken(context.Background(), &domain.User{
		UserID:   userID,
		Username: "kd",
		Email:    "kd@example.com",
		FullName: "K D",
	})
	require.NoError(t, err)

	env.user.On("GetUserByID", mock.Anything, userID).
		Return(&domain.User{UserID: userID, Username: "kd", Email: "kd@example.com"}, nil)

	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: env.cfg.AccessTokenCookieName, Value: token})
	}
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// --- Register ---

func TestRegisterEndpoint_Success(t *testing.T) {
	env := setupTestEnv(t)

	created := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "kd",
		Email:        "kd@example.com",
		FullName:     "K D",
		PasswordHash: "$2a$10$somethinghashed",
	}
	env.auth.On("Register", mock.Anything, mock.MatchedBy(func(req dto.RegisterUserRequest) bool {
		return req.Username == "kd" && req.Email == "kd@example.com"
	})).Return(created, nil).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/register", gin.H{
		"username": "kd",
		"email":    "kd@example.com",
		"fullName": "K D",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, http.StatusCreated, envelope.StatusCode)

	// The outward view must never leak credential material.
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, w.Body.String(), "refreshToken")
	assert.Contains(t, w.Body.String(), created.UserID)

	env.auth.AssertExpectations(t)
}

func TestRegisterEndpoint_InvalidPayload(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/users/register", gin.H{
		"username": "kd",
		"email":    "not-an-email",
		"fullName": "K D",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	env := setupTestEnv(t)

	env.auth.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/register", gin.H{
		"username": "kd",
		"email":    "kd@example.com",
		"fullName": "K D",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var envelope dto.APIErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, http.StatusConflict, envelope.StatusCode)
}

// --- Login ---

func TestLoginEndpoint_Success(t *testing.T) {
	env := setupTestEnv(t)

	user := &domain.User{UserID: uuid.NewString(), Username: "kd", Email: "kd@example.com"}
	env.auth.On("Login", mock.Anything, "kd", "secret123").
		Return(user, "access-token-value", "refresh-token-value", nil).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/login", gin.H{
		"username": "kd",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	accessCookie := cookieByName(cookies, env.cfg.AccessTokenCookieName)
	refreshCookie := cookieByName(cookies, env.cfg.RefreshTokenCookieName)
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)
	assert.Equal(t, "access-token-value", accessCookie.Value)
	assert.Equal(t, "refresh-token-value", refreshCookie.Value)
	assert.True(t, accessCookie.HttpOnly)
	assert.True(t, refreshCookie.HttpOnly)

	env.auth.AssertExpectations(t)
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	env := setupTestEnv(t)

	env.auth.On("Login", mock.Anything, "kd", "wrongpass").
		Return(nil, "", "", apperrors.ErrUnauthorized).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/login", gin.H{
		"username": "kd",
		"password": "wrongpass",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginEndpoint_UnknownUser(t *testing.T) {
	env := setupTestEnv(t)

	env.auth.On("Login", mock.Anything, "ghost@example.com", "whatever").
		Return(nil, "", "", apperrors.ErrNotFound).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/login", gin.H{
		"email":    "ghost@example.com",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Refresh token ---

func TestRefreshTokenEndpoint_FromCookie(t *testing.T) {
	env := setupTestEnv(t)

	env.auth.On("RotateRefreshToken", mock.Anything, "stored-refresh-token").
		Return("new-access", "new-refresh", nil).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/refresh-token", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: env.cfg.RefreshTokenCookieName, Value: "stored-refresh-token"})
	})

	assert.Equal(t, http.StatusOK, w.Code)

	refreshCookie := cookieByName(w.Result().Cookies(), env.cfg.RefreshTokenCookieName)
	require.NotNil(t, refreshCookie)
	assert.Equal(t, "new-refresh", refreshCookie.Value)

	env.auth.AssertExpectations(t)
}

func TestRefreshTokenEndpoint_FromBody(t *testing.T) {
	env := setupTestEnv(t)

	env.auth.On("RotateRefreshToken", mock.Anything, "body-refresh-token").
		Return("new-access", "new-refresh", nil).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/refresh-token", gin.H{
		"refreshToken": "body-refresh-token",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	env.auth.AssertExpectations(t)
}

func TestRefreshTokenEndpoint_ReuseDetected(t *testing.T) {
	env := setupTestEnv(t)

	env.auth.On("RotateRefreshToken", mock.Anything, "stale-token").
		Return("", "", apperrors.ErrTokenReuse).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/refresh-token", gin.H{
		"refreshToken": "stale-token",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var envelope dto.APIErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Token reuse detected", envelope.Message)
	assert.False(t, envelope.Success)
}

func TestRefreshTokenEndpoint_MissingToken(t *testing.T) {
	env := setupTestEnv(t)

	env.auth.On("RotateRefreshToken", mock.Anything, "").
		Return("", "", apperrors.ErrUnauthorized).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/refresh-token", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Logout ---

func TestLogoutEndpoint_Success(t *testing.T) {
	env := setupTestEnv(t)

	userID := uuid.NewString()
	asUser := env.authenticate(t, userID)
	env.auth.On("Logout", mock.Anything, userID).Return(nil).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/logout", nil, asUser)

	assert.Equal(t, http.StatusOK, w.Code)

	// Both auth cookies are expired on the way out.
	accessCookie := cookieByName(w.Result().Cookies(), env.cfg.AccessTokenCookieName)
	refreshCookie := cookieByName(w.Result().Cookies(), env.cfg.RefreshTokenCookieName)
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)
	assert.Empty(t, accessCookie.Value)
	assert.Empty(t, refreshCookie.Value)
	assert.Negative(t, accessCookie.MaxAge)
	assert.Negative(t, refreshCookie.MaxAge)

	env.auth.AssertExpectations(t)
}

func TestLogoutEndpoint_RequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/users/logout", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env.auth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

// --- Change password ---

func TestChangePasswordEndpoint_Success(t *testing.T) {
	env := setupTestEnv(t)

	userID := uuid.NewString()
	asUser := env.authenticate(t, userID)
	env.auth.On("ChangeCurrentPassword", mock.Anything, userID, "secret123", "newsecret456").
		Return(nil).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/change-password", gin.H{
		"oldPassword": "secret123",
		"newPassword": "newsecret456",
	}, asUser)

	assert.Equal(t, http.StatusOK, w.Code)
	env.auth.AssertExpectations(t)
}

func TestChangePasswordEndpoint_WrongOldPassword(t *testing.T) {
	env := setupTestEnv(t)

	userID := uuid.NewString()
	asUser := env.authenticate(t, userID)
	env.auth.On("ChangeCurrentPassword", mock.Anything, userID, "wrongpass", "newsecret456").
		Return(apperrors.ErrUnauthorized).Once()

	w := env.do(t, http.MethodPost, "/api/v1/users/change-password", gin.H{
		"oldPassword": "wrongpass",
		"newPassword": "newsecret456",
	}, asUser)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePasswordEndpoint_ShortNewPassword(t *testing.T) {
	env := setupTestEnv(t)

	userID := uuid.NewString()
	asUser := env.authenticate(t, userID)

	w := env.do(t, http.MethodPost, "/api/v1/users/change-password", gin.H{
		"oldPassword": "secret123",
		"newPassword": "short",
	}, asUser)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.auth.AssertNotCalled(t, "ChangeCurrentPassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
