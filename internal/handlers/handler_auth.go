package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/kdverse/vidtube_backend/internal/apperrors"
	portssvc "github.com/kdverse/vidtube_backend/internal/core/ports/services"
	"github.com/kdverse/vidtube_backend/internal/dto"
	"github.com/kdverse/vidtube_backend/internal/middleware"
	"github.com/kdverse/vidtube_backend/internal/platform/config"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	cfg         *config.Config
}

func newAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{authService: as, cfg: cfg}
}

// registerAuthRoutes sets up the public authentication routes and the
// session routes that sit behind the auth gate.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth, cfg)

	// Rate limit login: 5 requests per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	limitMiddleware := limitergin.NewMiddleware(limiter.New(store, rate))

	users := r.Group("/api/v1/users")
	{
		users.POST("/register", h.register)
		users.POST("/login", limitMiddleware, h.login)
		users.POST("/refresh-token", h.refreshToken)
	}

	secured := r.Group("/api/v1/users", middleware.AuthMiddleware(cfg.AccessTokenCookieName, services.Token, services.User))
	{
		secured.POST("/logout", h.logout)
		secured.POST("/change-password", h.changePassword)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates a new identity with a freshly hashed password. The response never contains the password hash or a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterUserRequest true "User registration info"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 409 {object} dto.APIErrorResponse "Username or email already exists"
// @Failure 500 {object} dto.APIErrorResponse
// @Router /users/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewAPIErrorResponse(http.StatusBadRequest, "All fields are required", err.Error()))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			respondError(c, err, "All fields are required")
		case errors.Is(err, apperrors.ErrDuplicate):
			respondError(c, err, "User with email or username already exists")
		default:
			logger.Error("Failed to register user", slog.String("error", err.Error()))
			respondError(c, err, "Failed to register user")
		}
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	respond(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully")
}

// login godoc
// @Summary User login
// @Description Authenticates by username or email and issues an access/refresh token pair. Tokens are set as HTTP-only cookies and echoed in the body.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Failure 404 {object} dto.APIErrorResponse
// @Router /users/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewAPIErrorResponse(http.StatusBadRequest, "Username or email and password are required", err.Error()))
		return
	}

	user, accessToken, refreshToken, err := h.authService.Login(c.Request.Context(), req.Identifier(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			respondError(c, err, "User does not exist")
		case errors.Is(err, apperrors.ErrUnauthorized):
			respondError(c, err, "Invalid credentials")
		case errors.Is(err, apperrors.ErrValidation):
			respondError(c, err, "Username or email and password are required")
		default:
			logger.Error("Login failed", slog.String("error", err.Error()))
			respondError(c, err, "Failed to log in")
		}
		return
	}

	h.setAuthCookies(c, accessToken, refreshToken)
	respond(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, "User logged in successfully")
}

// refreshToken godoc
// @Summary Rotate the refresh token
// @Description Redeems the presented refresh token for a new access/refresh pair. The redeemed token is invalidated; presenting it again revokes the session.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token (optional when the cookie is present)"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Router /users/refresh-token [post]
func (h *authHandler) refreshToken(c *gin.Context) {
	presented, _ := c.Cookie(h.cfg.RefreshTokenCookieName)
	if presented == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	accessToken, refreshToken, err := h.authService.RotateRefreshToken(c.Request.Context(), presented)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenReuse) {
			respondError(c, err, "Token reuse detected")
		} else {
			respondError(c, err, "Unauthorized")
		}
		return
	}

	h.setAuthCookies(c, accessToken, refreshToken)
	respond(c, http.StatusOK, dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, "Access token refreshed")
}

// logout godoc
// @Summary User logout
// @Description Clears the stored refresh token and expires the auth cookies. Idempotent.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewAPIErrorResponse(http.StatusUnauthorized, "unauthorized"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		logger.Error("Logout failed", slog.String("error", err.Error()))
		respondError(c, err, "Failed to log out")
		return
	}

	h.clearAuthCookies(c)
	respond(c, http.StatusOK, nil, "User logged out successfully")
}

// changePassword godoc
// @Summary Change the current user's password
// @Tags auth
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Old and new passwords"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/change-password [post]
func (h *authHandler) changePassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewAPIErrorResponse(http.StatusUnauthorized, "unauthorized"))
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewAPIErrorResponse(http.StatusBadRequest, "Old and new passwords are required", err.Error()))
		return
	}

	if err := h.authService.ChangeCurrentPassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			respondError(c, err, "Invalid old password")
		} else {
			respondError(c, err, "Failed to change password")
		}
		return
	}

	respond(c, http.StatusOK, nil, "Password changed successfully")
}

// setAuthCookies delivers both tokens as same-site, HTTP-only cookies.
// Secure is tied to the production flag so local HTTP development still works.
func (h *authHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, accessToken, int(h.cfg.AccessTokenExpiry.Seconds()), "/", "", h.cfg.IsProduction, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, refreshToken, int(h.cfg.RefreshTokenExpiry.Seconds()), "/", "", h.cfg.IsProduction, true)
}

func (h *authHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, "", -1, "/", "", h.cfg.IsProduction, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, "/", "", h.cfg.IsProduction, true)
}
