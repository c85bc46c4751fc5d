package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/middleware"
	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/response"
	"github.com/LexovateAyacucho/qhoar-web/pkg/logger"
)

type authService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	ConfirmEmail(ctx context.Context, code, errorDescription string) *entities.ConfirmationResult
	ResendConfirmation(ctx context.Context, email string) error
	Me(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
}

// CookieConfig controls the auth cookies set for browser clients
type CookieConfig struct {
	Secure     bool
	Domain     string
	RefreshTTL time.Duration
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase authService
	cookies     CookieConfig
	now         func() time.Time
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase authService, cookies CookieConfig) *AuthHandler {
	if cookies.RefreshTTL <= 0 {
		cookies.RefreshTTL = 7 * 24 * time.Hour
	}
	return &AuthHandler{
		authUsecase: authUsecase,
		cookies:     cookies,
		now:         time.Now,
	}
}

// Register handles business owner registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registro exitoso. Revisa tu correo para confirmar tu cuenta.",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setAuthCookies(c, auth)
	response.Success(c, http.StatusOK, auth)
}

// Refresh rotates the token pair. The refresh token comes from the body or the cookie.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var refreshToken string

	if c.Request.ContentLength > 0 {
		var input struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			logger.Debug(c.Request.Context(), "Refresh body ignored", zap.Error(err))
		}
		refreshToken = input.RefreshToken
	}
	if refreshToken == "" {
		if cookie, err := c.Cookie(middleware.RefreshCookie); err == nil {
			refreshToken = cookie
		}
	}
	if refreshToken == "" {
		response.Error(c, domainerrors.BadRequest("Refresh token is required"))
		return
	}

	auth, err := h.authUsecase.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearAuthCookies(c)
		response.Error(c, err)
		return
	}

	h.setAuthCookies(c, auth)
	response.Success(c, http.StatusOK, auth)
}

// Logout revokes the current session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUsecase.Logout(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		response.Error(c, err)
		return
	}

	h.clearAuthCookies(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

// Confirm follows the link from the confirmation e-mail. The outcome is always
// reported in the body so the page can offer a resend.
// GET /api/v1/auth/confirm
func (h *AuthHandler) Confirm(c *gin.Context) {
	result := h.authUsecase.ConfirmEmail(c.Request.Context(), c.Query("code"), c.Query("error_description"))
	response.Success(c, http.StatusOK, result)
}

// ResendConfirmation sends a fresh confirmation link
// POST /api/v1/auth/resend-confirmation
func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	var input entities.ResendConfirmationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ResendConfirmation(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Si la cuenta existe y no está confirmada, enviamos un nuevo enlace.",
	})
}

// GetMe returns the profile of the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	profile, err := h.authUsecase.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, auth *entities.AuthResponse) {
	accessAge := int(auth.ExpiresAt.Sub(h.now()).Seconds())
	if accessAge < 1 {
		accessAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, auth.AccessToken, accessAge, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshCookie, auth.RefreshToken, int(h.cookies.RefreshTTL.Seconds()), "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshCookie, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
}
