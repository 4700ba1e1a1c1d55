package handler

import (
	"errors"
	"net/http"

	"kanny/internal/auth"
	"kanny/internal/config"
	"kanny/internal/model"
	"kanny/internal/service"

	"github.com/gin-gonic/gin"
)

// refreshCookieName is the HTTP-only cookie carrying the refresh token.
const refreshCookieName = "refreshToken"

type AuthHandler struct {
	svc *service.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type FirebaseAuthRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type AuthResponse struct {
	AccessToken string      `json:"accessToken"`
	User        *model.User `json:"user"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, and name are required"})
		return
	}

	result, err := h.svc.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken: result.Tokens.AccessToken,
		User:        result.User,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrFederatedAccount):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	c.JSON(http.StatusOK, AuthResponse{
		AccessToken: result.Tokens.AccessToken,
		User:        result.User,
	})
}

func (h *AuthHandler) FirebaseAuth(c *gin.Context) {
	var req FirebaseAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID token is required"})
		return
	}

	result, err := h.svc.FirebaseAuth(c.Request.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFirebaseNotConfigured),
			errors.Is(err, auth.ErrInvalidIDToken),
			errors.Is(err, auth.ErrMissingEmail):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Firebase authentication failed"})
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	c.JSON(status, AuthResponse{
		AccessToken: result.Tokens.AccessToken,
		User:        result.User,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No refresh token provided"})
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidRefreshToken), errors.Is(err, auth.ErrRefreshTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken})
}

// Logout always succeeds from the client's perspective.
func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken, err := c.Cookie(refreshCookieName); err == nil {
		h.svc.Logout(c.Request.Context(), refreshToken)
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.svc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Refresh cookie is cross-site in production (Secure + SameSite=None) and
// relaxed for local development.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	secure := h.cfg.IsProduction()
	if secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(refreshCookieName, token, int(h.cfg.RefreshTokenTTL.Seconds()), "/", "", secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	secure := h.cfg.IsProduction()
	if secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(refreshCookieName, "", -1, "/", "", secure, true)
}
