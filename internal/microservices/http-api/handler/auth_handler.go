package handler

import (
	"context"
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes mounts the public login and registration endpoints.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.POST("/register", limit, h.Register)
	rg.POST("/login", limit, h.Login)
}

// RegisterSessionRoutes mounts endpoints that need a valid token.
func (h *AuthHandler) RegisterSessionRoutes(rg *gin.RouterGroup) {
	rg.GET("/check-session", h.CheckSession)
	rg.POST("/logout", h.Logout)
	rg.POST("/verify-admin", h.VerifyAdmin)
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, token, err := h.authService.Register(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.authResponse(user, token))
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, token, err := h.authService.Login(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.authResponse(user, token))
}

// Logout POST /api/logout revokes the bearer token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.authService.Logout(ctx, claims); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// CheckSession GET /api/check-session
func (h *AuthHandler) CheckSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.authService.CheckSession(ctx, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.UserFromModel(*user)})
}

// VerifyAdmin POST /api/verify-admin reports whether the caller currently holds the admin role.
func (h *AuthHandler) VerifyAdmin(c *gin.Context) {
	role := c.GetString(middleware.RoleKey)
	c.JSON(http.StatusOK, gin.H{"is_admin": models.IsAdmin(role)})
}

func (h *AuthHandler) authResponse(user *models.User, token string) dto.AuthResponse {
	return dto.AuthResponse{
		User:      dto.UserFromModel(*user),
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(h.authService.TokenTTL().Seconds()),
	}
}
