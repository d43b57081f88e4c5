package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/juvenstu/real-estate-marketplace/internal/apperr"
	"github.com/juvenstu/real-estate-marketplace/internal/httpx"
	"github.com/juvenstu/real-estate-marketplace/internal/service"
	"github.com/juvenstu/real-estate-marketplace/pkg/logger"
)

type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type FederatedRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Avatar string `json:"avatar"`
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.BadRequest("Invalid request body"))
		return
	}

	logger.Log.Info("Signup attempt",
		zap.String("username", req.Username),
		zap.String("ip", c.ClientIP()),
	)

	user, token, err := h.authService.Signup(req.Username, req.Email, req.Password)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	setSessionCookie(c, token, h.authService.TokenMaxAge(), h.secureCookie)
	c.JSON(http.StatusCreated, user)
}

// POST /api/auth/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.BadRequest("Invalid request body"))
		return
	}

	user, token, err := h.authService.Signin(req.Email, req.Password)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	setSessionCookie(c, token, h.authService.TokenMaxAge(), h.secureCookie)
	c.JSON(http.StatusOK, user)
}

// POST /api/auth/google
func (h *AuthHandler) Google(c *gin.Context) {
	var req FederatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.BadRequest("Invalid request body"))
		return
	}

	user, token, err := h.authService.FederatedSignin(req.Name, req.Email, req.Avatar)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	setSessionCookie(c, token, h.authService.TokenMaxAge(), h.secureCookie)
	c.JSON(http.StatusOK, user)
}

// GET /api/auth/signout
func (h *AuthHandler) Signout(c *gin.Context) {
	clearSessionCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"message": "User has been signed out"})
}
