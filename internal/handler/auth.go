package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cmms-platform/cmms-service/internal/auth"
	"github.com/cmms-platform/cmms-service/internal/service"
)

type AuthHandler struct {
	users     *service.UserService
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthHandler(users *service.UserService, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := auth.GenerateToken(h.jwtSecret, h.jwtTTL, u)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}
