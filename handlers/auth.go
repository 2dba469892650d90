package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/Vallabhkejgir/Location-Tracker/internal/sessions"
	"github.com/Vallabhkejgir/Location-Tracker/pkg/logger"
	"github.com/Vallabhkejgir/Location-Tracker/pkg/middleware"
)

// LoginRequest carries the self-referential credentials: the password must be
// the username reversed.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	sessionsSvc *sessions.Service
}

func NewAuthHandler(s *sessions.Service) *AuthHandler {
	return &AuthHandler{sessionsSvc: s}
}

// Register wires the session-lifecycle routes. Only /session_info requires an
// authenticated session; logout succeeds for anyone.
func (h *AuthHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("/login", h.Login)
	rg.GET("/session_info", auth, h.SessionInfo)
	rg.POST("/logout", h.Logout)
}

// Login authenticates and issues the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, ttl, err := h.sessionsSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrUsernameTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, sessions.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			logger.Errorf("login failed for %q: %v", req.Username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		}
		return
	}

	c.SetCookie(sessions.CookieName, token, int(ttl.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "success", "username": req.Username})
}

// SessionInfo reports the authenticated identity and the seconds left before
// the session expires.
func (h *AuthHandler) SessionInfo(c *gin.Context) {
	token := c.GetString(middleware.ContextTokenKey)
	username := c.GetString(middleware.ContextUserKey)

	left, err := h.sessionsSvc.RemainingTTL(c.Request.Context(), token)
	if err != nil {
		// the session can expire between the middleware check and here
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "remaining_seconds": int(left.Seconds())})
}

// Logout invalidates the session (if any) and clears the cookie. Idempotent:
// an absent or unknown token is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessions.CookieName); err == nil && token != "" {
		if err := h.sessionsSvc.Invalidate(c.Request.Context(), token); err != nil {
			logger.Warnf("session invalidation failed: %v", err)
		}
	}
	c.SetCookie(sessions.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}
