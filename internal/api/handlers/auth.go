package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hms-dev/mileage-backend/internal/api/dto"
	"github.com/hms-dev/mileage-backend/internal/api/middleware"
)

// sessionMaxAge is the cookie lifetime in seconds, matching SessionTTL.
const sessionMaxAge = 86400

// AuthHandler handles login, logout, and session checks.
type AuthHandler struct {
	sessions *middleware.SessionStore
	username string
	password string
}

// NewAuthHandler creates an auth handler for the single configured user.
func NewAuthHandler(sessions *middleware.SessionStore, username, password string) *AuthHandler {
	return &AuthHandler{sessions: sessions, username: username, password: password}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error(dto.MsgInvalidCredentials))
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) == 1
	if !userOK || !passOK {
		c.JSON(http.StatusUnauthorized, dto.Error(dto.MsgInvalidCredentials))
		return
	}

	token := h.sessions.Create(req.Username)
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, sessionMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, dto.OK())
}

// Logout handles POST /api/logout. Always succeeds, even without a
// session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		h.sessions.Destroy(token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, dto.OK())
}

// Check handles GET /api/check-auth.
func (h *AuthHandler) Check(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)
	c.JSON(http.StatusOK, dto.AuthStatusResponse{Authenticated: h.sessions.Valid(token)})
}
