package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zintasa/backend/config"
	"zintasa/backend/internal/dto"
	"zintasa/backend/internal/service"
	"zintasa/backend/pkg/response"
)

// AuthHandler serves login, logout and account bootstrap.
type AuthHandler struct {
	cookie  *config.CookieConfig
	ttl     int
	authSvc service.AuthService
}

// NewAuthHandler builds the AuthHandler.
func NewAuthHandler(authCfg *config.AuthConfig, authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{
		cookie:  &authCfg.Cookie,
		ttl:     int(authCfg.SessionTTL.Seconds()),
		authSvc: authSvc,
	}
}

// Login authenticates and sets the session cookie.
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailStatus(c, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.SetSameSite(h.sameSite())
	c.SetCookie(h.cookie.Name, result.Token, h.ttl, "/", h.cookie.Domain, h.cookie.Secure, true)

	response.OK(c, gin.H{
		"user":       result.User,
		"expires_in": result.ExpiresIn,
	})
}

// Logout revokes the session and clears the cookie.
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sess.JTI); err != nil {
		response.Fail(c, err)
		return
	}

	c.SetSameSite(h.sameSite())
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)

	response.OK(c, nil)
}

// CreateAccount provisions a new account. Admin only; enforced in the
// router.
// POST /accounts
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailStatus(c, http.StatusBadRequest, "invalid account payload")
		return
	}

	user, err := h.authSvc.CreateAccount(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, gin.H{"user": user})
}

func (h *AuthHandler) sameSite() http.SameSite {
	switch strings.ToLower(h.cookie.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
