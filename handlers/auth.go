package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/api/internal/config"
	"github.com/devconnect/api/internal/tokens"
	"github.com/devconnect/api/internal/users"
	"github.com/devconnect/api/pkg/middleware"
)

// LoginRequest is the POST /api/auth body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var loginMessages = map[string]string{
	"Email":    "Please include a valid email",
	"Password": "Password is required",
}

// AuthHandler serves login and the caller's own account record.
type AuthHandler struct {
	cfg   *config.Config
	users *users.Service
}

func NewAuthHandler(cfg *config.Config, u *users.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: u}
}

func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/api/auth")
	g.POST("", h.Login)
	g.GET("", middleware.RequireAuth(h.cfg.JWT.Secret), h.Me)
}

// Login verifies credentials and returns a bearer token. Unknown email and
// password mismatch produce the identical response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortErrors(c, http.StatusBadRequest, bindingErrors(err, loginMessages)...)
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == users.ErrInvalidCredentials {
			abortErrors(c, http.StatusBadRequest, ErrorItem{Msg: "Invalid Credentials"})
			return
		}
		serverError(c, err)
		return
	}

	token, err := tokens.Issue(h.cfg.JWT.Secret, u.ID.Hex(), h.cfg.JWT.TokenTTL)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me returns the caller's account record; the password hash never serializes.
func (h *AuthHandler) Me(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	u, err := h.users.GetByID(c.Request.Context(), uid)
	if err != nil {
		if err == users.ErrNotFound {
			abortMsg(c, http.StatusNotFound, "User not found")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
