package handlers

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devconnect/api/internal/config"
	"github.com/devconnect/api/internal/storage"
	"github.com/devconnect/api/internal/tokens"
	"github.com/devconnect/api/internal/users"
	"github.com/devconnect/api/pkg/logger"
	"github.com/devconnect/api/pkg/middleware"
)

// RegisterRequest is the POST /api/users body.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

var registerMessages = map[string]string{
	"Name":     "Name is required",
	"Email":    "Please include a valid email",
	"Password": "Please enter a valid password",
}

// UsersHandler serves registration and avatar upload.
type UsersHandler struct {
	cfg     *config.Config
	users   *users.Service
	avatars *storage.AvatarStorage
}

// NewUsersHandler creates the handler. avatars may be nil; the upload route
// is only registered when object storage is configured.
func NewUsersHandler(cfg *config.Config, u *users.Service, avatars *storage.AvatarStorage) *UsersHandler {
	return &UsersHandler{cfg: cfg, users: u, avatars: avatars}
}

func (h *UsersHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/api/users")
	g.POST("", h.Create)
	if h.avatars != nil {
		g.POST("/avatar", middleware.RequireAuth(h.cfg.JWT.Secret), h.UploadAvatar)
	}
}

// Create registers an account and returns a bearer token.
func (h *UsersHandler) Create(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortErrors(c, http.StatusBadRequest, bindingErrors(err, registerMessages)...)
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if err == users.ErrEmailTaken {
			abortErrors(c, http.StatusBadRequest, ErrorItem{Msg: "User already exists"})
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

// UploadAvatar stores an uploaded image in object storage and points the
// caller's avatar at it, replacing the derived Gravatar URI.
func (h *UsersHandler) UploadAvatar(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		abortMsg(c, http.StatusBadRequest, "Avatar file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		serverError(c, err)
		return
	}
	defer f.Close()

	key := path.Join(uid.Hex(), uuid.NewString())
	contentType := fh.Header.Get("Content-Type")
	url, err := h.avatars.Upload(c.Request.Context(), key, f, fh.Size, contentType)
	if err != nil {
		serverError(c, err)
		return
	}
	if err := h.users.SetAvatar(c.Request.Context(), uid, url); err != nil {
		serverError(c, err)
		return
	}
	logger.Debugf("avatar updated for user %s", uid.Hex())
	c.JSON(http.StatusOK, gin.H{"avatar": url})
}
