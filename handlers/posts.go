package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/api/internal/config"
	"github.com/devconnect/api/internal/models"
	"github.com/devconnect/api/internal/posts"
	"github.com/devconnect/api/internal/users"
	"github.com/devconnect/api/pkg/middleware"
)

// PostRequest is the body for creating a post or a comment.
type PostRequest struct {
	Text string `json:"text" binding:"required"`
}

var postMessages = map[string]string{
	"Text": "Text is required",
}

// PostsHandler serves post, like, and comment CRUD. Every route is private.
type PostsHandler struct {
	cfg   *config.Config
	posts *posts.Service
	users *users.Service
}

func NewPostsHandler(cfg *config.Config, p *posts.Service, u *users.Service) *PostsHandler {
	return &PostsHandler{cfg: cfg, posts: p, users: u}
}

func (h *PostsHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/api/posts", middleware.RequireAuth(h.cfg.JWT.Secret))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
	g.PUT("/like/:id", h.Like)
	g.PUT("/unlike/:id", h.Unlike)
	g.POST("/comment/:id", h.Comment)
	g.DELETE("/comment/:id/:comment_id", h.DeleteComment)
}

// Create stores a post authored by the caller, snapshotting name and avatar.
func (h *PostsHandler) Create(c *gin.Context) {
	author, ok := h.loadCaller(c)
	if !ok {
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortErrors(c, http.StatusBadRequest, bindingErrors(err, postMessages)...)
		return
	}
	p, err := h.posts.Create(c.Request.Context(), author, req.Text)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// List returns all posts, newest first.
func (h *PostsHandler) List(c *gin.Context) {
	out, err := h.posts.List(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostsHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "Invalid post id")
	if !ok {
		return
	}
	p, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete removes a post; only its author may do so.
func (h *PostsHandler) Delete(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid post id")
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), id, uid); err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

// Like records the caller's like; at most one per user per post.
func (h *PostsHandler) Like(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid post id")
	if !ok {
		return
	}
	likes, err := h.posts.Like(c.Request.Context(), id, uid)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *PostsHandler) Unlike(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid post id")
	if !ok {
		return
	}
	likes, err := h.posts.Unlike(c.Request.Context(), id, uid)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// Comment appends a comment by the caller to the target post.
func (h *PostsHandler) Comment(c *gin.Context) {
	author, ok := h.loadCaller(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid post id")
	if !ok {
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortErrors(c, http.StatusBadRequest, bindingErrors(err, postMessages)...)
		return
	}
	comments, err := h.posts.Comment(c.Request.Context(), id, author, req.Text)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// DeleteComment removes a comment by id; only its author may do so.
func (h *PostsHandler) DeleteComment(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Invalid post id")
	if !ok {
		return
	}
	commentID, ok := objectIDParam(c, "comment_id", "Invalid comment id")
	if !ok {
		return
	}
	comments, err := h.posts.DeleteComment(c.Request.Context(), id, commentID, uid)
	if err != nil {
		h.postError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// loadCaller resolves the authenticated user's full record for operations
// that snapshot name/avatar.
func (h *PostsHandler) loadCaller(c *gin.Context) (*models.User, bool) {
	uid, ok := callerID(c)
	if !ok {
		return nil, false
	}
	u, err := h.users.GetByID(c.Request.Context(), uid)
	if err != nil {
		if err == users.ErrNotFound {
			abortMsg(c, http.StatusNotFound, "User not found")
			return nil, false
		}
		serverError(c, err)
		return nil, false
	}
	return u, true
}

func (h *PostsHandler) postError(c *gin.Context, err error) {
	switch err {
	case posts.ErrNotFound:
		abortMsg(c, http.StatusNotFound, "Post not found")
	case posts.ErrCommentNotFound:
		abortMsg(c, http.StatusNotFound, "Comment not found")
	case posts.ErrAlreadyLiked:
		abortMsg(c, http.StatusBadRequest, "Post already liked")
	case posts.ErrNotLiked:
		abortMsg(c, http.StatusBadRequest, "Post has not yet been liked")
	case posts.ErrNotOwner:
		abortMsg(c, http.StatusUnauthorized, "User not authorized")
	default:
		serverError(c, err)
	}
}
