package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/api/internal/config"
	"github.com/devconnect/api/internal/github"
	"github.com/devconnect/api/internal/models"
	"github.com/devconnect/api/internal/posts"
	"github.com/devconnect/api/internal/profiles"
	"github.com/devconnect/api/internal/users"
	"github.com/devconnect/api/pkg/middleware"
)

// UpsertProfileRequest is the POST /api/profile body. Skills is a
// comma-separated list, split and trimmed server-side.
type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" binding:"required"`
	Skills         string `json:"skills" binding:"required"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Instagram      string `json:"instagram"`
}

var upsertProfileMessages = map[string]string{
	"Status": "Status is required",
	"Skills": "Skills are required",
}

// ExperienceRequest is the PUT /api/profile/experience body. Dates are
// RFC 3339.
type ExperienceRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    string     `json:"location"`
	From        *time.Time `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

var experienceMessages = map[string]string{
	"Title":   "Title is required",
	"Company": "Company is required",
	"From":    "From date is required",
}

// EducationRequest is the PUT /api/profile/education body.
type EducationRequest struct {
	School       string     `json:"school" binding:"required"`
	Degree       string     `json:"degree" binding:"required"`
	FieldOfStudy string     `json:"fieldofstudy" binding:"required"`
	From         *time.Time `json:"from" binding:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

var educationMessages = map[string]string{
	"School":       "School is required",
	"Degree":       "Degree is required",
	"FieldOfStudy": "Field of study is required",
	"From":         "From date is required",
}

// ProfileHandler serves profile CRUD, experience/education sub-resources, the
// GitHub repo proxy, and account removal.
type ProfileHandler struct {
	cfg      *config.Config
	profiles *profiles.Service
	users    *users.Service
	posts    *posts.Service
	github   *github.Client
}

func NewProfileHandler(cfg *config.Config, p *profiles.Service, u *users.Service, ps *posts.Service, gh *github.Client) *ProfileHandler {
	return &ProfileHandler{cfg: cfg, profiles: p, users: u, posts: ps, github: gh}
}

func (h *ProfileHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/api/profile")
	auth := middleware.RequireAuth(h.cfg.JWT.Secret)

	g.GET("", h.List)
	g.POST("", auth, h.Upsert)
	g.DELETE("", auth, h.DeleteAccount)
	g.GET("/me", auth, h.Me)
	g.PUT("/experience", auth, h.AddExperience)
	g.DELETE("/experience/:exp_id", auth, h.RemoveExperience)
	g.PUT("/education", auth, h.AddEducation)
	g.DELETE("/education/:edu_id", auth, h.RemoveEducation)
	g.GET("/user/:user_id", h.ByUser)
	g.GET("/github/:username", h.Github)
}

// List returns every profile; public.
func (h *ProfileHandler) List(c *gin.Context) {
	out, err := h.profiles.List(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Me returns the caller's own profile.
func (h *ProfileHandler) Me(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	p, err := h.profiles.GetByUser(c.Request.Context(), uid)
	if err != nil {
		if err == profiles.ErrNotFound {
			abortMsg(c, http.StatusNotFound, "Profile not found")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// Upsert creates or updates the caller's profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortErrors(c, http.StatusBadRequest, bindingErrors(err, upsertProfileMessages)...)
		return
	}

	f := profiles.Fields{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         splitSkills(req.Skills),
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Instagram: req.Instagram,
		},
	}
	p, err := h.profiles.Upsert(c.Request.Context(), uid, f)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	var req ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortErrors(c, http.StatusBadRequest, bindingErrors(err, experienceMessages)...)
		return
	}
	exp := models.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        *req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	p, err := h.profiles.AddExperience(c.Request.Context(), uid, exp)
	if err != nil {
		h.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	expID, ok := objectIDParam(c, "exp_id", "Invalid experience id")
	if !ok {
		return
	}
	p, err := h.profiles.RemoveExperience(c.Request.Context(), uid, expID)
	if err != nil {
		h.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	var req EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortErrors(c, http.StatusBadRequest, bindingErrors(err, educationMessages)...)
		return
	}
	edu := models.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         *req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	p, err := h.profiles.AddEducation(c.Request.Context(), uid, edu)
	if err != nil {
		h.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	eduID, ok := objectIDParam(c, "edu_id", "Invalid education id")
	if !ok {
		return
	}
	p, err := h.profiles.RemoveEducation(c.Request.Context(), uid, eduID)
	if err != nil {
		h.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// ByUser returns a profile by its owning user's id; public.
func (h *ProfileHandler) ByUser(c *gin.Context) {
	uid, ok := objectIDParam(c, "user_id", "Invalid user id")
	if !ok {
		return
	}
	p, err := h.profiles.GetByUser(c.Request.Context(), uid)
	if err != nil {
		h.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// Github relays the user's latest public repositories from the GitHub API.
func (h *ProfileHandler) Github(c *gin.Context) {
	body, err := h.github.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		if err == github.ErrNoProfile {
			abortMsg(c, http.StatusNotFound, "No Github profile found")
			return
		}
		serverError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// DeleteAccount removes the caller's posts, profile, and account, in that
// order. Every step is idempotent, so a partial failure never leaves content
// owned by a live account; re-running the request finishes the job.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.posts.DeleteByUser(ctx, uid); err != nil {
		serverError(c, err)
		return
	}
	if err := h.profiles.Delete(ctx, uid); err != nil {
		serverError(c, err)
		return
	}
	if err := h.users.Delete(ctx, uid); err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

func (h *ProfileHandler) profileError(c *gin.Context, err error) {
	if err == profiles.ErrNotFound {
		abortMsg(c, http.StatusNotFound, "Profile not found")
		return
	}
	serverError(c, err)
}

func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
