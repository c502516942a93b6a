package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/api/internal/config"
	"github.com/devconnect/api/internal/github"
	"github.com/devconnect/api/internal/posts"
	"github.com/devconnect/api/internal/profiles"
	"github.com/devconnect/api/internal/users"
	"github.com/devconnect/api/pkg/middleware"
)

// testEnv wires the full route surface against in-memory repositories.
type testEnv struct {
	router   *gin.Engine
	cfg      *config.Config
	users    *users.Service
	profiles *profiles.Service
	posts    *posts.Service
	github   *github.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "handlers-test-secret-32-bytes-xx"
	cfg.JWT.TokenTTL = time.Hour

	env := &testEnv{
		cfg:      cfg,
		users:    users.NewService(users.NewMemoryRepository()),
		profiles: profiles.NewService(profiles.NewMemoryRepository()),
		posts:    posts.NewService(posts.NewMemoryRepository()),
		github:   github.NewClient("", nil, time.Minute),
	}

	r := gin.New()
	rg := r.Group("/")
	NewUsersHandler(cfg, env.users, nil).Register(rg)
	NewAuthHandler(cfg, env.users).Register(rg)
	NewProfileHandler(cfg, env.profiles, env.users, env.posts, env.github).Register(rg)
	NewPostsHandler(cfg, env.posts, env.users).Register(rg)
	env.router = r
	return env
}

// do performs a JSON request; token may be empty for public routes.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AuthHeader, token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its token.
func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()
	w := e.do(t, "POST", "/api/users", "", gin.H{"name": name, "email": email, "password": "hunter22"})
	require.Equal(t, 200, w.Code, w.Body.String())
	var got struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotEmpty(t, got.Token)
	return got.Token
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}
