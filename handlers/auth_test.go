package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@example.com")

	w := env.do(t, "POST", "/api/auth", "", gin.H{"email": "alice@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeJSON(t, w)
	require.NotEmpty(t, got["token"])
}

func TestLogin_InvalidCredentialsAreUniform(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@example.com")

	// wrong password
	w1 := env.do(t, "POST", "/api/auth", "", gin.H{"email": "alice@example.com", "password": "wrong"})
	// unknown account
	w2 := env.do(t, "POST", "/api/auth", "", gin.H{"email": "nobody@example.com", "password": "hunter22"})

	require.Equal(t, http.StatusBadRequest, w1.Code)
	require.Equal(t, http.StatusBadRequest, w2.Code)
	require.Contains(t, w1.Body.String(), "Invalid Credentials")
	require.Equal(t, w1.Body.String(), w2.Body.String())
}

func TestLogin_ValidationMessages(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/api/auth", "", gin.H{"email": "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Please include a valid email")
	require.Contains(t, w.Body.String(), "Password is required")
}

func TestMe_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/api/auth", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "No token, authorization denied")

	w = env.do(t, "GET", "/api/auth", "bogus-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token is not valid")
}

func TestMe_NeverLeaksPasswordHash(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Alice", "alice@example.com")

	w := env.do(t, "GET", "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeJSON(t, w)["user"].(map[string]interface{})
	require.Equal(t, "Alice", user["name"])
	require.Equal(t, "alice@example.com", user["email"])
	require.NotContains(t, user, "password")
	require.NotContains(t, w.Body.String(), "$2a$")
}

func TestMe_DeletedAccount(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Alice", "alice@example.com")

	// account removal invalidates the record but not the token itself
	w := env.do(t, "DELETE", "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/api/auth", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "User not found")
}
