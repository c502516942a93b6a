package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, env *testEnv, token, text string) map[string]interface{} {
	t.Helper()
	w := env.do(t, "POST", "/api/posts", token, gin.H{"text": text})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeJSON(t, w)
}

func TestPosts_RequireAuth(t *testing.T) {
	env := newTestEnv(t)
	// the whole surface is private, including reads
	w := env.do(t, "GET", "/api/posts", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, "POST", "/api/posts", "", gin.H{"text": "hi"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPosts_CreateSnapshotsAuthor(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Alice", "alice@example.com")

	p := createPost(t, env, token, "hello world")
	require.Equal(t, "hello world", p["text"])
	require.Equal(t, "Alice", p["name"])
	require.Contains(t, p["avatar"], "gravatar.com")
	require.Empty(t, p["likes"])
	require.Empty(t, p["comments"])
}

func TestPosts_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Alice", "alice@example.com")

	w := env.do(t, "POST", "/api/posts", token, gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Text is required")
}

func TestPosts_GetAndInvalidID(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Alice", "alice@example.com")
	p := createPost(t, env, token, "findable")
	id := p["id"].(string)

	w := env.do(t, "GET", "/api/posts/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/api/posts/not-an-id", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid post id")

	w = env.do(t, "GET", "/api/posts/64f1b2c3d4e5f60718293a4b", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Post not found")
}

func TestPosts_DeleteOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "Alice", "alice@example.com")
	bob := env.register(t, "Bob", "bob@example.com")

	p := createPost(t, env, alice, "alice's post")
	id := p["id"].(string)

	w := env.do(t, "DELETE", "/api/posts/"+id, bob, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "User not authorized")

	w = env.do(t, "DELETE", "/api/posts/"+id, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Post removed")

	w = env.do(t, "DELETE", "/api/posts/"+id, alice, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPosts_LikeUnlike(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "Alice", "alice@example.com")
	bob := env.register(t, "Bob", "bob@example.com")

	p := createPost(t, env, alice, "likeable")
	id := p["id"].(string)

	w := env.do(t, "PUT", "/api/posts/like/"+id, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	likes := decodeJSON(t, w)["likes"].([]interface{})
	require.Len(t, likes, 1)

	// double like rejected
	w = env.do(t, "PUT", "/api/posts/like/"+id, bob, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Post already liked")

	w = env.do(t, "PUT", "/api/posts/unlike/"+id, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeJSON(t, w)["likes"])

	// unlike without a like rejected
	w = env.do(t, "PUT", "/api/posts/unlike/"+id, bob, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Post has not yet been liked")
}

func TestPosts_Comments(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "Alice", "alice@example.com")
	bob := env.register(t, "Bob", "bob@example.com")

	p := createPost(t, env, alice, "discuss")
	id := p["id"].(string)

	w := env.do(t, "POST", "/api/posts/comment/"+id, bob, gin.H{"text": "nice post"})
	require.Equal(t, http.StatusOK, w.Code)
	comments := decodeJSON(t, w)["comments"].([]interface{})
	require.Len(t, comments, 1)
	comment := comments[0].(map[string]interface{})
	require.Equal(t, "nice post", comment["text"])
	require.Equal(t, "Bob", comment["name"])
	cid := comment["id"].(string)

	// the post author cannot delete someone else's comment
	w = env.do(t, "DELETE", "/api/posts/comment/"+id+"/"+cid, alice, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "User not authorized")

	// unknown comment id on a real post
	w = env.do(t, "DELETE", "/api/posts/comment/"+id+"/64f1b2c3d4e5f60718293a4b", bob, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Comment not found")

	w = env.do(t, "DELETE", "/api/posts/comment/"+id+"/"+cid, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeJSON(t, w)["comments"])
}

// Full walkthrough: register, fetch own record, post, like, double-like.
func TestPosts_EndToEnd(t *testing.T) {
	env := newTestEnv(t)

	token := env.register(t, "Carol", "carol@example.com")

	w := env.do(t, "GET", "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeJSON(t, w)["user"].(map[string]interface{})
	require.Equal(t, "Carol", user["name"])

	p := createPost(t, env, token, "first post")
	id := p["id"].(string)
	require.Equal(t, user["id"], p["user"])

	w = env.do(t, "PUT", "/api/posts/like/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "PUT", "/api/posts/like/"+id, token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Post already liked")

	w = env.do(t, "GET", "/api/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "first post")
}
