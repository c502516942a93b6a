package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>devconnect-api Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the public API surface. Private routes
// take the token in the x-auth-token header.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "devconnect-api", "version": "v1.0.0" },
  "paths": {
    "/api/users": {
      "post": { "summary": "Register a user", "responses": { "200": { "description": "token returned" }, "400": { "description": "validation failure or user exists" } } }
    },
    "/api/auth": {
      "get": { "summary": "Current user record", "responses": { "200": { "description": "user" }, "401": { "description": "missing or invalid token" } } },
      "post": { "summary": "Login", "responses": { "200": { "description": "token returned" }, "400": { "description": "invalid credentials" } } }
    },
    "/api/profile": {
      "get": { "summary": "List all profiles", "responses": { "200": { "description": "profiles" } } },
      "post": { "summary": "Create or update own profile", "responses": { "200": { "description": "profile" } } },
      "delete": { "summary": "Delete posts, profile and account", "responses": { "200": { "description": "deleted" } } }
    },
    "/api/profile/me": {
      "get": { "summary": "Own profile", "responses": { "200": { "description": "profile" }, "404": { "description": "no profile yet" } } }
    },
    "/api/profile/user/{user_id}": {
      "get": { "summary": "Profile by user id", "responses": { "200": { "description": "profile" }, "404": { "description": "not found" } } }
    },
    "/api/profile/github/{username}": {
      "get": { "summary": "Latest public GitHub repos", "responses": { "200": { "description": "repos" }, "404": { "description": "no GitHub profile" } } }
    },
    "/api/posts": {
      "get": { "summary": "All posts, newest first", "responses": { "200": { "description": "posts" } } },
      "post": { "summary": "Create a post", "responses": { "200": { "description": "post" } } }
    },
    "/api/posts/{id}": {
      "get": { "summary": "Single post", "responses": { "200": { "description": "post" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete own post", "responses": { "200": { "description": "removed" }, "401": { "description": "not the author" } } }
    },
    "/api/posts/like/{id}": {
      "put": { "summary": "Like a post", "responses": { "200": { "description": "likes" }, "400": { "description": "already liked" } } }
    },
    "/api/posts/unlike/{id}": {
      "put": { "summary": "Unlike a post", "responses": { "200": { "description": "likes" }, "400": { "description": "not yet liked" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
