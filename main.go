package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devconnect/api/handlers"
	"github.com/devconnect/api/internal/config"
	"github.com/devconnect/api/internal/database"
	"github.com/devconnect/api/internal/github"
	"github.com/devconnect/api/internal/posts"
	"github.com/devconnect/api/internal/profiles"
	"github.com/devconnect/api/internal/storage"
	"github.com/devconnect/api/internal/users"
	"github.com/devconnect/api/pkg/logger"
	"github.com/devconnect/api/pkg/metrics"
	"github.com/devconnect/api/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v jwt_secret_set=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.JWT.Secret != "")

	r := gin.New()

	// Lightweight CORS middleware: set common headers and respond to OPTIONS.
	// Production deployments should front this with a stricter policy.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, x-auth-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, X-Request-Id")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: request ids + logging + recovery
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter and GitHub cache can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis for rate limiting and caching: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.MongoDB.Database)
	userSvc := users.NewService(users.NewMongoRepository(db.Collection("users")))
	profileSvc := profiles.NewService(profiles.NewMongoRepository(db.Collection("profiles")))
	postSvc := posts.NewService(posts.NewMongoRepository(db.Collection("posts")))
	githubClient := github.NewClient(cfg.GitHub.Token, redisClient, cfg.GitHub.CacheTTL)

	// Avatar uploads need object storage; the route stays unregistered without it
	var avatars *storage.AvatarStorage
	if mc := storage.LoadMinIOConfig(); mc.Endpoint != "" {
		avatars, err = storage.NewAvatarStorage(mc)
		if err != nil {
			logger.Warnf("avatar storage unavailable: %v", err)
			avatars = nil
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint: return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		if err := client.Ping(c.Request.Context(), nil); err != nil {
			deps["mongodb"] = false
			ready = false
		} else {
			deps["mongodb"] = true
		}

		// Redis is required only when the limiter depends on it
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	rg := r.Group("/")
	handlers.NewUsersHandler(cfg, userSvc, avatars).Register(rg)
	handlers.NewAuthHandler(cfg, userSvc).Register(rg)
	handlers.NewProfileHandler(cfg, profileSvc, userSvc, postSvc, githubClient).Register(rg)
	handlers.NewPostsHandler(cfg, postSvc, userSvc).Register(rg)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting devconnect api on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
