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

	"github.com/Vallabhkejgir/Location-Tracker/handlers"
	"github.com/Vallabhkejgir/Location-Tracker/internal/config"
	"github.com/Vallabhkejgir/Location-Tracker/internal/database"
	"github.com/Vallabhkejgir/Location-Tracker/internal/geofence"
	"github.com/Vallabhkejgir/Location-Tracker/internal/notify"
	"github.com/Vallabhkejgir/Location-Tracker/internal/places"
	"github.com/Vallabhkejgir/Location-Tracker/internal/sessions"
	"github.com/Vallabhkejgir/Location-Tracker/internal/tracking"
	"github.com/Vallabhkejgir/Location-Tracker/pkg/logger"
	"github.com/Vallabhkejgir/Location-Tracker/pkg/metrics"
	"github.com/Vallabhkejgir/Location-Tracker/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: google=%v twilio=%v redis=%v mongo=%v",
		cfg.Google.APIKey != "", cfg.Twilio.Configured(), cfg.Redis.Host != "", cfg.MongoDB.URI != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so both the rate limiter and the session store can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-identity when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Session repository selection: Redis when available, Mongo as fallback,
	// in-process memory otherwise (the single-process default).
	var sessionRepo sessions.Repository
	if redisClient != nil {
		sessionRepo = sessions.NewRedisRepository(redisClient, "session:")
		logger.Infof("using Redis for session storage")
	} else if cfg.MongoDB.URI != "" {
		ctx := context.Background()
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Warnf("could not connect to MongoDB: %v", err)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			col := client.Database(cfg.MongoDB.Database).Collection("sessions")
			sessionRepo = sessions.NewMongoRepository(col)
			logger.Infof("using MongoDB for session storage")
		}
	}
	if sessionRepo == nil {
		sessionRepo = sessions.NewMemoryRepository()
		logger.Infof("using in-memory session storage")
	}

	sessionsSvc := sessions.NewService(sessionRepo, sessions.Policy{
		DefaultTTL:     cfg.Session.TTL,
		PrivilegedTTL:  cfg.Session.PrivilegedTTL,
		PrivilegedUser: cfg.Session.PrivilegedUser,
	})

	// External collaborators
	placesClient := places.NewClient(cfg.Google.APIKey, cfg.Google.BaseURL, cfg.Google.Region)
	var dialer handlers.AlertDispatcher = notify.NoopDialer{}
	if cfg.Twilio.Configured() {
		dialer = notify.NewTwilioDialer(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken,
			cfg.Twilio.FromNumber, cfg.Twilio.ToNumber, cfg.Twilio.TwimlURL, cfg.Twilio.BaseURL)
		logger.Infof("Twilio dialer initialized")
	}

	tracker := tracking.NewTracker()
	evaluator := geofence.NewEvaluator(cfg.Geofence.RadiusMeters)

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — report dependency state
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"sessions": true}
		ready := true
		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		}
		deps["dialer"] = cfg.Twilio.Configured()
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	// API routes: session lifecycle + tracking, all under /api
	auth := middleware.SessionAuth(sessionsSvc)
	api := r.Group("/api")
	handlers.NewAuthHandler(sessionsSvc).Register(api, auth)
	handlers.NewTrackingHandler(tracker, evaluator, placesClient, dialer).Register(api, auth)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting location tracker on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
