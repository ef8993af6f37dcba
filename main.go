package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/docstore/document-service/internal/cache"
	"github.com/docstore/document-service/internal/config"
	"github.com/docstore/document-service/internal/document/handler"
	"github.com/docstore/document-service/internal/document/service"
	"github.com/docstore/document-service/internal/health"
	"github.com/docstore/document-service/internal/secret"
	"github.com/docstore/document-service/internal/storage"
	"github.com/docstore/document-service/pkg/logger"
	"github.com/docstore/document-service/pkg/metrics"
	"github.com/docstore/document-service/pkg/middleware"
)

const version = "1.0.0"

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	secrets := secret.NewResolver(secret.EnvProvider{})
	cfg, err := config.LoadConfig(secrets)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: backend=%s cache=%v write_through=%v", cfg.Storage.Backend, cfg.Cache.Enabled, cfg.Cache.WriteThrough)

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Durable storage: resolved once, never swapped at runtime. An unusable
	// backend keeps the process alive and shows up in /health.
	backend := storage.New(ctx, cfg)

	// Cache handle: created once per process and shared across requests.
	// Connection problems only cost cache hits, never correctness.
	var docCache cache.Cache = cache.NewDisabled()
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		rc := cache.NewRedisCache(&cfg.Cache)
		pingCtx, cancel := context.WithTimeout(ctx, cfg.Cache.DialTimeout)
		if err := rc.Ping(pingCtx); err != nil {
			logger.Warnf("cache unreachable at startup (%s:%s), degrading to miss/no-op: %v", cfg.Cache.Host, cfg.Cache.Port, err)
		} else {
			logger.Infof("connected to cache: %s:%s", cfg.Cache.Host, cfg.Cache.Port)
		}
		cancel()
		docCache = rc
		redisClient = rc.Client()
	} else {
		logger.Infof("caching disabled")
	}

	// Optional per-IP rate limiter, Redis-backed when the cache client is up
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	svc := service.NewService(backend, docCache, cfg.Cache.WriteThrough)
	handler.RegisterDocumentRoutes(r, svc)
	health.RegisterHealthRoute(r, health.NewReporter(backend, docCache, version))

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting document service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
