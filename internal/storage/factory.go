package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docstore/document-service/internal/config"
	"github.com/docstore/document-service/internal/database"
	"github.com/docstore/document-service/pkg/logger"
)

// New resolves the configured backend once at startup. It always returns a
// usable Backend: initialization failures yield an UnavailableBackend and an
// unknown selection yields an UnsupportedBackend, so the process never
// crashes here — the condition surfaces through health and every operation.
func New(ctx context.Context, cfg *config.Config) Backend {
	switch cfg.Storage.Backend {
	case "minio", "s3":
		b, err := NewMinIOBackend(&cfg.MinIO)
		if err != nil {
			logger.Warnf("minio backend unavailable: %v", err)
			return NewUnavailableBackend("minio", err)
		}
		logger.Infof("storage backend: minio bucket=%s", cfg.MinIO.Bucket)
		return b
	case "mongodb":
		client, err := connectMongoWithRetry(ctx, cfg)
		if err != nil {
			logger.Warnf("mongodb backend unavailable: %v", err)
			return NewUnavailableBackend("mongodb", err)
		}
		logger.Infof("storage backend: mongodb db=%s collection=%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
		return NewMongoBackend(client, cfg.MongoDB.Database, cfg.MongoDB.Collection)
	case "memory":
		logger.Infof("storage backend: memory (non-durable)")
		return NewMemoryBackend()
	default:
		logger.Warnf("unknown storage backend %q, all operations will fail", cfg.Storage.Backend)
		return NewUnsupportedBackend(cfg.Storage.Backend)
	}
}

// connectMongoWithRetry tolerates startup races against the database container.
func connectMongoWithRetry(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err == nil {
			return client, nil
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return nil, err
}
