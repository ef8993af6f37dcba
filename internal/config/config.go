package config

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/docstore/document-service/internal/secret"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	MinIO     MinIOConfig
	MongoDB   MongoDBConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type StorageConfig struct {
	// Backend selects the durable store: "minio", "mongodb" or "memory".
	Backend        string
	MaxContentSize int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type MongoDBConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

type CacheConfig struct {
	Enabled      bool
	Host         string
	Port         string
	Password     string
	DB           int
	DefaultTTL   time.Duration
	DialTimeout  time.Duration
	WriteThrough bool
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// MaxContentSize is the hard upper bound on document content (bytes).
const MaxContentSize = 100 * 1024

// LoadConfig loads configuration from environment variables and .env file.
// The cache password is resolved through the secret provider so deployments
// with a real secret manager and plain-env deployments share one code path.
func LoadConfig(secrets *secret.Resolver) (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("STORAGE_BACKEND", "minio")
	viper.SetDefault("STORAGE_BUCKET", "document-service-storage")
	viper.SetDefault("MONGODB_DATABASE", "docservice")
	viper.SetDefault("MONGODB_COLLECTION", "documents")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("CACHE_ENABLED", true)
	viper.SetDefault("CACHE_PORT", "6379")
	viper.SetDefault("CACHE_TTL", 3600)
	viper.SetDefault("CACHE_DIAL_TIMEOUT", 2)
	viper.SetDefault("CACHE_WRITE_THROUGH", false)
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Backend:        viper.GetString("STORAGE_BACKEND"),
			MaxContentSize: MaxContentSize,
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("STORAGE_BUCKET"),
		},
		MongoDB: MongoDBConfig{
			URI:        viper.GetString("MONGODB_URI"),
			Database:   viper.GetString("MONGODB_DATABASE"),
			Collection: viper.GetString("MONGODB_COLLECTION"),
			Timeout:    time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Cache: CacheConfig{
			Enabled:      viper.GetBool("CACHE_ENABLED"),
			Host:         viper.GetString("CACHE_HOST"),
			Port:         viper.GetString("CACHE_PORT"),
			Password:     secrets.Resolve(context.Background(), "redis-password"),
			DB:           0,
			DefaultTTL:   time.Duration(viper.GetInt("CACHE_TTL")) * time.Second,
			DialTimeout:  time.Duration(viper.GetInt("CACHE_DIAL_TIMEOUT")) * time.Second,
			WriteThrough: viper.GetBool("CACHE_WRITE_THROUGH"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// a cache without a host is administratively disabled
	if cfg.Cache.Host == "" {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}
