package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/docstore/document-service/internal/config"
)

// objectPrefix namespaces document objects inside the bucket.
const objectPrefix = "documents/"

// MinIOBackend implements Backend on top of an S3-compatible object store.
type MinIOBackend struct {
	client *minio.Client
	bucket string
}

// NewMinIOBackend creates the client and ensures the bucket exists.
func NewMinIOBackend(cfg *config.MinIOConfig) (*MinIOBackend, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	b := &MinIOBackend{client: mc, bucket: cfg.Bucket}
	// ensure bucket exists (idempotent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, b.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return b, nil
}

func (b *MinIOBackend) Name() string { return "minio" }

func (b *MinIOBackend) key(id string) string { return objectPrefix + id }

// Put stores the content under documents/<id>. PutObject replaces any
// existing object wholesale, which gives overwrite and retry idempotency
// for free. The write time rides along as object metadata.
func (b *MinIOBackend) Put(ctx context.Context, id, content string) error {
	r := strings.NewReader(content)
	_, err := b.client.PutObject(ctx, b.bucket, b.key(id), r, int64(len(content)), minio.PutObjectOptions{
		ContentType:  "text/plain",
		UserMetadata: map[string]string{"Created-At": time.Now().UTC().Format(time.RFC3339)},
	})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", b.key(id), err)
	}
	return nil
}

func (b *MinIOBackend) Get(ctx context.Context, id string) (string, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.key(id), minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("minio get %s: %w", b.key(id), err)
	}
	defer obj.Close()
	// GetObject is lazy; Stat surfaces the missing-key case
	if _, err := obj.Stat(); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("minio stat %s: %w", b.key(id), err)
	}
	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("minio read %s: %w", b.key(id), err)
	}
	return string(data), nil
}

// Ping checks bucket reachability/authorization without touching a document.
func (b *MinIOBackend) Ping(ctx context.Context) error {
	exist, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return err
	}
	if !exist {
		return fmt.Errorf("bucket %s does not exist", b.bucket)
	}
	return nil
}
