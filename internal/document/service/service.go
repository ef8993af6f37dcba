// Package service implements the cache-aside read/write protocol over the
// storage backend and the best-effort cache.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docstore/document-service/internal/cache"
	"github.com/docstore/document-service/internal/config"
	"github.com/docstore/document-service/internal/document"
	"github.com/docstore/document-service/internal/storage"
	"github.com/docstore/document-service/pkg/logger"
	"github.com/docstore/document-service/pkg/metrics"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrContentEmpty    = errors.New("content is empty")
	ErrContentTooLarge = fmt.Errorf("content exceeds maximum size of %d bytes", config.MaxContentSize)
)

// Service orchestrates writes (persist then invalidate) and reads (cache
// first, storage on miss, repopulate). It is stateless apart from the handles
// it holds, so concurrent requests need no locking: per-id ordering is
// last-writer-wins at the backends.
type Service struct {
	backend storage.Backend
	cache   cache.Cache

	// writeThrough switches invalidate-on-write to populate-on-write.
	// Narrower staleness window, same correctness model. Off by default.
	writeThrough bool
}

func NewService(backend storage.Backend, c cache.Cache, writeThrough bool) *Service {
	return &Service{backend: backend, cache: c, writeThrough: writeThrough}
}

// Put validates and durably stores content under id, then invalidates (or in
// write-through mode, repopulates) the cache entry. Returns the stored size.
//
// The cache is only touched after a successful store: an entry must never
// shadow a write that did not land. Cache failures past that point are
// absorbed — stale data up to TTL is the accepted trade-off.
func (s *Service) Put(ctx context.Context, id, content string) (int, error) {
	if len(content) == 0 {
		return 0, ErrContentEmpty
	}
	if len(content) > config.MaxContentSize {
		return 0, ErrContentTooLarge
	}

	logger.Infof("storing document %s, size: %d bytes", id, len(content))
	if err := s.backend.Put(ctx, id, content); err != nil {
		metrics.DocumentsStored.WithLabelValues("error").Inc()
		logger.Errorf("error storing document %s: %v", id, err)
		return 0, fmt.Errorf("store document %s: %w", id, err)
	}
	metrics.DocumentsStored.WithLabelValues("success").Inc()

	if s.writeThrough {
		s.cache.Set(ctx, id, content, 0)
	} else {
		s.cache.Delete(ctx, id)
	}

	return len(content), nil
}

// Get returns the document for id, serving from the cache when possible and
// populating it on a storage-backed read.
func (s *Service) Get(ctx context.Context, id string) (*document.Document, error) {
	if content, ok := s.cache.Get(ctx, id); ok {
		metrics.CacheHits.Inc()
		logger.Infof("cache hit for document %s", id)
		return &document.Document{ID: id, Content: content, CreatedAt: time.Now().UTC()}, nil
	}
	metrics.CacheMisses.Inc()
	logger.Infof("cache miss for document %s, fetching from storage", id)

	content, err := s.backend.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.DocumentsRetrieved.WithLabelValues("not_found").Inc()
			return nil, ErrNotFound
		}
		metrics.DocumentsRetrieved.WithLabelValues("error").Inc()
		logger.Errorf("error retrieving document %s: %v", id, err)
		return nil, fmt.Errorf("retrieve document %s: %w", id, err)
	}
	metrics.DocumentsRetrieved.WithLabelValues("success").Inc()

	// populate for future reads; a failed Set only costs the next read a trip
	s.cache.Set(ctx, id, content, 0)

	return &document.Document{ID: id, Content: content, CreatedAt: time.Now().UTC()}, nil
}
