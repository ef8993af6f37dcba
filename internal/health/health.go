// Package health aggregates storage and cache reachability into the
// service-level health verdict.
package health

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docstore/document-service/internal/cache"
	"github.com/docstore/document-service/internal/storage"
	"github.com/docstore/document-service/pkg/logger"
)

// component states as they appear in the health body
const (
	StateOK             = "ok"
	StateError          = "error"
	StateUnavailable    = "unavailable"
	StateNotImplemented = "not_implemented"
	StateDisabled       = "disabled"
)

// Report is the health check body.
type Report struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Storage string `json:"storage"`
	Cache   string `json:"cache"`
}

// Reporter probes the storage backend and cache and aggregates the verdict.
type Reporter struct {
	backend storage.Backend
	cache   cache.Cache
	version string
}

func NewReporter(backend storage.Backend, c cache.Cache, version string) *Reporter {
	return &Reporter{backend: backend, cache: c, version: version}
}

// Check is healthy iff storage is ok and cache is ok or disabled. A disabled
// cache is optional infrastructure, not a fault.
func (r *Reporter) Check(ctx context.Context) Report {
	rep := Report{
		Service: "document-service",
		Version: r.version,
		Storage: r.storageState(ctx),
		Cache:   r.cacheState(ctx),
	}
	if rep.Storage == StateOK && (rep.Cache == StateOK || rep.Cache == StateDisabled) {
		rep.Status = "healthy"
	} else {
		rep.Status = "unhealthy"
	}
	logger.Debugf("health check: status=%s storage=%s cache=%s", rep.Status, rep.Storage, rep.Cache)
	return rep
}

func (r *Reporter) storageState(ctx context.Context) string {
	if r.backend == nil {
		return StateUnavailable
	}
	err := r.backend.Ping(ctx)
	switch {
	case err == nil:
		return StateOK
	case errors.Is(err, storage.ErrUnsupportedBackend):
		return StateNotImplemented
	case errors.Is(err, storage.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return StateUnavailable
	default:
		logger.Warnf("storage health probe failed: %v", err)
		return StateError
	}
}

func (r *Reporter) cacheState(ctx context.Context) string {
	if r.cache == nil || !r.cache.Enabled() {
		return StateDisabled
	}
	err := r.cache.Ping(ctx)
	switch {
	case err == nil:
		return StateOK
	case errors.Is(err, context.DeadlineExceeded):
		return StateUnavailable
	default:
		logger.Warnf("cache health probe failed: %v", err)
		return StateError
	}
}

// RegisterHealthRoute exposes the reporter at GET /health: 200 when healthy,
// 503 otherwise.
func RegisterHealthRoute(r *gin.Engine, rep *Reporter) {
	r.GET("/health", func(c *gin.Context) {
		report := rep.Check(c.Request.Context())
		status := http.StatusOK
		if report.Status != "healthy" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	})
}
