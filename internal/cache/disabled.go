package cache

import (
	"context"
	"time"
)

// Disabled is the cache used when caching is administratively off (no host
// configured or CACHE_ENABLED=false). Every read misses, every write is a
// no-op, and the health check reports the distinct "disabled" state instead
// of an error.
type Disabled struct{}

func NewDisabled() Disabled { return Disabled{} }

func (Disabled) Get(context.Context, string) (string, bool) { return "", false }

func (Disabled) Set(context.Context, string, string, time.Duration) {}

func (Disabled) Delete(context.Context, string) {}

func (Disabled) Ping(context.Context) error { return nil }

func (Disabled) Enabled() bool { return false }
