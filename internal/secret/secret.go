// Package secret resolves named secrets for the document service.
//
// The only consumer today is the cache credential lookup. Resolution never
// fails from the caller's perspective: when no provider is configured, or the
// configured provider errors, the named secret falls back to a deterministic
// environment variable ("redis-password" -> REDIS_PASSWORD) and finally to the
// empty string.
package secret

import (
	"context"
	"os"
	"strings"

	"github.com/docstore/document-service/pkg/logger"
)

// Provider resolves a secret reference to its value.
// Implementations must be safe for concurrent use and must not log secret values.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, name string) (string, error)
}

// Resolver wraps an optional Provider with the env fallback contract.
// A zero Resolver is usable and resolves from the environment only.
type Resolver struct {
	provider Provider
}

// NewResolver returns a Resolver backed by the given provider. Provider may be nil.
func NewResolver(p Provider) *Resolver {
	return &Resolver{provider: p}
}

// Resolve returns the secret value for name. It never returns an error:
// provider failures degrade to the environment fallback, a missing
// environment variable degrades to "".
func (r *Resolver) Resolve(ctx context.Context, name string) string {
	if r != nil && r.provider != nil {
		v, err := r.provider.Resolve(ctx, name)
		if err == nil && v != "" {
			return v
		}
		if err != nil {
			logger.Warnf("secret provider %s failed for %q, falling back to environment: %v", r.provider.Name(), name, err)
		}
	}
	return os.Getenv(EnvKey(name))
}

// EnvKey maps a secret name to its fallback environment variable:
// uppercased, dashes replaced with underscores.
func EnvKey(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// EnvProvider resolves secrets directly from the environment. It exists so
// deployments without a real secret manager still satisfy the Provider shape.
type EnvProvider struct{}

func (EnvProvider) Name() string { return "env" }

func (EnvProvider) Resolve(_ context.Context, name string) (string, error) {
	return os.Getenv(EnvKey(name)), nil
}
