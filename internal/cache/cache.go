// Package cache provides the storefront read cache. Product detail and
// list payloads are cached in Redis under a configured key prefix; when
// caching is disabled or Redis is unreachable the service runs uncached.
package cache

import (
	"context"

	"github.com/JaimeStill/catalog-admin/internal/lifecycle"
)

// System caches rendered storefront payloads. Implementations must treat
// every operation as best-effort: failures degrade to cache misses, never
// to request errors.
type System interface {
	// Start connects the cache backend and registers lifecycle hooks.
	Start(lc *lifecycle.Coordinator) error

	// GetProduct returns the cached detail payload for a slug.
	GetProduct(ctx context.Context, slug string) ([]byte, bool)

	// SetProduct caches the detail payload for a slug.
	SetProduct(ctx context.Context, slug string, payload []byte)

	// GetList returns the cached list payload for a key built with ListKey.
	GetList(ctx context.Context, key string) ([]byte, bool)

	// SetList caches a list payload under the given key.
	SetList(ctx context.Context, key string, payload []byte)

	// InvalidateProducts removes the detail payloads for the given slugs
	// along with every cached list.
	InvalidateProducts(ctx context.Context, slugs ...string)

	// InvalidateAll removes every payload this cache has written.
	InvalidateAll(ctx context.Context)
}

type noop struct{}

// NewNoop returns a cache that stores nothing. Used when caching is
// disabled.
func NewNoop() System {
	return noop{}
}

func (noop) Start(lc *lifecycle.Coordinator) error { return nil }

func (noop) GetProduct(context.Context, string) ([]byte, bool) { return nil, false }

func (noop) SetProduct(context.Context, string, []byte) {}

func (noop) GetList(context.Context, string) ([]byte, bool) { return nil, false }

func (noop) SetList(context.Context, string, []byte) {}

func (noop) InvalidateProducts(context.Context, ...string) {}

func (noop) InvalidateAll(context.Context) {}
