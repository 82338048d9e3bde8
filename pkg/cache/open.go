package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/folio/pkg/observability"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options select and configure a backend for Open.
type Options struct {
	Backend string
	Dir     string
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open returns the configured backend. Network backends are retried with
// backoff while unreachable.
func Open(ctx context.Context, o Options) (Cache, error) {
	switch o.Backend {
	case "", BackendFile:
		dir := o.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
			dir = d
		}
		return NewFileCache(dir)
	case BackendNone:
		return NewNullCache(), nil
	case BackendRedis:
		var c *RedisCache
		err := RetryWithBackoff(ctx, func() error {
			var err error
			c, err = NewRedisCache(ctx, o.Redis)
			return Retryable(err)
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		var c *MongoCache
		err := RetryWithBackoff(ctx, func() error {
			var err error
			c, err = NewMongoCache(ctx, o.Mongo)
			return Retryable(err)
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", o.Backend)
	}
}

// Instrumented wraps a cache and reports hits, misses and writes to the
// observability cache hooks.
func Instrumented(c Cache) Cache { return instrumented{c} }

type instrumented struct{ Cache }

func (i instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := i.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, KindOf(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KindOf(key))
		}
	}
	return data, hit, err
}

func (i instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := i.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KindOf(key), len(data))
	}
	return err
}
