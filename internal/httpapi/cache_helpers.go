package httpapi

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FetchFunc loads a value from the primary source.
type FetchFunc[T any] func(ctx context.Context) (T, error)

const (
	refreshFetchTimeout = 15 * time.Second
	cacheSetTimeout     = 5 * time.Second
)

// jitteredTTL spreads expirations around the configured TTL so the hot keys
// written together do not expire in lockstep.
func jitteredTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	return ttl + time.Duration(rand.Intn(30)-15)*time.Second
}

// storeAsync writes a freshly fetched value behind the response path. A
// failed write only costs the next request a fetch, so it is logged and
// dropped.
func storeAsync[T any](c Cacher, key string, value T, ttl time.Duration, logger *zap.Logger) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheSetTimeout)
		defer cancel()

		if err := c.Set(ctx, key, value, jitteredTTL(ttl)); err != nil {
			logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

// keepWarm re-fetches a key that just served a hit so it stays fresh for the
// dashboard's polling interval. The singleflight group collapses concurrent
// hits into one refresh, and a short random delay keeps a burst of hits from
// lining refreshes up.
func keepWarm[T any](c Cacher, sf *singleflight.Group, key string, ttl time.Duration, logger *zap.Logger, fn FetchFunc[T]) {
	go func() {
		time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)

		_, _, _ = sf.Do(key+":warm", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), refreshFetchTimeout)
			defer cancel()

			value, err := fn(ctx)
			if err != nil {
				logger.Warn("cache refresh fetch failed", zap.String("key", key), zap.Error(err))
				return nil, err
			}

			storeAsync(c, key, value, ttl, logger)
			return value, nil
		})
	}()
}

// FindAndCache serves key from the cache when it can, falling back to fn.
// A hit also schedules a background refresh; a miss (or any cache error,
// treated the same) collapses concurrent callers through the singleflight
// group, fetches once, and repopulates the cache off the request path.
func FindAndCache[T any](
	ctx context.Context,
	c Cacher,
	sf *singleflight.Group,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn FetchFunc[T],
) (T, error) {
	var zero T
	if logger == nil {
		logger = zap.NewNop()
	}

	var cached T
	switch err := c.Get(ctx, key, &cached); {
	case err == nil:
		logger.Debug("cache hit", zap.String("key", key))
		keepWarm(c, sf, key, ttl, logger, fn)
		return cached, nil
	case !errors.Is(err, redis.Nil):
		logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := sf.Do(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		storeAsync(c, key, value, ttl, logger)
		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected cached type for key %q", key)
	}
	return value, nil
}
