/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package openid4vci

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nuts-foundation/didholder/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func newTestCache(ttl time.Duration) *ConfigCache {
	return NewConfigCache(storage.NewInMemorySessionDatabase().GetStore(0, "issuers"), ttl)
}

func staticFetcher(config IssuerConfig, maxAge time.Duration, calls *atomic.Int32) ConfigFetcher {
	return func(_ context.Context) (*IssuerConfig, time.Duration, error) {
		calls.Inc()
		result := config
		return &result, maxAge, nil
	}
}

func TestConfigCache_Get(t *testing.T) {
	ctx := context.Background()
	config := IssuerConfig{CredentialIssuer: "http://issuer.example", TokenEndpoint: "http://issuer.example/token", CredentialEndpoint: "http://issuer.example/credential"}

	t.Run("fetches once, then served from cache", func(t *testing.T) {
		cache := newTestCache(0)
		calls := atomic.NewInt32(0)

		first, err := cache.Get(ctx, "issuer.example", staticFetcher(config, 0, calls))
		require.NoError(t, err)
		second, err := cache.Get(ctx, "issuer.example", staticFetcher(config, 0, calls))
		require.NoError(t, err)

		assert.Equal(t, config, *first)
		assert.Equal(t, config, *second)
		assert.Equal(t, int32(1), calls.Load())
	})
	t.Run("domains are cached separately", func(t *testing.T) {
		cache := newTestCache(0)
		calls := atomic.NewInt32(0)

		_, _ = cache.Get(ctx, "a.example", staticFetcher(config, 0, calls))
		_, _ = cache.Get(ctx, "b.example", staticFetcher(config, 0, calls))

		assert.Equal(t, int32(2), calls.Load())
	})
	t.Run("failures are not cached", func(t *testing.T) {
		cache := newTestCache(0)
		calls := atomic.NewInt32(0)
		failing := func(_ context.Context) (*IssuerConfig, time.Duration, error) {
			calls.Inc()
			return nil, 0, errors.New("failed")
		}

		_, err := cache.Get(ctx, "issuer.example", failing)
		assert.EqualError(t, err, "failed")
		_, err = cache.Get(ctx, "issuer.example", failing)
		assert.EqualError(t, err, "failed")

		assert.Equal(t, int32(2), calls.Load())
	})
	t.Run("concurrent misses result in a single fetch", func(t *testing.T) {
		cache := newTestCache(0)
		calls := atomic.NewInt32(0)
		release := make(chan struct{})
		slow := func(_ context.Context) (*IssuerConfig, time.Duration, error) {
			calls.Inc()
			<-release
			result := config
			return &result, 0, nil
		}

		wg := sync.WaitGroup{}
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				actual, err := cache.Get(ctx, "issuer.example", slow)
				assert.NoError(t, err)
				assert.Equal(t, config, *actual)
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})
	t.Run("canceling the first caller does not fail callers waiting on the same fetch", func(t *testing.T) {
		cache := newTestCache(0)
		started := make(chan struct{})
		release := make(chan struct{})
		slow := func(fetchCtx context.Context) (*IssuerConfig, time.Duration, error) {
			close(started)
			<-release
			if err := fetchCtx.Err(); err != nil {
				return nil, 0, err
			}
			result := config
			return &result, 0, nil
		}
		firstCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		wg := sync.WaitGroup{}
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := cache.Get(firstCtx, "issuer.example", slow)
			assert.NoError(t, err)
		}()
		<-started
		go func() {
			defer wg.Done()
			actual, err := cache.Get(ctx, "issuer.example", slow)
			assert.NoError(t, err)
			if assert.NotNil(t, actual) {
				assert.Equal(t, config, *actual)
			}
		}()
		time.Sleep(50 * time.Millisecond)
		cancel()
		close(release)
		wg.Wait()
	})
	t.Run("configured TTL expires entries", func(t *testing.T) {
		cache := newTestCache(50 * time.Millisecond)
		calls := atomic.NewInt32(0)

		_, _ = cache.Get(ctx, "issuer.example", staticFetcher(config, 0, calls))
		time.Sleep(100 * time.Millisecond)
		_, _ = cache.Get(ctx, "issuer.example", staticFetcher(config, 0, calls))

		assert.Equal(t, int32(2), calls.Load())
	})
	t.Run("max age of the response overrides configured TTL", func(t *testing.T) {
		cache := newTestCache(time.Hour)
		calls := atomic.NewInt32(0)

		_, _ = cache.Get(ctx, "issuer.example", staticFetcher(config, 50*time.Millisecond, calls))
		time.Sleep(100 * time.Millisecond)
		_, _ = cache.Get(ctx, "issuer.example", staticFetcher(config, 50*time.Millisecond, calls))

		assert.Equal(t, int32(2), calls.Load())
	})
	t.Run("max age of the response is ignored without configured TTL", func(t *testing.T) {
		cache := newTestCache(0)
		calls := atomic.NewInt32(0)

		_, _ = cache.Get(ctx, "issuer.example", staticFetcher(config, 50*time.Millisecond, calls))
		time.Sleep(100 * time.Millisecond)
		_, _ = cache.Get(ctx, "issuer.example", staticFetcher(config, 50*time.Millisecond, calls))

		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestConfigCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(0)
	calls := atomic.NewInt32(0)
	fetch := staticFetcher(IssuerConfig{TokenEndpoint: "t", CredentialEndpoint: "c"}, 0, calls)
	_, _ = cache.Get(ctx, "a.example", fetch)
	_, _ = cache.Get(ctx, "b.example", fetch)

	require.NoError(t, cache.Invalidate("a.example"))
	_, _ = cache.Get(ctx, "a.example", fetch)
	_, _ = cache.Get(ctx, "b.example", fetch)

	assert.Equal(t, int32(3), calls.Load())
}

func TestConfigCache_Clear(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(0)
	calls := atomic.NewInt32(0)
	fetch := staticFetcher(IssuerConfig{TokenEndpoint: "t", CredentialEndpoint: "c"}, 0, calls)
	_, _ = cache.Get(ctx, "a.example", fetch)
	_, _ = cache.Get(ctx, "b.example", fetch)

	require.NoError(t, cache.Clear())
	_, _ = cache.Get(ctx, "a.example", fetch)
	_, _ = cache.Get(ctx, "b.example", fetch)

	assert.Equal(t, int32(4), calls.Load())
}
