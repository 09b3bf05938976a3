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
	"time"

	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/storage"
	"github.com/nuts-foundation/didholder/vcr/log"
	"golang.org/x/sync/singleflight"
)

// ConfigFetcher retrieves the discovery document of an issuer.
// Next to the document it returns how long the issuer allows it to be cached (0 if unknown).
type ConfigFetcher func(ctx context.Context) (*IssuerConfig, time.Duration, error)

// ConfigCache caches issuer discovery documents by issuer domain.
// Concurrent lookups of the same uncached domain result in a single fetch.
type ConfigCache struct {
	store storage.SessionStore
	// ttl is the configured lifetime of entries, 0 means entries live as long as the process.
	ttl     time.Duration
	group   singleflight.Group
	mux     sync.Mutex
	domains map[string]struct{}
}

// NewConfigCache creates a ConfigCache on top of the given store.
func NewConfigCache(store storage.SessionStore, ttl time.Duration) *ConfigCache {
	return &ConfigCache{
		store:   store,
		ttl:     ttl,
		domains: map[string]struct{}{},
	}
}

// Get returns the cached configuration of the given domain, or calls fetch and caches its result.
// Failed fetches are not cached.
func (c *ConfigCache) Get(ctx context.Context, domain string, fetch ConfigFetcher) (*IssuerConfig, error) {
	var cached IssuerConfig
	err := c.store.Get(domain, &cached)
	if err == nil {
		configCacheLookups.WithLabelValues("hit").Inc()
		log.Logger().
			WithField(core.LogFieldIssuerDomain, domain).
			Trace("Using cached issuer configuration")
		return &cached, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		log.Logger().
			WithError(err).
			WithField(core.LogFieldIssuerDomain, domain).
			Warn("Unable to read issuer configuration from cache")
	}
	configCacheLookups.WithLabelValues("miss").Inc()

	// the fetch is shared with other callers, so it must outlive the context of the caller that started it
	fetchCtx := context.WithoutCancel(ctx)
	result, err, _ := c.group.Do(domain, func() (interface{}, error) {
		config, maxAge, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.put(domain, config, maxAge)
		return config, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*IssuerConfig), nil
}

func (c *ConfigCache) put(domain string, config *IssuerConfig, maxAge time.Duration) {
	ttl := c.ttl
	if ttl > 0 && maxAge > 0 {
		ttl = maxAge
	}
	if err := c.store.PutWithTTL(domain, config, ttl); err != nil {
		log.Logger().
			WithError(err).
			WithField(core.LogFieldIssuerDomain, domain).
			Warn("Unable to cache issuer configuration")
		return
	}
	c.mux.Lock()
	c.domains[domain] = struct{}{}
	c.mux.Unlock()
}

// Invalidate removes the configuration of the given domain from the cache.
func (c *ConfigCache) Invalidate(domain string) error {
	c.mux.Lock()
	delete(c.domains, domain)
	c.mux.Unlock()
	return c.store.Delete(domain)
}

// Clear removes all configurations cached by this process.
func (c *ConfigCache) Clear() error {
	c.mux.Lock()
	domains := c.domains
	c.domains = map[string]struct{}{}
	c.mux.Unlock()

	var errs []error
	for domain := range domains {
		if err := c.store.Delete(domain); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
