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

package storage

import (
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/store/go_cache/v4"
	gocacheclient "github.com/patrickmn/go-cache"
)

var _ SessionDatabase = (*InMemorySessionDatabase)(nil)

// InMemorySessionDatabase holds session data (e.g. cached issuer configurations) in process memory.
// Entries without TTL live until the process stops, expired entries are pruned periodically.
type InMemorySessionDatabase struct {
	client     *gocacheclient.Cache
	underlying *cache.Cache[[]byte]
}

// NewInMemorySessionDatabase creates a new in memory session database, pruned at the default interval.
func NewInMemorySessionDatabase() *InMemorySessionDatabase {
	return newInMemorySessionDatabase(DefaultConfig().Session.PruneInterval)
}

func newInMemorySessionDatabase(pruneInterval time.Duration) *InMemorySessionDatabase {
	client := gocacheclient.New(gocacheclient.NoExpiration, pruneInterval)
	return &InMemorySessionDatabase{
		client:     client,
		underlying: cache.New[[]byte](go_cache.NewGoCache(client)),
	}
}

// Len returns the number of entries, including expired entries that have not been pruned yet.
func (s *InMemorySessionDatabase) Len() int {
	return s.client.ItemCount()
}

func (s *InMemorySessionDatabase) GetStore(ttl time.Duration, keys ...string) SessionStore {
	return SessionStoreImpl[[]byte]{
		underlying: s.underlying,
		ttl:        ttl,
		prefixes:   keys,
		db:         s,
	}
}

func (s *InMemorySessionDatabase) close() {
	s.client.Flush()
}

func (s *InMemorySessionDatabase) getFullKey(prefixes []string, key string) string {
	return strings.Join(append(prefixes, key), "/")
}
