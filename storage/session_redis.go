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
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

var _ SessionDatabase = (*RedisSessionDatabase)(nil)

// RedisSessionDatabase is a SessionDatabase backed by Redis, so cached data is shared between wallet instances.
type RedisSessionDatabase struct {
	client     *redis.Client
	underlying *cache.Cache[string]
	prefix     string
}

// NewRedisSessionDatabase creates a new RedisSessionDatabase using an initialized redis.Client.
// All keys are prefixed with the given prefix.
func NewRedisSessionDatabase(client *redis.Client, prefix string) *RedisSessionDatabase {
	redisStore := redisstore.NewRedis(client)
	return &RedisSessionDatabase{
		client:     client,
		underlying: cache.New[string](redisStore),
		prefix:     prefix,
	}
}

func (s *RedisSessionDatabase) GetStore(ttl time.Duration, keys ...string) SessionStore {
	return SessionStoreImpl[string]{
		underlying: s.underlying,
		ttl:        ttl,
		prefixes:   keys,
		db:         s,
	}
}

func (s *RedisSessionDatabase) close() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *RedisSessionDatabase) getFullKey(prefixes []string, key string) string {
	if len(s.prefix) > 0 {
		prefixes = append([]string{s.prefix}, prefixes...)
	}
	return strings.Join(append(prefixes, key), ".")
}
