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
	"context"
	"path"
	"strings"

	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/storage/log"
	"github.com/nuts-foundation/go-stoabs"
	"github.com/nuts-foundation/go-stoabs/redis7"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type redisDatabase struct {
	databaseName string
	options      *redis.Options
}

func (r RedisConfig) parse() (*redis.Options, error) {
	// Plain host:port addresses are treated as TCP
	addr := r.Address
	if !isRedisURL(addr) {
		addr = "redis://" + addr
	}
	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, err
	}
	if len(r.Username) > 0 {
		opts.Username = r.Username
	}
	if len(r.Password) > 0 {
		opts.Password = r.Password
	}
	return opts, nil
}

func createRedisDatabase(config RedisConfig) (*redisDatabase, error) {
	opts, err := config.parse()
	if err != nil {
		return nil, err
	}
	return &redisDatabase{
		options:      opts,
		databaseName: config.Database,
	}, nil
}

func isRedisURL(address string) bool {
	return strings.HasPrefix(address, "redis://") ||
		strings.HasPrefix(address, "rediss://") ||
		strings.HasPrefix(address, "unix://")
}

func (b redisDatabase) prefix(parts ...string) string {
	var prefixParts []string
	if len(b.databaseName) > 0 {
		prefixParts = append(prefixParts, b.databaseName)
	}
	prefixParts = append(prefixParts, parts...)
	return strings.ToLower(strings.Join(prefixParts, "_"))
}

func (b redisDatabase) createStore(moduleName string, storeName string) (stoabs.KVStore, error) {
	log.Logger().
		WithField(core.LogFieldStore, path.Join(moduleName, storeName)).
		Debug("Creating Redis store")
	return redis7.CreateRedisStore(b.prefix(moduleName, storeName), b.options, stoabs.WithLockAcquireTimeout(lockAcquireTimeout))
}

// createSessionDatabase returns a SessionDatabase that shares the Redis server with the KV stores.
func (b redisDatabase) createSessionDatabase() *RedisSessionDatabase {
	return NewRedisSessionDatabase(redis.NewClient(b.options), b.prefix("session"))
}

func (b redisDatabase) getClass() Class {
	return PersistentStorageClass
}

func (b redisDatabase) close() {
	// Nothing to do
}

// redisLogWriter is a wrapper to redirect redis log to our logger
type redisLogWriter struct {
	logger *logrus.Entry
}

// Printf expects entries in the form:
// redis: pool.go:120: connection pool: failed to dial after 5 attempts
// All logs are written as Warning
func (t redisLogWriter) Printf(_ context.Context, format string, v ...interface{}) {
	t.logger.Warnf(format, v...)
}
