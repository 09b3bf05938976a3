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
	"encoding/json"
	"errors"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
)

var _ SessionStore = (*SessionStoreImpl[[]byte])(nil)

// SessionStoreImpl is a SessionStore backed by a gocache cache.
// The type parameter is the value type the underlying gocache store works with.
type SessionStoreImpl[T string | []byte] struct {
	underlying *cache.Cache[T]
	ttl        time.Duration
	prefixes   []string
	db         SessionDatabase
}

func (s SessionStoreImpl[T]) Delete(key string) error {
	err := s.underlying.Delete(context.Background(), s.db.getFullKey(s.prefixes, key))
	if err != nil && !errors.Is(err, store.NotFound{}) {
		return err
	}
	return nil
}

func (s SessionStoreImpl[T]) Exists(key string) bool {
	val, err := s.underlying.Get(context.Background(), s.db.getFullKey(s.prefixes, key))
	if err != nil {
		return false
	}
	return len(val) > 0
}

func (s SessionStoreImpl[T]) Get(key string, target interface{}) error {
	val, err := s.underlying.Get(context.Background(), s.db.getFullKey(s.prefixes, key))
	if err != nil {
		if errors.Is(err, store.NotFound{}) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(val), target)
}

func (s SessionStoreImpl[T]) Put(key string, value interface{}) error {
	return s.PutWithTTL(key, value, s.ttl)
}

func (s SessionStoreImpl[T]) PutWithTTL(key string, value interface{}, ttl time.Duration) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var options []store.Option
	if ttl > 0 {
		options = append(options, store.WithExpiration(ttl))
	}
	return s.underlying.Set(context.Background(), s.db.getFullKey(s.prefixes, key), T(bytes), options...)
}
