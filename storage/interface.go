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
	"errors"
	"time"

	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/go-stoabs"
)

const lockAcquireTimeout = time.Second

// ErrNotFound is returned by a SessionStore when the requested key does not exist (or has expired).
var ErrNotFound = errors.New("not found")

// Engine defines the interface for the storage engine.
type Engine interface {
	core.Engine
	core.Named
	core.Configurable
	core.Runnable

	// GetProvider returns the Provider for the given module.
	GetProvider(moduleName string) Provider
	// GetSessionDatabase returns the SessionDatabase used for short-lived (cached) data.
	GetSessionDatabase() SessionDatabase
}

// Provider lets callers get access to stores.
type Provider interface {
	// GetKVStore returns a key-value store. Stores are identified by a name.
	// When identical name is passed the same store is returned.
	// Names must be alphanumeric, non-zero strings.
	GetKVStore(name string, class Class) (stoabs.KVStore, error)
}

// Class defines levels of storage reliability.
type Class int

const (
	// VolatileStorageClass means losing the storage has no/little implications due to data loss (e.g. caches).
	VolatileStorageClass Class = iota
	// PersistentStorageClass means losing the storage should never happen, because it has major implications.
	PersistentStorageClass = iota
)

type database interface {
	createStore(moduleName string, storeName string) (stoabs.KVStore, error)
	getClass() Class
	close()
}

// SessionDatabase is a non-persistent database that holds session (or cache) data on a KV basis.
type SessionDatabase interface {
	// GetStore returns a SessionStore with the given keys as key prefixes.
	// Entries put in the store expire after the given TTL. A TTL of 0 means entries don't expire.
	GetStore(ttl time.Duration, keys ...string) SessionStore
	// close stops any background processes and closes connections.
	close()
	// getFullKey returns the key as used in the underlying store.
	getFullKey(prefixes []string, key string) string
}

// SessionStore is a key-value store that holds session data.
// Values are marshalled to JSON.
type SessionStore interface {
	// Delete deletes the entry for the given key.
	// It does not return an error if the key does not exist.
	Delete(key string) error
	// Exists returns true if the key exists.
	Exists(key string) bool
	// Get returns the value for the given key. It returns ErrNotFound if the key does not exist.
	Get(key string, target interface{}) error
	// Put stores the given value for the given key, expiring after the store's TTL.
	Put(key string, value interface{}) error
	// PutWithTTL acts like Put, but overrides the store's TTL for this entry.
	PutWithTTL(key string, value interface{}, ttl time.Duration) error
}
