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
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/storage/log"
	"github.com/nuts-foundation/go-stoabs"
	"github.com/redis/go-redis/v9"
)

const storeShutdownTimeout = 5 * time.Second

var storeNameRegex = regexp.MustCompile(`^[a-z0-9]+$`)

var _ core.Injectable = (*engine)(nil)
var _ core.Diagnosable = (*engine)(nil)

// New creates a new instance of the storage engine.
func New() Engine {
	return &engine{
		stores: map[string]stoabs.KVStore{},
		config: DefaultConfig(),
	}
}

type engine struct {
	datadir         string
	storesMux       sync.Mutex
	stores          map[string]stoabs.KVStore
	databases       []database
	sessionDatabase SessionDatabase
	config          Config
}

// Name returns the name of the storage engine.
func (e *engine) Name() string {
	return "Storage"
}

// Config returns a pointer to the config of the storage engine.
func (e *engine) Config() interface{} {
	return &e.config
}

// Start does nothing for this engine: stores are opened on first use.
func (e *engine) Start() error {
	return nil
}

// Shutdown closes all stores and databases.
func (e *engine) Shutdown() error {
	e.storesMux.Lock()
	defer e.storesMux.Unlock()

	failures := false
	for storeName, store := range e.stores {
		ctx, cancel := context.WithTimeout(context.Background(), storeShutdownTimeout)
		err := store.Close(ctx)
		cancel()
		if err != nil {
			log.Logger().
				WithError(err).
				WithField(core.LogFieldStore, storeName).
				Error("Failed to close store")
			failures = true
		}
	}
	for _, db := range e.databases {
		db.close()
	}
	if e.sessionDatabase != nil {
		e.sessionDatabase.close()
	}
	if failures {
		return errors.New("one or more stores failed to close")
	}
	return nil
}

// Configure sets up the databases: BBolt in the data directory, Redis when configured.
func (e *engine) Configure(config core.ServerConfig) error {
	e.datadir = config.Datadir
	if !e.config.Redis.IsConfigured() && e.config.Session.PruneInterval <= 0 {
		return errors.New("storage.session.pruneinterval must be positive")
	}

	bboltDB, err := createBBoltDatabase(config.Datadir, e.config.BBolt)
	if err != nil {
		return fmt.Errorf("unable to configure BBolt database: %w", err)
	}
	e.databases = append(e.databases, bboltDB)

	if e.config.Redis.IsConfigured() {
		redisDB, err := createRedisDatabase(e.config.Redis)
		if err != nil {
			return fmt.Errorf("unable to configure Redis database: %w", err)
		}
		e.databases = append(e.databases, redisDB)
		redis.SetLogger(redisLogWriter{logger: log.Logger()})
		e.sessionDatabase = redisDB.createSessionDatabase()
		log.Logger().Info("Redis database support enabled.")
	} else {
		e.sessionDatabase = newInMemorySessionDatabase(e.config.Session.PruneInterval)
	}
	return nil
}

// GetProvider returns the Provider for the given module.
func (e *engine) GetProvider(moduleName string) Provider {
	return &provider{
		moduleName: strings.ToLower(moduleName),
		engine:     e,
	}
}

// GetSessionDatabase returns the SessionDatabase; in-memory unless Redis is configured.
func (e *engine) GetSessionDatabase() SessionDatabase {
	return e.sessionDatabase
}

// Diagnostics returns the names of the opened stores and the session database in use.
func (e *engine) Diagnostics() []core.DiagnosticResult {
	e.storesMux.Lock()
	defer e.storesMux.Unlock()
	var names []string
	for name := range e.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	results := []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "stores", Value: strings.Join(names, ",")},
	}
	switch db := e.sessionDatabase.(type) {
	case *RedisSessionDatabase:
		results = append(results, &core.GenericDiagnosticResult{Title: "session_database", Value: "redis"})
	case *InMemorySessionDatabase:
		results = append(results,
			&core.GenericDiagnosticResult{Title: "session_database", Value: "in-memory"},
			&core.GenericDiagnosticResult{Title: "session_entries", Value: db.Len()})
	}
	return results
}

type provider struct {
	moduleName string
	engine     *engine
}

func (p *provider) GetKVStore(name string, class Class) (stoabs.KVStore, error) {
	p.engine.storesMux.Lock()
	defer p.engine.storesMux.Unlock()

	if len(p.moduleName) == 0 || !storeNameRegex.MatchString(p.moduleName) {
		return nil, errors.New("invalid store moduleName")
	}
	if len(name) == 0 || !storeNameRegex.MatchString(name) {
		return nil, errors.New("invalid store name")
	}

	if len(p.engine.databases) == 0 {
		return nil, errors.New("storage engine is not configured")
	}
	db := p.getDatabase(class)
	if db == nil {
		// No database matches the requested reliability, fall back to the default (BBolt)
		db = p.engine.databases[0]
	}

	storeName := db.getClass().String() + "/" + p.moduleName + "/" + name
	if store, ok := p.engine.stores[storeName]; ok {
		return store, nil
	}
	store, err := db.createStore(p.moduleName, name)
	if err == nil {
		p.engine.stores[storeName] = store
	}
	return store, err
}

// getDatabase returns the database of the given class or a more reliable one. It returns nil when none is configured.
func (p *provider) getDatabase(class Class) database {
	for _, db := range p.engine.databases {
		if db.getClass() >= class {
			return db
		}
	}
	return nil
}

func (c Class) String() string {
	switch c {
	case PersistentStorageClass:
		return "persistent"
	default:
		return "volatile"
	}
}
