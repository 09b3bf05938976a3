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

package events

import (
	"context"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nuts-foundation/didholder/events/log"
)

// Conn defines the methods required in the NATS connection structure
type Conn interface {
	Publish(subj string, data []byte) error
	Subscribe(subj string, cb nats.MsgHandler) (*nats.Subscription, error)
	Flush() error
	Close()
}

// ConnectionPool defines the interface for a NATS connection-pool
type ConnectionPool interface {
	// Acquire returns a NATS connection, connecting if there is no connection yet.
	Acquire(ctx context.Context) (Conn, error)
	// Shutdown closes the connection.
	Shutdown()
}

// NATSConnectionPool implements a thread-safe pool holding a single NATS connection
type NATSConnectionPool struct {
	url         string
	timeout     time.Duration
	conn        Conn
	mux         sync.Mutex
	connectFunc func(url string, options ...nats.Option) (Conn, error)
}

// NewNATSConnectionPool creates a new NATSConnectionPool for the server at the given URL
func NewNATSConnectionPool(url string, timeout time.Duration) *NATSConnectionPool {
	return &NATSConnectionPool{
		url:     url,
		timeout: timeout,
		connectFunc: func(url string, options ...nats.Option) (Conn, error) {
			return nats.Connect(url, options...)
		},
	}
}

// Acquire returns the NATS connection. Failed connection attempts are retried until the context is cancelled.
func (pool *NATSConnectionPool) Acquire(ctx context.Context) (Conn, error) {
	pool.mux.Lock()
	defer pool.mux.Unlock()
	if pool.conn != nil {
		return pool.conn, nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		conn, err := pool.connectFunc(pool.url, nats.Timeout(pool.timeout), nats.Name("didholder"))
		if err == nil {
			log.Logger().Debugf("Connected to NATS server at %s", pool.url)
			pool.conn = conn
			return conn, nil
		}
		log.Logger().WithError(err).Warnf("Unable to connect to NATS server at %s, retrying", pool.url)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

// Shutdown closes the connection, if any.
func (pool *NATSConnectionPool) Shutdown() {
	pool.mux.Lock()
	defer pool.mux.Unlock()
	if pool.conn != nil {
		pool.conn.Close()
		pool.conn = nil
	}
}
