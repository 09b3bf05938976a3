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
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNATSConnectionPool_Acquire(t *testing.T) {
	t.Run("fails when context was cancelled", func(t *testing.T) {
		pool := NewNATSConnectionPool("nats://localhost:4222", time.Second)
		pool.connectFunc = func(url string, options ...nats.Option) (Conn, error) {
			return nil, errors.New("random error")
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		conn, err := pool.Acquire(ctx)

		assert.Equal(t, context.Canceled, err)
		assert.Nil(t, conn)
	})
	t.Run("connection should be retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockConn := NewMockConn(ctrl)
		attempts := 0

		pool := NewNATSConnectionPool("nats://localhost:4222", time.Second)
		pool.connectFunc = func(url string, options ...nats.Option) (Conn, error) {
			attempts++
			if attempts > 1 {
				return mockConn, nil
			}
			return nil, errors.New("random error")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		conn, err := pool.Acquire(ctx)

		require.NoError(t, err)
		assert.Same(t, mockConn, conn)
		assert.Equal(t, 2, attempts)
	})
	t.Run("connection is reused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockConn := NewMockConn(ctrl)
		attempts := 0
		pool := NewNATSConnectionPool("nats://localhost:4222", time.Second)
		pool.connectFunc = func(url string, options ...nats.Option) (Conn, error) {
			attempts++
			return mockConn, nil
		}

		_, _ = pool.Acquire(context.Background())
		_, _ = pool.Acquire(context.Background())

		assert.Equal(t, 1, attempts)
	})
}

func TestNATSConnectionPool_Shutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConn := NewMockConn(ctrl)
	mockConn.EXPECT().Close()
	pool := NewNATSConnectionPool("nats://localhost:4222", time.Second)
	pool.connectFunc = func(url string, options ...nats.Option) (Conn, error) {
		return mockConn, nil
	}
	_, _ = pool.Acquire(context.Background())

	pool.Shutdown()
	// second shutdown is a no-op
	pool.Shutdown()
}
