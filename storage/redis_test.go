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
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nuts-foundation/go-stoabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_redisDatabase_createStore(t *testing.T) {
	ctx := context.Background()

	t.Run("with database prefix", func(t *testing.T) {
		redis := miniredis.RunT(t)
		db, err := createRedisDatabase(RedisConfig{Address: redis.Addr(), Database: "db"})
		require.NoError(t, err)

		store, err := db.createStore("vcr", "wallet")
		require.NoError(t, err)
		defer store.Close(ctx)

		_ = store.WriteShelf(ctx, "wallet", func(writer stoabs.Writer) error {
			return writer.Put(stoabs.BytesKey("msg"), []byte("Hello, World!"))
		})
		assert.Equal(t, []string{"db_vcr_wallet:wallet.6d7367"}, redis.Keys())
	})
	t.Run("without database prefix", func(t *testing.T) {
		redis := miniredis.RunT(t)
		db, err := createRedisDatabase(RedisConfig{Address: redis.Addr()})
		require.NoError(t, err)

		store, err := db.createStore("auth", "session")
		require.NoError(t, err)
		defer store.Close(ctx)

		_ = store.WriteShelf(ctx, "auth", func(writer stoabs.Writer) error {
			return writer.Put(stoabs.BytesKey("msg"), []byte("Hello, World!"))
		})
		assert.Equal(t, []string{"auth_session:auth.6d7367"}, redis.Keys())
	})
}

func TestRedisConfig_parse(t *testing.T) {
	t.Run("host:port address", func(t *testing.T) {
		opts, err := RedisConfig{Address: "localhost:6379", Username: "user", Password: "secret"}.parse()

		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", opts.Addr)
		assert.Equal(t, "user", opts.Username)
		assert.Equal(t, "secret", opts.Password)
	})
	t.Run("URL address", func(t *testing.T) {
		opts, err := RedisConfig{Address: "redis://localhost:6380/2"}.parse()

		require.NoError(t, err)
		assert.Equal(t, "localhost:6380", opts.Addr)
		assert.Equal(t, 2, opts.DB)
	})
	t.Run("invalid URL", func(t *testing.T) {
		_, err := RedisConfig{Address: "redis://localhost:6379/notanumber"}.parse()

		assert.Error(t, err)
	})
}

func TestRedisConfig_IsConfigured(t *testing.T) {
	assert.False(t, RedisConfig{}.IsConfigured())
	assert.True(t, RedisConfig{Address: "something"}.IsConfigured())
}

func Test_redisDatabase_getClass(t *testing.T) {
	assert.Equal(t, Class(PersistentStorageClass), redisDatabase{}.getClass())
}
