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
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testIssuerConfig struct {
	TokenEndpoint string `json:"token_endpoint"`
}

func TestSessionStore(t *testing.T) {
	databases := map[string]func(t *testing.T) SessionDatabase{
		"in-memory": func(t *testing.T) SessionDatabase {
			return NewInMemorySessionDatabase()
		},
		"redis": func(t *testing.T) SessionDatabase {
			server := miniredis.RunT(t)
			db := NewRedisSessionDatabase(redis.NewClient(&redis.Options{Addr: server.Addr()}), "session")
			t.Cleanup(db.close)
			return db
		},
	}
	for name, createDB := range databases {
		t.Run(name, func(t *testing.T) {
			t.Run("put and get", func(t *testing.T) {
				store := createDB(t).GetStore(time.Minute, "issuers")

				require.NoError(t, store.Put("issuer.example:5000", testIssuerConfig{TokenEndpoint: "http://issuer.example:5000/token"}))

				var actual testIssuerConfig
				require.NoError(t, store.Get("issuer.example:5000", &actual))
				assert.Equal(t, "http://issuer.example:5000/token", actual.TokenEndpoint)
				assert.True(t, store.Exists("issuer.example:5000"))
			})
			t.Run("get unknown key", func(t *testing.T) {
				store := createDB(t).GetStore(time.Minute, "issuers")

				var actual testIssuerConfig
				err := store.Get("unknown", &actual)

				assert.ErrorIs(t, err, ErrNotFound)
				assert.False(t, store.Exists("unknown"))
			})
			t.Run("delete", func(t *testing.T) {
				store := createDB(t).GetStore(0, "issuers")
				_ = store.Put("key", "value")

				require.NoError(t, store.Delete("key"))
				require.NoError(t, store.Delete("key"))

				assert.False(t, store.Exists("key"))
			})
			t.Run("stores with different prefixes are isolated", func(t *testing.T) {
				db := createDB(t)
				_ = db.GetStore(0, "a").Put("key", "value")

				assert.False(t, db.GetStore(0, "b").Exists("key"))
			})
			t.Run("value can't be marshalled", func(t *testing.T) {
				store := createDB(t).GetStore(0, "issuers")

				err := store.Put("key", make(chan int))

				assert.Error(t, err)
			})
		})
	}
}

func TestSessionStore_expiry(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		store := NewInMemorySessionDatabase().GetStore(0, "issuers")

		require.NoError(t, store.PutWithTTL("key", "value", 10*time.Millisecond))

		assert.Eventually(t, func() bool {
			return !store.Exists("key")
		}, time.Second, 10*time.Millisecond)
	})
	t.Run("redis", func(t *testing.T) {
		server := miniredis.RunT(t)
		db := NewRedisSessionDatabase(redis.NewClient(&redis.Options{Addr: server.Addr()}), "session")
		defer db.close()
		store := db.GetStore(time.Minute, "issuers")

		require.NoError(t, store.Put("key", "value"))
		server.FastForward(2 * time.Minute)

		assert.False(t, store.Exists("key"))
	})
	t.Run("redis entries without TTL don't expire", func(t *testing.T) {
		server := miniredis.RunT(t)
		db := NewRedisSessionDatabase(redis.NewClient(&redis.Options{Addr: server.Addr()}), "session")
		defer db.close()
		store := db.GetStore(0, "issuers")

		require.NoError(t, store.Put("key", "value"))
		server.FastForward(24 * time.Hour)

		assert.True(t, store.Exists("key"))
		assert.Equal(t, []string{"session.issuers.key"}, server.Keys())
	})
}

func TestInMemorySessionDatabase_Len(t *testing.T) {
	db := NewInMemorySessionDatabase()
	store := db.GetStore(0, "issuers")

	require.NoError(t, store.Put("fido.moi.gov.tw:5000", "config"))
	require.NoError(t, store.Put("land.moi.gov.tw:5001", "config"))

	assert.Equal(t, 2, db.Len())
	require.NoError(t, store.Delete("fido.moi.gov.tw:5000"))
	assert.Equal(t, 1, db.Len())
}

func TestRedisSessionDatabase_keys(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisSessionDatabase(client, "didholder").GetStore(0, "issuers")
	expectedKey := "didholder.issuers.land.moi.gov.tw:5001"

	t.Run("put without TTL", func(t *testing.T) {
		mock.ExpectSet(expectedKey, `"config"`, 0).SetVal("OK")

		require.NoError(t, store.Put("land.moi.gov.tw:5001", "config"))
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectGet(expectedKey).RedisNil()

		var actual string
		err := store.Get("land.moi.gov.tw:5001", &actual)

		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("connection failure is not reported as not found", func(t *testing.T) {
		mock.ExpectGet(expectedKey).SetErr(errors.New("connection reset by peer"))

		var actual string
		err := store.Get("land.moi.gov.tw:5001", &actual)

		assert.EqualError(t, err, "connection reset by peer")
		assert.NotErrorIs(t, err, ErrNotFound)
	})
	t.Run("broken JSON", func(t *testing.T) {
		mock.ExpectGet(expectedKey).SetVal("{")

		var actual string
		err := store.Get("land.moi.gov.tw:5001", &actual)

		assert.Error(t, err)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
