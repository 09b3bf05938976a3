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

package auth

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/nuts-foundation/didholder/audit"
	"github.com/nuts-foundation/didholder/events"
	"github.com/nuts-foundation/go-stoabs"
	"github.com/nuts-foundation/go-stoabs/bbolt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

func newKVStore(t *testing.T) stoabs.KVStore {
	kvStore, err := bbolt.CreateBBoltStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = kvStore.Close(context.Background())
	})
	return kvStore
}

func testSigner(seed byte) *KeyFileSigner {
	seedBytes := make([]byte, ed25519.SeedSize)
	seedBytes[0] = seed
	return NewKeyFileSigner(ed25519.NewKeyFromSeed(seedBytes))
}

func newTestManager(kvStore stoabs.KVStore, notifier events.Notifier) *SessionManager {
	manager := NewSessionManager(kvStore, notifier, DIDMethodPKH, 7*24*time.Hour)
	manager.now = func() time.Time {
		return testNow
	}
	return manager
}

func readStoredSession(t *testing.T, kvStore stoabs.KVStore) *Session {
	manager := newTestManager(kvStore, nil)
	session, err := manager.readSession(context.Background())
	require.NoError(t, err)
	return session
}

type failingSigner struct {
	publicKey ed25519.PublicKey
	signature []byte
	err       error
}

func (f failingSigner) PublicKey() ed25519.PublicKey {
	return f.publicKey
}

func (f failingSigner) SignMessage(_ context.Context, _ []byte) ([]byte, error) {
	return f.signature, f.err
}

func TestSessionManager_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		capturedLog := audit.CaptureLogs(t)
		kvStore := newKVStore(t)
		manager := newTestManager(kvStore, nil)
		signer := testSigner(1)
		require.NoError(t, manager.SetSigner(ctx, signer))
		expectedDID := "did:pkh:solana:" + base58.Encode(signer.PublicKey())

		ok, err := manager.Authenticate(audit.TestContext())

		require.NoError(t, err)
		assert.True(t, ok)
		capturedLog.AssertContains(t, audit.WalletAuthenticatedEvent, audit.TestActor, "Wallet authenticated")
		assert.Equal(t, State{DID: expectedDID, IsAuthenticated: true}, manager.State())
		session := readStoredSession(t, kvStore)
		require.NotNil(t, session)
		assert.Equal(t, base58.Encode(signer.PublicKey()), session.PublicKey)
		assert.Equal(t, expectedDID, session.DID)
		assert.Equal(t, testNow.UnixMilli(), session.Timestamp)
		assert.Equal(t, testNow.Add(7*24*time.Hour).UnixMilli(), session.ExpiresAt)
		signature, err := base64.StdEncoding.DecodeString(session.Signature)
		require.NoError(t, err)
		message := fmt.Sprintf("authenticate:%s:%d", expectedDID, testNow.UnixMilli())
		assert.True(t, ed25519.Verify(signer.PublicKey(), []byte(message), signature))
	})
	t.Run("publishes change", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := events.NewMockNotifier(ctrl)
		manager := newTestManager(newKVStore(t), notifier)
		signer := testSigner(1)
		require.NoError(t, manager.SetSigner(ctx, signer))
		expected, _ := json.Marshal(sessionNotification{DID: "did:pkh:solana:" + base58.Encode(signer.PublicKey())})
		notifier.EXPECT().Publish(gomock.Any(), events.SessionChangedSubject, expected).Return(nil)

		ok, err := manager.Authenticate(ctx)

		require.NoError(t, err)
		assert.True(t, ok)
	})
	t.Run("no wallet connected", func(t *testing.T) {
		manager := newTestManager(newKVStore(t), nil)

		ok, err := manager.Authenticate(ctx)

		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
		assert.ErrorIs(t, err, ErrWalletNotConnected)
	})
	t.Run("wallet without public key", func(t *testing.T) {
		manager := newTestManager(newKVStore(t), nil)
		require.NoError(t, manager.SetSigner(ctx, failingSigner{}))

		ok, err := manager.Authenticate(ctx)

		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrWalletNotConnected)
	})
	t.Run("signing refused", func(t *testing.T) {
		kvStore := newKVStore(t)
		manager := newTestManager(kvStore, nil)
		require.NoError(t, manager.SetSigner(ctx, failingSigner{publicKey: testSigner(1).PublicKey(), err: errors.New("user rejected")}))

		ok, err := manager.Authenticate(ctx)

		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
		assert.ErrorContains(t, err, "user rejected")
		assert.False(t, manager.State().IsAuthenticated)
		assert.False(t, manager.State().AuthLoading)
		assert.Nil(t, readStoredSession(t, kvStore))
	})
	t.Run("empty signature", func(t *testing.T) {
		manager := newTestManager(newKVStore(t), nil)
		require.NoError(t, manager.SetSigner(ctx, failingSigner{publicKey: testSigner(1).PublicKey()}))

		ok, err := manager.Authenticate(ctx)

		assert.False(t, ok)
		assert.ErrorContains(t, err, "wallet returned an empty signature")
	})
	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		kvStore := stoabs.NewMockKVStore(ctrl)
		kvStore.EXPECT().ReadShelf(gomock.Any(), sessionShelf, gomock.Any()).Return(nil)
		kvStore.EXPECT().WriteShelf(gomock.Any(), sessionShelf, gomock.Any()).Return(errors.New("disk full"))
		manager := newTestManager(kvStore, nil)
		require.NoError(t, manager.SetSigner(ctx, testSigner(1)))

		ok, err := manager.Authenticate(ctx)

		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestSessionManager_Revalidate(t *testing.T) {
	ctx := context.Background()
	signer := testSigner(1)

	authenticatedStore := func(t *testing.T) stoabs.KVStore {
		kvStore := newKVStore(t)
		manager := newTestManager(kvStore, nil)
		require.NoError(t, manager.SetSigner(ctx, signer))
		_, err := manager.Authenticate(ctx)
		require.NoError(t, err)
		return kvStore
	}

	t.Run("no stored session", func(t *testing.T) {
		manager := newTestManager(newKVStore(t), nil)

		require.NoError(t, manager.Revalidate(ctx, signer.PublicKey()))

		assert.False(t, manager.State().IsAuthenticated)
		assert.NotEmpty(t, manager.State().DID)
	})
	t.Run("valid session is restored without signing", func(t *testing.T) {
		kvStore := authenticatedStore(t)
		manager := newTestManager(kvStore, nil)

		require.NoError(t, manager.SetSigner(ctx, failingSigner{publicKey: signer.PublicKey(), err: errors.New("must not sign")}))

		assert.True(t, manager.State().IsAuthenticated)
	})
	t.Run("session of another wallet is cleared", func(t *testing.T) {
		kvStore := authenticatedStore(t)
		manager := newTestManager(kvStore, nil)

		require.NoError(t, manager.Revalidate(ctx, testSigner(2).PublicKey()))

		assert.False(t, manager.State().IsAuthenticated)
		assert.Nil(t, readStoredSession(t, kvStore))
	})
	t.Run("session expired 1 ms ago is cleared", func(t *testing.T) {
		kvStore := authenticatedStore(t)
		manager := newTestManager(kvStore, nil)
		manager.now = func() time.Time {
			return testNow.Add(7*24*time.Hour + time.Millisecond)
		}

		require.NoError(t, manager.Revalidate(ctx, signer.PublicKey()))

		assert.False(t, manager.State().IsAuthenticated)
		assert.Nil(t, readStoredSession(t, kvStore))
	})
	t.Run("session expiring exactly now is cleared", func(t *testing.T) {
		kvStore := authenticatedStore(t)
		manager := newTestManager(kvStore, nil)
		manager.now = func() time.Time {
			return testNow.Add(7 * 24 * time.Hour)
		}

		require.NoError(t, manager.Revalidate(ctx, signer.PublicKey()))

		assert.False(t, manager.State().IsAuthenticated)
	})
	t.Run("disconnecting the wallet resets the state but keeps the session", func(t *testing.T) {
		kvStore := authenticatedStore(t)
		manager := newTestManager(kvStore, nil)
		require.NoError(t, manager.SetSigner(ctx, signer))

		require.NoError(t, manager.SetSigner(ctx, nil))

		assert.Equal(t, State{}, manager.State())
		assert.NotNil(t, readStoredSession(t, kvStore))
	})
	t.Run("corrupt session is cleared", func(t *testing.T) {
		kvStore := newKVStore(t)
		err := kvStore.WriteShelf(ctx, sessionShelf, func(writer stoabs.Writer) error {
			return writer.Put(stoabs.BytesKey(sessionKey), []byte("{not json"))
		})
		require.NoError(t, err)
		manager := newTestManager(kvStore, nil)

		require.NoError(t, manager.SetSigner(ctx, signer))

		assert.False(t, manager.State().IsAuthenticated)
		assert.False(t, manager.State().AuthLoading)
		assert.Nil(t, readStoredSession(t, kvStore))
	})
	t.Run("read failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		kvStore := stoabs.NewMockKVStore(ctrl)
		kvStore.EXPECT().ReadShelf(gomock.Any(), sessionShelf, gomock.Any()).Return(errors.New("locked"))
		manager := newTestManager(kvStore, nil)

		err := manager.Revalidate(ctx, signer.PublicKey())

		assert.EqualError(t, err, "unable to read authentication session: locked")
		assert.False(t, manager.State().IsAuthenticated)
		assert.False(t, manager.State().AuthLoading)
	})
}

func TestSessionManager_Logout(t *testing.T) {
	ctx := context.Background()
	kvStore := newKVStore(t)
	manager := newTestManager(kvStore, nil)
	require.NoError(t, manager.SetSigner(ctx, testSigner(1)))
	_, err := manager.Authenticate(ctx)
	require.NoError(t, err)

	capturedLog := audit.CaptureLogs(t)

	require.NoError(t, manager.Logout(ctx))

	assert.False(t, manager.State().IsAuthenticated)
	assert.NotEmpty(t, manager.State().DID)
	capturedLog.AssertContains(t, audit.WalletLoggedOutEvent, audit.SystemActor, "Wallet logged out")
	assert.Nil(t, readStoredSession(t, kvStore))
}

func TestSessionManager_SignMessage(t *testing.T) {
	ctx := context.Background()
	signer := testSigner(1)

	t.Run("requires a wallet", func(t *testing.T) {
		manager := newTestManager(newKVStore(t), nil)

		_, err := manager.SignMessage(ctx, []byte("message"))

		assert.ErrorIs(t, err, ErrWalletNotConnected)
	})
	t.Run("requires a session", func(t *testing.T) {
		manager := newTestManager(newKVStore(t), nil)
		require.NoError(t, manager.SetSigner(ctx, signer))

		_, err := manager.SignMessage(ctx, []byte("message"))

		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})
	t.Run("ok", func(t *testing.T) {
		manager := newTestManager(newKVStore(t), nil)
		require.NoError(t, manager.SetSigner(ctx, signer))
		_, err := manager.Authenticate(ctx)
		require.NoError(t, err)

		signature, err := manager.SignMessage(ctx, []byte("message"))

		require.NoError(t, err)
		assert.True(t, ed25519.Verify(signer.PublicKey(), []byte("message"), signature))
	})
}

func TestSessionManager_OnSessionChange(t *testing.T) {
	ctx := context.Background()
	signer := testSigner(1)

	t.Run("observers in the same manager", func(t *testing.T) {
		manager := newTestManager(newKVStore(t), nil)
		var observed []State
		unsubscribe := manager.OnSessionChange(func(state State) {
			observed = append(observed, state)
		})
		require.NoError(t, manager.SetSigner(ctx, signer))
		_, err := manager.Authenticate(ctx)
		require.NoError(t, err)
		unsubscribe()
		require.NoError(t, manager.Logout(ctx))

		require.NotEmpty(t, observed)
		last := observed[len(observed)-1]
		assert.True(t, last.IsAuthenticated)
		assert.False(t, last.AuthLoading)
	})
	t.Run("managers sharing store and notifier see the same terminal state", func(t *testing.T) {
		kvStore := newKVStore(t)
		notifier := events.NewStubEventManager().Notifier()
		first := newTestManager(kvStore, notifier)
		second := newTestManager(kvStore, notifier)
		for _, manager := range []*SessionManager{first, second} {
			unsubscribe, err := manager.Listen(ctx)
			require.NoError(t, err)
			t.Cleanup(unsubscribe)
			require.NoError(t, manager.SetSigner(ctx, signer))
		}
		var observed State
		second.OnSessionChange(func(state State) {
			observed = state
		})

		_, err := first.Authenticate(ctx)
		require.NoError(t, err)
		assert.True(t, second.State().IsAuthenticated)
		assert.True(t, observed.IsAuthenticated)

		require.NoError(t, first.Logout(ctx))
		assert.False(t, second.State().IsAuthenticated)
		assert.False(t, observed.IsAuthenticated)
	})
}
