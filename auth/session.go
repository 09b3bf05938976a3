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
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/nuts-foundation/didholder/audit"
	"github.com/nuts-foundation/didholder/auth/log"
	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/events"
	"github.com/nuts-foundation/go-stoabs"
)

const (
	sessionShelf = "auth"
	sessionKey   = "wallet_auth"
)

// ErrAuthenticationFailed is returned when the sign-challenge handshake could not be completed.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrNotAuthenticated is returned when an operation requires an authenticated session.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrWalletNotConnected is returned when an operation requires a connected wallet.
var ErrWalletNotConnected = errors.New("wallet not connected")

// errSessionUndecodable is returned by readSession when the stored session record isn't valid JSON.
var errSessionUndecodable = errors.New("stored session is undecodable")

// Session is the persisted authentication session.
type Session struct {
	// PublicKey is the base58 encoded wallet public key.
	PublicKey string `json:"publicKey"`
	DID       string `json:"did"`
	// Signature is the base64 encoded signature over the challenge message.
	Signature string `json:"signature"`
	// Timestamp is the moment of authentication in milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
	// ExpiresAt is in milliseconds since the Unix epoch.
	ExpiresAt int64 `json:"expiresAt"`
}

// State is the observable authentication state.
type State struct {
	// DID is the holder DID derived from the connected wallet, empty when no wallet is connected.
	DID             string `json:"did,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	AuthLoading     bool   `json:"authLoading"`
}

type sessionNotification struct {
	DID string `json:"did"`
}

// SessionManager runs the sign-challenge handshake and keeps track of the resulting session.
type SessionManager struct {
	store     stoabs.KVStore
	notifier  events.Notifier
	didMethod string
	validity  time.Duration
	now       func() time.Time

	mux    sync.Mutex
	signer Signer
	state  State

	observersMux  sync.Mutex
	observers     map[int]func(State)
	nextObserveID int
}

// NewSessionManager creates a SessionManager that persists sessions in the given store.
// The notifier is optional; without it changes are only observed within the SessionManager.
func NewSessionManager(store stoabs.KVStore, notifier events.Notifier, didMethod string, validity time.Duration) *SessionManager {
	return &SessionManager{
		store:     store,
		notifier:  notifier,
		didMethod: didMethod,
		validity:  validity,
		now:       time.Now,
		observers: map[int]func(State){},
	}
}

// Listen subscribes to session change notifications of other SessionManagers sharing the same store.
// The returned function ends the subscription.
func (m *SessionManager) Listen(ctx context.Context) (func(), error) {
	if m.notifier == nil {
		return func() {}, nil
	}
	return m.notifier.Subscribe(ctx, events.SessionChangedSubject, func(_ []byte) {
		if err := m.refresh(context.Background()); err != nil {
			log.Logger().WithError(err).Warn("Unable to refresh authentication session after change notification")
		}
	})
}

// SetSigner connects (or, when nil, disconnects) the wallet and revalidates the stored session against it.
func (m *SessionManager) SetSigner(ctx context.Context, signer Signer) error {
	m.mux.Lock()
	m.signer = signer
	m.mux.Unlock()
	var publicKey ed25519.PublicKey
	if signer != nil {
		publicKey = signer.PublicKey()
	}
	return m.Revalidate(ctx, publicKey)
}

// State returns the current authentication state.
func (m *SessionManager) State() State {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.state
}

// Authenticate signs a challenge with the connected wallet and stores the resulting session.
func (m *SessionManager) Authenticate(ctx context.Context) (bool, error) {
	m.mux.Lock()
	signer := m.signer
	m.mux.Unlock()
	if signer == nil || len(signer.PublicKey()) == 0 {
		return false, core.WrapError(ErrAuthenticationFailed, ErrWalletNotConnected)
	}
	publicKey := signer.PublicKey()
	holderDID, err := DeriveDID(m.didMethod, publicKey)
	if err != nil {
		return false, core.WrapError(ErrAuthenticationFailed, err)
	}

	m.updateState(func(state *State) {
		state.DID = holderDID.String()
		state.AuthLoading = true
	})
	session, err := m.signChallenge(ctx, signer, holderDID.String())
	if err == nil {
		err = m.writeSession(ctx, session)
	}
	if err != nil {
		m.updateState(func(state *State) {
			state.AuthLoading = false
		})
		log.Logger().
			WithError(err).
			WithField(core.LogFieldDID, holderDID.String()).
			Warn("Authentication failed")
		return false, core.WrapError(ErrAuthenticationFailed, err)
	}
	m.updateState(func(state *State) {
		state.IsAuthenticated = true
		state.AuthLoading = false
	})
	m.publish(ctx, session.DID)
	audit.Log(ctx, log.Logger().WithField(core.LogFieldDID, session.DID), audit.WalletAuthenticatedEvent).
		Info("Wallet authenticated")
	return true, nil
}

func (m *SessionManager) signChallenge(ctx context.Context, signer Signer, holderDID string) (Session, error) {
	timestamp := m.now().UnixMilli()
	message := fmt.Sprintf("authenticate:%s:%d", holderDID, timestamp)
	signature, err := signer.SignMessage(ctx, []byte(message))
	if err != nil {
		return Session{}, fmt.Errorf("wallet failed to sign challenge: %w", err)
	}
	if len(signature) == 0 {
		return Session{}, errors.New("wallet returned an empty signature")
	}
	return Session{
		PublicKey: base58.Encode(signer.PublicKey()),
		DID:       holderDID,
		Signature: base64.StdEncoding.EncodeToString(signature),
		Timestamp: timestamp,
		ExpiresAt: timestamp + m.validity.Milliseconds(),
	}, nil
}

// Revalidate checks the stored session against the given wallet public key.
// Sessions of another wallet and expired sessions are removed.
func (m *SessionManager) Revalidate(ctx context.Context, publicKey ed25519.PublicKey) error {
	if len(publicKey) == 0 {
		m.updateState(func(state *State) {
			*state = State{}
		})
		return nil
	}
	holderDID, err := DeriveDID(m.didMethod, publicKey)
	if err != nil {
		return err
	}
	m.updateState(func(state *State) {
		state.DID = holderDID.String()
		state.AuthLoading = true
	})

	session, err := m.readSession(ctx)
	authenticated := false
	switch {
	case errors.Is(err, errSessionUndecodable):
		log.Logger().
			WithError(err).
			WithField(core.LogFieldDID, holderDID.String()).
			Warn("Stored session is corrupt, removing it")
		err = m.clearSession(ctx)
	case err != nil:
		// leave the session as is, it might become readable again
	case session == nil:
	case session.PublicKey != base58.Encode(publicKey) || session.DID != holderDID.String():
		log.Logger().
			WithField(core.LogFieldDID, holderDID.String()).
			Info("Stored session belongs to another wallet, removing it")
		err = m.clearSession(ctx)
	case session.ExpiresAt <= m.now().UnixMilli():
		log.Logger().
			WithField(core.LogFieldDID, holderDID.String()).
			Info("Stored session expired, removing it")
		err = m.clearSession(ctx)
	default:
		authenticated = true
	}
	m.updateState(func(state *State) {
		state.IsAuthenticated = authenticated
		state.AuthLoading = false
	})
	return err
}

// Logout removes the stored session.
func (m *SessionManager) Logout(ctx context.Context) error {
	if err := m.clearSession(ctx); err != nil {
		return err
	}
	m.updateState(func(state *State) {
		state.IsAuthenticated = false
	})
	audit.Log(ctx, log.Logger(), audit.WalletLoggedOutEvent).Info("Wallet logged out")
	return nil
}

// SignMessage signs the given message with the connected wallet. It requires an authenticated session.
func (m *SessionManager) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	m.mux.Lock()
	signer := m.signer
	authenticated := m.state.IsAuthenticated
	m.mux.Unlock()
	if signer == nil {
		return nil, ErrWalletNotConnected
	}
	if !authenticated {
		return nil, ErrNotAuthenticated
	}
	return signer.SignMessage(ctx, message)
}

// OnSessionChange registers a handler that is called with the new state whenever it changes.
// The returned function unregisters the handler.
func (m *SessionManager) OnSessionChange(handler func(State)) func() {
	m.observersMux.Lock()
	defer m.observersMux.Unlock()
	id := m.nextObserveID
	m.nextObserveID++
	m.observers[id] = handler
	return func() {
		m.observersMux.Lock()
		defer m.observersMux.Unlock()
		delete(m.observers, id)
	}
}

// refresh re-reads the stored session after another process changed it. Unlike Revalidate it never writes.
func (m *SessionManager) refresh(ctx context.Context) error {
	m.mux.Lock()
	holderDID := m.state.DID
	m.mux.Unlock()
	if holderDID == "" {
		return nil
	}
	session, err := m.readSession(ctx)
	if errors.Is(err, errSessionUndecodable) {
		session = nil
	} else if err != nil {
		return err
	}
	authenticated := session != nil && session.DID == holderDID && session.ExpiresAt > m.now().UnixMilli()
	m.updateState(func(state *State) {
		if state.DID == holderDID {
			state.IsAuthenticated = authenticated
		}
	})
	return nil
}

// updateState applies the given change and notifies observers when the state changed.
func (m *SessionManager) updateState(change func(state *State)) {
	m.mux.Lock()
	previous := m.state
	change(&m.state)
	current := m.state
	m.mux.Unlock()
	if previous == current {
		return
	}
	m.observersMux.Lock()
	observers := make([]func(State), 0, len(m.observers))
	for _, observer := range m.observers {
		observers = append(observers, observer)
	}
	m.observersMux.Unlock()
	for _, observer := range observers {
		observer(current)
	}
}

func (m *SessionManager) readSession(ctx context.Context) (*Session, error) {
	var result *Session
	err := m.store.ReadShelf(ctx, sessionShelf, func(reader stoabs.Reader) error {
		data, err := reader.Get(stoabs.BytesKey(sessionKey))
		if errors.Is(err, stoabs.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		result = new(Session)
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("%w: %s", errSessionUndecodable, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read authentication session: %w", err)
	}
	return result, nil
}

func (m *SessionManager) writeSession(ctx context.Context, session Session) error {
	data, _ := json.Marshal(session)
	err := m.store.WriteShelf(ctx, sessionShelf, func(writer stoabs.Writer) error {
		return writer.Put(stoabs.BytesKey(sessionKey), data)
	})
	if err != nil {
		return fmt.Errorf("unable to store authentication session: %w", err)
	}
	return nil
}

func (m *SessionManager) clearSession(ctx context.Context) error {
	err := m.store.WriteShelf(ctx, sessionShelf, func(writer stoabs.Writer) error {
		return writer.Delete(stoabs.BytesKey(sessionKey))
	})
	if err != nil {
		return fmt.Errorf("unable to remove authentication session: %w", err)
	}
	m.publish(ctx, "")
	return nil
}

// publish notifies other SessionManagers sharing the store. It must not be called while holding a lock,
// since local delivery is synchronous.
func (m *SessionManager) publish(ctx context.Context, holderDID string) {
	if m.notifier == nil {
		return
	}
	data, _ := json.Marshal(sessionNotification{DID: holderDID})
	if err := m.notifier.Publish(ctx, events.SessionChangedSubject, data); err != nil {
		log.Logger().WithError(err).Warn("Unable to publish authentication session change")
	}
}
