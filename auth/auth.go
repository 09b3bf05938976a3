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
	"errors"
	"fmt"

	"github.com/nuts-foundation/didholder/auth/log"
	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/events"
	"github.com/nuts-foundation/didholder/storage"
)

const sessionStoreName = "auth"

var _ core.Injectable = (*Auth)(nil)
var _ core.Runnable = (*Auth)(nil)
var _ core.Diagnosable = (*Auth)(nil)
var _ AuthenticationServices = (*Auth)(nil)

// Auth is the authentication engine: it holds the wallet session.
type Auth struct {
	config        Config
	storageEngine storage.Engine
	eventManager  events.Event
	sessions      *SessionManager
	stopListening func()
}

// NewAuthInstance accepts a Config with several Nuts Engines and returns a new instance of Auth
func NewAuthInstance(config Config, storageEngine storage.Engine, eventManager events.Event) *Auth {
	return &Auth{
		config:        config,
		storageEngine: storageEngine,
		eventManager:  eventManager,
	}
}

// Name returns the name of the engine.
func (auth *Auth) Name() string {
	return ModuleName
}

// Config returns the actual config of the module.
func (auth *Auth) Config() interface{} {
	return &auth.config
}

// Sessions returns the session manager. It is available after Configure.
func (auth *Auth) Sessions() Sessions {
	return auth.sessions
}

// Configure validates the configuration and opens the session store.
func (auth *Auth) Configure(_ core.ServerConfig) error {
	switch auth.config.DIDMethod {
	case DIDMethodPKH, DIDMethodKey:
	default:
		return fmt.Errorf("invalid auth.didmethod: %s (supported: %s, %s)", auth.config.DIDMethod, DIDMethodPKH, DIDMethodKey)
	}
	if auth.config.SessionValidity <= 0 {
		return errors.New("auth.sessionvalidity must be positive")
	}
	kvStore, err := auth.storageEngine.GetProvider(ModuleName).GetKVStore(sessionStoreName, storage.PersistentStorageClass)
	if err != nil {
		return fmt.Errorf("unable to open session store: %w", err)
	}
	auth.sessions = NewSessionManager(kvStore, nil, auth.config.DIDMethod, auth.config.SessionValidity)
	return nil
}

// Start subscribes to session changes and connects the wallet from the configured keypair file, if any.
func (auth *Auth) Start() error {
	// The notifier is resolved here, since the events engine switches to NATS on start.
	auth.sessions.notifier = auth.eventManager.Notifier()
	stop, err := auth.sessions.Listen(context.Background())
	if err != nil {
		return fmt.Errorf("unable to subscribe to session changes: %w", err)
	}
	auth.stopListening = stop
	if auth.config.KeyFile == "" {
		return nil
	}
	signer, err := LoadKeyFile(auth.config.KeyFile)
	if err != nil {
		return err
	}
	if err := auth.sessions.SetSigner(context.Background(), signer); err != nil {
		return err
	}
	log.Logger().
		WithField(core.LogFieldDID, auth.sessions.State().DID).
		Infof("Wallet connected (authenticated=%t)", auth.sessions.State().IsAuthenticated)
	return nil
}

// Shutdown stops listening for session changes.
func (auth *Auth) Shutdown() error {
	if auth.stopListening != nil {
		auth.stopListening()
	}
	return nil
}

// Diagnostics returns the state of the wallet session.
func (auth *Auth) Diagnostics() []core.DiagnosticResult {
	state := State{}
	if auth.sessions != nil {
		state = auth.sessions.State()
	}
	return []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "did_method", Value: auth.config.DIDMethod},
		&core.GenericDiagnosticResult{Title: "holder_did", Value: state.DID},
		&core.GenericDiagnosticResult{Title: "authenticated", Value: state.IsAuthenticated},
	}
}
