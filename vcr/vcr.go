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

package vcr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nuts-foundation/didholder/auth"
	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/events"
	"github.com/nuts-foundation/didholder/storage"
	"github.com/nuts-foundation/didholder/vcr/holder"
	"github.com/nuts-foundation/didholder/vcr/intent"
	"github.com/nuts-foundation/didholder/vcr/log"
	"github.com/nuts-foundation/didholder/vcr/openid4vci"
)

var _ core.Injectable = (*vcr)(nil)
var _ core.Runnable = (*vcr)(nil)
var _ core.Diagnosable = (*vcr)(nil)

// NewVCRInstance creates a new vcr instance with default config.
func NewVCRInstance(storageEngine storage.Engine, eventManager events.Event, authServices auth.AuthenticationServices) VCR {
	return &vcr{
		config:        DefaultConfig(),
		storageEngine: storageEngine,
		eventManager:  eventManager,
		authServices:  authServices,
	}
}

type vcr struct {
	config        Config
	storageEngine storage.Engine
	eventManager  events.Event
	authServices  auth.AuthenticationServices
	ports         openid4vci.PortTable
	httpClient    core.HTTPRequestDoer
	configCache   *openid4vci.ConfigCache
	issuerClient  openid4vci.IssuerClient
	store         *holder.Store
	wallet        *wallet
}

func (c *vcr) Name() string {
	return ModuleName
}

func (c *vcr) Config() interface{} {
	return &c.config
}

func (c *vcr) Wallet() Wallet {
	return c.wallet
}

func (c *vcr) Configure(config core.ServerConfig) error {
	var err error
	if c.ports, err = openid4vci.ParsePortTable(c.config.IssuerPorts); err != nil {
		return err
	}
	if c.config.OpenID4VCI.ConfigTTL < 0 {
		return errors.New("vcr.openid4vci.configttl must not be negative")
	}
	if len(c.config.OpenID4VCI.CredentialTypes) == 0 {
		return errors.New("vcr.openid4vci.credentialtypes must contain at least one type")
	}
	c.httpClient = core.NewStrictHTTPClient(config.Strictmode, config.HTTP.Client)
	ttl := c.config.OpenID4VCI.ConfigTTL
	c.configCache = openid4vci.NewConfigCache(c.storageEngine.GetSessionDatabase().GetStore(ttl, "vcr", "issuerconfig"), ttl)
	c.issuerClient = openid4vci.NewClient(c.httpClient, c.configCache, c.ports, c.config.OpenID4VCI.Retries)
	return core.RegisterCollectors(append(openid4vci.Collectors(), holder.Collectors()...)...)
}

// Start opens the credential store and loads the wallet.
func (c *vcr) Start() error {
	kvStore, err := c.storageEngine.GetProvider(ModuleName).GetKVStore(holder.StoreName, storage.PersistentStorageClass)
	if err != nil {
		return fmt.Errorf("unable to open credential store: %w", err)
	}
	sessions := c.authServices.Sessions()
	c.store = holder.NewStore(kvStore, func() string {
		return sessions.State().DID
	}, c.eventManager.Notifier())
	if err := c.store.Load(context.Background()); err != nil {
		return err
	}
	c.wallet = &wallet{
		classifier:      intent.NewClassifier(c.ports),
		client:          c.issuerClient,
		store:           c.store,
		sessions:        sessions,
		httpClient:      c.httpClient,
		credentialTypes: c.config.OpenID4VCI.CredentialTypes,
		now:             time.Now,
	}
	log.Logger().Infof("Wallet loaded (%d credentials)", len(c.store.List()))
	return nil
}

// Shutdown removes the issuer configurations cached by this process.
func (c *vcr) Shutdown() error {
	if c.configCache == nil {
		return nil
	}
	return c.configCache.Clear()
}

func (c *vcr) Diagnostics() []core.DiagnosticResult {
	credentialCount := 0
	if c.store != nil {
		credentialCount = len(c.store.List())
	}
	return []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "credential_count", Value: credentialCount},
		&core.GenericDiagnosticResult{Title: "issuer_ports", Value: c.config.IssuerPorts},
	}
}
