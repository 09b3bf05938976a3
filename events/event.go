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
	"errors"
	"fmt"
	"time"

	natsServer "github.com/nats-io/nats-server/v2/server"
	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/events/log"
)

const moduleName = "Events"

var _ core.Injectable = (*manager)(nil)
var _ core.Runnable = (*manager)(nil)
var _ core.Diagnosable = (*manager)(nil)

type manager struct {
	config   Config
	pool     ConnectionPool
	server   *natsServer.Server
	notifier Notifier
}

// NewManager returns a new event manager
func NewManager() Event {
	return &manager{
		config: DefaultConfig(),
	}
}

func (m *manager) Name() string {
	return moduleName
}

func (m *manager) Config() interface{} {
	return &m.config
}

func (m *manager) Notifier() Notifier {
	return m.notifier
}

// Configure sets up in-process notifications. NATS replaces them on Start when enabled.
func (m *manager) Configure(_ core.ServerConfig) error {
	if m.config.Nats.Enabled && m.config.Nats.Timeout <= 0 {
		return errors.New("events.nats.timeout must be a positive number of seconds")
	}
	m.notifier = newLocalNotifier()
	return nil
}

func (m *manager) Start() error {
	if !m.config.Nats.Enabled {
		return nil
	}
	timeout := time.Duration(m.config.Nats.Timeout) * time.Second
	url := fmt.Sprintf("nats://%s:%d", m.config.Nats.Hostname, m.config.Nats.Port)
	if m.config.Nats.Server {
		server, err := natsServer.NewServer(&natsServer.Options{
			Port:   m.config.Nats.Port,
			Host:   m.config.Nats.Hostname,
			NoSigs: true, // the process handles signals, the server is shut down with the engine
			NoLog:  true,
		})
		if err != nil {
			return fmt.Errorf("unable to create NATS server: %w", err)
		}
		m.server = server
		server.Start()
		if !server.ReadyForConnections(timeout) {
			server.Shutdown()
			m.server = nil
			return errors.New("NATS server did not become ready in time")
		}
		url = server.ClientURL()
		log.Logger().Infof("Embedded NATS server listening on %s", url)
	}
	m.pool = NewNATSConnectionPool(url, timeout)
	m.notifier = natsNotifier{pool: m.pool}
	return nil
}

func (m *manager) Shutdown() error {
	if m.pool != nil {
		m.pool.Shutdown()
	}
	if m.server != nil {
		m.server.Shutdown()
		m.server.WaitForShutdown()
	}
	return nil
}

func (m *manager) Diagnostics() []core.DiagnosticResult {
	mode := "local"
	if m.config.Nats.Enabled {
		mode = "nats"
	}
	return []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "notifications", Value: mode},
		&core.GenericDiagnosticResult{Title: "embedded_nats_server", Value: m.server != nil},
	}
}
