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

package cmd

import (
	"github.com/nuts-foundation/didholder/events"
	"github.com/spf13/pflag"
)

// ConfEventsNatsEnabled defines whether session changes are broadcast over NATS
const ConfEventsNatsEnabled = "events.nats.enabled"

// ConfEventsNatsServer defines whether an embedded NATS server is started
const ConfEventsNatsServer = "events.nats.server"

// ConfEventsPort defines the port for the NATS server
const ConfEventsPort = "events.nats.port"

// ConfEventsHostname defines the hostname for the NATS server
const ConfEventsHostname = "events.nats.hostname"

// ConfEventsTimeout defines the timeouts (in seconds) for the NATS server
const ConfEventsTimeout = "events.nats.timeout"

// FlagSet defines the set of flags that sets the events-engine configuration
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("events", pflag.ContinueOnError)

	defs := events.DefaultConfig()
	flags.Bool(ConfEventsNatsEnabled, defs.Nats.Enabled, "Broadcast authentication session changes over NATS, so wallet processes sharing the same storage observe each other's logins and logouts.")
	flags.Bool(ConfEventsNatsServer, defs.Nats.Server, "Start an embedded NATS server. Disable to connect to an existing NATS server at hostname:port.")
	flags.Int(ConfEventsPort, defs.Nats.Port, "Port of the NATS server")
	flags.String(ConfEventsHostname, defs.Nats.Hostname, "Hostname of the NATS server")
	flags.Int(ConfEventsTimeout, defs.Nats.Timeout, "Timeout in seconds for connecting to the NATS server")
	return flags
}
