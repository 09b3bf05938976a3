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

// Config holds all the configuration params
type Config struct {
	Nats NatsConfig `koanf:"nats"`
}

// NatsConfig holds all NATS related configuration
type NatsConfig struct {
	// Enabled makes session changes travel over NATS, so other wallet processes observe them.
	Enabled bool `koanf:"enabled"`
	// Server starts an embedded NATS server on Hostname:Port.
	Server   bool   `koanf:"server"`
	Hostname string `koanf:"hostname"`
	Port     int    `koanf:"port"`
	// Timeout is the connect timeout in seconds.
	Timeout int `koanf:"timeout"`
}

// DefaultConfig returns the default configuration for the events engine.
func DefaultConfig() Config {
	return Config{
		Nats: NatsConfig{
			Server:   true,
			Hostname: "localhost",
			Port:     4222,
			Timeout:  30,
		},
	}
}
