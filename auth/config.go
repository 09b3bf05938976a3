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
	"time"
)

// ModuleName contains the name of this module
const ModuleName = "Auth"

// Config holds all the configuration params
type Config struct {
	// DIDMethod is the DID method used to derive the holder DID from the wallet public key: pkh or key.
	DIDMethod string `koanf:"didmethod"`
	// KeyFile is the path of the wallet keypair file. When set the wallet is connected on startup.
	KeyFile string `koanf:"keyfile"`
	// SessionValidity is how long an authentication session stays valid.
	SessionValidity time.Duration `koanf:"sessionvalidity"`
}

// DefaultConfig returns an instance of Config with the default values.
func DefaultConfig() Config {
	return Config{
		DIDMethod:       DIDMethodPKH,
		SessionValidity: 7 * 24 * time.Hour,
	}
}
