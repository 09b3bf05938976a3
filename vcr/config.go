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
	"time"

	"github.com/nuts-foundation/didholder/vcr/openid4vci"
)

// ModuleName is the name of this module.
const ModuleName = "VCR"

// Config holds the config for the vcr engine
type Config struct {
	// IssuerPorts maps issuer domains to the port used when an issuer identifier has none, in the form domain=port.
	IssuerPorts []string `koanf:"issuerports"`
	// OpenID4VCI holds the config for the credential issuance protocol client
	OpenID4VCI OpenID4VCIConfig `koanf:"openid4vci"`
}

// OpenID4VCIConfig holds the config for the OpenID4VCI client.
type OpenID4VCIConfig struct {
	// ConfigTTL is how long issuer discovery documents are cached. 0 caches them for the lifetime of the process.
	ConfigTTL time.Duration `koanf:"configttl"`
	// Retries is the number of times issuer discovery is retried after a connection failure.
	Retries uint `koanf:"retries"`
	// CredentialTypes are the types requested from the issuer when accepting a credential offer.
	CredentialTypes []string `koanf:"credentialtypes"`
}

// DefaultConfig returns a fresh Config filled with default values
func DefaultConfig() Config {
	return Config{
		IssuerPorts: openid4vci.DefaultPortTable(),
		OpenID4VCI: OpenID4VCIConfig{
			Retries:         2,
			CredentialTypes: openid4vci.DefaultCredentialTypes(),
		},
	}
}
