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

package core

import "github.com/sirupsen/logrus"

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldEventSubject is the log field key for event subjects from the events module.
	LogFieldEventSubject = "eventSubject"

	// LogFieldCredentialID is the log field key for the ID of a Verifiable Credential from the VCR module.
	LogFieldCredentialID = "credentialID"
	// LogFieldCredentialType is the log field key for the type of a Verifiable Credential from the VCR module.
	LogFieldCredentialType = "credentialType"
	// LogFieldCredentialIssuer is the log field key for the issuer of a Verifiable Credential from the VCR module.
	LogFieldCredentialIssuer = "credentialIssuer"
	// LogFieldIssuerDomain is the log field key for the host:port of a credential issuer contacted by the VCR module.
	LogFieldIssuerDomain = "issuerDomain"
	// LogFieldIntent is the log field key for the kind of input classified by the VCR module.
	LogFieldIntent = "intent"

	// LogFieldStore is the log field key for the name of a store managed by the storage module.
	LogFieldStore = "store"
	// LogFieldStoreShelf is the log field key for the name of a shelf, in a store managed by the storage module.
	LogFieldStoreShelf = "storeShelf"

	// LogFieldDID is the log field key for the DID of the wallet holder.
	LogFieldDID = "did"
)

var _logger = logrus.StandardLogger().WithField(LogFieldModule, "core")

// Logger returns a logger which should be used for logging in this package. It adds fields so
// log entries from this package can be recognized as such.
func Logger() *logrus.Entry {
	return _logger
}
