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

	"github.com/nuts-foundation/didholder/vcr/credential"
	"github.com/nuts-foundation/didholder/vcr/holder"
	"github.com/nuts-foundation/didholder/vcr/intent"
	"github.com/nuts-foundation/didholder/vcr/openid4vci"
)

// ErrShareFetchFailed is returned when a credential shared by URL could not be retrieved.
var ErrShareFetchFailed = errors.New("unable to fetch shared credential")

// VCR is the interface of the vcr engine as used by other engines and the API.
type VCR interface {
	// Wallet returns the wallet. It is available after the engine has started.
	Wallet() Wallet
}

// Wallet acquires, stores, verifies and shares the holder's credentials.
type Wallet interface {
	// HandleInput classifies scanned or pasted text and carries out the intent it expresses.
	// Connecting a DID and accepting a credential offer require an authenticated session.
	HandleInput(ctx context.Context, raw string) (Outcome, error)
	// AddToken parses a signed (SD-)JWT credential and adds it to the wallet.
	AddToken(ctx context.Context, token string) (credential.Credential, error)
	// List returns all credentials in the order they were added.
	List() []credential.Credential
	// Get returns the credential with the given ID, or holder.ErrNotFound.
	Get(id string) (credential.Credential, error)
	// Remove removes the credential with the given ID. Removing an unknown credential is not an error.
	Remove(ctx context.Context, id string) error
	// Clear removes all credentials.
	Clear(ctx context.Context) error
	// Verify checks the credential locally for expiry and then with its issuer.
	Verify(ctx context.Context, id string) (openid4vci.VerificationResult, error)
	// Share reduces the credential to the given subject fields and returns it with a deep link carrying it.
	Share(id string, fields []string) (holder.SharedCredential, string, error)
	// Export returns all credentials in the given format (json or yaml).
	Export(format string) ([]byte, error)
}

// Outcome describes what HandleInput did.
type Outcome struct {
	// Kind is the kind of intent the input expressed.
	Kind intent.Kind `json:"kind"`
	// Intent is the classified input.
	Intent intent.Intent `json:"intent"`
	// Credential is the credential that was added to the wallet, if any.
	Credential *credential.Credential `json:"credential,omitempty"`
	// Connect is the result of connecting the holder DID to an issuer application.
	Connect *openid4vci.ConnectResult `json:"connect,omitempty"`
}
