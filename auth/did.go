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
	"crypto/ed25519"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multicodec"
	"github.com/nuts-foundation/go-did/did"
)

const (
	// DIDMethodPKH derives did:pkh:solana:<base58 public key>.
	DIDMethodPKH = "pkh"
	// DIDMethodKey derives did:key:z<base58btc multicodec ed25519 public key>.
	DIDMethodKey = "key"
)

const solanaPKHPrefix = "did:pkh:solana:"

var errInvalidPublicKeyLength = errors.New("invalid public key length")

// DeriveDID returns the holder DID of the given wallet public key.
func DeriveDID(method string, publicKey ed25519.PublicKey) (did.DID, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return did.DID{}, errInvalidPublicKeyLength
	}
	var id string
	switch method {
	case DIDMethodPKH:
		id = solanaPKHPrefix + base58.Encode(publicKey)
	case DIDMethodKey:
		// See https://w3c-ccg.github.io/did-method-key/#format
		mcBytes := binary.AppendUvarint([]byte{}, uint64(multicodec.Ed25519Pub))
		mcBytes = append(mcBytes, publicKey...)
		id = "did:key:z" + base58.Encode(mcBytes)
	default:
		return did.DID{}, fmt.Errorf("unsupported DID method: %s", method)
	}
	result, err := did.ParseDID(id)
	if err != nil {
		return did.DID{}, fmt.Errorf("derived DID is invalid: %w", err)
	}
	return *result, nil
}
