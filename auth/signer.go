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
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Signer is the wallet: it exposes the public key and signs messages with the matching private key.
type Signer interface {
	// PublicKey returns the public key of the wallet, nil when the wallet is not connected.
	PublicKey() ed25519.PublicKey
	// SignMessage signs the given message.
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
}

// KeyFileSigner is a Signer backed by an ed25519 keypair file.
// The file holds a JSON array of the 64 bytes of the private key (seed followed by the public key),
// which is the format Solana tooling uses.
type KeyFileSigner struct {
	privateKey ed25519.PrivateKey
}

var _ Signer = (*KeyFileSigner)(nil)

// NewKeyFileSigner creates a Signer for the given private key.
func NewKeyFileSigner(privateKey ed25519.PrivateKey) *KeyFileSigner {
	return &KeyFileSigner{privateKey: privateKey}
}

func (k KeyFileSigner) PublicKey() ed25519.PublicKey {
	return k.privateKey.Public().(ed25519.PublicKey)
}

func (k KeyFileSigner) SignMessage(_ context.Context, message []byte) ([]byte, error) {
	return ed25519.Sign(k.privateKey, message), nil
}

// LoadKeyFile reads a keypair file and returns a Signer for it.
func LoadKeyFile(path string) (*KeyFileSigner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read keypair file: %w", err)
	}
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unable to parse keypair file (expected JSON array of bytes): %w", err)
	}
	if len(values) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("keypair file must contain %d bytes, found %d", ed25519.PrivateKeySize, len(values))
	}
	keyBytes := make([]byte, len(values))
	for i, value := range values {
		if value < 0 || value > 255 {
			return nil, fmt.Errorf("keypair file contains invalid byte value at index %d: %d", i, value)
		}
		keyBytes[i] = byte(value)
	}
	privateKey := ed25519.NewKeyFromSeed(keyBytes[:ed25519.SeedSize])
	if !privateKey.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(keyBytes[ed25519.SeedSize:])) {
		return nil, errors.New("keypair file is inconsistent: public key does not match private key")
	}
	return NewKeyFileSigner(privateKey), nil
}

// GenerateKeyFile generates a new keypair and writes it to the given path.
// It refuses to overwrite an existing file.
func GenerateKeyFile(path string) (*KeyFileSigner, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	values := make([]int, len(privateKey))
	for i, b := range privateKey {
		values[i] = int(b)
	}
	data, _ := json.Marshal(values)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("unable to create keypair file: %w", err)
	}
	defer file.Close()
	if _, err := file.Write(data); err != nil {
		return nil, fmt.Errorf("unable to write keypair file: %w", err)
	}
	return NewKeyFileSigner(privateKey), nil
}
