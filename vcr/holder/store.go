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

package holder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/events"
	"github.com/nuts-foundation/didholder/vcr/credential"
	"github.com/nuts-foundation/didholder/vcr/log"
	"github.com/nuts-foundation/go-stoabs"
)

// ErrStoreNotLoaded is returned when the store is mutated before its contents have been loaded.
var ErrStoreNotLoaded = errors.New("credential store is not loaded")

// ErrNotFound is returned when the requested credential is not in the store.
var ErrNotFound = errors.New("credential not found")

const (
	// StoreName is the name of the KV store holding the wallet.
	StoreName = "wallet"
	// credentialsShelf is the shelf in the KV store holding the collection.
	credentialsShelf = "wallet"
	// credentialsKey is the key under which the collection is stored as JSON array.
	credentialsKey = "wallet-credentials"
)

// HolderDIDFunc returns the DID of the current holder, or an empty string if there is none.
type HolderDIDFunc func() string

// Store holds the wallet's credentials in insertion order and persists the whole collection after every mutation.
// Mutations are refused until the collection has been loaded.
type Store struct {
	kvStore   stoabs.KVStore
	holderDID HolderDIDFunc
	notifier  events.Notifier

	mux         sync.RWMutex
	loaded      bool
	credentials []credential.Credential
}

// NewStore creates a Store on top of the given KV store. The notifier is optional.
func NewStore(kvStore stoabs.KVStore, holderDID HolderDIDFunc, notifier events.Notifier) *Store {
	if holderDID == nil {
		holderDID = func() string { return "" }
	}
	return &Store{
		kvStore:   kvStore,
		holderDID: holderDID,
		notifier:  notifier,
	}
}

// Load reads the persisted collection. Subsequent calls have no effect.
func (s *Store) Load(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.loaded {
		return nil
	}
	var data []byte
	err := s.kvStore.ReadShelf(ctx, credentialsShelf, func(reader stoabs.Reader) error {
		var err error
		data, err = reader.Get(stoabs.BytesKey(credentialsKey))
		if errors.Is(err, stoabs.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("unable to read credentials: %w", err)
	}
	var credentials []credential.Credential
	if len(data) > 0 {
		if err := json.Unmarshal(data, &credentials); err != nil {
			return fmt.Errorf("unable to unmarshal credentials: %w", err)
		}
	}
	s.credentials = credentials
	s.loaded = true
	storedCredentials.Set(float64(len(credentials)))
	log.Logger().Debugf("Loaded %d credential(s)", len(credentials))
	return nil
}

// Loading returns true until the persisted collection has been loaded.
func (s *Store) Loading() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return !s.loaded
}

// Add adds the credential, replacing the credential with the same ID if there is one.
func (s *Store) Add(ctx context.Context, cred credential.Credential) error {
	if cred.ID == "" {
		return errors.New("credential has no id")
	}
	return s.mutate(ctx, cred.ID, func(current []credential.Credential) []credential.Credential {
		result := make([]credential.Credential, len(current), len(current)+1)
		copy(result, current)
		for i, curr := range result {
			if curr.ID == cred.ID {
				result[i] = cred
				return result
			}
		}
		return append(result, cred)
	})
}

// AddToken parses a JWT or SD-JWT credential and adds it. See ParseToken.
func (s *Store) AddToken(ctx context.Context, token string) (credential.Credential, error) {
	cred, err := ParseToken(token, s.holderDID())
	if err != nil {
		return credential.Credential{}, err
	}
	if err := s.Add(ctx, cred); err != nil {
		return credential.Credential{}, err
	}
	return cred, nil
}

// AddInput adds a credential given either as Credential or as signed token. It reports whether the credential was added.
// Failures are logged, the store is unchanged.
func (s *Store) AddInput(ctx context.Context, input interface{}) bool {
	var err error
	switch value := input.(type) {
	case string:
		_, err = s.AddToken(ctx, value)
	case credential.Credential:
		err = s.Add(ctx, value)
	case *credential.Credential:
		if value == nil {
			err = errors.New("credential is nil")
		} else {
			err = s.Add(ctx, *value)
		}
	default:
		err = fmt.Errorf("unsupported credential input: %T", input)
	}
	if err != nil {
		log.Logger().
			WithError(err).
			Warn("Unable to add credential")
		return false
	}
	return true
}

// Get returns the credential with the given ID.
func (s *Store) Get(id string) (credential.Credential, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	for _, curr := range s.credentials {
		if curr.ID == id {
			return curr, true
		}
	}
	return credential.Credential{}, false
}

// List returns all credentials in insertion order.
func (s *Store) List() []credential.Credential {
	s.mux.RLock()
	defer s.mux.RUnlock()
	result := make([]credential.Credential, len(s.credentials))
	copy(result, s.credentials)
	return result
}

// Remove removes the credential with the given ID. Removing an unknown ID is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(current []credential.Credential) []credential.Credential {
		result := make([]credential.Credential, 0, len(current))
		for _, curr := range current {
			if curr.ID != id {
				result = append(result, curr)
			}
		}
		return result
	})
}

// Clear removes all credentials.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, "", func(_ []credential.Credential) []credential.Credential {
		return []credential.Credential{}
	})
}

// mutate applies the change to a copy of the collection and persists it. The in-memory collection is only updated when persisting succeeds.
func (s *Store) mutate(ctx context.Context, id string, change func(current []credential.Credential) []credential.Credential) error {
	s.mux.Lock()
	if !s.loaded {
		s.mux.Unlock()
		return ErrStoreNotLoaded
	}
	updated := change(s.credentials)
	data, err := json.Marshal(updated)
	if err != nil {
		s.mux.Unlock()
		return err
	}
	err = s.kvStore.WriteShelf(ctx, credentialsShelf, func(writer stoabs.Writer) error {
		return writer.Put(stoabs.BytesKey(credentialsKey), data)
	})
	if err != nil {
		s.mux.Unlock()
		return fmt.Errorf("unable to store credentials: %w", err)
	}
	s.credentials = updated
	storedCredentials.Set(float64(len(updated)))
	s.mux.Unlock()

	s.notify(ctx, id)
	return nil
}

func (s *Store) notify(ctx context.Context, id string) {
	if s.notifier == nil {
		return
	}
	data, _ := json.Marshal(map[string]string{"id": id})
	if err := s.notifier.Publish(ctx, events.CredentialsChangedSubject, data); err != nil {
		log.Logger().
			WithError(err).
			WithField(core.LogFieldEventSubject, events.CredentialsChangedSubject).
			Warn("Unable to publish credential store change")
	}
}
