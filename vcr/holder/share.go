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
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"gopkg.in/yaml.v3"
)

// SharedLinkPrefix is the deep link that carries a shared credential in its data parameter.
const SharedLinkPrefix = "didholder://shared-credential?data="

const (
	// JSONExportFormat exports the collection as indented JSON.
	JSONExportFormat = "json"
	// YAMLExportFormat exports the collection as YAML.
	YAMLExportFormat = "yaml"
)

// SharedCredential is a credential reduced to the subject fields the holder chose to disclose.
type SharedCredential struct {
	ID                string                 `json:"id"`
	Type              []string               `json:"type"`
	Issuer            string                 `json:"issuer"`
	IssuanceDate      string                 `json:"issuanceDate"`
	CredentialSubject map[string]interface{} `json:"credentialSubject"`
}

// Share reduces the credential with the given ID to the given subject fields and returns it together with a deep link carrying it.
// Unknown fields are ignored. Without fields, the full subject is shared.
func (s *Store) Share(id string, fields []string) (SharedCredential, string, error) {
	cred, ok := s.Get(id)
	if !ok {
		return SharedCredential{}, "", ErrNotFound
	}
	shared := SharedCredential{
		ID:                cred.ID,
		Type:              cred.Type,
		Issuer:            cred.Issuer,
		IssuanceDate:      cred.IssuanceDate,
		CredentialSubject: map[string]interface{}{},
	}
	if len(fields) == 0 {
		for key, value := range cred.CredentialSubject {
			shared.CredentialSubject[key] = value
		}
	}
	for _, field := range fields {
		if value, ok := cred.CredentialSubject[field]; ok {
			shared.CredentialSubject[field] = value
		}
	}
	data, err := json.Marshal(shared)
	if err != nil {
		return SharedCredential{}, "", err
	}
	return shared, SharedLinkPrefix + url.QueryEscape(base64.StdEncoding.EncodeToString(data)), nil
}

// Export serializes the full collection in the given format. An empty format means JSON.
func (s *Store) Export(format string) ([]byte, error) {
	credentials := s.List()
	switch format {
	case "", JSONExportFormat:
		return json.MarshalIndent(credentials, "", "  ")
	case YAMLExportFormat:
		return yaml.Marshal(credentials)
	}
	return nil, fmt.Errorf("unsupported export format: %s", format)
}
