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

package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateFormat is the layout of issuance and expiration dates: ISO-8601 in UTC with millisecond precision.
const DateFormat = "2006-01-02T15:04:05.000Z"

// DefaultType is the type of credentials that don't specify one.
const DefaultType = "VerifiableCredential"

// Credential is a credential held by the wallet.
// It is the flattened form of a JWT (or SD-JWT) verifiable credential, with the original token retained.
type Credential struct {
	ID                string                 `json:"id" yaml:"id"`
	Type              []string               `json:"type" yaml:"type"`
	Issuer            string                 `json:"issuer" yaml:"issuer"`
	IssuanceDate      string                 `json:"issuanceDate" yaml:"issuanceDate"`
	ExpirationDate    string                 `json:"expirationDate,omitempty" yaml:"expirationDate,omitempty"`
	CredentialSubject map[string]interface{} `json:"credentialSubject" yaml:"credentialSubject"`
	Status            map[string]interface{} `json:"status,omitempty" yaml:"status,omitempty"`
	RawCredential     string                 `json:"rawCredential,omitempty" yaml:"rawCredential,omitempty"`
	// Disclosures holds the decoded SD-JWT disclosures that travelled with the raw credential.
	// They are not merged into CredentialSubject.
	Disclosures []Disclosure `json:"disclosures,omitempty" yaml:"disclosures,omitempty"`
}

// Disclosure is a decoded SD-JWT disclosure: the JSON array [salt, name, value].
type Disclosure struct {
	Salt  string      `json:"salt" yaml:"salt"`
	Name  string      `json:"name" yaml:"name"`
	Value interface{} `json:"value" yaml:"value"`
}

// FormatDate formats the given time according to DateFormat.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

// MostSpecificType returns the last type of the credential, which is the one shown to the holder.
func (c Credential) MostSpecificType() string {
	if len(c.Type) == 0 {
		return DefaultType
	}
	return c.Type[len(c.Type)-1]
}

// IsExpired returns true if the credential has an expiration date at or before the given moment.
// Credentials without (parsable) expiration date never expire.
func (c Credential) IsExpired(now time.Time) bool {
	if c.ExpirationDate == "" {
		return false
	}
	expiration, err := time.Parse(time.RFC3339, c.ExpirationDate)
	if err != nil {
		return false
	}
	return !now.Before(expiration)
}

// FromData converts a credential in (W3C-like) JSON object form into a Credential.
// The issuer may be a string or an object with an id, the type a string or a list.
// A credential without id gets a generated one.
func FromData(data map[string]interface{}) (Credential, error) {
	if len(data) == 0 {
		return Credential{}, errors.New("credential data is empty")
	}
	result := Credential{
		ID:             stringValue(data["id"]),
		Issuer:         stringValue(data["issuer"]),
		IssuanceDate:   stringValue(data["issuanceDate"]),
		ExpirationDate: stringValue(data["expirationDate"]),
		RawCredential:  stringValue(data["rawCredential"]),
	}
	if issuer, ok := data["issuer"].(map[string]interface{}); ok {
		result.Issuer = stringValue(issuer["id"])
	}
	switch types := data["type"].(type) {
	case string:
		result.Type = []string{types}
	case []interface{}:
		for _, curr := range types {
			if s, ok := curr.(string); ok {
				result.Type = append(result.Type, s)
			}
		}
	}
	if len(result.Type) == 0 {
		result.Type = []string{DefaultType}
	}
	switch subject := data["credentialSubject"].(type) {
	case map[string]interface{}:
		result.CredentialSubject = subject
	case nil:
		result.CredentialSubject = map[string]interface{}{}
	default:
		return Credential{}, fmt.Errorf("credentialSubject must be an object, not %T", subject)
	}
	if status, ok := data["status"].(map[string]interface{}); ok {
		result.Status = status
	} else if status, ok := data["credentialStatus"].(map[string]interface{}); ok {
		result.Status = status
	}
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	return result, nil
}

// FromJSON parses a credential in JSON object form, see FromData.
func FromJSON(data []byte) (Credential, error) {
	var asMap map[string]interface{}
	if err := json.Unmarshal(data, &asMap); err != nil {
		return Credential{}, fmt.Errorf("credential is not a JSON object: %w", err)
	}
	return FromData(asMap)
}

func stringValue(value interface{}) string {
	s, _ := value.(string)
	return s
}
