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
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/nuts-foundation/didholder/vcr/credential"
	"github.com/nuts-foundation/didholder/vcr/log"
)

// ErrCredentialParseFailed is returned when a signed credential token can't be decoded.
var ErrCredentialParseFailed = errors.New("credential parse failed")

// disclosureSeparator separates the JWT from the disclosures in an SD-JWT.
const disclosureSeparator = "~"

const vcClaim = "vc"

// ParseToken decodes a JWT or SD-JWT credential into a Credential. Only the payload is decoded:
// the JOSE header and signature are not inspected.
// If the token doesn't specify a subject, holderDID is used as credentialSubject.id.
func ParseToken(token string, holderDID string) (credential.Credential, error) {
	token = strings.TrimSpace(token)
	segments := strings.Split(token, disclosureSeparator)
	parsed, err := decodePayload(segments[0])
	if err != nil {
		return credential.Credential{}, fmt.Errorf("%w: %s", ErrCredentialParseFailed, err)
	}
	if _, ok := parsed.Get(jwt.IssuedAtKey); !ok {
		return credential.Credential{}, fmt.Errorf("%w: token does not contain iat claim", ErrCredentialParseFailed)
	}

	var vc map[string]interface{}
	if value, ok := parsed.Get(vcClaim); ok {
		if vc, ok = value.(map[string]interface{}); !ok {
			return credential.Credential{}, fmt.Errorf("%w: vc claim must be an object", ErrCredentialParseFailed)
		}
	}

	result := credential.Credential{
		ID:                parsed.JwtID(),
		Type:              stringList(vc["type"]),
		Issuer:            parsed.Issuer(),
		IssuanceDate:      credential.FormatDate(parsed.IssuedAt()),
		CredentialSubject: map[string]interface{}{},
		RawCredential:     token,
		Disclosures:       parseDisclosures(segments[1:]),
	}
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if len(result.Type) == 0 {
		result.Type = []string{credential.DefaultType}
	}
	if _, ok := parsed.Get(jwt.ExpirationKey); ok {
		result.ExpirationDate = credential.FormatDate(parsed.Expiration())
	}
	result.CredentialSubject["id"] = holderDID
	if subject := parsed.Subject(); subject != "" {
		result.CredentialSubject["id"] = subject
	}
	if subject, ok := vc["credentialSubject"].(map[string]interface{}); ok {
		for key, value := range subject {
			result.CredentialSubject[key] = value
		}
	}
	if status, ok := vc["credentialStatus"].(map[string]interface{}); ok {
		result.Status = status
	}
	return result, nil
}

// decodePayload decodes the claims of a compact JWT into a jwt.Token, so registered claims are typed.
func decodePayload(compact string) (jwt.Token, error) {
	parts := strings.Split(compact, ".")
	if len(parts) < 2 {
		return nil, errors.New("token is not a JWT")
	}
	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid payload encoding: %w", err)
	}
	parsed := jwt.New()
	if err := json.Unmarshal(payload, parsed); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	return parsed, nil
}

// decodeSegment decodes base64url with or without padding.
func decodeSegment(segment string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "="))
}

// parseDisclosures decodes SD-JWT disclosures. The key binding JWT and undecodable disclosures are skipped.
func parseDisclosures(segments []string) []credential.Disclosure {
	var result []credential.Disclosure
	for _, segment := range segments {
		if segment == "" || strings.Count(segment, ".") == 2 {
			continue
		}
		disclosure, err := parseDisclosure(segment)
		if err != nil {
			log.Logger().
				WithError(err).
				Debug("Skipping undecodable SD-JWT disclosure")
			continue
		}
		result = append(result, *disclosure)
	}
	return result
}

// parseDisclosure decodes a disclosure: [salt, name, value] for object properties, [salt, value] for array elements.
func parseDisclosure(segment string) (*credential.Disclosure, error) {
	data, err := decodeSegment(segment)
	if err != nil {
		return nil, err
	}
	var elements []interface{}
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, err
	}
	switch len(elements) {
	case 3:
		salt, _ := elements[0].(string)
		name, ok := elements[1].(string)
		if !ok {
			return nil, errors.New("disclosure name must be a string")
		}
		return &credential.Disclosure{Salt: salt, Name: name, Value: elements[2]}, nil
	case 2:
		salt, _ := elements[0].(string)
		return &credential.Disclosure{Salt: salt, Value: elements[1]}, nil
	}
	return nil, fmt.Errorf("disclosure has %d elements", len(elements))
}

func stringList(value interface{}) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []interface{}:
		var result []string
		for _, curr := range v {
			if s, ok := curr.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}
