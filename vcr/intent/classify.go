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

package intent

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nuts-foundation/didholder/vcr/openid4vci"
)

// ErrUnrecognizedFormat is returned when the input doesn't match any known intent.
var ErrUnrecognizedFormat = errors.New("unrecognized input format")

// ErrMissingParameter is returned when a recognized deep link lacks a required query parameter.
var ErrMissingParameter = errors.New("missing parameter")

// DeepLinkScheme is the custom URL scheme of wallet deep links.
const DeepLinkScheme = "didholder://"

// deepLinkParseBase replaces DeepLinkScheme when parsing deep links, so the action ends up in the path.
const deepLinkParseBase = "http://temporary.domain/"

// Classifier turns raw scanned or pasted text into an Intent.
type Classifier struct {
	ports openid4vci.PortTable
}

// NewClassifier creates a Classifier that normalizes issuer domains with the given port table.
func NewClassifier(ports openid4vci.PortTable) *Classifier {
	return &Classifier{ports: ports}
}

// Classify classifies the input using the default port table.
func Classify(raw string) (Intent, error) {
	return NewClassifier(openid4vci.DefaultPorts()).Classify(raw)
}

// Classify determines the intent of the given input. It doesn't perform any I/O.
// Recognized forms are, in order: a JSON intent document, a deep link (http(s) or didholder://),
// a JWT credential and a JSON intent document embedded in other text.
func (c *Classifier) Classify(raw string) (Intent, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return nil, ErrUnrecognizedFormat
	}
	if json.Valid([]byte(input)) {
		return c.fromJSON([]byte(input))
	}
	if strings.HasPrefix(input, "http") || strings.HasPrefix(input, DeepLinkScheme) {
		return c.fromDeepLink(input)
	}
	if strings.HasPrefix(input, "eyJ") {
		return CredentialShare{RawCredential: input}, nil
	}
	start := strings.Index(input, "{")
	end := strings.LastIndex(input, "}")
	if start >= 0 && end > start {
		return c.fromJSON([]byte(input[start : end+1]))
	}
	return nil, ErrUnrecognizedFormat
}

type document struct {
	Type           Kind                   `json:"type"`
	ApplicationID  string                 `json:"applicationId"`
	IssuerDomain   string                 `json:"issuerDomain"`
	Issuer         string                 `json:"issuer"`
	PreAuthCode    string                 `json:"preAuthCode"`
	RawCredential  string                 `json:"rawCredential"`
	CredentialData map[string]interface{} `json:"credentialData"`
	URL            string                 `json:"url"`
}

func (c *Classifier) fromJSON(data []byte) (Intent, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedFormat, err)
	}
	issuerDomain := c.ports.Normalize(doc.IssuerDomain)
	if issuerDomain == "" {
		issuerDomain = c.ports.ExtractIssuerDomain(doc.Issuer)
	}
	switch doc.Type {
	case DIDConnectKind:
		if doc.ApplicationID == "" || issuerDomain == "" {
			return nil, fmt.Errorf("%w: %s requires applicationId and issuer", ErrUnrecognizedFormat, doc.Type)
		}
		return DIDConnect{ApplicationID: doc.ApplicationID, IssuerDomain: issuerDomain}, nil
	case CredentialOfferKind:
		if doc.PreAuthCode == "" || issuerDomain == "" {
			return nil, fmt.Errorf("%w: %s requires preAuthCode and issuer", ErrUnrecognizedFormat, doc.Type)
		}
		return CredentialOffer{PreAuthCode: doc.PreAuthCode, IssuerDomain: issuerDomain}, nil
	case CredentialShareKind:
		switch {
		case doc.RawCredential != "":
			return CredentialShare{RawCredential: doc.RawCredential}, nil
		case len(doc.CredentialData) > 0:
			return CredentialShare{CredentialData: doc.CredentialData}, nil
		case doc.URL != "":
			return CredentialShare{URL: doc.URL}, nil
		}
		return nil, fmt.Errorf("%w: %s without credential", ErrUnrecognizedFormat, doc.Type)
	}
	return nil, ErrUnrecognizedFormat
}

func (c *Classifier) fromDeepLink(input string) (Intent, error) {
	toParse := input
	if strings.HasPrefix(input, DeepLinkScheme) {
		toParse = deepLinkParseBase + strings.TrimPrefix(input, DeepLinkScheme)
	}
	parsed, err := url.Parse(toParse)
	if err != nil {
		return CredentialShare{URL: input}, nil
	}
	query := parsed.Query()
	issuerDomain := c.ports.Normalize(query.Get("issuer"))

	if strings.Contains(input, "connect") || strings.Contains(parsed.Path, "connect") {
		applicationID := query.Get("application_id")
		if applicationID == "" {
			return nil, fmt.Errorf("%w: application_id", ErrMissingParameter)
		}
		if issuerDomain == "" {
			return nil, fmt.Errorf("%w: issuer", ErrMissingParameter)
		}
		return DIDConnect{ApplicationID: applicationID, IssuerDomain: issuerDomain}, nil
	}
	if strings.Contains(input, "credential") || strings.Contains(parsed.Path, "credential") {
		if preAuthCode := query.Get("pre_auth_code"); preAuthCode != "" && issuerDomain != "" {
			return CredentialOffer{PreAuthCode: preAuthCode, IssuerDomain: issuerDomain}, nil
		}
		if data := query.Get("data"); data != "" {
			if credentialData, err := decodeSharedData(data); err == nil {
				return CredentialShare{CredentialData: credentialData}, nil
			}
		}
	}
	return CredentialShare{URL: input}, nil
}

// decodeSharedData decodes the base64 encoded JSON object of a share link.
func decodeSharedData(data string) (map[string]interface{}, error) {
	var decoded []byte
	var err error
	for _, encoding := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if decoded, err = encoding.DecodeString(data); err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	if err := json.Unmarshal(decoded, &result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.New("shared data is not a JSON object")
	}
	return result, nil
}
