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

package openid4vci

// PreAuthorizedCodeGrant is the grant type used for the pre-authorized code flow.
const PreAuthorizedCodeGrant = "urn:ietf:params:oauth:grant-type:pre-authorized_code"

// CredentialIssuerMetadataWellKnownPath defines the well-known path for OpenID4VCI Credential Issuer Metadata.
const CredentialIssuerMetadataWellKnownPath = "/.well-known/openid-credential-issuer"

// SDJWTFormat is the credential format requested from issuers.
const SDJWTFormat = "jwt_sd"

// DefaultCredentialTypes returns the credential types requested when the caller doesn't specify any.
func DefaultCredentialTypes() []string {
	return []string{"VerifiableCredential", "NaturalPersonCredential"}
}

// IssuerConfig is the discovery document of a credential issuer.
// It is immutable once fetched.
type IssuerConfig struct {
	Issuer               string                 `json:"issuer,omitempty"`
	CredentialIssuer     string                 `json:"credential_issuer"`
	AuthorizationServer  string                 `json:"authorization_server,omitempty"`
	CredentialEndpoint   string                 `json:"credential_endpoint"`
	TokenEndpoint        string                 `json:"token_endpoint"`
	JWKSURI              string                 `json:"jwks_uri,omitempty"`
	GrantTypesSupported  []string               `json:"grant_types_supported,omitempty"`
	CredentialsSupported map[string]interface{} `json:"credentials_supported,omitempty"`
	Display              []IssuerDisplay        `json:"display,omitempty"`
}

// IssuerDisplay contains the localized display properties of an issuer.
type IssuerDisplay struct {
	Name        string `json:"name"`
	Locale      string `json:"locale,omitempty"`
	Description string `json:"description,omitempty"`
}

// TokenResponse is the response of the token endpoint.
type TokenResponse struct {
	AccessToken     string `json:"access_token"`
	TokenType       string `json:"token_type,omitempty"`
	ExpiresIn       int    `json:"expires_in,omitempty"`
	CNonce          string `json:"c_nonce,omitempty"`
	CNonceExpiresIn int    `json:"c_nonce_expires_in,omitempty"`
}

// TokenRequest is the body sent to the token endpoint.
type TokenRequest struct {
	GrantType         string `json:"grant_type"`
	PreAuthorizedCode string `json:"pre-authorized_code"`
}

// CredentialDefinition specifies the requested credential.
type CredentialDefinition struct {
	Type []string `json:"type"`
}

// CredentialRequest is the body sent to the credential endpoint.
type CredentialRequest struct {
	Format               string               `json:"format"`
	CredentialDefinition CredentialDefinition `json:"credential_definition"`
}

// CredentialResponse is the response of the credential endpoint.
// Credential holds the signed (SD-)JWT.
type CredentialResponse struct {
	Format     string `json:"format,omitempty"`
	Credential string `json:"credential"`
}

// ConnectRequest is the body sent to the DID connect endpoint.
type ConnectRequest struct {
	DID string `json:"did"`
	// Signature is serialized as an array of byte values, so it can't be a []byte (which marshals to base64).
	Signature []int `json:"signature,omitempty"`
}

// ConnectResult is the outcome of connecting a DID to an issuer application.
type ConnectResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyRequest is the body sent to the verification endpoint.
type VerifyRequest struct {
	Credential string `json:"credential"`
}

// VerifyResponse is the response of the verification endpoint.
type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}

// VerificationResult is the outcome of verifying a credential.
type VerificationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
