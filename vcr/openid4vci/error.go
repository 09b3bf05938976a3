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

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies failures of the issuer interactions.
type ErrorKind string

const (
	// IssuerUnreachable is returned when the issuer could not be reached at all (e.g. DNS or connection failure).
	IssuerUnreachable ErrorKind = "issuer_unreachable"
	// IssuerConfigInvalid is returned when the discovery document could not be retrieved or is incomplete.
	IssuerConfigInvalid ErrorKind = "issuer_config_invalid"
	// TokenExchangeFailed is returned when the pre-authorized code could not be exchanged for an access token.
	TokenExchangeFailed ErrorKind = "token_exchange_failed"
	// CredentialIssuanceFailed is returned when the issuer did not issue the requested credential.
	CredentialIssuanceFailed ErrorKind = "credential_issuance_failed"
)

// Error is returned by the issuer client. Errors of the same kind match through errors.Is:
//
//	errors.Is(err, Error{Kind: TokenExchangeFailed})
type Error struct {
	// Kind classifies the error.
	Kind ErrorKind
	// Err is the underlying error, may be omitted.
	Err error
	// StatusCode is the HTTP status code returned by the issuer, 0 if there was no response.
	StatusCode int
}

// Error returns the error message, which is the kind followed by the underlying error if there is one.
func (e Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + " - " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e Error) Unwrap() error {
	return e.Err
}

// Is returns true if the target is an Error of the same kind.
func (e Error) Is(target error) bool {
	other, ok := target.(Error)
	return ok && other.Kind == e.Kind
}

// APIError is returned when an issuer endpoint responds with a non-2xx status.
// The message is taken from the error response body if possible.
type APIError struct {
	StatusCode int
	Message    string
}

func (a APIError) Error() string {
	return a.Message
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// newAPIError creates an APIError from a failed response. It never fails: when the body isn't a JSON error
// response the message describes the status code.
func newAPIError(statusCode int, body []byte) APIError {
	message := fmt.Sprintf("API request failed with status %d", statusCode)
	var response errorResponse
	if err := json.Unmarshal(body, &response); err == nil {
		if response.Error != "" {
			message = response.Error
		} else if response.ErrorDescription != "" {
			message = response.ErrorDescription
		}
	}
	return APIError{StatusCode: statusCode, Message: message}
}

// transportError signals the request didn't yield any response.
type transportError struct {
	err error
}

func (t transportError) Error() string {
	return "http request error: " + t.err.Error()
}

func (t transportError) Unwrap() error {
	return t.err
}
