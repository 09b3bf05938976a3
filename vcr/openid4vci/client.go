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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/vcr/credential"
	"github.com/nuts-foundation/didholder/vcr/log"
	"github.com/pquerna/cachecontrol"
)

// issuerScheme is the scheme used to reach issuers by domain.
const issuerScheme = "http"

const defaultRetryDelay = 100 * time.Millisecond

// IssuerClient defines the wallet's interactions with credential issuers.
type IssuerClient interface {
	// FetchIssuerConfig returns the discovery document of the issuer, from cache if possible.
	FetchIssuerConfig(ctx context.Context, issuerDomain string) (*IssuerConfig, error)
	// RequestToken exchanges a pre-authorized code for an access token.
	RequestToken(ctx context.Context, issuerDomain string, preAuthCode string) (*TokenResponse, error)
	// RequestCredential requests a credential of the given types. If no types are given, DefaultCredentialTypes are requested.
	RequestCredential(ctx context.Context, issuerDomain string, accessToken string, types []string) (*CredentialResponse, error)
	// ConnectDID connects the holder's DID to an application at the issuer. It reports failures in the result.
	ConnectDID(ctx context.Context, issuerDomain string, applicationID string, did string, signature []byte) ConnectResult
	// VerifyCredential asks the credential's issuer to verify it. It reports failures in the result.
	VerifyCredential(ctx context.Context, cred credential.Credential) VerificationResult
	// ExtractIssuerDomain derives the issuer domain from a credential issuer identifier.
	ExtractIssuerDomain(issuer string) string
}

var _ IssuerClient = (*HTTPIssuerClient)(nil)

// HTTPIssuerClient is the IssuerClient that talks to issuers over HTTP.
type HTTPIssuerClient struct {
	httpClient core.HTTPRequestDoer
	cache      *ConfigCache
	ports      PortTable
	retries    uint
	retryDelay time.Duration
}

// NewClient creates a new HTTPIssuerClient. Failing discovery requests are retried the given number of times.
func NewClient(httpClient core.HTTPRequestDoer, cache *ConfigCache, ports PortTable, retries uint) *HTTPIssuerClient {
	return &HTTPIssuerClient{
		httpClient: httpClient,
		cache:      cache,
		ports:      ports,
		retries:    retries,
		retryDelay: defaultRetryDelay,
	}
}

func (c *HTTPIssuerClient) ExtractIssuerDomain(issuer string) string {
	return c.ports.ExtractIssuerDomain(issuer)
}

func (c *HTTPIssuerClient) FetchIssuerConfig(ctx context.Context, issuerDomain string) (*IssuerConfig, error) {
	return c.cache.Get(ctx, issuerDomain, func(ctx context.Context) (*IssuerConfig, time.Duration, error) {
		config, maxAge, err := c.loadIssuerConfig(ctx, issuerDomain)
		observeRequest("discovery", err)
		return config, maxAge, err
	})
}

func (c *HTTPIssuerClient) loadIssuerConfig(ctx context.Context, issuerDomain string) (*IssuerConfig, time.Duration, error) {
	configURL := issuerURL(issuerDomain, CredentialIssuerMetadataWellKnownPath)
	log.Logger().
		WithField(core.LogFieldIssuerDomain, issuerDomain).
		Debugf("Requesting issuer configuration: %s", configURL)

	var result IssuerConfig
	var maxAge time.Duration
	err := retry.Do(func() error {
		httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, configURL, nil)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		httpResponse, err := c.httpDo(httpRequest, &result)
		if err != nil {
			return err
		}
		maxAge = cacheMaxAge(httpRequest, httpResponse)
		return nil
	},
		retry.Attempts(c.retries+1),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransportError),
		retry.OnRetry(func(attempt uint, err error) {
			log.Logger().
				WithError(err).
				WithField(core.LogFieldIssuerDomain, issuerDomain).
				Debugf("Issuer configuration request failed, retrying (attempt=%d)", attempt+1)
		}),
	)
	if err != nil {
		if isTransportError(err) {
			return nil, 0, Error{Kind: IssuerUnreachable, Err: err}
		}
		return nil, 0, Error{Kind: IssuerConfigInvalid, Err: err, StatusCode: statusCodeOf(err)}
	}
	if result.TokenEndpoint == "" {
		return nil, 0, Error{Kind: IssuerConfigInvalid, Err: errors.New("issuer configuration does not contain token endpoint")}
	}
	if result.CredentialEndpoint == "" {
		return nil, 0, Error{Kind: IssuerConfigInvalid, Err: errors.New("issuer configuration does not contain credential endpoint")}
	}
	return &result, maxAge, nil
}

func (c *HTTPIssuerClient) RequestToken(ctx context.Context, issuerDomain string, preAuthCode string) (*TokenResponse, error) {
	config, err := c.FetchIssuerConfig(ctx, issuerDomain)
	if err != nil {
		return nil, err
	}
	log.Logger().
		WithField(core.LogFieldIssuerDomain, issuerDomain).
		Debugf("Requesting access token: %s", config.TokenEndpoint)

	var result TokenResponse
	_, err = c.postJSON(ctx, config.TokenEndpoint, TokenRequest{
		GrantType:         PreAuthorizedCodeGrant,
		PreAuthorizedCode: preAuthCode,
	}, "", &result)
	if err == nil && result.AccessToken == "" {
		err = errors.New("token response does not contain an access token")
	}
	observeRequest("token", err)
	if err != nil {
		return nil, Error{Kind: TokenExchangeFailed, Err: err, StatusCode: statusCodeOf(err)}
	}
	return &result, nil
}

func (c *HTTPIssuerClient) RequestCredential(ctx context.Context, issuerDomain string, accessToken string, types []string) (*CredentialResponse, error) {
	config, err := c.FetchIssuerConfig(ctx, issuerDomain)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		types = DefaultCredentialTypes()
	}
	log.Logger().
		WithField(core.LogFieldIssuerDomain, issuerDomain).
		WithField(core.LogFieldCredentialType, types).
		Debugf("Requesting credential: %s", config.CredentialEndpoint)

	var result CredentialResponse
	_, err = c.postJSON(ctx, config.CredentialEndpoint, CredentialRequest{
		Format:               SDJWTFormat,
		CredentialDefinition: CredentialDefinition{Type: types},
	}, accessToken, &result)
	if err == nil && result.Credential == "" {
		err = errors.New("credential response does not contain a credential")
	}
	observeRequest("credential", err)
	if err != nil {
		return nil, Error{Kind: CredentialIssuanceFailed, Err: err, StatusCode: statusCodeOf(err)}
	}
	return &result, nil
}

func (c *HTTPIssuerClient) ConnectDID(ctx context.Context, issuerDomain string, applicationID string, did string, signature []byte) ConnectResult {
	connectURL := issuerURL(issuerDomain, "api/application", url.PathEscape(applicationID), "connect")
	log.Logger().
		WithField(core.LogFieldIssuerDomain, issuerDomain).
		WithField(core.LogFieldDID, did).
		Debugf("Connecting DID to application: %s", connectURL)

	request := ConnectRequest{DID: did}
	if signature != nil {
		request.Signature = make([]int, len(signature))
		for i, b := range signature {
			request.Signature[i] = int(b)
		}
	}
	var response struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	_, err := c.postJSON(ctx, connectURL, request, "", &response)
	observeRequest("connect", err)
	if err != nil {
		log.Logger().
			WithError(err).
			WithField(core.LogFieldIssuerDomain, issuerDomain).
			Warn("Unable to connect DID to application")
		return ConnectResult{Success: false, Message: failureMessage(err)}
	}
	message := response.Message
	if message == "" {
		message = "DID successfully connected"
	}
	return ConnectResult{Success: true, Message: message}
}

func (c *HTTPIssuerClient) VerifyCredential(ctx context.Context, cred credential.Credential) VerificationResult {
	if cred.RawCredential == "" {
		return VerificationResult{Valid: false, Message: "credential has no raw token"}
	}
	issuerDomain := c.ExtractIssuerDomain(cred.Issuer)
	verifyURL := issuerURL(issuerDomain, "/api/v1/verify")
	log.Logger().
		WithField(core.LogFieldIssuerDomain, issuerDomain).
		WithField(core.LogFieldCredentialID, cred.ID).
		Debugf("Verifying credential: %s", verifyURL)

	var response VerifyResponse
	_, err := c.postJSON(ctx, verifyURL, VerifyRequest{Credential: cred.RawCredential}, "", &response)
	observeRequest("verify", err)
	if err != nil {
		return VerificationResult{Valid: false, Message: failureMessage(err)}
	}
	if response.Verified {
		return VerificationResult{Valid: true, Message: "credential is valid"}
	}
	if response.Reason != "" {
		return VerificationResult{Valid: false, Message: response.Reason}
	}
	return VerificationResult{Valid: false, Message: "credential is invalid"}
}

func (c *HTTPIssuerClient) postJSON(ctx context.Context, targetURL string, body interface{}, accessToken string, result interface{}) (*http.Response, error) {
	requestBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(requestBody))
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		httpRequest.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return c.httpDo(httpRequest, result)
}

// httpDo sends the request and unmarshals the JSON response body into result.
// The returned response's body has been consumed.
func (c *HTTPIssuerClient) httpDo(httpRequest *http.Request, result interface{}) (*http.Response, error) {
	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, transportError{err: err}
	}
	defer httpResponse.Body.Close()
	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("read error (%s): %w", httpRequest.URL, err)
	}
	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		log.Logger().Debugf("HTTP response body: %s", core.TruncateBody(responseBody))
		return nil, newAPIError(httpResponse.StatusCode, responseBody)
	}
	if result != nil {
		if err := json.Unmarshal(responseBody, result); err != nil {
			return nil, fmt.Errorf("%T JSON unmarshal error: %w", result, err)
		}
	}
	return httpResponse, nil
}

// cacheMaxAge returns how long the response may be cached according to its Cache-Control and Expires headers.
func cacheMaxAge(httpRequest *http.Request, httpResponse *http.Response) time.Duration {
	reasons, expirationTime, err := cachecontrol.CachableResponse(httpRequest, httpResponse, cachecontrol.Options{})
	if err != nil || len(reasons) > 0 || expirationTime.IsZero() {
		return 0
	}
	maxAge := time.Until(expirationTime)
	if maxAge < 0 {
		return 0
	}
	return maxAge
}

func issuerURL(issuerDomain string, pathParts ...string) string {
	return core.JoinURLPaths(append([]string{issuerScheme + "://" + issuerDomain}, pathParts...)...)
}

func isTransportError(err error) bool {
	var target transportError
	return errors.As(err, &target)
}

func statusCodeOf(err error) int {
	var apiError APIError
	if errors.As(err, &apiError) {
		return apiError.StatusCode
	}
	return 0
}

// failureMessage returns the message reported to the holder for a failed request.
func failureMessage(err error) string {
	var apiError APIError
	if errors.As(err, &apiError) {
		return apiError.Message
	}
	return err.Error()
}
