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

package vcr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nuts-foundation/didholder/audit"
	"github.com/nuts-foundation/didholder/auth"
	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/vcr/credential"
	"github.com/nuts-foundation/didholder/vcr/holder"
	"github.com/nuts-foundation/didholder/vcr/intent"
	"github.com/nuts-foundation/didholder/vcr/log"
	"github.com/nuts-foundation/didholder/vcr/openid4vci"
)

// maxSharedCredentialSize limits the size of credentials fetched from a shared URL.
const maxSharedCredentialSize = 1 << 20

var _ Wallet = (*wallet)(nil)

type wallet struct {
	classifier      *intent.Classifier
	client          openid4vci.IssuerClient
	store           *holder.Store
	sessions        auth.Sessions
	httpClient      core.HTTPRequestDoer
	credentialTypes []string
	now             func() time.Time
}

func (w *wallet) HandleInput(ctx context.Context, raw string) (Outcome, error) {
	parsed, err := w.classifier.Classify(raw)
	if err != nil {
		log.Logger().
			WithError(err).
			Info("Unable to classify input")
		return Outcome{}, err
	}
	outcome := Outcome{Kind: parsed.Kind(), Intent: parsed}
	log.Logger().
		WithField(core.LogFieldIntent, parsed.Kind()).
		Debug("Handling input")
	switch value := parsed.(type) {
	case intent.DIDConnect:
		outcome.Connect, err = w.connect(ctx, value)
	case intent.CredentialOffer:
		outcome.Credential, err = w.acceptOffer(ctx, value)
	case intent.CredentialShare:
		outcome.Credential, err = w.receiveShare(ctx, value)
	default:
		err = fmt.Errorf("unsupported intent: %s", parsed.Kind())
	}
	if err != nil {
		return Outcome{}, err
	}
	return outcome, nil
}

// authenticatedDID returns the DID of the authenticated holder, or ErrNotAuthenticated.
func (w *wallet) authenticatedDID() (string, error) {
	state := w.sessions.State()
	if !state.IsAuthenticated || state.DID == "" {
		return "", auth.ErrNotAuthenticated
	}
	return state.DID, nil
}

func (w *wallet) connect(ctx context.Context, request intent.DIDConnect) (*openid4vci.ConnectResult, error) {
	holderDID, err := w.authenticatedDID()
	if err != nil {
		return nil, err
	}
	message := fmt.Sprintf("connect:%s:%s", request.ApplicationID, holderDID)
	signature, err := w.sessions.SignMessage(ctx, []byte(message))
	if err != nil {
		return nil, fmt.Errorf("unable to sign connect request: %w", err)
	}
	result := w.client.ConnectDID(ctx, request.IssuerDomain, request.ApplicationID, holderDID, signature)
	logger := log.Logger().
		WithField(core.LogFieldIssuerDomain, request.IssuerDomain).
		WithField(core.LogFieldDID, holderDID)
	if result.Success {
		audit.Log(ctx, logger, audit.DIDConnectedEvent).Infof("Connected to application %s", request.ApplicationID)
	} else {
		logger.Infof("Connect to application %s failed: %s", request.ApplicationID, result.Message)
	}
	return &result, nil
}

func (w *wallet) acceptOffer(ctx context.Context, offer intent.CredentialOffer) (*credential.Credential, error) {
	if _, err := w.authenticatedDID(); err != nil {
		return nil, err
	}
	// token and credential endpoints come from the discovery document, so each step depends on the previous one
	token, err := w.client.RequestToken(ctx, offer.IssuerDomain, offer.PreAuthCode)
	if err != nil {
		return nil, err
	}
	response, err := w.client.RequestCredential(ctx, offer.IssuerDomain, token.AccessToken, w.credentialTypes)
	if err != nil {
		return nil, err
	}
	cred, err := w.store.AddToken(ctx, response.Credential)
	if err != nil {
		return nil, err
	}
	logger := log.Logger().
		WithField(core.LogFieldIssuerDomain, offer.IssuerDomain).
		WithField(core.LogFieldCredentialID, cred.ID).
		WithField(core.LogFieldCredentialType, cred.MostSpecificType())
	audit.Log(ctx, logger, audit.CredentialReceivedEvent).Info("Credential offer accepted")
	return &cred, nil
}

func (w *wallet) receiveShare(ctx context.Context, share intent.CredentialShare) (*credential.Credential, error) {
	var cred credential.Credential
	var err error
	switch {
	case share.RawCredential != "":
		cred, err = w.store.AddToken(ctx, share.RawCredential)
	case len(share.CredentialData) > 0:
		cred, err = w.addData(ctx, share.CredentialData)
	case share.URL != "":
		cred, err = w.addFromURL(ctx, share.URL)
	default:
		err = fmt.Errorf("%w: shared credential is empty", intent.ErrUnrecognizedFormat)
	}
	if err != nil {
		return nil, err
	}
	logger := log.Logger().
		WithField(core.LogFieldCredentialID, cred.ID).
		WithField(core.LogFieldCredentialType, cred.MostSpecificType())
	audit.Log(ctx, logger, audit.CredentialReceivedEvent).Info("Shared credential added")
	return &cred, nil
}

func (w *wallet) addData(ctx context.Context, data map[string]interface{}) (credential.Credential, error) {
	cred, err := credential.FromData(data)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("%w: %s", holder.ErrCredentialParseFailed, err)
	}
	if err := w.store.Add(ctx, cred); err != nil {
		return credential.Credential{}, err
	}
	return cred, nil
}

func (w *wallet) addFromURL(ctx context.Context, sharedURL string) (credential.Credential, error) {
	body, err := w.fetch(ctx, sharedURL)
	if err != nil {
		return credential.Credential{}, core.WrapError(ErrShareFetchFailed, err)
	}
	body = bytes.TrimSpace(body)
	switch {
	case bytes.HasPrefix(body, []byte("eyJ")):
		return w.store.AddToken(ctx, string(body))
	case bytes.HasPrefix(body, []byte("{")):
		cred, err := credential.FromJSON(body)
		if err != nil {
			return credential.Credential{}, fmt.Errorf("%w: %s", holder.ErrCredentialParseFailed, err)
		}
		if err := w.store.Add(ctx, cred); err != nil {
			return credential.Credential{}, err
		}
		return cred, nil
	default:
		return credential.Credential{}, fmt.Errorf("%w: response is neither a signed credential nor a JSON object", holder.ErrCredentialParseFailed)
	}
}

func (w *wallet) fetch(ctx context.Context, sharedURL string) ([]byte, error) {
	if !strings.HasPrefix(sharedURL, "http://") && !strings.HasPrefix(sharedURL, "https://") {
		return nil, fmt.Errorf("unsupported URL: %s", sharedURL)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, sharedURL, nil)
	if err != nil {
		return nil, err
	}
	response, err := w.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if err := core.TestResponseCodeWithLog(http.StatusOK, response, log.Logger()); err != nil {
		return nil, err
	}
	return io.ReadAll(io.LimitReader(response.Body, maxSharedCredentialSize))
}

func (w *wallet) AddToken(ctx context.Context, token string) (credential.Credential, error) {
	cred, err := w.store.AddToken(ctx, token)
	if err != nil {
		return credential.Credential{}, err
	}
	audit.Log(ctx, log.Logger().WithField(core.LogFieldCredentialID, cred.ID), audit.CredentialReceivedEvent).
		Info("Credential added")
	return cred, nil
}

func (w *wallet) List() []credential.Credential {
	return w.store.List()
}

func (w *wallet) Get(id string) (credential.Credential, error) {
	cred, ok := w.store.Get(id)
	if !ok {
		return credential.Credential{}, holder.ErrNotFound
	}
	return cred, nil
}

func (w *wallet) Remove(ctx context.Context, id string) error {
	if err := w.store.Remove(ctx, id); err != nil {
		return err
	}
	audit.Log(ctx, log.Logger().WithField(core.LogFieldCredentialID, id), audit.CredentialRemovedEvent).
		Info("Credential removed")
	return nil
}

func (w *wallet) Clear(ctx context.Context) error {
	if err := w.store.Clear(ctx); err != nil {
		return err
	}
	audit.Log(ctx, log.Logger(), audit.WalletClearedEvent).Info("Wallet cleared")
	return nil
}

func (w *wallet) Verify(ctx context.Context, id string) (openid4vci.VerificationResult, error) {
	cred, err := w.Get(id)
	if err != nil {
		return openid4vci.VerificationResult{}, err
	}
	if cred.IsExpired(w.now()) {
		return openid4vci.VerificationResult{Valid: false, Message: "credential expired on " + cred.ExpirationDate}, nil
	}
	result := w.client.VerifyCredential(ctx, cred)
	log.Logger().
		WithField(core.LogFieldCredentialID, cred.ID).
		WithField(core.LogFieldCredentialIssuer, cred.Issuer).
		Debugf("Credential verified: valid=%t", result.Valid)
	return result, nil
}

func (w *wallet) Share(id string, fields []string) (holder.SharedCredential, string, error) {
	return w.store.Share(id, fields)
}

func (w *wallet) Export(format string) ([]byte, error) {
	return w.store.Export(format)
}
