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

import "encoding/json"

// Kind identifies the variant of an Intent. Its value is used as type discriminator in JSON.
type Kind string

const (
	// DIDConnectKind is the kind of DIDConnect intents.
	DIDConnectKind Kind = "did-connect"
	// CredentialOfferKind is the kind of CredentialOffer intents.
	CredentialOfferKind Kind = "cred-offer"
	// CredentialShareKind is the kind of CredentialShare intents.
	CredentialShareKind Kind = "cred-share"
)

// Intent is what the holder wants to do with scanned or pasted input.
// It is one of DIDConnect, CredentialOffer or CredentialShare.
type Intent interface {
	Kind() Kind
}

// DIDConnect requests the holder to connect their DID to an application at the issuer.
type DIDConnect struct {
	ApplicationID string `json:"applicationId"`
	IssuerDomain  string `json:"issuerDomain"`
}

// CredentialOffer offers a credential that can be obtained with a pre-authorized code.
type CredentialOffer struct {
	PreAuthCode  string `json:"preAuthCode"`
	IssuerDomain string `json:"issuerDomain"`
}

// CredentialShare carries a credential shared by another holder.
// Exactly one of the fields is set.
type CredentialShare struct {
	RawCredential  string                 `json:"rawCredential,omitempty"`
	CredentialData map[string]interface{} `json:"credentialData,omitempty"`
	URL            string                 `json:"url,omitempty"`
}

func (DIDConnect) Kind() Kind {
	return DIDConnectKind
}

func (CredentialOffer) Kind() Kind {
	return CredentialOfferKind
}

func (CredentialShare) Kind() Kind {
	return CredentialShareKind
}

// MarshalJSON adds the type discriminator.
func (d DIDConnect) MarshalJSON() ([]byte, error) {
	type plain DIDConnect
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{Type: d.Kind(), plain: plain(d)})
}

// MarshalJSON adds the type discriminator.
func (c CredentialOffer) MarshalJSON() ([]byte, error) {
	type plain CredentialOffer
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{Type: c.Kind(), plain: plain(c)})
}

// MarshalJSON adds the type discriminator.
func (c CredentialShare) MarshalJSON() ([]byte, error) {
	type plain CredentialShare
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{Type: c.Kind(), plain: plain(c)})
}
