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

// Package audit logs security relevant events, together with the actor and operation that caused them.
package audit

import (
	"context"

	"github.com/sirupsen/logrus"
)

const (
	// WalletAuthenticatedEvent occurs when the holder signed the authentication challenge.
	WalletAuthenticatedEvent = "WalletAuthenticated"
	// WalletLoggedOutEvent occurs when the authentication session is removed on request of the holder.
	WalletLoggedOutEvent = "WalletLoggedOut"
	// DIDConnectedEvent occurs when the holder DID was connected to an issuer application.
	DIDConnectedEvent = "DIDConnected"
	// CredentialReceivedEvent occurs when a credential is added to the wallet.
	CredentialReceivedEvent = "CredentialReceived"
	// CredentialRemovedEvent occurs when a credential is removed from the wallet.
	CredentialRemovedEvent = "CredentialRemoved"
	// WalletClearedEvent occurs when all credentials are removed from the wallet.
	WalletClearedEvent = "WalletCleared"
)

// SystemActor is the actor of operations that are not attributable to a user or client.
const SystemActor = "system"

type auditContextKey struct{}

// Info contains the audit information of an operation.
type Info struct {
	// Actor is who invoked the operation, e.g. the client IP address or "app-cli".
	Actor string
	// Operation is the module and operation name, e.g. "VCR.RemoveCredential".
	Operation string
}

// Context returns a child context that carries the audit information.
func Context(ctx context.Context, actor, module, operation string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, Info{
		Actor:     actor,
		Operation: module + "." + operation,
	})
}

// InfoFromContext returns the audit information of the context, or nil if it has none.
func InfoFromContext(ctx context.Context) *Info {
	info, ok := ctx.Value(auditContextKey{}).(Info)
	if !ok {
		return nil
	}
	return &info
}

func auditLogger() *logrus.Logger {
	return logrus.StandardLogger()
}

// Log returns a log entry for the given audit event, with the fields of the given logger.
// Operations without audit information in their context are attributed to SystemActor.
// It panics when no event name is given.
func Log(ctx context.Context, logger *logrus.Entry, eventName string) *logrus.Entry {
	if eventName == "" {
		panic("audit: event name is required")
	}
	info := InfoFromContext(ctx)
	if info == nil {
		info = &Info{Actor: SystemActor}
	}
	return auditLogger().
		WithFields(logger.Data).
		WithField("log", "audit").
		WithField("actor", info.Actor).
		WithField("operation", info.Operation).
		WithField("event", eventName)
}
