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

package events

import (
	"context"

	"github.com/nuts-foundation/didholder/core"
)

// SessionChangedSubject is the subject on which authentication session changes are published.
const SessionChangedSubject = "didholder.auth.session"

// CredentialsChangedSubject is the subject on which credential store changes are published.
const CredentialsChangedSubject = "didholder.vcr.credentials"

// Event is the interface of the events engine.
type Event interface {
	core.Engine
	// Notifier returns the Notifier through which change notifications are broadcast.
	Notifier() Notifier
}

// Handler is called with the data of a received notification.
type Handler func(data []byte)

// Notifier broadcasts change notifications to all subscribers, including the publisher itself.
type Notifier interface {
	// Publish sends data to all subscribers of the subject.
	Publish(ctx context.Context, subject string, data []byte) error
	// Subscribe registers a handler for the subject. The returned function removes the subscription.
	Subscribe(ctx context.Context, subject string, handler Handler) (func(), error)
}
