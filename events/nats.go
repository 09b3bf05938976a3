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
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/events/log"
)

var _ Notifier = (*natsNotifier)(nil)

// natsNotifier broadcasts notifications over NATS core pub/sub.
// NATS delivers messages to subscriptions of the publishing connection as well.
type natsNotifier struct {
	pool ConnectionPool
}

func (n natsNotifier) Publish(ctx context.Context, subject string, data []byte) error {
	conn, err := n.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("unable to acquire NATS connection: %w", err)
	}
	if err = conn.Publish(subject, data); err != nil {
		return fmt.Errorf("unable to publish notification: %w", err)
	}
	log.Logger().
		WithField(core.LogFieldEventSubject, subject).
		Trace("Published notification")
	return conn.Flush()
}

func (n natsNotifier) Subscribe(ctx context.Context, subject string, handler Handler) (func(), error) {
	conn, err := n.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to acquire NATS connection: %w", err)
	}
	subscription, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("unable to subscribe to %s: %w", subject, err)
	}
	return func() {
		if err := subscription.Unsubscribe(); err != nil {
			log.Logger().
				WithError(err).
				WithField(core.LogFieldEventSubject, subject).
				Warn("Unable to unsubscribe")
		}
	}, nil
}
