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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("all subscribers receive the notification", func(t *testing.T) {
		notifier := newLocalNotifier()
		var first, second []byte
		_, _ = notifier.Subscribe(ctx, SessionChangedSubject, func(data []byte) { first = data })
		_, _ = notifier.Subscribe(ctx, SessionChangedSubject, func(data []byte) { second = data })

		err := notifier.Publish(ctx, SessionChangedSubject, []byte("logout"))

		require.NoError(t, err)
		assert.Equal(t, []byte("logout"), first)
		assert.Equal(t, []byte("logout"), second)
	})
	t.Run("other subjects are not notified", func(t *testing.T) {
		notifier := newLocalNotifier()
		called := false
		_, _ = notifier.Subscribe(ctx, CredentialsChangedSubject, func(_ []byte) { called = true })

		_ = notifier.Publish(ctx, SessionChangedSubject, []byte("logout"))

		assert.False(t, called)
	})
	t.Run("unsubscribed handlers are not notified", func(t *testing.T) {
		notifier := newLocalNotifier()
		called := false
		unsubscribe, _ := notifier.Subscribe(ctx, SessionChangedSubject, func(_ []byte) { called = true })

		unsubscribe()
		_ = notifier.Publish(ctx, SessionChangedSubject, []byte("logout"))

		assert.False(t, called)
	})
	t.Run("handler may subscribe while being notified", func(t *testing.T) {
		notifier := newLocalNotifier()
		_, _ = notifier.Subscribe(ctx, SessionChangedSubject, func(_ []byte) {
			_, _ = notifier.Subscribe(ctx, SessionChangedSubject, func(_ []byte) {})
		})

		err := notifier.Publish(ctx, SessionChangedSubject, nil)

		assert.NoError(t, err)
	})
}
