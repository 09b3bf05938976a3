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
	"sync"

	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/events/log"
)

var _ Notifier = (*localNotifier)(nil)

// localNotifier delivers notifications to subscribers in this process, synchronously.
type localNotifier struct {
	mux         sync.RWMutex
	nextID      int
	subscribers map[string]map[int]Handler
}

func newLocalNotifier() *localNotifier {
	return &localNotifier{subscribers: map[string]map[int]Handler{}}
}

func (l *localNotifier) Publish(_ context.Context, subject string, data []byte) error {
	l.mux.RLock()
	handlers := make([]Handler, 0, len(l.subscribers[subject]))
	for _, handler := range l.subscribers[subject] {
		handlers = append(handlers, handler)
	}
	l.mux.RUnlock()

	log.Logger().
		WithField(core.LogFieldEventSubject, subject).
		Tracef("Delivering notification to %d subscriber(s)", len(handlers))
	for _, handler := range handlers {
		handler(data)
	}
	return nil
}

func (l *localNotifier) Subscribe(_ context.Context, subject string, handler Handler) (func(), error) {
	l.mux.Lock()
	defer l.mux.Unlock()
	id := l.nextID
	l.nextID++
	if l.subscribers[subject] == nil {
		l.subscribers[subject] = map[int]Handler{}
	}
	l.subscribers[subject][id] = handler
	return func() {
		l.mux.Lock()
		defer l.mux.Unlock()
		delete(l.subscribers[subject], id)
	}, nil
}
