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
	"sync"
)

type stubEventManager struct {
	notifier Notifier
	once     sync.Once
}

// NewStubEventManager returns an Event that delivers notifications in-process, for use in tests.
func NewStubEventManager() Event {
	return &stubEventManager{}
}

func (s *stubEventManager) Notifier() Notifier {
	s.once.Do(func() {
		s.notifier = newLocalNotifier()
	})
	return s.notifier
}
