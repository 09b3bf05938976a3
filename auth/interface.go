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

package auth

import (
	"context"
)

// AuthenticationServices is the interface of the auth engine as used by other engines.
type AuthenticationServices interface {
	// Sessions returns the authentication session of the wallet.
	Sessions() Sessions
}

// Sessions manages the authentication session of the holder.
type Sessions interface {
	// State returns the current authentication state.
	State() State
	// Authenticate signs a challenge with the connected wallet and stores the resulting session.
	// It returns false and an error wrapping ErrAuthenticationFailed when authentication failed.
	Authenticate(ctx context.Context) (bool, error)
	// Logout removes the stored session.
	Logout(ctx context.Context) error
	// SignMessage signs a message with the connected wallet. It returns ErrNotAuthenticated without a session.
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
	// OnSessionChange registers a handler for state changes. The returned function unregisters it.
	OnSessionChange(handler func(State)) func()
}

var _ Sessions = (*SessionManager)(nil)
