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

package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/didholder/audit"
	"github.com/nuts-foundation/didholder/auth"
	"github.com/nuts-foundation/didholder/core"
)

const sessionPath = "/internal/auth/v1/session"

var _ core.Routable = (*Wrapper)(nil)
var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)

// Wrapper exposes the authentication session over HTTP.
type Wrapper struct {
	Auth auth.AuthenticationServices
}

// Routes registers the session endpoints.
func (w *Wrapper) Routes(router core.EchoRouter) {
	router.POST(sessionPath, w.Authenticate, w.operation("Authenticate"))
	router.GET(sessionPath, w.GetSession, w.operation("GetSession"))
	router.DELETE(sessionPath, w.Logout, w.operation("Logout"))
}

// ResolveStatusCode maps errors returned by this API to HTTP status codes.
func (w *Wrapper) ResolveStatusCode(err error) int {
	return core.ResolveStatusCode(err, map[error]int{
		auth.ErrAuthenticationFailed: http.StatusUnauthorized,
		auth.ErrNotAuthenticated:     http.StatusUnauthorized,
	})
}

func (w *Wrapper) operation(operationID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(core.OperationIDContextKey, operationID)
			ctx.Set(core.StatusCodeResolverContextKey, w)
			audit.Middleware(ctx, auth.ModuleName, operationID)
			return next(ctx)
		}
	}
}

// Authenticate signs the challenge with the connected wallet and returns the new state.
func (w *Wrapper) Authenticate(ctx echo.Context) error {
	sessions := w.Auth.Sessions()
	if _, err := sessions.Authenticate(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sessions.State())
}

// GetSession returns the current authentication state.
func (w *Wrapper) GetSession(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, w.Auth.Sessions().State())
}

// Logout removes the session.
func (w *Wrapper) Logout(ctx echo.Context) error {
	if err := w.Auth.Sessions().Logout(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
