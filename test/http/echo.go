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

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nuts-foundation/didholder/core"
	"github.com/stretchr/testify/require"
)

// StartEchoServer starts an HTTP server with the routes registered by the given function, using the same error handling
// and middleware as the server command. It returns the URL of the server, which is stopped when the test finishes.
func StartEchoServer(t *testing.T, registerRoutesFunc func(router core.EchoRouter)) string {
	echoServer, err := core.NewSystem().EchoCreator()
	require.NoError(t, err)
	registerRoutesFunc(echoServer)
	httpServer := httptest.NewServer(echoServer.(http.Handler))
	t.Cleanup(httpServer.Close)
	return httpServer.URL
}
