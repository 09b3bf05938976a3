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

package core

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_createEchoServer(t *testing.T) {
	t.Run("wildcard CORS origin is refused in strict mode", func(t *testing.T) {
		_, err := createEchoServer(HTTPConfig{CORS: HTTPCORSConfig{Origin: []string{"*"}}}, true)

		assert.EqualError(t, err, "wildcard CORS origin is not allowed in strict mode")
	})
	t.Run("wildcard CORS origin is allowed outside strict mode", func(t *testing.T) {
		server, err := createEchoServer(HTTPConfig{CORS: HTTPCORSConfig{Origin: []string{"*"}}}, false)

		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestHTTPErrorHandler(t *testing.T) {
	server, err := createEchoServer(HTTPConfig{}, false)
	require.NoError(t, err)
	server.GET("/not-found", func(c echo.Context) error {
		c.Set(OperationIDContextKey, "GetThing")
		return NotFoundError("thing not found")
	})
	server.GET("/unexpected", func(c echo.Context) error {
		return errors.New("boom")
	})
	server.GET("/echo-error", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad input")
	})
	server.GET("/resolved", func(c echo.Context) error {
		c.Set(StatusCodeResolverContextKey, testStatusCodeResolver{})
		return errTestConflict
	})

	t.Run("status code error is written as problem", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/not-found", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `"title":"GetThing failed"`)
		assert.Contains(t, rec.Body.String(), `"detail":"thing not found"`)
	})
	t.Run("unknown error maps to 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unexpected", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"Operation failed"`)
	})
	t.Run("echo HTTP error keeps its status code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo-error", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), "bad input"))
	})
	t.Run("status code from the API's resolver", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resolved", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

var errTestConflict = errors.New("conflict")

type testStatusCodeResolver struct{}

func (testStatusCodeResolver) ResolveStatusCode(err error) int {
	return ResolveStatusCode(err, map[error]int{errTestConflict: http.StatusConflict})
}

func TestStatusEngine(t *testing.T) {
	system := NewSystem()
	status := NewStatusEngine(system)
	system.RegisterEngine(status)
	system.RegisterEngine(NewMetricsEngine())
	server, err := createEchoServer(HTTPConfig{}, false)
	require.NoError(t, err)
	status.Routes(server)

	t.Run("status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})
	t.Run("diagnostics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/diagnostics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Status\n\tVersion: ")
		assert.Contains(t, rec.Body.String(), "Registered engines: Status,Metrics")
	})
}

func TestMetricsEngine(t *testing.T) {
	engine := NewMetricsEngine()
	require.NoError(t, engine.Configure(*NewServerConfig()))
	// configuring twice must not fail on already registered collectors
	require.NoError(t, engine.Configure(*NewServerConfig()))
	server, err := createEchoServer(HTTPConfig{}, false)
	require.NoError(t, err)
	engine.Routes(server)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
