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
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

// StubEchoServer is an EchoServer that records the registered routes instead of serving them.
// Start blocks until Shutdown is called, like the actual server.
type StubEchoServer struct {
	mux          sync.Mutex
	boundAddress string
	routes       []string
	started      chan struct{}
	stopped      chan struct{}
	stopOnce     sync.Once
}

// NewStubEchoServer creates a new StubEchoServer.
func NewStubEchoServer() *StubEchoServer {
	return &StubEchoServer{
		started: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (s *StubEchoServer) Use(_ ...echo.MiddlewareFunc) {
}

func (s *StubEchoServer) DELETE(path string, _ echo.HandlerFunc, _ ...echo.MiddlewareFunc) *echo.Route {
	return s.Add(http.MethodDelete, path, nil)
}

func (s *StubEchoServer) GET(path string, _ echo.HandlerFunc, _ ...echo.MiddlewareFunc) *echo.Route {
	return s.Add(http.MethodGet, path, nil)
}

func (s *StubEchoServer) POST(path string, _ echo.HandlerFunc, _ ...echo.MiddlewareFunc) *echo.Route {
	return s.Add(http.MethodPost, path, nil)
}

func (s *StubEchoServer) PUT(path string, _ echo.HandlerFunc, _ ...echo.MiddlewareFunc) *echo.Route {
	return s.Add(http.MethodPut, path, nil)
}

func (s *StubEchoServer) Add(method, path string, _ echo.HandlerFunc, _ ...echo.MiddlewareFunc) *echo.Route {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.routes = append(s.routes, method+" "+path)
	return &echo.Route{Method: method, Path: path}
}

// Start records the address and blocks until Shutdown is called.
func (s *StubEchoServer) Start(address string) error {
	s.mux.Lock()
	s.boundAddress = address
	s.mux.Unlock()
	close(s.started)
	<-s.stopped
	return http.ErrServerClosed
}

func (s *StubEchoServer) Shutdown(_ context.Context) error {
	s.stopOnce.Do(func() {
		close(s.stopped)
	})
	return nil
}

// Started is closed when Start has been called.
func (s *StubEchoServer) Started() <-chan struct{} {
	return s.started
}

// BoundAddress returns the address passed to Start.
func (s *StubEchoServer) BoundAddress() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.boundAddress
}

// Routes returns the registered routes as "METHOD path".
func (s *StubEchoServer) Routes() []string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]string(nil), s.routes...)
}
