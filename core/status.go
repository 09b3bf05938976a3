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
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

var _ Named = (*StatusEngine)(nil)
var _ Routable = (*StatusEngine)(nil)
var _ Diagnosable = (*StatusEngine)(nil)

// StatusEngine exposes the liveness endpoint and the diagnostics of all engines.
type StatusEngine struct {
	system *System
}

// NewStatusEngine creates a new Engine for viewing all engines
func NewStatusEngine(system *System) *StatusEngine {
	return &StatusEngine{system: system}
}

// Name returns the name of the engine.
func (s *StatusEngine) Name() string {
	return "Status"
}

// Routes registers the status endpoints.
func (s *StatusEngine) Routes(router EchoRouter) {
	router.GET("/status/diagnostics", s.diagnosticsOverview)
	router.GET("/status", statusOK)
}

func (s *StatusEngine) diagnosticsOverview(ctx echo.Context) error {
	return ctx.String(http.StatusOK, s.diagnosticsSummaryAsText())
}

func (s *StatusEngine) diagnosticsSummaryAsText() string {
	var lines []string
	s.system.VisitEngines(func(engine Engine) {
		diagnosable, ok := engine.(ViewableDiagnostics)
		if !ok {
			return
		}
		lines = append(lines, diagnosable.Name())
		for _, d := range diagnosable.Diagnostics() {
			lines = append(lines, fmt.Sprintf("\t%s: %s", d.Name(), d.String()))
		}
	})
	return strings.Join(lines, "\n")
}

// Diagnostics returns the software version and the names of all registered engines.
func (s *StatusEngine) Diagnostics() []DiagnosticResult {
	return []DiagnosticResult{
		&GenericDiagnosticResult{Title: "Version", Value: Version()},
		&GenericDiagnosticResult{Title: "Registered engines", Value: strings.Join(s.listAllEngines(), ",")},
	}
}

func (s *StatusEngine) listAllEngines() []string {
	var names []string
	s.system.VisitEngines(func(engine Engine) {
		names = append(names, engineName(engine))
	})
	return names
}

// statusOK returns 200 OK with a "OK" body
func statusOK(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "OK")
}
