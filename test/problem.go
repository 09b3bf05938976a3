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

package test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Problem is an RFC7807 problem, as written by the API error handler.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// ParseProblem parses a response body as problem.
func ParseProblem(t *testing.T, body []byte) Problem {
	t.Helper()
	var result Problem
	require.NoError(t, json.Unmarshal(body, &result), "response body is not a problem: %s", string(body))
	return result
}

// AssertProblem asserts the response body is a problem with the given title and status code, and a detail containing detail.
func AssertProblem(t *testing.T, body []byte, title string, status int, detail string) bool {
	t.Helper()
	actual := ParseProblem(t, body)
	return assert.Equal(t, title, actual.Title) &&
		assert.Equal(t, status, actual.Status) &&
		assert.Contains(t, actual.Detail, detail)
}
