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
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// Handler is a http handler for stubbing remote servers in tests. It records the last request it received.
// Usage:
//
//	handler := &Handler{StatusCode: http.StatusOK, ResponseData: someStruct}
//	server := httptest.NewServer(handler)
//
// String response data is written as is, other values are marshalled to JSON.
type Handler struct {
	Request        *http.Request
	RequestHeaders http.Header
	RequestQuery   url.Values
	RequestData    []byte
	StatusCode     int
	ResponseData   interface{}
	ResponseHeader http.Header

	mux       sync.Mutex
	callCount int
}

func (h *Handler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.callCount++
	h.Request = req
	h.RequestData, _ = io.ReadAll(req.Body)
	h.RequestHeaders = req.Header.Clone()
	h.RequestQuery = req.URL.Query()

	var bytes []byte
	if s, ok := h.ResponseData.(string); ok {
		bytes = []byte(s)
	} else {
		writer.Header().Add("Content-Type", "application/json")
		bytes, _ = json.Marshal(h.ResponseData)
	}

	for k, v := range h.ResponseHeader {
		writer.Header().Add(k, v[0])
	}
	statusCode := h.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	writer.WriteHeader(statusCode)
	_, _ = writer.Write(bytes)
}

// CallCount returns the number of requests the handler received.
func (h *Handler) CallCount() int {
	h.mux.Lock()
	defer h.mux.Unlock()
	return h.callCount
}

// RequestJSON unmarshals the body of the last request into target.
func (h *Handler) RequestJSON(target interface{}) error {
	h.mux.Lock()
	defer h.mux.Unlock()
	return json.Unmarshal(h.RequestData, target)
}
