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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/nuts-foundation/didholder/auth"
	"github.com/nuts-foundation/didholder/core"
	testhttp "github.com/nuts-foundation/didholder/test/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testContext struct {
	sessions *auth.MockSessions
	url      string
}

func newTestContext(t *testing.T) testContext {
	ctrl := gomock.NewController(t)
	sessions := auth.NewMockSessions(ctrl)
	authServices := auth.NewMockAuthenticationServices(ctrl)
	authServices.EXPECT().Sessions().Return(sessions).AnyTimes()
	wrapper := &Wrapper{Auth: authServices}
	return testContext{
		sessions: sessions,
		url:      testhttp.StartEchoServer(t, wrapper.Routes) + sessionPath,
	}
}

func doRequest(t *testing.T, method string, url string) (*http.Response, []byte) {
	request, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return response, body
}

func TestWrapper_Authenticate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newTestContext(t)
		state := auth.State{DID: "did:pkh:solana:abc", IsAuthenticated: true}
		ctx.sessions.EXPECT().Authenticate(gomock.Any()).Return(true, nil)
		ctx.sessions.EXPECT().State().Return(state)

		response, body := doRequest(t, http.MethodPost, ctx.url)

		assert.Equal(t, http.StatusOK, response.StatusCode)
		var actual auth.State
		require.NoError(t, json.Unmarshal(body, &actual))
		assert.Equal(t, state, actual)
	})
	t.Run("authentication failed", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.sessions.EXPECT().Authenticate(gomock.Any()).Return(false, core.WrapError(auth.ErrAuthenticationFailed, errors.New("user rejected")))

		response, body := doRequest(t, http.MethodPost, ctx.url)

		assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
		assert.Contains(t, string(body), `"title":"Authenticate failed"`)
		assert.Contains(t, string(body), "authentication failed: user rejected")
	})
	t.Run("unexpected error", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.sessions.EXPECT().Authenticate(gomock.Any()).Return(false, errors.New("boom"))

		response, _ := doRequest(t, http.MethodPost, ctx.url)

		assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	})
}

func TestWrapper_GetSession(t *testing.T) {
	ctx := newTestContext(t)
	ctx.sessions.EXPECT().State().Return(auth.State{DID: "did:pkh:solana:abc"})

	response, body := doRequest(t, http.MethodGet, ctx.url)

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.JSONEq(t, `{"did":"did:pkh:solana:abc","isAuthenticated":false,"authLoading":false}`, string(body))
}

func TestWrapper_Logout(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.sessions.EXPECT().Logout(gomock.Any()).Return(nil)

		response, _ := doRequest(t, http.MethodDelete, ctx.url)

		assert.Equal(t, http.StatusNoContent, response.StatusCode)
	})
	t.Run("store failure", func(t *testing.T) {
		ctx := newTestContext(t)
		ctx.sessions.EXPECT().Logout(gomock.Any()).Return(errors.New("disk full"))

		response, body := doRequest(t, http.MethodDelete, ctx.url)

		assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
		assert.Contains(t, string(body), "disk full")
	})
}
