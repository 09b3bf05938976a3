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
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/didholder/audit"
	"github.com/nuts-foundation/didholder/auth"
	"github.com/nuts-foundation/didholder/core"
	"github.com/nuts-foundation/didholder/vcr"
	"github.com/nuts-foundation/didholder/vcr/credential"
	"github.com/nuts-foundation/didholder/vcr/holder"
	"github.com/nuts-foundation/didholder/vcr/intent"
	"github.com/nuts-foundation/didholder/vcr/openid4vci"
)

const basePath = "/internal/wallet/v1"

// maxInputSize limits the size of scanned or pasted input.
const maxInputSize = 64 * 1024

var _ core.Routable = (*Wrapper)(nil)
var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)

// Wrapper exposes the wallet over HTTP.
type Wrapper struct {
	VCR vcr.VCR
}

// ShareRequest is the body of the share operation.
type ShareRequest struct {
	// Fields are the credential subject fields to disclose. When empty, all fields are disclosed.
	Fields []string `json:"fields"`
}

// ShareResponse is the result of the share operation.
type ShareResponse struct {
	Credential holder.SharedCredential `json:"credential"`
	Link       string                  `json:"link"`
}

// Routes registers the wallet endpoints.
func (w *Wrapper) Routes(router core.EchoRouter) {
	router.POST(basePath+"/input", w.HandleInput, w.operation("HandleInput"))
	router.GET(basePath+"/credential", w.ListCredentials, w.operation("ListCredentials"))
	router.DELETE(basePath+"/credential", w.ClearCredentials, w.operation("ClearCredentials"))
	router.GET(basePath+"/credential/:id", w.GetCredential, w.operation("GetCredential"))
	router.DELETE(basePath+"/credential/:id", w.RemoveCredential, w.operation("RemoveCredential"))
	router.POST(basePath+"/credential/:id/verify", w.VerifyCredential, w.operation("VerifyCredential"))
	router.POST(basePath+"/credential/:id/share", w.ShareCredential, w.operation("ShareCredential"))
	router.GET(basePath+"/export", w.Export, w.operation("Export"))
}

// ResolveStatusCode maps errors returned by this API to HTTP status codes.
func (w *Wrapper) ResolveStatusCode(err error) int {
	return core.ResolveStatusCode(err, map[error]int{
		holder.ErrNotFound:                                          http.StatusNotFound,
		holder.ErrCredentialParseFailed:                             http.StatusBadRequest,
		intent.ErrUnrecognizedFormat:                                http.StatusBadRequest,
		intent.ErrMissingParameter:                                  http.StatusBadRequest,
		auth.ErrNotAuthenticated:                                    http.StatusUnauthorized,
		vcr.ErrShareFetchFailed:                                     http.StatusBadGateway,
		openid4vci.Error{Kind: openid4vci.IssuerUnreachable}:        http.StatusBadGateway,
		openid4vci.Error{Kind: openid4vci.IssuerConfigInvalid}:      http.StatusBadGateway,
		openid4vci.Error{Kind: openid4vci.TokenExchangeFailed}:      http.StatusBadGateway,
		openid4vci.Error{Kind: openid4vci.CredentialIssuanceFailed}: http.StatusBadGateway,
	})
}

// credentialError adds the requested credential ID to not found errors.
func credentialError(err error, id string) error {
	if errors.Is(err, holder.ErrNotFound) {
		return core.NotFoundError("%w: %s", err, id)
	}
	return err
}

func (w *Wrapper) operation(operationID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(core.OperationIDContextKey, operationID)
			ctx.Set(core.StatusCodeResolverContextKey, w)
			audit.Middleware(ctx, vcr.ModuleName, operationID)
			return next(ctx)
		}
	}
}

// HandleInput carries out the intent of the text in the request body.
func (w *Wrapper) HandleInput(ctx echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxInputSize+1))
	if err != nil {
		return err
	}
	if len(body) > maxInputSize {
		return core.InvalidInputError("input exceeds %d bytes", maxInputSize)
	}
	outcome, err := w.VCR.Wallet().HandleInput(ctx.Request().Context(), string(body))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, outcome)
}

// ListCredentials returns all credentials in the wallet.
func (w *Wrapper) ListCredentials(ctx echo.Context) error {
	credentials := w.VCR.Wallet().List()
	if credentials == nil {
		credentials = []credential.Credential{}
	}
	return ctx.JSON(http.StatusOK, credentials)
}

// ClearCredentials removes all credentials.
func (w *Wrapper) ClearCredentials(ctx echo.Context) error {
	if err := w.VCR.Wallet().Clear(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetCredential returns a single credential.
func (w *Wrapper) GetCredential(ctx echo.Context) error {
	result, err := w.VCR.Wallet().Get(ctx.Param("id"))
	if err != nil {
		return credentialError(err, ctx.Param("id"))
	}
	return ctx.JSON(http.StatusOK, result)
}

func (w *Wrapper) RemoveCredential(ctx echo.Context) error {
	if err := w.VCR.Wallet().Remove(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return credentialError(err, ctx.Param("id"))
	}
	return ctx.NoContent(http.StatusNoContent)
}

// VerifyCredential checks the credential with its issuer. An invalid credential is not an error, it is reported in the result.
func (w *Wrapper) VerifyCredential(ctx echo.Context) error {
	result, err := w.VCR.Wallet().Verify(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return credentialError(err, ctx.Param("id"))
	}
	return ctx.JSON(http.StatusOK, result)
}

// ShareCredential returns the credential reduced to the requested fields, together with a deep link.
func (w *Wrapper) ShareCredential(ctx echo.Context) error {
	var request ShareRequest
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid share request: %w", err)
	}
	shared, link, err := w.VCR.Wallet().Share(ctx.Param("id"), request.Fields)
	if err != nil {
		return credentialError(err, ctx.Param("id"))
	}
	return ctx.JSON(http.StatusOK, ShareResponse{Credential: shared, Link: link})
}

// Export returns all credentials as a JSON or YAML document, depending on the format query parameter.
func (w *Wrapper) Export(ctx echo.Context) error {
	format := strings.ToLower(ctx.QueryParam("format"))
	var contentType string
	switch format {
	case "", holder.JSONExportFormat:
		contentType = echo.MIMEApplicationJSON
	case holder.YAMLExportFormat:
		contentType = "application/yaml"
	default:
		return core.InvalidInputError("unsupported export format: %s", format)
	}
	data, err := w.VCR.Wallet().Export(format)
	if err != nil {
		return fmt.Errorf("unable to export credentials: %w", err)
	}
	return ctx.Blob(http.StatusOK, contentType, data)
}
