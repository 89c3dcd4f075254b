/*
 * Credport node
 * Copyright (C) 2025 Credport community
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

// Package v1 contains the HTTP API of the node. Owner-facing operations live under
// /internal/credential/v1 and carry the requester in the X-Requester header; credential
// verification lives under /public/verify/v1 and is unauthenticated.
package v1

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/credport/credport-node/anchor"
	"github.com/credport/credport-node/audit"
	"github.com/credport/credport-node/core"
	"github.com/credport/credport-node/credential"
	"github.com/credport/credport-node/extraction"
	"github.com/credport/credport-node/fraud"
	"github.com/credport/credport-node/ledger"
	"github.com/credport/credport-node/verify"
)

// RequesterHeader carries the identity of the caller on internal endpoints. It is set by the
// authenticating reverse proxy in front of the node.
const RequesterHeader = "X-Requester"

const apiModuleName = "CredentialAPI"

// Credentials is the part of the credential module this API uses.
type Credentials interface {
	Create(ctx context.Context, c credential.Credential) (*credential.Credential, error)
	Get(ctx context.Context, id string, requester string) (*credential.Credential, error)
	List(ctx context.Context, owner string) ([]credential.Credential, error)
	Update(ctx context.Context, c credential.Credential, requester string) (*credential.Credential, error)
	Delete(ctx context.Context, id string, requester string) error
}

var _ core.Routable = (*Wrapper)(nil)
var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)

// Wrapper implements the HTTP API as Echo handlers on top of the node's modules.
type Wrapper struct {
	Credentials Credentials
	Anchorer    anchor.Anchorer
	Verifier    verify.Verifier
	Extractor   extraction.Extractor
	Detector    fraud.Detector
}

func (w *Wrapper) Name() string {
	return apiModuleName
}

// ResolveStatusCode maps errors returned by the modules to HTTP status codes.
func (w *Wrapper) ResolveStatusCode(err error) int {
	return core.ResolveStatusCode(err, map[error]int{
		credential.ErrNotFound:             http.StatusNotFound,
		credential.ErrNotOwner:             http.StatusForbidden,
		credential.ErrAnchoredFieldChanged: http.StatusConflict,
		verify.ErrMalformedFingerprint:     http.StatusBadRequest,
		ledger.ErrRejected:                 http.StatusBadGateway,
		ledger.ErrUnavailable:              http.StatusBadGateway,
		ledger.ErrTimeout:                  http.StatusGatewayTimeout,
		extraction.ErrUnavailable:          http.StatusBadGateway,
		fraud.ErrUnavailable:               http.StatusBadGateway,
	})
}

func (w *Wrapper) Routes(router core.EchoRouter) {
	middleware := func(operationID string) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(ctx echo.Context) error {
				ctx.Set(core.StatusCodeResolverContextKey, w)
				ctx.Set(core.ModuleNameContextKey, apiModuleName)
				ctx.Set(core.OperationIDContextKey, operationID)
				audit.Middleware(ctx, apiModuleName, operationID)
				return next(ctx)
			}
		}
	}

	router.POST("/internal/credential/v1", w.CreateCredential, middleware("CreateCredential"))
	router.GET("/internal/credential/v1", w.ListCredentials, middleware("ListCredentials"))
	router.GET("/internal/credential/v1/:id", w.GetCredential, middleware("GetCredential"))
	router.PUT("/internal/credential/v1/:id", w.UpdateCredential, middleware("UpdateCredential"))
	router.DELETE("/internal/credential/v1/:id", w.DeleteCredential, middleware("DeleteCredential"))
	router.POST("/internal/credential/v1/:id/anchor", w.AnchorCredential, middleware("AnchorCredential"))
	router.GET("/internal/credential/v1/:id/qr", w.CredentialQR, middleware("CredentialQR"))
	router.POST("/internal/credential/v1/extract", w.ExtractCertificate, middleware("ExtractCertificate"))
	router.POST("/internal/credential/v1/fraudcheck", w.CheckCertificate, middleware("CheckCertificate"))
	router.GET("/public/verify/v1/:fingerprint", w.VerifyFingerprint, middleware("VerifyFingerprint"))
}

// CreateCredential handles POST /internal/credential/v1
func (w *Wrapper) CreateCredential(ctx echo.Context) error {
	requester, err := requesterOf(ctx)
	if err != nil {
		return err
	}
	request := credential.Credential{}
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	request.Owner = requester
	if err := request.Validate(); err != nil {
		return core.InvalidInputError("invalid credential: %w", err)
	}
	created, err := w.Credentials.Create(ctx.Request().Context(), request)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, created)
}

// ListCredentials handles GET /internal/credential/v1
func (w *Wrapper) ListCredentials(ctx echo.Context) error {
	requester, err := requesterOf(ctx)
	if err != nil {
		return err
	}
	credentials, err := w.Credentials.List(ctx.Request().Context(), requester)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, credentials)
}

// GetCredential handles GET /internal/credential/v1/:id
func (w *Wrapper) GetCredential(ctx echo.Context) error {
	requester, err := requesterOf(ctx)
	if err != nil {
		return err
	}
	result, err := w.Credentials.Get(ctx.Request().Context(), ctx.Param("id"), requester)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

// UpdateCredential handles PUT /internal/credential/v1/:id
func (w *Wrapper) UpdateCredential(ctx echo.Context) error {
	requester, err := requesterOf(ctx)
	if err != nil {
		return err
	}
	request := credential.Credential{}
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	request.ID = ctx.Param("id")
	request.Owner = requester
	if err := request.Validate(); err != nil {
		return core.InvalidInputError("invalid credential: %w", err)
	}
	updated, err := w.Credentials.Update(ctx.Request().Context(), request, requester)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, updated)
}

// DeleteCredential handles DELETE /internal/credential/v1/:id
func (w *Wrapper) DeleteCredential(ctx echo.Context) error {
	requester, err := requesterOf(ctx)
	if err != nil {
		return err
	}
	if err := w.Credentials.Delete(ctx.Request().Context(), ctx.Param("id"), requester); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AnchorResult is the response of a successful anchoring call.
type AnchorResult struct {
	TransactionReference string `json:"transactionReference"`
}

// AnchorCredential handles POST /internal/credential/v1/:id/anchor
func (w *Wrapper) AnchorCredential(ctx echo.Context) error {
	requester, err := requesterOf(ctx)
	if err != nil {
		return err
	}
	txRef, err := w.Anchorer.Anchor(ctx.Request().Context(), ctx.Param("id"), requester)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, AnchorResult{TransactionReference: txRef})
}

// CredentialQR handles GET /internal/credential/v1/:id/qr
func (w *Wrapper) CredentialQR(ctx echo.Context) error {
	requester, err := requesterOf(ctx)
	if err != nil {
		return err
	}
	current, err := w.Credentials.Get(ctx.Request().Context(), ctx.Param("id"), requester)
	if err != nil {
		return err
	}
	if current.Fingerprint == nil {
		return core.NotFoundError("credential has no fingerprint, anchor it first")
	}
	ctx.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	ctx.Response().WriteHeader(http.StatusOK)
	return w.Verifier.RenderQR(ctx.Response(), current.Fingerprint.String())
}

// ExtractCertificate handles POST /internal/credential/v1/extract
func (w *Wrapper) ExtractCertificate(ctx echo.Context) error {
	if _, err := requesterOf(ctx); err != nil {
		return err
	}
	fileHeader, err := ctx.FormFile("certificateFile")
	if err != nil {
		return core.InvalidInputError("missing certificateFile upload: %w", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	result, err := w.Extractor.Extract(ctx.Request().Context(), file, fileHeader.Filename, ctx.FormValue("platform"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

// CheckCertificate handles POST /internal/credential/v1/fraudcheck
// The verdict is advisory: it informs the owner, it never blocks creating or anchoring a credential.
func (w *Wrapper) CheckCertificate(ctx echo.Context) error {
	if _, err := requesterOf(ctx); err != nil {
		return err
	}
	fileHeader, err := ctx.FormFile("certificateFile")
	if err != nil {
		return core.InvalidInputError("missing certificateFile upload: %w", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	result, err := w.Detector.Check(ctx.Request().Context(), file, fileHeader.Filename, fileHeader.Header.Get(echo.HeaderContentType))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

// VerifyFingerprint handles GET /public/verify/v1/:fingerprint
func (w *Wrapper) VerifyFingerprint(ctx echo.Context) error {
	result, err := w.Verifier.Verify(ctx.Request().Context(), ctx.Param("fingerprint"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

func requesterOf(ctx echo.Context) (string, error) {
	requester := ctx.Request().Header.Get(RequesterHeader)
	if requester == "" {
		return "", core.InvalidInputError("missing %s header", RequesterHeader)
	}
	return requester, nil
}
