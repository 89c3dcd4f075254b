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

package verify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/credport/credport-node/credential"
	"github.com/credport/credport-node/hash"
	"github.com/credport/credport-node/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const publicURL = "https://credport.example.com"

type serviceTestContext struct {
	service      *service
	store        *credential.MockStore
	ledgerClient *ledger.MockClient
}

func newServiceTestContext(t *testing.T) serviceTestContext {
	ctrl := gomock.NewController(t)
	store := credential.NewMockStore(ctrl)
	ledgerClient := ledger.NewMockClient(ctrl)
	return serviceTestContext{
		service:      newService(ledgerClient, store, publicURL),
		store:        store,
		ledgerClient: ledgerClient,
	}
}

func TestService_Verify(t *testing.T) {
	fingerprint := hash.SHA256Sum([]byte("anchored credential"))
	record := &ledger.Record{IssuerIdentity: "0xIssuerWallet", Timestamp: 1700000000}

	t.Run("ok - anchored fingerprint with stored metadata", func(t *testing.T) {
		ctx := newServiceTestContext(t)
		ctx.ledgerClient.EXPECT().Lookup(gomock.Any(), fingerprint).Return(record, nil)
		ctx.store.EXPECT().GetByFingerprint(gomock.Any(), fingerprint).Return(&credential.Credential{
			Title:  "Data Science 101",
			Issuer: "Acme Academy",
			Skills: []string{"statistics", "python"},
		}, nil)

		result, err := ctx.service.Verify(context.Background(), fingerprint.String())

		require.NoError(t, err)
		assert.True(t, result.Verified)
		assert.Equal(t, "0xIssuerWallet", result.IssuerIdentity)
		assert.Equal(t, int64(1700000000), result.Timestamp)
		assert.Equal(t, "Data Science 101", result.Title)
		assert.Equal(t, "Acme Academy", result.Issuer)
		assert.Equal(t, []string{"statistics", "python"}, result.Skills)
	})
	t.Run("ok - input without prefix is canonicalized before lookup", func(t *testing.T) {
		ctx := newServiceTestContext(t)
		ctx.ledgerClient.EXPECT().Lookup(gomock.Any(), fingerprint).Return(record, nil)
		ctx.store.EXPECT().GetByFingerprint(gomock.Any(), fingerprint).Return(nil, credential.ErrNotFound)

		result, err := ctx.service.Verify(context.Background(), strings.TrimPrefix(fingerprint.String(), "0x"))

		require.NoError(t, err)
		assert.True(t, result.Verified)
	})
	t.Run("ok - credential deleted off-chain, ledger record stays authoritative", func(t *testing.T) {
		ctx := newServiceTestContext(t)
		ctx.ledgerClient.EXPECT().Lookup(gomock.Any(), fingerprint).Return(record, nil)
		ctx.store.EXPECT().GetByFingerprint(gomock.Any(), fingerprint).Return(nil, credential.ErrNotFound)

		result, err := ctx.service.Verify(context.Background(), fingerprint.String())

		require.NoError(t, err)
		assert.True(t, result.Verified)
		assert.Equal(t, "0xIssuerWallet", result.IssuerIdentity)
		assert.Empty(t, result.Title)
	})
	t.Run("ok - store error does not downgrade the result", func(t *testing.T) {
		ctx := newServiceTestContext(t)
		ctx.ledgerClient.EXPECT().Lookup(gomock.Any(), fingerprint).Return(record, nil)
		ctx.store.EXPECT().GetByFingerprint(gomock.Any(), fingerprint).Return(nil, errors.New("database is locked"))

		result, err := ctx.service.Verify(context.Background(), fingerprint.String())

		require.NoError(t, err)
		assert.True(t, result.Verified)
	})
	t.Run("ok - unanchored fingerprint is a negative answer, not an error", func(t *testing.T) {
		ctx := newServiceTestContext(t)
		ctx.ledgerClient.EXPECT().Lookup(gomock.Any(), fingerprint).Return(nil, ledger.ErrNotFound)

		result, err := ctx.service.Verify(context.Background(), fingerprint.String())

		require.NoError(t, err)
		assert.False(t, result.Verified)
		assert.Empty(t, result.IssuerIdentity)
	})
	t.Run("error - malformed fingerprint", func(t *testing.T) {
		ctx := newServiceTestContext(t)

		_, err := ctx.service.Verify(context.Background(), "0xnot-hex")

		assert.ErrorIs(t, err, ErrMalformedFingerprint)
	})
	t.Run("error - ledger unavailable", func(t *testing.T) {
		ctx := newServiceTestContext(t)
		ctx.ledgerClient.EXPECT().Lookup(gomock.Any(), fingerprint).Return(nil, ledger.ErrUnavailable)

		_, err := ctx.service.Verify(context.Background(), fingerprint.String())

		assert.ErrorIs(t, err, ledger.ErrUnavailable)
	})
}

func TestService_VerificationURL(t *testing.T) {
	fingerprint := hash.SHA256Sum([]byte("anchored credential"))

	t.Run("ok", func(t *testing.T) {
		ctx := newServiceTestContext(t)

		url, err := ctx.service.VerificationURL(fingerprint.String())

		require.NoError(t, err)
		assert.Equal(t, publicURL+"/public/verify/v1/"+fingerprint.String(), url)
	})
	t.Run("error - malformed fingerprint", func(t *testing.T) {
		ctx := newServiceTestContext(t)

		_, err := ctx.service.VerificationURL("")

		assert.ErrorIs(t, err, ErrMalformedFingerprint)
	})
}

func TestService_RenderQR(t *testing.T) {
	fingerprint := hash.SHA256Sum([]byte("anchored credential"))

	t.Run("ok", func(t *testing.T) {
		ctx := newServiceTestContext(t)
		buf := new(bytes.Buffer)

		err := ctx.service.RenderQR(buf, fingerprint.String())

		require.NoError(t, err)
		assert.NotEmpty(t, buf.String())
	})
	t.Run("error - malformed fingerprint", func(t *testing.T) {
		ctx := newServiceTestContext(t)

		err := ctx.service.RenderQR(new(bytes.Buffer), "zz")

		assert.ErrorIs(t, err, ErrMalformedFingerprint)
	})
}

func TestModule_Verifier(t *testing.T) {
	t.Run("panics when unconfigured", func(t *testing.T) {
		assert.Panics(t, func() {
			New(nil, nil).Verifier()
		})
	})
}
