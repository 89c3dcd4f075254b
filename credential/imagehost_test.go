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

package credential

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPImageStore_Remove(t *testing.T) {
	store := NewHTTPImageStore(time.Second)

	t.Run("ok", func(t *testing.T) {
		var method string
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
			method = request.Method
		}))
		defer server.Close()

		err := store.Remove(context.Background(), server.URL+"/cert.png")

		assert.NoError(t, err)
		assert.Equal(t, http.MethodDelete, method)
	})
	t.Run("ok - image already gone", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		err := store.Remove(context.Background(), server.URL+"/cert.png")

		assert.NoError(t, err)
	})
	t.Run("error - image host failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		err := store.Remove(context.Background(), server.URL+"/cert.png")

		assert.ErrorContains(t, err, "image host returned HTTP 500")
	})
	t.Run("error - unreachable host", func(t *testing.T) {
		err := store.Remove(context.Background(), "http://localhost:1/cert.png")

		assert.Error(t, err)
	})
}
