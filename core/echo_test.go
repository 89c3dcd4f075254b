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

package core

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEchoServer(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server, err := CreateEchoServer(HTTPConfig{}, false)

		require.NoError(t, err)
		assert.NotNil(t, server)
	})
	t.Run("ok - CORS enabled", func(t *testing.T) {
		server, err := CreateEchoServer(HTTPConfig{CORS: HTTPCORSConfig{Origin: []string{"https://example.com"}}}, false)
		require.NoError(t, err)
		server.GET("/", func(ctx echo.Context) error {
			return ctx.NoContent(http.StatusOK)
		})

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(echo.HeaderOrigin, "https://example.com")
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, request)

		assert.Equal(t, "https://example.com", recorder.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
	t.Run("ok - wildcard CORS origin outside strict mode", func(t *testing.T) {
		_, err := CreateEchoServer(HTTPConfig{CORS: HTTPCORSConfig{Origin: []string{"*"}}}, false)

		assert.NoError(t, err)
	})
	t.Run("error - wildcard CORS origin in strict mode", func(t *testing.T) {
		_, err := CreateEchoServer(HTTPConfig{CORS: HTTPCORSConfig{Origin: []string{"*"}}}, true)

		assert.EqualError(t, err, "wildcard CORS origin is not allowed in strict mode")
	})
	t.Run("errors are rendered as problem JSON", func(t *testing.T) {
		server, err := CreateEchoServer(HTTPConfig{}, false)
		require.NoError(t, err)
		server.GET("/", func(ctx echo.Context) error {
			return NotFoundError("no such thing")
		})

		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, `{"title":"Operation failed","status":404,"detail":"no such thing"}`, recorder.Body.String())
	})
}
