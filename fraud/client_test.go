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

package fraud

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/credport/credport-node/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Check(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/verify", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			file, header, err := r.FormFile("image")
			require.NoError(t, err)
			defer file.Close()
			contents, _ := io.ReadAll(file)
			assert.Equal(t, "cert.png", header.Filename)
			assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
			assert.Equal(t, "image bytes", string(contents))
			assert.Equal(t, "false", r.FormValue("save_heatmap"))
			_ = json.NewEncoder(w).Encode(Result{
				Label:                "forged",
				Confidence:           0.93,
				ProbabilityForged:    0.93,
				ProbabilityAuthentic: 0.07,
				Reasons:              []string{"Visual tampering detected in seal region"},
			})
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, time.Second)

		result, err := client.Check(context.Background(), strings.NewReader("image bytes"), "cert.png", "image/png")

		require.NoError(t, err)
		assert.True(t, result.Forged())
		assert.Equal(t, 0.93, result.Confidence)
		assert.Equal(t, []string{"Visual tampering detected in seal region"}, result.Reasons)
	})
	t.Run("ok - authentic verdict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(Result{Label: "authentic", Confidence: 0.88})
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, time.Second)

		result, err := client.Check(context.Background(), strings.NewReader("image bytes"), "cert.png", "image/png")

		require.NoError(t, err)
		assert.False(t, result.Forged())
	})
	t.Run("error - models not loaded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(errorResponse{Detail: "Models not loaded. Please check server logs and ensure models are trained."})
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, time.Second)

		_, err := client.Check(context.Background(), strings.NewReader("image bytes"), "cert.png", "image/png")

		assert.ErrorIs(t, err, ErrUnavailable)
	})
	t.Run("error - service rejects the upload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(errorResponse{Detail: "File must be an image. Received: text/plain"})
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, time.Second)

		_, err := client.Check(context.Background(), strings.NewReader("not an image"), "cert.txt", "text/plain")

		assert.EqualError(t, err, "fraud check failed: File must be an image. Received: text/plain")
	})
	t.Run("error - failure without a detail body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, time.Second)

		_, err := client.Check(context.Background(), strings.NewReader("image bytes"), "cert.png", "image/png")

		assert.EqualError(t, err, "fraud check failed: HTTP 500")
	})
	t.Run("error - service unreachable", func(t *testing.T) {
		client := NewHTTPClient("http://localhost:1", time.Second)

		_, err := client.Check(context.Background(), strings.NewReader("image bytes"), "cert.png", "image/png")

		assert.ErrorIs(t, err, ErrUnavailable)
	})
	t.Run("error - non-JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, time.Second)

		_, err := client.Check(context.Background(), strings.NewReader("image bytes"), "cert.png", "image/png")

		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestModule(t *testing.T) {
	t.Run("configure builds the client", func(t *testing.T) {
		module := New()

		require.NoError(t, module.Configure(core.ServerConfig{}))

		assert.NotNil(t, module.Detector())
	})
	t.Run("panics when unconfigured", func(t *testing.T) {
		assert.Panics(t, func() {
			New().Detector()
		})
	})
}
