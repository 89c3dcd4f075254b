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

package extraction

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

func TestHTTPClient_Extract(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/extract", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			file, header, err := r.FormFile("certificateFile")
			require.NoError(t, err)
			defer file.Close()
			contents, _ := io.ReadAll(file)
			assert.Equal(t, "cert.png", header.Filename)
			assert.Equal(t, "image bytes", string(contents))
			assert.Equal(t, "coursera", r.FormValue("platform"))
			_ = json.NewEncoder(w).Encode(extractResponse{
				Success: true,
				Extracted: &Result{
					Issuer:    "Coursera",
					Name:      "Jane Learner",
					Title:     "Data Science 101",
					IssueDate: "2024-01-01",
				},
			})
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, time.Second)

		result, err := client.Extract(context.Background(), strings.NewReader("image bytes"), "cert.png", "coursera")

		require.NoError(t, err)
		assert.Equal(t, "Coursera", result.Issuer)
		assert.Equal(t, "Data Science 101", result.Title)
		assert.Equal(t, "2024-01-01", result.IssueDate)
	})
	t.Run("ok - platform hint omitted from form when empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Empty(t, r.FormValue("platform"))
			_ = json.NewEncoder(w).Encode(extractResponse{Success: true, Extracted: &Result{}})
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, time.Second)

		_, err := client.Extract(context.Background(), strings.NewReader("image bytes"), "cert.png", "")

		assert.NoError(t, err)
	})
	t.Run("error - service reports failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(extractResponse{Success: false, Message: "Error processing image: not an image"})
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, time.Second)

		_, err := client.Extract(context.Background(), strings.NewReader("image bytes"), "cert.png", "")

		assert.EqualError(t, err, "extraction failed: Error processing image: not an image")
	})
	t.Run("error - service unreachable", func(t *testing.T) {
		client := NewHTTPClient("http://localhost:1", time.Second)

		_, err := client.Extract(context.Background(), strings.NewReader("image bytes"), "cert.png", "")

		assert.ErrorIs(t, err, ErrUnavailable)
	})
	t.Run("error - non-JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer server.Close()
		client := NewHTTPClient(server.URL, time.Second)

		_, err := client.Extract(context.Background(), strings.NewReader("image bytes"), "cert.png", "")

		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestModule(t *testing.T) {
	t.Run("configure builds the client", func(t *testing.T) {
		module := New()

		require.NoError(t, module.Configure(core.ServerConfig{}))

		assert.NotNil(t, module.Extractor())
	})
	t.Run("panics when unconfigured", func(t *testing.T) {
		assert.Panics(t, func() {
			New().Extractor()
		})
	})
}
