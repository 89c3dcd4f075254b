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

type diagnosableEngine struct {
	testEngine
}

func (e *diagnosableEngine) Diagnostics() []DiagnosticResult {
	return []DiagnosticResult{&GenericDiagnosticResult{Title: "uptime", Value: "1h"}}
}

func TestStatusEngine_Routes(t *testing.T) {
	system := NewSystem()
	server := echo.New()

	NewStatusEngine(system).(*status).Routes(server)

	var paths []string
	for _, route := range server.Routes() {
		paths = append(paths, route.Path)
	}
	assert.Contains(t, paths, "/status")
	assert.Contains(t, paths, "/status/diagnostics")
}

func TestStatusEngine_Status(t *testing.T) {
	system := NewSystem()
	server := echo.New()
	NewStatusEngine(system).(*status).Routes(server)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}

func TestStatusEngine_DiagnosticsOverview(t *testing.T) {
	system := NewSystem()
	system.RegisterEngine(&diagnosableEngine{})
	server := echo.New()
	NewStatusEngine(system).(*status).Routes(server)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/status/diagnostics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "TestEngine")
	assert.Contains(t, recorder.Body.String(), "uptime: 1h")
}

func TestStatusEngine_Diagnostics(t *testing.T) {
	system := NewSystem()
	system.RegisterEngine(&testEngine{})
	engine := NewStatusEngine(system)
	system.RegisterEngine(engine)

	results := engine.(*status).Diagnostics()

	require.Len(t, results, 1)
	assert.Equal(t, "Registered engines", results[0].Name())
	assert.Equal(t, "TestEngine,Status", results[0].String())
}

func TestStatusEngine_Name(t *testing.T) {
	assert.Equal(t, "Status", NewStatusEngine(NewSystem()).(*status).Name())
}
