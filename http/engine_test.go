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

package http

import (
	"testing"
	"time"

	"github.com/credport/credport-node/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Lifecycle(t *testing.T) {
	t.Run("start and shutdown", func(t *testing.T) {
		shutdownCalled := make(chan struct{})
		engine := New(func() {
			close(shutdownCalled)
		})
		config := *core.NewServerConfig()
		config.HTTP.Address = "127.0.0.1:0"
		require.NoError(t, engine.Configure(config))
		require.NotNil(t, engine.Router())

		require.NoError(t, engine.Start())
		require.NoError(t, engine.Shutdown())

		select {
		case <-shutdownCalled:
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for shutdown callback")
		}
	})
	t.Run("shutdown before configure is a no-op", func(t *testing.T) {
		assert.NoError(t, New(func() {}).Shutdown())
	})
	t.Run("wildcard CORS origin rejected in strict mode", func(t *testing.T) {
		engine := New(func() {})
		config := *core.NewServerConfig()
		config.Strictmode = true
		config.HTTP.CORS.Origin = []string{"*"}

		err := engine.Configure(config)

		assert.EqualError(t, err, "wildcard CORS origin is not allowed in strict mode")
	})
}
