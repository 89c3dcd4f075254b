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
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfig_Load(t *testing.T) {
	t.Run("defaults from flag set", func(t *testing.T) {
		cfg := NewServerConfig()

		require.NoError(t, cfg.Load(FlagSet()))

		assert.Equal(t, "info", cfg.Verbosity)
		assert.Equal(t, "text", cfg.LoggerFormat)
		assert.Equal(t, "./data", cfg.Datadir)
		assert.Equal(t, "http://localhost:1323", cfg.URL)
		assert.Equal(t, ":1323", cfg.HTTP.Address)
		assert.False(t, cfg.Strictmode)
	})
	t.Run("commandline flags override defaults", func(t *testing.T) {
		cfg := NewServerConfig()
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--datadir", "/opt/credport", "--strictmode"}))

		require.NoError(t, cfg.Load(flags))

		assert.Equal(t, "/opt/credport", cfg.Datadir)
		assert.True(t, cfg.Strictmode)
	})
	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("CREDPORT_DATADIR", "/var/lib/credport")
		cfg := NewServerConfig()

		require.NoError(t, cfg.Load(FlagSet()))

		assert.Equal(t, "/var/lib/credport", cfg.Datadir)
	})
	t.Run("comma separated environment value becomes a list", func(t *testing.T) {
		t.Setenv("CREDPORT_HTTP_CORS_ORIGIN", "https://a.example.com, https://b.example.com")
		cfg := NewServerConfig()

		require.NoError(t, cfg.Load(FlagSet()))

		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.CORS.Origin)
	})
	t.Run("values from config file", func(t *testing.T) {
		configFile := path.Join(t.TempDir(), "credport.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("verbosity: debug\nhttp:\n  address: localhost:8080\n"), 0600))
		cfg := NewServerConfig()
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--configfile", configFile}))

		require.NoError(t, cfg.Load(flags))

		assert.Equal(t, "debug", cfg.Verbosity)
		assert.Equal(t, "localhost:8080", cfg.HTTP.Address)
	})
	t.Run("missing config file at default location is not an error", func(t *testing.T) {
		cfg := NewServerConfig()

		assert.NoError(t, cfg.Load(FlagSet()))
	})
	t.Run("error - unparseable config file", func(t *testing.T) {
		configFile := path.Join(t.TempDir(), "credport.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("}not yaml{"), 0600))
		cfg := NewServerConfig()
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--configfile", configFile}))

		assert.Error(t, cfg.Load(flags))
	})
	t.Run("error - invalid verbosity", func(t *testing.T) {
		cfg := NewServerConfig()
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--verbosity", "loud"}))

		assert.Error(t, cfg.Load(flags))
	})
	t.Run("error - invalid logger format", func(t *testing.T) {
		cfg := NewServerConfig()
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--loggerformat", "xml"}))

		assert.ErrorContains(t, cfg.Load(flags), "invalid formatter")
	})
}

func TestServerConfig_PrintConfig(t *testing.T) {
	cfg := NewServerConfig()
	require.NoError(t, cfg.Load(FlagSet()))

	printed := cfg.PrintConfig()

	assert.Contains(t, printed, "datadir")
}

func TestServerConfig_InjectIntoEngine(t *testing.T) {
	cfg := NewServerConfig()
	flags := FlagSet()
	flags.String("testengine.key", "", "")
	require.NoError(t, flags.Parse([]string{"--testengine.key", "injected"}))
	require.NoError(t, cfg.Load(flags))
	engine := &testEngine{}

	require.NoError(t, cfg.InjectIntoEngine(engine))

	assert.Equal(t, "injected", engine.config.Key)
}

func TestHTTPCORSConfig_Enabled(t *testing.T) {
	assert.False(t, HTTPCORSConfig{}.Enabled())
	assert.True(t, HTTPCORSConfig{Origin: []string{"https://example.com"}}.Enabled())
}
