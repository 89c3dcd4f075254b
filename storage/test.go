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

package storage

import (
	"testing"

	"github.com/credport/credport-node/core"
)

// NewTestStorageEngine returns a storage engine backed by a sqlite database in a temporary directory.
// The engine is configured and shut down with the test's lifecycle.
func NewTestStorageEngine(t *testing.T) Engine {
	t.Helper()
	e := New()
	serverConfig := core.NewServerConfig()
	serverConfig.Datadir = t.TempDir()
	if err := e.Configure(*serverConfig); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = e.Shutdown()
	})
	return e
}
